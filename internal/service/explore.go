package service

import (
	"context"
	"log"
	"sync"
	"time"

	"restate/internal/filter"
	"restate/internal/model"
	"restate/internal/utils"
)

// ExploreScreen is the view-model of the property list screen.
// Only the latest fetch may write its state; older fetches are cancelled and
// their results dropped.
type ExploreScreen struct {
	listings *ListingService
	store    *filter.Store
	search   *utils.Debouncer
	timeout  time.Duration

	mu         sync.Mutex
	params     model.ListingParams
	state      model.ExploreState
	generation uint64
	cancel     context.CancelFunc
	watchers   map[chan model.ExploreState]struct{}

	// pending is the typed query not yet committed; searchSeq stamps it so
	// a debounced commit that lost the race to a newer input drops itself
	pending   *string
	searchSeq uint64

	// what the latest fetch asked for
	lastParams  model.ListingParams
	lastFilters model.FilterShape

	unsubscribe func()
}

// NewExploreScreen creates the screen and subscribes it to filter changes.
// Unless skipInitialFetch is set the first fetch starts immediately.
func NewExploreScreen(listings *ListingService, store *filter.Store, debounce, timeout time.Duration, skipInitialFetch bool) *ExploreScreen {
	s := &ExploreScreen{
		listings: listings,
		store:    store,
		search:   utils.NewDebouncer(debounce),
		timeout:  timeout,
		state: model.ExploreState{
			Filters: store.Get(),
			Results: []model.Property{},
		},
		watchers: make(map[chan model.ExploreState]struct{}),
	}

	s.unsubscribe = store.Subscribe(func(model.FilterShape) {
		s.Refetch()
	})

	if !skipInitialFetch {
		s.Refetch()
	}
	return s
}

// Close stops pending work and detaches from the store
func (s *ExploreScreen) Close() {
	s.search.Cancel()
	s.unsubscribe()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	for ch := range s.watchers {
		close(ch)
		delete(s.watchers, ch)
	}
}

// State returns the current view state
func (s *ExploreScreen) State() model.ExploreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Params returns the current navigation params
func (s *ExploreScreen) Params() model.ListingParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SearchText returns the latest typed query, committed or still pending
func (s *ExploreScreen) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return *s.pending
	}
	return s.params.Query
}

// SetSearch updates the free-text query after the debounce period.
// Only the latest call takes effect.
func (s *ExploreScreen) SetSearch(text string) {
	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.pending = &text
	s.mu.Unlock()

	s.search.Call(func() { s.commitSearch(seq, text) })
}

// commitSearch runs when the debounce period ends. A timer that already
// fired cannot be cancelled, so a stale stamp is checked here.
func (s *ExploreScreen) commitSearch(seq uint64, text string) {
	s.mu.Lock()
	if seq != s.searchSeq {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.params.Query = text
	s.mu.Unlock()
	s.Refetch()
}

// SetFilter changes the type param immediately; a pending search stays pending
func (s *ExploreScreen) SetFilter(typ string) <-chan struct{} {
	s.mu.Lock()
	s.params.Filter = typ
	s.mu.Unlock()
	return s.Refetch()
}

// SetParams replaces the navigation params, drops any pending search and
// refetches immediately
func (s *ExploreScreen) SetParams(params model.ListingParams) <-chan struct{} {
	s.search.Cancel()
	s.mu.Lock()
	s.dropPendingLocked()
	s.params = params
	s.mu.Unlock()
	return s.Refetch()
}

func (s *ExploreScreen) dropPendingLocked() {
	s.searchSeq++
	s.pending = nil
}

// Navigate handles navigation to this screen. Params and any pending search
// are cleared. The list is refetched unless the latest fetch already asked
// for exactly the cleared params and the applied filters, as it does right
// after Apply, where the store change has started that fetch.
func (s *ExploreScreen) Navigate(route string) {
	if route != filter.RouteExplore {
		return
	}
	log.Printf("🧭 Navigated to %s", route)

	s.search.Cancel()
	s.mu.Lock()
	s.dropPendingLocked()
	s.params = model.ListingParams{}
	current := s.generation > 0 &&
		s.lastParams == (model.ListingParams{}) &&
		s.lastFilters.Equal(s.store.Get())
	s.mu.Unlock()

	if !current {
		s.Refetch()
	}
}

// Refetch starts a new fetch and returns a channel closed when it settles
func (s *ExploreScreen) Refetch() <-chan struct{} {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	params := s.params
	filters := s.store.Get()

	var ctx context.Context
	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	s.cancel = cancel
	s.lastParams = params
	s.lastFilters = filters

	s.state.Loading = true
	s.state.Params = params
	s.state.Filters = filters
	s.state.Generation = gen
	s.publishLocked()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		results := []model.Property{}
		resp, err := s.listings.List(ctx, filters, params)
		if err != nil {
			log.Printf("⚠️  Property fetch %d failed: %v", gen, err)
		} else {
			results = resp.Results
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			log.Printf("Dropping stale property fetch %d (latest %d)", gen, s.generation)
			return
		}
		s.cancel = nil
		s.state.Loading = false
		s.state.Results = results
		s.state.UpdatedAt = time.Now()
		s.publishLocked()
	}()
	return done
}

// Watch returns a channel of state updates; call the returned func to stop
func (s *ExploreScreen) Watch() (<-chan model.ExploreState, func()) {
	ch := make(chan model.ExploreState, 8)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	ch <- cloneState(s.state)
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	}
}

func (s *ExploreScreen) publishLocked() {
	for ch := range s.watchers {
		select {
		case ch <- cloneState(s.state):
		default:
			// slow watcher; it will catch up on the next update
		}
	}
}

func cloneState(st model.ExploreState) model.ExploreState {
	out := st
	out.Filters = st.Filters.Clone()
	out.Results = make([]model.Property, len(st.Results))
	copy(out.Results, st.Results)
	return out
}
