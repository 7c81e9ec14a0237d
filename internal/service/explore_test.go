package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"restate/internal/filter"
	"restate/internal/model"
)

func newTestExplore(t *testing.T, repo *fakeRepository, store *filter.Store, skipInitialFetch bool) *ExploreScreen {
	t.Helper()
	listings := NewListingService(repo, model.DefaultBounds(), 20)
	screen := NewExploreScreen(listings, store, 20*time.Millisecond, time.Second, skipInitialFetch)
	t.Cleanup(screen.Close)
	return screen
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func settled(s *ExploreScreen, gen uint64) func() bool {
	return func() bool {
		st := s.State()
		return st.Generation == gen && !st.Loading
	}
}

func searchText(query []model.Predicate) string {
	for _, q := range query {
		if q.Method == model.MethodOr && len(q.Queries) > 0 {
			text, _ := q.Queries[0].Values[0].(string)
			return text
		}
	}
	return ""
}

func TestExploreScreen_InitialFetch(t *testing.T) {
	repo := &fakeRepository{records: []model.Property{
		testProperty("p1", "Quiet House", "House", 250000, 3),
	}}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), false)

	waitFor(t, "initial fetch", settled(screen, 1))
	if got := screen.State().Results; len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("Results = %+v, want p1", got)
	}
}

func TestExploreScreen_SkipInitialFetch(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	time.Sleep(30 * time.Millisecond)
	if repo.calls() != 0 {
		t.Errorf("Expected no fetch, got %d", repo.calls())
	}
	if st := screen.State(); st.Loading || st.Generation != 0 {
		t.Errorf("Unexpected state %+v", st)
	}
}

func TestExploreScreen_StaleResponseDropped(t *testing.T) {
	repo := &fakeRepository{}
	repo.list = func(ctx context.Context, query []model.Predicate) ([]model.Property, error) {
		if searchText(query) == "old" {
			<-ctx.Done()
			return []model.Property{testProperty("stale", "Old Manor", "House", 300000, 3)}, nil
		}
		return []model.Property{testProperty("fresh", "New Loft", "Apartment", 300000, 1)}, nil
	}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	first := screen.SetParams(model.ListingParams{Query: "old"})
	second := screen.SetParams(model.ListingParams{Query: "new"})
	<-second
	<-first

	st := screen.State()
	if st.Generation != 2 || st.Loading {
		t.Fatalf("Unexpected state %+v", st)
	}
	if len(st.Results) != 1 || st.Results[0].ID != "fresh" {
		t.Errorf("Expected only the latest response, got %+v", st.Results)
	}
}

func TestExploreScreen_FetchFailureClearsResults(t *testing.T) {
	repo := &fakeRepository{records: []model.Property{
		testProperty("p1", "Quiet House", "House", 250000, 3),
	}}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	<-screen.Refetch()
	if len(screen.State().Results) != 1 {
		t.Fatalf("Expected one result before failure")
	}

	repo.setError(errors.New("network down"))
	<-screen.Refetch()

	st := screen.State()
	if st.Loading {
		t.Error("Expected loading to be cleared after failure")
	}
	if st.Results == nil || len(st.Results) != 0 {
		t.Errorf("Expected empty results after failure, got %+v", st.Results)
	}
}

func TestExploreScreen_StoreReplaceRefetches(t *testing.T) {
	repo := &fakeRepository{records: []model.Property{
		testProperty("villa", "Hillside Villa", "Villa", 300000, 3),
		testProperty("house", "Family House", "House", 300000, 4),
	}}
	store := filter.NewStore(model.DefaultFilters())
	screen := newTestExplore(t, repo, store, true)

	applied := model.DefaultFilters()
	applied.Types = []string{"Villa"}
	applied.Bedrooms = 3
	store.Replace(applied)

	waitFor(t, "refetch after store replace", settled(screen, 1))
	st := screen.State()
	if !st.Filters.Equal(applied) {
		t.Errorf("Filters = %+v, want %+v", st.Filters, applied)
	}
	if len(st.Results) != 1 || st.Results[0].ID != "villa" {
		t.Errorf("Expected only the villa, got %+v", st.Results)
	}
}

func TestExploreScreen_NavigateClearsParams(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	<-screen.SetParams(model.ListingParams{Query: "garden", Filter: "Villa"})

	screen.Navigate("/settings")
	if got := screen.Params(); got.Query != "garden" {
		t.Errorf("Expected other routes to be ignored, got %+v", got)
	}

	screen.Navigate(filter.RouteExplore)
	if got := screen.Params(); got != (model.ListingParams{}) {
		t.Errorf("Expected params cleared, got %+v", got)
	}
	waitFor(t, "refetch after navigation", settled(screen, 2))
}

func TestExploreScreen_SearchIsDebounced(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	screen.SetSearch("g")
	screen.SetSearch("ga")
	screen.SetSearch("garden")

	waitFor(t, "debounced search", func() bool {
		return screen.Params().Query == "garden" && settled(screen, 1)()
	})
	time.Sleep(40 * time.Millisecond)
	if repo.calls() != 1 {
		t.Errorf("Expected a single fetch for the burst, got %d", repo.calls())
	}
}

func TestExploreScreen_ApplyFromComposer(t *testing.T) {
	repo := &fakeRepository{records: []model.Property{
		testProperty("house", "Family House", "House", 300000, 2),
	}}
	store := filter.NewStore(model.DefaultFilters())
	screen := newTestExplore(t, repo, store, true)
	<-screen.SetParams(model.ListingParams{Query: "family"})

	c, err := filter.NewComposer(store, screen, model.DefaultBounds(), nil)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	c.ToggleType("House")
	if _, err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := screen.Params(); got != (model.ListingParams{}) {
		t.Errorf("Expected apply to clear params, got %+v", got)
	}
	waitFor(t, "refetch after apply", func() bool {
		st := screen.State()
		return !st.Loading && st.Generation >= 3 && st.Filters.HasType("House")
	})
}

func TestExploreScreen_Watch(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	updates, stop := screen.Watch()
	defer stop()

	initial := <-updates
	if initial.Generation != 0 {
		t.Errorf("Expected initial snapshot, got generation %d", initial.Generation)
	}

	screen.Refetch()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case st := <-updates:
			if st.Generation == 1 && !st.Loading {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for settled state")
		}
	}
}

func TestExploreScreen_LatestTypedQueryWins(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	screen.SetSearch("villa")
	if got := screen.SearchText(); got != "villa" {
		t.Errorf("SearchText() = %q, want pending villa", got)
	}
	if got := screen.Params().Query; got != "" {
		t.Errorf("Expected query uncommitted during debounce, got %q", got)
	}
	screen.SetSearch("")

	waitFor(t, "cleared search to commit", settled(screen, 1))
	time.Sleep(40 * time.Millisecond)
	if got := screen.Params().Query; got != "" {
		t.Errorf("Params().Query = %q, want empty", got)
	}
	if got := screen.SearchText(); got != "" {
		t.Errorf("SearchText() = %q, want empty", got)
	}
}

func TestExploreScreen_LateSearchCommitAfterNavigateIsDropped(t *testing.T) {
	repo := &fakeRepository{}
	listings := NewListingService(repo, model.DefaultBounds(), 20)
	screen := NewExploreScreen(listings, filter.NewStore(model.DefaultFilters()), time.Hour, time.Second, true)
	t.Cleanup(screen.Close)

	screen.SetSearch("villa")
	screen.mu.Lock()
	seq := screen.searchSeq
	screen.mu.Unlock()

	screen.Navigate(filter.RouteExplore)
	waitFor(t, "navigation fetch", settled(screen, 1))

	// the debounce timer fired before Navigate and ran after it
	screen.commitSearch(seq, "villa")

	if got := screen.Params(); got != (model.ListingParams{}) {
		t.Errorf("Expected params to stay cleared, got %+v", got)
	}
	if st := screen.State(); st.Generation != 1 {
		t.Errorf("Expected no extra fetch, generation = %d", st.Generation)
	}
}

func TestExploreScreen_SetFilterKeepsPendingSearch(t *testing.T) {
	repo := &fakeRepository{}
	screen := newTestExplore(t, repo, filter.NewStore(model.DefaultFilters()), true)

	screen.SetSearch("garden")
	<-screen.SetFilter("Villa")

	waitFor(t, "pending search to commit", func() bool {
		return screen.Params().Query == "garden" && settled(screen, 2)()
	})
	if got := screen.Params().Filter; got != "Villa" {
		t.Errorf("Filter = %q, want Villa", got)
	}
}

func TestExploreScreen_ApplyFetchesOnce(t *testing.T) {
	repo := &fakeRepository{records: []model.Property{
		testProperty("house", "Family House", "House", 300000, 2),
	}}
	store := filter.NewStore(model.DefaultFilters())
	screen := newTestExplore(t, repo, store, true)

	c, err := filter.NewComposer(store, screen, model.DefaultBounds(), nil)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	c.ToggleType("House")
	if _, err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	waitFor(t, "fetch after apply", settled(screen, 1))
	time.Sleep(40 * time.Millisecond)
	if repo.calls() != 1 {
		t.Errorf("Expected one fetch for apply, got %d", repo.calls())
	}

	screen.Navigate(filter.RouteExplore)
	time.Sleep(20 * time.Millisecond)
	if repo.calls() != 1 {
		t.Errorf("Expected navigation without changes to reuse the fetch, got %d", repo.calls())
	}
}
