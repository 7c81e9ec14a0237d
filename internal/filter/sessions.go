package filter

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"restate/internal/model"

	"github.com/google/uuid"
)

// ErrComposerNotFound is returned for an unknown, closed or expired composer id
var ErrComposerNotFound = errors.New("filter composer not found")

// SessionLimits bounds how many composers stay open and for how long.
// Zero values disable the corresponding limit.
type SessionLimits struct {
	MaxOpen int
	IdleTTL time.Duration
}

type session struct {
	mu       sync.Mutex
	composer *Composer
	lastUsed time.Time
}

// Sessions keeps the open composers, addressable by id.
// Operations on one composer are serialised; composers are not safe for
// concurrent use on their own. Composers idle longer than IdleTTL expire,
// and opening one past MaxOpen evicts the least recently used.
type Sessions struct {
	mu     sync.Mutex
	store  *Store
	nav    Navigator
	bounds model.FilterBounds
	limits SessionLimits
	open   map[string]*session
	now    func() time.Time
}

// NewSessions creates a composer registry bound to the store
func NewSessions(store *Store, nav Navigator, bounds model.FilterBounds, limits SessionLimits) *Sessions {
	return &Sessions{
		store:  store,
		nav:    nav,
		bounds: bounds,
		limits: limits,
		open:   make(map[string]*session),
		now:    time.Now,
	}
}

// Open creates a composer and returns its id
func (s *Sessions) Open(overrides *model.FilterPatch) (string, model.ComposerView, error) {
	c, err := NewComposer(s.store, s.nav, s.bounds, overrides)
	if err != nil {
		return "", model.ComposerView{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	if s.limits.MaxOpen > 0 {
		for len(s.open) >= s.limits.MaxOpen {
			s.evictOldestLocked()
		}
	}
	s.open[id] = &session{composer: c, lastUsed: now}
	s.mu.Unlock()

	return id, c.View(id), nil
}

// With runs fn against an open composer and returns its resulting view.
// Composers that end up closed are removed.
func (s *Sessions) With(id string, fn func(c *Composer) error) (model.ComposerView, error) {
	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	sess, ok := s.open[id]
	if ok {
		sess.lastUsed = now
	}
	s.mu.Unlock()
	if !ok {
		return model.ComposerView{}, fmt.Errorf("%w: %s", ErrComposerNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.composer.Closed() {
		return model.ComposerView{}, fmt.Errorf("%w: %s", ErrComposerNotFound, id)
	}
	err := fn(sess.composer)
	view := sess.composer.View(id)

	if sess.composer.Closed() {
		s.mu.Lock()
		delete(s.open, id)
		s.mu.Unlock()
	}
	return view, err
}

// Close dismisses a composer without applying it
func (s *Sessions) Close(id string) error {
	_, err := s.With(id, func(c *Composer) error {
		c.Close()
		return nil
	})
	return err
}

// Len returns the number of open composers
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Expired composers are dropped from the registry only; a call already
// holding one finishes against it.
func (s *Sessions) sweepLocked(now time.Time) {
	if s.limits.IdleTTL <= 0 {
		return
	}
	for id, sess := range s.open {
		if now.Sub(sess.lastUsed) > s.limits.IdleTTL {
			delete(s.open, id)
			log.Printf("🧹 Filter composer %s expired", id)
		}
	}
}

func (s *Sessions) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.open {
		if oldestID == "" || sess.lastUsed.Before(oldest) {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.open, oldestID)
	log.Printf("🧹 Filter composer %s evicted, %d open", oldestID, s.limits.MaxOpen)
}
