package state

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
)

// Store serializes every transition of the panel's view state. The poller
// and the UI both dispatch through it, so transitions never interleave.
// The zero value is ready to use with jobview.DefaultPageSize.
type Store struct {
	mu    sync.RWMutex
	state jobview.State
	init  bool
	now   func() time.Time
}

// New returns a Store whose state starts with pageSize rows per page.
func New(pageSize int) *Store {
	return &Store{state: jobview.NewState(pageSize), init: true}
}

// Dispatch applies action and returns the resulting state.
func (s *Store) Dispatch(action jobview.Action) jobview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	s.state = jobview.Reduce(s.state, action)
	return s.state
}

// BeginRefresh starts a fetch cycle. ok is false when one is already
// outstanding; the caller must then not fetch.
func (s *Store) BeginRefresh() (token uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	next, token, started := jobview.RequestRefresh(s.state)
	s.state = next
	return token, started
}

// Refresh runs one complete fetch cycle for username. It returns false
// without fetching when a fetch is already outstanding. Stale results are
// discarded by the token check in the reducer.
func (s *Store) Refresh(ctx context.Context, fetcher jobsapi.Fetcher, username string) bool {
	token, ok := s.BeginRefresh()
	if !ok {
		return false
	}
	jobs, err := fetcher.FetchUserJobs(ctx, username)
	if err != nil {
		next := s.Dispatch(jobview.RefreshFailed{Token: token, Err: err, At: s.clock()})
		if next.Token == token {
			log.Printf("job refresh failed: %v", err)
		}
		return true
	}
	next := s.Dispatch(jobview.RefreshSucceeded{Token: token, Jobs: jobs, At: s.clock()})
	if next.Token == token && next.Dropped > 0 {
		log.Printf("skipped %d malformed job(s) for %s", next.Dropped, username)
	}
	return true
}

// Snapshot returns the current state. Rows are shared but never written
// after a transition, so callers must treat them as read-only.
func (s *Store) Snapshot() jobview.State {
	s.mu.RLock()
	if s.init {
		defer s.mu.RUnlock()
		return s.state
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.state
}

// View returns the render-ready projection of the current state.
func (s *Store) View() jobview.View {
	return jobview.VisibleRows(s.Snapshot())
}

func (s *Store) ensureLocked() {
	if !s.init {
		s.state = jobview.NewState(jobview.DefaultPageSize)
		s.init = true
	}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
