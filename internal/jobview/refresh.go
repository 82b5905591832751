package jobview

import (
	"errors"
	"fmt"
	"time"

	"github.com/five82/jobpanel/internal/jobsapi"
)

// FetchError records a failed refresh.
type FetchError struct {
	Err   error
	At    time.Time
	Token uint64
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch jobs: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var errUnknownFetch = errors.New("unknown error")

// RequestRefresh starts a fetch cycle and returns the token the result must
// carry. While a fetch is outstanding the request is ignored and started is
// false.
func RequestRefresh(s State) (next State, token uint64, started bool) {
	if s.Phase == PhaseLoading {
		return s, s.Token, false
	}
	s.Token++
	s.Phase = PhaseLoading
	return s, s.Token, true
}

// CompleteRefresh applies a successful fetch. Results for any token but the
// outstanding one are discarded.
func CompleteRefresh(s State, token uint64, jobs []jobsapi.RawJob, at time.Time) State {
	if !s.awaiting(token) {
		return s
	}
	rows, report := Normalize(jobs)
	s.Rows = rows
	s.Dropped = report.Dropped()
	s.LastRefreshed = at
	s.LastError = nil
	s.ConsecutiveFailures = 0
	s.Phase = PhaseIdle
	s.Selection = repointSelection(rows, s.Selection)
	return s.reconcile()
}

// FailRefresh records a failed fetch for the outstanding token. Rows and
// selection are kept.
func FailRefresh(s State, token uint64, err error, at time.Time) State {
	if !s.awaiting(token) {
		return s
	}
	if err == nil {
		err = errUnknownFetch
	}
	s.LastError = &FetchError{Err: err, At: at, Token: token}
	s.ConsecutiveFailures++
	s.Phase = PhaseError
	return s
}

// Invalidate makes any outstanding fetch stale, as on teardown.
func Invalidate(s State) State {
	s.Token++
	if s.Phase == PhaseLoading {
		s.Phase = PhaseIdle
	}
	return s
}

// DismissError hides the error banner.
func DismissError(s State) State {
	if s.Phase != PhaseError {
		return s
	}
	s.Phase = PhaseIdle
	s.LastError = nil
	return s
}

func (s State) awaiting(token uint64) bool {
	return s.Phase == PhaseLoading && token == s.Token
}
