package jobview

import (
	"time"

	"github.com/five82/jobpanel/internal/jobsapi"
)

// Action is a state transition. The set is closed; use the types below.
type Action interface {
	apply(State) State
}

// Reduce applies action to s and returns the resulting state. It performs no
// I/O and never modifies s.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

// QueryChanged sets the global filter.
type QueryChanged struct{ Query string }

// SortToggled is a header activation on Column.
type SortToggled struct{ Column Column }

// SortSet sets the sort explicitly.
type SortSet struct {
	Column     Column
	Descending bool
}

// PageChanged navigates pages. Index is used with PageExact only.
type PageChanged struct {
	Target PageTarget
	Index  int
}

// PageSizeChanged sets rows per page.
type PageSizeChanged struct{ Size int }

// RowSelected opens the detail view for PayloadID.
type RowSelected struct{ PayloadID string }

// SelectionCleared closes the detail view.
type SelectionCleared struct{}

// RefreshRequested starts a fetch; read the new Token from the result.
type RefreshRequested struct{}

// RefreshSucceeded delivers a fetch result.
type RefreshSucceeded struct {
	Token uint64
	Jobs  []jobsapi.RawJob
	At    time.Time
}

// RefreshFailed delivers a fetch failure.
type RefreshFailed struct {
	Token uint64
	Err   error
	At    time.Time
}

// Invalidated discards outstanding fetches.
type Invalidated struct{}

// ErrorDismissed hides the error banner.
type ErrorDismissed struct{}

func (a QueryChanged) apply(s State) State { return SetQuery(s, a.Query) }
func (a SortToggled) apply(s State) State  { return ToggleSort(s, a.Column) }

func (a SortSet) apply(s State) State {
	if !a.Column.Valid() {
		s.SortColumn = ColumnNone
		s.SortDescending = false
		return s.reconcile()
	}
	s.SortColumn = a.Column
	s.SortDescending = a.Descending
	return s.reconcile()
}

func (a PageChanged) apply(s State) State     { return GoToPage(s, a.Target, a.Index) }
func (a PageSizeChanged) apply(s State) State { return SetPageSize(s, a.Size) }
func (a RowSelected) apply(s State) State     { return SelectByID(s, a.PayloadID) }
func (SelectionCleared) apply(s State) State  { return ClearSelection(s) }

func (RefreshRequested) apply(s State) State {
	next, _, _ := RequestRefresh(s)
	return next
}

func (a RefreshSucceeded) apply(s State) State { return CompleteRefresh(s, a.Token, a.Jobs, a.At) }
func (a RefreshFailed) apply(s State) State    { return FailRefresh(s, a.Token, a.Err, a.At) }
func (Invalidated) apply(s State) State        { return Invalidate(s) }
func (ErrorDismissed) apply(s State) State     { return DismissError(s) }
