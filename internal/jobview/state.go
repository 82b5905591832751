package jobview

import "time"

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 10

// DefaultPageSizes are the page sizes offered by the panel.
var DefaultPageSizes = []int{10, 25, 50, 100}

// Phase is the refresh lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	// PhaseError is Idle with a LastError to show.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// State is the complete view-model. Values are treated as immutable: every
// transition returns a new State and never writes through the slices or
// pointers of its input.
type State struct {
	Rows           []JobRecord
	Query          string
	SortColumn     Column
	SortDescending bool
	PageSize       int
	PageIndex      int
	Selection      *Selection

	Phase               Phase
	Token               uint64
	LastRefreshed       time.Time
	LastError           error
	Dropped             int
	ConsecutiveFailures int
}

// NewState returns an empty Idle state. Non-positive page sizes fall back to
// DefaultPageSize.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Rows:     []JobRecord{},
		PageSize: pageSize,
	}
}

// Loading reports whether a fetch is outstanding.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// matched returns the filtered, sorted rows.
func (s State) matched() []JobRecord {
	return Sort(Filter(s.Rows, s.Query), s.SortColumn, s.SortDescending)
}

// reconcile restores the page bounds after any change.
func (s State) reconcile() State {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.Rows == nil {
		s.Rows = []JobRecord{}
	}
	count := PageCount(len(Filter(s.Rows, s.Query)), s.PageSize)
	s.PageIndex = clampIndex(s.PageIndex, count)
	return s
}

func clampIndex(i, pageCount int) int {
	if i >= pageCount {
		i = pageCount - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
