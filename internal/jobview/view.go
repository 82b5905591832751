package jobview

import "time"

// View is everything the presentation layer needs to render one frame.
type View struct {
	Page

	// Matched is the row count after filtering; Loaded counts all rows.
	Matched int
	Loaded  int

	Query          string
	SortColumn     Column
	SortDescending bool
	Selected       *Selection

	Phase         Phase
	LastRefreshed time.Time
	LastError     error
	Dropped       int
}

// VisibleRows filters, sorts and paginates s. It has no side effects.
func VisibleRows(s State) View {
	matched := s.matched()
	page := Paginate(matched, s.PageIndex, s.PageSize)
	var sel *Selection
	if s.Selection != nil {
		dup := *s.Selection
		sel = &dup
	}
	return View{
		Page:           page,
		Matched:        len(matched),
		Loaded:         len(s.Rows),
		Query:          s.Query,
		SortColumn:     s.SortColumn,
		SortDescending: s.SortDescending,
		Selected:       sel,
		Phase:          s.Phase,
		LastRefreshed:  s.LastRefreshed,
		LastError:      s.LastError,
		Dropped:        s.Dropped,
	}
}

// IsSelected reports whether payloadID is the selected row.
func (v View) IsSelected(payloadID string) bool {
	return v.Selected != nil && v.Selected.PayloadID == payloadID
}

// Empty reports whether there is nothing to show on any page.
func (v View) Empty() bool {
	return v.Matched == 0
}
