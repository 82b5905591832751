package jobview

// Page is one window of rows.
type Page struct {
	Rows      []JobRecord
	PageIndex int
	PageCount int
	PageSize  int
	// Total is the number of rows being paged through.
	Total   int
	CanPrev bool
	CanNext bool
}

// PageCount is ceil(n/pageSize), never less than 1.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the window at pageIndex, clamped into range.
func Paginate(rows []JobRecord, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	count := PageCount(len(rows), pageSize)
	idx := clampIndex(pageIndex, count)
	start := idx * pageSize
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	if start > end {
		start = end
	}
	return Page{
		Rows:      rows[start:end:end],
		PageIndex: idx,
		PageCount: count,
		PageSize:  pageSize,
		Total:     len(rows),
		CanPrev:   idx > 0,
		CanNext:   idx < count-1,
	}
}

// PageTarget names a navigation request.
type PageTarget int

const (
	PageFirst PageTarget = iota
	PagePrev
	PageNext
	PageLast
	// PageExact jumps to an explicit index.
	PageExact
)

func (t PageTarget) resolve(current, index, pageCount int) int {
	switch t {
	case PageFirst:
		return 0
	case PagePrev:
		return current - 1
	case PageNext:
		return current + 1
	case PageLast:
		return pageCount - 1
	default:
		return index
	}
}

// GoToPage moves the page window. Out-of-range results are clamped, so
// PagePrev on the first page and PageNext on the last are no-ops.
func GoToPage(s State, target PageTarget, index int) State {
	count := PageCount(len(Filter(s.Rows, s.Query)), s.PageSize)
	s.PageIndex = clampIndex(target.resolve(s.PageIndex, index, count), count)
	return s.reconcile()
}

// SetPageSize changes the page size and returns to the first page.
// Non-positive sizes are ignored.
func SetPageSize(s State, size int) State {
	if size <= 0 {
		return s
	}
	s.PageSize = size
	s.PageIndex = 0
	return s.reconcile()
}

// NextPageSize returns the option after current in sizes, wrapping around.
// A current value outside sizes yields the first option.
func NextPageSize(sizes []int, current int) int {
	if len(sizes) == 0 {
		return current
	}
	for i, size := range sizes {
		if size == current {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}
