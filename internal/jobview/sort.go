package jobview

import "sort"

// Sort returns rows ordered by column. Ties keep their input order in both
// directions. ColumnNone returns rows unchanged; otherwise a new slice is
// returned and rows is not modified.
func Sort(rows []JobRecord, column Column, descending bool) []JobRecord {
	if !column.Valid() || len(rows) == 0 {
		return rows
	}
	out := make([]JobRecord, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := column.compare(out[i], out[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// ToggleSort applies a header activation: the sorted column flips direction,
// any other column becomes the ascending sort. Invalid columns are ignored.
func ToggleSort(s State, column Column) State {
	if !column.Valid() {
		return s
	}
	if s.SortColumn == column {
		s.SortDescending = !s.SortDescending
	} else {
		s.SortColumn = column
		s.SortDescending = false
	}
	return s.reconcile()
}
