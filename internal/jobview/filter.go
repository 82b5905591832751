package jobview

import "strings"

// Filter keeps rows where any searchable field (each tag, job type, status,
// payload id) contains query, ignoring case. A blank query returns rows
// itself, not a copy.
func Filter(rows []JobRecord, query string) []JobRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]JobRecord, 0, len(rows))
	for _, row := range rows {
		if matches(row, q) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row JobRecord, q string) bool {
	for _, tag := range row.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return containsFold(row.JobType, q) ||
		containsFold(string(row.Status), q) ||
		containsFold(row.PayloadID, q)
}

// q must already be lower-cased.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

// SetQuery replaces the global filter and returns to the first page.
func SetQuery(s State, query string) State {
	s.Query = query
	s.PageIndex = 0
	return s.reconcile()
}
