package jobview

import (
	"reflect"
	"testing"
)

func TestFilter_BlankQueryReturnsSameSlice(t *testing.T) {
	rows, _ := Normalize(rawJobs(3))
	for _, q := range []string{"", "   "} {
		got := Filter(rows, q)
		if len(got) != len(rows) || &got[0] != &rows[0] {
			t.Fatalf("Filter(%q) did not return the input slice", q)
		}
	}
}

func TestFilter_MatchesAnySearchableFieldIgnoringCase(t *testing.T) {
	rows := []JobRecord{
		{PayloadID: "alpha-1", Tags: []string{"Nightly"}, JobType: "sar", Status: StatusQueued},
		{PayloadID: "beta-2", Tags: []string{}, JobType: "GEDI-L4", Status: StatusRunning},
		{PayloadID: "gamma-3", Tags: []string{"adhoc"}, JobType: "sar", Status: StatusFailed},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"nightly", []string{"alpha-1"}},
		{"gedi", []string{"beta-2"}},
		{"RUNNING", []string{"beta-2"}},
		{"GAMMA", []string{"gamma-3"}},
		{"sar", []string{"alpha-1", "gamma-3"}},
		{"-", []string{"alpha-1", "beta-2", "gamma-3"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ids(Filter(rows, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSetQuery_ResetsPageIndex(t *testing.T) {
	s := loaded(23, 10)
	s = GoToPage(s, PageLast, 0)
	if s.PageIndex != 2 {
		t.Fatalf("PageIndex = %d, want 2", s.PageIndex)
	}
	s = SetQuery(s, "p1")
	if s.PageIndex != 0 || s.Query != "p1" {
		t.Fatalf("after SetQuery: PageIndex=%d Query=%q", s.PageIndex, s.Query)
	}
}
