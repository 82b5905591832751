package jobview

import (
	"errors"
	"reflect"
	"testing"

	"github.com/five82/jobpanel/internal/jobsapi"
)

func TestScenario_TwentyThreeJobsPaging(t *testing.T) {
	s := loaded(23, 10)
	v := VisibleRows(s)
	if v.PageCount != 3 || len(v.Rows) != 10 || v.Matched != 23 || v.Loaded != 23 {
		t.Fatalf("initial view: count=%d rows=%d matched=%d", v.PageCount, len(v.Rows), v.Matched)
	}

	s = Reduce(s, PageChanged{Target: PageExact, Index: 2})
	v = VisibleRows(s)
	if v.PageIndex != 2 || len(v.Rows) != 3 {
		t.Fatalf("page 2: index=%d rows=%d", v.PageIndex, len(v.Rows))
	}

	s = Reduce(s, PageSizeChanged{Size: 50})
	v = VisibleRows(s)
	if v.PageIndex != 0 || len(v.Rows) != 23 || v.PageCount != 1 {
		t.Fatalf("pageSize 50: index=%d rows=%d count=%d", v.PageIndex, len(v.Rows), v.PageCount)
	}
}

func TestScenario_RunningQuery(t *testing.T) {
	jobs := []jobsapi.RawJob{
		{"payload_id": "a", "status": "job-running", "job_type": "sar"},
		{"payload_id": "b", "status": "job-completed", "job_type": "sar", "tags": []any{"was-Running-late"}},
		{"payload_id": "c", "status": "job-failed", "job_type": "sar"},
		{"payload_id": "d", "status": "RUNNING", "job_type": "gedi"},
		{"payload_id": "e", "status": "job-queued", "job_type": "gedi", "tags": "nightly"},
	}
	s, token, _ := RequestRefresh(NewState(10))
	s = Reduce(s, RefreshSucceeded{Token: token, Jobs: jobs, At: refreshedAt})
	s = Reduce(s, QueryChanged{Query: "running"})

	got := ids(VisibleRows(s).Rows)
	if want := []string{"a", "b", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("query running = %v, want %v", got, want)
	}
}

func TestScenario_FailedRefreshKeepsRows(t *testing.T) {
	s := loaded(5, 10)
	s = Reduce(s, RefreshRequested{})
	if !s.Loading() {
		t.Fatal("RefreshRequested did not enter loading")
	}
	s = Reduce(s, RefreshFailed{Token: s.Token, Err: errors.New("503"), At: refreshedAt})
	v := VisibleRows(s)
	if len(v.Rows) != 5 || v.LastError == nil || v.Phase != PhaseError {
		t.Fatalf("rows=%d err=%v phase=%v", len(v.Rows), v.LastError, v.Phase)
	}
}

func TestVisibleRows_SortThenPage(t *testing.T) {
	s := loaded(23, 10)
	s = Reduce(s, SortToggled{Column: ColumnStartTime})
	s = Reduce(s, SortToggled{Column: ColumnStartTime})
	v := VisibleRows(s)
	if v.Rows[0].PayloadID != "p22" || !v.SortDescending || v.SortColumn != ColumnStartTime {
		t.Fatalf("first row = %q desc=%v", v.Rows[0].PayloadID, v.SortDescending)
	}
	s = Reduce(s, PageChanged{Target: PageLast})
	v = VisibleRows(s)
	if got := ids(v.Rows); !reflect.DeepEqual(got, []string{"p02", "p01", "p00"}) {
		t.Fatalf("last page = %v", got)
	}
}

func TestReduce_SelectionActionsAndNil(t *testing.T) {
	s := loaded(3, 10)
	if got := Reduce(s, nil); !reflect.DeepEqual(got, s) {
		t.Fatal("nil action changed state")
	}
	s = Reduce(s, RowSelected{PayloadID: "p02"})
	if v := VisibleRows(s); !v.IsSelected("p02") || v.Selected.RowIndex != 2 {
		t.Fatalf("selected = %+v", v.Selected)
	}
	s = Reduce(s, SelectionCleared{})
	if VisibleRows(s).Selected != nil {
		t.Fatal("selection not cleared")
	}
}

func TestReduce_SortSet(t *testing.T) {
	s := Reduce(loaded(3, 10), SortSet{Column: ColumnPayloadID, Descending: true})
	if got := ids(VisibleRows(s).Rows); !reflect.DeepEqual(got, []string{"p02", "p01", "p00"}) {
		t.Fatalf("rows = %v", got)
	}
	s = Reduce(s, SortSet{Column: ColumnNone})
	if s.SortColumn != ColumnNone || s.SortDescending {
		t.Fatalf("sort not cleared: %v %v", s.SortColumn, s.SortDescending)
	}
}

func TestVisibleRows_EmptyState(t *testing.T) {
	v := VisibleRows(NewState(0))
	if !v.Empty() || v.PageCount != 1 || v.PageSize != DefaultPageSize || v.Phase != PhaseIdle {
		t.Fatalf("empty view = %+v", v)
	}
}
