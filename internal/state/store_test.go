package state

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
)

type stubFetcher struct {
	mu    sync.Mutex
	jobs  []jobsapi.RawJob
	err   error
	users []string
	// block, when set, is received from before returning.
	block chan struct{}
}

func (f *stubFetcher) FetchUserJobs(ctx context.Context, username string) ([]jobsapi.RawJob, error) {
	f.mu.Lock()
	f.users = append(f.users, username)
	jobs, err, block := f.jobs, f.err, f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return jobs, err
}

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.PageSize != jobview.DefaultPageSize || snap.Rows == nil {
		t.Fatalf("zero snapshot = %+v", snap)
	}
	next := s.Dispatch(jobview.QueryChanged{Query: "x"})
	if next.Query != "x" || s.Snapshot().Query != "x" {
		t.Fatal("Dispatch did not persist")
	}
}

func TestStore_RefreshSuccessAndFailureKeepsRows(t *testing.T) {
	s := New(10)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return at }

	f := &stubFetcher{jobs: []jobsapi.RawJob{
		{"payload_id": "a", "status": "job-running"},
		{"payload_id": "b", "status": "job-failed"},
		{"status": "job-queued"},
	}}
	if !s.Refresh(context.Background(), f, "ana") {
		t.Fatal("Refresh did not start")
	}
	snap := s.Snapshot()
	if len(snap.Rows) != 2 || snap.Dropped != 1 || !snap.LastRefreshed.Equal(at) || snap.Phase != jobview.PhaseIdle {
		t.Fatalf("after success: %+v", snap)
	}
	if len(f.users) != 1 || f.users[0] != "ana" {
		t.Fatalf("fetched users = %v", f.users)
	}

	f.err = errors.New("boom")
	s.Refresh(context.Background(), f, "ana")
	snap = s.Snapshot()
	if len(snap.Rows) != 2 || snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("after failure: rows=%d err=%v failures=%d", len(snap.Rows), snap.LastError, snap.ConsecutiveFailures)
	}
	if !errors.Is(snap.LastError, f.err) {
		t.Fatalf("LastError = %v, want wrapping boom", snap.LastError)
	}
}

func TestStore_RefreshWhileLoadingIsIgnored(t *testing.T) {
	s := New(10)
	if _, ok := s.BeginRefresh(); !ok {
		t.Fatal("first BeginRefresh refused")
	}
	f := &stubFetcher{}
	if s.Refresh(context.Background(), f, "u") {
		t.Fatal("Refresh started while loading")
	}
	if len(f.users) != 0 {
		t.Fatal("fetcher called while loading")
	}
}

func TestStore_InvalidateDropsInFlightResult(t *testing.T) {
	s := New(10)
	f := &stubFetcher{
		jobs:  []jobsapi.RawJob{{"payload_id": "late"}},
		block: make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Refresh(context.Background(), f, "u")
	}()

	// Wait for the fetch to be in flight.
	deadline := time.Now().Add(2 * time.Second)
	for {
		f.mu.Lock()
		n := len(f.users)
		f.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("fetch never started")
		}
		time.Sleep(time.Millisecond)
	}

	s.Dispatch(jobview.Invalidated{})
	close(f.block)
	<-done

	if snap := s.Snapshot(); len(snap.Rows) != 0 || snap.Phase != jobview.PhaseIdle {
		t.Fatalf("stale result applied: rows=%d phase=%v", len(snap.Rows), snap.Phase)
	}
}

func TestStore_StaleFailureIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := New(10)
	f := &stubFetcher{
		err:   errors.New("connection reset"),
		block: make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Refresh(context.Background(), f, "u")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		f.mu.Lock()
		n := len(f.users)
		f.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("fetch never started")
		}
		time.Sleep(time.Millisecond)
	}

	s.Dispatch(jobview.Invalidated{})
	close(f.block)
	<-done

	if snap := s.Snapshot(); snap.Phase != jobview.PhaseIdle || snap.LastError != nil {
		t.Fatalf("stale failure applied: phase=%v err=%v", snap.Phase, snap.LastError)
	}
	if strings.Contains(buf.String(), "job refresh failed") {
		t.Fatalf("stale failure logged: %q", buf.String())
	}
}

func TestStore_ViewProjectsState(t *testing.T) {
	s := New(2)
	f := &stubFetcher{jobs: []jobsapi.RawJob{{"payload_id": "a"}, {"payload_id": "b"}, {"payload_id": "c"}}}
	s.Refresh(context.Background(), f, "u")
	s.Dispatch(jobview.PageChanged{Target: jobview.PageNext})
	v := s.View()
	if v.PageIndex != 1 || len(v.Rows) != 1 || v.Rows[0].PayloadID != "c" {
		t.Fatalf("view = %+v", v)
	}
}
