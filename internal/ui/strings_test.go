package ui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
)

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 5, "ab…ij"},
		{"abcdefghij", 3, "abc"},
		{"  padded  ", 0, "padded"},
	}
	for _, tt := range tests {
		if got := truncateMiddle(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncateMiddle(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}

	wide := truncateMiddle("日本語のジョブ名です", 9)
	if w := runewidth.StringWidth(wide); w > 9 {
		t.Fatalf("wide truncation width = %d, want <= 9 (%q)", w, wide)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m05s"},
		{time.Hour + 2*time.Minute + 9*time.Second, "1h02m"},
		{-time.Second, ""},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "OFFLINE"},
		{errors.New("lookup api.example: no such host"), "HOST NOT FOUND"},
		{errors.New("context deadline exceeded"), "TIMEOUT"},
		{fmt.Errorf("fetch jobs: %w", &jobsapi.StatusError{Path: "/x", Code: 503}), "SERVER ERROR"},
		{&jobsapi.StatusError{Path: "/x", Code: 401}, "UNAUTHORIZED"},
		{&jobsapi.StatusError{Path: "/x", Code: 404}, "HTTP 404"},
		{errors.New("something else"), "ERROR"},
	}
	for _, tt := range tests {
		if got := classifyConnectionError(tt.err); got != tt.want {
			t.Fatalf("classifyConnectionError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestJobColumnsFillWidth(t *testing.T) {
	const width = 120
	cols := jobColumns(width, jobview.ColumnStatus, true)
	if len(cols) != len(jobview.Columns())+1 {
		t.Fatalf("got %d columns", len(cols))
	}
	total := 0
	for _, c := range cols {
		total += c.Width + cellPadding
	}
	if total != width {
		t.Fatalf("columns span %d cells, want %d", total, width)
	}
	if cols[3].Title != "Status ▼" {
		t.Fatalf("sorted column title = %q", cols[3].Title)
	}
	if cols[1].Title != "Tags" {
		t.Fatalf("unsorted column title = %q", cols[1].Title)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(jobview.StatusRunning); got != "● running" {
		t.Fatalf("statusLabel(running) = %q", got)
	}
	if got := statusLabel(jobview.Status("weird")); got != "? weird" {
		t.Fatalf("statusLabel(weird) = %q", got)
	}
}

func TestOfferQueryKeepsLatest(t *testing.T) {
	ch := make(chan string, 1)
	offerQuery(ch, "a")
	offerQuery(ch, "ab")
	if got := <-ch; got != "ab" {
		t.Fatalf("got %q, want ab", got)
	}
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() = %v", names)
	}
	name := names[0]
	for range names {
		name = NextTheme(name)
	}
	if name != names[0] {
		t.Fatalf("cycling every theme should wrap to %q, got %q", names[0], name)
	}
	if GetTheme("nope").Name != "Nightfox" {
		t.Fatalf("unknown theme should fall back to Nightfox")
	}
	for _, status := range []jobview.Status{jobview.StatusQueued, jobview.StatusFailed, jobview.StatusUnknown} {
		for _, n := range names {
			if GetTheme(n).StatusColors[status] == "" {
				t.Fatalf("theme %s has no color for %s", n, status)
			}
		}
	}
}
