package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/jobpanel/internal/jobview"
)

func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "api_url = \"" + apiURL + "\"\nusername = \"cfg-user\"\npage_size = 2\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestList_FetchesAndAppliesActions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.URL.Query().Get("username")
		_, _ = w.Write([]byte(`{"response":{"jobs":[
			{"payload_id":"c","status":"job-running","time_start":"2024-01-03T00:00:00Z"},
			{"payload_id":"a","status":"job-failed","time_start":"2024-01-01T00:00:00Z"},
			{"payload_id":"b","status":"job-running","time_start":"2024-01-02T00:00:00Z"}
		]}}`))
	}))
	t.Cleanup(server.Close)

	opts := Options{ConfigPath: writeConfig(t, server.URL), Username: "flag-user"}
	view, err := List(context.Background(), opts,
		jobview.QueryChanged{Query: "running"},
		jobview.SortSet{Column: jobview.ColumnStartTime},
	)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotUser != "flag-user" {
		t.Fatalf("username = %q, want flag-user", gotUser)
	}
	if view.Matched != 2 || view.Loaded != 3 || view.PageSize != 2 {
		t.Fatalf("view = %+v", view)
	}
	if view.Rows[0].PayloadID != "b" || view.Rows[1].PayloadID != "c" {
		t.Fatalf("rows = %v, %v", view.Rows[0].PayloadID, view.Rows[1].PayloadID)
	}
}

func TestList_FetchFailureIsReturned(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := List(context.Background(), Options{ConfigPath: writeConfig(t, server.URL)})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig(Options{
		ConfigPath: writeConfig(t, "http://localhost:1"),
		PollEvery:  7 * time.Second,
	})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Username != "cfg-user" || cfg.PollInterval != 7*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
}
