package jobsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8080" {
		t.Fatalf("default url = %q", u.String())
	}

	u, err = parseBaseURL("https://jobs.example.com/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("jobs.internal:9000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "jobs.internal:9000" {
		t.Fatalf("url = %q, want http://jobs.internal:9000", u.String())
	}
}

func TestFetchUserJobs_EncodesUsernameAndHeaders(t *testing.T) {
	t.Parallel()

	var (
		gotPath, gotUser, gotAgent, gotAuth, gotRequestID, gotAccept string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser = r.URL.Query().Get("username")
		gotAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"jobs":[
			{"payload_id":"a1","status":"job-running","time_start":1700000000},
			{"j2":{"status":"job-queued","tags":["x"]}}
		]}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/base", ClientOptions{Token: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.requestID = func() string { return "req-1" }

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	jobs, err := c.FetchUserJobs(ctx, "ana b")
	if err != nil {
		t.Fatalf("FetchUserJobs returned error: %v", err)
	}
	if gotPath != "/base/api/dps/job/list" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotUser != "ana b" {
		t.Fatalf("username = %q, want %q", gotUser, "ana b")
	}
	if gotAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q", gotAgent)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotRequestID != "req-1" {
		t.Fatalf("X-Request-ID = %q", gotRequestID)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q", gotAccept)
	}

	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0]["payload_id"] != "a1" {
		t.Fatalf("jobs[0] = %#v", jobs[0])
	}
	if jobs[1]["job_id"] != "j2" || jobs[1]["status"] != "job-queued" {
		t.Fatalf("keyed entry not unwrapped: %#v", jobs[1])
	}
}

func TestFetchUserJobs_DefaultRequestIDIsSet(t *testing.T) {
	t.Parallel()

	var gotRequestID, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"response":{"jobs":[]}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	jobs, err := c.FetchUserJobs(context.Background(), "anonymous")
	if err != nil {
		t.Fatalf("FetchUserJobs returned error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("len(jobs) = %d, want 0", len(jobs))
	}
	if len(gotRequestID) != 36 {
		t.Fatalf("X-Request-ID = %q, want uuid", gotRequestID)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestFetchUserJobs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("err = %v, want *StatusError", err)
				}
				if statusErr.Code != http.StatusBadGateway {
					t.Fatalf("code = %d", statusErr.Code)
				}
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"response":`))
			},
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "decode response") {
					t.Fatalf("err = %v, want decode error", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c, err := NewClient(server.URL, ClientOptions{})
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchUserJobs(context.Background(), "u")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestFlattenJobs_KeepsNonObjectsAsEmpty(t *testing.T) {
	var payload jobListResponse
	body := `{"response":{"jobs":[42, {"payload_id":"p"}, null]}}`
	if err := unmarshalNumbers([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	jobs := flattenJobs(payload.Response.Jobs)
	if len(jobs) != 3 {
		t.Fatalf("len(jobs) = %d, want 3", len(jobs))
	}
	if len(jobs[0]) != 0 || len(jobs[2]) != 0 {
		t.Fatalf("non-object entries = %#v, %#v", jobs[0], jobs[2])
	}
	if jobs[1]["payload_id"] != "p" {
		t.Fatalf("jobs[1] = %#v", jobs[1])
	}
}

func TestFlattenJobs_UnwrapsOnlyJobShapedKeyedEntries(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
	}{
		{name: "keyed job", body: `{"j9":{"status":"job-running"}}`, wantID: "j9"},
		{name: "queue field", body: `{"queue":{"name":"gpu"}}`},
		{name: "error field", body: `{"error":{"message":"boom"}}`},
		{name: "unknown key without job fields", body: `{"meta":{"count":3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := flattenJobs([]json.RawMessage{json.RawMessage(tt.body)})
			if len(jobs) != 1 {
				t.Fatalf("len(jobs) = %d, want 1", len(jobs))
			}
			job := jobs[0]
			if tt.wantID == "" {
				if _, ok := job["job_id"]; ok {
					t.Fatalf("invented job_id: %#v", job)
				}
				if _, ok := job["payload_id"]; ok {
					t.Fatalf("invented payload_id: %#v", job)
				}
				return
			}
			if job["job_id"] != tt.wantID {
				t.Fatalf("job_id = %v, want %q", job["job_id"], tt.wantID)
			}
		})
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchUserJobs(context.Background(), "u"); err == nil {
		t.Fatal("expected error from nil client")
	}
}
