package jobview

import "strings"

// Status is the closed vocabulary of job states shown by the panel.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRevoked   Status = "revoked"
	StatusDeduped   Status = "deduped"
	StatusOffline   Status = "offline"
	StatusUnknown   Status = "unknown"
)

// ParseStatus maps a backend status string onto the vocabulary. Matching is
// case-insensitive and accepts the "job-" prefix used by job backends.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "job-")
	switch s {
	case "queued", "pending", "waiting":
		return StatusQueued
	case "running", "started":
		return StatusRunning
	case "completed", "complete", "succeeded", "success":
		return StatusCompleted
	case "failed", "failure", "error":
		return StatusFailed
	case "revoked", "cancelled", "canceled":
		return StatusRevoked
	case "deduped":
		return StatusDeduped
	case "offline":
		return StatusOffline
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the job will not change state again.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRevoked, StatusDeduped:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	if s == "" {
		return string(StatusUnknown)
	}
	return string(s)
}
