// Package jobsapi provides an HTTP client for the job listing API.
//
// The client exposes a single read-only call:
//
//	GET {api_url}/api/dps/job/list?username=<user>
//
// which answers with {"response":{"jobs":[...]}}. Each job is returned as a
// RawJob (a decoded JSON object) without validation; shaping records into
// table rows is the job of the jobview package.
//
// Every request sets Accept, User-Agent and a fresh X-Request-ID (a UUID) so
// server logs can be correlated with the panel's log file. When a token is
// configured it is sent as "Authorization: Bearer <token>".
//
// Errors are wrapped with context:
//   - "execute request: dial tcp: connection refused"
//   - "api /api/dps/job/list returned status 500" (a *StatusError)
//   - "decode response: unexpected EOF"
//
// The Client is safe for concurrent use. No retries are attempted here; the
// poller decides the retry cadence.
package jobsapi
