// Package state provides the thread-safe store shared by the poller and the
// UI.
//
// The Store owns one jobview.State. Every change goes through Dispatch (or
// BeginRefresh/Refresh), which runs the pure jobview reducer under a mutex:
//
//	Poller goroutine:              UI (bubbletea loop):
//	store.Refresh(ctx, c, user)    store.Dispatch(jobview.QueryChanged{...})
//	        │                               │
//	        └──────────→ mutex ←────────────┘
//	                       │
//	              store.Snapshot() / View()
//
// A fetch that finishes after a newer refresh started, or after teardown
// dispatched jobview.Invalidated, carries a stale token and is ignored.
//
// On failure the previous rows stay in place and LastError is set, so the UI
// keeps showing the last good data with an error banner.
package state
