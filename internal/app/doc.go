// Package app is the composition root of jobpanel.
//
// Run loads the configuration, sends the standard logger to the log file,
// builds the API client and the shared state.Store, starts the poller and
// hands control to the ui package. When the UI exits the poller is stopped
// and the store is invalidated so a fetch still in flight cannot land.
//
// List runs the same pipeline once without a terminal UI; the `list`
// subcommand prints its result.
//
// The poller refreshes immediately, then once per poll_interval. While
// refreshes keep failing the wait doubles per consecutive failure, up to
// five minutes, and resets after the next success.
package app
