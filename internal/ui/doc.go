// Package ui provides the terminal job panel for jobpanel.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never owns job data: every key press
// becomes a jobview.Action dispatched to the shared state.Store, and the
// model re-renders from the resulting jobview.View. A one second tick
// re-reads the store so refreshes made by the background poller show up
// without any message passing.
//
// # Package Structure
//
//   - app.go: Model, Options, Update loop, key handling and commands
//   - table.go: bubbles/table columns, rows and empty states
//   - detail.go: the detail pane for the selected job
//   - search.go: debounced search input
//   - header.go: status bar, error and warning banners
//   - footer.go: paginator and short help
//   - help.go, logs.go: help and panel log overlays
//   - theme.go, keys.go: colors and key bindings
//
// # Search
//
// Keystrokes in the search input restart a debounce.Debouncer. When typing
// pauses the debouncer hands the query to a single-slot channel, and a
// waiting tea.Cmd turns it into a message. Queries the input has already
// moved past are dropped.
//
// # Key Bindings
//
//   - j/k: Move the cursor
//   - h/l, pgup/pgdown: Previous/next page
//   - g/G: First/last page
//   - 1-5: Sort by column, again to reverse
//   - z: Cycle rows per page
//   - /: Search
//   - enter: Show details for the cursor row
//   - y: Copy payload id
//   - r: Refresh now
//   - esc: Close detail, dismiss error, clear filter
//   - L: Panel log
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
