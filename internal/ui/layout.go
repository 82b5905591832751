package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane
	// stacks under the table instead of sitting beside it.
	LayoutCompactWidth = 110

	// LayoutDetailPercent is the share of the width given to the detail pane.
	LayoutDetailPercent = 38

	// LayoutDetailMinWidth is the narrowest side-by-side detail pane.
	LayoutDetailMinWidth = 40

	// CompactDetailHeight is the detail pane height in stacked mode.
	CompactDetailHeight = 12
)

// LogOverlayLines is the number of panel log lines shown by the log overlay.
const LogOverlayLines = 500

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the store.
	DefaultUIInterval = time.Second

	// FlashDuration is how long a footer notice stays visible.
	FlashDuration = 3 * time.Second
)
