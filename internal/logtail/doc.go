// Package logtail reads the tail of the panel's log file.
//
// Read returns the last N lines using a single pass and a ring buffer of N
// entries, so memory stays bounded however large the file grows.
// ReadMatching applies a case-insensitive substring filter first, which is
// how `jobpanel logs --grep <request-id>` finds every line for one API call.
//
// A missing file is not an error: it yields no lines, since the panel only
// creates its log once it has something to say.
package logtail
