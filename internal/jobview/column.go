package jobview

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownColumn is returned by ParseColumn for names outside the schema.
var ErrUnknownColumn = errors.New("unknown column")

// ColumnKind selects the comparison used when sorting a column.
type ColumnKind int

const (
	KindString ColumnKind = iota
	KindNumericTimestamp
)

// Column identifies a table column. ColumnNone means "unsorted".
type Column int

const (
	ColumnNone Column = iota
	ColumnTags
	ColumnJobType
	ColumnStatus
	ColumnPayloadID
	ColumnStartTime
)

type columnSpec struct {
	name    string
	title   string
	kind    ColumnKind
	value   func(JobRecord) string
	aliases []string
}

var columnSpecs = map[Column]columnSpec{
	ColumnTags: {
		name: "tags", title: "Tags", kind: KindString,
		value:   func(r JobRecord) string { return strings.Join(r.Tags, ", ") },
		aliases: []string{"tag"},
	},
	ColumnJobType: {
		name: "jobType", title: "Job Type", kind: KindString,
		value:   func(r JobRecord) string { return r.JobType },
		aliases: []string{"job_type", "type"},
	},
	ColumnStatus: {
		name: "status", title: "Status", kind: KindString,
		value: func(r JobRecord) string { return string(r.Status) },
	},
	ColumnPayloadID: {
		name: "payloadId", title: "Payload ID", kind: KindString,
		value:   func(r JobRecord) string { return r.PayloadID },
		aliases: []string{"payload_id", "id"},
	},
	ColumnStartTime: {
		name: "startTime", title: "Start Time", kind: KindNumericTimestamp,
		value:   func(r JobRecord) string { return r.StartTime },
		aliases: []string{"start_time", "time_start", "start"},
	},
}

// Columns lists the table columns in display order.
func Columns() []Column {
	return []Column{ColumnTags, ColumnJobType, ColumnStatus, ColumnPayloadID, ColumnStartTime}
}

// ParseColumn resolves a column name, case-insensitively. "" and "none" map to
// ColumnNone.
func ParseColumn(name string) (Column, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return ColumnNone, nil
	}
	for _, col := range Columns() {
		spec := columnSpecs[col]
		if strings.ToLower(spec.name) == n {
			return col, nil
		}
		for _, alias := range spec.aliases {
			if alias == n {
				return col, nil
			}
		}
	}
	return ColumnNone, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Valid reports whether c is a real column.
func (c Column) Valid() bool {
	_, ok := columnSpecs[c]
	return ok
}

func (c Column) String() string {
	if spec, ok := columnSpecs[c]; ok {
		return spec.name
	}
	return "none"
}

// Title is the header label.
func (c Column) Title() string {
	return columnSpecs[c].title
}

func (c Column) Kind() ColumnKind {
	return columnSpecs[c].kind
}

// Value returns the display text of the column for row.
func (c Column) Value(row JobRecord) string {
	spec, ok := columnSpecs[c]
	if !ok {
		return ""
	}
	return spec.value(row)
}

// compare orders two rows by this column: negative, zero or positive.
func (c Column) compare(a, b JobRecord) int {
	spec, ok := columnSpecs[c]
	if !ok {
		return 0
	}
	switch spec.kind {
	case KindNumericTimestamp:
		return compareTimestamps(spec.value(a), spec.value(b))
	default:
		return strings.Compare(spec.value(a), spec.value(b))
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// msEpochThreshold separates epoch seconds from epoch milliseconds.
const msEpochThreshold = 1e11

// timestampValue returns Unix seconds for epoch text (seconds, or
// milliseconds above msEpochThreshold) or an ISO-like timestamp.
func timestampValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		if math.Abs(f) > msEpochThreshold {
			f /= 1000
		}
		return f, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixNano()) / 1e9, true
		}
	}
	return 0, false
}

// ParseTimestamp interprets s the way start-time sorting does.
func ParseTimestamp(s string) (time.Time, bool) {
	v, ok := timestampValue(s)
	if !ok {
		return time.Time{}, false
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}

// Unparseable values sort before parseable ones and tie with each other.
func compareTimestamps(a, b string) int {
	av, aok := timestampValue(a)
	bv, bok := timestampValue(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}
