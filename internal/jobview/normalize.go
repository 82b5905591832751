package jobview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/jobpanel/internal/jobsapi"
)

// JobRecord is one normalized table row.
type JobRecord struct {
	PayloadID string
	Tags      []string
	JobType   string
	Status    Status
	StartTime string
	Raw       jobsapi.RawJob
}

// NormalizeReport counts raw entries that could not become rows.
type NormalizeReport struct {
	Missing   int // no payload_id or job_id
	Duplicate int // identifier already seen earlier in the batch
}

// Dropped is the total number of skipped entries.
func (r NormalizeReport) Dropped() int {
	return r.Missing + r.Duplicate
}

// Field aliases, snake_case first.
var (
	payloadIDKeys = []string{"payload_id", "payloadId", "job_id", "jobId"}
	tagsKeys      = []string{"tags", "tag"}
	jobTypeKeys   = []string{"job_type", "jobType", "type"}
	statusKeys    = []string{"status", "job_status", "jobStatus"}
	startTimeKeys = []string{"time_start", "startTime", "start_time", "timeStart"}
)

// Normalize converts raw API records into rows. Entries without an
// identifier, and later entries repeating an identifier, are skipped and
// counted in the report. Missing optional fields never drop a record.
func Normalize(raw []jobsapi.RawJob) ([]JobRecord, NormalizeReport) {
	var report NormalizeReport
	rows := make([]JobRecord, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, job := range raw {
		id := stringField(job, payloadIDKeys...)
		if id == "" {
			report.Missing++
			continue
		}
		if _, dup := seen[id]; dup {
			report.Duplicate++
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, JobRecord{
			PayloadID: id,
			Tags:      tagsField(job),
			JobType:   stringField(job, jobTypeKeys...),
			Status:    ParseStatus(stringField(job, statusKeys...)),
			StartTime: stringField(job, startTimeKeys...),
			Raw:       job.Clone(),
		})
	}
	return rows, report
}

// Field returns the display text of an arbitrary raw field, or "".
func (r JobRecord) Field(keys ...string) string {
	return stringField(r.Raw, keys...)
}

func lookup(job jobsapi.RawJob, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := job[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// stringField returns the first non-blank value among keys.
func stringField(job jobsapi.RawJob, keys ...string) string {
	for _, key := range keys {
		v, ok := job[key]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(scalarText(v)); s != "" {
			return s
		}
	}
	return ""
}

func scalarText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

func tagsField(job jobsapi.RawJob) []string {
	tags := []string{}
	v, ok := lookup(job, tagsKeys...)
	if !ok {
		return tags
	}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := strings.TrimSpace(scalarText(item)); s != "" {
				tags = append(tags, s)
			}
		}
	case []string:
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				tags = append(tags, s)
			}
		}
	case string:
		for _, part := range strings.Split(val, ",") {
			if s := strings.TrimSpace(part); s != "" {
				tags = append(tags, s)
			}
		}
	default:
		if s := strings.TrimSpace(scalarText(val)); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
