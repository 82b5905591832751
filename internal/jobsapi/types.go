package jobsapi

import (
	"bytes"
	"encoding/json"
)

// RawJob is one job record as delivered by the API. Any field may be absent
// or carry an unexpected type; numbers decode as json.Number.
type RawJob map[string]any

// Clone returns a shallow copy of the record.
func (r RawJob) Clone() RawJob {
	if r == nil {
		return nil
	}
	dup := make(RawJob, len(r))
	for k, v := range r {
		dup[k] = v
	}
	return dup
}

type jobListResponse struct {
	Response struct {
		Jobs []json.RawMessage `json:"jobs"`
	} `json:"response"`
}

// flattenJobs decodes each list entry. Entries are either flat job objects or
// single-key objects keyed by job id ({"<id>": {...}}); the latter are
// unwrapped (see unwrapKeyed) and the key is recorded as job_id when the inner
// object lacks one.
// Entries that are not JSON objects are kept as empty records so the
// normalizer can count them as malformed.
func flattenJobs(entries []json.RawMessage) []RawJob {
	jobs := make([]RawJob, 0, len(entries))
	for _, entry := range entries {
		var obj map[string]any
		if err := unmarshalNumbers(entry, &obj); err != nil || obj == nil {
			jobs = append(jobs, RawJob{})
			continue
		}
		jobs = append(jobs, unwrapKeyed(obj))
	}
	return jobs
}

// unwrapKeyed unwraps {"<id>": {...}} only when the key is not a job field
// name and the inner object carries job-shaped keys. Anything else, such as
// {"queue": {...}}, stays as is and is later dropped for lacking an id.
func unwrapKeyed(obj map[string]any) RawJob {
	if len(obj) != 1 {
		return RawJob(obj)
	}
	for key, value := range obj {
		inner, ok := value.(map[string]any)
		if !ok || isJobField(key) || !looksLikeJob(inner) {
			return RawJob(obj)
		}
		job := RawJob(inner)
		if _, ok := job["job_id"]; !ok {
			if _, ok := job["payload_id"]; !ok {
				job["job_id"] = key
			}
		}
		return job
	}
	return RawJob(obj)
}

func isJobField(key string) bool {
	switch key {
	case "payload_id", "payloadId", "job_id", "jobId",
		"tags", "job_type", "jobType", "status",
		"time_start", "startTime", "time_end", "time_queued",
		"duration", "queue", "username", "command",
		"container_image_name", "container_image_url",
		"disk_usage", "job_dir_size",
		"ec2_instance_type", "ec2_instance_id", "ec2_availability_zone",
		"error", "name", "version", "params", "products":
		return true
	}
	return false
}

func looksLikeJob(inner map[string]any) bool {
	for _, k := range []string{"payload_id", "payloadId", "job_id", "jobId", "status", "job_type", "jobType", "time_start", "startTime", "tags"} {
		if _, ok := inner[k]; ok {
			return true
		}
	}
	return false
}

func unmarshalNumbers(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dest)
}
