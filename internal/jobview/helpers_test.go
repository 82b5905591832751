package jobview

import (
	"fmt"

	"github.com/five82/jobpanel/internal/jobsapi"
)

func rawJobs(n int) []jobsapi.RawJob {
	jobs := make([]jobsapi.RawJob, 0, n)
	for i := 0; i < n; i++ {
		status := "job-completed"
		if i%3 == 0 {
			status = "job-running"
		}
		jobs = append(jobs, jobsapi.RawJob{
			"payload_id": fmt.Sprintf("p%02d", i),
			"job_type":   "job-sar:main",
			"status":     status,
			"tags":       []any{fmt.Sprintf("tag-%d", i)},
			"time_start": fmt.Sprintf("2024-01-01T00:%02d:00", i),
		})
	}
	return jobs
}

// loaded returns a state holding n rows delivered by a successful refresh.
func loaded(n, pageSize int) State {
	s, token, _ := RequestRefresh(NewState(pageSize))
	return CompleteRefresh(s, token, rawJobs(n), refreshedAt)
}

func ids(rows []JobRecord) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.PayloadID)
	}
	return out
}
