// Package metrics keeps in-memory statistics about submissions to the
// blitter: a ring of recent records and per-kind totals.
package metrics

import "time"

// Submission kinds.
const (
	KindBlit    = "blit"
	KindFill    = "fill"
	KindPalette = "palette"
	KindJob     = "job"
	KindImport  = "import"
	KindRelease = "release"
)

// Submission statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SubmissionRecord describes one call into the driver.
type SubmissionRecord struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	Status    string        `json:"status"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	JobHandle uint32        `json:"job_handle,omitempty"`
	Usage     uint32        `json:"usage"`

	// ErrorCode is the core error code of a failed submission.
	ErrorCode string `json:"error_code,omitempty"`
}

// Snapshot is the aggregate view of everything recorded so far.
type Snapshot struct {
	Total   int64                `json:"total"`
	Success int64                `json:"success"`
	Errors  int64                `json:"errors"`
	ByKind  map[string]KindStats `json:"by_kind"`
	Codes   map[string]int64     `json:"error_codes,omitempty"`
	Uptime  time.Duration        `json:"uptime"`
}

// KindStats summarises one submission kind. SuccessRate is a percentage.
type KindStats struct {
	Count       int64         `json:"count"`
	SuccessRate float64       `json:"success_rate"`
	AvgDuration time.Duration `json:"avg_duration"`
}
