package metrics

// Collector receives submission records. The engine depends on this
// interface so a caller can route records elsewhere.
type Collector interface {
	Record(rec SubmissionRecord)
	Snapshot() Snapshot
	Recent(limit int) []SubmissionRecord
}

var _ Collector = (*Store)(nil)
