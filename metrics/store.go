package metrics

import (
	"sync"
	"time"
)

// Store is an in-memory Collector. Recent records live in a fixed-size
// ring; totals cover every record since the store was created.
//
// Usage:
//
//	store := NewStore(DefaultStoreConfig(), time.Now())
//	store.Record(rec)
//	snap := store.Snapshot()
type Store struct {
	mu sync.RWMutex

	history []SubmissionRecord
	cap     int
	head    int
	size    int

	total   int64
	success int64
	errors  int64
	byKind  map[string]*kindStats
	codes   map[string]int64

	startTime time.Time
}

type kindStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// StoreConfig configures a Store.
type StoreConfig struct {
	// HistoryCapacity is the number of recent records retained.
	HistoryCapacity int
}

// DefaultStoreConfig returns a config retaining 100 records.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{HistoryCapacity: 100}
}

// NewStore creates a Store. startTime is the reference for Snapshot.Uptime.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	n := config.HistoryCapacity
	if n < 1 {
		n = 100
	}
	return &Store{
		history:   make([]SubmissionRecord, n),
		cap:       n,
		byKind:    make(map[string]*kindStats),
		codes:     make(map[string]int64),
		startTime: startTime,
	}
}

// Record adds one submission.
func (s *Store) Record(rec SubmissionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[s.head] = rec
	s.head = (s.head + 1) % s.cap
	if s.size < s.cap {
		s.size++
	}

	s.total++
	switch rec.Status {
	case StatusSuccess:
		s.success++
	case StatusError:
		s.errors++
		if rec.ErrorCode != "" {
			s.codes[rec.ErrorCode]++
		}
	}

	stats, ok := s.byKind[rec.Kind]
	if !ok {
		stats = &kindStats{}
		s.byKind[rec.Kind] = stats
	}
	stats.count++
	if rec.Status == StatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += rec.Duration
}

// Snapshot returns the totals and per-kind statistics.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Total:   s.total,
		Success: s.success,
		Errors:  s.errors,
		ByKind:  make(map[string]KindStats, len(s.byKind)),
		Codes:   make(map[string]int64, len(s.codes)),
		Uptime:  time.Since(s.startTime),
	}
	for kind, stats := range s.byKind {
		var rate float64
		var avg time.Duration
		if stats.count > 0 {
			rate = float64(stats.successCount) / float64(stats.count) * 100
			avg = stats.totalDuration / time.Duration(stats.count)
		}
		snap.ByKind[kind] = KindStats{
			Count:       stats.count,
			SuccessRate: rate,
			AvgDuration: avg,
		}
	}
	for code, n := range s.codes {
		snap.Codes[code] = n
	}
	return snap
}

// Recent returns up to limit records, oldest first.
func (s *Store) Recent(limit int) []SubmissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.size == 0 {
		return []SubmissionRecord{}
	}
	if limit > s.size {
		limit = s.size
	}

	result := make([]SubmissionRecord, limit)
	for i := 0; i < limit; i++ {
		idx := (s.head - limit + i + s.cap) % s.cap
		result[i] = s.history[idx]
	}
	return result
}

// Reset clears all records and totals.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = make([]SubmissionRecord, s.cap)
	s.head = 0
	s.size = 0
	s.total = 0
	s.success = 0
	s.errors = 0
	s.byKind = make(map[string]*kindStats)
	s.codes = make(map[string]int64)
}
