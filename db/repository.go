package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Submission is one row of the submissions table.
type Submission struct {
	ID            int64
	CorrelationID string
	Kind          string // blit, fill, palette, job, import, release
	Status        string // success or error
	Usage         uint32
	JobHandle     uint32
	SrcFormat     string
	DstFormat     string
	ReleaseFence  int
	Duration      time.Duration
	ErrorCode     string
	ErrorMessage  string
	CreatedAt     time.Time
}

// sqliteTime is the layout of CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

const insertSubmission = `
	INSERT INTO submissions (
		correlation_id, kind, status, usage, job_handle,
		src_format, dst_format, release_fence, duration_us,
		error_code, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectSubmission = `
	SELECT id, correlation_id, kind, status, usage, job_handle,
		   COALESCE(src_format, ''), COALESCE(dst_format, ''),
		   release_fence, duration_us,
		   COALESCE(error_code, ''), COALESCE(error_message, ''),
		   created_at
	FROM submissions`

// Repository reads and writes submission rows. With a started AsyncWriter
// inserts are queued; when the queue is full they fall back to a direct
// write.
type Repository struct {
	db     *Database
	writer *AsyncWriter
}

// NewRepository returns a Repository over d. writer may be nil.
func NewRepository(d *Database, writer *AsyncWriter) *Repository {
	return &Repository{db: d, writer: writer}
}

func submissionArgs(s Submission) []any {
	return []any{
		s.CorrelationID,
		s.Kind,
		s.Status,
		s.Usage,
		s.JobHandle,
		nullString(s.SrcFormat),
		nullString(s.DstFormat),
		s.ReleaseFence,
		s.Duration.Microseconds(),
		nullString(s.ErrorCode),
		nullString(s.ErrorMessage),
	}
}

// InsertSubmission stores s. It returns the row id, or 0 when the insert
// was queued.
func (r *Repository) InsertSubmission(ctx context.Context, s Submission) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	if r.writer != nil && r.writer.IsStarted() && r.writer.Write(s) {
		return 0, nil
	}
	return r.insert(ctx, s)
}

func (r *Repository) insert(ctx context.Context, s Submission) (int64, error) {
	res, err := r.db.exec(ctx, insertSubmission, submissionArgs(s)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// WriteHandler returns the handler an AsyncWriter uses to drain queued
// submissions into this repository.
func (r *Repository) WriteHandler() WriteHandler {
	return func(ctx context.Context, s Submission) error {
		_, err := r.insert(ctx, s)
		return err
	}
}

// QueryRecent returns up to limit rows, newest first.
func (r *Repository) QueryRecent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, selectSubmission+` ORDER BY id DESC LIMIT ?`, limit)
}

// QueryByCorrelationID returns the rows recorded under id, newest first.
func (r *Repository) QueryByCorrelationID(ctx context.Context, id string) ([]Submission, error) {
	return r.list(ctx, selectSubmission+` WHERE correlation_id = ? ORDER BY id DESC`, id)
}

// QueryErrors returns up to limit failed rows, newest first.
func (r *Repository) QueryErrors(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, selectSubmission+` WHERE status = 'error' ORDER BY id DESC LIMIT ?`, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Submission, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		var durationUS int64
		var createdAt string
		if err := rows.Scan(
			&s.ID,
			&s.CorrelationID,
			&s.Kind,
			&s.Status,
			&s.Usage,
			&s.JobHandle,
			&s.SrcFormat,
			&s.DstFormat,
			&s.ReleaseFence,
			&durationUS,
			&s.ErrorCode,
			&s.ErrorMessage,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		s.Duration = time.Duration(durationUS) * time.Microsecond
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}
	return out, nil
}

// parseTime accepts the CURRENT_TIMESTAMP layout and the RFC 3339 form the
// driver returns for typed DATETIME columns.
func parseTime(s string) time.Time {
	if t, err := time.Parse(sqliteTime, s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// Count returns the number of stored rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	conn, err := r.db.conn()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return n, nil
}

func nullString(s string) any {
	if s == "" {
		return sql.NullString{}
	}
	return s
}
