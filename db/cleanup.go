package db

import (
	"context"
	"fmt"
	"time"
)

// CleanupResult reports what a cleanup removed.
type CleanupResult struct {
	Deleted  int64
	Duration time.Duration
}

// Cleanup deletes submissions older than retentionDays and compacts the
// file. Zero days removes everything recorded before now.
func (d *Database) Cleanup(ctx context.Context, retentionDays int) (CleanupResult, error) {
	start := time.Now()
	var result CleanupResult
	if retentionDays < 0 {
		return result, fmt.Errorf("retentionDays must be non-negative, got %d", retentionDays)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(sqliteTime)
	res, err := d.exec(ctx, "DELETE FROM submissions WHERE created_at < ?", cutoff)
	if err != nil {
		return result, fmt.Errorf("failed to delete from submissions: %w", err)
	}
	if result.Deleted, err = res.RowsAffected(); err != nil {
		return result, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := d.exec(ctx, "VACUUM"); err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("cleanup succeeded but VACUUM failed: %w", err)
	}
	result.Duration = time.Since(start)
	return result, nil
}
