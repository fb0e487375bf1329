package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go_rga/core"
	"go_rga/db"
	"go_rga/logging"
	"go_rga/metrics"
)

// finish stores rec in the metrics store and the audit log and logs a
// summary. Failures are logged at warn level with the error's code.
func (e *Engine) finish(ctx context.Context, rec *record, err error) {
	duration := time.Since(rec.start)
	status := metrics.StatusSuccess
	code := ""
	if err != nil {
		status = metrics.StatusError
		if code = core.GetErrorCode(err); code == "" {
			code = "FAILED"
		}
	}

	e.stats.Record(metrics.SubmissionRecord{
		ID:        rec.id,
		Kind:      rec.kind,
		Status:    status,
		StartTime: rec.start,
		Duration:  duration,
		JobHandle: rec.jobHandle,
		Usage:     uint32(rec.usage),
		ErrorCode: code,
	})

	if e.audit != nil {
		row := db.Submission{
			CorrelationID: rec.id,
			Kind:          rec.kind,
			Status:        status,
			Usage:         uint32(rec.usage),
			JobHandle:     rec.jobHandle,
			SrcFormat:     rec.srcFormat,
			DstFormat:     rec.dstFormat,
			ReleaseFence:  rec.fence,
			Duration:      duration,
			ErrorCode:     code,
		}
		if err != nil {
			row.ErrorMessage = err.Error()
		}
		// The row is kept even when the caller's context was cancelled.
		if _, aerr := e.audit.InsertSubmission(context.WithoutCancel(ctx), row); aerr != nil {
			e.log.Warn("failed to record submission", logging.CorrelationID(rec.id), zap.Error(aerr))
		}
	}

	summary := logging.Submission(logging.SubmissionSummary{
		CorrelationID: rec.id,
		Kind:          rec.kind,
		JobHandle:     rec.jobHandle,
		Usage:         uint32(rec.usage),
		Status:        core.StatusOf(err),
		Duration:      duration,
		ReleaseFence:  rec.fence,
	})
	if err != nil {
		e.log.Warn("submission failed", summary, zap.Error(err))
		return
	}
	e.log.Debug("submission done", summary)
}
