package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field constructors for the values that show up in almost every blit log
// line. Keys are shared with the audit table column names.

func JobHandle(h uint32) zap.Field { return zap.Uint32("job_handle", h) }

// Role is the channel a message refers to: src, dst, pat or lut.
func Role(role string) zap.Field { return zap.String("role", role) }

// Format logs a native format code in hex, the way the kernel prints it.
func Format(role string, format uint32) zap.Field {
	return zap.String(role+"_format", fmt.Sprintf("0x%x", format))
}

func Usage(usage uint32) zap.Field { return zap.String("usage", fmt.Sprintf("0x%x", usage)) }

func DriverType(name string) zap.Field { return zap.String("driver_type", name) }

func HWVersion(v string) zap.Field { return zap.String("hw_version", v) }

func CorrelationID(id string) zap.Field { return zap.String("correlation_id", id) }

// Fence logs a fence fd under name, e.g. "acquire_fence" or "release_fence".
func Fence(name string, fd int) zap.Field { return zap.Int(name, fd) }

// SubmissionSummary is logged once per submission as a nested object.
type SubmissionSummary struct {
	CorrelationID string
	Kind          string
	JobHandle     uint32
	Usage         uint32
	Status        int
	Duration      time.Duration
	ReleaseFence  int
}

// MarshalLogObject implements zapcore.ObjectMarshaler. Duration goes out in
// microseconds since most blits finish well under a millisecond.
func (s SubmissionSummary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("correlation_id", s.CorrelationID)
	enc.AddString("kind", s.Kind)
	if s.JobHandle != 0 {
		enc.AddUint32("job_handle", s.JobHandle)
	}
	enc.AddString("usage", fmt.Sprintf("0x%x", s.Usage))
	enc.AddInt("status", s.Status)
	enc.AddInt64("duration_us", s.Duration.Microseconds())
	if s.ReleaseFence > 0 {
		enc.AddInt("release_fence", s.ReleaseFence)
	}
	return nil
}

// Submission wraps a summary as a zap field.
func Submission(s SubmissionSummary) zap.Field {
	return zap.Object("submission", s)
}
