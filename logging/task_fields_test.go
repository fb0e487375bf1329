package logging

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTaskFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewFromCore(core)

	logger.Info("submit",
		Role("dst"),
		Format("src", 0x2800),
		Usage(1<<19),
		HWVersion("3.0.76831"),
		Fence("acquire_fence", 12),
	)

	ctx := logs.All()[0].ContextMap()
	want := map[string]interface{}{
		"role":          "dst",
		"src_format":    "0x2800",
		"usage":         "0x80000",
		"hw_version":    "3.0.76831",
		"acquire_fence": int64(12),
	}
	for k, v := range want {
		if ctx[k] != v {
			t.Errorf("field %s = %v (%T), want %v", k, ctx[k], ctx[k], v)
		}
	}
}

func TestSubmissionSummary_MarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	s := SubmissionSummary{
		CorrelationID: "abc",
		Kind:          "blit",
		Usage:         0x80000,
		Status:        1,
		Duration:      1500 * time.Microsecond,
	}
	if err := s.MarshalLogObject(enc); err != nil {
		t.Fatalf("MarshalLogObject() error = %v", err)
	}
	if enc.Fields["duration_us"] != int64(1500) {
		t.Errorf("duration_us = %v, want 1500", enc.Fields["duration_us"])
	}
	if _, ok := enc.Fields["job_handle"]; ok {
		t.Error("job_handle present for an immediate submission")
	}
	if _, ok := enc.Fields["release_fence"]; ok {
		t.Error("release_fence present without a fence")
	}
}
