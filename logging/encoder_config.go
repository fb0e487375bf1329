package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// JSON keys used in log output.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldSource     = "source"
	FieldMessage    = "message"
	FieldStacktrace = "stacktrace"
	FieldCaller     = "caller"
)

func baseEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       FieldTimestamp,
		LevelKey:      FieldLevel,
		NameKey:       FieldSource,
		CallerKey:     FieldCaller,
		MessageKey:    FieldMessage,
		StacktraceKey: FieldStacktrace,
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// NewEncoderConfig is the JSON file encoding: ISO8601 time, lowercase levels.
func NewEncoderConfig() zapcore.EncoderConfig {
	cfg := baseEncoderConfig()
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.SecondsDurationEncoder
	return cfg
}

// NewConsoleEncoderConfig is the development console encoding.
func NewConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := baseEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = shortTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// 15:04:05.000
func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}
