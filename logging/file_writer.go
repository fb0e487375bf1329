package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the rgactl log file.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	DefaultCompress   = true
)

// FileWriterConfig controls log file rotation. Zero sizes fall back to the
// defaults; Compress has no zero-value default, use DefaultFileWriterConfig.
type FileWriterConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	LocalTime  bool // backup names in local time instead of UTC
}

func DefaultFileWriterConfig() FileWriterConfig {
	return FileWriterConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
}

// NewFileWriter returns a rotating WriteSyncer with the default settings.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return NewFileWriterWithConfig(path, DefaultFileWriterConfig())
}

// NewFileWriterWithConfig returns a lumberjack-backed WriteSyncer.
func NewFileWriterWithConfig(path string, config FileWriterConfig) zapcore.WriteSyncer {
	cfg := applyFileWriterDefaults(config)
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	})
}

func applyFileWriterDefaults(config FileWriterConfig) FileWriterConfig {
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = DefaultMaxSizeMB
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = DefaultMaxBackups
	}
	if config.MaxAgeDays <= 0 {
		config.MaxAgeDays = DefaultMaxAgeDays
	}
	return config
}
