package logging

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LevelEnvVar names the variable read for the base log level.
const LevelEnvVar = "RGA_LOG_LEVEL"

type LogLevel = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

// ParseLogLevel reads envVarName and parses it, returning defaultLevel when
// the variable is unset or not a level name.
func ParseLogLevel(envVarName string, defaultLevel zapcore.Level) zapcore.Level {
	value := os.Getenv(envVarName)
	if value == "" {
		return defaultLevel
	}
	return ParseLogLevelString(value, defaultLevel)
}

// ParseLogLevelString accepts debug, info, warn/warning, error and fatal in
// any case.
func ParseLogLevelString(levelStr string, defaultLevel zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return defaultLevel
	}
}
