package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnvVar forces debug level output when set to a positive integer or a
// truthy string.
const DebugEnvVar = "ROCKCHIP_RGA_LOG"

// Logger wraps zap.Logger with a sugared twin for key/value and printf
// style calls. Library packages take a *Logger and fall back to NewNop.
//
// Example:
//
//	logger, err := NewLogger(true, "rga.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("session ready", DriverType("MULTI_RGA"))
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger

	isDevelopment bool
	logFilePath   string
}

// NewLogger creates a Logger that writes to the console and to a rotated
// JSON file at logFilePath.
//
// Development mode logs at debug level with coloured console output,
// production mode at info level with JSON on both outputs. DebugEnvVar
// overrides the level to debug in either mode.
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	return NewLoggerWithConfig(isDevelopment, logFilePath, DefaultFileWriterConfig())
}

// NewLoggerWithConfig is NewLogger with custom file rotation settings.
func NewLoggerWithConfig(isDevelopment bool, logFilePath string, fileConfig FileWriterConfig) (*Logger, error) {
	if logFilePath == "" {
		return nil, fmt.Errorf("failed to create log core: empty log file path")
	}

	level := defaultLevel(isDevelopment)
	fileWriter := NewFileWriterWithConfig(logFilePath, fileConfig)
	core := NewMultiCoreWithWriters(level, zapcore.Lock(os.Stdout), fileWriter, isDevelopment)

	return newFromCore(core, isDevelopment, logFilePath), nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	z := zap.NewNop()
	return &Logger{zap: z, sugar: z.Sugar()}
}

// NewFromCore builds a Logger on an existing core. Tests use it with an
// observer core.
func NewFromCore(core zapcore.Core) *Logger {
	return newFromCore(core, true, "")
}

func newFromCore(core zapcore.Core, isDevelopment bool, path string) *Logger {
	z := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1), // skip this wrapper
	)
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: isDevelopment,
		logFilePath:   path,
	}
}

func defaultLevel(isDevelopment bool) zapcore.Level {
	level := ParseLogLevel(LevelEnvVar, zapcore.InfoLevel)
	if isDevelopment || DebugEnabled() {
		level = zapcore.DebugLevel
	}
	return level
}

// DebugEnabled reports whether DebugEnvVar asks for debug output.
func DebugEnabled() bool {
	v := strings.TrimSpace(os.Getenv(DebugEnvVar))
	if v == "" {
		return false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n > 0
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return l
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Fatal logs at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zap.Fatal(msg, fields...) }

func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *Logger) Debugf(template string, args ...interface{}) { l.sugar.Debugf(template, args...) }
func (l *Logger) Infof(template string, args ...interface{})  { l.sugar.Infof(template, args...) }
func (l *Logger) Warnf(template string, args ...interface{})  { l.sugar.Warnf(template, args...) }
func (l *Logger) Errorf(template string, args ...interface{}) { l.sugar.Errorf(template, args...) }

// With creates a child logger that adds fields to every entry.
//
// Example:
//
//	jobLog := logger.With(JobHandle(h), CorrelationID(id))
//	jobLog.Info("task appended")
func (l *Logger) With(fields ...zap.Field) *Logger {
	z := l.zap.With(fields...)
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Named adds a sub-logger name, e.g. "session" or "job".
func (l *Logger) Named(name string) *Logger {
	z := l.zap.Named(name)
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Zap returns the underlying zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Core returns the underlying core, used to check enabled levels.
func (l *Logger) Core() zapcore.Core {
	return l.zap.Core()
}

func (l *Logger) IsDevelopment() bool {
	return l.isDevelopment
}

func (l *Logger) LogFilePath() string {
	return l.logFilePath
}
