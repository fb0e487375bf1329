package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// NewMultiCore tees a console core and a rotated JSON file core at the same
// level. The file parent directory must exist.
func NewMultiCore(level zapcore.Level, filePath string, isDev bool) (zapcore.Core, error) {
	if _, err := os.Stat(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	return NewMultiCoreWithWriters(level, zapcore.Lock(os.Stdout), NewFileWriter(filePath), isDev), nil
}

// NewMultiCoreWithWriters tees output to the given writers. The file side is
// always JSON; the console side is coloured text in development mode and JSON
// otherwise.
func NewMultiCoreWithWriters(level zapcore.Level, consoleWriter, fileWriter zapcore.WriteSyncer, isDev bool) zapcore.Core {
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(NewEncoderConfig()), fileWriter, level)

	consoleEncoder := zapcore.NewJSONEncoder(NewEncoderConfig())
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	}
	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)

	return zapcore.NewTee(consoleCore, fileCore)
}
