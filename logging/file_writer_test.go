package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFileWriterConfig(t *testing.T) {
	config := DefaultFileWriterConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"MaxSizeMB", config.MaxSizeMB, DefaultMaxSizeMB},
		{"MaxBackups", config.MaxBackups, DefaultMaxBackups},
		{"MaxAgeDays", config.MaxAgeDays, DefaultMaxAgeDays},
		{"Compress", config.Compress, DefaultCompress},
		{"LocalTime", config.LocalTime, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultFileWriterConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNewFileWriter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rga.log")
	writer := NewFileWriter(logPath)

	msg := []byte("blit submitted\n")
	n, err := writer.Write(msg)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(msg) {
		t.Errorf("Write() = %d, want %d", n, len(msg))
	}
	if err := writer.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != string(msg) {
		t.Errorf("file content = %q, want %q", data, msg)
	}
}

func TestApplyFileWriterDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input FileWriterConfig
		want  FileWriterConfig
	}{
		{
			name:  "zero values use defaults",
			input: FileWriterConfig{},
			want:  FileWriterConfig{MaxSizeMB: DefaultMaxSizeMB, MaxBackups: DefaultMaxBackups, MaxAgeDays: DefaultMaxAgeDays},
		},
		{
			name:  "custom values preserved",
			input: FileWriterConfig{MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 1, Compress: true},
			want:  FileWriterConfig{MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 1, Compress: true},
		},
		{
			name:  "negative values use defaults",
			input: FileWriterConfig{MaxSizeMB: -1, MaxBackups: -1, MaxAgeDays: -1},
			want:  FileWriterConfig{MaxSizeMB: DefaultMaxSizeMB, MaxBackups: DefaultMaxBackups, MaxAgeDays: DefaultMaxAgeDays},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyFileWriterDefaults(tt.input); got != tt.want {
				t.Errorf("applyFileWriterDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
