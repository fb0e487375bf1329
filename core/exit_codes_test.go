package core

import (
	"errors"
	"testing"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeSuccess},
		{"version", ErrVersion("too old"), ExitCodeVersion},
		{"unsupported hw", ErrUnsupportedHardware("9.9.9"), ExitCodeNotSupported},
		{"device", ErrDevice("open", errors.New("ENOENT")), ExitCodeDevice},
		{"config", ErrMissingConfig("RGA_DEVICE"), ExitCodeUsage},
		{"plain", errors.New("x"), ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d (%s), want %d (%s)", got, ExitCodeName(got), tt.want, ExitCodeName(tt.want))
			}
		})
	}
}

func TestIsSignalExit(t *testing.T) {
	if !IsSignalExit(ExitCodeSIGINT) || !IsSignalExit(ExitCodeSIGTERM) {
		t.Error("IsSignalExit() = false for a signal exit code")
	}
	if IsSignalExit(ExitCodeDevice) {
		t.Error("IsSignalExit(ExitCodeDevice) = true, want false")
	}
}
