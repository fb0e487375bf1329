package core

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	const testKey = "TEST_GET_ENV_OR_DEFAULT"

	tests := []struct {
		name         string
		envValue     string
		defaultValue string
		want         string
	}{
		{"returns env value when set", "custom_value", "default", "custom_value"},
		{"returns default when empty", "", "default", "default"},
		{"returns default when blank", "   ", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(testKey, tt.envValue)
			if got := GetEnvOrDefault(testKey, tt.defaultValue); got != tt.want {
				t.Errorf("GetEnvOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	const testKey = "TEST_PARSE_INT_ENV"

	tests := []struct {
		name     string
		envValue string
		want     int
	}{
		{"decimal", "42", 42},
		{"hex", "0x10", 16},
		{"negative", "-3", -3},
		{"invalid", "abc", 7},
		{"unset", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(testKey, tt.envValue)
			if got := ParseIntEnv(testKey, 7); got != tt.want {
				t.Errorf("ParseIntEnv() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	const testKey = "TEST_PARSE_BOOL_ENV"

	tests := []struct {
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Setenv(testKey, tt.envValue)
		if got := ParseBoolEnv(testKey, tt.defaultValue); got != tt.want {
			t.Errorf("ParseBoolEnv(%q) = %v, want %v", tt.envValue, got, tt.want)
		}
	}
}

func TestParseDurationEnv(t *testing.T) {
	const testKey = "TEST_PARSE_DURATION_ENV"

	tests := []struct {
		envValue string
		want     time.Duration
	}{
		{"250ms", 250 * time.Millisecond},
		{"3", 3 * time.Second},
		{"soon", time.Minute},
		{"", time.Minute},
	}

	for _, tt := range tests {
		t.Setenv(testKey, tt.envValue)
		if got := ParseDurationEnv(testKey, time.Minute); got != tt.want {
			t.Errorf("ParseDurationEnv(%q) = %v, want %v", tt.envValue, got, tt.want)
		}
	}
}
