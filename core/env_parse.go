package core

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvOrDefault returns the value of an environment variable or a default value.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// ParseIntEnv parses an environment variable as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
// Hex values with a 0x prefix are accepted.
func ParseIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.ParseInt(value, 0, 64); err == nil {
			return int(intValue)
		}
	}
	return defaultValue
}

// ParseBoolEnv parses an environment variable as a boolean.
// Accepts case-insensitive: "true", "1", "yes", "on" as true values.
// Accepts case-insensitive: "false", "0", "no", "off" as false values.
// Returns the default value if the variable is not set or cannot be parsed.
func ParseBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ParseDurationEnv parses an environment variable as a Go duration ("5s",
// "250ms"). A bare integer is read as seconds.
func ParseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
