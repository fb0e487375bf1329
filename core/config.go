package core

import (
	"fmt"
	"time"
)

// Defaults for the RGA control path.
const (
	DefaultDevicePath     = "/dev/rga"
	DefaultLogFile        = "rga.log"
	DefaultJobTaskMax     = 100 // RGA_TASK_NUM_MAX
	DefaultMetricsHistory = 100
	DefaultShutdownWait   = 5 * time.Second
)

// Config holds all configuration values
type Config struct {
	// Device
	DevicePath string

	// Logging
	LogFile  string
	DevMode  bool
	LogLevel string
	DebugLog bool // ROCKCHIP_RGA_LOG

	// Audit store (empty disables it)
	DBPath string

	// Optional YAML file with extra hardware SKU rows
	SKUFile string

	// Session defaults used when options leave core/priority at zero
	DefaultCore     int
	DefaultPriority int

	// Job manager
	JobTaskMax int

	// Metrics
	MetricsHistory int

	// Graceful shutdown budget for Close
	ShutdownTimeout time.Duration
}

// LoadConfig builds Config from the process environment. Call
// godotenv.Load first if a .env file should be honoured.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DevicePath:      GetEnvOrDefault("RGA_DEVICE", DefaultDevicePath),
		LogFile:         GetEnvOrDefault("RGA_LOG_FILE", DefaultLogFile),
		DevMode:         ParseBoolEnv("RGA_DEV_MODE", false),
		LogLevel:        GetEnvOrDefault("RGA_LOG_LEVEL", ""),
		DebugLog:        ParseIntEnv("ROCKCHIP_RGA_LOG", 0) > 0,
		DBPath:          GetEnvOrDefault("RGA_DB_PATH", ""),
		SKUFile:         GetEnvOrDefault("RGA_SKU_FILE", ""),
		DefaultCore:     ParseIntEnv("RGA_DEFAULT_CORE", 0),
		DefaultPriority: ParseIntEnv("RGA_DEFAULT_PRIORITY", 0),
		JobTaskMax:      ParseIntEnv("RGA_JOB_TASK_MAX", DefaultJobTaskMax),
		MetricsHistory:  ParseIntEnv("RGA_METRICS_HISTORY", DefaultMetricsHistory),
		ShutdownTimeout: ParseDurationEnv("RGA_SHUTDOWN_TIMEOUT", DefaultShutdownWait),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. It returns the first violation.
func (c *Config) Validate() error {
	if c.DevicePath == "" {
		return ErrMissingConfig("RGA_DEVICE")
	}
	if c.JobTaskMax < 1 {
		return ErrInvalidConfig("RGA_JOB_TASK_MAX", fmt.Sprintf("must be at least 1, got %d", c.JobTaskMax))
	}
	if c.MetricsHistory < 1 {
		return ErrInvalidConfig("RGA_METRICS_HISTORY", fmt.Sprintf("must be at least 1, got %d", c.MetricsHistory))
	}
	if c.DefaultPriority < 0 || c.DefaultPriority > 6 {
		return ErrInvalidConfig("RGA_DEFAULT_PRIORITY", fmt.Sprintf("must be between 0 and 6, got %d", c.DefaultPriority))
	}
	if c.DefaultCore < 0 {
		return ErrInvalidConfig("RGA_DEFAULT_CORE", fmt.Sprintf("cannot be negative, got %d", c.DefaultCore))
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidConfig("RGA_SHUTDOWN_TIMEOUT", "must be positive")
	}
	return nil
}

// AuditEnabled reports whether submissions are persisted to sqlite.
func (c *Config) AuditEnabled() bool {
	return c.DBPath != ""
}
