package core

// Version is the application version, set at build time via ldflags.
// To inject a version during build, use:
//
//	go build -ldflags "-X go_rga/core.Version=v1.0.0" .
//
// Or with git tag:
//
//	go build -ldflags "-X go_rga/core.Version=$(git describe --tags --always)" .
//
// If not set at build time, defaults to "dev".
var Version = "dev"

// BuildTime is the build timestamp, set at build time via ldflags.
// To inject build time during build, use:
//
//	go build -ldflags "-X go_rga/core.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" .
//
// If not set at build time, defaults to "unknown".
var BuildTime = "unknown"

// GitCommit is the git commit hash, set at build time via ldflags.
// To inject commit hash during build, use:
//
//	go build -ldflags "-X go_rga/core.GitCommit=$(git rev-parse --short HEAD)" .
//
// If not set at build time, defaults to "unknown".
var GitCommit = "unknown"

// GetVersionInfo returns a formatted version line for rgactl, including the
// im2d API version this build speaks.
//
// Example: "rgactl v1.0.0 (im2d 1.10.1, built 2024-01-15T10:30:00Z, commit abc1234)"
func GetVersionInfo(apiVersion string) string {
	return "rgactl " + Version + " (im2d " + apiVersion + ", built " + BuildTime + ", commit " + GitCommit + ")"
}
