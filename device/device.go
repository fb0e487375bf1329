// Package device is the blocking control interface to the RGA kernel
// driver: ioctl request numbers, the wire structs the driver reads and an
// implementation over a character device.
package device

import (
	"context"
	"errors"
)

// DefaultPath is the device node the driver registers.
const DefaultPath = "/dev/rga"

// ErrClosed is returned by calls on a closed device.
var ErrClosed = errors.New("device closed")

// Device issues requests to the driver. Every method blocks until the
// driver answers; interrupted calls are retried internally.
type Device interface {
	// DriverVersion queries the multi-core driver version. Legacy drivers
	// fail this call.
	DriverVersion(ctx context.Context) (VersionInfo, error)
	// HWVersions lists the version of every hardware core.
	HWVersions(ctx context.Context) (HWVersions, error)
	// LegacyVersion reads the version string of a legacy driver.
	LegacyVersion(ctx context.Context) (string, error)

	// Blit executes one request. With async set the driver fills
	// req.OutFenceFD and returns before the hardware finishes.
	Blit(ctx context.Context, req *Request, async bool) error

	CreateJob(ctx context.Context, flags uint32) (uint32, error)
	SubmitJob(ctx context.Context, req *UserRequest) error
	ConfigJob(ctx context.Context, req *UserRequest) error
	CancelJob(ctx context.Context, id uint32) error

	// ImportBuffers registers external buffers; the driver writes each
	// buffer's Handle.
	ImportBuffers(ctx context.Context, bufs []ExternalBuffer) error
	ReleaseBuffers(ctx context.Context, bufs []ExternalBuffer) error

	// CloseFence closes a fence file descriptor returned by the driver.
	CloseFence(fd int) error

	Close() error
}

// Opener opens the device at path.
type Opener func(path string) (Device, error)
