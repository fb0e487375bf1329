//go:build linux

package device

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// errRestartSys is the kernel-internal ERESTARTSYS, which some drivers leak
// to user space when a signal interrupts the call.
const errRestartSys = unix.Errno(512)

// CharDevice is a Device backed by the driver's character device node.
type CharDevice struct {
	mu   sync.RWMutex
	fd   int
	path string
}

// Open opens the device node read-write with close-on-exec.
func Open(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &CharDevice{fd: fd, path: path}, nil
}

var _ Opener = Open

// Path returns the device node path.
func (d *CharDevice) Path() string {
	return d.path
}

func (d *CharDevice) ioctl(ctx context.Context, req uintptr, arg unsafe.Pointer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.fd < 0 {
		return ErrClosed
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR, errRestartSys:
			continue
		default:
			return errno
		}
	}
}

func (d *CharDevice) DriverVersion(ctx context.Context) (VersionInfo, error) {
	var v VersionInfo
	err := d.ioctl(ctx, IOCGetDriverVersion, unsafe.Pointer(&v))
	return v, err
}

func (d *CharDevice) HWVersions(ctx context.Context) (HWVersions, error) {
	var v HWVersions
	err := d.ioctl(ctx, IOCGetHWVersion, unsafe.Pointer(&v))
	return v, err
}

// LegacyVersion asks the RGA2 request first and falls back to the RGA1
// request, as older drivers only answer one of them.
func (d *CharDevice) LegacyVersion(ctx context.Context) (string, error) {
	var buf [32]byte
	err := d.ioctl(ctx, RGA2GetVersion, unsafe.Pointer(&buf[0]))
	if err != nil {
		if err = d.ioctl(ctx, RGAGetVersion, unsafe.Pointer(&buf[0])); err != nil {
			return "", err
		}
	}
	return cString(buf[:]), nil
}

func (d *CharDevice) Blit(ctx context.Context, req *Request, async bool) error {
	nr := uintptr(RGABlitSync)
	if async {
		nr = RGABlitAsync
	}
	err := d.ioctl(ctx, nr, unsafe.Pointer(req))
	runtime.KeepAlive(req)
	return err
}

func (d *CharDevice) CreateJob(ctx context.Context, flags uint32) (uint32, error) {
	v := flags
	if err := d.ioctl(ctx, IOCRequestCreate, unsafe.Pointer(&v)); err != nil {
		return 0, err
	}
	return v, nil
}

func (d *CharDevice) SubmitJob(ctx context.Context, req *UserRequest) error {
	err := d.ioctl(ctx, IOCRequestSubmit, unsafe.Pointer(req))
	runtime.KeepAlive(req)
	return err
}

func (d *CharDevice) ConfigJob(ctx context.Context, req *UserRequest) error {
	err := d.ioctl(ctx, IOCRequestConfig, unsafe.Pointer(req))
	runtime.KeepAlive(req)
	return err
}

func (d *CharDevice) CancelJob(ctx context.Context, id uint32) error {
	v := id
	return d.ioctl(ctx, IOCRequestCancel, unsafe.Pointer(&v))
}

func (d *CharDevice) ImportBuffers(ctx context.Context, bufs []ExternalBuffer) error {
	return d.bufferPool(ctx, IOCImportBuffer, bufs)
}

func (d *CharDevice) ReleaseBuffers(ctx context.Context, bufs []ExternalBuffer) error {
	return d.bufferPool(ctx, IOCReleaseBuffer, bufs)
}

func (d *CharDevice) bufferPool(ctx context.Context, req uintptr, bufs []ExternalBuffer) error {
	if len(bufs) == 0 {
		return nil
	}
	pool := BufferPool{
		Buffers: uint64(uintptr(unsafe.Pointer(&bufs[0]))),
		Size:    uint32(len(bufs)),
	}
	err := d.ioctl(ctx, req, unsafe.Pointer(&pool))
	runtime.KeepAlive(bufs)
	return err
}

func (d *CharDevice) CloseFence(fd int) error {
	if fd <= 0 {
		return nil
	}
	return unix.Close(fd)
}

// Close releases the file descriptor. Calling it twice is harmless.
func (d *CharDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
