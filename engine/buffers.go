package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go_rga/core"
	"go_rga/device"
	"go_rga/metrics"
	"go_rga/surface"
)

var errNoHandle = errors.New("driver returned handle 0")

// Import describes memory to register with the driver. Exactly one of FD,
// Phys or Virt is set. Either Size or the Width, Height and Format triple
// tells the driver how much memory to map.
type Import struct {
	FD   int
	Phys uint64
	Virt uint64

	Size   uint32
	Width  int
	Height int
	Format surface.Format
}

func (im Import) external() (device.ExternalBuffer, error) {
	var ext device.ExternalBuffer
	n := 0
	if im.FD > 0 {
		ext.Memory, ext.Type = uint64(im.FD), device.MemoryDMABuf
		n++
	}
	if im.Phys != 0 {
		ext.Memory, ext.Type = im.Phys, device.MemoryPhysAddr
		n++
	}
	if im.Virt != 0 {
		ext.Memory, ext.Type = im.Virt, device.MemoryVirtAddr
		n++
	}
	if n != 1 {
		return ext, core.ErrIllegal("import", "exactly one of fd = %d, phys = 0x%x, virt = 0x%x is required",
			im.FD, im.Phys, im.Virt)
	}

	switch {
	case im.Width > 0 && im.Height > 0:
		if !im.Format.Known() {
			return ext, core.ErrNotSupported("import", "invalid format [0x%x]", uint32(im.Format))
		}
		ext.Info = device.MemoryParam{
			Width:  uint32(im.Width),
			Height: uint32(im.Height),
			Format: im.Format.Wire(),
			Size:   im.Size,
		}
	case im.Size > 0:
		ext.Info.Size = im.Size
	default:
		return ext, core.ErrInvalid("import", "size = %d, width = %d, height = %d: a size or geometry is required",
			im.Size, im.Width, im.Height)
	}
	return ext, nil
}

// ImportBuffer registers memory with the driver and returns its handle.
func (e *Engine) ImportBuffer(ctx context.Context, im Import) (uint32, error) {
	var handle uint32
	err := e.track(ctx, "import", func(ctx context.Context) error {
		rec := newRecord(metrics.KindImport, 0)
		var err error
		handle, err = e.importBuffer(ctx, im)
		e.finish(ctx, rec, err)
		return err
	})
	return handle, err
}

func (e *Engine) importBuffer(ctx context.Context, im Import) (uint32, error) {
	ext, err := im.external()
	if err != nil {
		return 0, err
	}
	dev, err := e.sess.Device(ctx)
	if err != nil {
		return 0, err
	}
	bufs := []device.ExternalBuffer{ext}
	if err := dev.ImportBuffers(ctx, bufs); err != nil {
		return 0, core.ErrDevice("buffer import", err)
	}
	if bufs[0].Handle == 0 {
		return 0, core.ErrDevice("buffer import", errNoHandle)
	}
	e.log.Debug("buffer imported", zap.Uint32("handle", bufs[0].Handle), zap.Uint32("type", ext.Type))
	return bufs[0].Handle, nil
}

// ImportSurface imports the memory behind b and returns b addressed by the
// new handle. The caller releases the handle with ReleaseBuffer.
func (e *Engine) ImportSurface(ctx context.Context, b surface.Buffer) (surface.Buffer, error) {
	stride := b.WStride
	if stride == 0 {
		stride = b.Width
	}
	handle, err := e.ImportBuffer(ctx, Import{
		FD:     b.FD,
		Phys:   b.Phys,
		Virt:   b.Virt,
		Width:  stride,
		Height: b.EffectiveHStride(),
		Format: b.Format,
	})
	if err != nil {
		return surface.Buffer{}, err
	}
	out := b
	out.FD, out.Phys, out.Virt = 0, 0, 0
	out.Handle = handle
	out.HandleMMU = true
	return out, nil
}

// ReleaseBuffer drops a handle returned by ImportBuffer.
func (e *Engine) ReleaseBuffer(ctx context.Context, handle uint32) error {
	return e.track(ctx, "release", func(ctx context.Context) error {
		rec := newRecord(metrics.KindRelease, 0)
		err := e.releaseBuffer(ctx, handle)
		e.finish(ctx, rec, err)
		return err
	})
}

func (e *Engine) releaseBuffer(ctx context.Context, handle uint32) error {
	if handle == 0 {
		return core.ErrInvalid("release", "buffer handle is 0")
	}
	dev, err := e.sess.Device(ctx)
	if err != nil {
		return err
	}
	if err := dev.ReleaseBuffers(ctx, []device.ExternalBuffer{{Handle: handle}}); err != nil {
		return core.ErrDevice("buffer release", err)
	}
	return nil
}
