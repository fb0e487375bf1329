// Package validate decides whether a blit request fits the hardware
// envelope described by a capability row, before anything reaches the
// driver.
package validate

import (
	"math/bits"

	"go_rga/capability"
	"go_rga/core"
	"go_rga/op"
	"go_rga/surface"
)

// Request is the part of a task the validator looks at.
type Request struct {
	Src, Dst, Pat             surface.Buffer
	SrcRect, DstRect, PatRect surface.Rect
	Usage                     op.Usage
}

// PatternEnabled reports whether the pattern channel takes part as the
// blend background.
func (r Request) PatternEnabled() bool {
	return r.Usage.Any(op.BlendMask) && r.Pat.HasMemory()
}

// Prepare narrows each buffer to its rect and rejects formats the library
// does not know. With Crop set the destination rect takes the source
// rect's size.
func Prepare(req Request) (Request, error) {
	if req.Usage.Has(op.Crop) {
		req.DstRect.Width = req.SrcRect.Width
		req.DstRect.Height = req.SrcRect.Height
	}

	req.Src = req.Src.Apply(req.SrcRect)
	if !req.Src.Format.Known() && !req.Usage.Has(op.ColorFill) {
		return req, core.ErrNotSupported("src", "invalid format [0x%x]", uint32(req.Src.Format))
	}
	req.Dst = req.Dst.Apply(req.DstRect)
	if !req.Dst.Format.Known() {
		return req, core.ErrNotSupported("dst", "invalid format [0x%x]", uint32(req.Dst.Format))
	}
	if req.Pat.HasMemory() {
		req.Pat = req.Pat.Apply(req.PatRect)
		if !req.Pat.Format.Known() {
			return req, core.ErrNotSupported("pat", "invalid format [0x%x]", uint32(req.Pat.Format))
		}
	}
	return req, nil
}

// Check runs every check in order and returns the first failure. Buffers
// must already be prepared.
func Check(req Request, row capability.Row) error {
	patEnabled := req.PatternEnabled()
	fill := req.Usage.Has(op.ColorFill)

	if err := CheckFeature(req.Src, req.Pat, req.Dst, patEnabled, req.Usage, row.Features); err != nil {
		return err
	}

	if !fill {
		if err := checkChannel("src", req.Src, req.SrcRect, row.InputMax, row.InputFormats, row.ByteStride, true, req.Usage); err != nil {
			return err
		}
	}

	if patEnabled {
		if row.IsRGA1() {
			return core.ErrNotSupported("pat", "RGA1/RGA1_PLUS cannot support src1")
		}
		if err := checkChannel("pat", req.Pat, req.PatRect, row.InputMax, row.InputFormats, row.ByteStride, true, req.Usage); err != nil {
			return err
		}
	}

	if err := checkChannel("dst", req.Dst, req.DstRect, row.OutputMax, row.OutputFormats, row.ByteStride, false, req.Usage); err != nil {
		return err
	}

	if !fill {
		if err := CheckScale(req.Src, req.Dst, row.ScaleLimit, req.Usage); err != nil {
			return err
		}
	}

	if req.Usage.Any(op.BlendMask) {
		if n := bits.OnesCount32(uint32(req.Usage & op.BlendMask)); n > 1 {
			return core.ErrInvalid("usage", "only one blend mode may be set, got %s", req.Usage&op.BlendMask)
		}
		if err := CheckBlend(req.Src, req.Pat, req.Dst, patEnabled); err != nil {
			return err
		}
	}

	return CheckRotate(req.Usage, row)
}

// PrepareAndCheck is Prepare followed by Check.
func PrepareAndCheck(req Request, row capability.Row) (Request, error) {
	req, err := Prepare(req)
	if err != nil {
		return req, err
	}
	return req, Check(req, row)
}

func checkChannel(role string, b surface.Buffer, r surface.Rect, max capability.Resolution,
	formats capability.FormatGroup, byteStride int, isRead bool, usage op.Usage) error {
	if err := CheckAddress(role, b); err != nil {
		return err
	}
	if err := CheckBuffer(role, b, r, max); err != nil {
		return err
	}
	if err := CheckFormat(role, b, r, formats, usage); err != nil {
		return err
	}
	return CheckAlign(role, b, byteStride, isRead)
}

// CheckAddress requires exactly one addressing mode.
func CheckAddress(role string, b surface.Buffer) error {
	switch modes := b.AddrModes(); len(modes) {
	case 0:
		return core.ErrIllegal(role, "buffer has no address, fd = %d, phys = 0x%x, virt = 0x%x, handle = %d",
			b.FD, b.Phys, b.Virt, b.Handle)
	case 1:
		return nil
	default:
		return core.ErrIllegal(role, "buffer has %d addressing modes %v, exactly one is allowed", len(modes), modes)
	}
}
