package engine

import (
	"context"

	"go_rga/core"
	"go_rga/op"
	"go_rga/surface"
)

// The helpers below run synchronously. Use Submit with op.Async for a
// release fence.

func (e *Engine) run(ctx context.Context, t Task) error {
	t.Usage |= op.Sync
	_, err := e.Submit(ctx, t)
	return err
}

// Copy copies src into dst. Both must have the same size.
func (e *Engine) Copy(ctx context.Context, src, dst surface.Buffer) error {
	if src.Width != dst.Width || src.Height != dst.Height {
		return core.ErrInvalid("dst", "copy cannot scale, src[w,h] = [%d,%d], dst[w,h] = [%d,%d]",
			src.Width, src.Height, dst.Width, dst.Height)
	}
	return e.run(ctx, Task{Src: src, Dst: dst})
}

// Resize scales src to fill dst. InterpDefault lets the scale ratio pick
// the filter.
func (e *Engine) Resize(ctx context.Context, src, dst surface.Buffer, interp op.InterpMode) error {
	t := Task{Src: src, Dst: dst}
	if interp != op.InterpDefault {
		t.Options.Interp = op.InterpBoth(interp)
	}
	return e.run(ctx, t)
}

// Rotate rotates src by op.Rot90, op.Rot180 or op.Rot270 into dst.
func (e *Engine) Rotate(ctx context.Context, src, dst surface.Buffer, rotation op.Usage) error {
	switch rotation {
	case op.Rot90, op.Rot180, op.Rot270:
	default:
		return core.ErrInvalid("", "rotation %s (0x%x) is not a single rotation", op.RotateString(rotation), uint32(rotation))
	}
	return e.run(ctx, Task{Src: src, Dst: dst, Usage: rotation})
}

// Flip mirrors src into dst by op.FlipH, op.FlipV or op.FlipHV.
func (e *Engine) Flip(ctx context.Context, src, dst surface.Buffer, mode op.Usage) error {
	switch mode {
	case op.FlipH, op.FlipV, op.FlipHV:
	default:
		return core.ErrInvalid("", "flip mode %s (0x%x) is not a single flip", op.FlipString(mode), uint32(mode))
	}
	return e.run(ctx, Task{Src: src, Dst: dst, Usage: mode})
}

// Blend composes fg onto bg in place with one blend mode, optionally
// combined with op.PreMul.
func (e *Engine) Blend(ctx context.Context, fg, bg surface.Buffer, mode op.Usage) error {
	return e.Composite(ctx, fg, surface.Buffer{}, bg, mode)
}

// Composite blends fg over bg into dst. A zero bg blends onto dst.
func (e *Engine) Composite(ctx context.Context, fg, bg, dst surface.Buffer, mode op.Usage) error {
	blend := mode & op.BlendMask
	if blend == 0 || blend&(blend-1) != 0 || mode&^(op.BlendMask|op.PreMul) != 0 {
		return core.ErrInvalid("", "blend usage 0x%x must hold exactly one blend mode", uint32(mode))
	}
	return e.run(ctx, Task{Src: fg, Pat: bg, Dst: dst, Usage: mode})
}

// Fill paints rect of dst with color, packed as the destination format
// expects. A zero rect fills the whole buffer.
func (e *Engine) Fill(ctx context.Context, dst surface.Buffer, rect surface.Rect, color uint32) error {
	return e.run(ctx, Task{
		Dst:     dst,
		DstRect: rect,
		Usage:   op.ColorFill,
		Options: op.Options{Color: color},
	})
}

// Palette expands the indexed src into dst through lut. A zero lut reuses
// the table already loaded in the hardware.
func (e *Engine) Palette(ctx context.Context, src, dst, lut surface.Buffer) error {
	if !src.Format.IsBPP() {
		return core.ErrInvalid("src", "palette source must be a BPP format, got %s", src.Format)
	}
	return e.run(ctx, Task{Src: src, Dst: dst, Pat: lut, Usage: op.ColorPalette})
}

// Crop copies rect of src into dst at the origin.
func (e *Engine) Crop(ctx context.Context, src, dst surface.Buffer, rect surface.Rect) error {
	if rect.Width <= 0 || rect.Height <= 0 {
		return core.ErrInvalid("src", "crop rect %s has no size", rect)
	}
	return e.run(ctx, Task{Src: src, Dst: dst, SrcRect: rect, Usage: op.Crop})
}
