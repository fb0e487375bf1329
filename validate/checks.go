package validate

import (
	"go_rga/capability"
	"go_rga/core"
	"go_rga/op"
	"go_rga/surface"
)

// CheckBuffer validates dimensions, strides and the rect against the
// channel's resolution cap.
func CheckBuffer(role string, b surface.Buffer, r surface.Rect, max capability.Resolution) error {
	hstride := b.EffectiveHStride()

	if b.Width <= 0 || b.Height <= 0 {
		return core.ErrIllegal(role, "the parameter cannot be negative or 0, width = %d, height = %d, format = %s",
			b.Width, b.Height, b.Format)
	}
	if b.Width < 2 || b.Height < 2 {
		return core.ErrIllegal(role, "unsupported operation of images smaller than 2 pixels, width = %d, height = %d",
			b.Width, b.Height)
	}
	if b.WStride < b.Width || hstride < b.Height {
		return core.ErrInvalid(role, "virtual width or height is less than actual width and height, "+
			"wstride = %d, width = %d, hstride = %d, height = %d", b.WStride, b.Width, hstride, b.Height)
	}

	if (r.Width == 0 && r.Height > 0) || (r.Width > 0 && r.Height == 0) {
		return core.ErrIllegal(role, "rect width or height cannot be 0, rect %s", r)
	}
	if r.Width < 0 || r.Height < 0 || r.X < 0 || r.Y < 0 {
		return core.ErrIllegal(role, "rect cannot be negative, rect %s", r)
	}
	if (r.Width > 0 && r.Width < 2) || (r.Height > 0 && r.Height < 2) ||
		(r.X > 0 && r.X < 2) || (r.Y > 0 && r.Y < 2) {
		return core.ErrInvalid(role, "unsupported rect smaller than 2 pixels, rect %s", r)
	}
	if r.X+r.Width > b.WStride || r.Y+r.Height > hstride {
		return core.ErrInvalid(role, "rect exceeds the stride, rect %s, wstride = %d, hstride = %d",
			r, b.WStride, hstride)
	}

	if b.Width > max.Width || b.Height > max.Height {
		return core.ErrNotSupported(role, "unsupported resolution more than %s, width = %d, height = %d",
			max, b.Width, b.Height)
	}
	if (r.Width > 0 && r.Width > max.Width) || (r.Height > 0 && r.Height > max.Height) {
		return core.ErrNotSupported(role, "unsupported rect resolution more than %s, rect %s", max, r)
	}
	return nil
}

// CheckFormat requires the format's group to be in groups and, for YUV and
// monochrome formats, every stride, dimension and rect value to be even.
// Indexed formats pass without BPP support when the task is a palette
// lookup.
func CheckFormat(role string, b surface.Buffer, r surface.Rect, groups capability.FormatGroup, usage op.Usage) error {
	g := b.Format.Group()
	if g == capability.FormatError {
		return core.ErrNotSupported(role, "unsupported format 0x%x", uint32(b.Format))
	}

	exempt := g == capability.FormatBPP && usage.Has(op.ColorPalette)
	if groups&g == 0 && !exempt {
		return core.ErrNotSupported(role, "unsupported format %s (%s)", b.Format, g.Names()[0])
	}

	if b.Format.RequiresEven() {
		hstride := b.EffectiveHStride()
		if b.WStride%2 != 0 || hstride%2 != 0 || b.Width%2 != 0 || b.Height%2 != 0 ||
			r.X%2 != 0 || r.Y%2 != 0 || r.Width%2 != 0 || r.Height%2 != 0 {
			return core.ErrInvalid(role, "yuv not aligned to 2, rect %s, width = %d, height = %d, "+
				"wstride = %d, hstride = %d, format = %s", r, b.Width, b.Height, b.WStride, hstride, b.Format)
		}
	}
	return nil
}

// CheckAlign enforces the layout alignment and the byte stride alignment of
// the row pitch. isRead marks an input channel.
func CheckAlign(role string, b surface.Buffer, byteStride int, isRead bool) error {
	hstride := b.EffectiveHStride()

	switch {
	case b.Layout.IsCompressed():
		if b.WStride%16 != 0 {
			return core.ErrNotSupported(role, "FBC mode does not support width_stride[%d] non-16 aligned", b.WStride)
		}
		if hstride%16 != 0 {
			return core.ErrNotSupported(role, "FBC mode does not support height_stride[%d] non-16 aligned", hstride)
		}
	case b.Layout == surface.LayoutTile8x8:
		if b.Width%8 != 0 {
			return core.ErrNotSupported(role, "TILE8x8 mode does not support width[%d] non-8 aligned", b.Width)
		}
		if b.Height%8 != 0 {
			return core.ErrNotSupported(role, "TILE8x8 mode does not support height[%d] non-8 aligned", b.Height)
		}
		if isRead && b.WStride%16 != 0 {
			return core.ErrNotSupported(role, "TILE8x8 mode does not support input width_stride[%d] non-16 aligned", b.WStride)
		}
		if isRead && hstride%16 != 0 {
			return core.ErrNotSupported(role, "TILE8x8 mode does not support input height_stride[%d] non-16 aligned", hstride)
		}
	}

	bpp := b.Format.BitsPerPixel()
	if bpp <= 0 || byteStride <= 0 {
		return nil
	}
	unit := byteStride * 8
	if (bpp*b.WStride)%unit == 0 {
		return nil
	}
	return core.ErrNotSupported(role, "unsupported width stride %d, %s width stride should be %d aligned",
		b.WStride, b.Format, lcm(bpp, unit)/bpp)
}

// CheckScale bounds the src/dst size ratio by limit in both directions.
// For 90 and 270 degree rotations dst is compared transposed.
func CheckScale(src, dst surface.Buffer, limit int, usage op.Usage) error {
	sw, sh := float64(src.Width), float64(src.Height)
	dw, dh := float64(dst.Width), float64(dst.Height)
	if usage.Any(op.Rot90 | op.Rot270) {
		dw, dh = dh, dw
	}
	l := float64(limit)
	if sw/dw > l || sh/dh > l || dw/sw > l || dh/sh > l {
		return core.ErrNotSupported("", "unsupported to scale more than 1/%d ~ %d times, src[w,h] = [%d, %d], dst[w,h] = [%d, %d]",
			limit, limit, src.Width, src.Height, dst.Width, dst.Height)
	}
	return nil
}

// CheckBlend requires an RGB background: the pattern when present, the
// destination otherwise. A pattern taking part must match dst in size,
// since the pattern channel cannot scale.
func CheckBlend(src, pat, dst surface.Buffer, patEnabled bool) error {
	if pat.HasMemory() {
		if !pat.Format.IsRGB() {
			return core.ErrNotSupported("pat", "blend background layer does not support non-RGB format %s", pat.Format)
		}
	} else if !dst.Format.IsRGB() {
		return core.ErrNotSupported("dst", "blend background layer does not support non-RGB format %s", dst.Format)
	}

	if patEnabled && (pat.Width != dst.Width || pat.Height != dst.Height) {
		return core.ErrNotSupported("pat", "in three-channel blend the src1 size must equal dst, "+
			"src1[w,h] = [%d, %d], dst[w,h] = [%d, %d]", pat.Width, pat.Height, dst.Width, dst.Height)
	}
	return nil
}

// CheckRotate applies the RGA1 family restrictions: no combined H/V
// mirror and no rotation together with a mirror.
func CheckRotate(usage op.Usage, row capability.Row) error {
	if !row.IsRGA1() {
		return nil
	}
	if usage.Has(op.FlipHV) {
		return core.ErrNotSupported("", "RGA1/RGA1_PLUS cannot support H_V mirror")
	}
	if usage.Any(op.RotMask) && usage.Any(op.FlipMask) {
		return core.ErrNotSupported("", "RGA1/RGA1_PLUS cannot support rotate with mirror")
	}
	return nil
}

var featureGates = []struct {
	usage   op.Usage
	feature capability.Feature
	name    string
}{
	{op.ColorFill, capability.FeatureColorFill, "color fill"},
	{op.ColorPalette, capability.FeatureColorPalette, "color palette"},
	{op.ROP, capability.FeatureROP, "ROP"},
	{op.NNQuantize, capability.FeatureQuantize, "quantize"},
}

var lateFeatureGates = []struct {
	usage   op.Usage
	feature capability.Feature
	name    string
}{
	{op.Mosaic, capability.FeatureMosaic, "mosaic"},
	{op.OSD, capability.FeatureOSD, "osd"},
	{op.PreIntr, capability.FeaturePreIntr, "pre_intr"},
	{op.AlphaBitMap, capability.FeatureAlphaBitMap, "alpha-bit map"},
}

// CheckFeature rejects usage bits and colour-space requests the platform
// has no feature for.
func CheckFeature(src, pat, dst surface.Buffer, patEnabled bool, usage op.Usage, features capability.Feature) error {
	for _, g := range featureGates {
		if usage.Has(g.usage) && features&g.feature == 0 {
			return core.ErrNotSupported("", "the platform does not support %s feature", g.name)
		}
	}

	if patEnabled && pat.ColorSpace&surface.RGBToYUVMask != 0 && features&capability.FeatureSrc1R2YCSC == 0 {
		return core.ErrNotSupported("pat", "the platform does not support src1 channel RGB2YUV color space convert feature")
	}

	fullCSC := src.ColorSpace.HasFullCSC() || dst.ColorSpace.HasFullCSC() ||
		(patEnabled && pat.ColorSpace.HasFullCSC())
	if fullCSC && features&capability.FeatureDstFullCSC == 0 {
		return core.ErrNotSupported("dst", "the platform does not support dst channel full color space convert(Y2Y/Y2R) feature")
	}

	for _, g := range lateFeatureGates {
		if usage.Has(g.usage) && features&g.feature == 0 {
			return core.ErrNotSupported("", "the platform does not support %s feature", g.name)
		}
	}
	return nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
