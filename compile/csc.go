package compile

import (
	"go_rga/core"
	"go_rga/device"
	"go_rga/surface"
)

// Conversion codes of the full CSC unit, carried in the request's colour
// space mode under surface.FullCSCMask.
const (
	YUVToRGB709Full       surface.ColorSpace = 0x1 << 8
	RGBToYUV709Full       surface.ColorSpace = 0x2 << 8
	YUV601LimitTo709Limit surface.ColorSpace = 0x3 << 8
	YUV601LimitTo709Full  surface.ColorSpace = 0x4 << 8
	YUV709LimitTo601Limit surface.ColorSpace = 0x5 << 8
	YUV709LimitTo601Full  surface.ColorSpace = 0x6 << 8
	YUV601FullTo709Limit  surface.ColorSpace = 0x7 << 8
	YUV601FullTo709Full   surface.ColorSpace = 0x8 << 8
	YUV709FullTo601Limit  surface.ColorSpace = 0x9 << 8
	YUV709FullTo601Full   surface.ColorSpace = 0xa << 8
	YUV601LimitTo601Full  surface.ColorSpace = 0xb << 8
	YUV601FullTo601Limit  surface.ColorSpace = 0xc << 8
	YUV709LimitTo709Full  surface.ColorSpace = 0xd << 8
	YUV709FullTo709Limit  surface.ColorSpace = 0xe << 8
	RGBToYUV709Limit      surface.ColorSpace = 0xf << 8
)

type rangePair struct {
	src, dst surface.ColorSpace
}

// fullCSCModes maps a source and destination range tag to the conversion
// the hardware runs. Pairs that the fixed converters already cover map to
// their low-bit codes.
var fullCSCModes = map[rangePair]surface.ColorSpace{
	{surface.RGBFull, surface.YUVBT601LimitRange}: surface.RGBToYUVBT601Limit,
	{surface.RGBFull, surface.YUVBT601FullRange}:  surface.RGBToYUVBT601Full,
	{surface.RGBFull, surface.YUVBT709LimitRange}: RGBToYUV709Limit,
	{surface.RGBFull, surface.YUVBT709FullRange}:  RGBToYUV709Full,

	{surface.YUVBT601LimitRange, surface.RGBFull}:            surface.YUVToRGBBT601Limit,
	{surface.YUVBT601LimitRange, surface.YUVBT709LimitRange}: YUV601LimitTo709Limit,
	{surface.YUVBT601LimitRange, surface.YUVBT709FullRange}:  YUV601LimitTo709Full,
	{surface.YUVBT601LimitRange, surface.YUVBT601FullRange}:  YUV601LimitTo601Full,

	{surface.YUVBT709LimitRange, surface.RGBFull}:            surface.YUVToRGBBT709Limit,
	{surface.YUVBT709LimitRange, surface.YUVBT601LimitRange}: YUV709LimitTo601Limit,
	{surface.YUVBT709LimitRange, surface.YUVBT601FullRange}:  YUV709LimitTo601Full,
	{surface.YUVBT709LimitRange, surface.YUVBT709FullRange}:  YUV709LimitTo709Full,

	{surface.YUVBT601FullRange, surface.RGBFull}:            surface.YUVToRGBBT601Full,
	{surface.YUVBT601FullRange, surface.YUVBT709LimitRange}: YUV601FullTo709Limit,
	{surface.YUVBT601FullRange, surface.YUVBT709FullRange}:  YUV601FullTo709Full,
	{surface.YUVBT601FullRange, surface.YUVBT601LimitRange}: YUV601FullTo601Limit,

	{surface.YUVBT709FullRange, surface.RGBFull}:            YUVToRGB709Full,
	{surface.YUVBT709FullRange, surface.YUVBT601LimitRange}: YUV709FullTo601Limit,
	{surface.YUVBT709FullRange, surface.YUVBT601FullRange}:  YUV709FullTo601Full,
	{surface.YUVBT709FullRange, surface.YUVBT709LimitRange}: YUV709FullTo709Limit,
}

// rangeTag is the buffer's full-CSC range, or the default for its format.
func rangeTag(b surface.Buffer) surface.ColorSpace {
	if tag := b.ColorSpace & surface.FullCSCMask; tag != 0 {
		return tag
	}
	if b.Format.IsYUV() {
		return surface.YUVBT601LimitRange
	}
	return surface.RGBFull
}

// cscPlan is the colour conversion chosen for a task.
type cscPlan struct {
	mode surface.ColorSpace
}

// planCSC picks the conversion. An explicit fixed conversion on dst must
// agree with the channel formats; otherwise range tags on src or dst select
// the full CSC unit.
func planCSC(src, pat, dst surface.Buffer, patEnabled bool) (cscPlan, error) {
	csm := dst.ColorSpace
	y2r := csm&surface.YUVToRGBMask != 0
	r2y := csm&surface.RGBToYUVMask != 0
	srcYUV, srcRGB := src.Format.IsYUV(), src.Format.IsRGB()
	dstYUV, dstRGB := dst.Format.IsYUV(), dst.Format.IsRGB()
	patRGB := patEnabled && pat.Format.IsRGB()

	switch {
	case y2r && r2y:
		if patEnabled && srcYUV && patRGB && dstYUV {
			return cscPlan{mode: csm}, nil
		}
		return cscPlan{}, core.ErrIllegal("dst", "yuv2rgb and rgb2yuv together need a yuv src, rgb src1 and yuv dst, "+
			"src %s, dst %s, color space 0x%x", src.Format, dst.Format, uint32(csm))
	case y2r:
		if (patEnabled && srcYUV && patRGB && dstRGB) || (srcYUV && dstRGB) {
			return cscPlan{mode: csm}, nil
		}
		return cscPlan{}, core.ErrIllegal("dst", "yuv2rgb needs a yuv src and rgb dst, src %s, dst %s, color space 0x%x",
			src.Format, dst.Format, uint32(csm))
	case r2y:
		if (patEnabled && srcRGB && patRGB && dstYUV) || (srcRGB && dstYUV) {
			return cscPlan{mode: csm}, nil
		}
		return cscPlan{}, core.ErrIllegal("dst", "rgb2yuv needs an rgb src and yuv dst, src %s, dst %s, color space 0x%x",
			src.Format, dst.Format, uint32(csm))
	}

	if !src.ColorSpace.HasFullCSC() && !dst.ColorSpace.HasFullCSC() {
		return cscPlan{}, nil
	}
	pair := rangePair{rangeTag(src), rangeTag(dst)}
	if pair.src == pair.dst {
		return cscPlan{}, nil
	}
	mode, ok := fullCSCModes[pair]
	if !ok {
		return cscPlan{}, core.ErrColorspacePair(pair.src.String(), pair.dst.String())
	}
	return cscPlan{mode: mode}, nil
}

// applyCSC writes the plan into the request. Without a full conversion the
// fixed converter mode follows the channel formats, and an explicit mode
// on dst wins.
func applyCSC(req *device.Request, plan cscPlan, src, pat, dst surface.Buffer, patEnabled bool) {
	if plan.mode.HasFullCSC() {
		req.FullCSC = fullCSCTable[plan.mode]
		if plan.mode == RGBToYUV709Limit {
			req.YUV2RGBMode |= 3 << 2
		}
		return
	}

	srcYUV, dstYUV := src.Format.IsYUV(), dst.Format.IsYUV()
	srcRGB, dstRGB := src.Format.IsRGB(), dst.Format.IsRGB()
	if patEnabled {
		patRGB := pat.Format.IsRGB()
		switch {
		case srcYUV && patRGB && dstRGB:
			req.YUV2RGBMode = 1
		case srcYUV && patRGB && dstYUV:
			req.YUV2RGBMode = 1 | 2<<2
		case srcRGB && patRGB && dstYUV:
			req.YUV2RGBMode = 2 << 2
		}
	} else {
		switch {
		case srcYUV && dstRGB:
			req.YUV2RGBMode = 1
		case srcRGB && dstYUV:
			req.YUV2RGBMode = 2 << 2
		}
	}
	if plan.mode > 0 {
		req.YUV2RGBMode = uint8(plan.mode)
	}
}

// q10 packs one coefficient row: three Q10 multipliers in V, Y, U order
// for YUV outputs (R, G, B for RGB outputs), then a whole-code offset.
func q10(c0, c1, c2, offset int16) [4]uint16 {
	return [4]uint16{uint16(c0), uint16(c1), uint16(c2), uint16(offset)}
}

// fullCSCTable holds the coefficient rows loaded for each full CSC mode.
// BT.601 uses Kr 0.299 Kb 0.114, BT.709 uses Kr 0.2126 Kb 0.0722; limited
// range is Y 16-235 and C 16-240.
var fullCSCTable = map[surface.ColorSpace]device.FullCSC{
	YUVToRGB709Full: {Flag: 1, CoeY: q10(-479, 1024, -192, 84), CoeU: q10(0, 1024, 1900, -238), CoeV: q10(1613, 1024, 0, -202)},
	RGBToYUV709Full: {Flag: 1, CoeY: q10(218, 732, 74, 0), CoeU: q10(-117, -395, 512, 128), CoeV: q10(512, -465, -47, 128)},
	YUV601LimitTo709Limit: {Flag: 1, CoeY: q10(-213, 1024, -118, 41), CoeU: q10(117, 0, 1043, -17), CoeV: q10(1050, 0, 77, -13)},
	YUV601LimitTo709Full: {Flag: 1, CoeY: q10(-248, 1192, -138, 30), CoeU: q10(134, 0, 1187, -37), CoeV: q10(1195, 0, 87, -32)},
	YUV709LimitTo601Limit: {Flag: 1, CoeY: q10(196, 1024, 102, -37), CoeU: q10(-113, 0, 1014, 15), CoeV: q10(1007, 0, -74, 11)},
	YUV709LimitTo601Full: {Flag: 1, CoeY: q10(229, 1192, 118, -62), CoeU: q10(-129, 0, 1154, 0), CoeV: q10(1146, 0, -84, -5)},
	YUV601FullTo709Limit: {Flag: 1, CoeY: q10(-187, 879, -104, 52), CoeU: q10(103, 0, 916, 1), CoeV: q10(922, 0, 68, 4)},
	YUV601FullTo709Full: {Flag: 1, CoeY: q10(-218, 1024, -121, 42), CoeU: q10(117, 0, 1043, -17), CoeV: q10(1050, 0, 77, -13)},
	YUV709FullTo601Limit: {Flag: 1, CoeY: q10(172, 879, 89, -17), CoeU: q10(-100, 0, 890, 29), CoeV: q10(885, 0, -65, 26)},
	YUV709FullTo601Full: {Flag: 1, CoeY: q10(201, 1024, 104, -38), CoeU: q10(-113, 0, 1014, 15), CoeV: q10(1007, 0, -74, 11)},
	YUV601LimitTo601Full: {Flag: 1, CoeY: q10(0, 1192, 0, -19), CoeU: q10(0, 0, 1166, -18), CoeV: q10(1166, 0, 0, -18)},
	YUV601FullTo601Limit: {Flag: 1, CoeY: q10(0, 879, 0, 16), CoeU: q10(0, 0, 900, 16), CoeV: q10(900, 0, 0, 16)},
	YUV709LimitTo709Full: {Flag: 1, CoeY: q10(0, 1192, 0, -19), CoeU: q10(0, 0, 1166, -18), CoeV: q10(1166, 0, 0, -18)},
	YUV709FullTo709Limit: {Flag: 1, CoeY: q10(0, 879, 0, 16), CoeU: q10(0, 0, 900, 16), CoeV: q10(900, 0, 0, 16)},
	RGBToYUV709Limit: {Flag: 1, CoeY: q10(187, 629, 63, 16), CoeU: q10(-103, -347, 450, 128), CoeV: q10(450, -409, -41, 128)},
}

// Dither lookup tables for the monochrome writer.
const (
	ditherLUT0L = 0x3210
	ditherLUT0H = 0x7654
	ditherLUT1L = 0xba98
	ditherLUT1H = 0xfedc
)

// applyMonoDither configures the Y4/Y8 writer from dst's colour space mode.
func applyMonoDither(req *device.Request, dst surface.Buffer) {
	if !dst.Format.IsMono() {
		return
	}
	d := device.DitherInfo{
		LUT0L: ditherLUT0L,
		LUT0H: ditherLUT0H,
		LUT1L: ditherLUT1L,
		LUT1H: ditherLUT1H,
	}
	switch dst.ColorSpace {
	case surface.RGBToY4:
	case surface.RGBToY1Dither:
		d.Enable, d.Mode = 1, 1
	default:
		d.Enable = 1
	}
	req.Dither = d
}
