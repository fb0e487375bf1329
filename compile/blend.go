package compile

import (
	"go_rga/device"
	"go_rga/op"
)

// Porter-Duff ordinals for pd_mode, in usage bit order.
var blendCodes = []struct {
	usage op.Usage
	code  uint32
}{
	{op.BlendSrcOver, 1},
	{op.BlendSrc, 2},
	{op.BlendDst, 3},
	{op.BlendSrcIn, 4},
	{op.BlendDstIn, 5},
	{op.BlendSrcOut, 6},
	{op.BlendDstOut, 7},
	{op.BlendDstOver, 8},
	{op.BlendSrcAtop, 9},
	{op.BlendDstAtop, 10},
	{op.BlendXor, 11},
}

const (
	blendCodeSrcOver = 1
	blendCodeSrc     = 2
	blendCodeDstOver = 8

	blendPreMul = 1 << 12

	// colorKeyBlend is the blend word used when a colour key runs without
	// an explicit blend: src-over with both global alphas at 0xff.
	colorKeyBlend = 0xffff1001
)

// Raw blend words from the older blit API.
const (
	legacySrcOverPreMul = 0x405
	legacyDstOverPreMul = 0x504
	legacySrcOver       = 0x105
	legacyDstOver       = 0x501
	legacySrc           = 0x100
)

// blendWord packs the blend selection: the ordinal in bits 0-11, the
// pre-multiply flag at bit 12, the foreground alpha in bits 16-23 and the
// background alpha in bits 24-31. The blend bits of u must name exactly
// one mode; anything else selects no blend.
func blendWord(u op.Usage, fgAlpha, bgAlpha uint8) uint32 {
	var w uint32
	mode := u & op.BlendMask
	for _, b := range blendCodes {
		if mode == b.usage {
			w = b.code
			break
		}
	}
	if w == 0 {
		return 0
	}
	if u.Has(op.PreMul) {
		w |= blendPreMul
	}
	return w | uint32(fgAlpha)<<16 | uint32(bgAlpha)<<24
}

// normalizeLegacyBlend rewrites a raw legacy blend word into the packed form.
// Only src-over keeps the foreground alpha carried in bits 16-23; the other
// legacy modes run with both global alphas at 0xff. Unknown words pass
// through with their own alpha bytes.
func normalizeLegacyBlend(raw uint32) uint32 {
	fg := (raw >> 16) & 0xff
	switch raw & 0xfff {
	case legacySrcOverPreMul:
		return blendCodeSrcOver | blendPreMul | fg<<16 | 0xff<<24
	case legacyDstOverPreMul:
		return blendCodeDstOver | blendPreMul | 0xff<<16 | 0xff<<24
	case legacySrcOver:
		return blendCodeSrcOver | fg<<16 | 0xff<<24
	case legacyDstOver:
		return blendCodeDstOver | 0xff<<16 | 0xff<<24
	case legacySrc:
		return blendCodeSrc | 0xff<<16 | 0xff<<24
	}
	return raw
}

// applyBlend writes the alpha unit fields for a packed blend word.
func applyBlend(req *device.Request, blend uint32) {
	if blend&0xfff == 0 {
		return
	}
	fg := uint8(blend >> 16)
	bg := uint8(blend >> 24)

	req.Feature.GlobalAlphaEn = 1
	req.AlphaROPFlag |= 1 | 1<<3 | 1<<4
	req.AlphaGlobalValue = fg
	req.FGGlobalAlpha = fg
	req.BGGlobalAlpha = bg
	req.AlphaROPMode |= 1
	req.PDMode = uint8(blend & 0xfff)
	if blend&blendPreMul != 0 {
		req.AlphaROPFlag |= 1 << 9
	}
}

// applyROP overrides the alpha unit with a raster operation.
func applyROP(req *device.Request, code uint32) {
	if code == 0 {
		return
	}
	req.ROPCode = uint16(code)
	req.AlphaROPFlag = 0x3
	req.AlphaROPMode = 0x1
}

// Wire src_trans_mode values.
const (
	srcTransNormal   = 0x1e
	srcTransInverted = 0x1f
)

// applyColorKey keys out src pixels inside (or, inverted, outside) the range.
func applyColorKey(req *device.Request, u op.Usage, key op.ColorKeyRange) {
	req.AlphaROPFlag |= 1 << 9
	if u.Has(op.ColorKeyInverted) {
		req.SrcTransMode = srcTransInverted
	} else {
		req.SrcTransMode = srcTransNormal
	}
	req.ColorKeyMax = key.Max
	req.ColorKeyMin = key.Min
	req.AlphaROPMode |= 1 << 4
}
