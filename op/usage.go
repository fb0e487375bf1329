// Package op describes what a task asks the blitter to do: the usage
// bitmask with its wire values and the optional feature configurations it
// gates.
package op

import "strings"

// Usage is the operation bitmask. Values match the im2d wire encoding.
type Usage uint32

const (
	Rot90            Usage = 1 << 0
	Rot180           Usage = 1 << 1
	Rot270           Usage = 1 << 2
	FlipH            Usage = 1 << 3
	FlipV            Usage = 1 << 4
	FlipHV           Usage = 1 << 5
	BlendSrcOver     Usage = 1 << 6
	BlendSrc         Usage = 1 << 7
	BlendDst         Usage = 1 << 8
	BlendSrcIn       Usage = 1 << 9
	BlendDstIn       Usage = 1 << 10
	BlendSrcOut      Usage = 1 << 11
	BlendDstOut      Usage = 1 << 12
	BlendDstOver     Usage = 1 << 13
	BlendSrcAtop     Usage = 1 << 14
	BlendDstAtop     Usage = 1 << 15
	BlendXor         Usage = 1 << 16
	ColorKeyNormal   Usage = 1 << 17
	ColorKeyInverted Usage = 1 << 18
	Sync             Usage = 1 << 19
	Crop             Usage = 1 << 20
	ColorFill        Usage = 1 << 21
	ColorPalette     Usage = 1 << 22
	NNQuantize       Usage = 1 << 23
	ROP              Usage = 1 << 24
	PreMul           Usage = 1 << 25
	Async            Usage = 1 << 26
	Mosaic           Usage = 1 << 27
	OSD              Usage = 1 << 28
	PreIntr          Usage = 1 << 29
	AlphaBitMap      Usage = 1 << 30
	Gauss            Usage = 1 << 31
)

const (
	RotMask       = Rot90 | Rot180 | Rot270
	FlipMask      = FlipH | FlipV | FlipHV
	TransformMask = RotMask | FlipMask
	ColorKeyMask  = ColorKeyNormal | ColorKeyInverted
)

// BlendMask covers the eleven blend modes.
const BlendMask = BlendSrcOver | BlendSrc | BlendDst | BlendSrcIn | BlendDstIn |
	BlendSrcOut | BlendDstOut | BlendDstOver | BlendSrcAtop | BlendDstAtop | BlendXor

var usageNames = []struct {
	u    Usage
	name string
}{
	{Rot90, "rot-90"},
	{Rot180, "rot-180"},
	{Rot270, "rot-270"},
	{FlipH, "flip-h"},
	{FlipV, "flip-v"},
	{FlipHV, "flip-hv"},
	{BlendSrcOver, "src-over"},
	{BlendSrc, "src"},
	{BlendDst, "dst"},
	{BlendSrcIn, "src-in"},
	{BlendDstIn, "dst-in"},
	{BlendSrcOut, "src-out"},
	{BlendDstOut, "dst-out"},
	{BlendDstOver, "dst-over"},
	{BlendSrcAtop, "src-atop"},
	{BlendDstAtop, "dst-atop"},
	{BlendXor, "xor"},
	{ColorKeyNormal, "colorkey-normal"},
	{ColorKeyInverted, "colorkey-inverted"},
	{Sync, "sync"},
	{Crop, "crop"},
	{ColorFill, "color-fill"},
	{ColorPalette, "color-palette"},
	{NNQuantize, "nn-quantize"},
	{ROP, "rop"},
	{PreMul, "pre-mul"},
	{Async, "async"},
	{Mosaic, "mosaic"},
	{OSD, "osd"},
	{PreIntr, "pre-intr"},
	{AlphaBitMap, "alpha-bit-map"},
	{Gauss, "gauss"},
}

// Has reports whether every bit of m is set.
func (u Usage) Has(m Usage) bool {
	return u&m == m
}

// Any reports whether at least one bit of m is set.
func (u Usage) Any(m Usage) bool {
	return u&m != 0
}

// String joins the names of the set bits with '|'.
func (u Usage) String() string {
	if u == 0 {
		return "none"
	}
	var names []string
	for _, n := range usageNames {
		if u&n.u != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// UsageString is the debug rendering of a usage bitmask.
func UsageString(u Usage) string {
	return u.String()
}
