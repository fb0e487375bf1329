package op

import "go_rga/surface"

// Debug renderings. None of these are load-bearing.

func ColorSpaceString(c surface.ColorSpace) string {
	return c.String()
}

func LayoutString(l surface.Layout) string {
	return l.String()
}

// BlendString names the blend mode selected in u.
func BlendString(u Usage) string {
	switch u & BlendMask {
	case BlendSrc:
		return "src"
	case BlendDst:
		return "dst"
	case BlendSrcOver:
		return "src-over"
	case BlendDstOver:
		return "dst-over"
	case BlendSrcIn:
		return "src-in"
	case BlendDstIn:
		return "dst-in"
	case BlendSrcOut:
		return "src-out"
	case BlendDstOut:
		return "dst-out"
	case BlendSrcAtop:
		return "src-atop"
	case BlendDstAtop:
		return "dst-atop"
	case BlendXor:
		return "xor"
	}
	return "unknown"
}

func RotateString(u Usage) string {
	switch u & RotMask {
	case Rot90:
		return "90"
	case Rot180:
		return "180"
	case Rot270:
		return "270"
	}
	return "unknown"
}

func FlipString(u Usage) string {
	switch u & FlipMask {
	case FlipH:
		return "horiz"
	case FlipV:
		return "verti"
	case FlipHV:
		return "horiz & verti"
	}
	return "unknown"
}

func MosaicString(m MosaicMode) string {
	switch m {
	case Mosaic8:
		return "mosaic 8x8"
	case Mosaic16:
		return "mosaic 16x16"
	case Mosaic32:
		return "mosaic 32x32"
	case Mosaic64:
		return "mosaic 64x64"
	case Mosaic128:
		return "mosaic 128x128"
	}
	return "unknown"
}

func ROPString(code uint32) string {
	switch code {
	case ROPAnd:
		return "and"
	case ROPOr:
		return "or"
	case ROPNotDst:
		return "not-dst"
	case ROPNotSrc:
		return "not-src"
	case ROPXor:
		return "xor"
	case ROPNotXor:
		return "not-xor"
	}
	return "unknown"
}

func ColorKeyString(u Usage) string {
	switch u & ColorKeyMask {
	case ColorKeyNormal:
		return "normal"
	case ColorKeyInverted:
		return "inverted"
	}
	return "unknown"
}
