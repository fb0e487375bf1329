package compile

import (
	"go_rga/core"
	"go_rga/op"
	"go_rga/surface"
)

const (
	// ScaleVerBicubicWidthLimit is the widest source the vertical bicubic
	// filter handles when downscaling; wider sources fall back to linear.
	ScaleVerBicubicWidthLimit = 1996
	// LinearVerDownscaleMaxWidth bounds the destination width of a
	// vertical linear downscale.
	LinearVerDownscaleMaxWidth = 4096
)

// scaleRatios returns src/dst per axis, against the pattern when it takes
// part. Quarter turns compare against the transposed destination.
func scaleRatios(src, pat, dst surface.Region, patEnabled, transposed bool) (h, v float64) {
	w, ht := dst.Width, dst.Height
	if patEnabled {
		w, ht = pat.Width, pat.Height
	}
	if transposed {
		w, ht = ht, w
	}
	return float64(src.Width) / float64(w), float64(src.Height) / float64(ht)
}

// chooseInterp fills in default filters from the scale ratios and rejects
// combinations the scaler cannot run. srcW and dstW are the untransposed
// active widths.
func chooseInterp(in op.Interp, hScale, vScale float64, srcW, dstW int) (op.Interp, error) {
	const bicubicLimit = ScaleVerBicubicWidthLimit
	wide := srcW > bicubicLimit || (dstW > bicubicLimit && hScale > 1)

	out := in
	if out.Horiz == op.InterpDefault {
		switch {
		case hScale > 1:
			out.Horiz = op.InterpAverage
		case hScale < 1:
			out.Horiz = op.InterpBicubic
		}
	}
	if out.Verti == op.InterpDefault {
		switch {
		case vScale > 1:
			out.Verti = op.InterpAverage
		case vScale < 1 && wide:
			out.Verti = op.InterpLinear
		case vScale < 1:
			out.Verti = op.InterpBicubic
		}
	}

	if out.Verti == op.InterpBicubic && vScale < 1 && wide {
		return out, core.ErrNotSupported("", "vertical bicubic upscale supports widths up to %d, src width = %d, dst width = %d",
			bicubicLimit, srcW, dstW)
	}
	linearDown := (vScale > 1 && out.Verti == op.InterpLinear) || (hScale > 1 && out.Horiz == op.InterpLinear)
	if linearDown && (hScale < 1 || vScale < 1) {
		return out, core.ErrNotSupported("", "linear downscale cannot be combined with an upscale on the other axis, "+
			"scale = [%.3f, %.3f]", hScale, vScale)
	}
	if vScale > 1 && out.Verti == op.InterpLinear && dstW > LinearVerDownscaleMaxWidth {
		return out, core.ErrNotSupported("", "vertical linear downscale supports dst widths up to %d, dst width = %d",
			LinearVerDownscaleMaxWidth, dstW)
	}
	return out, nil
}
