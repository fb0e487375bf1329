package compile

import (
	"math"

	"go_rga/core"
	"go_rga/op"
)

const gaussFactor = 0xff

// defaultSigma is the sigma a kernel of size k gets when none is given.
func defaultSigma(k int) float64 {
	return 0.3*(float64(k-1)*0.5-1) + 0.8
}

// gaussSigmas resolves non-positive sigmas. A missing sigma_x is derived
// from the kernel width; a missing sigma_y copies sigma_x unless both were
// missing, in which case it comes from the kernel height.
func gaussSigmas(g op.GaussConfig) (sx, sy float64) {
	sx, sy = g.SigmaX, g.SigmaY
	if sx <= 0 && sy > 0 {
		sx = defaultSigma(g.KSizeX)
	}
	if sx <= 0 && sy <= 0 {
		sx = defaultSigma(g.KSizeX)
		sy = defaultSigma(g.KSizeY)
	}
	if sy <= 0 {
		sy = sx
	}
	return sx, sy
}

// gaussKernel builds a normalised kernel in row order.
func gaussKernel(kx, ky int, sx, sy float64) []float64 {
	kernel := make([]float64, kx*ky)
	dx, dy := 2*sx*sx, 2*sy*sy
	var sum float64
	for i := -ky / 2; i <= ky/2; i++ {
		for j := -kx / 2; j <= kx/2; j++ {
			w := math.Exp(-float64(j*j)/dx) * math.Exp(-float64(i*i)/dy)
			kernel[(i+ky/2)*kx+j+kx/2] = w
			sum += w
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussCoefficients returns the coefficients the blur unit reads for a
// symmetric 3x3 kernel: corner, edge and centre weights scaled to 8 bits.
func gaussCoefficients(g op.GaussConfig) ([]uint32, error) {
	if g.KSizeX != 3 || g.KSizeY != 3 {
		return nil, core.ErrNotSupported("", "only 3x3 gaussian blur is supported, ksize = [%d, %d]", g.KSizeX, g.KSizeY)
	}

	kernel := g.Matrix
	if kernel == nil {
		sx, sy := gaussSigmas(g)
		kernel = gaussKernel(g.KSizeX, g.KSizeY, sx, sy)
	} else if len(kernel) != g.KSizeX*g.KSizeY {
		return nil, core.ErrInvalid("", "gaussian matrix has %d weights, want %d", len(kernel), g.KSizeX*g.KSizeY)
	}

	center := g.KSizeX / 2
	coe := make([]uint32, 0, (g.KSizeX+g.KSizeY)/2)
	for i := 0; i <= center; i++ {
		coe = append(coe, uint32(kernel[i]*gaussFactor+0.5))
	}
	for i := 1; i <= center; i++ {
		coe = append(coe, uint32(kernel[i*g.KSizeX+center]*gaussFactor+0.5))
	}
	return coe, nil
}
