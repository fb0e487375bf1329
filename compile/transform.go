package compile

import "go_rga/op"

// Transform codes as packed into a single byte: a rotation in the low
// nibble, a mirror in the low nibble when there is no rotation and in the
// high nibble otherwise.
const (
	halFlipH  = 0x01
	halFlipV  = 0x02
	halRot180 = 0x03
	halRot90  = 0x04
	halRot270 = 0x07
	halFlipHV = 0x08
)

// Wire rotate_mode values.
const (
	rotateStretch = 1
	rotateFlipH   = 2
	rotateFlipV   = 3
	rotateFlipHV  = 4
)

const fixedOne = 65536

// transformCode folds the rotation and mirror usage bits into the packed code.
func transformCode(u op.Usage) uint8 {
	var rot uint8
	switch {
	case u.Has(op.Rot90):
		rot = halRot90
	case u.Has(op.Rot180):
		rot = halRot180
	case u.Has(op.Rot270):
		rot = halRot270
	}

	var flip uint8
	switch {
	case u.Has(op.FlipH):
		flip = halFlipH
	case u.Has(op.FlipV):
		flip = halFlipV
	case u.Has(op.FlipHV):
		flip = halFlipHV
	}

	if rot == 0 {
		return flip
	}
	return rot | flip<<4
}

// rotation is the decoded transform for one request.
type rotation struct {
	mode    uint8
	degrees int
	sina    int32
	cosa    int32
}

// swapsAxes reports a quarter turn, which transposes the destination.
func (r rotation) swapsAxes() bool {
	return r.degrees == 90 || r.degrees == 270
}

// decodeTransform turns the packed code into rotate_mode and the fixed-point
// sine and cosine. stretch marks a scaled blit without rotation.
func decodeTransform(code uint8, stretch bool) rotation {
	var r rotation
	switch code & 0x0f {
	case halFlipH:
		r.mode = rotateFlipH
	case halFlipV:
		r.mode = rotateFlipV
	case halFlipHV:
		r.mode = rotateFlipHV
	case halRot90:
		r.mode, r.degrees = rotateStretch, 90
	case halRot180:
		r.mode, r.degrees = rotateStretch, 180
	case halRot270:
		r.mode, r.degrees = rotateStretch, 270
	default:
		if stretch {
			r.mode = rotateStretch
		}
	}

	switch code >> 4 {
	case halFlipH:
		r.mode |= rotateFlipH << 4
	case halFlipV:
		r.mode |= rotateFlipV << 4
	case halFlipHV:
		r.mode |= rotateFlipHV << 4
	}

	switch r.degrees {
	case 90:
		r.sina, r.cosa = fixedOne, 0
	case 180:
		r.sina, r.cosa = 0, -fixedOne
	case 270:
		r.sina, r.cosa = -fixedOne, 0
	default:
		r.sina, r.cosa = 0, fixedOne
	}
	return r
}

// DecodeRotation maps a request's rotate_mode, sine and cosine back to the
// usage bits that produce them. Debugging tools use it to print a compiled
// request.
func DecodeRotation(mode uint8, sina, cosa int32) op.Usage {
	var u op.Usage
	switch mode & 0x0f {
	case rotateFlipH:
		u |= op.FlipH
	case rotateFlipV:
		u |= op.FlipV
	case rotateFlipHV:
		u |= op.FlipHV
	case rotateStretch:
		switch {
		case sina == fixedOne:
			u |= op.Rot90
		case sina == -fixedOne:
			u |= op.Rot270
		case cosa == -fixedOne:
			u |= op.Rot180
		}
	}
	switch mode >> 4 {
	case rotateFlipH:
		u |= op.FlipH
	case rotateFlipV:
		u |= op.FlipV
	case rotateFlipHV:
		u |= op.FlipHV
	}
	return u
}
