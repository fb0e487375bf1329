package surface

import (
	"fmt"
	"strings"

	"go_rga/core"
)

// Layout is the storage layout of a buffer, encoded as the driver's
// rd_mode bits.
type Layout uint32

const (
	LayoutRaster    Layout = 1 << 0
	LayoutAFBC16x16 Layout = 1 << 1
	LayoutTile8x8   Layout = 1 << 2
	LayoutAFBC32x8  Layout = 1 << 3
	LayoutRKFBC64x4 Layout = 1 << 4
)

func (l Layout) String() string {
	switch l {
	case 0, LayoutRaster:
		return "raster"
	case LayoutAFBC16x16:
		return "afbc16x16"
	case LayoutTile8x8:
		return "tile8x8"
	case LayoutAFBC32x8:
		return "afbc32x8"
	case LayoutRKFBC64x4:
		return "rkfbc64x4"
	}
	return "unknown"
}

// IsCompressed reports the frame-buffer-compression layouts.
func (l Layout) IsCompressed() bool {
	return l == LayoutAFBC16x16 || l == LayoutAFBC32x8 || l == LayoutRKFBC64x4
}

// Wire returns the rd_mode value, defaulting to raster.
func (l Layout) Wire() uint8 {
	if l == 0 {
		return uint8(LayoutRaster)
	}
	return uint8(l)
}

// ColorSpace is a colour-space tag or conversion mode (IM_COLOR_SPACE_MODE).
// The low bits request a fixed conversion; the bits under FullCSCMask tag a
// buffer's range so the full CSC unit can pick a conversion.
type ColorSpace uint32

const (
	ColorSpaceDefault ColorSpace = 0

	YUVToRGBBT601Limit ColorSpace = 1 << 0
	YUVToRGBBT601Full  ColorSpace = 2 << 0
	YUVToRGBBT709Limit ColorSpace = 3 << 0
	YUVToRGBMask       ColorSpace = 3 << 0

	RGBToYUVBT601Full  ColorSpace = 1 << 2
	RGBToYUVBT601Limit ColorSpace = 2 << 2
	RGBToYUVBT709Limit ColorSpace = 3 << 2
	RGBToYUVMask       ColorSpace = 3 << 2

	RGBToY4       ColorSpace = 1 << 4
	RGBToY4Dither ColorSpace = 2 << 4
	RGBToY1Dither ColorSpace = 3 << 4
	Y4Mask        ColorSpace = 3 << 4

	RGBFull            ColorSpace = 1 << 8
	RGBClip            ColorSpace = 2 << 8
	YUVBT601LimitRange ColorSpace = 3 << 8
	YUVBT601FullRange  ColorSpace = 4 << 8
	YUVBT709LimitRange ColorSpace = 5 << 8
	YUVBT709FullRange  ColorSpace = 6 << 8
	FullCSCMask        ColorSpace = 0xf << 8
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceDefault:  "default",
	YUVToRGBBT601Limit: "yuv2rgb-bt.601-limit",
	YUVToRGBBT601Full:  "yuv2rgb-bt.601-full",
	YUVToRGBBT709Limit: "yuv2rgb-bt.709-limit",
	RGBToYUVBT601Full:  "rgb2yuv-bt.601-full",
	RGBToYUVBT601Limit: "rgb2yuv-bt.601-limit",
	RGBToYUVBT709Limit: "rgb2yuv-bt.709-limit",
	RGBToY4:            "rgb-to-y4",
	RGBToY4Dither:      "rgb-to-y4-dither",
	RGBToY1Dither:      "rgb-to-y1-dither",
	RGBFull:            "rgb_full",
	RGBClip:            "rgb_clip",
	YUVBT601LimitRange: "yuv_bt.601-limit",
	YUVBT601FullRange:  "yuv_bt.601-full",
	YUVBT709LimitRange: "yuv_bt.709-limit",
	YUVBT709FullRange:  "yuv_bt.709-full",
}

func (c ColorSpace) String() string {
	if name, ok := colorSpaceNames[c]; ok {
		return name
	}
	return "unknown"
}

// HasFullCSC reports whether c carries a full-CSC range tag.
func (c ColorSpace) HasFullCSC() bool {
	return c&FullCSCMask != 0
}

// AlphaBit holds the two alpha values a 5551 buffer's single alpha bit
// selects between.
type AlphaBit struct {
	Alpha0 uint8
	Alpha1 uint8
}

// Buffer describes one image channel. Exactly one of FD, Phys, Virt or
// Handle identifies the memory.
type Buffer struct {
	Width   int
	Height  int
	WStride int // pixels
	HStride int // rows, 0 means Height

	Format      Format
	Layout      Layout
	ColorSpace  ColorSpace
	GlobalAlpha uint8

	FD     int
	Phys   uint64
	Virt   uint64
	Handle uint32

	// HandleMMU selects IOMMU translation for handle-addressed buffers.
	HandleMMU bool

	AlphaBit AlphaBit
}

func newBuffer(width, height int, format Format) Buffer {
	return Buffer{Width: width, Height: height, WStride: width, HStride: height, Format: format}
}

// FromFD describes a dma-buf backed buffer.
func FromFD(fd, width, height int, format Format) Buffer {
	b := newBuffer(width, height, format)
	b.FD = fd
	return b
}

// FromPhys describes a physically contiguous buffer.
func FromPhys(addr uint64, width, height int, format Format) Buffer {
	b := newBuffer(width, height, format)
	b.Phys = addr
	return b
}

// FromVirt describes a buffer by its user-space virtual address.
func FromVirt(addr uint64, width, height int, format Format) Buffer {
	b := newBuffer(width, height, format)
	b.Virt = addr
	return b
}

// FromHandle describes a buffer previously imported into the driver.
func FromHandle(handle uint32, width, height int, format Format) Buffer {
	b := newBuffer(width, height, format)
	b.Handle = handle
	return b
}

// WithStride returns a copy of b with explicit strides.
func (b Buffer) WithStride(wstride, hstride int) Buffer {
	b.WStride = wstride
	b.HStride = hstride
	return b
}

// EffectiveHStride is HStride, or Height when HStride is unset.
func (b Buffer) EffectiveHStride() int {
	if b.HStride == 0 {
		return b.Height
	}
	return b.HStride
}

// AddrMode names how the hardware reaches a buffer's memory.
type AddrMode int

const (
	AddrNone AddrMode = iota
	AddrFD
	AddrPhys
	AddrVirt
	AddrHandle
)

func (m AddrMode) String() string {
	switch m {
	case AddrFD:
		return "fd"
	case AddrPhys:
		return "phys"
	case AddrVirt:
		return "virt"
	case AddrHandle:
		return "handle"
	}
	return "none"
}

// Address is a resolved addressing mode.
type Address struct {
	Mode  AddrMode
	Value uint64
	MMU   bool
}

// AddrModes lists the addressing modes populated on b.
func (b Buffer) AddrModes() []AddrMode {
	var modes []AddrMode
	if b.FD > 0 {
		modes = append(modes, AddrFD)
	}
	if b.Phys != 0 {
		modes = append(modes, AddrPhys)
	}
	if b.Virt != 0 {
		modes = append(modes, AddrVirt)
	}
	if b.Handle != 0 {
		modes = append(modes, AddrHandle)
	}
	return modes
}

// HasMemory reports whether any addressing mode is populated.
func (b Buffer) HasMemory() bool {
	return len(b.AddrModes()) > 0
}

// Resolve picks the buffer's addressing mode, preferring fd, then physical,
// then virtual, then handle. fd and virtual memory go through the IOMMU,
// physical memory does not, and handles follow HandleMMU.
func (b Buffer) Resolve(role string) (Address, error) {
	switch {
	case b.FD > 0:
		return Address{Mode: AddrFD, Value: uint64(b.FD), MMU: true}, nil
	case b.Phys != 0:
		return Address{Mode: AddrPhys, Value: b.Phys}, nil
	case b.Virt != 0:
		return Address{Mode: AddrVirt, Value: b.Virt, MMU: true}, nil
	case b.Handle != 0:
		return Address{Mode: AddrHandle, Value: uint64(b.Handle), MMU: b.HandleMMU}, nil
	}
	return Address{}, core.ErrInvalid(role,
		"no address available in buffer, phys = 0x%x, fd = %d, virt = 0x%x, handle = %d",
		b.Phys, b.FD, b.Virt, b.Handle)
}

func (b Buffer) String() string {
	modes := b.AddrModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return fmt.Sprintf("%dx%d [%d,%d] %s %s addr=%s", b.Width, b.Height,
		b.WStride, b.HStride, b.Format, b.Layout, strings.Join(names, ","))
}

// Rect is a region of a buffer in stride space. The zero Rect means the
// whole buffer.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsZero reports the whole-buffer sentinel.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Set reports whether the rect names a region: it has an offset or a
// non-empty size.
func (r Rect) Set() bool {
	return r.X > 0 || r.Y > 0 || (r.Width > 0 && r.Height > 0)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d]", r.X, r.Y, r.Width, r.Height)
}

// Apply narrows b's active size to r when r has a size. The strides stay
// as the addressing pitch.
func (b Buffer) Apply(r Rect) Buffer {
	if r.Width > 0 && r.Height > 0 {
		b.Width = r.Width
		b.Height = r.Height
	}
	return b
}

// Region is a buffer's active window after a rect is applied.
type Region struct {
	X, Y          int
	Width, Height int
	WStride       int
	HStride       int
	Format        Format
}

// Region resolves r against b.
func (b Buffer) Region(r Rect) Region {
	a := b.Apply(r)
	return Region{
		X:       r.X,
		Y:       r.Y,
		Width:   a.Width,
		Height:  a.Height,
		WStride: a.WStride,
		HStride: a.EffectiveHStride(),
		Format:  a.Format,
	}
}
