// Package surface holds the image data model: native pixel formats, buffer
// descriptions, rectangles and the addressing modes the driver understands.
package surface

import (
	"fmt"
	"strings"

	"go_rga/capability"
)

// Format is the accelerator's native pixel format code (RK_FORMAT_*).
type Format uint32

const (
	FormatRGBA8888      Format = 0x0 << 8
	FormatRGBX8888      Format = 0x1 << 8
	FormatRGB888        Format = 0x2 << 8
	FormatBGRA8888      Format = 0x3 << 8
	FormatRGB565        Format = 0x4 << 8
	FormatRGBA5551      Format = 0x5 << 8
	FormatRGBA4444      Format = 0x6 << 8
	FormatBGR888        Format = 0x7 << 8
	FormatYCbCr422SP    Format = 0x8 << 8
	FormatYCbCr422P     Format = 0x9 << 8
	FormatYCbCr420SP    Format = 0xa << 8
	FormatYCbCr420P     Format = 0xb << 8
	FormatYCrCb422SP    Format = 0xc << 8
	FormatYCrCb422P     Format = 0xd << 8
	FormatYCrCb420SP    Format = 0xe << 8
	FormatYCrCb420P     Format = 0xf << 8
	FormatBPP1          Format = 0x10 << 8
	FormatBPP2          Format = 0x11 << 8
	FormatBPP4          Format = 0x12 << 8
	FormatBPP8          Format = 0x13 << 8
	FormatY4            Format = 0x14 << 8
	FormatYCbCr400      Format = 0x15 << 8
	FormatBGRX8888      Format = 0x16 << 8
	FormatYVYU422       Format = 0x18 << 8
	FormatYVYU420       Format = 0x19 << 8
	FormatVYUY422       Format = 0x1a << 8
	FormatVYUY420       Format = 0x1b << 8
	FormatYUYV422       Format = 0x1c << 8
	FormatYUYV420       Format = 0x1d << 8
	FormatUYVY422       Format = 0x1e << 8
	FormatUYVY420       Format = 0x1f << 8
	FormatYCbCr420SP10B Format = 0x20 << 8
	FormatYCrCb420SP10B Format = 0x21 << 8
	FormatYCbCr422SP10B Format = 0x22 << 8
	FormatYCrCb422SP10B Format = 0x23 << 8
	FormatBGR565        Format = 0x24 << 8
	FormatBGRA5551      Format = 0x25 << 8
	FormatBGRA4444      Format = 0x26 << 8
	FormatARGB8888      Format = 0x28 << 8
	FormatXRGB8888      Format = 0x29 << 8
	FormatARGB5551      Format = 0x2a << 8
	FormatARGB4444      Format = 0x2b << 8
	FormatABGR8888      Format = 0x2c << 8
	FormatXBGR8888      Format = 0x2d << 8
	FormatABGR5551      Format = 0x2e << 8
	FormatABGR4444      Format = 0x2f << 8
	FormatRGBA2BPP      Format = 0x30 << 8
	FormatA8            Format = 0x31 << 8
	FormatYCbCr444SP    Format = 0x32 << 8
	FormatYCrCb444SP    Format = 0x33 << 8
	FormatY8            Format = 0x34 << 8
	FormatUnknown       Format = 0x100 << 8
)

type formatInfo struct {
	name  string
	group capability.FormatGroup
	bits  int
	yuv   bool
	rgb   bool
	alpha bool
}

var formats = map[Format]formatInfo{
	FormatRGBA8888:      {"RGBA8888", capability.FormatRGB, 32, false, true, true},
	FormatRGBX8888:      {"RGBX8888", capability.FormatRGB, 32, false, true, false},
	FormatRGB888:        {"RGB888", capability.FormatRGB, 24, false, true, false},
	FormatBGRA8888:      {"BGRA8888", capability.FormatRGB, 32, false, true, true},
	FormatRGB565:        {"RGB565", capability.FormatRGB, 16, false, true, false},
	FormatRGBA5551:      {"RGBA5551", capability.FormatRGBA16, 16, false, true, true},
	FormatRGBA4444:      {"RGBA4444", capability.FormatRGBA16, 16, false, true, true},
	FormatBGR888:        {"BGR888", capability.FormatRGB, 24, false, true, false},
	FormatYCbCr422SP:    {"YCbCr422SP", capability.FormatYUV422SP8, 8, true, false, false},
	FormatYCbCr422P:     {"YCbCr422P", capability.FormatYUV422P8, 8, true, false, false},
	FormatYCbCr420SP:    {"YCbCr420SP", capability.FormatYUV420SP8, 8, true, false, false},
	FormatYCbCr420P:     {"YCbCr420P", capability.FormatYUV420P8, 8, true, false, false},
	FormatYCrCb422SP:    {"YCrCb422SP", capability.FormatYUV422SP8, 8, true, false, false},
	FormatYCrCb422P:     {"YCrCb422P", capability.FormatYUV422P8, 8, true, false, false},
	FormatYCrCb420SP:    {"YCrCb420SP", capability.FormatYUV420SP8, 8, true, false, false},
	FormatYCrCb420P:     {"YCrCb420P", capability.FormatYUV420P8, 8, true, false, false},
	FormatBPP1:          {"BPP1", capability.FormatBPP, 1, false, false, false},
	FormatBPP2:          {"BPP2", capability.FormatBPP, 2, false, false, false},
	FormatBPP4:          {"BPP4", capability.FormatBPP, 4, false, false, false},
	FormatBPP8:          {"BPP8", capability.FormatBPP, 8, false, false, false},
	FormatY4:            {"Y4", capability.FormatY4, 4, true, false, false},
	FormatYCbCr400:      {"YCbCr400", capability.FormatYUV400, 8, true, false, false},
	FormatBGRX8888:      {"BGRX8888", capability.FormatRGB, 32, false, true, false},
	FormatYVYU422:       {"YVYU422", capability.FormatYUYV422, 16, true, false, false},
	FormatYVYU420:       {"YVYU420", capability.FormatYUYV420, 16, true, false, false},
	FormatVYUY422:       {"VYUY422", capability.FormatYUYV422, 16, true, false, false},
	FormatVYUY420:       {"VYUY420", capability.FormatYUYV420, 16, true, false, false},
	FormatYUYV422:       {"YUYV422", capability.FormatYUYV422, 16, true, false, false},
	FormatYUYV420:       {"YUYV420", capability.FormatYUYV420, 16, true, false, false},
	FormatUYVY422:       {"UYVY422", capability.FormatYUYV422, 16, true, false, false},
	FormatUYVY420:       {"UYVY420", capability.FormatYUYV420, 16, true, false, false},
	FormatYCbCr420SP10B: {"YCbCr420SP10B", capability.FormatYUV420SP10, 10, true, false, false},
	FormatYCrCb420SP10B: {"YCrCb420SP10B", capability.FormatYUV420SP10, 10, true, false, false},
	FormatYCbCr422SP10B: {"YCbCr422SP10B", capability.FormatYUV422SP10, 10, true, false, false},
	FormatYCrCb422SP10B: {"YCrCb422SP10B", capability.FormatYUV422SP10, 10, true, false, false},
	FormatBGR565:        {"BGR565", capability.FormatRGB, 16, false, true, false},
	FormatBGRA5551:      {"BGRA5551", capability.FormatRGBA16, 16, false, true, true},
	FormatBGRA4444:      {"BGRA4444", capability.FormatRGBA16, 16, false, true, true},
	FormatARGB8888:      {"ARGB8888", capability.FormatRGB, 32, false, true, true},
	FormatXRGB8888:      {"XRGB8888", capability.FormatRGB, 32, false, true, false},
	FormatARGB5551:      {"ARGB5551", capability.FormatARGB16, 16, false, true, true},
	FormatARGB4444:      {"ARGB4444", capability.FormatARGB16, 16, false, true, true},
	FormatABGR8888:      {"ABGR8888", capability.FormatRGB, 32, false, true, true},
	FormatXBGR8888:      {"XBGR8888", capability.FormatRGB, 32, false, true, false},
	FormatABGR5551:      {"ABGR5551", capability.FormatARGB16, 16, false, true, true},
	FormatABGR4444:      {"ABGR4444", capability.FormatARGB16, 16, false, true, true},
	FormatRGBA2BPP:      {"RGBA2BPP", capability.FormatRGBA2BPP, 2, false, false, false},
	FormatA8:            {"A8", capability.FormatAlpha8, 8, false, false, true},
	FormatYCbCr444SP:    {"YCbCr444SP", capability.FormatYUV444SP8, 8, false, false, false},
	FormatYCrCb444SP:    {"YCrCb444SP", capability.FormatYUV444SP8, 8, false, false, false},
	FormatY8:            {"Y8", capability.FormatY8, 8, false, false, false},
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown(0x%x)", uint32(f))
}

// ParseFormat looks a format up by name, ignoring case, underscores and
// an optional RK_FORMAT_ prefix, so "rgba_8888" and "RK_FORMAT_RGBA_8888"
// both give FormatRGBA8888.
func ParseFormat(name string) (Format, bool) {
	key := normalizeFormatName(name)
	if key == "" {
		return FormatUnknown, false
	}
	for f, info := range formats {
		if normalizeFormatName(info.name) == key {
			return f, true
		}
	}
	return FormatUnknown, false
}

func normalizeFormatName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "RK_FORMAT_")
	return strings.ReplaceAll(name, "_", "")
}

// Known reports whether f is a format the accelerator understands.
func (f Format) Known() bool {
	_, ok := formats[f]
	return ok
}

// Group returns the capability format group f belongs to, or
// capability.FormatError for an unknown format.
func (f Format) Group() capability.FormatGroup {
	if info, ok := formats[f]; ok {
		return info.group
	}
	return capability.FormatError
}

// BitsPerPixel is the storage width of the first plane, in bits. It is
// zero for an unknown format.
func (f Format) BitsPerPixel() int {
	return formats[f].bits
}

// IsYUV reports formats the colour-space converter treats as YUV input or
// output. The 4:4:4 and Y8 formats are excluded, as on the hardware.
func (f Format) IsYUV() bool {
	return formats[f].yuv
}

// IsRGB reports packed RGB formats, including the 16-bit variants.
func (f Format) IsRGB() bool {
	return formats[f].rgb
}

// HasAlpha reports whether the format carries a per-pixel alpha channel.
func (f Format) HasAlpha() bool {
	return formats[f].alpha
}

// IsBPP reports the indexed palette formats.
func (f Format) IsBPP() bool {
	return formats[f].group == capability.FormatBPP
}

// Is5551 reports the four 16-bit formats with a single alpha bit.
func (f Format) Is5551() bool {
	switch f {
	case FormatRGBA5551, FormatBGRA5551, FormatARGB5551, FormatABGR5551:
		return true
	}
	return false
}

// Is565 reports the two 16-bit formats without alpha.
func (f Format) Is565() bool {
	return f == FormatRGB565 || f == FormatBGR565
}

// IsMono reports the monochrome destinations that take the Y4/Y8 dither path.
func (f Format) IsMono() bool {
	return f == FormatY4 || f == FormatY8
}

// RequiresEven reports whether strides, dimensions and rect values must
// all be even. This covers every YUV and monochrome group; RGBA2BPP and A8
// are exempt.
func (f Format) RequiresEven() bool {
	return f.Group()&yuvGroups != 0
}

const yuvGroups = capability.FormatYUV420SP8 | capability.FormatYUV420SP10 |
	capability.FormatYUV420P8 | capability.FormatYUV420P10 |
	capability.FormatYUV422SP8 | capability.FormatYUV422SP10 |
	capability.FormatYUV422P8 | capability.FormatYUV422P10 |
	capability.FormatYUYV420 | capability.FormatYUYV422 |
	capability.FormatYUV400 | capability.FormatY4 |
	capability.FormatYUV444SP8 | capability.FormatY8

// PaletteMode is the palette index width the fill engine expects for an
// indexed source: 0 for BPP1 through 3 for BPP8.
func (f Format) PaletteMode() (int, bool) {
	switch f {
	case FormatBPP1:
		return 0, true
	case FormatBPP2:
		return 1, true
	case FormatBPP4:
		return 2, true
	case FormatBPP8:
		return 3, true
	}
	return 0, false
}

// Wire is the format number the kernel expects, which drops the low byte.
func (f Format) Wire() uint32 {
	return uint32(f) >> 8
}
