// Package capability describes what each RGA hardware revision can do and
// maps reported hardware version tuples onto those descriptions.
package capability

import (
	"fmt"
	"strings"
)

// HWVersion is a bitmask of hardware revisions covered by a Row.
type HWVersion uint32

const (
	VersionErr HWVersion = 1 << iota
	RGA1
	RGA1Plus
	RGA2
	RGA2Lite0
	RGA2Lite1
	RGA2Enhance
	RGA2Pro
	RGA2Lite2
	RGA3
)

// RGA1Family is the set of revisions without a pattern channel and with the
// rotate/mirror restrictions.
const RGA1Family = RGA1 | RGA1Plus

// RGA3Family covers the RGA3 cores.
const RGA3Family = RGA3

var hwVersionNames = []struct {
	v    HWVersion
	name string
}{
	{RGA1, "RGA_1"},
	{RGA1Plus, "RGA_1_plus"},
	{RGA2, "RGA_2"},
	{RGA2Lite0, "RGA_2_lite0"},
	{RGA2Lite1, "RGA_2_lite1"},
	{RGA2Enhance, "RGA_2_Enhance"},
	{RGA2Pro, "RGA_2_PRO"},
	{RGA2Lite2, "RGA_2_lite2"},
	{RGA3, "RGA_3"},
}

func (v HWVersion) String() string {
	var names []string
	for _, n := range hwVersionNames {
		if v&n.v != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, " | ")
}

// FormatGroup is a bitmask of pixel format families.
type FormatGroup uint32

const (
	FormatError FormatGroup = 1 << iota
	FormatRGB
	FormatARGB16
	FormatRGBA16
	FormatBPP
	FormatYUV420SP8
	FormatYUV420SP10
	FormatYUV420P8
	FormatYUV420P10
	FormatYUV422SP8
	FormatYUV422SP10
	FormatYUV422P8
	FormatYUV422P10
	FormatYUYV420
	FormatYUYV422
	FormatYUV400
	FormatY4
	FormatRGBA2BPP
	FormatAlpha8
	FormatYUV444SP8
	FormatY8
)

var formatGroupNames = []struct {
	g    FormatGroup
	name string
}{
	{FormatRGB, "RGBA_8888 RGB_888 RGB_565"},
	{FormatARGB16, "ARGB_4444 ARGB_5551"},
	{FormatRGBA16, "RGBA_4444 RGBA_5551"},
	{FormatBPP, "BPP8 BPP4 BPP2 BPP1"},
	{FormatYUV420SP8, "YUV420/YVU420_SP_8bit"},
	{FormatYUV420SP10, "YUV420/YVU420_SP_10bit"},
	{FormatYUV420P8, "YUV420/YVU420_P_8bit"},
	{FormatYUV420P10, "YUV420/YVU420_P_10bit"},
	{FormatYUV422SP8, "YUV422/YVU422_SP_8bit"},
	{FormatYUV422SP10, "YUV422/YVU422_SP_10bit"},
	{FormatYUV422P8, "YUV422/YVU422_P_8bit"},
	{FormatYUV422P10, "YUV422/YVU422_P_10bit"},
	{FormatYUYV420, "YUYV420"},
	{FormatYUYV422, "YUYV422"},
	{FormatYUV400, "YUV400"},
	{FormatY4, "Y4"},
	{FormatRGBA2BPP, "RGBA2BPP"},
	{FormatAlpha8, "ALPHA_8"},
	{FormatYUV444SP8, "YUV444_SP_8bit"},
	{FormatY8, "Y8"},
}

// Names lists the human readable family names in g.
func (g FormatGroup) Names() []string {
	var names []string
	for _, n := range formatGroupNames {
		if g&n.g != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// Feature is a bitmask of optional hardware features.
type Feature uint32

const (
	FeatureError Feature = 1 << iota
	FeatureColorFill
	FeatureColorPalette
	FeatureROP
	FeatureQuantize
	FeatureSrc1R2YCSC
	FeatureDstFullCSC
	FeatureFBC
	FeatureBlendYUV
	FeatureBT2020
	FeatureMosaic
	FeatureOSD
	FeaturePreIntr
	FeatureAlphaBitMap
	FeatureGauss
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureColorFill, "color_fill"},
	{FeatureColorPalette, "color_palette"},
	{FeatureROP, "ROP"},
	{FeatureQuantize, "quantize"},
	{FeatureSrc1R2YCSC, "src1_r2y_csc"},
	{FeatureDstFullCSC, "dst_full_csc"},
	{FeatureFBC, "FBC"},
	{FeatureBlendYUV, "blend_in_YUV"},
	{FeatureBT2020, "BT.2020"},
	{FeatureMosaic, "mosaic"},
	{FeatureOSD, "OSD"},
	{FeaturePreIntr, "early_interruption"},
	{FeatureAlphaBitMap, "alpha_bit_map"},
	{FeatureGauss, "gauss"},
}

func (f Feature) Names() []string {
	var names []string
	for _, n := range featureNames {
		if f&n.f != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// Resolution is a width/height cap in pixels.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Row is the capability envelope of one hardware revision, or of several
// merged together.
type Row struct {
	Version     HWVersion
	InputMax    Resolution
	OutputMax   Resolution
	ByteStride  int
	ScaleLimit  int
	Performance int

	InputFormats  FormatGroup
	OutputFormats FormatGroup
	Features      Feature

	// ScaleVerBicubicLimit is the widest source the vertical bicubic
	// filter accepts on this revision; 0 when the row sets no limit.
	ScaleVerBicubicLimit int
}

// Merge combines two rows: bitmasks are ORed and numeric caps take the
// larger value, so the result never narrows either input.
func Merge(a, b Row) Row {
	return Row{
		Version:              a.Version | b.Version,
		InputMax:             maxResolution(a.InputMax, b.InputMax),
		OutputMax:            maxResolution(a.OutputMax, b.OutputMax),
		ByteStride:           max(a.ByteStride, b.ByteStride),
		ScaleLimit:           max(a.ScaleLimit, b.ScaleLimit),
		Performance:          max(a.Performance, b.Performance),
		InputFormats:         a.InputFormats | b.InputFormats,
		OutputFormats:        a.OutputFormats | b.OutputFormats,
		Features:             a.Features | b.Features,
		ScaleVerBicubicLimit: max(a.ScaleVerBicubicLimit, b.ScaleVerBicubicLimit),
	}
}

func maxResolution(a, b Resolution) Resolution {
	return Resolution{Width: max(a.Width, b.Width), Height: max(a.Height, b.Height)}
}

// Equal reports whether two rows describe the same envelope.
func (r Row) Equal(o Row) bool {
	return r == o
}

// IsZero reports whether the row was never populated.
func (r Row) IsZero() bool {
	return r == Row{}
}

// Has reports whether every bit of f is supported.
func (r Row) Has(f Feature) bool {
	return r.Features&f == f
}

// IsRGA1 reports whether the row belongs to the oldest hardware family.
func (r Row) IsRGA1() bool {
	return r.Version&RGA1Family != 0
}

// IsRGA3 reports whether any merged core is an RGA3.
func (r Row) IsRGA3() bool {
	return r.Version&RGA3Family != 0
}

// Describe returns labelled summary lines, in display order.
func (r Row) Describe() [][2]string {
	join := func(s []string) string {
		if len(s) == 0 {
			return "none"
		}
		return strings.Join(s, " | ")
	}
	return [][2]string{
		{"version", r.Version.String()},
		{"max input", r.InputMax.String()},
		{"max output", r.OutputMax.String()},
		{"byte stride", fmt.Sprintf("%d", r.ByteStride)},
		{"scale limit", fmt.Sprintf("1/%d ~ %d", r.ScaleLimit, r.ScaleLimit)},
		{"input format", join(r.InputFormats.Names())},
		{"output format", join(r.OutputFormats.Names())},
		{"feature", join(r.Features.Names())},
		{"performance", fmt.Sprintf("%d", r.Performance)},
	}
}
