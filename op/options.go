package op

import (
	"go_rga/core"
	"go_rga/version"
)

// InterpMode is a scaling filter.
type InterpMode uint8

const (
	InterpDefault InterpMode = 0
	InterpLinear  InterpMode = 1
	InterpBicubic InterpMode = 2
	InterpAverage InterpMode = 3
)

func (m InterpMode) String() string {
	switch m {
	case InterpDefault:
		return "default"
	case InterpLinear:
		return "linear"
	case InterpBicubic:
		return "bicubic"
	case InterpAverage:
		return "average"
	}
	return "unknown"
}

// Interp selects the filter per axis. InterpDefault lets the compiler pick
// from the scale ratio.
type Interp struct {
	Horiz InterpMode
	Verti InterpMode
}

// InterpBoth applies one filter to both axes.
func InterpBoth(m InterpMode) *Interp {
	return &Interp{Horiz: m, Verti: m}
}

// ScaleMode packs the filters into the request's scale_mode byte.
func (i Interp) ScaleMode() uint8 {
	return uint8(i.Horiz&0xf) | uint8(i.Verti&0xf)<<4
}

// MosaicMode is the mosaic block size.
type MosaicMode uint32

const (
	Mosaic8 MosaicMode = iota
	Mosaic16
	Mosaic32
	Mosaic64
	Mosaic128
)

// ROP codes for the raster-operation unit.
const (
	ROPAnd    uint32 = 0x88
	ROPOr     uint32 = 0xee
	ROPNotDst uint32 = 0x55
	ROPNotSrc uint32 = 0x33
	ROPXor    uint32 = 0xf6
	ROPNotXor uint32 = 0xf9
)

// ColorKeyRange is the inclusive colour range keyed out of src.
type ColorKeyRange struct {
	Min uint32
	Max uint32
}

// NN holds the per-channel quantisation applied on the destination.
type NN struct {
	ScaleR, ScaleG, ScaleB    int
	OffsetR, OffsetG, OffsetB int
}

// GaussConfig describes a gaussian blur. Non-positive sigmas are derived
// from the kernel size. Matrix, when set, replaces the generated kernel and
// holds KSizeX*KSizeY weights in row order.
type GaussConfig struct {
	KSizeX int
	KSizeY int
	SigmaX float64
	SigmaY float64
	Matrix []float64
}

// IntrFlag selects pre-interrupt behaviour.
type IntrFlag uint32

const (
	IntrReadIntr  IntrFlag = 1 << 0
	IntrReadHold  IntrFlag = 1 << 1
	IntrWriteIntr IntrFlag = 1 << 2
)

// PreIntrConfig asks the hardware to interrupt before the task completes.
type PreIntrConfig struct {
	Flags         IntrFlag
	ReadThreshold int
	WriteStart    int
	WriteStep     int
}

// OSDBlockMode selects fixed or per-block widths.
type OSDBlockMode uint32

const (
	OSDBlockNormal    OSDBlockMode = 0
	OSDBlockDifferent OSDBlockMode = 1
)

// OSDInvertChannel picks which channels an OSD invert affects.
type OSDInvertChannel uint32

const (
	OSDInvertNone OSDInvertChannel = iota
	OSDInvertYG
	OSDInvertCRB
	OSDInvertAlpha
	OSDInvertColor
	OSDInvertBoth
)

// OSDInvertMode chooses factor-based or swap inversion.
type OSDInvertMode uint32

const (
	OSDInvertUseFactor OSDInvertMode = 0
	OSDInvertUseSwap   OSDInvertMode = 1
)

// OSDBlock describes the OSD block grid.
type OSDBlock struct {
	WidthMode        OSDBlockMode
	Width            uint32
	WidthIndex       uint32
	BlockCount       uint32
	BackgroundConfig uint32
	Direction        uint32
	ColorMode        uint32
	NormalColor      uint32
	InvertColor      uint32
}

// OSDFactor bounds factor-based inversion per channel.
type OSDFactor struct {
	AlphaMax, AlphaMin uint8
	CRBMax, CRBMin     uint8
	YGMax, YGMin       uint8
}

// OSDInvert controls when and how blocks are inverted.
type OSDInvert struct {
	Channel      OSDInvertChannel
	FlagsMode    uint32
	FlagsIndex   uint32
	InvertFlags  uint64
	CurrentFlags uint64
	Mode         OSDInvertMode
	Factor       OSDFactor
	Threshold    uint32
}

// OSDBPP2 configures the RGBA2BPP pattern expansion.
type OSDBPP2 struct {
	ACSwap     uint32
	EndianSwap uint32
	Color0     uint32
	Color1     uint32
}

// OSDConfig is the on-screen-display configuration.
type OSDConfig struct {
	Mode   uint32
	Block  OSDBlock
	Invert OSDInvert
	BPP2   OSDBPP2
}

// Options carries the per-feature configuration of a task. A field is read
// only when the matching usage bit is set; nil fields read as zero.
type Options struct {
	Color    uint32 // ColorFill
	ColorKey *ColorKeyRange
	NN       *NN
	ROPCode  uint32
	Mosaic   MosaicMode
	OSD      *OSDConfig
	Gauss    *GaussConfig
	PreIntr  *PreIntrConfig
	Interp   *Interp

	Priority int
	Core     int

	// APIVersion is the caller's im2d version. Zero means current.
	APIVersion version.Version
}

var (
	maxAPIVersion    = version.New(2, 0, 0)
	legacyAPIVersion = version.New(1, 7, 2)
)

// Effective applies API version gating. Versions newer than 2.0.0 are
// rejected; versions up to 1.7.2 only carry the fields those releases
// defined.
func (o Options) Effective() (Options, error) {
	if o.APIVersion.IsZero() {
		return o, nil
	}
	if version.Compare(o.APIVersion, maxAPIVersion) > 0 {
		return Options{}, core.ErrIllegal("", "unsupported options API version %s", o.APIVersion)
	}
	if version.Compare(o.APIVersion, legacyAPIVersion) <= 0 {
		return Options{
			Color:      o.Color,
			ColorKey:   o.ColorKey,
			NN:         o.NN,
			ROPCode:    o.ROPCode,
			Priority:   o.Priority,
			Core:       o.Core,
			APIVersion: o.APIVersion,
		}, nil
	}
	return o, nil
}

// Implied returns the usage bits implied by the populated optional fields.
// Convenience constructors use it; callers that build a Usage by hand keep
// full control.
func (o Options) Implied() Usage {
	var u Usage
	if o.ColorKey != nil {
		u |= ColorKeyNormal
	}
	if o.NN != nil {
		u |= NNQuantize
	}
	if o.ROPCode != 0 {
		u |= ROP
	}
	if o.OSD != nil {
		u |= OSD
	}
	if o.Gauss != nil {
		u |= Gauss
	}
	if o.PreIntr != nil {
		u |= PreIntr
	}
	return u
}
