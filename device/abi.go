package device

import "unsafe"

// Kernel ABI of the RGA driver. Struct field order and widths follow the
// driver's uapi header; Go's natural alignment lays them out the same way
// as the C compiler on the supported 64-bit targets.

const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

// IOC encodes an ioctl request number the way the kernel's _IOC macro does.
func IOC(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNRShift
}

const iocMagic = 'r'

// Legacy request numbers used before the multi-core driver.
const (
	RGABlitSync    = 0x5017
	RGABlitAsync   = 0x5018
	RGAFlush       = 0x5019
	RGAGetResult   = 0x501a
	RGAGetVersion  = 0x501b
	RGA2BlitSync   = 0x6017
	RGA2BlitAsync  = 0x6018
	RGA2Flush      = 0x6019
	RGA2GetResult  = 0x601a
	RGA2GetVersion = 0x601b
)

// Multi-core driver request numbers.
var (
	IOCGetDriverVersion = IOC(iocRead, iocMagic, 0x1, unsafe.Sizeof(VersionInfo{}))
	IOCGetHWVersion     = IOC(iocRead, iocMagic, 0x2, unsafe.Sizeof(HWVersions{}))
	IOCImportBuffer     = IOC(iocRead|iocWrite, iocMagic, 0x3, unsafe.Sizeof(BufferPool{}))
	IOCReleaseBuffer    = IOC(iocWrite, iocMagic, 0x4, unsafe.Sizeof(BufferPool{}))
	IOCRequestCreate    = IOC(iocRead, iocMagic, 0x5, unsafe.Sizeof(uint32(0)))
	IOCRequestSubmit    = IOC(iocRead|iocWrite, iocMagic, 0x6, unsafe.Sizeof(UserRequest{}))
	IOCRequestConfig    = IOC(iocRead|iocWrite, iocMagic, 0x7, unsafe.Sizeof(UserRequest{}))
	IOCRequestCancel    = IOC(iocRead|iocWrite, iocMagic, 0x8, unsafe.Sizeof(uint32(0)))
)

// Sync modes carried in requests.
const (
	SyncModeSync  = RGABlitSync
	SyncModeAsync = RGABlitAsync
)

// MaxHWCores is the number of version slots the driver reports.
const MaxHWCores = 8

// Render modes.
const (
	RenderBitblt             = 0x0
	RenderColorPalette       = 0x1
	RenderColorFill          = 0x2
	RenderLinePointDrawing   = 0x3
	RenderBlurSharpFilter    = 0x4
	RenderPreScaling         = 0x5
	RenderUpdatePaletteTable = 0x6
	RenderUpdatePatternBuf   = 0x7
)

// VersionInfo is struct rga_version_t.
type VersionInfo struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Str      [16]byte
}

// String returns the NUL-terminated version text.
func (v VersionInfo) String() string {
	return cString(v.Str[:])
}

// HWVersions is struct rga_hw_versions_t.
type HWVersions struct {
	Version [MaxHWCores]VersionInfo
	Size    uint32
}

// ExternalBuffer is struct rga_external_buffer.
type ExternalBuffer struct {
	Memory uint64
	Type   uint32
	Handle uint32
	Info   MemoryParam
	_      [252]byte
}

// MemoryParam is struct rga_memory_parm.
type MemoryParam struct {
	Width  uint32
	Height uint32
	Format uint32
	Size   uint32
}

// Memory types for ExternalBuffer.Type.
const (
	MemoryVirtAddr = 0x1
	MemoryPhysAddr = 0x2
	MemoryDMABuf   = 0x3
)

// BufferPool is struct rga_buffer_pool.
type BufferPool struct {
	Buffers uint64
	Size    uint32
	_       uint32
}

// UserRequest is struct rga_user_request, used for job submit and config.
type UserRequest struct {
	TaskPtr        uint64
	TaskNum        uint32
	ID             uint32
	SyncMode       uint32
	ReleaseFenceFD int32
	MPIConfigFlags uint32
	AcquireFenceFD int32
	_              [120]byte
}

// ImageInfo is struct rga_img_info_t, one channel of a request.
type ImageInfo struct {
	YRGBAddr uint64
	UVAddr   uint64
	VAddr    uint64
	Format   uint32

	ActW    uint16
	ActH    uint16
	XOffset uint16
	YOffset uint16
	VirW    uint16
	VirH    uint16

	Endian       uint16
	AlphaSwap    uint16
	RotateMode   uint16
	RdMode       uint16
	Is10BCompact uint16
	Is10BEndian  uint16
	Enable       uint16
	_            uint16
}

// Clip is the destination clip window.
type Clip struct {
	XMin uint16
	XMax uint16
	YMin uint16
	YMax uint16
}

// MMUInfo is struct MMU.
type MMUInfo struct {
	MMUEn    uint8
	_        [7]byte
	BaseAddr uint64
	MMUFlag  uint32
	_        uint32
}

// FullCSC is struct full_csc_t.
type FullCSC struct {
	Flag uint8
	_    [3]byte
	CoeY [4]uint16
	CoeU [4]uint16
	CoeV [4]uint16
}

// MosaicInfo is struct rga_mosaic_info.
type MosaicInfo struct {
	Enable uint8
	Mode   uint8
}

// OSDModeCtrl is struct rga_osd_mode_ctrl.
type OSDModeCtrl struct {
	Mode            uint8
	DirectionMode   uint8
	WidthMode       uint8
	BlockFixWidth   uint16
	BlockNum        uint8
	FlagsIndex      uint16
	ColorMode       uint8
	InvertFlagsMode uint8
	DefaultColorSel uint8
	InvertEnable    uint8
	InvertMode      uint8
	InvertThresh    uint8
	UnfixIndex      uint8
}

// OSDBPP2 is struct rga_osd_bpp2.
type OSDBPP2 struct {
	ACSwap     uint8
	EndianSwap uint8
	_          [2]byte
	Color0     uint32
	Color1     uint32
}

// OSDFactor is struct rga_osd_invert_factor.
type OSDFactor struct {
	AlphaMax uint8
	AlphaMin uint8
	YGMax    uint8
	YGMin    uint8
	CRBMax   uint8
	CRBMin   uint8
}

// OSDInfo is struct rga_osd_info.
type OSDInfo struct {
	Enable    uint8
	ModeCtrl  OSDModeCtrl
	CalFactor OSDFactor
	BPP2Info  OSDBPP2
	LastFlags uint64
	CurFlags  uint64
}

// PreIntrInfo is struct rga_pre_intr_info.
type PreIntrInfo struct {
	Enable        uint8
	ReadIntrEn    uint8
	WriteIntrEn   uint8
	ReadHoldEn    uint8
	ReadThreshold uint32
	WriteStart    uint32
	WriteStep     uint32
}

// Interp is struct rga_interp.
type Interp struct {
	Horiz uint8
	Verti uint8
}

// RGBA5551Alpha is struct rga_rgba5551_alpha.
type RGBA5551Alpha struct {
	Flags  uint16
	Alpha0 uint8
	Alpha1 uint8
}

// GaussConfig is struct rga_gauss_config. CoePtr points at Size uint32
// coefficients owned by the request.
type GaussConfig struct {
	Size   uint32
	_      uint32
	CoePtr uint64
}

// SetCoefficients points the config at coe. The caller keeps coe alive
// until the device call returns.
func (g *GaussConfig) SetCoefficients(coe []uint32) {
	g.Size = uint32(len(coe))
	g.CoePtr = 0
	if len(coe) > 0 {
		g.CoePtr = uint64(uintptr(unsafe.Pointer(&coe[0])))
	}
}

// Coefficients returns the slice set by SetCoefficients.
func (g *GaussConfig) Coefficients() []uint32 {
	if g.CoePtr == 0 || g.Size == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(uintptr(g.CoePtr))), g.Size)
}

// Feature is struct rga_req_feature.
type Feature struct {
	UserCloseFence uint32
	GlobalAlphaEn  uint32
}

// NNInfo is struct rga_nn.
type NNInfo struct {
	NNFlag  uint8
	_       uint8
	ScaleR  uint16
	ScaleG  uint16
	ScaleB  uint16
	OffsetR uint16
	OffsetG uint16
	OffsetB uint16
}

// DitherInfo is struct rga_dither.
type DitherInfo struct {
	Enable uint8
	Mode   uint8
	_      [2]byte
	LUT0L  uint16
	LUT0H  uint16
	LUT1L  uint16
	LUT1H  uint16
}

// Request is struct rga_req, the task descriptor the driver executes.
type Request struct {
	RenderMode uint8
	_          [7]byte

	Src ImageInfo
	Dst ImageInfo
	Pat ImageInfo

	ROPMaskAddr uint64
	LUTAddr     uint64

	Clip Clip

	Sina int32
	Cosa int32

	AlphaROPFlag uint16
	ScaleMode    uint8
	_            uint8

	ColorKeyMax uint32
	ColorKeyMin uint32
	FGColor     uint32
	BGColor     uint32

	GrColor  [8]int16
	LineDraw [6]uint32
	Fading   [4]uint8

	PDMode           uint8
	AlphaGlobalValue uint8
	ROPCode          uint16
	BSFilterFlag     uint8
	PaletteMode      uint8
	YUV2RGBMode      uint8
	EndianMode       uint8
	RotateMode       uint8
	ColorFillMode    uint8
	_                [2]byte

	MMUInfo MMUInfo

	AlphaROPMode uint8
	SrcTransMode uint8
	DitherMode   uint8
	_            uint8

	FullCSC FullCSC

	InFenceFD  int32
	Core       uint8
	Priority   uint8
	_          [2]byte
	OutFenceFD int32
	HandleFlag uint8

	MosaicInfo MosaicInfo
	UVHDSMode  uint8
	UVVDSMode  uint8
	_          [3]byte

	OSDInfo       OSDInfo
	PreIntrInfo   PreIntrInfo
	Interp        Interp
	RGBA5551Alpha RGBA5551Alpha
	_             [2]byte
	GaussConfig   GaussConfig
	NN            NNInfo
	Dither        DitherInfo
	Feature       Feature

	// Per-layer global alpha for the blend unit. They live in what older
	// drivers treat as reserved space.
	FGGlobalAlpha uint8
	BGGlobalAlpha uint8
	_             [30]byte
}

// NewUserRequest points a job request at tasks. The caller keeps tasks
// alive until the device call returns.
func NewUserRequest(id uint32, syncMode uint32, acquireFence int, tasks []Request) UserRequest {
	req := UserRequest{
		ID:             id,
		SyncMode:       syncMode,
		AcquireFenceFD: int32(acquireFence),
		TaskNum:        uint32(len(tasks)),
	}
	if len(tasks) > 0 {
		req.TaskPtr = uint64(uintptr(unsafe.Pointer(&tasks[0])))
	}
	return req
}

// TasksOf returns the task slice a request built by NewUserRequest points at.
func TasksOf(req *UserRequest) []Request {
	if req.TaskPtr == 0 || req.TaskNum == 0 {
		return nil
	}
	return unsafe.Slice((*Request)(unsafe.Pointer(uintptr(req.TaskPtr))), req.TaskNum)
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
