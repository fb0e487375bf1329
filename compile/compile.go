// Package compile turns a validated task into the request descriptor the
// driver executes. Compilation is pure: it reads the task and the session's
// cached driver info and performs no device calls.
package compile

import (
	"runtime"

	"go_rga/core"
	"go_rga/device"
	"go_rga/op"
	"go_rga/session"
	"go_rga/surface"
	"go_rga/validate"
)

// Input is one task after validation. Rects are interpreted the way
// validate.Prepare leaves them.
type Input struct {
	Src, Dst, Pat             surface.Buffer
	SrcRect, DstRect, PatRect surface.Rect
	Usage                     op.Usage
	Options                   op.Options

	// AcquireFence is waited on by the driver before it reads any buffer.
	// Zero or negative means none.
	AcquireFence int

	// LegacyBlend is a raw blend word from the older blit API. It applies
	// only when Usage selects no blend mode.
	LegacyBlend uint32
}

// Task is a compiled request. It owns any memory the request points at, so
// it must stay reachable until the device call returns.
type Task struct {
	Request device.Request

	// LUTUpload loads the palette table. When set it runs synchronously
	// before Request.
	LUTUpload *device.Request

	Async bool

	coefficients []uint32
}

// KeepAlive marks the memory referenced by the request as live up to this
// call. Callers invoke it after the device call that reads the request.
func (t *Task) KeepAlive() {
	runtime.KeepAlive(t.coefficients)
}

// Compile builds the request for in.
func Compile(in Input, info session.Info) (*Task, error) {
	opts, err := in.Options.Effective()
	if err != nil {
		return nil, err
	}
	in.Options = opts

	switch {
	case in.Usage.Has(op.ColorFill):
		return compileFill(in, info)
	case in.Usage.Has(op.ColorPalette):
		return compilePalette(in, info)
	}
	return compileBlit(in, info)
}

// channel is one image channel resolved for the request.
type channel struct {
	buf    surface.Buffer
	region surface.Region
	addr   surface.Address
}

func resolveChannel(role string, b surface.Buffer, r surface.Rect) (channel, error) {
	addr, err := b.Resolve(role)
	if err != nil {
		return channel{}, err
	}
	return channel{buf: b, region: b.Region(r), addr: addr}, nil
}

// handleFlag requires the channels to be all handles or no handles.
func handleFlag(chans ...channel) (uint8, error) {
	handles := 0
	for _, c := range chans {
		if c.addr.Mode == surface.AddrHandle {
			handles++
		}
	}
	switch handles {
	case 0:
		return 0, nil
	case len(chans):
		return 1, nil
	}
	return 0, core.ErrIllegal("", "handles cannot be mixed with other addressing modes, %d of %d channels are handles",
		handles, len(chans))
}

// imageInfo fills the geometry and memory of one channel. actW and actH
// are the active size after any quarter-turn swap.
func imageInfo(c channel, actW, actH int, info session.Info) device.ImageInfo {
	r := c.region
	img := device.ImageInfo{
		Format:  r.Format.Wire(),
		ActW:    uint16(actW),
		ActH:    uint16(actH),
		XOffset: uint16(r.X),
		YOffset: uint16(r.Y),
		VirW:    uint16(r.WStride),
		VirH:    uint16(r.HStride),
		RdMode:  uint16(c.buf.Layout.Wire()),
	}

	plane := uint64(r.WStride) * uint64(r.HStride)
	var base uint64
	if c.addr.Mode == surface.AddrPhys || c.addr.Mode == surface.AddrVirt {
		base = c.addr.Value
	}

	if info.DriverType == session.DriverRGA1 {
		if base != 0 {
			img.YRGBAddr = base
			img.UVAddr = base + plane
			img.VAddr = base + plane*5/4
		}
		return img
	}

	if c.addr.Mode == surface.AddrFD || c.addr.Mode == surface.AddrHandle {
		img.YRGBAddr = c.addr.Value
	}
	img.UVAddr = base
	img.VAddr = base + plane
	return img
}

// legacyMMU reports the first RGA1 driver generation, which cannot take fds
// and runs every channel through the IOMMU.
func legacyMMU(info session.Info) bool {
	return info.DriverType == session.DriverRGA1 &&
		(len(info.HWVersions) == 0 || info.HWVersions[0].Minor < 6)
}

// setFDs hands fds to RGA1 drivers that take them outside the channel
// addresses.
func setFDs(req *device.Request, info session.Info, src, dst channel) {
	if info.DriverType != session.DriverRGA1 || legacyMMU(info) {
		return
	}
	var fds uint32
	if src.addr.Mode == surface.AddrFD {
		fds |= uint32(src.addr.Value) & 0xffff
	}
	if dst.addr.Mode == surface.AddrFD {
		fds |= (uint32(dst.addr.Value) & 0xffff) << 16
	}
	req.LineDraw[2] = fds
}

// MMU flag bits.
const (
	mmuFlagBase   = 2<<4 | 1
	mmuFlagEnable = 1 << 31
	mmuFlagSrc    = 1 << 8
	mmuFlagDst    = 1 << 10
	mmuFlagPat    = 1<<11 | 1<<9
)

func applyMMU(req *device.Request, srcMMU, dstMMU bool) {
	if !srcMMU && !dstMMU {
		return
	}
	req.MMUInfo.MMUEn = 1
	req.MMUInfo.MMUFlag = mmuFlagBase | mmuFlagEnable
	if srcMMU {
		req.MMUInfo.MMUFlag |= mmuFlagSrc
	}
	if dstMMU {
		req.MMUInfo.MMUFlag |= mmuFlagDst
	}
}

// finish writes the fields every render mode shares.
func finish(req *device.Request, in Input, info session.Info) {
	if in.AcquireFence > 0 {
		req.InFenceFD = int32(in.AcquireFence)
	}
	coreID, priority := in.Options.Core, in.Options.Priority
	if coreID == 0 {
		coreID = info.Core
	}
	if priority == 0 {
		priority = info.Priority
	}
	req.Core = uint8(coreID)
	req.Priority = uint8(priority)
	if info.Features.UserCloseFence {
		req.Feature.UserCloseFence = 1
	}
}

func compileBlit(in Input, info session.Info) (*Task, error) {
	u := in.Usage
	opts := in.Options
	patEnabled := validate.Request{Pat: in.Pat, Usage: u}.PatternEnabled()

	src, err := resolveChannel("src", in.Src, in.SrcRect)
	if err != nil {
		return nil, err
	}
	dst, err := resolveChannel("dst", in.Dst, in.DstRect)
	if err != nil {
		return nil, err
	}
	chans := []channel{src, dst}
	var pat channel
	if patEnabled {
		if pat, err = resolveChannel("pat", in.Pat, in.PatRect); err != nil {
			return nil, err
		}
		chans = append(chans, pat)
	}

	task := &Task{Async: u.Has(op.Async)}
	req := &task.Request
	req.RenderMode = device.RenderBitblt

	if req.HandleFlag, err = handleFlag(chans...); err != nil {
		return nil, err
	}

	code := transformCode(u)
	quarter := code&0x0f == halRot90 || code&0x0f == halRot270
	hScale, vScale := scaleRatios(src.region, pat.region, dst.region, patEnabled, quarter)
	rot := decodeTransform(code, hScale != 1 || vScale != 1)

	var interp op.Interp
	if opts.Interp != nil {
		interp = *opts.Interp
	}
	if interp, err = chooseInterp(interp, hScale, vScale, src.region.Width, dst.region.Width); err != nil {
		return nil, err
	}

	plan, err := planCSC(in.Src, in.Pat, in.Dst, patEnabled)
	if err != nil {
		return nil, err
	}

	if u.Has(op.Gauss) {
		if u.Any(op.TransformMask) {
			return nil, core.ErrNotSupported("", "gaussian blur does not support rotation or mirror")
		}
		if src.region.Width != dst.region.Width || src.region.Height != dst.region.Height {
			return nil, core.ErrInvalid("", "gaussian blur does not support scaling, src[w,h] = [%d, %d], dst[w,h] = [%d, %d]",
				src.region.Width, src.region.Height, dst.region.Width, dst.region.Height)
		}
		var g op.GaussConfig
		if opts.Gauss != nil {
			g = *opts.Gauss
		}
		if task.coefficients, err = gaussCoefficients(g); err != nil {
			return nil, err
		}
		req.GaussConfig.SetCoefficients(task.coefficients)
	}

	dstW, dstH := dst.region.Width, dst.region.Height
	patW, patH := pat.region.Width, pat.region.Height
	if rot.swapsAxes() {
		dstW, dstH = dstH, dstW
		patW, patH = patH, patW
	}
	req.Src = imageInfo(src, src.region.Width, src.region.Height, info)
	req.Dst = imageInfo(dst, dstW, dstH, info)
	if patEnabled {
		req.Pat = imageInfo(pat, patW, patH, info)
	}
	req.Clip = device.Clip{
		XMax: uint16(dst.region.WStride - 1),
		YMax: uint16(dst.region.HStride - 1),
	}
	setFDs(req, info, src, dst)

	var blend uint32
	if u.Any(op.BlendMask) {
		blend = blendWord(u, in.Src.GlobalAlpha, in.Dst.GlobalAlpha)
	} else if in.LegacyBlend != 0 {
		blend = normalizeLegacyBlend(in.LegacyBlend)
	}
	if u.Any(op.ColorKeyMask) && blend&0xfff == 0 {
		blend |= colorKeyBlend
	}
	applyBlend(req, blend)

	req.RotateMode = rot.mode
	req.Sina, req.Cosa = rot.sina, rot.cosa
	req.ScaleMode = interp.ScaleMode()
	req.Interp = device.Interp{Horiz: uint8(interp.Horiz), Verti: uint8(interp.Verti)}
	if in.Src.Format.IsRGB() && in.Dst.Format.Is565() {
		req.AlphaROPFlag |= 1 << 5
	}
	applyCSC(req, plan, in.Src, in.Pat, in.Dst, patEnabled)

	if u.Has(op.NNQuantize) {
		var nn op.NN
		if opts.NN != nil {
			nn = *opts.NN
		}
		applyNN(req, nn)
	}
	applyMonoDither(req, in.Dst)

	srcMMU, dstMMU, patMMU := src.addr.MMU, dst.addr.MMU, pat.addr.MMU
	if legacyMMU(info) {
		srcMMU, dstMMU, patMMU = true, true, true
	}
	applyMMU(req, srcMMU, dstMMU)
	if patEnabled {
		if patMMU {
			req.MMUInfo.MMUFlag |= mmuFlagPat
		}
		req.BSFilterFlag = 1
	}

	if u.Has(op.ROP) {
		applyROP(req, opts.ROPCode)
	}
	if u.Any(op.ColorKeyMask) {
		var key op.ColorKeyRange
		if opts.ColorKey != nil {
			key = *opts.ColorKey
		}
		applyColorKey(req, u, key)
	}
	if u.Has(op.Mosaic) {
		applyMosaic(req, opts.Mosaic)
	}
	if u.Has(op.OSD) {
		var osd op.OSDConfig
		if opts.OSD != nil {
			osd = *opts.OSD
		}
		applyOSD(req, osd, in.Pat)
	}
	if u.Has(op.PreIntr) {
		var intr op.PreIntrConfig
		if opts.PreIntr != nil {
			intr = *opts.PreIntr
		}
		applyPreIntr(req, intr)
	}
	if u.Has(op.AlphaBitMap) {
		applyAlphaBitMap(req, in.Pat)
	}

	finish(req, in, info)
	return task, nil
}
