package compile

import (
	"testing"

	"go_rga/capability"
	"go_rga/core"
	"go_rga/device"
	"go_rga/op"
	"go_rga/session"
	"go_rga/surface"
	"go_rga/version"
)

func multiInfo() session.Info {
	return session.Info{
		DriverType: session.DriverMulti,
		Features:   session.Features{UserCloseFence: true},
		Core:       1,
		Priority:   2,
	}
}

func rgba(fd, w, h int) surface.Buffer {
	return surface.FromFD(fd, w, h, surface.FormatRGBA8888)
}

func mustCompile(t *testing.T, in Input) *Task {
	t.Helper()
	task, err := Compile(in, multiInfo())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return task
}

func TestCompile_Copy720p(t *testing.T) {
	task := mustCompile(t, Input{Src: rgba(3, 1280, 720), Dst: rgba(4, 1280, 720)})
	req := task.Request

	if req.RenderMode != device.RenderBitblt {
		t.Errorf("RenderMode = %d, want bitblt", req.RenderMode)
	}
	if req.PDMode != 0 || req.AlphaROPFlag != 0 || req.Feature.GlobalAlphaEn != 0 {
		t.Errorf("blend fields set on a plain copy: pd=%d flag=0x%x", req.PDMode, req.AlphaROPFlag)
	}
	if req.RotateMode != 0 || req.Sina != 0 || req.Cosa != 65536 {
		t.Errorf("rotate = %d sin=%d cos=%d, want 0/0/65536", req.RotateMode, req.Sina, req.Cosa)
	}
	if req.ScaleMode != 0 {
		t.Errorf("ScaleMode = 0x%x, want 0", req.ScaleMode)
	}
	if req.Src.YRGBAddr != 3 || req.Dst.YRGBAddr != 4 {
		t.Errorf("fds = %d/%d, want 3/4", req.Src.YRGBAddr, req.Dst.YRGBAddr)
	}
	if req.Dst.ActW != 1280 || req.Dst.ActH != 720 || req.Dst.VirW != 1280 {
		t.Errorf("dst geometry = %dx%d vir %d", req.Dst.ActW, req.Dst.ActH, req.Dst.VirW)
	}
	if req.Clip != (device.Clip{XMax: 1279, YMax: 719}) {
		t.Errorf("Clip = %+v", req.Clip)
	}
	wantMMU := uint32(0x21 | 1<<31 | 1<<8 | 1<<10)
	if req.MMUInfo.MMUEn != 1 || req.MMUInfo.MMUFlag != wantMMU {
		t.Errorf("MMU = %d/0x%x, want 1/0x%x", req.MMUInfo.MMUEn, req.MMUInfo.MMUFlag, wantMMU)
	}
	if req.Src.RdMode != uint16(surface.LayoutRaster) {
		t.Errorf("Src.RdMode = %d, want raster", req.Src.RdMode)
	}
	if req.Feature.UserCloseFence != 1 {
		t.Error("UserCloseFence not carried from session features")
	}
	if req.Core != 1 || req.Priority != 2 {
		t.Errorf("core/priority = %d/%d, want session defaults 1/2", req.Core, req.Priority)
	}
	if task.Async || task.LUTUpload != nil {
		t.Error("plain copy should be synchronous without LUT upload")
	}
}

func TestCompile_OptionsOverrideDefaults(t *testing.T) {
	task := mustCompile(t, Input{
		Src:          rgba(3, 64, 64),
		Dst:          rgba(4, 64, 64),
		Usage:        op.Async,
		Options:      op.Options{Core: 4, Priority: 7},
		AcquireFence: 9,
	})
	if task.Request.Core != 4 || task.Request.Priority != 7 {
		t.Errorf("core/priority = %d/%d, want 4/7", task.Request.Core, task.Request.Priority)
	}
	if task.Request.InFenceFD != 9 {
		t.Errorf("InFenceFD = %d, want 9", task.Request.InFenceFD)
	}
	if !task.Async {
		t.Error("Async usage should mark the task async")
	}
}

func TestCompile_RejectsNewerOptionsAPI(t *testing.T) {
	_, err := Compile(Input{
		Src:     rgba(3, 64, 64),
		Dst:     rgba(4, 64, 64),
		Options: op.Options{APIVersion: version.New(3, 0, 0)},
	}, multiInfo())
	if !core.IsKind(err, core.KindIllegalParameter) {
		t.Errorf("Compile() error = %v, want illegal parameter", err)
	}
}

func TestCompile_Downscale(t *testing.T) {
	task := mustCompile(t, Input{Src: rgba(3, 1280, 720), Dst: rgba(4, 640, 360)})
	req := task.Request
	if req.RotateMode != rotateStretch {
		t.Errorf("RotateMode = %d, want stretch", req.RotateMode)
	}
	if req.Interp.Horiz != uint8(op.InterpAverage) || req.Interp.Verti != uint8(op.InterpAverage) {
		t.Errorf("Interp = %+v, want average on both axes", req.Interp)
	}
	if req.ScaleMode != 0x33 {
		t.Errorf("ScaleMode = 0x%x, want 0x33", req.ScaleMode)
	}
}

func TestCompile_Rotate90SwapsDestination(t *testing.T) {
	task := mustCompile(t, Input{Src: rgba(3, 1280, 720), Dst: rgba(4, 720, 1280), Usage: op.Rot90})
	req := task.Request
	if req.Dst.ActW != 1280 || req.Dst.ActH != 720 {
		t.Errorf("Dst act = %dx%d, want 1280x720", req.Dst.ActW, req.Dst.ActH)
	}
	if req.RotateMode != rotateStretch || req.Sina != 65536 || req.Cosa != 0 {
		t.Errorf("rotate = %d sin=%d cos=%d", req.RotateMode, req.Sina, req.Cosa)
	}
	if req.ScaleMode != 0 {
		t.Errorf("ScaleMode = 0x%x, want 0 for an unscaled rotation", req.ScaleMode)
	}
}

func TestCompile_Interp(t *testing.T) {
	tests := []struct {
		name      string
		src, dst  surface.Buffer
		interp    *op.Interp
		want      core.Kind
		wantVerti op.InterpMode
	}{
		{"wide upscale falls back to linear", rgba(3, 2000, 500), rgba(4, 2000, 1000), nil,
			core.KindUnknown, op.InterpLinear},
		{"narrow upscale is bicubic", rgba(3, 1000, 500), rgba(4, 1000, 1000), nil,
			core.KindUnknown, op.InterpBicubic},
		{"wide bicubic upscale", rgba(3, 2000, 500), rgba(4, 2000, 1000), &op.Interp{Verti: op.InterpBicubic},
			core.KindNotSupported, 0},
		{"linear downscale with upscale", rgba(3, 1000, 500), rgba(4, 500, 1000), &op.Interp{Horiz: op.InterpLinear},
			core.KindNotSupported, 0},
		{"vertical linear downscale too wide", rgba(3, 8192, 2000), rgba(4, 4200, 1000), &op.Interp{Verti: op.InterpLinear},
			core.KindNotSupported, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Compile(Input{Src: tt.src, Dst: tt.dst, Options: op.Options{Interp: tt.interp}}, multiInfo())
			if got := core.KindOf(err); got != tt.want {
				t.Fatalf("Compile() = %v (%v), want %v", got, err, tt.want)
			}
			if err == nil && op.InterpMode(task.Request.Interp.Verti) != tt.wantVerti {
				t.Errorf("Interp.Verti = %d, want %v", task.Request.Interp.Verti, tt.wantVerti)
			}
		})
	}
}

func TestCompile_Blend(t *testing.T) {
	src := rgba(3, 64, 64)
	src.GlobalAlpha = 0x80
	dst := rgba(4, 64, 64)
	dst.GlobalAlpha = 0xff

	task := mustCompile(t, Input{Src: src, Dst: dst, Usage: op.BlendSrcOver | op.PreMul})
	req := task.Request
	if req.PDMode != 1 {
		t.Errorf("PDMode = %d, want 1", req.PDMode)
	}
	if want := uint16(1 | 1<<3 | 1<<4 | 1<<9); req.AlphaROPFlag != want {
		t.Errorf("AlphaROPFlag = 0x%x, want 0x%x", req.AlphaROPFlag, want)
	}
	if req.FGGlobalAlpha != 0x80 || req.BGGlobalAlpha != 0xff || req.AlphaGlobalValue != 0x80 {
		t.Errorf("global alpha = %x/%x/%x", req.FGGlobalAlpha, req.BGGlobalAlpha, req.AlphaGlobalValue)
	}
	if req.Feature.GlobalAlphaEn != 1 || req.AlphaROPMode != 1 {
		t.Errorf("GlobalAlphaEn = %d, AlphaROPMode = %d", req.Feature.GlobalAlphaEn, req.AlphaROPMode)
	}
}

func TestCompile_BlendOrdinals(t *testing.T) {
	for _, b := range blendCodes {
		task := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: rgba(4, 64, 64), Usage: b.usage})
		if uint32(task.Request.PDMode) != b.code {
			t.Errorf("%s: PDMode = %d, want %d", op.UsageString(b.usage), task.Request.PDMode, b.code)
		}
	}
}

func TestBlendWord_SingleMode(t *testing.T) {
	tests := []struct {
		u    op.Usage
		want uint32
	}{
		{op.BlendSrcOver, 0xff800001},
		{op.BlendDstOver | op.PreMul, 0xff801008},
		{op.BlendSrcOver | op.BlendDst, 0},
		{op.BlendSrc | op.BlendXor | op.PreMul, 0},
		{op.PreMul, 0},
	}
	for _, tt := range tests {
		if got := blendWord(tt.u, 0x80, 0xff); got != tt.want {
			t.Errorf("blendWord(%s) = 0x%x, want 0x%x", op.UsageString(tt.u), got, tt.want)
		}
	}
}

func TestCompile_LegacyBlend(t *testing.T) {
	tests := []struct {
		raw    uint32
		pd     uint8
		premul bool
		fg, bg uint8
	}{
		{0x800405, 1, true, 0x80, 0xff},
		{0x405, 1, true, 0, 0xff},
		{0x504, 8, true, 0xff, 0xff},
		{0x800105, 1, false, 0x80, 0xff},
		{0xff0105, 1, false, 0xff, 0xff},
		{0x501, 8, false, 0xff, 0xff},
		{0x100, 2, false, 0xff, 0xff},
		{0x40ff0003, 3, false, 0xff, 0x40},
	}
	for _, tt := range tests {
		// The plane alpha of the source never reaches legacy words.
		src := rgba(3, 64, 64)
		src.GlobalAlpha = 0x40
		task := mustCompile(t, Input{Src: src, Dst: rgba(4, 64, 64), LegacyBlend: tt.raw})
		req := task.Request
		if req.PDMode != tt.pd {
			t.Errorf("0x%x: PDMode = %d, want %d", tt.raw, req.PDMode, tt.pd)
		}
		if premul := req.AlphaROPFlag&(1<<9) != 0; premul != tt.premul {
			t.Errorf("0x%x: premul = %v, want %v", tt.raw, premul, tt.premul)
		}
		if req.FGGlobalAlpha != tt.fg || req.BGGlobalAlpha != tt.bg {
			t.Errorf("0x%x: alpha = %x/%x, want %x/%x", tt.raw, req.FGGlobalAlpha, req.BGGlobalAlpha, tt.fg, tt.bg)
		}
	}
}

func TestCompile_ColorKeyDefaultsBlend(t *testing.T) {
	task := mustCompile(t, Input{
		Src:     rgba(3, 64, 64),
		Dst:     rgba(4, 64, 64),
		Usage:   op.ColorKeyNormal,
		Options: op.Options{ColorKey: &op.ColorKeyRange{Min: 0x10, Max: 0x20}},
	})
	req := task.Request
	if req.PDMode != 1 || req.FGGlobalAlpha != 0xff || req.BGGlobalAlpha != 0xff {
		t.Errorf("default blend = pd %d alpha %x/%x, want src-over 0xff/0xff", req.PDMode, req.FGGlobalAlpha, req.BGGlobalAlpha)
	}
	if req.SrcTransMode != srcTransNormal {
		t.Errorf("SrcTransMode = 0x%x, want 0x%x", req.SrcTransMode, srcTransNormal)
	}
	if req.ColorKeyMin != 0x10 || req.ColorKeyMax != 0x20 {
		t.Errorf("colour key = [0x%x, 0x%x]", req.ColorKeyMin, req.ColorKeyMax)
	}
	if req.AlphaROPMode != 1|1<<4 {
		t.Errorf("AlphaROPMode = 0x%x, want 0x11", req.AlphaROPMode)
	}

	inv := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: rgba(4, 64, 64), Usage: op.ColorKeyInverted})
	if inv.Request.SrcTransMode != srcTransInverted {
		t.Errorf("inverted SrcTransMode = 0x%x", inv.Request.SrcTransMode)
	}
}

func TestCompile_ROPOverridesAlpha(t *testing.T) {
	task := mustCompile(t, Input{
		Src:     rgba(3, 64, 64),
		Dst:     rgba(4, 64, 64),
		Usage:   op.ROP | op.BlendSrcOver,
		Options: op.Options{ROPCode: op.ROPAnd},
	})
	req := task.Request
	if req.ROPCode != uint16(op.ROPAnd) || req.AlphaROPFlag != 0x3 || req.AlphaROPMode != 0x1 {
		t.Errorf("rop = 0x%x flag 0x%x mode 0x%x", req.ROPCode, req.AlphaROPFlag, req.AlphaROPMode)
	}
}

func TestCompile_UnsetFeaturesIgnored(t *testing.T) {
	opts := op.Options{
		ColorKey: &op.ColorKeyRange{Max: 0xff},
		NN:       &op.NN{ScaleR: 3},
		ROPCode:  op.ROPXor,
		OSD:      &op.OSDConfig{Mode: 1},
		PreIntr:  &op.PreIntrConfig{Flags: op.IntrWriteIntr},
		Mosaic:   op.Mosaic64,
	}
	plain := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: rgba(4, 64, 64)})
	withOpts := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: rgba(4, 64, 64), Options: opts})
	if plain.Request != withOpts.Request {
		t.Error("options without usage bits changed the request")
	}
}

func TestCompile_Handles(t *testing.T) {
	src := surface.FromHandle(11, 64, 64, surface.FormatRGBA8888)
	dst := surface.FromHandle(12, 64, 64, surface.FormatRGBA8888)
	task := mustCompile(t, Input{Src: src, Dst: dst})
	if task.Request.HandleFlag != 1 || task.Request.Src.YRGBAddr != 11 {
		t.Errorf("HandleFlag = %d, src addr = %d", task.Request.HandleFlag, task.Request.Src.YRGBAddr)
	}
	if task.Request.MMUInfo.MMUEn != 0 {
		t.Error("handles without HandleMMU should not enable the MMU")
	}

	_, err := Compile(Input{Src: src, Dst: rgba(4, 64, 64)}, multiInfo())
	if !core.IsKind(err, core.KindIllegalParameter) {
		t.Errorf("mixed handles error = %v, want illegal parameter", err)
	}
}

func TestCompile_PhysicalAddress(t *testing.T) {
	src := surface.FromPhys(0x10000, 64, 64, surface.FormatYCbCr420SP)
	task := mustCompile(t, Input{Src: src, Dst: rgba(4, 64, 64)})
	img := task.Request.Src
	if img.YRGBAddr != 0 || img.UVAddr != 0x10000 || img.VAddr != 0x10000+64*64 {
		t.Errorf("addresses = 0x%x/0x%x/0x%x", img.YRGBAddr, img.UVAddr, img.VAddr)
	}
	if task.Request.MMUInfo.MMUFlag&mmuFlagSrc != 0 {
		t.Error("physical src should not set the src MMU bit")
	}
}

func TestCompile_RGA1Legacy(t *testing.T) {
	info := session.Info{
		DriverType: session.DriverRGA1,
		HWVersions: []capability.HWTuple{{Major: 1, Minor: 3}},
	}
	src := surface.FromPhys(0x1000, 64, 64, surface.FormatRGBA8888)
	dst := surface.FromPhys(0x9000, 64, 64, surface.FormatRGBA8888)
	task, err := Compile(Input{Src: src, Dst: dst}, info)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	img := task.Request.Src
	if img.YRGBAddr != 0x1000 || img.UVAddr != 0x1000+64*64 || img.VAddr != 0x1000+64*64*5/4 {
		t.Errorf("addresses = 0x%x/0x%x/0x%x", img.YRGBAddr, img.UVAddr, img.VAddr)
	}
	if task.Request.MMUInfo.MMUEn != 1 {
		t.Error("first-generation RGA1 drivers run every channel through the MMU")
	}
	if task.Request.Feature.UserCloseFence != 0 {
		t.Error("UserCloseFence set without the session feature")
	}
}

func TestCompile_RGA1FDs(t *testing.T) {
	info := session.Info{
		DriverType: session.DriverRGA1,
		HWVersions: []capability.HWTuple{{Major: 1, Minor: 6}},
	}
	task, err := Compile(Input{Src: rgba(3, 64, 64), Dst: rgba(4, 64, 64)}, info)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := task.Request.LineDraw[2]; got != 3|4<<16 {
		t.Errorf("fds = 0x%x, want 0x%x", got, 3|4<<16)
	}
	if task.Request.Src.YRGBAddr != 0 {
		t.Error("RGA1 channels carry no fd in the address fields")
	}
}

func TestCompile_DitherTo565(t *testing.T) {
	dst := surface.FromFD(4, 64, 64, surface.FormatRGB565)
	task := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: dst})
	if task.Request.AlphaROPFlag&(1<<5) == 0 {
		t.Error("RGB to 565 should enable dithering")
	}
}

func TestCompile_MonoDither(t *testing.T) {
	tests := []struct {
		cs           surface.ColorSpace
		enable, mode uint8
	}{
		{surface.RGBToY4, 0, 0},
		{surface.RGBToY4Dither, 1, 0},
		{surface.RGBToY1Dither, 1, 1},
		{surface.ColorSpaceDefault, 1, 0},
	}
	for _, tt := range tests {
		dst := surface.FromFD(4, 64, 64, surface.FormatY4)
		dst.ColorSpace = tt.cs
		task := mustCompile(t, Input{Src: rgba(3, 64, 64), Dst: dst})
		d := task.Request.Dither
		if d.Enable != tt.enable || d.Mode != tt.mode {
			t.Errorf("%s: dither = %d/%d, want %d/%d", tt.cs, d.Enable, d.Mode, tt.enable, tt.mode)
		}
		if d.LUT0L != 0x3210 || d.LUT1H != 0xfedc {
			t.Errorf("%s: dither LUT = 0x%x..0x%x", tt.cs, d.LUT0L, d.LUT1H)
		}
	}
}

func TestCompile_Features(t *testing.T) {
	pat := surface.FromFD(5, 64, 64, surface.FormatRGBA5551)
	pat.AlphaBit = surface.AlphaBit{Alpha0: 0x10, Alpha1: 0xf0}
	task := mustCompile(t, Input{
		Src:   rgba(3, 64, 64),
		Dst:   rgba(4, 64, 64),
		Pat:   pat,
		Usage: op.Mosaic | op.NNQuantize | op.PreIntr | op.AlphaBitMap | op.OSD,
		Options: op.Options{
			Mosaic:  op.Mosaic32,
			NN:      &op.NN{ScaleR: 2, OffsetB: 5},
			PreIntr: &op.PreIntrConfig{Flags: op.IntrReadIntr | op.IntrReadHold, ReadThreshold: 16, WriteStart: 4},
			OSD: &op.OSDConfig{
				Block:  op.OSDBlock{Width: 32, BlockCount: 4, NormalColor: 0xffffff, InvertColor: 0x1},
				Invert: op.OSDInvert{Channel: op.OSDInvertYG, Threshold: 0x80},
			},
		},
	})
	req := task.Request
	if req.MosaicInfo != (device.MosaicInfo{Enable: 1, Mode: uint8(op.Mosaic32)}) {
		t.Errorf("MosaicInfo = %+v", req.MosaicInfo)
	}
	if req.NN.NNFlag != 1 || req.NN.ScaleR != 2 || req.NN.OffsetB != 5 {
		t.Errorf("NN = %+v", req.NN)
	}
	p := req.PreIntrInfo
	if p.Enable != 1 || p.ReadIntrEn != 1 || p.ReadHoldEn != 1 || p.ReadThreshold != 16 || p.WriteIntrEn != 0 || p.WriteStart != 0 {
		t.Errorf("PreIntrInfo = %+v", p)
	}
	if req.RGBA5551Alpha != (device.RGBA5551Alpha{Flags: 1, Alpha0: 0x10, Alpha1: 0xf0}) {
		t.Errorf("RGBA5551Alpha = %+v", req.RGBA5551Alpha)
	}
	o := req.OSDInfo
	if o.Enable != 1 || o.ModeCtrl.BlockFixWidth != 32 || o.ModeCtrl.BlockNum != 4 {
		t.Errorf("OSD ctrl = %+v", o.ModeCtrl)
	}
	if o.ModeCtrl.InvertEnable != 1<<2 || o.ModeCtrl.InvertThresh != 0x80 {
		t.Errorf("OSD invert = %d/%d", o.ModeCtrl.InvertEnable, o.ModeCtrl.InvertThresh)
	}
	if o.BPP2Info.Color0 != 0xffffff || o.BPP2Info.Color1 != 0x1 {
		t.Errorf("OSD colours = 0x%x/0x%x", o.BPP2Info.Color0, o.BPP2Info.Color1)
	}
	if req.BSFilterFlag != 0 {
		t.Error("a pattern without blend does not take part")
	}
}

func TestCompile_Fill(t *testing.T) {
	dst := surface.FromFD(5, 1280, 720, surface.FormatYCbCr420SP)
	task := mustCompile(t, Input{
		Dst:     dst,
		DstRect: surface.Rect{X: 100, Y: 100, Width: 200, Height: 100},
		Usage:   op.ColorFill,
		Options: op.Options{Color: 0xff00ff00},
	})
	req := task.Request
	if req.RenderMode != device.RenderColorFill || req.FGColor != 0xff00ff00 {
		t.Errorf("fill = mode %d colour 0x%x", req.RenderMode, req.FGColor)
	}
	if req.YUV2RGBMode != 2<<2 {
		t.Errorf("YUV2RGBMode = 0x%x, want 0x8", req.YUV2RGBMode)
	}
	if req.Clip != (device.Clip{XMax: 199, YMax: 99}) {
		t.Errorf("Clip = %+v", req.Clip)
	}
	if req.Dst.XOffset != 100 || req.Dst.ActW != 200 {
		t.Errorf("dst window = off %d act %d", req.Dst.XOffset, req.Dst.ActW)
	}
	if req.MMUInfo.MMUFlag&(mmuFlagSrc|mmuFlagDst) != mmuFlagSrc|mmuFlagDst {
		t.Errorf("MMUFlag = 0x%x, want src and dst bits from dst", req.MMUInfo.MMUFlag)
	}
	if req.Src != (device.ImageInfo{}) {
		t.Error("fill must not touch the src channel")
	}
}

func TestCompile_Palette(t *testing.T) {
	src := surface.FromFD(3, 64, 64, surface.FormatBPP8)
	lut := surface.FromFD(5, 256, 2, surface.FormatRGBA8888)
	task := mustCompile(t, Input{Src: src, Dst: rgba(4, 64, 64), Pat: lut, Usage: op.ColorPalette})
	req := task.Request
	if req.RenderMode != device.RenderColorPalette || req.EndianMode != 1 || req.PaletteMode != 3 {
		t.Errorf("palette = mode %d endian %d palette %d", req.RenderMode, req.EndianMode, req.PaletteMode)
	}
	if req.MMUInfo.MMUFlag&mmuFlagPat != mmuFlagPat {
		t.Errorf("MMUFlag = 0x%x, want lut bits", req.MMUInfo.MMUFlag)
	}
	up := task.LUTUpload
	if up == nil {
		t.Fatal("LUTUpload = nil, want a table upload")
	}
	if up.RenderMode != device.RenderUpdatePaletteTable || up.Fading[1] != 0xff {
		t.Errorf("upload = mode %d fading %d", up.RenderMode, up.Fading[1])
	}
	if up.Pat.YRGBAddr != 5 {
		t.Errorf("upload lut fd = %d, want 5", up.Pat.YRGBAddr)
	}

	noLUT := mustCompile(t, Input{Src: src, Dst: rgba(4, 64, 64), Usage: op.ColorPalette})
	if noLUT.LUTUpload != nil {
		t.Error("LUTUpload set without a lut buffer")
	}
}
