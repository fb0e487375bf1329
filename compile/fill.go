package compile

import (
	"go_rga/device"
	"go_rga/op"
	"go_rga/session"
	"go_rga/surface"
)

// compileFill paints the destination rect with Options.Color. Only the
// destination channel is used.
func compileFill(in Input, info session.Info) (*Task, error) {
	dst, err := resolveChannel("dst", in.Dst, in.DstRect)
	if err != nil {
		return nil, err
	}

	task := &Task{Async: in.Usage.Has(op.Async)}
	req := &task.Request
	if dst.addr.Mode == surface.AddrHandle {
		req.HandleFlag = 1
	}

	r := dst.region
	req.Dst = imageInfo(dst, r.Width, r.Height, info)
	req.Clip = device.Clip{
		XMax: uint16(r.Width - 1),
		YMax: uint16(r.Height - 1),
	}
	setFDs(req, info, channel{}, dst)

	if in.Dst.Format.IsYUV() {
		req.YUV2RGBMode |= 2 << 2
	}
	if in.Dst.ColorSpace > 0 {
		req.YUV2RGBMode = uint8(in.Dst.ColorSpace)
	}

	req.RenderMode = device.RenderColorFill
	req.ColorFillMode = 0
	req.FGColor = in.Options.Color

	dstMMU := dst.addr.MMU || legacyMMU(info)
	applyMMU(req, dstMMU, dstMMU)

	finish(req, in, info)
	return task, nil
}

// compilePalette expands an indexed source through the palette in the
// pattern channel. A pattern with memory is loaded into the palette table
// by a synchronous upload ahead of the expansion.
func compilePalette(in Input, info session.Info) (*Task, error) {
	src, err := resolveChannel("src", in.Src, in.SrcRect)
	if err != nil {
		return nil, err
	}
	dst, err := resolveChannel("dst", in.Dst, in.DstRect)
	if err != nil {
		return nil, err
	}
	chans := []channel{src, dst}
	var lut channel
	hasLUT := in.Pat.HasMemory()
	if hasLUT {
		if lut, err = resolveChannel("pat", in.Pat, in.PatRect); err != nil {
			return nil, err
		}
		chans = append(chans, lut)
	}

	task := &Task{Async: in.Usage.Has(op.Async)}
	req := &task.Request
	if req.HandleFlag, err = handleFlag(chans...); err != nil {
		return nil, err
	}

	req.Src = imageInfo(src, src.region.Width, src.region.Height, info)
	req.Dst = imageInfo(dst, dst.region.Width, dst.region.Height, info)
	if hasLUT {
		req.Pat = imageInfo(lut, lut.region.Width, lut.region.Height, info)
	}
	req.Clip = device.Clip{
		XMax: uint16(dst.region.WStride - 1),
		YMax: uint16(dst.region.HStride - 1),
	}
	setFDs(req, info, src, dst)

	srcMMU, dstMMU, lutMMU := src.addr.MMU, dst.addr.MMU, lut.addr.MMU
	if legacyMMU(info) {
		srcMMU, dstMMU, lutMMU = true, true, hasLUT
	}
	if srcMMU || dstMMU || lutMMU {
		req.MMUInfo.MMUEn = 1
		req.MMUInfo.MMUFlag = mmuFlagBase | mmuFlagEnable
		if srcMMU {
			req.MMUInfo.MMUFlag |= mmuFlagSrc
		}
		if dstMMU {
			req.MMUInfo.MMUFlag |= mmuFlagDst
		}
		if lutMMU {
			req.MMUInfo.MMUFlag |= mmuFlagPat
		}
	}

	if mode, ok := in.Src.Format.PaletteMode(); ok {
		req.PaletteMode = uint8(mode)
	}

	finish(req, in, info)

	if hasLUT {
		upload := *req
		upload.Fading[1] = 0xff
		upload.RenderMode = device.RenderUpdatePaletteTable
		task.LUTUpload = &upload
	}

	req.RenderMode = device.RenderColorPalette
	req.EndianMode = 1
	return task, nil
}
