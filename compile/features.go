package compile

import (
	"go_rga/device"
	"go_rga/op"
	"go_rga/surface"
)

func applyMosaic(req *device.Request, mode op.MosaicMode) {
	req.MosaicInfo = device.MosaicInfo{Enable: 1, Mode: uint8(mode)}
}

// osdInvertEnable maps the inverted channel to the invert_enable bits,
// which name the channels left alone.
var osdInvertEnable = map[op.OSDInvertChannel]uint8{
	op.OSDInvertNone:  1<<1 | 1<<2,
	op.OSDInvertYG:    1 << 2,
	op.OSDInvertCRB:   1 << 1,
	op.OSDInvertAlpha: 1<<0 | 1<<1 | 1<<2,
	op.OSDInvertColor: 0,
	op.OSDInvertBoth:  1 << 0,
}

// applyOSD packs the on-screen-display configuration. A 2bpp pattern takes
// its colours from the BPP2 block; other patterns use the block colours.
func applyOSD(req *device.Request, cfg op.OSDConfig, pat surface.Buffer) {
	info := device.OSDInfo{Enable: 1}
	ctrl := &info.ModeCtrl

	ctrl.Mode = uint8(cfg.Mode)
	ctrl.WidthMode = uint8(cfg.Block.WidthMode)
	switch cfg.Block.WidthMode {
	case op.OSDBlockNormal:
		ctrl.BlockFixWidth = uint16(cfg.Block.Width)
	case op.OSDBlockDifferent:
		ctrl.UnfixIndex = uint8(cfg.Block.WidthIndex)
	}
	ctrl.BlockNum = uint8(cfg.Block.BlockCount)
	ctrl.DefaultColorSel = uint8(cfg.Block.BackgroundConfig)
	ctrl.DirectionMode = uint8(cfg.Block.Direction)
	ctrl.ColorMode = uint8(cfg.Block.ColorMode)

	if pat.Format == surface.FormatRGBA2BPP {
		info.BPP2Info = device.OSDBPP2{
			ACSwap:     uint8(cfg.BPP2.ACSwap),
			EndianSwap: uint8(cfg.BPP2.EndianSwap),
			Color0:     cfg.BPP2.Color0,
			Color1:     cfg.BPP2.Color1,
		}
	} else {
		info.BPP2Info.Color0 = cfg.Block.NormalColor
		info.BPP2Info.Color1 = cfg.Block.InvertColor
	}

	ctrl.InvertEnable = osdInvertEnable[cfg.Invert.Channel]
	ctrl.InvertFlagsMode = uint8(cfg.Invert.FlagsMode)
	ctrl.FlagsIndex = uint16(cfg.Invert.FlagsIndex)
	info.LastFlags = cfg.Invert.InvertFlags
	info.CurFlags = cfg.Invert.CurrentFlags

	ctrl.InvertMode = uint8(cfg.Invert.Mode)
	if cfg.Invert.Mode == op.OSDInvertUseFactor {
		f := cfg.Invert.Factor
		info.CalFactor = device.OSDFactor{
			AlphaMax: f.AlphaMax,
			AlphaMin: f.AlphaMin,
			CRBMax:   f.CRBMax,
			CRBMin:   f.CRBMin,
			YGMax:    f.YGMax,
			YGMin:    f.YGMin,
		}
	}
	ctrl.InvertThresh = uint8(cfg.Invert.Threshold)

	req.OSDInfo = info
}

func applyNN(req *device.Request, nn op.NN) {
	req.NN = device.NNInfo{
		NNFlag:  1,
		ScaleR:  uint16(nn.ScaleR),
		ScaleG:  uint16(nn.ScaleG),
		ScaleB:  uint16(nn.ScaleB),
		OffsetR: uint16(nn.OffsetR),
		OffsetG: uint16(nn.OffsetG),
		OffsetB: uint16(nn.OffsetB),
	}
}

// applyPreIntr asks for interrupts ahead of completion. Thresholds are only
// written for the interrupts that are enabled.
func applyPreIntr(req *device.Request, cfg op.PreIntrConfig) {
	info := device.PreIntrInfo{Enable: 1}
	if cfg.Flags&op.IntrReadIntr != 0 {
		info.ReadIntrEn = 1
		if cfg.Flags&op.IntrReadHold != 0 {
			info.ReadHoldEn = 1
		}
		info.ReadThreshold = uint32(cfg.ReadThreshold)
	}
	if cfg.Flags&op.IntrWriteIntr != 0 {
		info.WriteIntrEn = 1
		info.WriteStart = uint32(cfg.WriteStart)
		info.WriteStep = uint32(cfg.WriteStep)
	}
	req.PreIntrInfo = info
}

// applyAlphaBitMap maps the single alpha bit of a 5551 pattern onto two
// alpha values.
func applyAlphaBitMap(req *device.Request, pat surface.Buffer) {
	if !pat.Format.Is5551() {
		return
	}
	req.RGBA5551Alpha = device.RGBA5551Alpha{
		Flags:  1,
		Alpha0: pat.AlphaBit.Alpha0,
		Alpha1: pat.AlphaBit.Alpha1,
	}
}
