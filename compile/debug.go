package compile

import (
	"fmt"

	"go.uber.org/zap"

	"go_rga/device"
	"go_rga/op"
)

// Fields summarises a compiled request for debug logging.
func Fields(req *device.Request) []zap.Field {
	return []zap.Field{
		zap.Uint8("render_mode", req.RenderMode),
		zap.String("src", imageString(req.Src)),
		zap.String("dst", imageString(req.Dst)),
		zap.String("pat", imageString(req.Pat)),
		zap.String("rotate", op.UsageString(DecodeRotation(req.RotateMode, req.Sina, req.Cosa))),
		zap.String("scale_mode", fmt.Sprintf("0x%02x", req.ScaleMode)),
		zap.String("alpha_rop_flag", fmt.Sprintf("0x%x", req.AlphaROPFlag)),
		zap.Uint8("pd_mode", req.PDMode),
		zap.String("yuv2rgb_mode", fmt.Sprintf("0x%x", req.YUV2RGBMode)),
		zap.Bool("full_csc", req.FullCSC.Flag != 0),
		zap.String("mmu_flag", fmt.Sprintf("0x%x", req.MMUInfo.MMUFlag)),
		zap.Uint8("handle_flag", req.HandleFlag),
		zap.Int32("in_fence", req.InFenceFD),
		zap.Uint8("core", req.Core),
		zap.Uint8("priority", req.Priority),
	}
}

func imageString(img device.ImageInfo) string {
	if img.ActW == 0 && img.ActH == 0 {
		return "none"
	}
	return fmt.Sprintf("yrgb=0x%x uv=0x%x v=0x%x fmt=0x%x act=[%d,%d] off=[%d,%d] vir=[%d,%d] rd=%d",
		img.YRGBAddr, img.UVAddr, img.VAddr, img.Format, img.ActW, img.ActH,
		img.XOffset, img.YOffset, img.VirW, img.VirH, img.RdMode)
}
