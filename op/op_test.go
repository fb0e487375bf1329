package op

import (
	"testing"

	"go_rga/core"
	"go_rga/surface"
	"go_rga/version"
)

func TestUsage_String(t *testing.T) {
	tests := []struct {
		u    Usage
		want string
	}{
		{0, "none"},
		{Rot90, "rot-90"},
		{Rot180 | FlipH | Sync, "rot-180|flip-h|sync"},
		{Gauss, "gauss"},
	}
	for _, tt := range tests {
		if got := UsageString(tt.u); got != tt.want {
			t.Errorf("UsageString(0x%x) = %q, want %q", uint32(tt.u), got, tt.want)
		}
	}
}

func TestUsage_WireValues(t *testing.T) {
	tests := []struct {
		u    Usage
		want uint32
	}{
		{BlendSrcOver, 1 << 6},
		{ColorKeyInverted, 1 << 18},
		{ColorFill, 1 << 21},
		{Async, 1 << 26},
		{Gauss, 1 << 31},
		{BlendMask, 0x1ffc0},
	}
	for _, tt := range tests {
		if uint32(tt.u) != tt.want {
			t.Errorf("usage 0x%x, want 0x%x", uint32(tt.u), tt.want)
		}
	}
}

func TestUsage_HasAny(t *testing.T) {
	u := Rot90 | FlipV
	if !u.Has(Rot90) || u.Has(Rot90|Rot180) {
		t.Error("Has() mismatch")
	}
	if !u.Any(FlipMask) || u.Any(BlendMask) {
		t.Error("Any() mismatch")
	}
}

func TestInterp_ScaleMode(t *testing.T) {
	i := Interp{Horiz: InterpBicubic, Verti: InterpLinear}
	if got := i.ScaleMode(); got != 0x12 {
		t.Errorf("ScaleMode() = 0x%x, want 0x12", got)
	}
	if got := InterpBoth(InterpAverage).ScaleMode(); got != 0x33 {
		t.Errorf("InterpBoth(average).ScaleMode() = 0x%x, want 0x33", got)
	}
}

func TestOptions_Effective(t *testing.T) {
	full := Options{
		Color:    0xff00ff00,
		ColorKey: &ColorKeyRange{Min: 1, Max: 2},
		Mosaic:   Mosaic32,
		OSD:      &OSDConfig{Mode: 1},
		Interp:   InterpBoth(InterpLinear),
		Priority: 3,
	}

	got, err := full.Effective()
	if err != nil || got.OSD == nil || got.Mosaic != Mosaic32 {
		t.Errorf("Effective() current = %+v, %v", got, err)
	}

	legacy := full
	legacy.APIVersion = version.New(1, 7, 2)
	got, err = legacy.Effective()
	if err != nil {
		t.Fatalf("Effective() legacy error = %v", err)
	}
	if got.OSD != nil || got.Interp != nil || got.Mosaic != 0 {
		t.Errorf("Effective() legacy kept new fields: %+v", got)
	}
	if got.Color != full.Color || got.ColorKey == nil || got.Priority != 3 {
		t.Errorf("Effective() legacy dropped old fields: %+v", got)
	}

	future := full
	future.APIVersion = version.New(2, 0, 1)
	if _, err := future.Effective(); !core.IsKind(err, core.KindIllegalParameter) {
		t.Errorf("Effective() future error = %v, want illegal parameter", err)
	}
}

func TestOptions_Implied(t *testing.T) {
	o := Options{Gauss: &GaussConfig{KSizeX: 3, KSizeY: 3}, ROPCode: ROPXor}
	if got := o.Implied(); got != Gauss|ROP {
		t.Errorf("Implied() = %v, want gauss|rop", got)
	}
	if got := (Options{}).Implied(); got != 0 {
		t.Errorf("Implied() = %v, want none", got)
	}
}

func TestDebugStrings(t *testing.T) {
	checks := []struct {
		got, want string
	}{
		{BlendString(BlendDstAtop | PreMul), "dst-atop"},
		{BlendString(0), "unknown"},
		{RotateString(Rot270 | FlipH), "270"},
		{FlipString(FlipHV), "horiz & verti"},
		{MosaicString(Mosaic128), "mosaic 128x128"},
		{ROPString(ROPNotXor), "not-xor"},
		{ColorKeyString(ColorKeyInverted), "inverted"},
		{ColorSpaceString(surface.RGBFull), "rgb_full"},
		{LayoutString(surface.LayoutAFBC16x16), "afbc16x16"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
