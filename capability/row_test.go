package capability

import (
	"strings"
	"testing"
)

func allRows() []Row {
	rows := make([]Row, 0, len(Rows))
	for _, r := range Rows {
		rows = append(rows, r)
	}
	return rows
}

func TestMerge_Idempotent(t *testing.T) {
	for v, r := range Rows {
		if got := Merge(r, r); !got.Equal(r) {
			t.Errorf("Merge(%s, %s) = %+v, want %+v", v, v, got, r)
		}
	}
}

func TestMerge_Monotonic(t *testing.T) {
	for _, a := range allRows() {
		for _, b := range allRows() {
			m := Merge(a, b)
			for _, in := range []Row{a, b} {
				if m.Version&in.Version != in.Version {
					t.Errorf("Merge dropped version bits of %s", in.Version)
				}
				if m.InputFormats&in.InputFormats != in.InputFormats ||
					m.OutputFormats&in.OutputFormats != in.OutputFormats {
					t.Errorf("Merge(%s, %s) dropped format bits", a.Version, b.Version)
				}
				if !m.Has(in.Features) {
					t.Errorf("Merge(%s, %s) dropped feature bits", a.Version, b.Version)
				}
				if m.InputMax.Width < in.InputMax.Width || m.InputMax.Height < in.InputMax.Height ||
					m.OutputMax.Width < in.OutputMax.Width || m.OutputMax.Height < in.OutputMax.Height {
					t.Errorf("Merge(%s, %s) lowered a resolution cap", a.Version, b.Version)
				}
				if m.ByteStride < in.ByteStride || m.ScaleLimit < in.ScaleLimit || m.Performance < in.Performance {
					t.Errorf("Merge(%s, %s) lowered a numeric cap", a.Version, b.Version)
				}
			}
		}
	}
}

func TestMerge_ZeroIsIdentity(t *testing.T) {
	r := Rows[RGA3]
	if got := Merge(Row{}, r); !got.Equal(r) {
		t.Errorf("Merge(zero, RGA3) = %+v, want %+v", got, r)
	}
}

func TestHWVersion_String(t *testing.T) {
	if got := (RGA2Enhance | RGA3).String(); got != "RGA_2_Enhance | RGA_3" {
		t.Errorf("String() = %q", got)
	}
	if got := HWVersion(0).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestRow_Describe(t *testing.T) {
	lines := Rows[RGA3].Describe()
	found := map[string]string{}
	for _, l := range lines {
		found[l[0]] = l[1]
	}
	if found["max input"] != "8176x8176" {
		t.Errorf("max input = %q, want 8176x8176", found["max input"])
	}
	if !strings.Contains(found["feature"], "FBC") {
		t.Errorf("feature = %q, want FBC listed", found["feature"])
	}
	if found["scale limit"] != "1/8 ~ 8" {
		t.Errorf("scale limit = %q", found["scale limit"])
	}
}

func TestRow_Families(t *testing.T) {
	if !Rows[RGA1Plus].IsRGA1() || Rows[RGA2].IsRGA1() {
		t.Error("IsRGA1() misclassifies rows")
	}
	if !Merge(Rows[RGA2Enhance], Rows[RGA3]).IsRGA3() {
		t.Error("IsRGA3() = false for merged RGA3 row")
	}
}
