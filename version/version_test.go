package version

import (
	"testing"

	"go_rga/core"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{New(1, 2, 3), New(1, 2, 3), 0},
		{New(2, 0, 0), New(1, 9, 9), 1},
		{New(1, 2, 0), New(1, 10, 0), -1},
		{New(1, 2, 4), New(1, 2, 3), 1},
		{New(0, 0, 0), New(0, 0, 1), -1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	vs := []Version{
		New(0, 0, 0), New(0, 0, 1), New(0, 1, 0), New(1, 0, 0),
		New(1, 0, 3), New(1, 6, 0), New(1, 7, 2), New(1, 7, 3), New(2, 0, 0),
	}
	for _, a := range vs {
		if Compare(a, a) != 0 {
			t.Errorf("Compare(%s, %s) != 0", a, a)
		}
		for _, b := range vs {
			if Compare(a, b) != -Compare(b, a) {
				t.Errorf("Compare not antisymmetric for %s, %s", a, b)
			}
			for _, c := range vs {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Errorf("Compare not transitive for %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		hex     bool
		want    Version
		wantErr bool
	}{
		{in: "1.10.1", want: New(1, 10, 1)},
		{in: " 1.3.0\x00\x00", want: New(1, 3, 0)},
		{in: "1.3", wantErr: true},
		{in: "a.b.c", wantErr: true},
		{in: "", wantErr: true},
		{in: "3.02", hex: true, want: New(3, 2, 0)},
		{in: "2.00", hex: true, want: New(2, 0, 0)},
		{in: "3.2.63318", hex: true, want: New(3, 2, 0x63318)},
		{in: "1.6", hex: true, want: New(1, 6, 0)},
		{in: ".1", hex: true, wantErr: true},
	}
	for _, tt := range tests {
		var got Version
		var err error
		if tt.hex {
			got, err = ParseHex(tt.in)
		} else {
			got, err = Parse(tt.in)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !core.IsKind(err, core.KindVersion) {
				t.Errorf("parse(%q) kind = %v, want %v", tt.in, core.KindOf(err), core.KindVersion)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestVersion_String(t *testing.T) {
	if got := New(1, 7, 3).String(); got != "1.7.3" {
		t.Errorf("String() = %q, want %q", got, "1.7.3")
	}
}
