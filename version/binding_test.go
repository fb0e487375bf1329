package version

import (
	"testing"

	"go_rga/core"
)

func TestResolveBindingIndex(t *testing.T) {
	table := Table{
		{New(1, 0, 0), New(0, 0, 0)},
		{New(1, 6, 0), New(1, 1, 5)},
		{New(1, 7, 2), New(1, 2, 0)},
	}
	tests := []struct {
		v    Version
		want int
	}{
		{New(1, 0, 0), 0},
		{New(1, 5, 99), 0},
		{New(1, 6, 0), 1},
		{New(1, 7, 1), 1},
		{New(1, 7, 2), 2},
		{New(9, 0, 0), 2},
	}
	for _, tt := range tests {
		got, err := ResolveBindingIndex(tt.v, table)
		if err != nil {
			t.Errorf("ResolveBindingIndex(%s) error = %v", tt.v, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveBindingIndex(%s) = %d, want %d", tt.v, got, tt.want)
		}
		// The interval must contain v.
		if Compare(tt.v, table[got].Current) < 0 || (got+1 < len(table) && Compare(tt.v, table[got+1].Current) >= 0) {
			t.Errorf("ResolveBindingIndex(%s) = %d, interval does not contain version", tt.v, got)
		}
	}

	idx, err := ResolveBindingIndex(New(0, 9, 9), table)
	if idx != NotFound || !core.IsKind(err, core.KindVersion) {
		t.Errorf("ResolveBindingIndex(0.9.9) = %d, %v, want NotFound, version error", idx, err)
	}
}

func TestCheckMinimumRange(t *testing.T) {
	tests := []struct {
		min   Version
		index int
		want  Range
	}{
		{New(1, 1, 4), 2, Below},
		{New(1, 1, 5), 2, Within},
		{New(1, 1, 9), 2, Within},
		{New(1, 2, 0), 2, Above},
		{New(1, 2, 4), 4, Within},
		{New(9, 0, 0), 4, Within},
		{New(1, 2, 3), 4, Below},
	}
	for _, tt := range tests {
		if got := CheckMinimumRange(tt.min, DriverTable, tt.index); got != tt.want {
			t.Errorf("CheckMinimumRange(%s, %d) = %v, want %v", tt.min, tt.index, got, tt.want)
		}
	}
}

func TestCheckDriver(t *testing.T) {
	tests := []struct {
		name      string
		library   Version
		driver    Version
		wantRange Range
		wantLeast Version
		wantErr   bool
	}{
		{"current driver", LibraryVersion, New(1, 3, 0), Within, Version{}, false},
		{"old driver is advisory", LibraryVersion, New(1, 2, 0), Below, New(1, 2, 4), false},
		{"legacy zero driver is advisory", LibraryVersion, Version{}, Below, New(1, 2, 4), false},
		{"library too old for driver", New(1, 6, 5), New(1, 2, 4), Above, New(1, 7, 3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CheckDriver(tt.library, tt.driver)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckDriver() error = %v, wantErr %v", err, tt.wantErr)
			}
			if res.Range != tt.wantRange {
				t.Errorf("CheckDriver() range = %v, want %v", res.Range, tt.wantRange)
			}
			if res.Least != tt.wantLeast {
				t.Errorf("CheckDriver() least = %s, want %s", res.Least, tt.wantLeast)
			}
			if err != nil && !core.IsKind(err, core.KindVersion) {
				t.Errorf("CheckDriver() kind = %v, want %v", core.KindOf(err), core.KindVersion)
			}
		})
	}
}

func TestCheckHeader(t *testing.T) {
	if _, err := CheckHeader(LibraryVersion, HeaderVersion); err != nil {
		t.Errorf("CheckHeader(own header) error = %v", err)
	}
	res, err := CheckHeader(LibraryVersion, New(1, 3, 0))
	if err == nil || res.Range != Below {
		t.Errorf("CheckHeader(1.3.0) = %v, %v, want Below with error", res.Range, err)
	}
	res, err = CheckHeader(New(1, 3, 0), New(1, 4, 0))
	if err == nil || res.Range != Above || res.Least != New(1, 4, 0) {
		t.Errorf("CheckHeader(lib 1.3.0, header 1.4.0) = %+v, %v, want Above least 1.4.0", res, err)
	}
}
