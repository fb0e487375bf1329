package capability

import (
	"fmt"
	"strings"
	"sync"

	"go_rga/core"
)

// HWTuple is one raw hardware version as reported by the driver. Str is
// the driver's textual form, used by the prefix fallback.
type HWTuple struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Str      string
}

func (t HWTuple) String() string {
	if t.Str != "" {
		return t.Str
	}
	return fmt.Sprintf("%d.%d.%x", t.Major, t.Minor, t.Revision)
}

// SKU maps an exact hardware triple to a base row plus extra bits.
type SKU struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Base     HWVersion

	ExtraInput    FormatGroup
	ExtraOutput   FormatGroup
	ExtraFeatures Feature

	Name string // SoC names, informational
}

// Row resolves the SKU to its effective capability row.
func (s SKU) Row() (Row, bool) {
	r, ok := BaseRow(s.Base)
	if !ok {
		return Row{}, false
	}
	r.InputFormats |= s.ExtraInput
	r.OutputFormats |= s.ExtraOutput
	r.Features |= s.ExtraFeatures
	return r, true
}

type skuKey struct{ major, minor, revision uint32 }

const (
	rv1106In  = FormatYUYV422 | FormatYUV400 | FormatRGBA2BPP
	rv1106Out = FormatYUV400 | FormatY4
	rv1106Ft  = FeatureQuantize | FeatureSrc1R2YCSC | FeatureDstFullCSC | FeatureMosaic | FeatureOSD | FeaturePreIntr
)

// DefaultSKUs is the built-in SKU list.
var DefaultSKUs = []SKU{
	{Major: 2, Minor: 0, Revision: 0, Base: RGA2, Name: "RK3288"},
	{Major: 3, Minor: 0, Revision: 0x16445, Base: RGA2, Name: "RK3288"},
	{Major: 3, Minor: 0, Revision: 0x22245, Base: RGA2Enhance, Name: "RK1108"},
	{Major: 3, Minor: 0, Revision: 0x76831, Base: RGA3, Name: "RK3588"},
	{Major: 3, Minor: 2, Revision: 0x18218, Base: RGA2Enhance, ExtraFeatures: FeatureROP, Name: "RK3399"},
	{
		Major: 3, Minor: 2, Revision: 0x56726, Base: RGA2Enhance, Name: "RV1109",
		ExtraInput:    FormatYUYV422 | FormatYUV400,
		ExtraOutput:   FormatYUV400 | FormatY4,
		ExtraFeatures: FeatureQuantize | FeatureSrc1R2YCSC | FeatureDstFullCSC,
	},
	{
		Major: 3, Minor: 2, Revision: 0x63318, Base: RGA2Enhance, Name: "RK3566/RK3568/RK3588",
		ExtraInput:    FormatYUYV422 | FormatYUV400,
		ExtraOutput:   FormatYUV400 | FormatY4,
		ExtraFeatures: FeatureQuantize | FeatureSrc1R2YCSC | FeatureDstFullCSC,
	},
	{Major: 3, Minor: 3, Revision: 0x87975, Base: RGA2Enhance, ExtraInput: rv1106In, ExtraOutput: rv1106Out, ExtraFeatures: rv1106Ft, Name: "RV1106"},
	{Major: 3, Minor: 6, Revision: 0x92812, Base: RGA2Enhance, ExtraInput: rv1106In, ExtraOutput: rv1106Out, ExtraFeatures: rv1106Ft, Name: "RK3562"},
	{Major: 3, Minor: 7, Revision: 0x93215, Base: RGA2Enhance, ExtraInput: rv1106In, ExtraOutput: rv1106Out, ExtraFeatures: rv1106Ft, Name: "RK3528"},
	{Major: 3, Minor: 0xe, Revision: 0x19357, Base: RGA2Pro, Name: "RK3576"},
	{Major: 3, Minor: 0xf, Revision: 0x23690, Base: RGA2Lite2, Name: "RV1103B"},
	{Major: 4, Minor: 0, Revision: 0x18632, Base: RGA2Lite0, Name: "RK3366/RK3368"},
	{Major: 4, Minor: 0, Revision: 0x23998, Base: RGA2Lite1, ExtraFeatures: FeatureSrc1R2YCSC, Name: "RK3228H"},
	{Major: 4, Minor: 0, Revision: 0x27615, Base: RGA2Lite1, ExtraFeatures: FeatureSrc1R2YCSC, Name: "RK1808"},
	{Major: 4, Minor: 0, Revision: 0x28610, Base: RGA2Lite1, ExtraFeatures: FeatureSrc1R2YCSC, Name: "RK3326"},
	{Major: 42, Minor: 0, Revision: 0x17760, Base: RGA2Lite1, Name: "RK3228"},
}

// prefixFallback is consulted on the first tuple's string when any tuple
// has no exact SKU.
var prefixFallback = []struct {
	prefix string
	base   HWVersion
}{
	{"1.3", RGA1},
	{"1.6", RGA1Plus},
	{"2.00", RGA2},
	{"3.00", RGA2},
	{"3.02", RGA2Enhance},
	{"4.00", RGA2Lite0},
}

// Table is a SKU lookup keyed by the exact hardware triple. It is safe for
// concurrent use; Extend may be called while Detect runs.
type Table struct {
	mu   sync.RWMutex
	skus map[skuKey]SKU
}

// NewTable builds a table from skus. Later entries replace earlier ones
// with the same triple.
func NewTable(skus []SKU) *Table {
	t := &Table{skus: make(map[skuKey]SKU, len(skus))}
	t.Extend(skus)
	return t
}

// DefaultTable returns a fresh table holding DefaultSKUs.
func DefaultTable() *Table {
	return NewTable(DefaultSKUs)
}

// Extend adds or replaces SKUs.
func (t *Table) Extend(skus []SKU) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range skus {
		t.skus[skuKey{s.Major, s.Minor, s.Revision}] = s
	}
}

// Lookup returns the SKU registered for an exact triple.
func (t *Table) Lookup(major, minor, revision uint32) (SKU, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.skus[skuKey{major, minor, revision}]
	return s, ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.skus)
}

// Detect resolves reported tuples to a merged row. Every tuple must match
// an exact SKU; otherwise the whole report falls back to the prefix of the
// first tuple's string, and when that fails too the hardware is
// unsupported.
func (t *Table) Detect(tuples []HWTuple) (Row, error) {
	if len(tuples) == 0 {
		return Row{}, core.ErrUnsupportedHardware("none reported")
	}

	var merged Row
	for _, tup := range tuples {
		sku, ok := t.Lookup(tup.Major, tup.Minor, tup.Revision)
		if !ok {
			return fallback(tuples[0])
		}
		row, ok := sku.Row()
		if !ok {
			return fallback(tuples[0])
		}
		merged = Merge(merged, row)
	}
	return merged, nil
}

func fallback(first HWTuple) (Row, error) {
	for _, f := range prefixFallback {
		if strings.HasPrefix(first.Str, f.prefix) {
			return Rows[f.base], nil
		}
	}
	return Row{}, core.ErrUnsupportedHardware(first.String())
}

// Detect runs DefaultTable().Detect.
func Detect(tuples []HWTuple) (Row, error) {
	return DefaultTable().Detect(tuples)
}
