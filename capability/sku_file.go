package capability

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"go_rga/core"
)

// skuFile is the on-disk form of extra SKUs:
//
//	skus:
//	  - name: RK3588S
//	    version: "3.0.76831"
//	    base: RGA_3
//	    extra_features: [ROP]
type skuFile struct {
	SKUs []skuEntry `yaml:"skus"`
}

type skuEntry struct {
	Name          string   `yaml:"name"`
	Version       string   `yaml:"version"`
	Base          string   `yaml:"base"`
	ExtraInput    []string `yaml:"extra_input"`
	ExtraOutput   []string `yaml:"extra_output"`
	ExtraFeatures []string `yaml:"extra_features"`
}

// LoadSKUFile reads extra SKUs from a YAML file. The version is
// "major.minor.revision" with the revision in hex, as the driver prints it.
func LoadSKUFile(path string) ([]SKU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ErrInvalidConfig("RGA_SKU_FILE", err.Error())
	}
	return ParseSKUs(data)
}

// ParseSKUs decodes the YAML SKU document.
func ParseSKUs(data []byte) ([]SKU, error) {
	var f skuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, core.ErrInvalidConfig("RGA_SKU_FILE", err.Error())
	}

	skus := make([]SKU, 0, len(f.SKUs))
	for i, e := range f.SKUs {
		sku, err := e.toSKU()
		if err != nil {
			return nil, core.ErrInvalidConfig("RGA_SKU_FILE", fmt.Sprintf("entry %d (%s): %v", i, e.Name, err))
		}
		skus = append(skus, sku)
	}
	return skus, nil
}

func (e skuEntry) toSKU() (SKU, error) {
	parts := strings.Split(strings.TrimSpace(e.Version), ".")
	if len(parts) != 3 {
		return SKU{}, fmt.Errorf("version %q is not major.minor.revision", e.Version)
	}
	var nums [3]uint32
	for i, p := range parts {
		base := 10
		if i > 0 {
			base = 16
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(p, "0x"), base, 32)
		if err != nil {
			return SKU{}, fmt.Errorf("version %q: %v", e.Version, err)
		}
		nums[i] = uint32(n)
	}

	base, ok := hwVersionByName(e.Base)
	if !ok {
		return SKU{}, fmt.Errorf("unknown base revision %q", e.Base)
	}

	sku := SKU{Major: nums[0], Minor: nums[1], Revision: nums[2], Base: base, Name: e.Name}
	for _, n := range e.ExtraInput {
		g, ok := formatGroupByName(n)
		if !ok {
			return SKU{}, fmt.Errorf("unknown format group %q", n)
		}
		sku.ExtraInput |= g
	}
	for _, n := range e.ExtraOutput {
		g, ok := formatGroupByName(n)
		if !ok {
			return SKU{}, fmt.Errorf("unknown format group %q", n)
		}
		sku.ExtraOutput |= g
	}
	for _, n := range e.ExtraFeatures {
		f, ok := featureByName(n)
		if !ok {
			return SKU{}, fmt.Errorf("unknown feature %q", n)
		}
		sku.ExtraFeatures |= f
	}
	return sku, nil
}

func hwVersionByName(name string) (HWVersion, bool) {
	for _, n := range hwVersionNames {
		if strings.EqualFold(n.name, name) {
			return n.v, true
		}
	}
	return 0, false
}

// Format groups are named in files by their constant suffix, e.g. YUV420SP8.
var formatGroupKeys = map[string]FormatGroup{
	"RGB":        FormatRGB,
	"ARGB16":     FormatARGB16,
	"RGBA16":     FormatRGBA16,
	"BPP":        FormatBPP,
	"YUV420SP8":  FormatYUV420SP8,
	"YUV420SP10": FormatYUV420SP10,
	"YUV420P8":   FormatYUV420P8,
	"YUV420P10":  FormatYUV420P10,
	"YUV422SP8":  FormatYUV422SP8,
	"YUV422SP10": FormatYUV422SP10,
	"YUV422P8":   FormatYUV422P8,
	"YUV422P10":  FormatYUV422P10,
	"YUYV420":    FormatYUYV420,
	"YUYV422":    FormatYUYV422,
	"YUV400":     FormatYUV400,
	"Y4":         FormatY4,
	"RGBA2BPP":   FormatRGBA2BPP,
	"ALPHA8":     FormatAlpha8,
	"YUV444SP8":  FormatYUV444SP8,
	"Y8":         FormatY8,
}

func formatGroupByName(name string) (FormatGroup, bool) {
	g, ok := formatGroupKeys[strings.ToUpper(strings.TrimSpace(name))]
	return g, ok
}

func featureByName(name string) (Feature, bool) {
	for _, n := range featureNames {
		if strings.EqualFold(n.name, strings.TrimSpace(name)) {
			return n.f, true
		}
	}
	return 0, false
}
