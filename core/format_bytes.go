package core

import "fmt"

// Binary byte units.
const (
	BytesPerKB int64 = 1 << (10 * (iota + 1))
	BytesPerMB
	BytesPerGB
	BytesPerTB
)

var byteUnits = []struct {
	size int64
	name string
}{
	{BytesPerTB, "TB"},
	{BytesPerGB, "GB"},
	{BytesPerMB, "MB"},
	{BytesPerKB, "KB"},
}

// FormatBytes renders a byte count with the largest binary unit that keeps
// it at or above one, e.g. "1.5 GB" or "512 bytes".
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + FormatBytes(-n)
	}
	for _, u := range byteUnits {
		if n >= u.size {
			return fmt.Sprintf("%.1f %s", float64(n)/float64(u.size), u.name)
		}
	}
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}
