// Package version compares librga, driver and header version triples and
// resolves them against the compatibility binding tables.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"go_rga/core"
)

// Version is a (major, minor, revision) triple.
type Version struct {
	Major    uint32
	Minor    uint32
	Revision uint32
}

// LibraryVersion is the version this library reports to the binding checks.
var LibraryVersion = Version{1, 10, 1}

// HeaderVersion is the API header version compiled into this module.
var HeaderVersion = LibraryVersion

func New(major, minor, revision uint32) Version {
	return Version{Major: major, Minor: minor, Revision: revision}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// IsZero reports whether v is 0.0.0, which legacy drivers report.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare orders versions lexicographically on major, minor, revision.
// It returns -1, 0 or 1.
func Compare(a, b Version) int {
	switch {
	case a.Major != b.Major:
		return cmp(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmp(a.Minor, b.Minor)
	default:
		return cmp(a.Revision, b.Revision)
	}
}

func cmp(a, b uint32) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// AtLeast reports whether v >= min.
func (v Version) AtLeast(min Version) bool {
	return Compare(v, min) >= 0
}

// Parse reads a decimal "major.minor.revision" string.
func Parse(s string) (Version, error) {
	return parse(s, 10, 3)
}

// ParseHex reads the hex triple legacy drivers print, e.g. "3.02" or
// "2.00.0". Missing trailing components are zero; major is required.
func ParseHex(s string) (Version, error) {
	return parse(s, 16, 1)
}

func parse(s string, base, required int) (Version, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < required || s == "" {
		return Version{}, core.ErrVersion("malformed version string %q", s)
	}

	var fields [3]uint32
	for i, p := range parts {
		// Trailing junk after the revision is ignored, as sscanf would.
		p = leadingDigits(p, base)
		if p == "" {
			if i < required {
				return Version{}, core.ErrVersion("malformed version string %q", s)
			}
			break
		}
		n, err := strconv.ParseUint(p, base, 32)
		if err != nil {
			return Version{}, core.ErrVersion("malformed version string %q", s)
		}
		fields[i] = uint32(n)
	}
	return Version{fields[0], fields[1], fields[2]}, nil
}

func leadingDigits(s string, base int) string {
	for i, r := range s {
		if !isDigit(r, base) {
			return s[:i]
		}
	}
	return s
}

func isDigit(r rune, base int) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case base == 16 && (r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'):
		return true
	}
	return false
}
