package surface

import (
	"context"

	"go_rga/core"
)

// FormatLookup translates a platform pixel format code and modifier into
// the native format. It returns false when no native format matches.
type FormatLookup func(external, modifier uint32) (Format, bool)

// Metadata is what a platform buffer allocator reports for a buffer.
type Metadata struct {
	Width   int
	Height  int
	WStride int
	HStride int

	// ExternalFormat and Modifier are platform codes, translated with a
	// FormatLookup.
	ExternalFormat uint32
	Modifier       uint32

	FD   int
	Phys uint64
	Virt uint64
}

// MetadataQuery resolves a platform buffer handle into Metadata.
type MetadataQuery interface {
	Query(ctx context.Context, handle uintptr) (Metadata, error)
}

// Identity is a FormatLookup for callers that already hold native codes.
func Identity(external, _ uint32) (Format, bool) {
	f := Format(external)
	return f, f.Known()
}

// FromMetadata queries handle and builds a Buffer from the result.
// Query failures and unknown formats are reported as buffer resolution
// errors without retry.
func FromMetadata(ctx context.Context, q MetadataQuery, lookup FormatLookup, role string, handle uintptr) (Buffer, error) {
	md, err := q.Query(ctx, handle)
	if err != nil {
		return Buffer{}, core.ErrBufferResolution(role, err)
	}

	format, ok := lookup(md.ExternalFormat, md.Modifier)
	if !ok {
		return Buffer{}, core.ErrBufferResolution(role,
			core.ErrNotSupported(role, "unknown platform format 0x%x modifier 0x%x", md.ExternalFormat, md.Modifier))
	}

	return Buffer{
		Width:   md.Width,
		Height:  md.Height,
		WStride: md.WStride,
		HStride: md.HStride,
		Format:  format,
		FD:      md.FD,
		Phys:    md.Phys,
		Virt:    md.Virt,
	}, nil
}
