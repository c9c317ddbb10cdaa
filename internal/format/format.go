// Package format implements the static pixel-format table described in
// spec.md §4.A, grounded on virglrenderer's tex_conv_table
// (original_source/src/vrend_renderer.c) and its vrend_insert_format /
// vrend_insert_format_swizzle initializers.
package format

import "github.com/mittorn/vrend/internal/glapi"

// Bindings is a bitset of the usages a format supports on this host GL
// driver (spec.md §4.A: "bindings_mask is a bitset of {SAMPLER, RENDER,
// DEPTH_STENCIL}").
type Bindings uint8

const (
	BindSampler Bindings = 1 << iota
	BindRender
	BindDepthStencil
	BindVertex // v2 capability bit, SPEC_FULL.md §4
)

// Flags carries per-format emulation hints.
type Flags uint8

const (
	// FlagNeedSwizzle marks a format emulated via a different host internal
	// format plus a texture-swizzle remap (spec.md §4.A).
	FlagNeedSwizzle Flags = 1 << iota
)

// Swizzle is a 4-component channel remap, one of glapi.RED/GREEN/BLUE/ALPHA/
// ZERO_SWIZZLE/ONE_SWIZZLE per component, applied via GL_TEXTURE_SWIZZLE_*.
type Swizzle [4]uint32

// Entry is one row of the format table.
type Entry struct {
	Format     uint32 // abstract (guest-facing) pixel format enum
	Internal   uint32 // GL sized internal format
	External   uint32 // GL base/external format for upload
	Type       uint32 // GL pixel type
	Bindings   Bindings
	Flags      Flags
	Swizzle    Swizzle
	BlockBytes int // bytes per texel (uncompressed) or per block
}

// Table is the static format→capability map. Read-only after New, so it
// needs no synchronization (spec.md §4.A: "no concurrency").
type Table struct {
	entries map[uint32]Entry
}

// CanSample reports whether format may be bound to a sampler.
func (t *Table) CanSample(f uint32) bool { return t.entries[f].Bindings&BindSampler != 0 }

// CanRender reports whether format may be bound as a color render target.
func (t *Table) CanRender(f uint32) bool { return t.entries[f].Bindings&BindRender != 0 }

// IsDepthStencil reports whether format carries depth and/or stencil.
func (t *Table) IsDepthStencil(f uint32) bool { return t.entries[f].Bindings&BindDepthStencil != 0 }

// Lookup returns the table row for format and whether it was populated.
func (t *Table) Lookup(f uint32) (Entry, bool) {
	e, ok := t.entries[f]
	return e, ok
}

// All returns every populated row, for callers that report capabilities
// per-format (spec.md §6 "Capabilities reply": "per-format sampler/render/
// vertex bitmaps").
func (t *Table) All() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

func (t *Table) insert(e Entry) { t.entries[e.Format] = e }

func (t *Table) insertSwizzle(e Entry, sw Swizzle) {
	e.Flags |= FlagNeedSwizzle
	e.Swizzle = sw
	t.entries[e.Format] = e
}

// Abstract guest-facing pixel formats. Kept intentionally small and
// internal to this module: the real wire-protocol format enum is owned by
// the external transport/protocol constants per spec.md §1; this numbering
// only has to agree between format.Table and the rest of this renderer.
const (
	FormatB8G8R8A8Unorm uint32 = iota + 1
	FormatB8G8R8X8Unorm
	FormatR8G8B8A8Unorm
	FormatR8Unorm
	FormatR8G8Unorm
	FormatR16Float
	FormatR32Float
	FormatR32G32Float
	FormatR32G32B32A32Float
	FormatR16G16B16A16Float
	FormatZ16Unorm
	FormatZ24X8Unorm
	FormatZ24UnormS8Uint
	FormatZ32Float
	FormatS8UintZ24Unorm
	FormatL8Unorm   // emulated: no host LUMINANCE in core profile
	FormatA8Unorm   // emulated: no host ALPHA in core profile
	FormatI8Unorm   // emulated: no host INTENSITY in core profile
)

// New builds and populates the format table. Grounded on vrend_renderer.c's
// init-time format registration (vrend_insert_format /
// vrend_insert_format_swizzle), translated from the fixed virgl format
// enumeration to this module's smaller abstract enum.
func New() *Table {
	t := &Table{entries: make(map[uint32]Entry)}

	t.insert(Entry{
		Format: FormatB8G8R8A8Unorm, Internal: glapi.RGBA8, External: glapi.BGRA,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatB8G8R8X8Unorm, Internal: glapi.RGB8, External: glapi.BGRA,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler | BindRender, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatR8G8B8A8Unorm, Internal: glapi.RGBA8, External: glapi.RGBA,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatR8Unorm, Internal: glapi.R8, External: glapi.RED,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 1,
	})
	t.insert(Entry{
		Format: FormatR8G8Unorm, Internal: glapi.RG8, External: glapi.RG,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 2,
	})
	t.insert(Entry{
		Format: FormatR16Float, Internal: glapi.RGBA16F, External: glapi.RED,
		Type: glapi.HALF_FLOAT, Bindings: BindSampler | BindRender, BlockBytes: 2,
	})
	t.insert(Entry{
		Format: FormatR32Float, Internal: glapi.R32F, External: glapi.RED,
		Type: glapi.FLOAT, Bindings: BindSampler, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatR32G32Float, Internal: glapi.RG32F, External: glapi.RG,
		Type: glapi.FLOAT, Bindings: BindSampler | BindVertex, BlockBytes: 8,
	})
	t.insert(Entry{
		Format: FormatR32G32B32A32Float, Internal: glapi.RGBA32F, External: glapi.RGBA,
		Type: glapi.FLOAT, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 16,
	})
	t.insert(Entry{
		Format: FormatR16G16B16A16Float, Internal: glapi.RGBA16F, External: glapi.RGBA,
		Type: glapi.HALF_FLOAT, Bindings: BindSampler | BindRender | BindVertex, BlockBytes: 8,
	})
	t.insert(Entry{
		Format: FormatZ16Unorm, Internal: glapi.DEPTH_COMPONENT16, External: glapi.DEPTH_COMPONENT,
		Type: glapi.UNSIGNED_SHORT, Bindings: BindSampler | BindDepthStencil, BlockBytes: 2,
	})
	t.insert(Entry{
		Format: FormatZ24X8Unorm, Internal: glapi.DEPTH_COMPONENT24, External: glapi.DEPTH_COMPONENT,
		Type: glapi.UNSIGNED_INT, Bindings: BindSampler | BindDepthStencil, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatZ24UnormS8Uint, Internal: glapi.DEPTH24_STENCIL8, External: glapi.DEPTH_STENCIL,
		Type: glapi.UNSIGNED_INT_24_8, Bindings: BindSampler | BindDepthStencil, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatZ32Float, Internal: glapi.DEPTH_COMPONENT32F, External: glapi.DEPTH_COMPONENT,
		Type: glapi.FLOAT, Bindings: BindSampler | BindDepthStencil, BlockBytes: 4,
	})
	t.insert(Entry{
		Format: FormatS8UintZ24Unorm, Internal: glapi.DEPTH24_STENCIL8, External: glapi.DEPTH_STENCIL,
		Type: glapi.UNSIGNED_INT_24_8, Bindings: BindDepthStencil, BlockBytes: 4,
	})

	// Emulated formats: no core-profile GL internal format matches these
	// directly, so they are reinterpreted through a swizzle the way
	// vrend_insert_format_swizzle does (spec.md §4.A NEED_SWIZZLE).
	t.insertSwizzle(Entry{
		Format: FormatL8Unorm, Internal: glapi.R8, External: glapi.RED,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler, BlockBytes: 1,
	}, Swizzle{glapi.RED, glapi.RED, glapi.RED, glapi.ONE_SWIZZLE})
	t.insertSwizzle(Entry{
		Format: FormatA8Unorm, Internal: glapi.R8, External: glapi.RED,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler, BlockBytes: 1,
	}, Swizzle{glapi.ZERO_SWIZZLE, glapi.ZERO_SWIZZLE, glapi.ZERO_SWIZZLE, glapi.RED})
	t.insertSwizzle(Entry{
		Format: FormatI8Unorm, Internal: glapi.R8, External: glapi.RED,
		Type: glapi.UNSIGNED_BYTE, Bindings: BindSampler, BlockBytes: 1,
	}, Swizzle{glapi.RED, glapi.RED, glapi.RED, glapi.RED})

	return t
}
