package renderer

import (
	"strconv"
	"strings"

	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/protocol"
)

// QueryCapabilities populates a Capabilities struct from live GL queries
// (spec.md §6 "Capabilities reply": "Populated from GL queries at init"),
// reusing the format table's binding bits for the per-format bitmaps
// instead of re-deriving them.
func QueryCapabilities(gl *glapi.Context, formats *format.Table) protocol.Capabilities {
	c := protocol.Capabilities{
		MaxTextureArrayLayers: uint32(gl.GetIntegerv(glapi.MAX_ARRAY_TEXTURE_LAYERS)),
		MaxRenderTargets:      uint32(gl.GetIntegerv(glapi.MAX_COLOR_ATTACHMENTS)),
		MaxSamples:            uint32(gl.GetIntegerv(glapi.MAX_SAMPLES)),
		MaxDualSourceRTs:      uint32(gl.GetIntegerv(glapi.MAX_DUAL_SOURCE_DRAW_BUFFERS)),
		MaxTBOSize:            uint32(gl.GetIntegerv(glapi.MAX_TEXTURE_BUFFER_SIZE)),
		MaxViewports:          uint32(gl.GetIntegerv(glapi.MAX_VIEWPORTS)),
		MaxUBOBlocks:          uint32(gl.GetIntegerv(glapi.MAX_UNIFORM_BUFFER_BINDINGS)),
		GLSLLevel:             glslLevel(gl.GetString(glapi.SHADING_LANGUAGE_VERSION)),
		PrimitiveMask:         primitiveMask(),
		Formats:               make(map[uint32]protocol.FormatCaps),
	}
	for _, e := range formats.All() {
		c.Formats[e.Format] = protocol.FormatCaps{
			Sampler: e.Bindings&format.BindSampler != 0,
			Render:  e.Bindings&format.BindRender != 0,
		}
	}
	return c
}

// QueryCapabilitiesV2 extends QueryCapabilities with the per-format
// vertex-bind bitmap send_caps2 adds (SPEC_FULL.md §4).
func QueryCapabilitiesV2(gl *glapi.Context, formats *format.Table) protocol.CapabilitiesV2 {
	v2 := protocol.CapabilitiesV2{Capabilities: QueryCapabilities(gl, formats)}
	for _, e := range formats.All() {
		fc := v2.Formats[e.Format]
		fc.Vertex = e.Bindings&format.BindVertex != 0
		v2.Formats[e.Format] = fc
	}
	return v2
}

// glslLevel parses "#.## <vendor info>" from GL_SHADING_LANGUAGE_VERSION
// into a single GLSL level (e.g. "140" for "1.40"), the same coarse integer
// the original renderer keys its shader-generation choices on.
func glslLevel(s string) uint32 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	parts := strings.SplitN(fields[0], ".", 2)
	if len(parts) != 2 {
		return 0
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	if minor < 10 {
		minor *= 10
	}
	return uint32(major*100 + minor)
}

// primitiveMask reports which primitive topologies this driver accepts,
// bit-indexed by GL primitive-type enum order (spec.md §6: "a prim-mask of
// supported primitive types"). Every topology glapi names a DrawArrays mode
// constant for is assumed supported; adjacency/patch topologies need
// GL_EXT_geometry_shader4/tessellation_shader and are left unset here since
// this module doesn't query those extensions.
func primitiveMask() uint32 {
	const corePrimitiveCount = 7 // points, lines, line-loop, line-strip, triangles, triangle-strip, triangle-fan
	return 1<<corePrimitiveCount - 1
}
