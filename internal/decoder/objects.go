package decoder

import (
	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/renderer"
	"github.com/mittorn/vrend/protocol"
)

const maxColorBufs = 8

// decodeBlend parses a CREATE_OBJECT(BLEND) body: 8 render-target blend
// descriptors, each {enabled, srcRGB, dstRGB, eqRGB, srcA, dstA, eqA,
// colorMaskRGBA(4 bools packed as one word)} (spec.md §3 "Entities": blend
// state carries per-RT factors/equations plus a color mask).
func decodeBlend(p []uint32) *renderer.BlendState {
	bs := &renderer.BlendState{}
	for i := 0; i < maxColorBufs && (i+1)*8 <= len(p); i++ {
		base := i * 8
		bs.Enabled[i] = p[base] != 0
		bs.SrcRGB[i], bs.DstRGB[i], bs.EqRGB[i] = p[base+1], p[base+2], p[base+3]
		bs.SrcA[i], bs.DstA[i], bs.EqA[i] = p[base+4], p[base+5], p[base+6]
		mask := p[base+7]
		bs.ColorMask[i] = [4]bool{mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0}
	}
	return bs
}

// decodeDSA parses a CREATE_OBJECT(DSA) body: depth {enabled, writeEnabled,
// func}, two stencil faces {func, ref, valueMask, writeMask, failOp, zFailOp,
// zPassOp}, alpha-test enabled (spec.md §3: "DSA object").
func decodeDSA(p []uint32) *renderer.DSAState {
	d := &renderer.DSAState{
		DepthEnabled: p[0] != 0,
		DepthWrite:   p[1] != 0,
		DepthFunc:    p[2],
	}
	for face := 0; face < 2; face++ {
		base := 3 + face*7
		d.StencilFunc[face] = p[base]
		d.StencilRef[face] = int32(p[base+1])
		d.StencilValueMask[face] = p[base+2]
		d.StencilWriteMask[face] = p[base+3]
		d.StencilFailOp[face] = p[base+4]
		d.StencilZFail[face] = p[base+5]
		d.StencilZPass[face] = p[base+6]
	}
	d.StencilEnabled = d.StencilFunc[0] != 0
	if len(p) > 17 {
		d.AlphaTestEnabled = p[17] != 0
	}
	return d
}

// decodeRasterizer parses a CREATE_OBJECT(RASTERIZER) body: {frontCCW,
// cullFace, cullMode, fillMode, flatshade, colorTwoSide, pointSize,
// lineWidth} (spec.md §4.C: flatshade/color-two-side feed the shader key).
func decodeRasterizer(p []uint32) *renderer.RasterizerState {
	return &renderer.RasterizerState{
		FrontCCW:     p[0] != 0,
		CullFace:     p[1] != 0,
		CullMode:     p[2],
		FillMode:     p[3],
		Flatshade:    p[4] != 0,
		ColorTwoSide: p[5] != 0,
		PointSize:    protocol.DecodeFloat(p[6]),
		LineWidth:    protocol.DecodeFloat(p[7]),
	}
}

// surfaceBody is a CREATE_OBJECT(SURFACE) body: {res_handle, format, val0,
// val1} where val0 is the mip level and val1&0xffff the bound layer
// (spec.md §3 "Surface"), grounded on graw_decode_create_surface /
// grend_create_surface.
type surfaceBody struct {
	ResHandle, Format, Val0, Val1 uint32
}

func decodeSurfaceBody(p []uint32) surfaceBody {
	return surfaceBody{ResHandle: p[0], Format: p[1], Val0: p[2], Val1: p[3]}
}

// samplerViewBody is a CREATE_OBJECT(SAMPLER_VIEW) body: {res_handle,
// format, val0, val1, swizzle_packed} where val0 packs first/last layer and
// val1 packs first/last mip level (grend_create_sampler_view: "cur_base =
// val1&0xff", "cur_max = (val1>>8)&0xff").
type samplerViewBody struct {
	ResHandle, Format, Val0, Val1, SwizzlePacked uint32
}

func decodeSamplerViewBody(p []uint32) samplerViewBody {
	return samplerViewBody{ResHandle: p[0], Format: p[1], Val0: p[2], Val1: p[3], SwizzlePacked: p[4]}
}

// decodeSamplerViewSwizzle unpacks the 4 3-bit pipe-swizzle fields into GL
// swizzle tokens (grend_create_sampler_view / to_gl_swizzle).
func decodeSamplerViewSwizzle(packed uint32) [4]uint32 {
	return [4]uint32{
		pipeSwizzleToGL(packed & 0x7),
		pipeSwizzleToGL((packed >> 3) & 0x7),
		pipeSwizzleToGL((packed >> 6) & 0x7),
		pipeSwizzleToGL((packed >> 9) & 0x7),
	}
}

func pipeSwizzleToGL(v uint32) uint32 {
	switch v {
	case 0:
		return glapi.RED
	case 1:
		return glapi.GREEN
	case 2:
		return glapi.BLUE
	case 3:
		return glapi.ALPHA
	case 4:
		return glapi.ZERO_SWIZZLE
	case 5:
		return glapi.ONE_SWIZZLE
	default:
		return glapi.RED
	}
}

// decodeVertexElements parses a CREATE_OBJECT(VERTEX_ELEMENTS) body: a
// sequence of {src_offset, instance_divisor, vertex_buffer_index,
// src_format} groups (spec.md §3 "vertex elements object"; graw_decode_create_ve).
// The GL attribute type/component-count/normalized flag are derived from
// the format table the same way util_format_description feeds
// grend_create_vertex_elements_state's type switch: component count is
// block-size / bytes-per-component, and *_UNORM formats normalize.
func decodeVertexElements(p []uint32, formats *format.Table) []renderer.VertexElement {
	n := len(p) / 4
	out := make([]renderer.VertexElement, 0, n)
	for i := 0; i < n; i++ {
		base := i * 4
		glType, glSize, normalized := vertexAttribGL(formats, p[base+3])
		out = append(out, renderer.VertexElement{
			SrcOffset:       p[base],
			InstanceDivisor: p[base+1],
			VBOIndex:        p[base+2],
			Format:          p[base+3],
			GLType:          glType,
			GLSize:          glSize,
			Normalized:      normalized,
		})
	}
	return out
}

func vertexAttribGL(formats *format.Table, f uint32) (glType uint32, glSize int32, normalized bool) {
	e, ok := formats.Lookup(f)
	if !ok {
		return glapi.FLOAT, 4, false
	}
	bytesPerComp := 4
	switch e.Type {
	case glapi.UNSIGNED_BYTE, glapi.BYTE:
		bytesPerComp = 1
		normalized = true
	case glapi.UNSIGNED_SHORT, glapi.SHORT, glapi.HALF_FLOAT:
		bytesPerComp = 2
		normalized = e.Type != glapi.HALF_FLOAT
	}
	size := e.BlockBytes / bytesPerComp
	if size <= 0 {
		size = 1
	}
	return e.Type, int32(size), normalized
}

// decodeSamplerState parses a CREATE_OBJECT(SAMPLER_STATE) body: a packed
// wrap/filter/compare word, lod_bias/min_lod/max_lod floats, and a 4-word
// border color (graw_decode_create_sampler_state / grend_bind_sampler_states'
// convert_wrap/convert_min_filter/convert_mag_filter).
func decodeSamplerState(p []uint32) *renderer.SamplerState {
	tmp := p[0]
	s := &renderer.SamplerState{
		WrapS:       pipeWrapToGL(tmp & 0x7),
		WrapT:       pipeWrapToGL((tmp >> 3) & 0x7),
		WrapR:       pipeWrapToGL((tmp >> 6) & 0x7),
		MinFilter:   pipeMinFilterToGL((tmp>>9)&0x3, (tmp>>11)&0x3),
		MagFilter:   pipeMagFilterToGL((tmp >> 13) & 0x3),
		CompareMode: (tmp >> 15) & 0x1,
		CompareFunc: pipeCompareFuncToGL((tmp >> 16) & 0x7),
		LODBias:     protocol.DecodeFloat(p[1]),
		MinLOD:      protocol.DecodeFloat(p[2]),
		MaxLOD:      protocol.DecodeFloat(p[3]),
	}
	for i := 0; i < 4; i++ {
		s.BorderColor[i] = protocol.DecodeFloat(p[4+i])
	}
	return s
}

func pipeWrapToGL(w uint32) uint32 {
	switch w {
	case 0:
		return glapi.REPEAT
	case 3:
		return glapi.CLAMP_TO_BORDER
	case 4:
		return glapi.MIRRORED_REPEAT
	default: // CLAMP and CLAMP_TO_EDGE both map to CLAMP_TO_EDGE in core profile GL
		return glapi.CLAMP_TO_EDGE
	}
}

func pipeMagFilterToGL(f uint32) uint32 {
	if f == 0 {
		return glapi.NEAREST
	}
	return glapi.LINEAR
}

func pipeMinFilterToGL(filter, mip uint32) uint32 {
	switch mip {
	case 2: // PIPE_TEX_MIPFILTER_NONE
		return pipeMagFilterToGL(filter)
	case 1: // PIPE_TEX_MIPFILTER_LINEAR
		if filter == 0 {
			return glapi.NEAREST_MIPMAP_LINEAR
		}
		return glapi.LINEAR_MIPMAP_LINEAR
	default: // PIPE_TEX_MIPFILTER_NEAREST
		if filter == 0 {
			return glapi.NEAREST_MIPMAP_NEAREST
		}
		return glapi.LINEAR_MIPMAP_NEAREST
	}
}

func pipeCompareFuncToGL(f uint32) uint32 {
	switch f {
	case 0:
		return glapi.NEVER
	case 1:
		return glapi.LESS
	case 2:
		return glapi.EQUAL
	case 3:
		return glapi.LEQUAL
	case 4:
		return glapi.GREATER
	case 5:
		return glapi.NOTEQUAL
	case 6:
		return glapi.GEQUAL
	default:
		return glapi.ALWAYS
	}
}
