// Package shadertranslate turns a tgsi.Program plus a per-draw Key into
// GLSL source and reflection info, grounded on virglrenderer's
// src/vrend_shader.c (vrend_convert_shader / vrend_shader_info /
// vrend_shader_key) per spec.md §4.C.
package shadertranslate

// Key selects one shader variant out of a selector's chain (spec.md §3
// "Shader selector", §4.C "Shader key"). Grounded field-for-field on
// original_source/src/vrend_shader.h's vrend_shader_key.
type Key struct {
	CoordReplace     uint32  // point-sprite coord-replace mask, one bit per texcoord generic
	InvertFSOrigin   bool    // flip fragment-shader gl_FragCoord origin (y_0_top resources)
	PstippleTex      bool    // sample the polygon-stipple texture and discard
	AddAlphaTest     bool    // core profile has no fixed-function alpha test: emit as discard
	ColorTwoSide     bool    // two-sided color; the translator emits only a marker comment for it
	AlphaTestFunc    AlphaFunc
	AlphaRefValue    float32
	ClipPlaneEnable  uint8 // bitmask over clip planes 0..7
	GSPresent        bool
	Flatshade        bool
	VSHasPervertexClip bool
	VSPervertexNumClip uint8
	CbufsAreA8Bitmask  uint32 // per-cbuf "this render target is alpha-only" bit, for swizzle fixup
}

// AlphaFunc mirrors a PIPE_FUNC_* comparison used by the alpha test.
type AlphaFunc uint8

const (
	AlphaNever AlphaFunc = iota
	AlphaLess
	AlphaEqual
	AlphaLessEqual
	AlphaGreater
	AlphaNotEqual
	AlphaGreaterEqual
	AlphaAlways
)

// Pack64 folds the key into a 64-bit value for use as a shader-variant
// chain lookup key (spec.md §3: "a 64-bit shader key").
func (k Key) Pack64() uint64 {
	var v uint64
	v |= uint64(k.CoordReplace) & 0xffff
	v |= boolBit(k.InvertFSOrigin) << 16
	v |= boolBit(k.PstippleTex) << 17
	v |= boolBit(k.AddAlphaTest) << 18
	v |= boolBit(k.ColorTwoSide) << 19
	v |= uint64(k.AlphaTestFunc) << 20
	v |= uint64(k.ClipPlaneEnable) << 24
	v |= boolBit(k.GSPresent) << 32
	v |= boolBit(k.Flatshade) << 33
	v |= boolBit(k.VSHasPervertexClip) << 34
	v |= uint64(k.VSPervertexNumClip) << 35
	v |= uint64(k.CbufsAreA8Bitmask) << 40
	return v
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
