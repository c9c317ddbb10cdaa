package shadertranslate

import "github.com/mittorn/vrend/internal/tgsi"

// Config carries the host GLSL target, grounded on
// original_source/src/vrend_shader.h's vrend_shader_cfg.
type Config struct {
	GLSLVersion          int
	UseCoreProfile       bool
	UseExplicitLocations bool
}

// InterpInfo records one input's semantic and interpolation qualifier, kept
// around after translation so the linker's interpolation-qualifier patchback
// (vrend_patch_vertex_shader_interpolants) can rewrite the matching vertex
// shader output line to agree with what the fragment shader actually
// declared (spec.md §4.C "Linker patchback").
type InterpInfo struct {
	SemanticName  tgsi.SemanticName
	SemanticIndex uint32
	Interpolate   tgsi.Interpolation
}

// Reflection is everything the program linker (internal/program) needs to
// know about a translated shader without re-parsing its GLSL text. Grounded
// on original_source/src/vrend_shader.h's vrend_shader_info.
type Reflection struct {
	SamplersUsedMask uint32
	ShadowSampMask   uint32
	NumConsts        int
	NumInputs        int
	NumInterps       int
	NumOutputs       int
	NumUBOs          int
	NumClipDistances int
	GLSLVersion      int
	NumPervertexClip uint8
	GSOutputPrim     uint32
	AttribInputMask  uint32

	Interp  []InterpInfo
	SONames []string // one per transform-feedback output, "" when unused
}

// Result is the translator's full output for one shader: GLSL text plus its
// reflection (spec.md §4.C "Output").
type Result struct {
	Source     string
	Reflection Reflection
}
