package renderer

import "github.com/mittorn/vrend/internal/program"

const (
	maxViewports = 16
	maxVBOs      = 32
	maxColorBufs = 8
)

// BlendState mirrors a CREATE_OBJECT(BLEND) payload: one RT-indexed blend
// equation/factor set plus global flags (spec.md §3 Entities).
type BlendState struct {
	Enabled        [maxColorBufs]bool
	SrcRGB, DstRGB [maxColorBufs]uint32
	SrcA, DstA     [maxColorBufs]uint32
	EqRGB, EqA     [maxColorBufs]uint32
	ColorMask      [maxColorBufs][4]bool
	Dirty          bool
}

// DSAState is depth/stencil/alpha-test state (spec.md §3: "DSA object").
type DSAState struct {
	DepthEnabled bool
	DepthWrite   bool
	DepthFunc    uint32

	StencilEnabled              bool
	StencilFunc                 [2]uint32
	StencilRef                  [2]int32
	StencilValueMask            [2]uint32
	StencilWriteMask            [2]uint32
	StencilFailOp, StencilZFail [2]uint32
	StencilZPass                [2]uint32

	AlphaTestEnabled bool
	Dirty            bool
}

// RasterizerState carries fill mode, culling, and the flags that feed the
// shader key (flatshade, two-sided color) per spec.md §4.E/§4.C.
type RasterizerState struct {
	FrontCCW     bool
	CullFace     bool
	CullMode     uint32
	FillMode     uint32
	Flatshade    bool
	ColorTwoSide bool
	PointSize    float32
	LineWidth    float32
	Dirty        bool
}

type Rect struct{ X, Y, W, H int32 }

// Viewport holds the gallium viewport transform (scale+translate, since
// gallium viewports are stored that way rather than as a rect).
type Viewport struct {
	ScaleX, ScaleY, ScaleZ       float32
	TranslateX, TranslateY, TranslateZ float32
}

type FramebufferState struct {
	NumCbufs            int
	Cbufs               [maxColorBufs]*Surface
	ZSurf               *Surface
	Height              int32
	InvertedFBOContent  bool
	Dirty               bool
}

// Surface is a CREATE_OBJECT(SURFACE): a typed view of a resource usable as
// a render target (spec.md §3 Entities).
type Surface struct {
	Handle     uint32
	Resource   *Resource
	Level      uint32
	FirstLayer uint32
	LastLayer  uint32
}

// SamplerView is a CREATE_OBJECT(SAMPLER_VIEW): a typed view of a resource
// usable as a texture (spec.md §3 Entities).
type SamplerView struct {
	Handle   uint32
	Resource *Resource
	Target   uint32
	GLTarget uint32
	FirstLevel, LastLevel uint32
	FirstLayer, LastLayer uint32
	Swizzle  [4]uint32
}

// SamplerState is a CREATE_OBJECT(SAMPLER_STATE).
type SamplerState struct {
	Handle         uint32
	GLSampler      uint32
	MinFilter, MagFilter uint32
	WrapS, WrapR, WrapT  uint32
	MinLOD, MaxLOD, LODBias float32
	CompareMode, CompareFunc uint32
	BorderColor    [4]float32
}

// VertexElement describes one vertex-element-array slot (spec.md §3
// Entities: "vertex elements object").
type VertexElement struct {
	VBOIndex   uint32
	SrcOffset  uint32
	InstanceDivisor uint32
	Format     uint32
	GLType     uint32
	GLSize     int32
	Normalized bool
}

type VBOBinding struct {
	Resource *Resource
	Offset   uint32
	Stride   uint32
	Bound    bool
}

// ShaderSelectors bundles the three (or two) bound shader-object handles a
// draw selects programs from (spec.md §4.D step 1).
type ShaderSelectors struct {
	VS, FS, GS *program.Selector
	DualSrc    bool
}

// PipelineState is the full shadow state of one sub-context (spec.md §4.E
// opening paragraph enumerates every field this mirrors).
type PipelineState struct {
	Blend       BlendState
	DSA         DSAState
	Rasterizer  RasterizerState

	Scissors      [maxViewports]Rect
	ScissorDirty  uint32 // bitmask over maxViewports

	Viewports     [maxViewports]Viewport
	ViewportDirty uint32

	StencilRef [2]int32

	PolygonStipple [32]uint32
	ClipPlaneEnable uint8
	ClipPlanes      [8][4]float32
	SampleMask      uint32

	Framebuffer FramebufferState

	VertexElements []VertexElement
	VBOs           [maxVBOs]VBOBinding
	VBODirty       uint32
	IndexBuffer    *Resource
	IndexSize      uint32

	Shaders ShaderSelectors
	ShaderDirty bool
	CurrentProgram *program.Linked

	// Constants[stage] holds the raw vec4 words for that stage's constant
	// array; ConstDirty[stage] marks it for re-upload on the next draw.
	Constants  map[string][]uint32
	ConstDirty map[string]bool

	SamplerViews map[string][]*SamplerView
	SamplerStates map[string][]*SamplerState
	SamplerStateDirty map[string]bool

	UBOs    map[string][]*Resource
	UBOUsedMask map[string]uint32

	NumStreamoutTargets int
	CurrentStreamout     *StreamoutObject

	DepthRangeScale, DepthRangeTransform float32

	PrimitiveRestartEnabled bool
	RestartIndex            uint32

	// QueryState mirrors SET_QUERY_STATE's enabled flag. The original
	// renderer's handler for this opcode is empty, so this field is tracked
	// for completeness but has no further GL effect (spec.md §4.F opcode
	// list).
	QueryState bool
}

func NewPipelineState() PipelineState {
	return PipelineState{
		Constants:        make(map[string][]uint32),
		ConstDirty:       make(map[string]bool),
		SamplerViews:     make(map[string][]*SamplerView),
		SamplerStates:    make(map[string][]*SamplerState),
		SamplerStateDirty: make(map[string]bool),
		UBOs:             make(map[string][]*Resource),
		UBOUsedMask:      make(map[string]uint32),
	}
}
