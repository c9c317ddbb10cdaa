// Package tgsi defines the typed intermediate representation consumed by
// internal/shadertranslate: declarations, immediates, properties and
// instructions, mirroring the token stream shape of the guest's TGSI
// (Tungsten Graphics Shader Infrastructure) IR described in spec.md §4.C.
// This package holds the IR types plus Decode (decode.go), which turns the
// flat wire words of a shader payload into a Program; the translator is
// responsible for turning a Program into GLSL.
package tgsi

// File names a TGSI register file.
type File uint8

const (
	FileNull File = iota
	FileInput
	FileOutput
	FileTemporary
	FileSampler
	FileSamplerView
	FileConstant
	FileImmediate
	FileAddress
	FileSystemValue
	FileBuffer
	FileImage
)

// SemanticName classifies an input/output declaration's role.
type SemanticName uint8

const (
	SemanticPosition SemanticName = iota
	SemanticColor
	SemanticBColor // back-face color (two-sided lighting)
	SemanticFace
	SemanticPSize
	SemanticGeneric
	SemanticNormal
	SemanticFog
	SemanticPrimID
	SemanticClipDist
	SemanticClipVertex
	SemanticInstanceID
	SemanticVertexID
	SemanticLayer
	SemanticViewportIndex
	SemanticTexCoord
)

// Interpolation selects how a varying is interpolated across a primitive.
type Interpolation uint8

const (
	InterpPerspective Interpolation = iota
	InterpLinear
	InterpConstant
	InterpColor // perspective for non-flatshade, flat with flatshade key
)

// Semantic identifies one declaration slot: a (name, index) pair plus its
// interpolation qualifier (inputs/outputs only).
type Semantic struct {
	Name          SemanticName
	Index         uint32
	Interp        Interpolation
	CylindricalWrap uint8 // bitmask over x/y/z/w, TGSI's wrap-for-fog-coord quirk
}

// Declaration reserves a contiguous range [First, Last] of registers in
// File, optionally tagged with semantic info (meaningful for INPUT/OUTPUT/
// SYSTEM_VALUE) and an array id (for indirectly-addressed declarations).
type Declaration struct {
	File     File
	First    uint32
	Last     uint32
	Semantic Semantic
	ArrayID  uint32
	// UBO-specific: when File == FileConstant and Dimension is set, Index2D
	// names which uniform buffer binding this constant range belongs to.
	Dimension bool
	Index2D   uint32
}

// Property carries a shader-wide flag decoded from a TGSI PROPERTY token,
// e.g. "fragment shader writes every color buffer", "geometry shader output
// primitive", "number of control points".
type PropertyName uint8

const (
	PropFSColorOnWriteAll PropertyName = iota
	PropGSOutputPrim
	PropGSMaxOutputVertices
	PropNumClipDistances
)

type Property struct {
	Name  PropertyName
	Value uint32
}

// Immediate is a compile-time constant vec4, materialized inline by the
// translator rather than uploaded as a uniform.
type Immediate struct {
	Value [4]uint32 // bit-pattern; reinterpreted per source-operand type
}

// SrcRegister names one source operand of an instruction: a register file
// reference with per-component swizzle and optional negate/absolute
// modifiers (TGSI source modifiers).
type SrcRegister struct {
	File       File
	Index      uint32
	Swizzle    [4]uint8 // indices 0..3 selecting x/y/z/w of the referenced register
	Negate     bool
	Absolute   bool
	Indirect   bool
	IndirectReg uint32
}

// DstRegister names the destination of an instruction: a register file
// reference plus a write mask (TGSI's per-component write enable).
type DstRegister struct {
	File      File
	Index     uint32
	WriteMask uint8 // bit i set => component i (x=0,y=1,z=2,w=3) is written
	Indirect  bool
	IndirectReg uint32
}

// Opcode is the TGSI instruction opcode space this translator understands;
// spec.md §4.C names these explicitly.
type Opcode uint16

const (
	OpMOV Opcode = iota
	OpADD
	OpSUB
	OpMUL
	OpMAD
	OpDP2
	OpDP3
	OpDP4
	OpRCP
	OpRSQ
	OpSQRT
	OpMIN
	OpMAX
	OpSLT
	OpSGE
	OpSEQ
	OpSNE
	OpFLR
	OpFRC
	OpABS
	OpNEG
	OpLRP
	OpEX2
	OpLG2
	OpCMP
	OpDDX
	OpDDY

	OpTEX
	OpTXB
	OpTXL
	OpTXD
	OpTXF
	OpTXP
	OpTXQ
	OpTEX2
	OpTXB2
	OpTXL2

	OpIF
	OpUIF
	OpELSE
	OpENDIF
	OpBGNLOOP
	OpENDLOOP
	OpBRK
	OpCONT
	OpRET
	OpKILL
	OpKILLIF

	OpEND
)

// TextureTarget names the sampler/image dimensionality a TEX-family
// instruction addresses — needed to pick the right GLSL texture* builtin
// and source-operand swizzle (spec.md §4.C).
type TextureTarget uint8

const (
	Tex1D TextureTarget = iota
	Tex2D
	Tex3D
	TexCube
	TexRect
	Tex1DArray
	Tex2DArray
	TexCubeArray
	TexBuffer
	Tex2DMS
	Tex2DMSArray
	TexShadow1D
	TexShadow2D
	TexShadowCube
	TexShadow1DArray
	TexShadow2DArray
	TexShadowRect
)

// Instruction is one TGSI instruction: opcode, destination(s), source
// operand(s), and texture-instruction metadata (target, offsets) when
// applicable.
type Instruction struct {
	Opcode    Opcode
	Dst       []DstRegister
	Src       []SrcRegister
	Saturate  bool
	TexTarget TextureTarget
	// TexOffset carries a compile-time texel offset for TXF/texelFetch-style
	// instructions (0,0,0 when unused).
	TexOffset [3]int32
}

// ProcessorType names which pipeline stage a Program targets.
type ProcessorType uint8

const (
	ProcessorVertex ProcessorType = iota
	ProcessorFragment
	ProcessorGeometry
)

// Program is the full decoded token stream for one shader: declarations and
// properties gathered up front, immediates in declaration order, and the
// instruction stream in program order. This is the translator's input
// (spec.md §4.C "Input").
type Program struct {
	Processor    ProcessorType
	Declarations []Declaration
	Properties   []Property
	Immediates   []Immediate
	Instructions []Instruction

	// StreamOutput mirrors pipe_stream_output_info: which output registers
	// feed which transform-feedback buffer (supplemented from
	// original_source's graw_decode_create_shader). Decode does not fill
	// it; it stays zero unless the caller sets it.
	StreamOutput StreamOutputInfo
}

// StreamOutputInfo describes how shader outputs map onto transform-feedback
// buffers (original_source/src/graw_decode.c: stream_output.num_outputs/
// stride/output[]). The wire layout Decode reads carries no stream-output
// words.
type StreamOutputInfo struct {
	NumOutputs int
	Stride     [4]uint32
	Output     []StreamOutputEntry
}

// StreamOutputEntry is one streamout binding: which shader output register
// feeds which transform-feedback buffer, at what component range/offset.
type StreamOutputEntry struct {
	RegisterIndex  uint32
	StartComponent uint8
	NumComponents  uint8
	OutputBuffer   uint8
	DstOffset      uint16
}
