// Package glapi resolves real OpenGL 3.3-4.3 core-profile entry points at
// runtime through a cgo-free dynamic loader (github.com/go-webgpu/goffi),
// the same approach gogpu-wgpu's hal/gles/gl backend uses to call GL
// without cgo. The renderer (internal/renderer) calls through this package
// instead of linking a cgo GL binding, because GL context creation and the
// windowing glue are explicitly external collaborators (spec.md §1): this
// package only needs to resolve function pointers against whatever context
// the embedder has already made current.
package glapi

// GL enum and type constants used by this renderer. Values match the
// khronos GL/GLES registry; this is the subset spec.md's components
// actually call (shaders/programs, buffers, textures of every target named
// in spec.md §3, framebuffers + blit, queries, transform feedback, sync
// objects, vertex-attrib-binding, DSA, draw variants, pixel store, and
// compressed/DS formats).
//
//nolint:revive
const (
	FALSE = 0
	TRUE  = 1
	NONE  = 0

	// Data types
	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	HALF_FLOAT     = 0x140B
	DOUBLE         = 0x140A
	INT_2_10_10_10_REV          = 0x8D9F
	UNSIGNED_INT_2_10_10_10_REV = 0x8368
	UNSIGNED_INT_10F_11F_11F_REV = 0x8C3B

	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	OUT_OF_MEMORY                  = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	BLEND        = 0x0BE2
	CULL_FACE    = 0x0B44
	DEPTH_TEST   = 0x0B71
	DITHER       = 0x0BD0
	SCISSOR_TEST = 0x0C11
	STENCIL_TEST = 0x0B90
	SAMPLE_MASK        = 0x8E51
	SAMPLE_ALPHA_TO_COVERAGE = 0x809E
	PRIMITIVE_RESTART        = 0x8F9D
	PRIMITIVE_RESTART_FIXED_INDEX = 0x8D69
	POLYGON_STIPPLE          = 0x0B42
	POLYGON_OFFSET_FILL      = 0x8037
	CLIP_DISTANCE0           = 0x3000
	RASTERIZER_DISCARD       = 0x8C89
	TEXTURE_CUBE_MAP_SEAMLESS = 0x884F
	PROGRAM_POINT_SIZE        = 0x8642
	DEPTH_CLAMP               = 0x864F
	CONDITIONAL_RENDER_WAIT                 = 0x8E13
	CONDITIONAL_RENDER_NO_WAIT               = 0x8E14
	CONDITIONAL_RENDER_BY_REGION_WAIT        = 0x8E15
	CONDITIONAL_RENDER_BY_REGION_NO_WAIT     = 0x8E16

	ARRAY_BUFFER              = 0x8892
	ELEMENT_ARRAY_BUFFER      = 0x8893
	UNIFORM_BUFFER            = 0x8A11
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	PIXEL_PACK_BUFFER         = 0x88EB
	PIXEL_UNPACK_BUFFER       = 0x88EC
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	TEXTURE_BUFFER            = 0x8C2A

	READ_ONLY  = 0x88B8
	WRITE_ONLY = 0x88B9
	READ_WRITE = 0x88BA

	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9

	MAP_READ_BIT              = 0x0001
	MAP_WRITE_BIT              = 0x0002
	MAP_INVALIDATE_RANGE_BIT   = 0x0004
	MAP_INVALIDATE_BUFFER_BIT  = 0x0008
	MAP_FLUSH_EXPLICIT_BIT     = 0x0010
	MAP_UNSYNCHRONIZED_BIT     = 0x0020

	// Textures
	TEXTURE_1D         = 0x0DE0
	TEXTURE_2D         = 0x0DE1
	TEXTURE_3D         = 0x806F
	TEXTURE_CUBE_MAP   = 0x8513
	TEXTURE_1D_ARRAY   = 0x8C18
	TEXTURE_2D_ARRAY   = 0x8C1A
	TEXTURE_CUBE_MAP_ARRAY = 0x9009
	TEXTURE_RECTANGLE  = 0x84F5
	TEXTURE_2D_MULTISAMPLE       = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY = 0x9102
	TEXTURE_CUBE_MAP_POSITIVE_X  = 0x8515

	TEXTURE0 = 0x84C0

	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	TEXTURE_WRAP_R     = 0x8072
	TEXTURE_MIN_LOD    = 0x813A
	TEXTURE_MAX_LOD    = 0x813B
	TEXTURE_BASE_LEVEL = 0x813C
	TEXTURE_MAX_LEVEL  = 0x813D
	TEXTURE_COMPARE_MODE = 0x884C
	TEXTURE_COMPARE_FUNC = 0x884D
	COMPARE_REF_TO_TEXTURE = 0x884E
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	TEXTURE_LOD_BIAS       = 0x8501
	TEXTURE_BORDER_COLOR   = 0x1004
	DEPTH_STENCIL_TEXTURE_MODE = 0x90EA

	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	REPEAT          = 0x2901
	CLAMP_TO_EDGE   = 0x812F
	CLAMP_TO_BORDER = 0x812D
	MIRRORED_REPEAT = 0x8370

	TEXTURE_SWIZZLE_R = 0x8E42
	TEXTURE_SWIZZLE_G = 0x8E43
	TEXTURE_SWIZZLE_B = 0x8E44
	TEXTURE_SWIZZLE_A = 0x8E45
	RED   = 0x1903
	GREEN = 0x1904
	BLUE  = 0x1905
	ALPHA = 0x1906
	ZERO_SWIZZLE = 0
	ONE_SWIZZLE  = 1

	RGBA8         = 0x8058
	RGB8          = 0x8051
	RGBA32F       = 0x8814
	RGBA16F       = 0x881A
	R8            = 0x8229
	RG8           = 0x822B
	R32F          = 0x822E
	RG32F         = 0x8230
	SRGB8_ALPHA8  = 0x8C43
	DEPTH_COMPONENT16 = 0x81A5
	DEPTH_COMPONENT24 = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH24_STENCIL8   = 0x88F0
	DEPTH32F_STENCIL8  = 0x8CAD
	STENCIL_INDEX8     = 0x8D48

	RGBA             = 0x1908
	RGB              = 0x1907
	RG               = 0x8227
	DEPTH_COMPONENT  = 0x1902
	DEPTH_STENCIL    = 0x84F9
	UNSIGNED_INT_24_8 = 0x84FA
	BGRA             = 0x80E1

	COLOR   = 0x1800
	DEPTH   = 0x1801
	STENCIL = 0x1802

	COLOR_ATTACHMENT0   = 0x8CE0
	DEPTH_ATTACHMENT    = 0x8D00
	STENCIL_ATTACHMENT  = 0x8D20
	DEPTH_STENCIL_ATTACHMENT = 0x821A
	FRAMEBUFFER         = 0x8D40
	READ_FRAMEBUFFER    = 0x8CA8
	DRAW_FRAMEBUFFER    = 0x8CA9
	RENDERBUFFER        = 0x8D41
	FRAMEBUFFER_COMPLETE = 0x8CD5

	COLOR_BUFFER_BIT   = 0x00004000
	DEPTH_BUFFER_BIT   = 0x00000100
	STENCIL_BUFFER_BIT = 0x00000400

	PACK_ROW_LENGTH     = 0x0D02
	PACK_ALIGNMENT      = 0x0D05
	UNPACK_ROW_LENGTH   = 0x0CF2
	UNPACK_IMAGE_HEIGHT = 0x806E
	UNPACK_ALIGNMENT    = 0x0CF5
	UNPACK_SKIP_PIXELS  = 0x0CF4
	UNPACK_SKIP_ROWS    = 0x0CF3
	UNPACK_SKIP_IMAGES  = 0x806D
	PACK_SKIP_PIXELS    = 0x0D04
	PACK_SKIP_ROWS      = 0x0D03

	// Shaders / programs
	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	GEOMETRY_SHADER = 0x8DD9
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84
	ACTIVE_UNIFORMS = 0x8B86
	ACTIVE_UNIFORM_BLOCKS = 0x8A36

	// Draw modes
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_LOOP      = 0x0002
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006
	LINES_ADJACENCY          = 0x000A
	LINE_STRIP_ADJACENCY     = 0x000B
	TRIANGLES_ADJACENCY      = 0x000C
	TRIANGLE_STRIP_ADJACENCY = 0x000D
	PATCHES        = 0x000E

	// Blend
	ZERO                = 0
	ONE                 = 1
	SRC_COLOR           = 0x0300
	ONE_MINUS_SRC_COLOR = 0x0301
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303
	DST_ALPHA           = 0x0304
	ONE_MINUS_DST_ALPHA = 0x0305
	DST_COLOR           = 0x0306
	ONE_MINUS_DST_COLOR = 0x0307
	SRC_ALPHA_SATURATE  = 0x0308
	SRC1_COLOR          = 0x88F9
	SRC1_ALPHA          = 0x8589
	FUNC_ADD             = 0x8006
	FUNC_SUBTRACT        = 0x800A
	FUNC_REVERSE_SUBTRACT = 0x800B
	MIN                  = 0x8007
	MAX                  = 0x8008

	// Depth/stencil functions
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207

	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INVERT    = 0x150A
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508

	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	CW  = 0x0900
	CCW = 0x0901

	// Queries
	SAMPLES_PASSED                          = 0x8914
	ANY_SAMPLES_PASSED                      = 0x8C2F
	ANY_SAMPLES_PASSED_CONSERVATIVE         = 0x8D6A
	TIME_ELAPSED                            = 0x88BF
	TIMESTAMP                               = 0x8E28
	PRIMITIVES_GENERATED                    = 0x8C87
	TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN   = 0x8C88
	QUERY_RESULT                            = 0x8866
	QUERY_RESULT_AVAILABLE                  = 0x8867

	// Transform feedback
	TRANSFORM_FEEDBACK              = 0x8E22
	TRANSFORM_FEEDBACK_BUFFER_BINDING = 0x8C8F

	// Sync
	SYNC_GPU_COMMANDS_COMPLETE = 0x9117
	SYNC_FLUSH_COMMANDS_BIT    = 0x00000001
	ALREADY_SIGNALED           = 0x911A
	TIMEOUT_EXPIRED            = 0x911B
	CONDITION_SATISFIED        = 0x911C
	WAIT_FAILED                = 0x911D

	// Misc queries
	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	SHADING_LANGUAGE_VERSION = 0x8B8C
	NUM_EXTENSIONS           = 0x821D
	EXTENSIONS               = 0x1F03
	MAJOR_VERSION            = 0x821B
	MINOR_VERSION            = 0x821C
	CONTEXT_PROFILE_MASK     = 0x9126
	CONTEXT_CORE_PROFILE_BIT = 0x00000001

	MAX_TEXTURE_SIZE           = 0x0D33
	MAX_ARRAY_TEXTURE_LAYERS   = 0x88FF
	MAX_COLOR_ATTACHMENTS      = 0x8CDF
	MAX_DRAW_BUFFERS           = 0x8824
	MAX_DUAL_SOURCE_DRAW_BUFFERS = 0x88FC
	MAX_TEXTURE_BUFFER_SIZE    = 0x8C2B
	MAX_VIEWPORTS              = 0x825B
	MAX_UNIFORM_BUFFER_BINDINGS = 0x8A2F
	MAX_COLOR_TEXTURE_SAMPLES  = 0x910E
	MAX_SAMPLES                = 0x8D57
)
