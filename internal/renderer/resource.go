package renderer

import (
	"fmt"

	"github.com/mittorn/vrend/internal/glapi"
)

// Pipe* are the resource target kinds a resource_create call names (spec.md
// §3 Entities "target"), grounded on PIPE_BUFFER/PIPE_TEXTURE_* in
// vrend_renderer_resource_create's check_resource_valid.
const (
	PipeBuffer uint32 = iota
	PipeTexture1D
	PipeTexture2D
	PipeTexture3D
	PipeTextureCube
	PipeTexture1DArray
	PipeTexture2DArray
	PipeTextureCubeArray
	PipeTextureRect
)

// Bind* mirror VREND_RES_BIND_* from vrend_renderer_resource_create: they
// pick the GL object family (and, for buffers, the GL buffer target) a
// resource is allocated with.
const BindNone uint32 = 0

const (
	BindVertexBuffer uint32 = 1 << iota
	BindIndexBuffer
	BindConstantBuffer
	BindStreamOutput
	BindSamplerView
	BindRenderTarget
	BindDepthStencil
	BindCursor
	BindCustom
)

// ResourceCreateArgs is the decoded resource_create request (spec.md §3:
// "Created by resource_create"). resource_create is a transport-level
// operation rather than a command-buffer opcode, so it is exposed here for
// an embedder to call directly (spec.md §1 scopes the iovec/transport
// marshalling out, not the GL-object allocation itself).
type ResourceCreateArgs struct {
	Handle    uint32
	Target    uint32
	Format    uint32 // format.Table key
	Bind      uint32
	Width     uint32
	Height    uint32
	Depth     uint32
	ArraySize uint32
	LastLevel uint32
	NrSamples uint32
	YFlip     bool
}

// CreateResource allocates the GL object(s) a resource descriptor names and
// inserts the result into the process-global resource table, grounded on
// vrend_renderer_resource_create's bind-based dispatch: index/stream-output/
// vertex/constant buffers (and bind==0 PIPE_BUFFER) all allocate a GL buffer
// with STREAM_DRAW; anything else allocates a texture of the requested
// target and dimensions.
func (c *Context) CreateResource(args ResourceCreateArgs) (*Resource, error) {
	r := &Resource{
		Handle:    args.Handle,
		Width:     args.Width,
		Height:    args.Height,
		Depth:     args.Depth,
		ArraySize: args.ArraySize,
		MipLevels: args.LastLevel + 1,
		Samples:   args.NrSamples,
	}

	gl := c.GL
	switch {
	case args.Bind == BindIndexBuffer:
		r.Target, r.IsBuffer = glapi.ELEMENT_ARRAY_BUFFER, true
	case args.Bind == BindStreamOutput:
		r.Target, r.IsBuffer = glapi.TRANSFORM_FEEDBACK_BUFFER, true
	case args.Bind == BindVertexBuffer:
		r.Target, r.IsBuffer = glapi.ARRAY_BUFFER, true
	case args.Bind == BindConstantBuffer:
		r.Target, r.IsBuffer = glapi.UNIFORM_BUFFER, true
	case args.Target == PipeBuffer && args.Bind == BindNone:
		r.Target, r.IsBuffer = glapi.ARRAY_BUFFER, true
	default:
		entry, ok := c.Formats.Lookup(args.Format)
		if !ok {
			return nil, fmt.Errorf("renderer: unknown format %d for resource %d", args.Format, args.Handle)
		}
		r.Format = entry
		r.Target = glTargetForPipeTarget(args.Target, args.ArraySize)
	}

	if r.IsBuffer {
		r.GLObject = gl.GenBuffers(1)[0]
		gl.BindBuffer(r.Target, r.GLObject)
		gl.BufferData(r.Target, uintptr(args.Width), 0, glapi.STREAM_DRAW)
	} else {
		r.GLObject = gl.GenTextures(1)[0]
		gl.BindTexture(r.Target, r.GLObject)
		allocateTextureStorage(gl, r)
	}

	c.Res.Insert(r)
	return r, nil
}

func glTargetForPipeTarget(target, arraySize uint32) uint32 {
	switch target {
	case PipeTexture1D:
		return glapi.TEXTURE_1D
	case PipeTexture1DArray:
		return glapi.TEXTURE_1D_ARRAY
	case PipeTexture2DArray:
		return glapi.TEXTURE_2D_ARRAY
	case PipeTextureCube:
		return glapi.TEXTURE_CUBE_MAP
	case PipeTextureCubeArray:
		return glapi.TEXTURE_CUBE_MAP_ARRAY
	case PipeTextureRect:
		return glapi.TEXTURE_RECTANGLE
	case PipeTexture3D:
		return glapi.TEXTURE_3D
	default:
		if arraySize > 1 {
			return glapi.TEXTURE_2D_ARRAY
		}
		return glapi.TEXTURE_2D
	}
}

// allocateTextureStorage issues the initial glTexImage*/glTexStorage* call
// for a freshly-allocated texture resource, picking 1D/2D/3D-with-layers by
// dimension the same way vrend_renderer_resource_create's texture branch
// does (multisample resources go through TexStorage2DMultisample instead of
// TexImage2D since GL has no mutable multisample image entry point).
func allocateTextureStorage(gl *glapi.Context, r *Resource) {
	e := r.Format
	if r.Samples > 1 {
		gl.TexStorage2DMultisample(r.Target, int32(r.Samples), e.Internal, int32(r.Width), int32(r.Height), true)
		return
	}
	switch {
	case r.Target == glapi.TEXTURE_CUBE_MAP_ARRAY || r.Target == glapi.TEXTURE_2D_ARRAY || r.Target == glapi.TEXTURE_3D:
		depth := r.Depth
		if r.ArraySize > depth {
			depth = r.ArraySize
		}
		if depth == 0 {
			depth = 1
		}
		gl.TexImage3D(r.Target, 0, int32(e.Internal), int32(r.Width), int32(r.Height), int32(depth), 0, e.External, e.Type, 0)
	case r.Target == glapi.TEXTURE_CUBE_MAP:
		for face := uint32(0); face < 6; face++ {
			gl.TexImage2D(glapi.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, int32(e.Internal), int32(r.Width), int32(r.Height), 0, e.External, e.Type, 0)
		}
	case r.Target == glapi.TEXTURE_1D_ARRAY:
		gl.TexImage2D(r.Target, 0, int32(e.Internal), int32(r.Width), int32(r.ArraySize), 0, e.External, e.Type, 0)
	case r.Height > 1 || r.Target == glapi.TEXTURE_2D || r.Target == glapi.TEXTURE_RECTANGLE:
		gl.TexImage2D(r.Target, 0, int32(e.Internal), int32(r.Width), int32(r.Height), 0, e.External, e.Type, 0)
	default:
		gl.TexImage1D(r.Target, 0, int32(e.Internal), int32(r.Width), 0, e.External, e.Type, 0)
	}
}
