// Package blitter implements the shader-based blit fallback (spec.md §4.H)
// for format/filter/sample combinations glBlitFramebuffer cannot serve:
// lazily-built GL objects on the context the embedder passes to New (this
// package creates no GL context of its own) driving a passthrough vertex
// shader plus a small family of fragment shaders keyed by source sampler
// target, multisample-ness, depth-ness, and whether the source needs an
// emulated-alpha swizzle.
package blitter

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/renderer"
)

const (
	attribPos = 0
	attribTC  = 1
)

// fsKey selects one cached fragment-shader variant (spec.md §4.H: "per-
// sampler-target lazily-built fragment shaders for color, depth, depth-MS,
// and an emulated-alpha color variant").
type fsKey struct {
	target   uint32
	ms       bool
	depth    bool
	emuAlpha bool
}

// Blitter implements renderer.ShaderBlitter. It owns its own GL objects
// (VAO, quad VBO, compiled programs) independent of any sub-context's
// shadow state, since the blit it performs is a host-internal operation,
// not a guest-visible one.
type Blitter struct {
	gl *glapi.Context

	vao uint32
	vbo uint32

	vsPassthrough uint32
	fsCache       map[fsKey]uint32
	progCache     map[fsKey]uint32
}

// New wraps an already-current GL context. The context is expected to be
// the dedicated one create_gl_context hands back for blit work (spec.md
// §4.H: "lazy-initializes a dedicated GL context"); this package does not
// itself call create_gl_context/make_current, leaving that orchestration to
// the embedder, the same division of responsibility internal/decoder uses
// for MakeCurrentFunc.
func New(gl *glapi.Context) *Blitter {
	return &Blitter{
		gl:        gl,
		fsCache:   make(map[fsKey]uint32),
		progCache: make(map[fsKey]uint32),
	}
}

func (b *Blitter) ensureGeometry() {
	if b.vao != 0 {
		return
	}
	gl := b.gl
	b.vao = gl.GenVertexArrays(1)[0]
	b.vbo = gl.GenBuffers(1)[0]

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(glapi.ARRAY_BUFFER, b.vbo)
	// 4 verts * (pos.xy + tc.xy) floats; filled in per-blit by updateQuad.
	gl.BufferData(glapi.ARRAY_BUFFER, uintptr(4*4*4), 0, glapi.STATIC_DRAW)
	gl.EnableVertexAttribArray(attribPos)
	gl.VertexAttribPointer(attribPos, 2, glapi.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(attribTC)
	gl.VertexAttribPointer(attribTC, 2, glapi.FLOAT, false, 16, 8)
}

func (b *Blitter) ensureVertexShader() uint32 {
	if b.vsPassthrough != 0 {
		return b.vsPassthrough
	}
	gl := b.gl
	vs := gl.CreateShader(glapi.VERTEX_SHADER)
	gl.ShaderSource(vs, vsPassthroughSrc)
	gl.CompileShader(vs)
	if ok, log := gl.ShaderCompileStatus(vs); !ok {
		panic(fmt.Sprintf("blitter: passthrough vertex shader failed to compile: %s", log))
	}
	b.vsPassthrough = vs
	return vs
}

const vsPassthroughSrc = `#version 140
in vec2 pos;
in vec2 tc;
out vec2 v_tc;
uniform float u_z;
void main() {
	v_tc = tc;
	gl_Position = vec4(pos, u_z, 1.0);
}
`

func fragmentSource(key fsKey) string {
	sampler := samplerTypeFor(key.target, key.ms)
	lookup := "texture(u_src, v_tc)"
	if key.target == glapi.TEXTURE_3D || key.target == glapi.TEXTURE_2D_ARRAY {
		lookup = "texture(u_src, vec3(v_tc, u_layer))"
	}
	if key.ms {
		lookup = "texelFetch(u_src, ivec2(v_tc.x * u_srcW, v_tc.y * u_srcH), gl_SampleID)"
	}

	if key.depth {
		return fmt.Sprintf(`#version 140
in vec2 v_tc;
uniform %s u_src;
uniform float u_layer;
uniform float u_srcW;
uniform float u_srcH;
void main() {
	gl_FragDepth = %s.r;
}
`, sampler, lookup)
	}

	swizzle := ".rgba"
	if key.emuAlpha {
		swizzle = ".rgb1"
	}
	return fmt.Sprintf(`#version 140
in vec2 v_tc;
out vec4 fragColor;
uniform %s u_src;
uniform float u_layer;
uniform float u_srcW;
uniform float u_srcH;
void main() {
	fragColor = %s%s;
}
`, sampler, lookup, swizzle)
}

func samplerTypeFor(target uint32, ms bool) string {
	switch {
	case ms && target == glapi.TEXTURE_2D_MULTISAMPLE_ARRAY:
		return "sampler2DMSArray"
	case ms:
		return "sampler2DMS"
	case target == glapi.TEXTURE_3D:
		return "sampler3D"
	case target == glapi.TEXTURE_2D_ARRAY:
		return "sampler2DArray"
	case target == glapi.TEXTURE_CUBE_MAP:
		return "samplerCube"
	case target == glapi.TEXTURE_1D:
		return "sampler1D"
	default:
		return "sampler2D"
	}
}

// program returns the linked (vs_passthrough, fs[key]) program, compiling
// and linking it on first use (spec.md §4.H step 2/3).
func (b *Blitter) program(key fsKey) uint32 {
	if p, ok := b.progCache[key]; ok {
		return p
	}
	gl := b.gl
	vs := b.ensureVertexShader()

	fs, ok := b.fsCache[key]
	if !ok {
		fs = gl.CreateShader(glapi.FRAGMENT_SHADER)
		gl.ShaderSource(fs, fragmentSource(key))
		gl.CompileShader(fs)
		if ok2, log := gl.ShaderCompileStatus(fs); !ok2 {
			panic(fmt.Sprintf("blitter: fragment shader %+v failed to compile: %s", key, log))
		}
		b.fsCache[key] = fs
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.BindAttribLocation(prog, attribPos, "pos")
	gl.BindAttribLocation(prog, attribTC, "tc")
	gl.LinkProgram(prog)
	if ok2, log := gl.ProgramLinkStatus(prog); !ok2 {
		panic(fmt.Sprintf("blitter: program link failed for %+v: %s", key, log))
	}
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)

	b.progCache[key] = prog
	return prog
}

// updateQuad writes the four (pos,texcoord) vertices for the destination
// box's NDC quad (spec.md §4.H step 1), interpolating the source texcoord
// linearly across the destination box.
func (b *Blitter) updateQuad(dstW, dstH uint32, box renderer.Box) {
	// NDC = pixel/dim * 2 - 1, Y flipped since framebuffer-space Y grows
	// downward while the destination box is specified in that convention.
	toNDC := func(px int32, dim uint32) float32 {
		return math32.Min(math32.Max(float32(px)/float32(dim), 0), 1)*2 - 1
	}

	x0 := toNDC(box.X, dstW)
	x1 := toNDC(box.X+int32(box.W), dstW)
	y0 := -toNDC(box.Y, dstH)
	y1 := -toNDC(box.Y+int32(box.H), dstH)

	verts := [16]float32{
		x0, y1, 0, 0,
		x1, y1, 1, 0,
		x1, y0, 1, 1,
		x0, y0, 0, 1,
	}
	b.gl.BufferData(glapi.ARRAY_BUFFER, uintptr(len(verts)*4), uintptr(unsafe.Pointer(&verts[0])), glapi.STATIC_DRAW)
}

// Blit implements renderer.ShaderBlitter (spec.md §4.H).
func (b *Blitter) Blit(c *renderer.Context, p renderer.BlitParams) error {
	gl := b.gl
	b.ensureGeometry()

	depth := c.Formats != nil && c.Formats.IsDepthStencil(p.Dst.Format.Format)
	key := fsKey{
		target:   p.Src.Target,
		ms:       p.Src.Samples > 1,
		depth:    depth,
		emuAlpha: p.Src.Format.Flags&format.FlagNeedSwizzle != 0,
	}
	prog := b.program(key)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(glapi.ARRAY_BUFFER, b.vbo)
	gl.UseProgram(prog)

	gl.ActiveTexture(glapi.TEXTURE0)
	gl.BindTexture(p.Src.Target, p.Src.GLObject)
	gl.Uniform1i(gl.GetUniformLocation(prog, "u_src"), 0)
	gl.Uniform1f(gl.GetUniformLocation(prog, "u_srcW"), float32(p.Src.Width))
	gl.Uniform1f(gl.GetUniformLocation(prog, "u_srcH"), float32(p.Src.Height))
	layerLoc := gl.GetUniformLocation(prog, "u_layer")

	fbo := c.Active().FBO
	gl.BindFramebuffer(glapi.FRAMEBUFFER, fbo)

	dstDepth := p.Dst.Depth
	if dstDepth == 0 {
		dstDepth = 1
	}

	if depth {
		gl.FramebufferTextureLayer(glapi.FRAMEBUFFER, glapi.DEPTH_ATTACHMENT, p.Dst.GLObject, int32(p.DstLevel), int32(p.DstLayer))
		gl.DepthFunc(glapi.ALWAYS)
		gl.Enable(glapi.DEPTH_TEST)
		gl.DepthMask(true)
		gl.Disable(glapi.STENCIL_TEST)
		gl.ColorMaski(0, false, false, false, false)
	} else {
		gl.FramebufferTextureLayer(glapi.FRAMEBUFFER, glapi.COLOR_ATTACHMENT0, p.Dst.GLObject, int32(p.DstLevel), int32(p.DstLayer))
		gl.Disable(glapi.DEPTH_TEST)
		gl.Disable(glapi.STENCIL_TEST)
		gl.ColorMaski(0, true, true, true, true)
	}

	gl.Viewport(0, 0, int32(p.Dst.Width), int32(p.Dst.Height))

	for z := uint32(0); z < dstDepth; z++ {
		layer := p.DstLayer + z
		srcLayer := p.SrcLayer + z
		gl.Uniform1f(layerLoc, float32(srcLayer))
		b.updateQuad(p.Dst.Width, p.Dst.Height, p.DstBox)
		if depth {
			gl.FramebufferTextureLayer(glapi.FRAMEBUFFER, glapi.DEPTH_ATTACHMENT, p.Dst.GLObject, int32(p.DstLevel), int32(layer))
		} else {
			gl.FramebufferTextureLayer(glapi.FRAMEBUFFER, glapi.COLOR_ATTACHMENT0, p.Dst.GLObject, int32(p.DstLevel), int32(layer))
		}
		gl.DrawArrays(glapi.TRIANGLE_FAN, 0, 4)
	}

	return nil
}
