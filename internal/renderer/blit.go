package renderer

import (
	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
)

// BlitParams is the decoded RESOURCE_COPY/BLIT payload (spec.md §4.E
// "Blit").
type BlitParams struct {
	Src, Dst           *Resource
	SrcLevel, DstLevel uint32
	SrcLayer, DstLayer uint32
	SrcBox, DstBox     Box
	Mask               uint32 // COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT | STENCIL_BUFFER_BIT
	Linear             bool
	ScaledBlitAvail    bool // GL_EXT_framebuffer_multisample_blit_scaled present
}

// ShaderBlitter is the fallback path for format pairs glBlitFramebuffer
// cannot serve directly (spec.md §4.H). internal/blitter implements this;
// declared here as an interface so internal/renderer doesn't import it back
// (internal/blitter depends on internal/renderer's Resource/Context types).
type ShaderBlitter interface {
	Blit(c *Context, p BlitParams) error
}

// Blit attempts glBlitFramebuffer via the sub-context's two scratch blit
// FBOs, falling back to the shader blitter when the format/filter/sample
// combination glBlitFramebuffer can't express (spec.md §4.E "Blit").
func (c *Context) Blit(p BlitParams, formats *format.Table, shader ShaderBlitter) error {
	if needsShaderBlit(p, formats) {
		if shader == nil {
			return &CmdError{Kind: ErrIllegalResource, Handle: p.Src.Handle, Detail: "blit needs shader fallback but none is wired"}
		}
		return shader.Blit(c, p)
	}

	sc := c.Active()
	gl := c.GL

	gl.BindFramebuffer(glapi.READ_FRAMEBUFFER, sc.BlitFBORead)
	bindBlitAttachment(gl, glapi.READ_FRAMEBUFFER, p.Src, p.SrcLevel, p.SrcLayer)
	gl.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, sc.BlitFBODraw)
	bindBlitAttachment(gl, glapi.DRAW_FRAMEBUFFER, p.Dst, p.DstLevel, p.DstLayer)

	filter := uint32(glapi.NEAREST)
	if p.Linear {
		filter = glapi.LINEAR
	}
	gl.BlitFramebuffer(
		p.SrcBox.X, p.SrcBox.Y, p.SrcBox.X+int32(p.SrcBox.W), p.SrcBox.Y+int32(p.SrcBox.H),
		p.DstBox.X, p.DstBox.Y, p.DstBox.X+int32(p.DstBox.W), p.DstBox.Y+int32(p.DstBox.H),
		p.Mask, filter)
	return nil
}

// needsShaderBlit implements spec.md §4.E's fallback-condition list: source
// or destination format is not renderable, depth formats differ
// non-trivially, the filter is LINEAR on a depth/stencil mask, an MS-to-
// scaled blit lacks the scaled_blit extension, or 3D depth differs between
// src/dst.
func needsShaderBlit(p BlitParams, formats *format.Table) bool {
	if formats == nil || !formats.CanRender(p.Src.Format.Format) || !formats.CanRender(p.Dst.Format.Format) {
		return true
	}
	srcDS := formats.IsDepthStencil(p.Src.Format.Format)
	dstDS := formats.IsDepthStencil(p.Dst.Format.Format)
	if srcDS != dstDS {
		return true
	}
	if srcDS && p.Src.Format.Internal != p.Dst.Format.Internal {
		return true
	}
	if p.Linear && p.Mask&(glapi.DEPTH_BUFFER_BIT|glapi.STENCIL_BUFFER_BIT) != 0 {
		return true
	}
	if p.Src.Samples > 1 && p.Dst.Samples <= 1 && (p.SrcBox.W != p.DstBox.W || p.SrcBox.H != p.DstBox.H) && !p.ScaledBlitAvail {
		return true
	}
	if p.Src.Depth != p.Dst.Depth && p.Src.Depth > 1 {
		return true
	}
	return false
}

func bindBlitAttachment(gl *glapi.Context, target uint32, res *Resource, level, layer uint32) {
	attachment := uint32(glapi.COLOR_ATTACHMENT0)
	switch res.Format.Internal {
	case glapi.DEPTH24_STENCIL8, glapi.DEPTH32F_STENCIL8:
		attachment = glapi.DEPTH_STENCIL_ATTACHMENT
	case glapi.DEPTH_COMPONENT16, glapi.DEPTH_COMPONENT24, glapi.DEPTH_COMPONENT32F:
		attachment = glapi.DEPTH_ATTACHMENT
	}
	gl.FramebufferTextureLayer(target, attachment, res.GLObject, int32(level), int32(layer))
}
