package renderer

import "github.com/mittorn/vrend/internal/glapi"

// ClearParams is the decoded CLEAR payload (spec.md §4.E "Clear reconcile").
type ClearParams struct {
	Buffers      uint32 // bitmask: color/depth/stencil per gallium PIPE_CLEAR_*
	Color        [4]float32
	Depth        float64
	Stencil      int32
	ScissorState bool // honor the current scissor rect instead of clearing the whole surface
}

const (
	ClearColorBit   uint32 = 1 << 0
	ClearDepthBit   uint32 = 1 << 1
	ClearStencilBit uint32 = 1 << 2
)

// Clear reconciles the framebuffer binding and scissor/color-mask state
// needed for a clear, then issues one glClearBuffer* call per plane named in
// p.Buffers (spec.md §4.E "Clear reconcile": "binds the framebuffer, honors
// the scissor state if requested, clears color/depth/stencil planes
// independently").
func (c *Context) Clear(p ClearParams, makeCurrent MakeCurrentFunc) error {
	c.finishSwitch(makeCurrent)
	sc := c.Active()
	st := &sc.State
	gl := c.GL

	c.bindDrawFramebuffer(gl, sc, st)

	if p.ScissorState {
		gl.Enable(glapi.SCISSOR_TEST)
	} else {
		gl.Disable(glapi.SCISSOR_TEST)
	}

	if p.Buffers&ClearColorBit != 0 {
		c.clearColorBuffers(gl, st, p.Color)
	}
	if p.Buffers&(ClearDepthBit|ClearStencilBit) != 0 {
		c.clearDepthStencil(gl, p)
	}
	return nil
}

// bindDrawFramebuffer binds sub-context sc's FBO and attaches every surface
// named in the current framebuffer state, mirroring the draw-reconcile
// framebuffer bind (spec.md §4.E: clear shares the draw path's framebuffer
// binding logic).
func (c *Context) bindDrawFramebuffer(gl *glapi.Context, sc *SubContext, st *PipelineState) {
	gl.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, sc.FBO)
	if !st.Framebuffer.Dirty {
		return
	}
	for i := 0; i < st.Framebuffer.NumCbufs; i++ {
		cb := st.Framebuffer.Cbufs[i]
		attachment := glapi.COLOR_ATTACHMENT0 + uint32(i)
		if cb == nil || cb.Resource == nil {
			gl.FramebufferTexture2D(glapi.DRAW_FRAMEBUFFER, attachment, glapi.TEXTURE_2D, 0, 0)
			continue
		}
		gl.FramebufferTextureLayer(glapi.DRAW_FRAMEBUFFER, attachment, cb.Resource.GLObject, int32(cb.Level), int32(cb.FirstLayer))
	}
	if zs := st.Framebuffer.ZSurf; zs != nil && zs.Resource != nil {
		attachment := uint32(glapi.DEPTH_ATTACHMENT)
		switch zs.Resource.Format.Internal {
		case glapi.DEPTH24_STENCIL8, glapi.DEPTH32F_STENCIL8:
			attachment = glapi.DEPTH_STENCIL_ATTACHMENT
		}
		gl.FramebufferTextureLayer(glapi.DRAW_FRAMEBUFFER, attachment, zs.Resource.GLObject, int32(zs.Level), int32(zs.FirstLayer))
	}
	st.Framebuffer.Dirty = false
}

func (c *Context) clearColorBuffers(gl *glapi.Context, st *PipelineState, color [4]float32) {
	words := make([]uint32, 4)
	for i, f := range color {
		words[i] = floatBits(f)
	}
	for i := 0; i < st.Framebuffer.NumCbufs; i++ {
		if st.Framebuffer.Cbufs[i] == nil {
			continue
		}
		gl.ClearBufferfv(glapi.COLOR, int32(i), uintptrOfSlice(words))
	}
}

func (c *Context) clearDepthStencil(gl *glapi.Context, p ClearParams) {
	hasDepth := p.Buffers&ClearDepthBit != 0
	hasStencil := p.Buffers&ClearStencilBit != 0
	switch {
	case hasDepth && hasStencil:
		gl.ClearBufferfi(glapi.DEPTH_STENCIL, 0, float32(p.Depth), p.Stencil)
	case hasDepth:
		depth := float32(p.Depth)
		gl.ClearBufferfv(glapi.DEPTH, 0, uintptrOfSlice([]uint32{floatBits(depth)}))
	case hasStencil:
		s := uint32(p.Stencil)
		gl.ClearBufferiv(glapi.STENCIL, 0, uintptrOfSlice([]uint32{s}))
	}
}
