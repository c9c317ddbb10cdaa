package renderer

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/program"
	"github.com/mittorn/vrend/internal/shadertranslate"
)

// DrawParams is the decoded DRAW_VBO payload (protocol.DrawVBOPayload),
// passed in by internal/decoder's opcode handler.
type DrawParams struct {
	Start, Count       uint32
	Mode               uint32
	Indexed            bool
	IndexSize          uint32 // 1, 2, or 4 bytes; only meaningful when Indexed
	InstanceCount      uint32
	IndexBias          int32
	StartInstance      uint32
	PrimitiveRestart   bool
	RestartIndex       uint32
	MinIndex, MaxIndex uint32
}

// MakeCurrentFunc realizes the external make_current hook (spec.md §6).
type MakeCurrentFunc func(subID uint32)

// Draw reconciles every dirty shadow-state field against real GL and emits
// the draw call. Steps are numbered per spec.md §4.E "Draw reconcile".
func (c *Context) Draw(p DrawParams, makeCurrent MakeCurrentFunc) error {
	c.finishSwitch(makeCurrent) // step 1
	sc := c.Active()
	st := &sc.State
	gl := c.GL

	c.emitFrontFace(gl, st)   // step 2
	c.emitStencil(gl, st)    // step 3
	c.emitScissors(gl, st)   // step 4
	c.emitViewports(gl, st)  // step 5
	c.patchBlend(st)         // step 6

	if err := c.emitShaderAndProgram(sc); err != nil {
		return err
	} // step 7
	linked := st.CurrentProgram
	c.emitConstants(gl, st, linked)     // step 8
	c.emitSamplerViews(gl, st, linked)  // step 9
	c.emitUBOs(gl, st, linked)          // step 10
	c.emitVertexInputs(gl, sc, st)      // step 11
	c.emitWinsysAdjust(gl, st, linked)  // step 12
	c.emitClipPlanes(gl, st)            // step 13

	if p.Indexed && st.IndexBuffer != nil {
		gl.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, st.IndexBuffer.GLObject)
	} else {
		gl.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, 0)
	} // step 14

	c.emitStreamoutBegin(gl, st) // step 15 (begin half)

	if p.PrimitiveRestart {
		gl.Enable(glapi.PRIMITIVE_RESTART)
		gl.PrimitiveRestartIndex(p.RestartIndex)
	} else {
		gl.Disable(glapi.PRIMITIVE_RESTART)
	} // step 16

	c.emitDrawCall(gl, p) // step 17

	c.emitStreamoutEnd(gl, st) // step 15 (pause-after-draw half)

	return nil
}

func (c *Context) emitFrontFace(gl *glapi.Context, st *PipelineState) {
	ccw := st.Rasterizer.FrontCCW
	if st.Framebuffer.InvertedFBOContent {
		ccw = !ccw
	}
	if ccw {
		gl.FrontFace(glapi.CCW)
	} else {
		gl.FrontFace(glapi.CW)
	}
}

func (c *Context) emitStencil(gl *glapi.Context, st *PipelineState) {
	if !st.DSA.Dirty {
		return
	}
	for _, face := range [2]uint32{glapi.FRONT, glapi.BACK} {
		i := 0
		if face == glapi.BACK {
			i = 1
		}
		gl.StencilFuncSeparate(face, st.DSA.StencilFunc[i], st.StencilRef[i], st.DSA.StencilValueMask[i])
		gl.StencilOpSeparate(face, st.DSA.StencilFailOp[i], st.DSA.StencilZFail[i], st.DSA.StencilZPass[i])
		gl.StencilMaskSeparate(face, st.DSA.StencilWriteMask[i])
	}
	st.DSA.Dirty = false
}

func (c *Context) emitScissors(gl *glapi.Context, st *PipelineState) {
	mask := st.ScissorDirty
	for mask != 0 {
		i := uint(bits.TrailingZeros32(mask))
		mask &^= 1 << i
		r := st.Scissors[i]
		if i == 0 {
			gl.Scissor(r.X, r.Y, r.W, r.H)
		} else {
			gl.ScissorIndexed(uint32(i), r.X, r.Y, r.W, r.H)
		}
	}
	st.ScissorDirty = 0
}

func (c *Context) emitViewports(gl *glapi.Context, st *PipelineState) {
	mask := st.ViewportDirty
	for mask != 0 {
		i := uint(bits.TrailingZeros32(mask))
		mask &^= 1 << i
		v := st.Viewports[i]
		x := v.TranslateX - v.ScaleX
		w := v.ScaleX * 2
		y := v.TranslateY - v.ScaleY
		h := v.ScaleY * 2
		if v.ScaleY < 0 {
			y = v.TranslateY + v.ScaleY
			h = -v.ScaleY * 2
		}
		gl.ViewportIndexedf(uint32(i), x, y, w, h)
		gl.DepthRangeIndexed(uint32(i), float64(v.TranslateZ-v.ScaleZ), float64(v.TranslateZ+v.ScaleZ))
	}
	st.ViewportDirty = 0
}

// patchBlend rewrites DST_ALPHA/INV_DST_ALPHA factors to ONE/ZERO for any
// color buffer lacking an alpha channel, matching gallium semantics (spec.md
// §4.E step 6).
func (c *Context) patchBlend(st *PipelineState) {
	if !st.Blend.Dirty {
		return
	}
	for i := 0; i < st.Framebuffer.NumCbufs; i++ {
		cb := st.Framebuffer.Cbufs[i]
		if cb == nil || cb.Resource == nil {
			continue
		}
		hasAlpha := cb.Resource.Format.External == glapi.RGBA || cb.Resource.Format.External == glapi.BGRA
		if hasAlpha {
			continue
		}
		fixup := func(f uint32) uint32 {
			switch f {
			case glapi.DST_ALPHA, glapi.SRC_ALPHA_SATURATE:
				return glapi.ONE
			case glapi.ONE_MINUS_DST_ALPHA:
				return glapi.ZERO
			default:
				return f
			}
		}
		st.Blend.DstRGB[i] = fixup(st.Blend.DstRGB[i])
		st.Blend.DstA[i] = fixup(st.Blend.DstA[i])
	}
	gl := c.GL
	for i := 0; i < maxColorBufs; i++ {
		if !st.Blend.Enabled[i] {
			gl.Disablei(glapi.BLEND, uint32(i))
			continue
		}
		gl.Enablei(glapi.BLEND, uint32(i))
		gl.BlendFuncSeparatei(uint32(i), st.Blend.SrcRGB[i], st.Blend.DstRGB[i], st.Blend.SrcA[i], st.Blend.DstA[i])
		gl.BlendEquationSeparatei(uint32(i), st.Blend.EqRGB[i], st.Blend.EqA[i])
	}
	st.Blend.Dirty = false
}

func (c *Context) emitShaderAndProgram(sc *SubContext) error {
	st := &sc.State
	if !st.ShaderDirty || st.Shaders.VS == nil || st.Shaders.FS == nil {
		return nil
	}
	key := program.Key{VSID: st.Shaders.VS.ID, FSID: st.Shaders.FS.ID, DualSrc: st.Shaders.DualSrc}
	if st.Shaders.GS != nil {
		key.GSID = st.Shaders.GS.ID
	}
	shaderKey := shadertranslate.Key{
		Flatshade:       st.Rasterizer.Flatshade,
		ColorTwoSide:    st.Rasterizer.ColorTwoSide,
		ClipPlaneEnable: st.ClipPlaneEnable,
		GSPresent:       st.Shaders.GS != nil,
	}
	cfg := shadertranslate.Config{GLSLVersion: 330, UseCoreProfile: true}
	linked, err := sc.Programs.FindOrLink(key, st.Shaders.VS, st.Shaders.FS, st.Shaders.GS, shaderKey, cfg)
	if err != nil {
		return err
	}
	c.GL.UseProgram(linked.GLProgram)
	st.CurrentProgram = linked
	st.ShaderDirty = false
	return nil
}

// stageUniformsFor maps a PipelineState stage key ("vs"/"fs"/"gs") to the
// program package's ShaderStage enum values used to index Linked.Stage.
func stageUniformsFor(linked *program.Linked, stage string) (program.StageUniforms, bool) {
	if linked == nil {
		return program.StageUniforms{}, false
	}
	switch stage {
	case "vs":
		u, ok := linked.Stage[program.StageVS]
		return u, ok
	case "fs":
		u, ok := linked.Stage[program.StageFS]
		return u, ok
	case "gs":
		u, ok := linked.Stage[program.StageGS]
		return u, ok
	default:
		return program.StageUniforms{}, false
	}
}

func (c *Context) emitConstants(gl *glapi.Context, st *PipelineState, linked *program.Linked) {
	for stage, dirty := range st.ConstDirty {
		if !dirty {
			continue
		}
		su, ok := stageUniformsFor(linked, stage)
		if !ok {
			st.ConstDirty[stage] = false
			continue
		}
		words := st.Constants[stage]
		nVec4 := len(words) / 4
		for i := 0; i < nVec4 && i < len(su.ConstLocations); i++ {
			loc := su.ConstLocations[i]
			if loc < 0 {
				continue
			}
			gl.Uniform4uiv(loc, 1, uintptrOfSlice(words[i*4:i*4+4]))
		}
		st.ConstDirty[stage] = false
	}
}

func (c *Context) emitSamplerViews(gl *glapi.Context, st *PipelineState, linked *program.Linked) {
	unit := uint32(0)
	for stage, views := range st.SamplerViews {
		su, _ := stageUniformsFor(linked, stage)
		for i, v := range views {
			if v == nil {
				continue
			}
			gl.ActiveTexture(glapi.TEXTURE0 + unit)
			gl.BindTexture(v.GLTarget, v.Resource.GLObject)
			if v.Swizzle != [4]uint32{} {
				gl.TexParameteri(v.GLTarget, glapi.TEXTURE_SWIZZLE_R, int32(v.Swizzle[0]))
				gl.TexParameteri(v.GLTarget, glapi.TEXTURE_SWIZZLE_G, int32(v.Swizzle[1]))
				gl.TexParameteri(v.GLTarget, glapi.TEXTURE_SWIZZLE_B, int32(v.Swizzle[2]))
				gl.TexParameteri(v.GLTarget, glapi.TEXTURE_SWIZZLE_A, int32(v.Swizzle[3]))
			}
			states := st.SamplerStates[stage]
			if i < len(states) && states[i] != nil {
				gl.BindSampler(unit, states[i].GLSampler)
			}
			for _, samp := range su.Samplers {
				if samp.Index == uint32(i) && samp.Location >= 0 {
					gl.Uniform1i(samp.Location, int32(unit))
				}
			}
			unit++
		}
	}
	for stage := range st.SamplerStateDirty {
		st.SamplerStateDirty[stage] = false
	}
}

func (c *Context) emitUBOs(gl *glapi.Context, st *PipelineState, linked *program.Linked) {
	binding := uint32(0)
	for stage, resources := range st.UBOs {
		su, _ := stageUniformsFor(linked, stage)
		for i, r := range resources {
			if r == nil {
				continue
			}
			gl.BindBufferBase(glapi.UNIFORM_BUFFER, binding, r.GLObject)
			if linked != nil && i < len(su.UBOBlockIndices) {
				gl.UniformBlockBinding(linked.GLProgram, su.UBOBlockIndices[i], binding)
			}
			binding++
		}
	}
}

func (c *Context) emitVertexInputs(gl *glapi.Context, sc *SubContext, st *PipelineState) {
	gl.BindVertexArray(sc.VAO)
	mask := st.VBODirty
	for mask != 0 {
		i := uint(bits.TrailingZeros32(mask))
		mask &^= 1 << i
		b := st.VBOs[i]
		if b.Bound && b.Resource != nil {
			gl.BindVertexBuffer(uint32(i), b.Resource.GLObject, uintptr(b.Offset), int32(b.Stride))
		}
	}
	st.VBODirty = 0
	for i, ve := range st.VertexElements {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), ve.GLSize, ve.GLType, ve.Normalized, 0, uintptr(ve.SrcOffset))
		if ve.InstanceDivisor != 0 {
			gl.VertexAttribDivisor(uint32(i), ve.InstanceDivisor)
		}
	}
}

// emitWinsysAdjust uploads the vertex shader's y-flip sign, needed because
// the epilogue's gl_Position.y negation must invert again when rendering
// into an already-inverted FBO (spec.md §4.E step 12, §4.C epilogue note).
func (c *Context) emitWinsysAdjust(gl *glapi.Context, st *PipelineState, linked *program.Linked) {
	if linked == nil {
		return
	}
	loc := gl.GetUniformLocation(linked.GLProgram, "vs_winsys_adjust_y")
	if loc < 0 {
		return
	}
	sign := float32(1.0)
	if st.Framebuffer.InvertedFBOContent {
		sign = -1.0
	}
	gl.Uniform1f(loc, sign)
}

func (c *Context) emitClipPlanes(gl *glapi.Context, st *PipelineState) {
	if st.ClipPlaneEnable == 0 || st.CurrentProgram == nil {
		return
	}
	loc := gl.GetUniformLocation(st.CurrentProgram.GLProgram, "vs_clipp")
	if loc < 0 {
		return
	}
	gl.Uniform4uiv(loc, int32(8), uintptrOfSlice(flattenClipPlanes(st.ClipPlanes)))
}

func flattenClipPlanes(planes [8][4]float32) []uint32 {
	out := make([]uint32, 0, 32)
	for _, p := range planes {
		for _, f := range p {
			out = append(out, floatBits(f))
		}
	}
	return out
}

func (c *Context) emitStreamoutBegin(gl *glapi.Context, st *PipelineState) {
	so := st.CurrentStreamout
	if so == nil {
		return
	}
	switch so.State {
	case StreamoutStartedNeedBegin:
		gl.BeginTransformFeedback(glapi.POINTS)
		so.State = StreamoutStarted
	case StreamoutPaused:
		gl.ResumeTransformFeedback()
		so.State = StreamoutStarted
	}
}

func (c *Context) emitStreamoutEnd(gl *glapi.Context, st *PipelineState) {
	so := st.CurrentStreamout
	if so == nil || so.State != StreamoutStarted {
		return
	}
	gl.PauseTransformFeedback()
	so.State = StreamoutPaused
}

func (c *Context) emitDrawCall(gl *glapi.Context, p DrawParams) {
	switch {
	case !p.Indexed && p.InstanceCount <= 1:
		gl.DrawArrays(p.Mode, int32(p.Start), int32(p.Count))
	case !p.Indexed && p.StartInstance == 0:
		gl.DrawArraysInstanced(p.Mode, int32(p.Start), int32(p.Count), int32(p.InstanceCount))
	case !p.Indexed:
		gl.DrawArraysInstancedBaseInstance(p.Mode, int32(p.Start), int32(p.Count), int32(p.InstanceCount), p.StartInstance)
	case p.Indexed && p.InstanceCount <= 1 && p.IndexBias == 0:
		gl.DrawRangeElements(p.Mode, p.MinIndex, p.MaxIndex, int32(p.Count), p.indexSizeGLType(), indexByteOffset(p.Start, p.IndexSize))
	case p.Indexed && p.InstanceCount <= 1:
		gl.DrawElementsBaseVertex(p.Mode, int32(p.Count), p.indexSizeGLType(), indexByteOffset(p.Start, p.IndexSize), p.IndexBias)
	case p.Indexed && p.IndexBias == 0:
		gl.DrawElementsInstanced(p.Mode, int32(p.Count), p.indexSizeGLType(), indexByteOffset(p.Start, p.IndexSize), int32(p.InstanceCount))
	default:
		gl.DrawElementsInstancedBaseVertex(p.Mode, int32(p.Count), p.indexSizeGLType(), indexByteOffset(p.Start, p.IndexSize), int32(p.InstanceCount), p.IndexBias)
	}
}

// indexSizeGLType maps the bound index buffer's element size to the GL type
// enum DrawElements expects; defaults to UNSIGNED_SHORT (2 bytes), virgl's
// most common case, when IndexSize is unset.
func (p DrawParams) indexSizeGLType() uint32 {
	switch p.IndexSize {
	case 1:
		return glapi.UNSIGNED_BYTE
	case 4:
		return glapi.UNSIGNED_INT
	default:
		return glapi.UNSIGNED_SHORT
	}
}

func indexByteOffset(start, indexSize uint32) uintptr {
	if indexSize == 0 {
		indexSize = 2
	}
	return uintptr(start * indexSize)
}

// uintptrOfSlice exposes the address of a uint32 slice's backing array as a
// uintptr for passing through glapi's kPtr call arguments (the same pattern
// internal/glapi's own helpers use for caller-owned scratch buffers).
func uintptrOfSlice(words []uint32) uintptr {
	if len(words) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&words[0]))
}

func floatBits(f float32) uint32 { return math.Float32bits(f) }
