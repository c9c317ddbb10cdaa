// Package decoder implements the command-buffer decode loop described in
// spec.md §4.F: a header-word loop, opcode dispatch, and the validation
// layer that latches a recoverable error on the context and keeps draining
// the rest of the buffer (spec.md: "further commands in the same buffer
// continue to be processed").
package decoder

import (
	"unsafe"

	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/objtbl"
	"github.com/mittorn/vrend/internal/program"
	"github.com/mittorn/vrend/internal/renderer"
	"github.com/mittorn/vrend/internal/tgsi"
	"github.com/mittorn/vrend/internal/vlog"
	"github.com/mittorn/vrend/protocol"
)

// Decoder drives one Context's command stream. It owns no GL state of its
// own; every GL effect lands through the Context and its active
// sub-context's object/resource tables (spec.md §4.F/§4.G).
type Decoder struct {
	Ctx         *renderer.Context
	MakeCurrent renderer.MakeCurrentFunc
	Waits       *renderer.WaitList
	Blitter     renderer.ShaderBlitter // nil until internal/blitter is wired by the embedder
}

// Decode runs the header-decode loop over one fully-received command buffer,
// dispatching each command to its handler and latching ErrIllegalCommandBuffer
// on the context if the buffer is truncated mid-command (spec.md §4.F).
func (d *Decoder) Decode(words []uint32) {
	pos := 0
	for pos < len(words) {
		opcode, subType, length := protocol.DecodeHeader(words[pos])
		body := pos + 1
		if body+int(length) > len(words) {
			d.Ctx.Latch.Set(renderer.ErrIllegalCommandBuffer)
			vlog.Logger().Error("truncated command", "opcode", opcode, "context", d.Ctx.ID)
			return
		}
		payload := words[body : body+int(length)]
		if err := d.dispatchSafe(opcode, subType, payload); err != nil {
			if ce, ok := err.(*renderer.CmdError); ok {
				d.Ctx.Latch.Set(ce.Kind)
			} else {
				d.Ctx.Latch.Set(renderer.ErrIllegalHandle)
			}
			vlog.Logger().Error("command failed", "opcode", opcode, "context", d.Ctx.ID, "err", err)
		}
		pos = body + int(length)
	}
}

// dispatchSafe recovers a malformed payload that indexes past its own
// length (a short-word command naming a longer sub_type than it carries)
// into an ordinary illegal-command-buffer error instead of crashing the
// host process on untrusted guest input (spec.md §4.F: validation failures
// latch and the decoder keeps running).
func (d *Decoder) dispatchSafe(opcode protocol.Opcode, subType uint8, p []uint32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &renderer.CmdError{Kind: renderer.ErrIllegalCommandBuffer, Detail: "malformed payload"}
		}
	}()
	return d.dispatch(opcode, subType, p)
}

func (d *Decoder) dispatch(opcode protocol.Opcode, subType uint8, p []uint32) error {
	sc := d.Ctx.Active()
	switch opcode {
	case protocol.OpCreateObject:
		return d.createObject(sc, protocol.ObjectSubType(subType), p)
	case protocol.OpBindObject:
		return d.bindObject(sc, protocol.ObjectSubType(subType), p)
	case protocol.OpDestroyObject:
		return sc.Objects.Remove(p[0])
	case protocol.OpSetStencilRef:
		sc.State.StencilRef = [2]int32{int32(p[0]), int32(p[1])}
		return nil
	case protocol.OpSetBlendColor:
		d.Ctx.GL.BlendColor(protocol.DecodeFloat(p[0]), protocol.DecodeFloat(p[1]), protocol.DecodeFloat(p[2]), protocol.DecodeFloat(p[3]))
		return nil
	case protocol.OpSetScissorState:
		idx := p[0]
		sc.State.Scissors[idx] = renderer.Rect{X: int32(p[1]), Y: int32(p[2]), W: int32(p[3]), H: int32(p[4])}
		sc.State.ScissorDirty |= 1 << idx
		return nil
	case protocol.OpSetViewportState:
		idx := p[0]
		sc.State.Viewports[idx] = renderer.Viewport{
			ScaleX: protocol.DecodeFloat(p[1]), ScaleY: protocol.DecodeFloat(p[2]), ScaleZ: protocol.DecodeFloat(p[3]),
			TranslateX: protocol.DecodeFloat(p[4]), TranslateY: protocol.DecodeFloat(p[5]), TranslateZ: protocol.DecodeFloat(p[6]),
		}
		sc.State.ViewportDirty |= 1 << idx
		return nil
	case protocol.OpSetSampleMask:
		sc.State.SampleMask = p[0]
		return nil
	case protocol.OpSetPolygonStipple:
		for i := 0; i < 32 && i < len(p); i++ {
			sc.State.PolygonStipple[i] = p[i]
		}
		return nil
	case protocol.OpSetClipState:
		sc.State.ClipPlaneEnable = uint8(p[0])
		for i := 0; i < 8; i++ {
			for c := 0; c < 4; c++ {
				idx := 1 + i*4 + c
				if idx < len(p) {
					sc.State.ClipPlanes[i][c] = protocol.DecodeFloat(p[idx])
				}
			}
		}
		return nil
	case protocol.OpDrawVBO:
		dv := protocol.DecodeDrawVBO(p)
		return d.Ctx.Draw(renderer.DrawParams{
			Start: dv.Start, Count: dv.Count, Mode: dv.Mode, Indexed: dv.Indexed,
			InstanceCount: dv.InstanceCount, IndexBias: dv.IndexBias, StartInstance: dv.StartInstance,
			PrimitiveRestart: dv.PrimitiveRestart, RestartIndex: dv.RestartIndex,
			MinIndex: dv.MinIndex, MaxIndex: dv.MaxIndex, IndexSize: sc.State.IndexSize,
		}, d.MakeCurrent)
	case protocol.OpClear:
		cp := renderer.ClearParams{
			Buffers: p[0],
			Color:   [4]float32{protocol.DecodeFloat(p[1]), protocol.DecodeFloat(p[2]), protocol.DecodeFloat(p[3]), protocol.DecodeFloat(p[4])},
			Depth:   float64(protocol.DecodeFloat(p[5])),
			Stencil: int32(p[6]),
		}
		if len(p) > 7 {
			cp.ScissorState = p[7] != 0
		}
		return d.Ctx.Clear(cp, d.MakeCurrent)
	case protocol.OpBeginQuery:
		return d.withQuery(sc, p[0], d.Ctx.BeginQuery)
	case protocol.OpEndQuery:
		return d.withQuery(sc, p[0], d.Ctx.EndQuery)
	case protocol.OpGetQueryResult:
		return d.getQueryResult(sc, p)
	case protocol.OpSetStreamoutTargets:
		return d.setStreamoutTargets(sc, p)
	case protocol.OpSetRenderCondition:
		return d.setRenderCondition(sc, p)
	case protocol.OpSetIndexBuffer:
		return d.setIndexBuffer(sc, p)
	case protocol.OpSetSubCtx:
		d.Ctx.SetSubContext(int(p[0]))
		return nil
	case protocol.OpCreateSubCtx:
		d.Ctx.CreateSubContext(p[0])
		return nil
	case protocol.OpDestroySubCtx:
		d.Ctx.DestroySubContext(int(p[0]))
		return nil
	case protocol.OpResourceCopyRegion:
		return d.resourceCopyRegion(p)
	case protocol.OpBlit:
		return d.blit(p)
	case protocol.OpSetVertexBuffers:
		return d.setVertexBuffers(sc, p)
	case protocol.OpSetConstantBuffer:
		return d.setConstantBuffer(sc, p)
	case protocol.OpSetUniformBuffer:
		return d.setUniformBuffer(sc, p)
	case protocol.OpSetFramebufferState:
		return d.setFramebufferState(sc, p)
	case protocol.OpSetSamplerViews:
		return d.setSamplerViews(sc, p)
	case protocol.OpBindSamplerStates:
		return d.bindSamplerStates(sc, p)
	case protocol.OpResourceInlineWrite:
		return d.resourceInlineWrite(p)
	case protocol.OpSetQueryState:
		sc.State.QueryState = p[0]&1 != 0
		return nil
	default:
		return nil
	}
}

// shaderStageName maps a wire shader-stage index (PIPE_SHADER_VERTEX=0,
// PIPE_SHADER_FRAGMENT=1, PIPE_SHADER_GEOMETRY=2) to the PipelineState stage
// key the draw reconcile indexes its per-stage maps with (draw.go's
// stageUniformsFor). Unsupported stages (tessellation, compute) return "",
// which every caller here treats as a no-op.
func shaderStageName(shader uint32) string {
	switch shader {
	case 0:
		return "vs"
	case 1:
		return "fs"
	case 2:
		return "gs"
	default:
		return ""
	}
}

// setVertexBuffers wires SET_VERTEX_BUFFERS. Payload is num_vbo groups of
// [stride, buffer_offset, res_handle] (grend_set_single_vbo's parameter
// order). A zero res_handle clears that slot.
func (d *Decoder) setVertexBuffers(sc *renderer.SubContext, p []uint32) error {
	numVBO := len(p) / 3
	for i := 0; i < numVBO && i < len(sc.State.VBOs); i++ {
		base := i * 3
		stride, offset, resHandle := p[base], p[base+1], p[base+2]
		if resHandle == 0 {
			sc.State.VBOs[i] = renderer.VBOBinding{}
			sc.State.VBODirty |= 1 << uint(i)
			continue
		}
		res, ok := d.Ctx.LookupAttached(resHandle)
		if !ok {
			return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: resHandle}
		}
		sc.State.VBOs[i] = renderer.VBOBinding{Resource: res, Offset: offset, Stride: stride, Bound: true}
		sc.State.VBODirty |= 1 << uint(i)
	}
	return nil
}

// setConstantBuffer wires SET_CONSTANT_BUFFER. Payload: [shader, index, data...]
// (grend_set_constants). Only constant buffer index 0 (the default uniform
// array the shadow state shadows) is tracked; extra indexed constant buffers
// are a gallium feature this shadow state doesn't model and are silently
// dropped, matching the scope PipelineState.Constants already commits to.
func (d *Decoder) setConstantBuffer(sc *renderer.SubContext, p []uint32) error {
	stage := shaderStageName(p[0])
	if stage == "" || p[1] != 0 {
		return nil
	}
	sc.State.Constants[stage] = append([]uint32(nil), p[2:]...)
	sc.State.ConstDirty[stage] = true
	return nil
}

// setUniformBuffer wires SET_UNIFORM_BUFFER. Payload: [shader, index,
// res_handle, offset, size]. offset and size are not read: the whole buffer
// is bound, since emitUBOs (draw.go) issues glBindBufferBase, not
// glBindBufferRange.
func (d *Decoder) setUniformBuffer(sc *renderer.SubContext, p []uint32) error {
	stage := shaderStageName(p[0])
	if stage == "" {
		return nil
	}
	index, resHandle := p[1], p[2]
	ubos := sc.State.UBOs[stage]
	if resHandle == 0 {
		sc.State.UBOs[stage] = setResourceAt(ubos, index, nil)
		return nil
	}
	res, ok := d.Ctx.LookupAttached(resHandle)
	if !ok {
		return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: resHandle}
	}
	sc.State.UBOs[stage] = setResourceAt(ubos, index, res)
	return nil
}

// setFramebufferState wires SET_FRAMEBUFFER_STATE. Payload: [nr_cbufs,
// zsurf_handle, surf_handle x nr_cbufs] (grend_set_framebuffer_state).
func (d *Decoder) setFramebufferState(sc *renderer.SubContext, p []uint32) error {
	nrCbufs, zsurfHandle := p[0], p[1]
	fb := &sc.State.Framebuffer
	for i := range fb.Cbufs {
		fb.Cbufs[i] = nil
	}
	fb.NumCbufs = int(nrCbufs)
	for i := uint32(0); i < nrCbufs && int(i) < len(fb.Cbufs); i++ {
		handle := p[2+i]
		if handle == 0 {
			continue
		}
		v, err := sc.Objects.Lookup(handle, objtbl.TypeSurface)
		if err != nil {
			return &renderer.CmdError{Kind: renderer.ErrIllegalSurface, Handle: handle}
		}
		fb.Cbufs[i] = v.(*renderer.Surface)
	}
	if zsurfHandle == 0 {
		fb.ZSurf = nil
	} else {
		v, err := sc.Objects.Lookup(zsurfHandle, objtbl.TypeSurface)
		if err != nil {
			return &renderer.CmdError{Kind: renderer.ErrIllegalSurface, Handle: zsurfHandle}
		}
		fb.ZSurf = v.(*renderer.Surface)
	}
	fb.Dirty = true
	return nil
}

// setSamplerViews wires SET_SAMPLER_VIEWS. Payload: [shader, start_slot,
// handle...] (grend_set_single_sampler_view / grend_set_num_sampler_views).
func (d *Decoder) setSamplerViews(sc *renderer.SubContext, p []uint32) error {
	stage := shaderStageName(p[0])
	if stage == "" {
		return nil
	}
	startSlot := p[1]
	views := sc.State.SamplerViews[stage]
	for i, handle := range p[2:] {
		idx := startSlot + uint32(i)
		if handle == 0 {
			views = setSamplerViewAt(views, idx, nil)
			continue
		}
		v, err := sc.Objects.Lookup(handle, objtbl.TypeSamplerView)
		if err != nil {
			return &renderer.CmdError{Kind: renderer.ErrIllegalHandle, Handle: handle}
		}
		views = setSamplerViewAt(views, idx, v.(*renderer.SamplerView))
	}
	sc.State.SamplerViews[stage] = views
	return nil
}

// bindSamplerStates wires BIND_SAMPLER_STATES. Payload: [shader, start_slot,
// handle...] (grend_bind_sampler_states).
func (d *Decoder) bindSamplerStates(sc *renderer.SubContext, p []uint32) error {
	stage := shaderStageName(p[0])
	if stage == "" {
		return nil
	}
	startSlot := p[1]
	states := sc.State.SamplerStates[stage]
	for i, handle := range p[2:] {
		idx := startSlot + uint32(i)
		if handle == 0 {
			states = setSamplerStateAt(states, idx, nil)
			continue
		}
		v, err := sc.Objects.Lookup(handle, objtbl.TypeSamplerState)
		if err != nil {
			return &renderer.CmdError{Kind: renderer.ErrIllegalHandle, Handle: handle}
		}
		states = setSamplerStateAt(states, idx, v.(*renderer.SamplerState))
	}
	sc.State.SamplerStates[stage] = states
	sc.State.SamplerStateDirty[stage] = true
	return nil
}

// resourceInlineWrite wires RESOURCE_INLINE_WRITE. Payload: [res_handle,
// level, usage, stride, layer_stride, box.x, box.y, box.z, box.w, box.h,
// box.d, data...] (grend_transfer_inline_write). The inline data words are
// wrapped as a single synthetic Iovec and handed to the same TransferWrite
// path a guest-memory transfer would use.
func (d *Decoder) resourceInlineWrite(p []uint32) error {
	resHandle := p[0]
	res, ok := d.Ctx.LookupAttached(resHandle)
	if !ok {
		return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: resHandle}
	}
	data := p[11:]
	if len(data) == 0 {
		return nil
	}
	iov := renderer.Iovec{Base: uintptr(unsafe.Pointer(&data[0])), Len: uint32(len(data)) * 4}
	return d.Ctx.TransferWrite(res, renderer.TransferParams{
		Level:       p[1],
		Stride:      p[3],
		LayerStride: p[4],
		Box: renderer.Box{
			X: int32(p[5]), Y: int32(p[6]), Z: int32(p[7]),
			W: p[8], H: p[9], D: p[10],
		},
		Iovecs: []renderer.Iovec{iov},
	})
}

func setResourceAt(slice []*renderer.Resource, idx uint32, v *renderer.Resource) []*renderer.Resource {
	for uint32(len(slice)) <= idx {
		slice = append(slice, nil)
	}
	slice[idx] = v
	return slice
}

func setSamplerViewAt(slice []*renderer.SamplerView, idx uint32, v *renderer.SamplerView) []*renderer.SamplerView {
	for uint32(len(slice)) <= idx {
		slice = append(slice, nil)
	}
	slice[idx] = v
	return slice
}

func setSamplerStateAt(slice []*renderer.SamplerState, idx uint32, v *renderer.SamplerState) []*renderer.SamplerState {
	for uint32(len(slice)) <= idx {
		slice = append(slice, nil)
	}
	slice[idx] = v
	return slice
}

func floatsAddr(f []float32) uintptr {
	if len(f) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&f[0]))
}

// setIndexBuffer wires SET_INDEX_BUFFER: handle 0 clears the binding, index
// size in bytes otherwise selects the draw-time GL index type (spec.md §3
// "vbos[32]" shadow field family covers the index buffer the same way).
// Payload: [handle, indexSizeBytes].
func (d *Decoder) setIndexBuffer(sc *renderer.SubContext, p []uint32) error {
	handle, size := p[0], p[1]
	if handle == 0 {
		sc.State.IndexBuffer = nil
		sc.State.IndexSize = 0
		return nil
	}
	res, ok := d.Ctx.LookupAttached(handle)
	if !ok {
		return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: handle}
	}
	sc.State.IndexBuffer = res
	sc.State.IndexSize = size
	return nil
}

// resourceCopyRegion decodes RESOURCE_COPY_REGION. Payload: [srcHandle,
// dstHandle, srcLevel, dstLevel, srcX, srcY, srcZ, dstX, dstY, dstZ, w, h, d].
func (d *Decoder) resourceCopyRegion(p []uint32) error {
	src, dst, err := d.lookupPair(p[0], p[1])
	if err != nil {
		return err
	}
	return d.Ctx.CopyRegion(renderer.CopyRegionParams{
		Src: src, Dst: dst, SrcLevel: p[2], DstLevel: p[3],
		SrcX: int32(p[4]), SrcY: int32(p[5]), SrcZ: int32(p[6]),
		DstX: int32(p[7]), DstY: int32(p[8]), DstZ: int32(p[9]),
		Width: p[10], Height: p[11], Depth: p[12],
	})
}

// blit decodes BLIT. Payload: [srcHandle, dstHandle, srcLevel, dstLevel,
// srcLayer, dstLayer, srcX,srcY,srcZ,srcW,srcH,srcD, dstX,dstY,dstZ,dstW,dstH,dstD,
// mask, linear(0/1)].
func (d *Decoder) blit(p []uint32) error {
	src, dst, err := d.lookupPair(p[0], p[1])
	if err != nil {
		return err
	}
	return d.Ctx.Blit(renderer.BlitParams{
		Src: src, Dst: dst, SrcLevel: p[2], DstLevel: p[3], SrcLayer: p[4], DstLayer: p[5],
		SrcBox: renderer.Box{X: int32(p[6]), Y: int32(p[7]), Z: int32(p[8]), W: p[9], H: p[10], D: p[11]},
		DstBox: renderer.Box{X: int32(p[12]), Y: int32(p[13]), Z: int32(p[14]), W: p[15], H: p[16], D: p[17]},
		Mask:   p[18],
		Linear: p[19] != 0,
	}, d.Ctx.Formats, d.Blitter)
}

func (d *Decoder) lookupPair(srcHandle, dstHandle uint32) (*renderer.Resource, *renderer.Resource, error) {
	src, ok := d.Ctx.LookupAttached(srcHandle)
	if !ok {
		return nil, nil, &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: srcHandle}
	}
	dst, ok := d.Ctx.LookupAttached(dstHandle)
	if !ok {
		return nil, nil, &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: dstHandle}
	}
	return src, dst, nil
}

func (d *Decoder) withQuery(sc *renderer.SubContext, handle uint32, fn func(*renderer.Query)) error {
	v, err := sc.Objects.Lookup(handle, objtbl.TypeQuery)
	if err != nil {
		return &renderer.CmdError{Kind: renderer.ErrIllegalHandle, Handle: handle}
	}
	fn(v.(*renderer.Query))
	return nil
}

func (d *Decoder) getQueryResult(sc *renderer.SubContext, p []uint32) error {
	qh, resh := p[0], p[1]
	v, err := sc.Objects.Lookup(qh, objtbl.TypeQuery)
	if err != nil {
		return &renderer.CmdError{Kind: renderer.ErrIllegalHandle, Handle: qh}
	}
	q := v.(*renderer.Query)
	if !d.Ctx.GetQueryResult(q) {
		d.Waits.Add(q)
		return nil
	}
	res, ok := d.Ctx.LookupAttached(resh)
	if !ok {
		return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: resh}
	}
	d.Ctx.WriteQueryResult(res, q)
	return nil
}

func (d *Decoder) setStreamoutTargets(sc *renderer.SubContext, p []uint32) error {
	num := p[0]
	targets := make([]*renderer.StreamoutTarget, 0, num)
	for i := uint32(0); i < num; i++ {
		base := 1 + i*3
		handle := p[base]
		res, ok := d.Ctx.LookupAttached(handle)
		if !ok {
			return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: handle}
		}
		targets = append(targets, &renderer.StreamoutTarget{
			Handle: handle, Resource: res,
			Offset: uintptr(p[base+1]), Size: uintptr(p[base+2]),
		})
	}
	d.Ctx.SetStreamoutTargets(sc, targets)
	return nil
}

func (d *Decoder) setRenderCondition(sc *renderer.SubContext, p []uint32) error {
	handle, mode := p[0], renderer.RenderConditionMode(p[1])
	if handle == 0 {
		d.Ctx.SetRenderCondition(nil, mode)
		return nil
	}
	v, err := sc.Objects.Lookup(handle, objtbl.TypeQuery)
	if err != nil {
		return &renderer.CmdError{Kind: renderer.ErrIllegalHandle, Handle: handle}
	}
	d.Ctx.SetRenderCondition(v.(*renderer.Query), mode)
	return nil
}

// createObject dispatches CREATE_OBJECT by sub_type. Blend/DSA/rasterizer
// are fixed-shape numeric payloads; shader objects decode their TGSI token
// stream via internal/tgsi and wrap it in a program.Selector; query and
// streamout-target objects are lightweight handles the other opcodes above
// look up later.
func (d *Decoder) createObject(sc *renderer.SubContext, sub protocol.ObjectSubType, p []uint32) error {
	handle := p[0]
	body := p[1:]
	switch sub {
	case protocol.ObjBlend:
		return sc.Objects.Insert(handle, objtbl.TypeBlend, decodeBlend(body), nil)
	case protocol.ObjDSA:
		return sc.Objects.Insert(handle, objtbl.TypeDSA, decodeDSA(body), nil)
	case protocol.ObjRasterizer:
		return sc.Objects.Insert(handle, objtbl.TypeRasterizer, decodeRasterizer(body), nil)
	case protocol.ObjShaderVS, protocol.ObjShaderFS, protocol.ObjShaderGS:
		prog, err := tgsi.Decode(body)
		if err != nil {
			return &renderer.CmdError{Kind: renderer.ErrIllegalShader, Handle: handle, Detail: err.Error()}
		}
		return sc.Objects.Insert(handle, objtbl.TypeShaderSelector, program.NewSelector(handle, prog), nil)
	case protocol.ObjVertexElements:
		return sc.Objects.Insert(handle, objtbl.TypeVertexElements, decodeVertexElements(body, d.Ctx.Formats), nil)
	case protocol.ObjSurface:
		sb := decodeSurfaceBody(body)
		res, ok := d.Ctx.LookupAttached(sb.ResHandle)
		if !ok {
			return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: sb.ResHandle}
		}
		res.Ref()
		surf := &renderer.Surface{
			Handle:     handle,
			Resource:   res,
			Level:      sb.Val0,
			FirstLayer: sb.Val1 & 0xffff,
			LastLayer:  sb.Val1 & 0xffff,
		}
		return sc.Objects.Insert(handle, objtbl.TypeSurface, surf, func(any) { d.Ctx.DropResourceRef(res) })
	case protocol.ObjSamplerView:
		svb := decodeSamplerViewBody(body)
		res, ok := d.Ctx.LookupAttached(svb.ResHandle)
		if !ok {
			return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: svb.ResHandle}
		}
		res.Ref()
		sv := &renderer.SamplerView{
			Handle:     handle,
			Resource:   res,
			Target:     res.Target,
			GLTarget:   res.Target,
			FirstLayer: svb.Val0 & 0xffff,
			LastLayer:  (svb.Val0 >> 16) & 0xffff,
			FirstLevel: svb.Val1 & 0xff,
			LastLevel:  (svb.Val1 >> 8) & 0xff,
			Swizzle:    decodeSamplerViewSwizzle(svb.SwizzlePacked),
		}
		return sc.Objects.Insert(handle, objtbl.TypeSamplerView, sv, func(any) { d.Ctx.DropResourceRef(res) })
	case protocol.ObjSamplerState:
		ss := decodeSamplerState(body)
		ss.Handle = handle
		gl := d.Ctx.GL
		samp := gl.GenSamplers(1)[0]
		ss.GLSampler = samp
		gl.SamplerParameteri(samp, glapi.TEXTURE_WRAP_S, int32(ss.WrapS))
		gl.SamplerParameteri(samp, glapi.TEXTURE_WRAP_T, int32(ss.WrapT))
		gl.SamplerParameteri(samp, glapi.TEXTURE_WRAP_R, int32(ss.WrapR))
		gl.SamplerParameteri(samp, glapi.TEXTURE_MIN_FILTER, int32(ss.MinFilter))
		gl.SamplerParameteri(samp, glapi.TEXTURE_MAG_FILTER, int32(ss.MagFilter))
		gl.SamplerParameterf(samp, glapi.TEXTURE_LOD_BIAS, ss.LODBias)
		gl.SamplerParameterf(samp, glapi.TEXTURE_MIN_LOD, ss.MinLOD)
		gl.SamplerParameterf(samp, glapi.TEXTURE_MAX_LOD, ss.MaxLOD)
		if ss.CompareMode != 0 {
			gl.SamplerParameteri(samp, glapi.TEXTURE_COMPARE_MODE, glapi.COMPARE_REF_TO_TEXTURE)
		} else {
			gl.SamplerParameteri(samp, glapi.TEXTURE_COMPARE_MODE, glapi.NONE)
		}
		gl.SamplerParameteri(samp, glapi.TEXTURE_COMPARE_FUNC, int32(ss.CompareFunc))
		gl.SamplerParameterfv(samp, glapi.TEXTURE_BORDER_COLOR, floatsAddr(ss.BorderColor[:]))
		return sc.Objects.Insert(handle, objtbl.TypeSamplerState, ss, func(any) { gl.DeleteSamplers([]uint32{samp}) })
	case protocol.ObjQuery:
		target := body[0]
		return sc.Objects.Insert(handle, objtbl.TypeQuery, &renderer.Query{Handle: handle, Target: glTargetForQuery(target)}, func(v any) {
			q := v.(*renderer.Query)
			if q.GLQuery != 0 {
				d.Ctx.GL.DeleteQueries([]uint32{q.GLQuery})
			}
		})
	case protocol.ObjStreamoutTarget:
		resHandle, offset, size := body[0], body[1], body[2]
		res, ok := d.Ctx.LookupAttached(resHandle)
		if !ok {
			return &renderer.CmdError{Kind: renderer.ErrIllegalResource, Handle: resHandle}
		}
		res.Ref()
		return sc.Objects.Insert(handle, objtbl.TypeStreamoutTarget,
			&renderer.StreamoutTarget{Handle: handle, Resource: res, Offset: uintptr(offset), Size: uintptr(size)},
			func(any) { d.Ctx.DropResourceRef(res) })
	default:
		return nil
	}
}

func (d *Decoder) bindObject(sc *renderer.SubContext, sub protocol.ObjectSubType, p []uint32) error {
	handle := p[0]
	switch sub {
	case protocol.ObjBlend:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeBlend)
		if err != nil {
			return err
		}
		sc.State.Blend = *v.(*renderer.BlendState)
		sc.State.Blend.Dirty = true
	case protocol.ObjDSA:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeDSA)
		if err != nil {
			return err
		}
		sc.State.DSA = *v.(*renderer.DSAState)
		sc.State.DSA.Dirty = true
	case protocol.ObjRasterizer:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeRasterizer)
		if err != nil {
			return err
		}
		sc.State.Rasterizer = *v.(*renderer.RasterizerState)
		sc.State.Rasterizer.Dirty = true
	case protocol.ObjShaderVS:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeShaderSelector)
		if err != nil {
			return err
		}
		sc.State.Shaders.VS = v.(*program.Selector)
		sc.State.ShaderDirty = true
	case protocol.ObjShaderFS:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeShaderSelector)
		if err != nil {
			return err
		}
		sc.State.Shaders.FS = v.(*program.Selector)
		sc.State.ShaderDirty = true
	case protocol.ObjShaderGS:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeShaderSelector)
		if err != nil {
			return err
		}
		sc.State.Shaders.GS = v.(*program.Selector)
		sc.State.ShaderDirty = true
	case protocol.ObjVertexElements:
		v, err := sc.Objects.Lookup(handle, objtbl.TypeVertexElements)
		if err != nil {
			return err
		}
		sc.State.VertexElements = v.([]renderer.VertexElement)
	case protocol.ObjSurface, protocol.ObjSamplerView, protocol.ObjSamplerState:
		// These are bound indirectly: surfaces through SET_FRAMEBUFFER_STATE,
		// sampler views/states through SET_SAMPLER_VIEWS/BIND_SAMPLER_STATES.
		// BIND_OBJECT never names them directly.
		return nil
	}
	return nil
}

func glTargetForQuery(kind uint32) uint32 {
	switch kind {
	case 1:
		return glapi.TIME_ELAPSED
	case 2:
		return glapi.TIMESTAMP
	case 3:
		return glapi.PRIMITIVES_GENERATED
	case 4:
		return glapi.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN
	case 5:
		return glapi.ANY_SAMPLES_PASSED
	default:
		return glapi.SAMPLES_PASSED
	}
}
