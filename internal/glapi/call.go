//go:build linux

package glapi

import "unsafe"

// Small value-boxing helpers: goffi's CallFunction takes a pointer to each
// argument's storage (see hal/gles/gl/context_linux.go), so every scalar
// argument needs its own addressable copy.
func pu32(v uint32) unsafe.Pointer { return unsafe.Pointer(&v) }
func pi32(v int32) unsafe.Pointer  { return unsafe.Pointer(&v) }
func pf32(v float32) unsafe.Pointer { return unsafe.Pointer(&v) }
func pf64(v float64) unsafe.Pointer { return unsafe.Pointer(&v) }

// pptr passes a raw memory address (a guest iovec pointer, a host scratch
// buffer, or 0/nil for "no client data, use bound buffer offset") the way
// glTexImage2D's pixels argument does in the teacher: the uintptr value
// itself becomes the pointer payload, not a pointer to a local uintptr.
func pptr(addr uintptr) unsafe.Pointer { return unsafe.Pointer(addr) } //nolint:govet

func (c *Context) mustCall(fn string, ret kind, argKinds []kind, args []unsafe.Pointer) uintptr {
	r, err := c.call(fn, ret, argKinds, args)
	if err != nil {
		// GL entry points are resolved lazily by name on first call (see
		// Context.proc); a failure here means the driver doesn't expose a
		// function this renderer unconditionally relies on. There is no
		// recovery.
		panic(err)
	}
	return r
}

// --- State ---

func (c *Context) Enable(cap uint32)  { c.mustCall("glEnable", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(cap)}) }
func (c *Context) Disable(cap uint32) { c.mustCall("glDisable", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(cap)}) }
func (c *Context) Enablei(cap, index uint32) {
	c.mustCall("glEnablei", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(cap), pu32(index)})
}
func (c *Context) Disablei(cap, index uint32) {
	c.mustCall("glDisablei", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(cap), pu32(index)})
}

func (c *Context) FrontFace(mode uint32) {
	c.mustCall("glFrontFace", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(mode)})
}
func (c *Context) CullFace(mode uint32) {
	c.mustCall("glCullFace", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(mode)})
}
func (c *Context) PolygonMode(face, mode uint32) {
	c.mustCall("glPolygonMode", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(face), pu32(mode)})
}
func (c *Context) PolygonOffset(factor, units float32) {
	c.mustCall("glPolygonOffset", kVoid, []kind{kF32, kF32}, []unsafe.Pointer{pf32(factor), pf32(units)})
}
func (c *Context) SampleMaski(index uint32, mask uint32) {
	c.mustCall("glSampleMaski", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(index), pu32(mask)})
}

func (c *Context) Viewport(x, y, w, h int32) {
	c.mustCall("glViewport", kVoid, []kind{kI32, kI32, kI32, kI32}, []unsafe.Pointer{pi32(x), pi32(y), pi32(w), pi32(h)})
}
func (c *Context) ViewportIndexedf(index uint32, x, y, w, h float32) {
	c.mustCall("glViewportIndexedf", kVoid, []kind{kU32, kF32, kF32, kF32, kF32},
		[]unsafe.Pointer{pu32(index), pf32(x), pf32(y), pf32(w), pf32(h)})
}
func (c *Context) DepthRangef(near, far float32) {
	c.mustCall("glDepthRangef", kVoid, []kind{kF32, kF32}, []unsafe.Pointer{pf32(near), pf32(far)})
}
func (c *Context) DepthRangeIndexed(index uint32, near, far float64) {
	c.mustCall("glDepthRangeIndexed", kVoid, []kind{kU32, kF64, kF64}, []unsafe.Pointer{pu32(index), pf64(near), pf64(far)})
}
func (c *Context) Scissor(x, y, w, h int32) {
	c.mustCall("glScissor", kVoid, []kind{kI32, kI32, kI32, kI32}, []unsafe.Pointer{pi32(x), pi32(y), pi32(w), pi32(h)})
}
func (c *Context) ScissorIndexed(index uint32, x, y, w, h int32) {
	c.mustCall("glScissorIndexed", kVoid, []kind{kU32, kI32, kI32, kI32, kI32},
		[]unsafe.Pointer{pu32(index), pi32(x), pi32(y), pi32(w), pi32(h)})
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.mustCall("glClearColor", kVoid, []kind{kF32, kF32, kF32, kF32}, []unsafe.Pointer{pf32(r), pf32(g), pf32(b), pf32(a)})
}
func (c *Context) ClearDepthf(d float32) {
	c.mustCall("glClearDepthf", kVoid, []kind{kF32}, []unsafe.Pointer{pf32(d)})
}
func (c *Context) ClearStencil(s int32) {
	c.mustCall("glClearStencil", kVoid, []kind{kI32}, []unsafe.Pointer{pi32(s)})
}
func (c *Context) Clear(mask uint32) {
	c.mustCall("glClear", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(mask)})
}
func (c *Context) ClearBufferfv(buffer uint32, drawbuffer int32, value uintptr) {
	c.mustCall("glClearBufferfv", kVoid, []kind{kU32, kI32, kPtr}, []unsafe.Pointer{pu32(buffer), pi32(drawbuffer), pptr(value)})
}
func (c *Context) ClearBufferiv(buffer uint32, drawbuffer int32, value uintptr) {
	c.mustCall("glClearBufferiv", kVoid, []kind{kU32, kI32, kPtr}, []unsafe.Pointer{pu32(buffer), pi32(drawbuffer), pptr(value)})
}
func (c *Context) ClearBufferfi(buffer uint32, drawbuffer int32, depth float32, stencil int32) {
	c.mustCall("glClearBufferfi", kVoid, []kind{kU32, kI32, kF32, kI32},
		[]unsafe.Pointer{pu32(buffer), pi32(drawbuffer), pf32(depth), pi32(stencil)})
}
func (c *Context) ColorMaski(index uint32, r, g, b, a bool) {
	c.mustCall("glColorMaski", kVoid, []kind{kU32, kU32, kU32, kU32, kU32},
		[]unsafe.Pointer{pu32(index), pu32(boolU32(r)), pu32(boolU32(g)), pu32(boolU32(b)), pu32(boolU32(a))})
}
func (c *Context) DepthMask(flag bool) {
	c.mustCall("glDepthMask", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(boolU32(flag))})
}
func (c *Context) DepthFunc(f uint32) {
	c.mustCall("glDepthFunc", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(f)})
}
func (c *Context) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	c.mustCall("glStencilFuncSeparate", kVoid, []kind{kU32, kU32, kI32, kU32},
		[]unsafe.Pointer{pu32(face), pu32(fn), pi32(ref), pu32(mask)})
}
func (c *Context) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	c.mustCall("glStencilOpSeparate", kVoid, []kind{kU32, kU32, kU32, kU32},
		[]unsafe.Pointer{pu32(face), pu32(sfail), pu32(dpfail), pu32(dppass)})
}
func (c *Context) StencilMaskSeparate(face, mask uint32) {
	c.mustCall("glStencilMaskSeparate", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(face), pu32(mask)})
}

func (c *Context) BlendFuncSeparatei(buf uint32, srcRGB, dstRGB, srcA, dstA uint32) {
	c.mustCall("glBlendFuncSeparatei", kVoid, []kind{kU32, kU32, kU32, kU32, kU32},
		[]unsafe.Pointer{pu32(buf), pu32(srcRGB), pu32(dstRGB), pu32(srcA), pu32(dstA)})
}
func (c *Context) BlendEquationSeparatei(buf uint32, modeRGB, modeA uint32) {
	c.mustCall("glBlendEquationSeparatei", kVoid, []kind{kU32, kU32, kU32},
		[]unsafe.Pointer{pu32(buf), pu32(modeRGB), pu32(modeA)})
}
func (c *Context) BlendColor(r, g, b, a float32) {
	c.mustCall("glBlendColor", kVoid, []kind{kF32, kF32, kF32, kF32}, []unsafe.Pointer{pf32(r), pf32(g), pf32(b), pf32(a)})
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// --- Shaders / programs ---

func (c *Context) CreateShader(shaderType uint32) uint32 {
	return uint32(c.mustCall("glCreateShader", kU32, []kind{kU32}, []unsafe.Pointer{pu32(shaderType)}))
}
func (c *Context) DeleteShader(shader uint32) {
	c.mustCall("glDeleteShader", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(shader)})
}
func (c *Context) ShaderSource(shader uint32, src string) {
	cstr := append([]byte(src), 0)
	strPtr := uintptr(unsafe.Pointer(&cstr[0]))
	strs := [1]uintptr{strPtr}
	strsPtr := uintptr(unsafe.Pointer(&strs[0]))
	c.mustCall("glShaderSource", kVoid, []kind{kU32, kI32, kPtr, kPtr},
		[]unsafe.Pointer{pu32(shader), pi32(1), pptr(strsPtr), pptr(0)})
}
func (c *Context) CompileShader(shader uint32) {
	c.mustCall("glCompileShader", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(shader)})
}
func (c *Context) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	c.mustCall("glGetShaderiv", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(shader), pu32(pname), unsafe.Pointer(&v)})
	return v
}
func (c *Context) GetShaderInfoLog(shader uint32, bufSize int32) string {
	buf := make([]byte, bufSize)
	var length int32
	if bufSize == 0 {
		return ""
	}
	c.mustCall("glGetShaderInfoLog", kVoid, []kind{kU32, kI32, kPtr, kPtr},
		[]unsafe.Pointer{pu32(shader), pi32(bufSize), unsafe.Pointer(&length), unsafe.Pointer(&buf[0])})
	return string(buf[:length])
}

// ShaderCompileStatus reports whether shader compiled cleanly; on failure it
// also fetches the info log, so callers never need a separate round trip.
func (c *Context) ShaderCompileStatus(shader uint32) (ok bool, infoLog string) {
	if c.GetShaderiv(shader, COMPILE_STATUS) != 0 {
		return true, ""
	}
	return false, c.GetShaderInfoLog(shader, c.GetShaderiv(shader, INFO_LOG_LENGTH))
}

// ProgramLinkStatus mirrors ShaderCompileStatus for program linking.
func (c *Context) ProgramLinkStatus(p uint32) (ok bool, infoLog string) {
	if c.GetProgramiv(p, LINK_STATUS) != 0 {
		return true, ""
	}
	return false, c.GetProgramInfoLog(p, c.GetProgramiv(p, INFO_LOG_LENGTH))
}

func (c *Context) CreateProgram() uint32 {
	return uint32(c.mustCall("glCreateProgram", kU32, nil, nil))
}
func (c *Context) DeleteProgram(p uint32) {
	c.mustCall("glDeleteProgram", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(p)})
}
func (c *Context) AttachShader(p, shader uint32) {
	c.mustCall("glAttachShader", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(p), pu32(shader)})
}
func (c *Context) DetachShader(p, shader uint32) {
	c.mustCall("glDetachShader", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(p), pu32(shader)})
}
func (c *Context) LinkProgram(p uint32) {
	c.mustCall("glLinkProgram", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(p)})
}
func (c *Context) UseProgram(p uint32) {
	c.mustCall("glUseProgram", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(p)})
}
func (c *Context) GetProgramiv(p, pname uint32) int32 {
	var v int32
	c.mustCall("glGetProgramiv", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(p), pu32(pname), unsafe.Pointer(&v)})
	return v
}
func (c *Context) GetProgramInfoLog(p uint32, bufSize int32) string {
	if bufSize == 0 {
		return ""
	}
	buf := make([]byte, bufSize)
	var length int32
	c.mustCall("glGetProgramInfoLog", kVoid, []kind{kU32, kI32, kPtr, kPtr},
		[]unsafe.Pointer{pu32(p), pi32(bufSize), unsafe.Pointer(&length), unsafe.Pointer(&buf[0])})
	return string(buf[:length])
}
func (c *Context) GetUniformLocation(p uint32, name string) int32 {
	cstr := append([]byte(name), 0)
	return int32(c.mustCall("glGetUniformLocation", kI32, []kind{kU32, kPtr}, []unsafe.Pointer{pu32(p), unsafe.Pointer(&cstr[0])}))
}
func (c *Context) GetAttribLocation(p uint32, name string) int32 {
	cstr := append([]byte(name), 0)
	return int32(c.mustCall("glGetAttribLocation", kI32, []kind{kU32, kPtr}, []unsafe.Pointer{pu32(p), unsafe.Pointer(&cstr[0])}))
}
func (c *Context) BindAttribLocation(p uint32, index uint32, name string) {
	cstr := append([]byte(name), 0)
	c.mustCall("glBindAttribLocation", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(p), pu32(index), unsafe.Pointer(&cstr[0])})
}
func (c *Context) BindFragDataLocationIndexed(p, colorNumber, index uint32, name string) {
	cstr := append([]byte(name), 0)
	c.mustCall("glBindFragDataLocationIndexed", kVoid, []kind{kU32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(p), pu32(colorNumber), pu32(index), unsafe.Pointer(&cstr[0])})
}
func (c *Context) GetUniformBlockIndex(p uint32, name string) uint32 {
	cstr := append([]byte(name), 0)
	return uint32(c.mustCall("glGetUniformBlockIndex", kU32, []kind{kU32, kPtr}, []unsafe.Pointer{pu32(p), unsafe.Pointer(&cstr[0])}))
}
func (c *Context) UniformBlockBinding(p, blockIndex, blockBinding uint32) {
	c.mustCall("glUniformBlockBinding", kVoid, []kind{kU32, kU32, kU32}, []unsafe.Pointer{pu32(p), pu32(blockIndex), pu32(blockBinding)})
}

func (c *Context) Uniform1i(loc int32, v int32) {
	c.mustCall("glUniform1i", kVoid, []kind{kI32, kI32}, []unsafe.Pointer{pi32(loc), pi32(v)})
}
func (c *Context) Uniform4uiv(loc int32, count int32, value uintptr) {
	c.mustCall("glUniform4uiv", kVoid, []kind{kI32, kI32, kPtr}, []unsafe.Pointer{pi32(loc), pi32(count), pptr(value)})
}
func (c *Context) Uniform1f(loc int32, v float32) {
	c.mustCall("glUniform1f", kVoid, []kind{kI32, kF32}, []unsafe.Pointer{pi32(loc), pf32(v)})
}

// --- Buffers ---

func (c *Context) GenBuffers(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenBuffers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteBuffers(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteBuffers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BindBuffer(target, buffer uint32) {
	c.mustCall("glBindBuffer", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(buffer)})
}
func (c *Context) BindBufferBase(target uint32, index, buffer uint32) {
	c.mustCall("glBindBufferBase", kVoid, []kind{kU32, kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(index), pu32(buffer)})
}
func (c *Context) BindBufferRange(target uint32, index, buffer uint32, offset, size uintptr) {
	c.mustCall("glBindBufferRange", kVoid, []kind{kU32, kU32, kU32, kPtr, kPtr},
		[]unsafe.Pointer{pu32(target), pu32(index), pu32(buffer), pptr(offset), pptr(size)})
}
func (c *Context) BufferData(target uint32, size uintptr, data uintptr, usage uint32) {
	c.mustCall("glBufferData", kVoid, []kind{kU32, kPtr, kPtr, kU32},
		[]unsafe.Pointer{pu32(target), pptr(size), pptr(data), pu32(usage)})
}
func (c *Context) BufferSubData(target uint32, offset, size uintptr, data uintptr) {
	c.mustCall("glBufferSubData", kVoid, []kind{kU32, kPtr, kPtr, kPtr},
		[]unsafe.Pointer{pu32(target), pptr(offset), pptr(size), pptr(data)})
}
func (c *Context) MapBufferRange(target uint32, offset, length uintptr, access uint32) uintptr {
	return uintptr(c.mustCall("glMapBufferRange", kPtr, []kind{kU32, kPtr, kPtr, kU32},
		[]unsafe.Pointer{pu32(target), pptr(offset), pptr(length), pu32(access)}))
}
func (c *Context) UnmapBuffer(target uint32) bool {
	return c.mustCall("glUnmapBuffer", kU32, []kind{kU32}, []unsafe.Pointer{pu32(target)}) != 0
}
func (c *Context) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size uintptr) {
	c.mustCall("glCopyBufferSubData", kVoid, []kind{kU32, kU32, kPtr, kPtr, kPtr},
		[]unsafe.Pointer{pu32(readTarget), pu32(writeTarget), pptr(readOffset), pptr(writeOffset), pptr(size)})
}

// --- Vertex arrays ---

func (c *Context) GenVertexArrays(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenVertexArrays", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteVertexArrays(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteVertexArrays", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BindVertexArray(vao uint32) {
	c.mustCall("glBindVertexArray", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(vao)})
}
func (c *Context) EnableVertexAttribArray(index uint32) {
	c.mustCall("glEnableVertexAttribArray", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(index)})
}
func (c *Context) DisableVertexAttribArray(index uint32) {
	c.mustCall("glDisableVertexAttribArray", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(index)})
}
func (c *Context) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	c.mustCall("glVertexAttribPointer", kVoid, []kind{kU32, kI32, kU32, kU32, kI32, kPtr},
		[]unsafe.Pointer{pu32(index), pi32(size), pu32(typ), pu32(boolU32(normalized)), pi32(stride), pptr(offset)})
}
func (c *Context) VertexAttribIPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr) {
	c.mustCall("glVertexAttribIPointer", kVoid, []kind{kU32, kI32, kU32, kI32, kPtr},
		[]unsafe.Pointer{pu32(index), pi32(size), pu32(typ), pi32(stride), pptr(offset)})
}
func (c *Context) VertexAttribDivisor(index, divisor uint32) {
	c.mustCall("glVertexAttribDivisor", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(index), pu32(divisor)})
}
func (c *Context) VertexAttrib4fv(index uint32, values uintptr) {
	c.mustCall("glVertexAttrib4fv", kVoid, []kind{kU32, kPtr}, []unsafe.Pointer{pu32(index), pptr(values)})
}
func (c *Context) BindVertexBuffer(bindingIndex, buffer uint32, offset uintptr, stride int32) {
	c.mustCall("glBindVertexBuffer", kVoid, []kind{kU32, kU32, kPtr, kI32},
		[]unsafe.Pointer{pu32(bindingIndex), pu32(buffer), pptr(offset), pi32(stride)})
}

// --- Textures ---

func (c *Context) GenTextures(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenTextures", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteTextures(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteTextures", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) ActiveTexture(unit uint32) {
	c.mustCall("glActiveTexture", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(unit)})
}
func (c *Context) BindTexture(target, texture uint32) {
	c.mustCall("glBindTexture", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(texture)})
}
func (c *Context) TexParameteri(target, pname uint32, param int32) {
	c.mustCall("glTexParameteri", kVoid, []kind{kU32, kU32, kI32}, []unsafe.Pointer{pu32(target), pu32(pname), pi32(param)})
}
func (c *Context) TexParameterf(target, pname uint32, param float32) {
	c.mustCall("glTexParameterf", kVoid, []kind{kU32, kU32, kF32}, []unsafe.Pointer{pu32(target), pu32(pname), pf32(param)})
}
func (c *Context) TexParameteriv(target, pname uint32, params uintptr) {
	c.mustCall("glTexParameteriv", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(target), pu32(pname), pptr(params)})
}
func (c *Context) TexImage1D(target uint32, level, internalformat, width, border int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexImage1D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(internalformat), pi32(width), pi32(border), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexImage2D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(internalformat), pi32(width), pi32(height), pi32(border), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) TexImage3D(target uint32, level, internalformat, width, height, depth, border int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexImage3D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(internalformat), pi32(width), pi32(height), pi32(depth), pi32(border), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) TexStorage2DMultisample(target uint32, samples int32, internalformat uint32, width, height int32, fixedSampleLocations bool) {
	c.mustCall("glTexStorage2DMultisample", kVoid, []kind{kU32, kI32, kU32, kI32, kI32, kU32},
		[]unsafe.Pointer{pu32(target), pi32(samples), pu32(internalformat), pi32(width), pi32(height), pu32(boolU32(fixedSampleLocations))})
}
func (c *Context) TexSubImage1D(target uint32, level, xoffset, width int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexSubImage1D", kVoid, []kind{kU32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(xoffset), pi32(width), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexSubImage2D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(xoffset), pi32(yoffset), pi32(width), pi32(height), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) TexSubImage3D(target uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, typ uint32, data uintptr) {
	c.mustCall("glTexSubImage3D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(xoffset), pi32(yoffset), pi32(zoffset), pi32(width), pi32(height), pi32(depth), pu32(format), pu32(typ), pptr(data)})
}
func (c *Context) CompressedTexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format uint32, imageSize int32, data uintptr) {
	c.mustCall("glCompressedTexSubImage2D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kU32, kI32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(xoffset), pi32(yoffset), pi32(width), pi32(height), pu32(format), pi32(imageSize), pptr(data)})
}
func (c *Context) CompressedTexSubImage3D(target uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format uint32, imageSize int32, data uintptr) {
	c.mustCall("glCompressedTexSubImage3D", kVoid, []kind{kU32, kI32, kI32, kI32, kI32, kI32, kI32, kI32, kU32, kI32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pi32(xoffset), pi32(yoffset), pi32(zoffset), pi32(width), pi32(height), pi32(depth), pu32(format), pi32(imageSize), pptr(data)})
}
func (c *Context) GetTexImage(target uint32, level int32, format, typ uint32, pixels uintptr) {
	c.mustCall("glGetTexImage", kVoid, []kind{kU32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pu32(target), pi32(level), pu32(format), pu32(typ), pptr(pixels)})
}
func (c *Context) GenerateMipmap(target uint32) {
	c.mustCall("glGenerateMipmap", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(target)})
}
func (c *Context) TexBuffer(target, internalformat, buffer uint32) {
	c.mustCall("glTexBuffer", kVoid, []kind{kU32, kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(internalformat), pu32(buffer)})
}
func (c *Context) PixelStorei(pname uint32, param int32) {
	c.mustCall("glPixelStorei", kVoid, []kind{kU32, kI32}, []unsafe.Pointer{pu32(pname), pi32(param)})
}

// --- Samplers ---

func (c *Context) GenSamplers(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenSamplers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteSamplers(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteSamplers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BindSampler(unit, sampler uint32) {
	c.mustCall("glBindSampler", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(unit), pu32(sampler)})
}
func (c *Context) SamplerParameteri(sampler, pname uint32, param int32) {
	c.mustCall("glSamplerParameteri", kVoid, []kind{kU32, kU32, kI32}, []unsafe.Pointer{pu32(sampler), pu32(pname), pi32(param)})
}
func (c *Context) SamplerParameterf(sampler, pname uint32, param float32) {
	c.mustCall("glSamplerParameterf", kVoid, []kind{kU32, kU32, kF32}, []unsafe.Pointer{pu32(sampler), pu32(pname), pf32(param)})
}
func (c *Context) SamplerParameterfv(sampler, pname uint32, value uintptr) {
	c.mustCall("glSamplerParameterfv", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(sampler), pu32(pname), pptr(value)})
}

// --- Framebuffers ---

func (c *Context) GenFramebuffers(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenFramebuffers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteFramebuffers(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteFramebuffers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BindFramebuffer(target, fbo uint32) {
	c.mustCall("glBindFramebuffer", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(fbo)})
}
func (c *Context) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	c.mustCall("glFramebufferTexture2D", kVoid, []kind{kU32, kU32, kU32, kU32, kI32},
		[]unsafe.Pointer{pu32(target), pu32(attachment), pu32(texTarget), pu32(texture), pi32(level)})
}
func (c *Context) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	c.mustCall("glFramebufferTextureLayer", kVoid, []kind{kU32, kU32, kU32, kI32, kI32},
		[]unsafe.Pointer{pu32(target), pu32(attachment), pu32(texture), pi32(level), pi32(layer)})
}
func (c *Context) DrawBuffers(n int32, bufs uintptr) {
	c.mustCall("glDrawBuffers", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), pptr(bufs)})
}
func (c *Context) CheckFramebufferStatus(target uint32) uint32 {
	return uint32(c.mustCall("glCheckFramebufferStatus", kU32, []kind{kU32}, []unsafe.Pointer{pu32(target)}))
}
func (c *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask uint32, filter uint32) {
	c.mustCall("glBlitFramebuffer", kVoid,
		[]kind{kI32, kI32, kI32, kI32, kI32, kI32, kI32, kI32, kU32, kU32},
		[]unsafe.Pointer{pi32(srcX0), pi32(srcY0), pi32(srcX1), pi32(srcY1), pi32(dstX0), pi32(dstY0), pi32(dstX1), pi32(dstY1), pu32(mask), pu32(filter)})
}
func (c *Context) ReadPixels(x, y, w, h int32, format, typ uint32, pixels uintptr) {
	c.mustCall("glReadPixels", kVoid, []kind{kI32, kI32, kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pi32(x), pi32(y), pi32(w), pi32(h), pu32(format), pu32(typ), pptr(pixels)})
}
func (c *Context) ReadBuffer(src uint32) {
	c.mustCall("glReadBuffer", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(src)})
}
func (c *Context) DrawPixels(width, height int32, format, typ uint32, pixels uintptr) {
	c.mustCall("glDrawPixels", kVoid, []kind{kI32, kI32, kU32, kU32, kPtr},
		[]unsafe.Pointer{pi32(width), pi32(height), pu32(format), pu32(typ), pptr(pixels)})
}
func (c *Context) PixelZoom(x, y float32) {
	c.mustCall("glPixelZoom", kVoid, []kind{kF32, kF32}, []unsafe.Pointer{pf32(x), pf32(y)})
}

// --- Draw calls ---

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	c.mustCall("glDrawArrays", kVoid, []kind{kU32, kI32, kI32}, []unsafe.Pointer{pu32(mode), pi32(first), pi32(count)})
}
func (c *Context) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	c.mustCall("glDrawArraysInstanced", kVoid, []kind{kU32, kI32, kI32, kI32},
		[]unsafe.Pointer{pu32(mode), pi32(first), pi32(count), pi32(instanceCount)})
}
func (c *Context) DrawArraysInstancedBaseInstance(mode uint32, first, count, instanceCount int32, baseInstance uint32) {
	c.mustCall("glDrawArraysInstancedBaseInstance", kVoid, []kind{kU32, kI32, kI32, kI32, kU32},
		[]unsafe.Pointer{pu32(mode), pi32(first), pi32(count), pi32(instanceCount), pu32(baseInstance)})
}
func (c *Context) DrawElements(mode uint32, count int32, typ uint32, indices uintptr) {
	c.mustCall("glDrawElements", kVoid, []kind{kU32, kI32, kU32, kPtr},
		[]unsafe.Pointer{pu32(mode), pi32(count), pu32(typ), pptr(indices)})
}
func (c *Context) DrawRangeElements(mode uint32, start, end uint32, count int32, typ uint32, indices uintptr) {
	c.mustCall("glDrawRangeElements", kVoid, []kind{kU32, kU32, kU32, kI32, kU32, kPtr},
		[]unsafe.Pointer{pu32(mode), pu32(start), pu32(end), pi32(count), pu32(typ), pptr(indices)})
}
func (c *Context) DrawElementsInstanced(mode uint32, count int32, typ uint32, indices uintptr, instanceCount int32) {
	c.mustCall("glDrawElementsInstanced", kVoid, []kind{kU32, kI32, kU32, kPtr, kI32},
		[]unsafe.Pointer{pu32(mode), pi32(count), pu32(typ), pptr(indices), pi32(instanceCount)})
}
func (c *Context) DrawElementsBaseVertex(mode uint32, count int32, typ uint32, indices uintptr, baseVertex int32) {
	c.mustCall("glDrawElementsBaseVertex", kVoid, []kind{kU32, kI32, kU32, kPtr, kI32},
		[]unsafe.Pointer{pu32(mode), pi32(count), pu32(typ), pptr(indices), pi32(baseVertex)})
}
func (c *Context) DrawRangeElementsBaseVertex(mode uint32, start, end uint32, count int32, typ uint32, indices uintptr, baseVertex int32) {
	c.mustCall("glDrawRangeElementsBaseVertex", kVoid, []kind{kU32, kU32, kU32, kI32, kU32, kPtr, kI32},
		[]unsafe.Pointer{pu32(mode), pu32(start), pu32(end), pi32(count), pu32(typ), pptr(indices), pi32(baseVertex)})
}
func (c *Context) DrawElementsInstancedBaseVertex(mode uint32, count int32, typ uint32, indices uintptr, instanceCount, baseVertex int32) {
	c.mustCall("glDrawElementsInstancedBaseVertex", kVoid, []kind{kU32, kI32, kU32, kPtr, kI32, kI32},
		[]unsafe.Pointer{pu32(mode), pi32(count), pu32(typ), pptr(indices), pi32(instanceCount), pi32(baseVertex)})
}
func (c *Context) PrimitiveRestartIndex(index uint32) {
	c.mustCall("glPrimitiveRestartIndex", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(index)})
}

// --- Queries ---

func (c *Context) GenQueries(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenQueries", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteQueries(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteQueries", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BeginQuery(target, query uint32) {
	c.mustCall("glBeginQuery", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(query)})
}
func (c *Context) EndQuery(target uint32) {
	c.mustCall("glEndQuery", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(target)})
}
func (c *Context) QueryCounter(query, target uint32) {
	c.mustCall("glQueryCounter", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(query), pu32(target)})
}
func (c *Context) GetQueryObjectuiv(query, pname uint32) uint32 {
	var v uint32
	c.mustCall("glGetQueryObjectuiv", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(query), pu32(pname), unsafe.Pointer(&v)})
	return v
}
func (c *Context) GetQueryObjectui64v(query, pname uint32) uint64 {
	var v uint64
	c.mustCall("glGetQueryObjectui64v", kVoid, []kind{kU32, kU32, kPtr}, []unsafe.Pointer{pu32(query), pu32(pname), unsafe.Pointer(&v)})
	return v
}
func (c *Context) BeginConditionalRender(query, mode uint32) {
	c.mustCall("glBeginConditionalRender", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(query), pu32(mode)})
}
func (c *Context) EndConditionalRender() {
	c.mustCall("glEndConditionalRender", kVoid, nil, nil)
}

// --- Transform feedback ---

func (c *Context) GenTransformFeedbacks(n int32) []uint32 {
	ids := make([]uint32, n)
	c.mustCall("glGenTransformFeedbacks", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(n), unsafe.Pointer(&ids[0])})
	return ids
}
func (c *Context) DeleteTransformFeedbacks(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	c.mustCall("glDeleteTransformFeedbacks", kVoid, []kind{kI32, kPtr}, []unsafe.Pointer{pi32(int32(len(ids))), unsafe.Pointer(&ids[0])})
}
func (c *Context) BindTransformFeedback(target, id uint32) {
	c.mustCall("glBindTransformFeedback", kVoid, []kind{kU32, kU32}, []unsafe.Pointer{pu32(target), pu32(id)})
}
func (c *Context) BeginTransformFeedback(mode uint32) {
	c.mustCall("glBeginTransformFeedback", kVoid, []kind{kU32}, []unsafe.Pointer{pu32(mode)})
}
func (c *Context) EndTransformFeedback() {
	c.mustCall("glEndTransformFeedback", kVoid, nil, nil)
}
func (c *Context) PauseTransformFeedback() {
	c.mustCall("glPauseTransformFeedback", kVoid, nil, nil)
}
func (c *Context) ResumeTransformFeedback() {
	c.mustCall("glResumeTransformFeedback", kVoid, nil, nil)
}
func (c *Context) TransformFeedbackVaryings(p uint32, count int32, varyings uintptr, bufferMode uint32) {
	c.mustCall("glTransformFeedbackVaryings", kVoid, []kind{kU32, kI32, kPtr, kU32},
		[]unsafe.Pointer{pu32(p), pi32(count), pptr(varyings), pu32(bufferMode)})
}

// --- Sync ---

func (c *Context) FenceSync(condition, flags uint32) uintptr {
	return uintptr(c.mustCall("glFenceSync", kPtr, []kind{kU32, kU32}, []unsafe.Pointer{pu32(condition), pu32(flags)}))
}
func (c *Context) DeleteSync(sync uintptr) {
	c.mustCall("glDeleteSync", kVoid, []kind{kPtr}, []unsafe.Pointer{pptr(sync)})
}
func (c *Context) ClientWaitSync(sync uintptr, flags uint32, timeout uint64) uint32 {
	return uint32(c.mustCall("glClientWaitSync", kU32, []kind{kPtr, kU32, kF64},
		[]unsafe.Pointer{pptr(sync), pu32(flags), pf64(float64(timeout))}))
}

// --- Queries of driver/context info ---

func (c *Context) GetString(name uint32) string {
	p := uintptr(c.mustCall("glGetString", kPtr, []kind{kU32}, []unsafe.Pointer{pu32(name)}))
	return cString(p)
}
func (c *Context) GetIntegerv(pname uint32) int32 {
	var v int32
	c.mustCall("glGetIntegerv", kVoid, []kind{kU32, kPtr}, []unsafe.Pointer{pu32(pname), unsafe.Pointer(&v)})
	return v
}
func (c *Context) GetError() uint32 {
	return uint32(c.mustCall("glGetError", kU32, nil, nil))
}

func cString(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	var buf []byte
	for i := 0; ; i++ {
		b := *(*byte)(unsafe.Pointer(addr + uintptr(i)))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
