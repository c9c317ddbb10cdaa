// Package protocol defines the wire format shared between the guest driver
// and this host-side renderer: the 32-bit command framing, opcode and
// sub_type enumerations, and the capability-reply structures. None of this
// package touches a transport (socket, shared-memory ring) or GL — it is
// pure decode/encode of already-delivered bytes, so the decoder (internal/
// decoder) and the renderer (internal/renderer) can depend on it without
// pulling in I/O.
package protocol

import "math"

// Header is the first DWORD of every command: length:16 | sub_type:8 | opcode:8.
// length is the DWORD count of the payload that follows (not including the
// header word itself).
type Header uint32

// DecodeHeader splits a raw command word into its three fields.
func DecodeHeader(word uint32) (opcode Opcode, subType uint8, length uint16) {
	return Opcode(word & 0xff), uint8((word >> 8) & 0xff), uint16(word >> 16)
}

// EncodeHeader packs the three header fields into a wire word.
func EncodeHeader(opcode Opcode, subType uint8, length uint16) uint32 {
	return uint32(opcode) | uint32(subType)<<8 | uint32(length)<<16
}

// Opcode identifies a top-level command. Values are internal to this module;
// the real wire protocol constants are owned by the external transport per
// spec.md §1 and are not reproduced here.
type Opcode uint8

const (
	OpCreateObject Opcode = iota + 1
	OpBindObject
	OpDestroyObject
	OpSetVertexBuffers
	OpSetIndexBuffer
	OpSetConstantBuffer
	OpSetUniformBuffer
	OpSetStencilRef
	OpSetBlendColor
	OpSetScissorState
	OpSetViewportState
	OpSetFramebufferState
	OpSetSamplerViews
	OpBindSamplerStates
	OpDrawVBO
	OpClear
	OpResourceInlineWrite
	OpBlit
	OpResourceCopyRegion
	OpBeginQuery
	OpEndQuery
	OpGetQueryResult
	OpSetPolygonStipple
	OpSetClipState
	OpSetSampleMask
	OpSetStreamoutTargets
	OpSetQueryState
	OpSetRenderCondition
	OpSetSubCtx
	OpCreateSubCtx
	OpDestroySubCtx
)

// ObjectSubType discriminates CREATE_OBJECT / BIND_OBJECT / DESTROY_OBJECT
// payloads by the kind of object table entry they address.
type ObjectSubType uint8

const (
	ObjBlend ObjectSubType = iota + 1
	ObjDSA
	ObjRasterizer
	ObjShaderVS
	ObjShaderGS
	ObjShaderFS
	ObjVertexElements
	ObjSurface
	ObjSamplerView
	ObjSamplerState
	ObjQuery
	ObjStreamoutTarget
)

// DrawVBOPayload is the decoded DRAW_VBO command body (spec.md §6).
type DrawVBOPayload struct {
	Start            uint32
	Count            uint32
	Mode             uint32
	Indexed          bool
	InstanceCount    uint32
	IndexBias        int32
	StartInstance    uint32
	PrimitiveRestart bool
	RestartIndex     uint32
	MinIndex         uint32
	MaxIndex         uint32
}

// DrawVBOWords is the DWORD count of a DrawVBOPayload.
const DrawVBOWords = 11

// DecodeDrawVBO parses a DRAW_VBO payload starting at words[0].
func DecodeDrawVBO(words []uint32) DrawVBOPayload {
	return DrawVBOPayload{
		Start:            words[0],
		Count:            words[1],
		Mode:             words[2],
		Indexed:          words[3] != 0,
		InstanceCount:    words[4],
		IndexBias:        int32(words[5]),
		StartInstance:    words[6],
		PrimitiveRestart: words[7] != 0,
		RestartIndex:     words[8],
		MinIndex:         words[9],
		MaxIndex:         words[10],
	}
}

// DecodeFloat reinterprets a wire DWORD as an IEEE-754 float32, matching the
// guest's bitcast encoding (spec.md §6: "floats are transported as bitcast
// u32s").
func DecodeFloat(word uint32) float32 {
	return math.Float32frombits(word)
}

// EncodeFloat is the inverse of DecodeFloat, used by tests that build
// synthetic command buffers.
func EncodeFloat(f float32) uint32 {
	return math.Float32bits(f)
}
