package renderer

import (
	"fmt"
	"unsafe"

	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
)

// Box is a 3D sub-region of a resource, guest-relative (spec.md §4.E
// "Transfer write": "vrend_transfer_info {handle, level, stride,
// layer_stride, box{x,y,z,w,h,d}, offset, iovec[]}").
type Box struct {
	X, Y, Z int32
	W, H, D uint32
}

// Iovec is one scatter/gather segment of guest memory already mapped into
// this process's address space; Base is usable directly as a byte-slice
// backing pointer.
type Iovec struct {
	Base uintptr
	Len  uint32
}

// TransferParams is shared by TransferWrite and TransferRead.
type TransferParams struct {
	Level       uint32
	Stride      uint32
	LayerStride uint32
	Box         Box
	Offset      uint32
	Iovecs      []Iovec
	YFlip       bool // resource is y_0_top: reverse scan order during the copy
}

// TransferWrite implements guest→host transfers (spec.md §4.E "Transfer
// write"). Buffer-like resources go through glMapBufferRange, falling back
// to glBufferSubData when the map fails; texture resources go through
// glTexSubImage1D/2D/3D. There is no compressed-texture upload path, and a
// y-flip reverses the row order on the CPU before the upload.
func (c *Context) TransferWrite(res *Resource, p TransferParams) error {
	data, err := gatherIovecs(p.Iovecs, int(p.Offset), transferByteSize(res, p))
	if err != nil {
		return err
	}
	if res.Format.Internal == glapi.DEPTH_COMPONENT24 {
		scaleDepth24(data, 256)
	}

	gl := c.GL
	if res.IsBuffer {
		gl.BindBuffer(res.Target, res.GLObject)
		ptr := gl.MapBufferRange(res.Target, uintptr(p.Box.X), uintptr(len(data)),
			glapi.MAP_WRITE_BIT|glapi.MAP_INVALIDATE_RANGE_BIT|glapi.MAP_UNSYNCHRONIZED_BIT)
		if ptr == 0 {
			gl.BufferSubData(res.Target, uintptr(p.Box.X), uintptr(len(data)), bytesAddr(data))
			return nil
		}
		copyToMapped(ptr, data)
		gl.UnmapBuffer(res.Target)
		return nil
	}

	gl.PixelStorei(glapi.UNPACK_ROW_LENGTH, int32(p.Stride/uint32(res.Format.BlockBytes)))
	gl.PixelStorei(glapi.UNPACK_ALIGNMENT, 1)

	if p.YFlip {
		data = flipRows(data, int(p.Stride), int(p.Box.H))
	}

	switch {
	case res.Depth > 1 || res.ArraySize > 1:
		gl.TexSubImage3D(res.Target, int32(p.Level), p.Box.X, p.Box.Y, p.Box.Z,
			int32(p.Box.W), int32(p.Box.H), int32(p.Box.D), res.Format.External, res.Format.Type, bytesAddr(data))
	case res.Height > 1:
		gl.TexSubImage2D(res.Target, int32(p.Level), p.Box.X, p.Box.Y,
			int32(p.Box.W), int32(p.Box.H), res.Format.External, res.Format.Type, bytesAddr(data))
	default:
		gl.TexSubImage1D(res.Target, int32(p.Level), p.Box.X, int32(p.Box.W), res.Format.External, res.Format.Type, bytesAddr(data))
	}
	return nil
}

// TransferRead implements host→guest transfers (spec.md §4.E "Transfer
// read"). Color-renderable formats use glReadPixels through a per-resource
// readback FBO; every other format, depth/stencil formats included, falls
// back to glGetTexImage.
func (c *Context) TransferRead(res *Resource, p TransferParams, formats *format.Table) ([]byte, error) {
	gl := c.GL
	size := transferByteSize(res, p)
	data := make([]byte, size)

	gl.PixelStorei(glapi.PACK_ROW_LENGTH, int32(p.Stride/uint32(res.Format.BlockBytes)))
	gl.PixelStorei(glapi.PACK_ALIGNMENT, 1)

	if formats != nil && formats.CanRender(res.Format.Format) {
		if res.readbackFBO == 0 {
			res.readbackFBO = gl.GenFramebuffers(1)[0]
		}
		gl.BindFramebuffer(glapi.READ_FRAMEBUFFER, res.readbackFBO)
		gl.FramebufferTextureLayer(glapi.READ_FRAMEBUFFER, glapi.COLOR_ATTACHMENT0, res.GLObject, int32(p.Level), p.Box.Z)
		gl.ReadBuffer(glapi.COLOR_ATTACHMENT0)
		gl.ReadPixels(p.Box.X, p.Box.Y, int32(p.Box.W), int32(p.Box.H), res.Format.External, res.Format.Type, bytesAddr(data))
	} else {
		gl.BindTexture(res.Target, res.GLObject)
		gl.GetTexImage(res.Target, int32(p.Level), res.Format.External, res.Format.Type, bytesAddr(data))
	}

	if res.Format.Internal == glapi.DEPTH_COMPONENT24 {
		scaleDepth24(data, 1.0/256)
	}
	if p.YFlip {
		data = flipRows(data, int(p.Stride), int(p.Box.H))
	}
	return data, nil
}

func transferByteSize(res *Resource, p TransferParams) int {
	if p.LayerStride != 0 && p.Box.D > 1 {
		return int(p.LayerStride) * int(p.Box.D)
	}
	return int(p.Stride) * int(p.Box.H)
}

// scaleDepth24 rescales a DEPTH_COMPONENT24-backed buffer by factor,
// reinterpreting it as native-endian uint32 words, because the host
// interprets the 24-bit guest depth range as a full 32-bit integer range
// (spec.md §4.E: "Depth24-X8 formats are scaled by 256x on write / 1/256 on
// read").
func scaleDepth24(data []byte, factor float64) {
	for i := 0; i+4 <= len(data); i += 4 {
		v := *(*uint32)(unsafe.Pointer(&data[i]))
		scaled := uint32(float64(v) * factor)
		*(*uint32)(unsafe.Pointer(&data[i])) = scaled
	}
}

func flipRows(data []byte, stride, height int) []byte {
	if stride == 0 || height == 0 {
		return data
	}
	out := make([]byte, len(data))
	for row := 0; row < height; row++ {
		src := row * stride
		dst := (height - 1 - row) * stride
		if src+stride > len(data) || dst+stride > len(out) {
			break
		}
		copy(out[dst:dst+stride], data[src:src+stride])
	}
	return out
}

func gatherIovecs(iovs []Iovec, skip, want int) ([]byte, error) {
	out := make([]byte, 0, want)
	remaining := skip
	for _, iov := range iovs {
		if remaining >= int(iov.Len) {
			remaining -= int(iov.Len)
			continue
		}
		start := remaining
		remaining = 0
		seg := unsafe.Slice((*byte)(unsafe.Pointer(iov.Base)), iov.Len)
		out = append(out, seg[start:]...)
		if len(out) >= want {
			return out[:want], nil
		}
	}
	if len(out) < want {
		return nil, fmt.Errorf("transfer: iovecs cover %d bytes, want %d", len(out), want)
	}
	return out, nil
}

func bytesAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func copyToMapped(ptr uintptr, data []byte) {
	dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(data))
	copy(dst, data)
}
