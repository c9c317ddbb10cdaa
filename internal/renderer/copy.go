package renderer

import "github.com/mittorn/vrend/internal/glapi"

// CopyRegionParams is the decoded RESOURCE_COPY_REGION payload (spec.md
// §4.E "Copy region").
type CopyRegionParams struct {
	Src, Dst                   *Resource
	SrcLevel, DstLevel         uint32
	SrcX, SrcY, SrcZ           int32
	DstX, DstY, DstZ           int32
	Width, Height, Depth       uint32
	SrcOffset, DstOffset, Size uintptr // buffer path only
}

// CopyRegion implements resource-to-resource copies without a format
// conversion (spec.md §4.E "Copy region": "Buffer→buffer uses
// glCopyBufferSubData. Texture→texture attempts glBlitFramebuffer with both
// FBOs bound; if either format cannot render, falls back to a
// glGetTexImage/glTexSubImage round-trip including compressed and
// cube-face iteration").
func (c *Context) CopyRegion(p CopyRegionParams) error {
	gl := c.GL
	if p.Src.IsBuffer && p.Dst.IsBuffer {
		gl.BindBuffer(glapi.COPY_READ_BUFFER, p.Src.GLObject)
		gl.BindBuffer(glapi.COPY_WRITE_BUFFER, p.Dst.GLObject)
		gl.CopyBufferSubData(glapi.COPY_READ_BUFFER, glapi.COPY_WRITE_BUFFER, p.SrcOffset, p.DstOffset, p.Size)
		return nil
	}

	sc := c.Active()
	if c.Formats != nil && c.Formats.CanRender(p.Src.Format.Format) && c.Formats.CanRender(p.Dst.Format.Format) {
		return c.copyRegionViaBlit(gl, sc, p)
	}
	return c.copyRegionViaRoundTrip(gl, p)
}

// copyRegionViaBlit is the fast path: bind both scratch FBOs and let
// glBlitFramebuffer do a same-size, no-filter copy.
func (c *Context) copyRegionViaBlit(gl *glapi.Context, sc *SubContext, p CopyRegionParams) error {
	for face := 0; face < cubeFaceCount(p.Src); face++ {
		srcTarget := faceTarget(p.Src, face)
		dstTarget := faceTarget(p.Dst, face)

		gl.BindFramebuffer(glapi.READ_FRAMEBUFFER, sc.BlitFBORead)
		bindCopyAttachment(gl, glapi.READ_FRAMEBUFFER, p.Src, srcTarget, p.SrcLevel, uint32(p.SrcZ)+uint32(face))
		gl.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, sc.BlitFBODraw)
		bindCopyAttachment(gl, glapi.DRAW_FRAMEBUFFER, p.Dst, dstTarget, p.DstLevel, uint32(p.DstZ)+uint32(face))

		gl.BlitFramebuffer(
			p.SrcX, p.SrcY, p.SrcX+int32(p.Width), p.SrcY+int32(p.Height),
			p.DstX, p.DstY, p.DstX+int32(p.Width), p.DstY+int32(p.Height),
			glapi.COLOR_BUFFER_BIT, glapi.NEAREST)
	}
	return nil
}

// copyRegionViaRoundTrip handles the case where one endpoint can't be
// framebuffer-attached: read the source level fully with glGetTexImage,
// then glTexSubImage the sub-region into the destination, iterating every
// cube face when the resource is a cube map.
func (c *Context) copyRegionViaRoundTrip(gl *glapi.Context, p CopyRegionParams) error {
	for face := 0; face < cubeFaceCount(p.Src); face++ {
		srcTarget := faceTarget(p.Src, face)
		dstTarget := faceTarget(p.Dst, face)

		full := make([]byte, int(p.Src.Width)*int(p.Src.Height)*p.Src.Format.BlockBytes)
		gl.BindTexture(srcTarget, p.Src.GLObject)
		gl.GetTexImage(srcTarget, int32(p.SrcLevel), p.Src.Format.External, p.Src.Format.Type, bytesAddr(full))

		region := extractRegion(full, int(p.Src.Width), p.Src.Format.BlockBytes, int(p.SrcX), int(p.SrcY), int(p.Width), int(p.Height))

		gl.BindTexture(dstTarget, p.Dst.GLObject)
		gl.PixelStorei(glapi.UNPACK_ROW_LENGTH, int32(p.Width))
		gl.PixelStorei(glapi.UNPACK_ALIGNMENT, 1)
		if p.Dst.Depth > 1 || p.Dst.ArraySize > 1 {
			gl.TexSubImage3D(dstTarget, int32(p.DstLevel), p.DstX, p.DstY, p.DstZ+int32(face),
				int32(p.Width), int32(p.Height), 1, p.Dst.Format.External, p.Dst.Format.Type, bytesAddr(region))
		} else {
			gl.TexSubImage2D(dstTarget, int32(p.DstLevel), p.DstX, p.DstY,
				int32(p.Width), int32(p.Height), p.Dst.Format.External, p.Dst.Format.Type, bytesAddr(region))
		}
	}
	return nil
}

func bindCopyAttachment(gl *glapi.Context, fbTarget uint32, res *Resource, texTarget uint32, level, layer uint32) {
	if texTarget == glapi.TEXTURE_CUBE_MAP_POSITIVE_X || isCubeFaceTarget(texTarget) {
		gl.FramebufferTexture2D(fbTarget, glapi.COLOR_ATTACHMENT0, texTarget, res.GLObject, int32(level))
		return
	}
	gl.FramebufferTextureLayer(fbTarget, glapi.COLOR_ATTACHMENT0, res.GLObject, int32(level), int32(layer))
}

func cubeFaceCount(res *Resource) int {
	if res.Target == glapi.TEXTURE_CUBE_MAP {
		return 6
	}
	return 1
}

func faceTarget(res *Resource, face int) uint32 {
	if res.Target == glapi.TEXTURE_CUBE_MAP {
		return glapi.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face)
	}
	return res.Target
}

func isCubeFaceTarget(t uint32) bool {
	return t >= glapi.TEXTURE_CUBE_MAP_POSITIVE_X && t <= glapi.TEXTURE_CUBE_MAP_POSITIVE_X+5
}

func extractRegion(full []byte, fullWidth, blockBytes, x, y, w, h int) []byte {
	out := make([]byte, w*h*blockBytes)
	for row := 0; row < h; row++ {
		srcOff := ((y+row)*fullWidth + x) * blockBytes
		dstOff := row * w * blockBytes
		if srcOff+w*blockBytes > len(full) {
			break
		}
		copy(out[dstOff:dstOff+w*blockBytes], full[srcOff:srcOff+w*blockBytes])
	}
	return out
}
