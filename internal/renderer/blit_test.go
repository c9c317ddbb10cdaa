package renderer

import (
	"testing"

	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
)

func TestNeedsShaderBlitColorSameFormat(t *testing.T) {
	formats := format.New()
	rgba, _ := formats.Lookup(format.FormatR8G8B8A8Unorm)
	src := &Resource{Format: rgba}
	dst := &Resource{Format: rgba}
	p := BlitParams{Src: src, Dst: dst, SrcBox: Box{W: 4, H: 4}, DstBox: Box{W: 4, H: 4}}
	if needsShaderBlit(p, formats) {
		t.Errorf("same renderable color format, matched boxes: expected glBlitFramebuffer to suffice")
	}
}

func TestNeedsShaderBlitDepthFormatMismatch(t *testing.T) {
	formats := format.New()
	z16, _ := formats.Lookup(format.FormatZ16Unorm)
	z32, _ := formats.Lookup(format.FormatZ32Float)
	src := &Resource{Format: z16}
	dst := &Resource{Format: z32}
	p := BlitParams{Src: src, Dst: dst}
	if !needsShaderBlit(p, formats) {
		t.Errorf("differing depth internal formats must fall back to the shader blitter")
	}
}

func TestNeedsShaderBlitLinearOnDepthMask(t *testing.T) {
	formats := format.New()
	z16, _ := formats.Lookup(format.FormatZ16Unorm)
	src := &Resource{Format: z16}
	dst := &Resource{Format: z16}
	p := BlitParams{Src: src, Dst: dst, Linear: true, Mask: glapi.DEPTH_BUFFER_BIT}
	if !needsShaderBlit(p, formats) {
		t.Errorf("LINEAR filter on a depth mask must fall back to the shader blitter")
	}
}

func TestNeedsShaderBlitUnscaledMultisample(t *testing.T) {
	formats := format.New()
	rgba, _ := formats.Lookup(format.FormatR8G8B8A8Unorm)
	src := &Resource{Format: rgba, Samples: 4}
	dst := &Resource{Format: rgba, Samples: 1}
	p := BlitParams{
		Src: src, Dst: dst,
		SrcBox: Box{W: 8, H: 8}, DstBox: Box{W: 4, H: 4},
		ScaledBlitAvail: false,
	}
	if !needsShaderBlit(p, formats) {
		t.Errorf("scaled MS-to-1x blit without scaled_blit support must fall back")
	}

	p.ScaledBlitAvail = true
	if needsShaderBlit(p, formats) {
		t.Errorf("scaled_blit available: glBlitFramebuffer should handle the scaled MS resolve")
	}
}

func TestNeedsShaderBlit3DDepthMismatch(t *testing.T) {
	formats := format.New()
	rgba, _ := formats.Lookup(format.FormatR8G8B8A8Unorm)
	src := &Resource{Format: rgba, Depth: 4}
	dst := &Resource{Format: rgba, Depth: 2}
	p := BlitParams{Src: src, Dst: dst, SrcBox: Box{W: 4, H: 4}, DstBox: Box{W: 4, H: 4}}
	if !needsShaderBlit(p, formats) {
		t.Errorf("mismatched 3D depth extents must fall back to the shader blitter")
	}
}

func TestNeedsShaderBlitUnrenderableFormat(t *testing.T) {
	formats := format.New()
	unknown := format.Entry{Format: 0xffff}
	rgba, _ := formats.Lookup(format.FormatR8G8B8A8Unorm)
	src := &Resource{Format: unknown}
	dst := &Resource{Format: rgba}
	p := BlitParams{Src: src, Dst: dst}
	if !needsShaderBlit(p, formats) {
		t.Errorf("unrenderable source format must fall back to the shader blitter")
	}
}
