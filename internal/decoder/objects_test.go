package decoder

import (
	"testing"

	"github.com/mittorn/vrend/protocol"
)

func TestDecodeBlendReadsPerRTState(t *testing.T) {
	p := make([]uint32, 8*8)
	// RT0: enabled, srcRGB=1, dstRGB=2, eqRGB=3, srcA=4, dstA=5, eqA=6, mask=0b1010
	p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7] = 1, 1, 2, 3, 4, 5, 6, 0b1010

	bs := decodeBlend(p)
	if !bs.Enabled[0] {
		t.Errorf("RT0 Enabled = false, want true")
	}
	if bs.SrcRGB[0] != 1 || bs.DstRGB[0] != 2 || bs.EqRGB[0] != 3 {
		t.Errorf("RT0 RGB factors = %d/%d/%d, want 1/2/3", bs.SrcRGB[0], bs.DstRGB[0], bs.EqRGB[0])
	}
	if bs.SrcA[0] != 4 || bs.DstA[0] != 5 || bs.EqA[0] != 6 {
		t.Errorf("RT0 alpha factors = %d/%d/%d, want 4/5/6", bs.SrcA[0], bs.DstA[0], bs.EqA[0])
	}
	want := [4]bool{false, true, false, true}
	if bs.ColorMask[0] != want {
		t.Errorf("RT0 ColorMask = %v, want %v", bs.ColorMask[0], want)
	}
	if bs.Enabled[1] {
		t.Errorf("RT1 Enabled = true, want false (zero payload)")
	}
}

func TestDecodeDSAReadsDepthStencilAlpha(t *testing.T) {
	p := make([]uint32, 18)
	p[0], p[1], p[2] = 1, 1, 0x0203 // depth enabled, write, func
	// face 0 at offset 3
	p[3], p[4], p[5], p[6], p[7], p[8], p[9] = 1, 0, 0xff, 0xff, 1, 2, 3
	p[17] = 1 // alpha test enabled

	d := decodeDSA(p)
	if !d.DepthEnabled || !d.DepthWrite || d.DepthFunc != 0x0203 {
		t.Fatalf("unexpected depth state: %+v", d)
	}
	if !d.StencilEnabled {
		t.Errorf("StencilEnabled should derive from StencilFunc[0] != 0")
	}
	if d.StencilFailOp[0] != 1 || d.StencilZFail[0] != 2 || d.StencilZPass[0] != 3 {
		t.Errorf("unexpected stencil ops: %+v", d)
	}
	if !d.AlphaTestEnabled {
		t.Errorf("AlphaTestEnabled = false, want true")
	}
}

func TestDecodeRasterizerReadsFixedShape(t *testing.T) {
	p := []uint32{1, 0, 2, 1, 1, 0, protocol.EncodeFloat(2.5), protocol.EncodeFloat(1.0)}
	r := decodeRasterizer(p)
	if !r.FrontCCW || r.CullFace || r.CullMode != 2 || r.FillMode != 1 {
		t.Fatalf("unexpected rasterizer fixed fields: %+v", r)
	}
	if !r.Flatshade || r.ColorTwoSide {
		t.Fatalf("unexpected flatshade/color-two-side: %+v", r)
	}
	if r.PointSize != 2.5 || r.LineWidth != 1.0 {
		t.Errorf("PointSize/LineWidth = %v/%v, want 2.5/1.0", r.PointSize, r.LineWidth)
	}
}
