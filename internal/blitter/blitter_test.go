package blitter

import (
	"strings"
	"testing"

	"github.com/mittorn/vrend/internal/glapi"
)

func TestSamplerTypeForTarget(t *testing.T) {
	cases := []struct {
		target uint32
		ms     bool
		want   string
	}{
		{glapi.TEXTURE_2D, false, "sampler2D"},
		{glapi.TEXTURE_2D, true, "sampler2DMS"},
		{glapi.TEXTURE_2D_MULTISAMPLE_ARRAY, true, "sampler2DMSArray"},
		{glapi.TEXTURE_3D, false, "sampler3D"},
		{glapi.TEXTURE_2D_ARRAY, false, "sampler2DArray"},
		{glapi.TEXTURE_CUBE_MAP, false, "samplerCube"},
		{glapi.TEXTURE_1D, false, "sampler1D"},
	}
	for _, c := range cases {
		if got := samplerTypeFor(c.target, c.ms); got != c.want {
			t.Errorf("samplerTypeFor(%#x, %v) = %q, want %q", c.target, c.ms, got, c.want)
		}
	}
}

func TestFragmentSourceDepthWritesFragDepth(t *testing.T) {
	src := fragmentSource(fsKey{target: glapi.TEXTURE_2D, depth: true})
	if !strings.Contains(src, "gl_FragDepth") {
		t.Errorf("depth fragment shader must write gl_FragDepth:\n%s", src)
	}
	if strings.Contains(src, "fragColor") {
		t.Errorf("depth fragment shader must not declare a color output:\n%s", src)
	}
}

func TestFragmentSourceEmuAlphaForcesOpaque(t *testing.T) {
	src := fragmentSource(fsKey{target: glapi.TEXTURE_2D, emuAlpha: true})
	if !strings.Contains(src, ".rgb1") {
		t.Errorf("emulated-alpha color fragment shader must force alpha to 1:\n%s", src)
	}
}

func TestFragmentSourceMultisampleUsesTexelFetch(t *testing.T) {
	src := fragmentSource(fsKey{target: glapi.TEXTURE_2D, ms: true})
	if !strings.Contains(src, "texelFetch") {
		t.Errorf("multisample fragment shader must use texelFetch with gl_SampleID:\n%s", src)
	}
}
