package shadertranslate

import (
	"strings"
	"testing"

	"github.com/mittorn/vrend/internal/tgsi"
)

func simpleVertexProgram() *tgsi.Program {
	return &tgsi.Program{
		Processor: tgsi.ProcessorVertex,
		Declarations: []tgsi.Declaration{
			{File: tgsi.FileInput, First: 0, Last: 0, Semantic: tgsi.Semantic{Name: tgsi.SemanticGeneric}},
			{File: tgsi.FileOutput, First: 0, Last: 0, Semantic: tgsi.Semantic{Name: tgsi.SemanticPosition}},
			{File: tgsi.FileOutput, First: 1, Last: 1, Semantic: tgsi.Semantic{Name: tgsi.SemanticGeneric, Interp: tgsi.InterpPerspective}},
		},
		Instructions: []tgsi.Instruction{
			{
				Opcode: tgsi.OpMOV,
				Dst:    []tgsi.DstRegister{{File: tgsi.FileOutput, Index: 0, WriteMask: 0xf}},
				Src:    []tgsi.SrcRegister{{File: tgsi.FileInput, Index: 0, Swizzle: [4]uint8{0, 1, 2, 3}}},
			},
			{
				Opcode: tgsi.OpMOV,
				Dst:    []tgsi.DstRegister{{File: tgsi.FileOutput, Index: 1, WriteMask: 0xf}},
				Src:    []tgsi.SrcRegister{{File: tgsi.FileInput, Index: 0, Swizzle: [4]uint8{0, 1, 2, 3}}},
			},
			{Opcode: tgsi.OpEND},
		},
	}
}

func simpleFragmentProgram() *tgsi.Program {
	return &tgsi.Program{
		Processor: tgsi.ProcessorFragment,
		Declarations: []tgsi.Declaration{
			{File: tgsi.FileInput, First: 0, Last: 0, Semantic: tgsi.Semantic{Name: tgsi.SemanticGeneric, Interp: tgsi.InterpPerspective}},
			{File: tgsi.FileOutput, First: 0, Last: 0, Semantic: tgsi.Semantic{Name: tgsi.SemanticColor}},
		},
		Instructions: []tgsi.Instruction{
			{
				Opcode: tgsi.OpMOV,
				Dst:    []tgsi.DstRegister{{File: tgsi.FileOutput, Index: 0, WriteMask: 0xf}},
				Src:    []tgsi.SrcRegister{{File: tgsi.FileInput, Index: 0, Swizzle: [4]uint8{0, 1, 2, 3}}},
			},
			{Opcode: tgsi.OpEND},
		},
	}
}

func TestTranslateVertexMOV(t *testing.T) {
	cfg := Config{GLSLVersion: 330, UseCoreProfile: true}
	res, err := Translate(cfg, simpleVertexProgram(), Key{})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.Contains(res.Source, "#version 330") {
		t.Errorf("missing #version line:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "gl_Position = in_0;") {
		t.Errorf("expected gl_Position assignment, got:\n%s", res.Source)
	}
	if res.Reflection.NumInterps != 1 {
		t.Errorf("NumInterps = %d, want 1", res.Reflection.NumInterps)
	}
}

func TestTranslateFragmentColorOutput(t *testing.T) {
	cfg := Config{GLSLVersion: 330, UseCoreProfile: true}
	res, err := Translate(cfg, simpleFragmentProgram(), Key{})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.Contains(res.Source, "out vec4 fsout_c0;") {
		t.Errorf("missing fragment color output decl:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "fsout_c0 = in_0;") {
		t.Errorf("expected fsout_c0 assignment, got:\n%s", res.Source)
	}
}

func TestTranslateAlphaTestDiscard(t *testing.T) {
	cfg := Config{GLSLVersion: 330, UseCoreProfile: true}
	key := Key{AddAlphaTest: true, AlphaTestFunc: AlphaGreater, AlphaRefValue: 0.5}
	res, err := Translate(cfg, simpleFragmentProgram(), key)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.Contains(res.Source, "discard;") {
		t.Errorf("expected alpha-test discard in fragment shader:\n%s", res.Source)
	}
}

func TestKeyPack64Distinguishes(t *testing.T) {
	a := Key{Flatshade: true}
	b := Key{Flatshade: false}
	if a.Pack64() == b.Pack64() {
		t.Errorf("distinct keys packed to the same value")
	}
}

func TestPatchVertexInterpolants(t *testing.T) {
	cfg := Config{GLSLVersion: 330, UseCoreProfile: true}
	vs, err := Translate(cfg, simpleVertexProgram(), Key{})
	if err != nil {
		t.Fatalf("Translate vs: %v", err)
	}
	fsInterp := []InterpInfo{{SemanticName: tgsi.SemanticGeneric, SemanticIndex: 0, Interpolate: tgsi.InterpConstant}}
	patched := PatchVertexInterpolants(vs.Source, vs.Reflection.Interp, fsInterp, false, false)
	if !strings.Contains(patched, "flat") {
		t.Errorf("expected patched vertex shader to carry a flat qualifier, got:\n%s", patched)
	}
}

func TestSwizzleSuffix(t *testing.T) {
	cases := []struct {
		sw   [4]uint8
		n    int
		want string
	}{
		{[4]uint8{0, 1, 2, 3}, 4, "xyzw"},
		{[4]uint8{2, 2, 2, 2}, 1, "z"},
		{[4]uint8{3, 0, 0, 0}, 2, "wx"},
	}
	for _, c := range cases {
		if got := swizzleSuffix(c.sw, c.n); got != c.want {
			t.Errorf("swizzleSuffix(%v, %d) = %q, want %q", c.sw, c.n, got, c.want)
		}
	}
}

func TestWriteMaskSuffix(t *testing.T) {
	if got := writeMaskSuffix(0xf); got != "xyzw" {
		t.Errorf("writeMaskSuffix(0xf) = %q, want xyzw", got)
	}
	if got := writeMaskSuffix(0x5); got != "xz" {
		t.Errorf("writeMaskSuffix(0x5) = %q, want xz", got)
	}
}
