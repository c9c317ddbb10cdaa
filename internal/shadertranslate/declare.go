package shadertranslate

import (
	"fmt"
	"strings"

	"github.com/mittorn/vrend/internal/tgsi"
)

// declState carries the working set built during the declaration pass and
// consumed by the instruction pass: which registers exist, and the sampler
// target each sampler index is actually used with (scanned from the
// instruction stream, since a TGSI SAMPLER declaration alone doesn't carry
// dimensionality — only the TEX-family instructions referencing it do).
type declState struct {
	stage        string
	proc         processorKind
	samplerTarget map[uint32]tgsi.TextureTarget
	maxTemp      uint32
	maxInput     uint32
	maxOutput    uint32
	maxSampler   uint32
	maxConst     uint32
	numUBOs      int
	writesAllCbufs bool
	outSemantics map[uint32]tgsi.Semantic
	inSemantics  map[uint32]tgsi.Semantic
}

func scanSamplerTargets(prog *tgsi.Program) map[uint32]tgsi.TextureTarget {
	m := make(map[uint32]tgsi.TextureTarget)
	for _, ins := range prog.Instructions {
		switch ins.Opcode {
		case tgsi.OpTEX, tgsi.OpTXB, tgsi.OpTXL, tgsi.OpTXD, tgsi.OpTXF, tgsi.OpTXP,
			tgsi.OpTXQ, tgsi.OpTEX2, tgsi.OpTXB2, tgsi.OpTXL2:
			for _, src := range ins.Src {
				if src.File == tgsi.FileSampler || src.File == tgsi.FileSamplerView {
					m[src.Index] = ins.TexTarget
				}
			}
		}
	}
	return m
}

func buildDeclState(prog *tgsi.Program, proc processorKind, stage string) *declState {
	d := &declState{
		stage:         stage,
		proc:          proc,
		samplerTarget: scanSamplerTargets(prog),
		outSemantics:  make(map[uint32]tgsi.Semantic),
		inSemantics:   make(map[uint32]tgsi.Semantic),
	}
	for _, decl := range prog.Declarations {
		switch decl.File {
		case tgsi.FileTemporary:
			if decl.Last+1 > d.maxTemp {
				d.maxTemp = decl.Last + 1
			}
		case tgsi.FileInput:
			if decl.Last+1 > d.maxInput {
				d.maxInput = decl.Last + 1
			}
			for i := decl.First; i <= decl.Last; i++ {
				d.inSemantics[i] = decl.Semantic
			}
		case tgsi.FileOutput:
			if decl.Last+1 > d.maxOutput {
				d.maxOutput = decl.Last + 1
			}
			for i := decl.First; i <= decl.Last; i++ {
				d.outSemantics[i] = decl.Semantic
			}
		case tgsi.FileSampler, tgsi.FileSamplerView:
			if decl.Last+1 > d.maxSampler {
				d.maxSampler = decl.Last + 1
			}
		case tgsi.FileConstant:
			if decl.Dimension {
				if int(decl.Index2D)+1 > d.numUBOs {
					d.numUBOs = int(decl.Index2D) + 1
				}
				continue
			}
			if decl.Last+1 > d.maxConst {
				d.maxConst = decl.Last + 1
			}
		}
	}
	for _, p := range prog.Properties {
		if p.Name == tgsi.PropFSColorOnWriteAll {
			d.writesAllCbufs = p.Value != 0
		}
	}
	return d
}

// samplerGLType maps a TGSI texture target to the GLSL sampler type name,
// selecting a shadow sampler variant when the target carries one. Grounded
// on vrend_shader_samplertypeconv (original_source/src/vrend_shader.h).
func samplerGLType(t tgsi.TextureTarget) (glType string, shadow bool) {
	switch t {
	case tgsi.Tex1D:
		return "sampler1D", false
	case tgsi.Tex2D:
		return "sampler2D", false
	case tgsi.Tex3D:
		return "sampler3D", false
	case tgsi.TexCube:
		return "samplerCube", false
	case tgsi.TexRect:
		return "sampler2DRect", false
	case tgsi.Tex1DArray:
		return "sampler1DArray", false
	case tgsi.Tex2DArray:
		return "sampler2DArray", false
	case tgsi.TexCubeArray:
		return "samplerCubeArray", false
	case tgsi.TexBuffer:
		return "samplerBuffer", false
	case tgsi.Tex2DMS:
		return "sampler2DMS", false
	case tgsi.Tex2DMSArray:
		return "sampler2DMSArray", false
	case tgsi.TexShadow1D:
		return "sampler1DShadow", true
	case tgsi.TexShadow2D:
		return "sampler2DShadow", true
	case tgsi.TexShadowCube:
		return "samplerCubeShadow", true
	case tgsi.TexShadow1DArray:
		return "sampler1DArrayShadow", true
	case tgsi.TexShadow2DArray:
		return "sampler2DArrayShadow", true
	case tgsi.TexShadowRect:
		return "sampler2DRectShadow", true
	default:
		return "sampler2D", false
	}
}

// interpQualifier returns the bare GLSL qualifier word for a varying
// (vertex-shader output or fragment-shader input). The INTERP_PREFIX
// placeholder padding is added separately, by interpPrefixPad on the
// vertex-output path, so the later text-patch step (interp.go) can
// overwrite a vertex-shader output line in place without shifting any byte
// offset recorded before linking (spec.md §4.C "Linker patchback", §9
// design note).
func interpQualifier(interp tgsi.Interpolation, flatshade bool) string {
	switch interp {
	case tgsi.InterpConstant:
		return "flat"
	case tgsi.InterpLinear:
		return "noperspective"
	case tgsi.InterpColor:
		if flatshade {
			return "flat"
		}
		return "smooth"
	default:
		return "smooth"
	}
}

func (d *declState) emit(b *strings.Builder, cfg Config, key Key, refl *Reflection) {
	flatshade := key.Flatshade

	for i := uint32(0); i < d.maxTemp; i++ {
		fmt.Fprintf(b, "vec4 %s;\n", tempName(i))
	}

	switch d.proc {
	case procVertex:
		for i := uint32(0); i < d.maxInput; i++ {
			fmt.Fprintf(b, "in vec4 %s;\n", inputName(i))
		}
		for i := uint32(0); i < d.maxOutput; i++ {
			sem := d.outSemantics[i]
			if sem.Name == tgsi.SemanticPosition {
				continue // gl_Position, no user declaration
			}
			qual := interpQualifier(sem.Interp, flatshade)
			// INTERP_PREFIX padding: reserve the same column width the
			// patchback step expects when it rewrites this qualifier in
			// place after seeing the paired fragment shader's input decls.
			fmt.Fprintf(b, "%s%sout vec4 %s;\n", interpPrefixPad(qual), qual+" ", outputName(i))
			refl.Interp = append(refl.Interp, InterpInfo{
				SemanticName: sem.Name, SemanticIndex: sem.Index, Interpolate: sem.Interp,
			})
		}
	case procGeometry:
		for i := uint32(0); i < d.maxInput; i++ {
			fmt.Fprintf(b, "in vec4 %s[];\n", inputName(i))
		}
		for i := uint32(0); i < d.maxOutput; i++ {
			fmt.Fprintf(b, "out vec4 %s;\n", outputName(i))
		}
	default: // procFragment
		for i := uint32(0); i < d.maxInput; i++ {
			sem := d.inSemantics[i]
			qual := interpQualifier(sem.Interp, flatshade)
			fmt.Fprintf(b, "%s in vec4 %s;\n", qual, inputName(i))
		}
		ncolor := 1
		if d.writesAllCbufs {
			ncolor = 8 // worst case, trimmed to the bound framebuffer's count at link time
		}
		for i := 0; i < ncolor; i++ {
			fmt.Fprintf(b, "out vec4 fsout_c%d;\n", i)
		}
		refl.NumOutputs = ncolor
	}

	if d.maxConst > 0 {
		fmt.Fprintf(b, "uniform vec4 %s[%d];\n", constArrayName(d.stage), d.maxConst)
	}
	for i := 0; i < d.numUBOs; i++ {
		fmt.Fprintf(b, "layout(std140) uniform %sblock%d { vec4 %s[]; };\n",
			d.stage, i, uboName(d.stage, uint32(i)))
	}
	for i := uint32(0); i < d.maxSampler; i++ {
		target, shadow := samplerGLType(d.samplerTarget[i])
		fmt.Fprintf(b, "uniform %s %s;\n", target, samplerName(d.stage, i))
		if shadow {
			fmt.Fprintf(b, "uniform vec4 %s;\n", shadowMaskName(d.stage, i))
			fmt.Fprintf(b, "uniform vec4 %s;\n", shadowAddName(d.stage, i))
			refl.ShadowSampMask |= 1 << i
		}
		refl.SamplersUsedMask |= 1 << i
	}

	refl.NumConsts = int(d.maxConst)
	refl.NumInputs = int(d.maxInput)
	refl.NumInterps = len(refl.Interp)
	refl.NumUBOs = d.numUBOs
}

// interpPrefix reserves INTERP_PREFIX's column width (vrend_shader.c:
// `#define INTERP_PREFIX "               "`, 15 spaces of padding) in front
// of every interpolation qualifier, so the widest qualifier word
// ("noperspective") and the narrowest ("flat") occupy the same total column
// count. The patchback step then overwrites this fixed-width region in
// place without shifting any byte offset recorded before linking.
const interpPrefix = "               "

func interpPrefixPad(qual string) string {
	widest := len("noperspective")
	pad := widest - len(qual)
	if pad < 0 {
		pad = 0
	}
	return interpPrefix[:pad]
}
