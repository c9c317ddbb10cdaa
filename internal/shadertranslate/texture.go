package shadertranslate

import (
	"fmt"

	"github.com/mittorn/vrend/internal/tgsi"
)

// texCoordArity returns how many components of the coordinate operand a
// texture target actually consumes (excluding the shadow-compare or
// array-layer component, which textureFoo() takes care of via the extra
// vector component GLSL itself expects).
func texCoordArity(t tgsi.TextureTarget) int {
	switch t {
	case tgsi.Tex1D, tgsi.TexBuffer:
		return 1
	case tgsi.Tex2D, tgsi.TexRect, tgsi.Tex1DArray, tgsi.TexShadow1D:
		return 2
	case tgsi.Tex3D, tgsi.TexCube, tgsi.Tex2DArray, tgsi.Tex2DMS,
		tgsi.TexShadow2D, tgsi.TexShadowRect, tgsi.TexShadow1DArray:
		return 3
	case tgsi.TexCubeArray, tgsi.Tex2DMSArray, tgsi.TexShadowCube, tgsi.TexShadow2DArray:
		return 4
	default:
		return 2
	}
}

// emitTexture lowers one TEX-family instruction to a GLSL texture*() call,
// grounded on vrend_shader.c's translate_tex dispatch (the opcode-to-builtin
// table named in spec.md §4.C: TEX/TXB/TXL/TXD/TXF/TXP/TXQ/TEX2/TXB2/TXL2).
func (tr *translator) emitTexture(ins tgsi.Instruction) {
	if len(ins.Src) == 0 || len(ins.Dst) == 0 {
		return
	}
	sampIdx := uint32(0)
	for _, s := range ins.Src {
		if s.File == tgsi.FileSampler || s.File == tgsi.FileSamplerView {
			sampIdx = s.Index
		}
	}
	samp := samplerName(tr.decl.stage, sampIdx)
	coordArity := texCoordArity(ins.TexTarget)
	coord := tr.operand(ins.Src[0], coordArity)

	var call string
	switch ins.Opcode {
	case tgsi.OpTEX, tgsi.OpTEX2:
		call = fmt.Sprintf("texture(%s, %s)", samp, coord)
	case tgsi.OpTXB, tgsi.OpTXB2:
		bias := tr.operand(ins.Src[0], 4) + ".w"
		call = fmt.Sprintf("texture(%s, %s, %s)", samp, coord, bias)
	case tgsi.OpTXL, tgsi.OpTXL2:
		lod := tr.operand(ins.Src[0], 4) + ".w"
		call = fmt.Sprintf("textureLod(%s, %s, %s)", samp, coord, lod)
	case tgsi.OpTXP:
		call = fmt.Sprintf("textureProj(%s, %s)", samp, tr.operand(ins.Src[0], coordArity+1))
	case tgsi.OpTXD:
		ddx := tr.operand(ins.Src[1], coordArity)
		ddy := tr.operand(ins.Src[2], coordArity)
		call = fmt.Sprintf("textureGrad(%s, %s, %s, %s)", samp, coord, ddx, ddy)
	case tgsi.OpTXF:
		icoord := fmt.Sprintf("ivec%d(%s)", coordArity, coord)
		if ins.TexOffset != [3]int32{} {
			call = fmt.Sprintf("texelFetchOffset(%s, %s, 0, ivec%d(%d, %d, %d))",
				samp, icoord, coordArity, ins.TexOffset[0], ins.TexOffset[1], ins.TexOffset[2])
		} else {
			call = fmt.Sprintf("texelFetch(%s, %s, 0)", samp, icoord)
		}
	case tgsi.OpTXQ:
		call = fmt.Sprintf("vec4(textureSize(%s, 0), 0, 0)", samp)
	default:
		call = fmt.Sprintf("texture(%s, %s)", samp, coord)
	}
	tr.assign(ins.Dst[0], call, ins.Saturate)
}
