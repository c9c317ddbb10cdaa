package shadertranslate

import (
	"fmt"
	"math"

	"github.com/mittorn/vrend/internal/tgsi"
)

// operand renders a TGSI source operand as a GLSL rvalue expression,
// including swizzle and source modifiers (negate/absolute). FileImmediate
// operands are read from tr.prog.Immediates and inline as GLSL vec4
// constructors rather than uniform lookups (spec.md §4.C: "Immediates[...]
// inline into GLSL constant expressions").
func (tr *translator) operand(src tgsi.SrcRegister, n int) string {
	base := tr.operandBase(src)
	sw := swizzleSuffix(src.Swizzle, n)
	expr := base
	if sw != swizzleLetters[:n] || n < 4 {
		expr = base + "." + sw
	}
	if src.Absolute {
		expr = fmt.Sprintf("abs(%s)", expr)
	}
	if src.Negate {
		expr = fmt.Sprintf("(-%s)", expr)
	}
	return expr
}

func (tr *translator) operandBase(src tgsi.SrcRegister) string {
	switch src.File {
	case tgsi.FileTemporary:
		return tempName(src.Index)
	case tgsi.FileInput:
		if tr.decl.proc == procFragment {
			return inputName(src.Index)
		}
		return inputName(src.Index)
	case tgsi.FileOutput:
		return outputName(src.Index)
	case tgsi.FileAddress:
		return addrName(src.Index)
	case tgsi.FileConstant:
		idx := tr.constIndex(src)
		return fmt.Sprintf("%s[%s]", constArrayName(tr.decl.stage), idx)
	case tgsi.FileImmediate:
		return tr.immediateLiteral(src.Index)
	case tgsi.FileSystemValue:
		return tr.systemValue(src.Index)
	default:
		return tempName(src.Index)
	}
}

func (tr *translator) constIndex(src tgsi.SrcRegister) string {
	if src.Indirect {
		return fmt.Sprintf("int(%s.x) + %d", addrName(src.IndirectReg), src.Index)
	}
	return fmt.Sprintf("%d", src.Index)
}

// immediateLiteral renders one decoded TGSI immediate as a GLSL vec4
// constructor, bit-reinterpreting the raw words as IEEE-754 floats (the
// common case; integer immediates are reinterpreted by the consuming
// instruction via intBitsToFloat-style casts at the use site instead).
func (tr *translator) immediateLiteral(idx uint32) string {
	if int(idx) >= len(tr.prog.Immediates) {
		return "vec4(0.0)"
	}
	v := tr.prog.Immediates[idx]
	return fmt.Sprintf("vec4(%s, %s, %s, %s)",
		floatLit(v.Value[0]), floatLit(v.Value[1]), floatLit(v.Value[2]), floatLit(v.Value[3]))
}

func floatLit(bits uint32) string {
	f := math.Float32frombits(bits)
	return fmt.Sprintf("%g", float64(f))
}

// systemValue maps a TGSI SYSTEM_VALUE register to its GLSL builtin,
// grounded on vrend_shader.c's system-value declaration switch.
func (tr *translator) systemValue(idx uint32) string {
	sem := tr.decl.inSemantics[idx]
	switch sem.Name {
	case tgsi.SemanticInstanceID:
		return "vec4(intBitsToFloat(gl_InstanceID), 0.0, 0.0, 0.0)"
	case tgsi.SemanticVertexID:
		return "vec4(intBitsToFloat(gl_VertexID), 0.0, 0.0, 0.0)"
	case tgsi.SemanticPrimID:
		return "vec4(intBitsToFloat(gl_PrimitiveID), 0.0, 0.0, 0.0)"
	case tgsi.SemanticFace:
		return "vec4(gl_FrontFacing ? 1.0 : -1.0, 0.0, 0.0, 0.0)"
	default:
		return "vec4(0.0)"
	}
}

// assign emits `dst.mask = rhs;` honoring the destination's write mask and
// optional saturate clamp (spec.md §4.C instruction pass).
func (tr *translator) assign(dst tgsi.DstRegister, rhs string, saturate bool) {
	name := tr.dstBase(dst)
	mask := writeMaskSuffix(dst.WriteMask)
	n := maskPopcount(dst.WriteMask)
	if saturate {
		if n == 1 {
			rhs = fmt.Sprintf("clamp(%s, 0.0, 1.0)", rhs)
		} else {
			rhs = fmt.Sprintf("clamp(%s, vec%d(0.0), vec%d(1.0))", rhs, n, n)
		}
	}
	if mask == "" || mask == swizzleLetters {
		fmt.Fprintf(&tr.body, "%s = %s;\n", name, rhs)
		return
	}
	fmt.Fprintf(&tr.body, "%s.%s = %s;\n", name, mask, rhs)
}

func (tr *translator) dstBase(dst tgsi.DstRegister) string {
	switch dst.File {
	case tgsi.FileTemporary:
		return tempName(dst.Index)
	case tgsi.FileOutput:
		sem := tr.decl.outSemantics[dst.Index]
		if tr.decl.proc == procVertex && sem.Name == tgsi.SemanticPosition {
			return "gl_Position"
		}
		if tr.decl.proc == procFragment && sem.Name == tgsi.SemanticColor {
			return fmt.Sprintf("fsout_c%d", sem.Index)
		}
		return outputName(dst.Index)
	case tgsi.FileAddress:
		return addrName(dst.Index)
	default:
		return tempName(dst.Index)
	}
}
