package shadertranslate

import (
	"fmt"
	"strings"

	"github.com/mittorn/vrend/internal/tgsi"
)

// translator holds the working state threaded through the declaration and
// instruction passes for a single shader (spec.md §4.C names these two
// passes plus a preamble emitter as the translator's three stages).
type translator struct {
	prog *tgsi.Program
	cfg  Config
	key  Key
	decl *declState

	indent int
	body   strings.Builder
}

func procKindOf(p tgsi.ProcessorType) processorKind {
	switch p {
	case tgsi.ProcessorVertex:
		return procVertex
	case tgsi.ProcessorGeometry:
		return procGeometry
	default:
		return procFragment
	}
}

// Translate converts a decoded TGSI program into GLSL source plus
// reflection info for one shader key variant. Grounded on
// original_source/src/vrend_shader.c's vrend_convert_shader, restructured
// from a single monolithic C function into declare/instruction/preamble
// passes implemented as separate files in this package.
func Translate(cfg Config, prog *tgsi.Program, key Key) (Result, error) {
	proc := procKindOf(prog.Processor)
	stage := stagePrefix(proc)
	decl := buildDeclState(prog, proc, stage)

	tr := &translator{prog: prog, cfg: cfg, key: key, decl: decl}

	var refl Reflection
	refl.GLSLVersion = cfg.GLSLVersion
	refl.NumPervertexClip = key.VSPervertexNumClip
	refl.NumClipDistances = int(popcount8(key.ClipPlaneEnable))

	var decls strings.Builder
	decl.emit(&decls, cfg, key, &refl)

	for _, ins := range prog.Instructions {
		tr.emitInstruction(ins)
	}

	tr.emitEpilogue(proc)

	var out strings.Builder
	emitPreamble(&out, cfg)
	out.WriteString(decls.String())
	out.WriteString("void main() {\n")
	out.WriteString(indentLines(tr.body.String(), 1))
	out.WriteString("}\n")

	return Result{Source: out.String(), Reflection: refl}, nil
}

func popcount8(v uint8) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func indentLines(s string, depth int) string {
	if s == "" {
		return s
	}
	pad := strings.Repeat("    ", depth)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func (tr *translator) writeln(format string, args ...any) {
	fmt.Fprintf(&tr.body, format+"\n", args...)
}

// emitInstruction lowers one TGSI instruction to GLSL. Arithmetic/compare
// opcodes translate to a single assignment built from GLSL's native
// operators or builtins; control-flow opcodes open/close braces; TEX-family
// opcodes delegate to emitTexture (texture.go).
func (tr *translator) emitInstruction(ins tgsi.Instruction) {
	switch ins.Opcode {
	case tgsi.OpMOV:
		tr.assign(ins.Dst[0], tr.operand(ins.Src[0], maskPopcount(ins.Dst[0].WriteMask)), ins.Saturate)
	case tgsi.OpADD:
		tr.binop(ins, "+")
	case tgsi.OpSUB:
		tr.binop(ins, "-")
	case tgsi.OpMUL:
		tr.binop(ins, "*")
	case tgsi.OpMAD:
		n := maskPopcount(ins.Dst[0].WriteMask)
		expr := fmt.Sprintf("(%s * %s + %s)", tr.operand(ins.Src[0], n), tr.operand(ins.Src[1], n), tr.operand(ins.Src[2], n))
		tr.assign(ins.Dst[0], expr, ins.Saturate)
	case tgsi.OpDP2:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(dot(%s, %s))", tr.operand(ins.Src[0], 2), tr.operand(ins.Src[1], 2)), ins.Saturate)
	case tgsi.OpDP3:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(dot(%s, %s))", tr.operand(ins.Src[0], 3), tr.operand(ins.Src[1], 3)), ins.Saturate)
	case tgsi.OpDP4:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(dot(%s, %s))", tr.operand(ins.Src[0], 4), tr.operand(ins.Src[1], 4)), ins.Saturate)
	case tgsi.OpRCP:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(1.0 / (%s).x)", tr.operand(ins.Src[0], 1)), ins.Saturate)
	case tgsi.OpRSQ:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(inversesqrt((%s).x))", tr.operand(ins.Src[0], 1)), ins.Saturate)
	case tgsi.OpSQRT:
		tr.unop(ins, "sqrt")
	case tgsi.OpMIN:
		tr.binfunc(ins, "min")
	case tgsi.OpMAX:
		tr.binfunc(ins, "max")
	case tgsi.OpSLT:
		tr.cmp(ins, "lessThan")
	case tgsi.OpSGE:
		tr.cmp(ins, "greaterThanEqual")
	case tgsi.OpSEQ:
		tr.cmp(ins, "equal")
	case tgsi.OpSNE:
		tr.cmp(ins, "notEqual")
	case tgsi.OpFLR:
		tr.unop(ins, "floor")
	case tgsi.OpFRC:
		tr.unop(ins, "fract")
	case tgsi.OpABS:
		tr.unop(ins, "abs")
	case tgsi.OpNEG:
		n := maskPopcount(ins.Dst[0].WriteMask)
		tr.assign(ins.Dst[0], fmt.Sprintf("(-%s)", tr.operand(ins.Src[0], n)), ins.Saturate)
	case tgsi.OpLRP:
		n := maskPopcount(ins.Dst[0].WriteMask)
		expr := fmt.Sprintf("mix(%s, %s, %s)", tr.operand(ins.Src[2], n), tr.operand(ins.Src[1], n), tr.operand(ins.Src[0], n))
		tr.assign(ins.Dst[0], expr, ins.Saturate)
	case tgsi.OpEX2:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(exp2((%s).x))", tr.operand(ins.Src[0], 1)), ins.Saturate)
	case tgsi.OpLG2:
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(log2((%s).x))", tr.operand(ins.Src[0], 1)), ins.Saturate)
	case tgsi.OpCMP:
		n := maskPopcount(ins.Dst[0].WriteMask)
		expr := fmt.Sprintf("mix(%s, %s, greaterThanEqual(%s, vec%d(0.0)))",
			tr.operand(ins.Src[1], n), tr.operand(ins.Src[2], n), tr.operand(ins.Src[0], n), maxInt(n, 1))
		tr.assign(ins.Dst[0], expr, ins.Saturate)
	case tgsi.OpDDX:
		tr.unop(ins, "dFdx")
	case tgsi.OpDDY:
		tr.unop(ins, "dFdy")

	case tgsi.OpTEX, tgsi.OpTXB, tgsi.OpTXL, tgsi.OpTXD, tgsi.OpTXF, tgsi.OpTXP,
		tgsi.OpTXQ, tgsi.OpTEX2, tgsi.OpTXB2, tgsi.OpTXL2:
		tr.emitTexture(ins)

	case tgsi.OpIF:
		tr.writeln("if ((%s).x != 0.0) {", tr.operand(ins.Src[0], 1))
	case tgsi.OpUIF:
		tr.writeln("if (floatBitsToUint((%s).x) != 0u) {", tr.operand(ins.Src[0], 1))
	case tgsi.OpELSE:
		tr.writeln("} else {")
	case tgsi.OpENDIF:
		tr.writeln("}")
	case tgsi.OpBGNLOOP:
		tr.writeln("while (true) {")
	case tgsi.OpENDLOOP:
		tr.writeln("}")
	case tgsi.OpBRK:
		tr.writeln("break;")
	case tgsi.OpCONT:
		tr.writeln("continue;")
	case tgsi.OpRET:
		tr.writeln("return;")
	case tgsi.OpKILL:
		tr.writeln("discard;")
	case tgsi.OpKILLIF:
		tr.writeln("if ((%s).x < 0.0) discard;", tr.operand(ins.Src[0], 1))
	case tgsi.OpEND:
		// handled by emitEpilogue
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (tr *translator) binop(ins tgsi.Instruction, op string) {
	n := maskPopcount(ins.Dst[0].WriteMask)
	expr := fmt.Sprintf("(%s %s %s)", tr.operand(ins.Src[0], n), op, tr.operand(ins.Src[1], n))
	tr.assign(ins.Dst[0], expr, ins.Saturate)
}

func (tr *translator) unop(ins tgsi.Instruction, fn string) {
	n := maskPopcount(ins.Dst[0].WriteMask)
	expr := fmt.Sprintf("%s(%s)", fn, tr.operand(ins.Src[0], n))
	tr.assign(ins.Dst[0], expr, ins.Saturate)
}

func (tr *translator) binfunc(ins tgsi.Instruction, fn string) {
	n := maskPopcount(ins.Dst[0].WriteMask)
	expr := fmt.Sprintf("%s(%s, %s)", fn, tr.operand(ins.Src[0], n), tr.operand(ins.Src[1], n))
	tr.assign(ins.Dst[0], expr, ins.Saturate)
}

// cmp emits a TGSI boolean-compare opcode (SLT/SGE/SEQ/SNE), which in TGSI
// produce a float 1.0/0.0 result per component rather than GLSL's native
// bvec, so the comparison is wrapped back into a vec via a ternary mix.
func (tr *translator) cmp(ins tgsi.Instruction, glslFunc string) {
	n := maskPopcount(ins.Dst[0].WriteMask)
	if n == 1 {
		expr := fmt.Sprintf("((%s).x %s (%s).x ? 1.0 : 0.0)",
			tr.operand(ins.Src[0], 1), cmpOperator(glslFunc), tr.operand(ins.Src[1], 1))
		tr.assign(ins.Dst[0], fmt.Sprintf("vec4(%s)", expr), ins.Saturate)
		return
	}
	expr := fmt.Sprintf("mix(vec%d(0.0), vec%d(1.0), %s(%s, %s))",
		n, n, glslFunc, tr.operand(ins.Src[0], n), tr.operand(ins.Src[1], n))
	tr.assign(ins.Dst[0], expr, ins.Saturate)
}

func cmpOperator(glslFunc string) string {
	switch glslFunc {
	case "lessThan":
		return "<"
	case "greaterThanEqual":
		return ">="
	case "equal":
		return "=="
	default:
		return "!="
	}
}
