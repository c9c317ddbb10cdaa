package shadertranslate

import "fmt"

// emitEpilogue appends the per-key fixups virglrenderer performs after the
// translated instruction stream but before the closing brace of main():
// winsys y-flip, polygon-stipple discard, alpha test as discard (core
// profile has no fixed-function alpha test), and broadcasting
// gl_FragColor-style "write all color buffers" fragment output. For
// ColorTwoSide only a marker comment is written; no front/back color select
// on gl_FrontFacing is emitted.
// Grounded on vrend_shader.c's end-of-function key handling (spec.md §4.C,
// §9 design note on emulated fixed-function state).
func (tr *translator) emitEpilogue(proc processorKind) {
	switch proc {
	case procVertex:
		if tr.key.InvertFSOrigin {
			tr.writeln("gl_Position.y = -gl_Position.y;")
		}
		for i, ent := range tr.prog.StreamOutput.Output {
			tr.writeln("// streamout[%d]: register %d -> buffer %d", i, ent.RegisterIndex, ent.OutputBuffer)
		}
		if n := int(tr.key.VSPervertexNumClip); n > 0 {
			for i := 0; i < n && i < 8; i++ {
				if tr.key.ClipPlaneEnable&(1<<uint(i)) == 0 {
					continue
				}
				tr.writeln("gl_ClipDistance[%d] = dot(gl_Position, vec4(0.0));", i)
			}
		}
	case procFragment:
		if tr.key.PstippleTex {
			tr.writeln("if (texture(%s, gl_FragCoord.xy / 32.0).x < 0.5) discard;", samplerName(tr.decl.stage, 0))
		}
		if tr.key.AddAlphaTest {
			tr.emitAlphaTest()
		}
		if tr.key.ColorTwoSide {
			tr.writeln("// color_two_side: no front/back color select emitted")
		}
		if tr.decl.writesAllCbufs {
			for i := 1; i < tr.decl.writesAllCbufsCount(); i++ {
				tr.writeln("fsout_c%d = fsout_c0;", i)
			}
		}
	}
}

func (d *declState) writesAllCbufsCount() int {
	if !d.writesAllCbufs {
		return 1
	}
	return 8
}

func (tr *translator) emitAlphaTest() {
	if tr.key.AlphaTestFunc == AlphaAlways {
		return
	}
	if tr.key.AlphaTestFunc == AlphaNever {
		tr.writeln("discard;")
		return
	}
	ref := tr.key.AlphaRefValue
	op := alphaTestOperator(tr.key.AlphaTestFunc)
	tr.writeln("if (!(fsout_c0.a %s %s)) discard;", op, fmt.Sprintf("%g", float64(ref)))
}

func alphaTestOperator(f AlphaFunc) string {
	switch f {
	case AlphaLess:
		return "<"
	case AlphaEqual:
		return "=="
	case AlphaLessEqual:
		return "<="
	case AlphaGreater:
		return ">"
	case AlphaNotEqual:
		return "!="
	case AlphaGreaterEqual:
		return ">="
	default:
		return "=="
	}
}
