package tgsi

import "fmt"

// Decode parses the flat DWORD encoding CREATE_OBJECT(shader) carries on the
// wire: a small record-tagged stream rather than the original project's TGSI
// *text* grammar (graw_decode_create_shader there runs the payload through
// tgsi_text_translate). Reproducing that text grammar is out of scope here;
// the guest-facing detail that matters to this module is the decoded
// Program shape the translator consumes, so the wire format below is this
// module's own pragmatic choice, recorded as a resolved Open Question
// rather than left ambiguous.
//
// Layout: [processor] [nDecl] decl... [nProp] prop... [nImm] imm(4 words)...
// [nInstr] instr...
// decl: file, first, last, semanticName, semanticIndex, interp, arrayID,
//
//	dimension(0/1), index2d
//
// prop: name, value
// instr: opcode, saturate(0/1), texTarget, texOffsetX, texOffsetY, texOffsetZ,
//
//	nDst, dst(file,index,writemask,indirect,indirectReg)...,
//	nSrc, src(file,index,sw0,sw1,sw2,sw3,negate,absolute,indirect,indirectReg)...
func Decode(words []uint32) (*Program, error) {
	d := &decodeCursor{words: words}
	p := &Program{Processor: ProcessorType(d.next())}

	for n := d.next(); n > 0; n-- {
		p.Declarations = append(p.Declarations, Declaration{
			File:  File(d.next()),
			First: d.next(),
			Last:  d.next(),
			Semantic: Semantic{
				Name:  SemanticName(d.next()),
				Index: d.next(),
				Interp: Interpolation(d.next()),
			},
			ArrayID:   d.next(),
			Dimension: d.next() != 0,
			Index2D:   d.next(),
		})
	}

	for n := d.next(); n > 0; n-- {
		p.Properties = append(p.Properties, Property{Name: PropertyName(d.next()), Value: d.next()})
	}

	for n := d.next(); n > 0; n-- {
		p.Immediates = append(p.Immediates, Immediate{Value: [4]uint32{d.next(), d.next(), d.next(), d.next()}})
	}

	for n := d.next(); n > 0; n-- {
		instr := Instruction{
			Opcode:    Opcode(d.next()),
			Saturate:  d.next() != 0,
			TexTarget: TextureTarget(d.next()),
			TexOffset: [3]int32{int32(d.next()), int32(d.next()), int32(d.next())},
		}
		for nd := d.next(); nd > 0; nd-- {
			instr.Dst = append(instr.Dst, DstRegister{
				File: File(d.next()), Index: d.next(), WriteMask: uint8(d.next()),
				Indirect: d.next() != 0, IndirectReg: d.next(),
			})
		}
		for ns := d.next(); ns > 0; ns-- {
			instr.Src = append(instr.Src, SrcRegister{
				File: File(d.next()), Index: d.next(),
				Swizzle:  [4]uint8{uint8(d.next()), uint8(d.next()), uint8(d.next()), uint8(d.next())},
				Negate:   d.next() != 0,
				Absolute: d.next() != 0,
				Indirect: d.next() != 0, IndirectReg: d.next(),
			})
		}
		p.Instructions = append(p.Instructions, instr)
	}

	if d.err != nil {
		return nil, d.err
	}
	return p, nil
}

type decodeCursor struct {
	words []uint32
	pos   int
	err   error
}

func (d *decodeCursor) next() uint32 {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.words) {
		d.err = fmt.Errorf("tgsi: decode ran past end of %d-word payload", len(d.words))
		return 0
	}
	w := d.words[d.pos]
	d.pos++
	return w
}
