package tgsi

import "testing"

// encodeTestProgram builds the wire words for a one-declaration,
// one-property, one-immediate, one-instruction program by hand, mirroring
// the layout Decode documents, so the test doesn't depend on an Encode
// counterpart this package doesn't need (the wire format only ever flows
// guest→host).
func encodeTestProgram() []uint32 {
	words := []uint32{uint32(ProcessorFragment)}

	// 1 declaration: OUTPUT register 0, semantic COLOR index 0, perspective.
	words = append(words, 1)
	words = append(words, uint32(FileOutput), 0, 0, uint32(SemanticColor), 0, uint32(InterpPerspective), 0, 0, 0)

	// 1 property.
	words = append(words, 1)
	words = append(words, uint32(PropFSColorOnWriteAll), 1)

	// 1 immediate.
	words = append(words, 1)
	words = append(words, 1, 0, 0, 0x3f800000)

	// 1 instruction: MOV OUTPUT[0] <- IMMEDIATE[0], no saturate/offset.
	words = append(words, 1)
	words = append(words, uint32(OpMOV), 0, 0, 0, 0, 0)
	words = append(words, 1, uint32(FileOutput), 0, 0xf, 0, 0)
	words = append(words, 1, uint32(FileImmediate), 0, 0, 1, 2, 3, 0, 0, 0, 0)

	return words
}

func TestDecodeRoundTripsShape(t *testing.T) {
	p, err := Decode(encodeTestProgram())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Processor != ProcessorFragment {
		t.Errorf("Processor = %v, want ProcessorFragment", p.Processor)
	}
	if len(p.Declarations) != 1 || p.Declarations[0].File != FileOutput || p.Declarations[0].Semantic.Name != SemanticColor {
		t.Fatalf("unexpected declarations: %+v", p.Declarations)
	}
	if len(p.Properties) != 1 || p.Properties[0].Value != 1 {
		t.Fatalf("unexpected properties: %+v", p.Properties)
	}
	if len(p.Immediates) != 1 || p.Immediates[0].Value[3] != 0x3f800000 {
		t.Fatalf("unexpected immediates: %+v", p.Immediates)
	}
	if len(p.Instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(p.Instructions))
	}
	instr := p.Instructions[0]
	if instr.Opcode != OpMOV {
		t.Errorf("Opcode = %v, want OpMOV", instr.Opcode)
	}
	if len(instr.Dst) != 1 || instr.Dst[0].WriteMask != 0xf {
		t.Fatalf("unexpected dst registers: %+v", instr.Dst)
	}
	if len(instr.Src) != 1 || instr.Src[0].File != FileImmediate {
		t.Fatalf("unexpected src registers: %+v", instr.Src)
	}
}

func TestDecodeTruncatedPayloadErrors(t *testing.T) {
	words := encodeTestProgram()
	_, err := Decode(words[:len(words)-3])
	if err == nil {
		t.Fatalf("expected an error decoding a truncated payload")
	}
}
