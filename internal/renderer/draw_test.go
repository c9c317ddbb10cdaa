package renderer

import (
	"testing"

	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/program"
)

func TestStageUniformsForMapsStageKeys(t *testing.T) {
	linked := &program.Linked{Stage: map[program.ShaderStage]program.StageUniforms{
		program.StageVS: {ConstLocations: []int32{1}},
		program.StageFS: {ConstLocations: []int32{2}},
		program.StageGS: {ConstLocations: []int32{3}},
	}}
	cases := []struct {
		stage string
		want  int32
	}{
		{"vs", 1}, {"fs", 2}, {"gs", 3},
	}
	for _, c := range cases {
		su, ok := stageUniformsFor(linked, c.stage)
		if !ok {
			t.Fatalf("stageUniformsFor(%q) not found", c.stage)
		}
		if len(su.ConstLocations) != 1 || su.ConstLocations[0] != c.want {
			t.Errorf("stageUniformsFor(%q) = %v, want [%d]", c.stage, su.ConstLocations, c.want)
		}
	}
	if _, ok := stageUniformsFor(linked, "tess"); ok {
		t.Errorf("stageUniformsFor(unknown stage) should report not-found")
	}
	if _, ok := stageUniformsFor(nil, "vs"); ok {
		t.Errorf("stageUniformsFor(nil linked) should report not-found")
	}
}

func TestFlattenClipPlanes(t *testing.T) {
	var planes [8][4]float32
	planes[0] = [4]float32{1, 2, 3, 4}
	planes[7] = [4]float32{5, 6, 7, 8}
	words := flattenClipPlanes(planes)
	if len(words) != 32 {
		t.Fatalf("len(words) = %d, want 32", len(words))
	}
	if floatBits(1) != words[0] || floatBits(4) != words[3] {
		t.Errorf("plane 0 not flattened in order: %v", words[:4])
	}
	if floatBits(5) != words[28] || floatBits(8) != words[31] {
		t.Errorf("plane 7 not flattened in order: %v", words[28:32])
	}
}

func TestIndexByteOffset(t *testing.T) {
	cases := []struct {
		start, size uint32
		want        uintptr
	}{
		{10, 2, 20},
		{10, 4, 40},
		{10, 0, 20}, // zero size defaults to 2 bytes
	}
	for _, c := range cases {
		if got := indexByteOffset(c.start, c.size); got != c.want {
			t.Errorf("indexByteOffset(%d, %d) = %d, want %d", c.start, c.size, got, c.want)
		}
	}
}

func TestIndexSizeGLType(t *testing.T) {
	cases := []struct {
		size uint32
		want uint32
	}{
		{1, glapi.UNSIGNED_BYTE},
		{2, glapi.UNSIGNED_SHORT},
		{4, glapi.UNSIGNED_INT},
		{0, glapi.UNSIGNED_SHORT},
	}
	for _, c := range cases {
		p := DrawParams{IndexSize: c.size}
		if got := p.indexSizeGLType(); got != c.want {
			t.Errorf("indexSizeGLType(size=%d) = %#x, want %#x", c.size, got, c.want)
		}
	}
}

func TestUintptrOfSliceEmptyIsZero(t *testing.T) {
	if got := uintptrOfSlice(nil); got != 0 {
		t.Errorf("uintptrOfSlice(nil) = %d, want 0", got)
	}
	words := []uint32{1, 2, 3}
	if got := uintptrOfSlice(words); got == 0 {
		t.Errorf("uintptrOfSlice(non-empty) should not be 0")
	}
}
