package renderer

import (
	"testing"

	"github.com/mittorn/vrend/internal/glapi"
)

func TestCubeFaceCount(t *testing.T) {
	if got := cubeFaceCount(&Resource{Target: glapi.TEXTURE_CUBE_MAP}); got != 6 {
		t.Errorf("cube map face count = %d, want 6", got)
	}
	if got := cubeFaceCount(&Resource{Target: glapi.TEXTURE_2D}); got != 1 {
		t.Errorf("2D face count = %d, want 1", got)
	}
}

func TestFaceTargetIteratesCubeFaces(t *testing.T) {
	res := &Resource{Target: glapi.TEXTURE_CUBE_MAP}
	for face := 0; face < 6; face++ {
		want := glapi.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face)
		if got := faceTarget(res, face); got != want {
			t.Errorf("faceTarget(cube, %d) = %#x, want %#x", face, got, want)
		}
	}
	res2d := &Resource{Target: glapi.TEXTURE_2D}
	if got := faceTarget(res2d, 0); got != glapi.TEXTURE_2D {
		t.Errorf("faceTarget(2D, 0) = %#x, want TEXTURE_2D", got)
	}
}

func TestIsCubeFaceTarget(t *testing.T) {
	for face := uint32(0); face < 6; face++ {
		if !isCubeFaceTarget(glapi.TEXTURE_CUBE_MAP_POSITIVE_X + face) {
			t.Errorf("face %d should be recognized as a cube face target", face)
		}
	}
	if isCubeFaceTarget(glapi.TEXTURE_2D) {
		t.Errorf("TEXTURE_2D should not be recognized as a cube face target")
	}
}

func TestExtractRegion(t *testing.T) {
	// 4x4 image, 1 byte per texel, values 0..15 row-major.
	full := make([]byte, 16)
	for i := range full {
		full[i] = byte(i)
	}
	region := extractRegion(full, 4, 1, 1, 1, 2, 2)
	want := []byte{5, 6, 9, 10}
	if len(region) != len(want) {
		t.Fatalf("region length = %d, want %d", len(region), len(want))
	}
	for i := range want {
		if region[i] != want[i] {
			t.Errorf("region[%d] = %d, want %d", i, region[i], want[i])
		}
	}
}
