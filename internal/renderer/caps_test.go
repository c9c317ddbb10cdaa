package renderer

import "testing"

func TestGLSLLevel(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"1.40", 140},
		{"3.30 NVIDIA 535.54.03", 330},
		{"4.60", 460},
		{"1.0", 100},
		{"", 0},
		{"garbage", 0},
	}
	for _, c := range cases {
		if got := glslLevel(c.in); got != c.want {
			t.Errorf("glslLevel(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
