package renderer

import (
	"testing"

	"github.com/mittorn/vrend/internal/glapi"
)

func TestRenderConditionModeGLToken(t *testing.T) {
	cases := []struct {
		mode RenderConditionMode
		want uint32
	}{
		{RenderConditionWait, glapi.CONDITIONAL_RENDER_WAIT},
		{RenderConditionNoWait, glapi.CONDITIONAL_RENDER_NO_WAIT},
		{RenderConditionByRegionWait, glapi.CONDITIONAL_RENDER_BY_REGION_WAIT},
		{RenderConditionByRegionNoWait, glapi.CONDITIONAL_RENDER_BY_REGION_NO_WAIT},
	}
	for _, c := range cases {
		if got := c.mode.glToken(); got != c.want {
			t.Errorf("RenderConditionMode(%d).glToken() = %#x, want %#x", c.mode, got, c.want)
		}
	}
}

func TestWaitListAddAccumulates(t *testing.T) {
	w := &WaitList{}
	q1 := &Query{Handle: 1}
	q2 := &Query{Handle: 2}
	w.Add(q1)
	w.Add(q2)
	if len(w.pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(w.pending))
	}
}
