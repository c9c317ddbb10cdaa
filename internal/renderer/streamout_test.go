package renderer

import "testing"

func TestHandleTupleEqual(t *testing.T) {
	cases := []struct {
		a, b []uint32
		want bool
	}{
		{[]uint32{1, 2, 3}, []uint32{1, 2, 3}, true},
		{[]uint32{1, 2, 3}, []uint32{1, 2, 4}, false},
		{[]uint32{1, 2}, []uint32{1, 2, 3}, false},
		{nil, nil, true},
	}
	for _, c := range cases {
		if got := handleTupleEqual(c.a, c.b); got != c.want {
			t.Errorf("handleTupleEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestFindStreamoutObjectReusesMatchingHandleTuple(t *testing.T) {
	so1 := &StreamoutObject{GLObject: 1, Handles: []uint32{10, 20}}
	so2 := &StreamoutObject{GLObject: 2, Handles: []uint32{30}}
	list := []*StreamoutObject{so1, so2}

	if got := findStreamoutObject(list, []uint32{10, 20}); got != so1 {
		t.Errorf("expected to find so1 by its handle tuple, got %v", got)
	}
	if got := findStreamoutObject(list, []uint32{30}); got != so2 {
		t.Errorf("expected to find so2 by its handle tuple, got %v", got)
	}
	if got := findStreamoutObject(list, []uint32{99}); got != nil {
		t.Errorf("expected no match for an unknown handle tuple, got %v", got)
	}
}

func TestSetStreamoutTargetsEmptyClearsCurrent(t *testing.T) {
	sc := &SubContext{State: NewPipelineState()}
	sc.State.CurrentStreamout = &StreamoutObject{GLObject: 1}
	sc.State.NumStreamoutTargets = 2

	c := &Context{}
	got := c.SetStreamoutTargets(sc, nil)
	if got != nil {
		t.Errorf("expected nil returned for an empty target list")
	}
	if sc.State.CurrentStreamout != nil {
		t.Errorf("expected CurrentStreamout cleared")
	}
	if sc.State.NumStreamoutTargets != 0 {
		t.Errorf("expected NumStreamoutTargets reset to 0")
	}
}
