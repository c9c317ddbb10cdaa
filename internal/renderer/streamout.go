package renderer

import "github.com/mittorn/vrend/internal/glapi"

// StreamoutTarget is a buffer-backed transform-feedback destination (spec.md
// §4.E "Streamout target" object kind): a resource plus the byte range
// within it that receives captured varyings.
type StreamoutTarget struct {
	Handle   uint32
	Resource *Resource
	Offset   uintptr
	Size     uintptr // 0 means "use the whole buffer" (glBindBufferBase path)
}

// SetStreamoutTargets implements the handle-tuple reuse rule (spec.md §4.E
// "Streamout targets": "look for an existing streamout object whose handle
// tuple matches; if found, bind it; else allocate a new TFB object,
// reference each target, bind buffers with glBindBufferRange (using
// offset+size when either is non-default, else glBindBufferBase), append to
// the sub-context's streamout list, and set state STARTED-NEED-BEGIN").
func (c *Context) SetStreamoutTargets(sc *SubContext, targets []*StreamoutTarget) *StreamoutObject {
	st := &sc.State

	if len(targets) == 0 {
		st.CurrentStreamout = nil
		st.NumStreamoutTargets = 0
		return nil
	}

	handles := make([]uint32, len(targets))
	for i, t := range targets {
		handles[i] = t.Handle
	}

	if so := findStreamoutObject(sc.StreamoutList, handles); so != nil {
		c.GL.BindTransformFeedback(glapi.TRANSFORM_FEEDBACK, so.GLObject)
		st.CurrentStreamout = so
		st.NumStreamoutTargets = len(targets)
		so.State = StreamoutStartedNeedBegin
		return so
	}

	so := &StreamoutObject{
		GLObject: c.GL.GenTransformFeedbacks(1)[0],
		Handles:  handles,
		State:    StreamoutStartedNeedBegin,
	}
	c.GL.BindTransformFeedback(glapi.TRANSFORM_FEEDBACK, so.GLObject)
	for i, t := range targets {
		t.Resource.Ref()
		if t.Offset != 0 || t.Size != 0 {
			c.GL.BindBufferRange(glapi.TRANSFORM_FEEDBACK_BUFFER, uint32(i), t.Resource.GLObject, t.Offset, t.Size)
		} else {
			c.GL.BindBufferBase(glapi.TRANSFORM_FEEDBACK_BUFFER, uint32(i), t.Resource.GLObject)
		}
	}

	sc.StreamoutList = append(sc.StreamoutList, so)
	st.CurrentStreamout = so
	st.NumStreamoutTargets = len(targets)
	return so
}

func findStreamoutObject(list []*StreamoutObject, handles []uint32) *StreamoutObject {
	for _, so := range list {
		if handleTupleEqual(so.Handles, handles) {
			return so
		}
	}
	return nil
}

func handleTupleEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
