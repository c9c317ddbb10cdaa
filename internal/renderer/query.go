package renderer

import (
	"sync"

	"github.com/mittorn/vrend/internal/glapi"
)

// BeginQuery creates (if needed) and starts the GL query object, except for
// timestamp queries which have no begin/end pair (spec.md §4.E "Queries":
// "begin creates the GL query object").
func (c *Context) BeginQuery(q *Query) {
	if q.GLQuery == 0 {
		q.GLQuery = c.GL.GenQueries(1)[0]
	}
	if q.Target == glapi.TIMESTAMP {
		return
	}
	c.GL.BeginQuery(q.Target, q.GLQuery)
	q.Started = true
}

// EndQuery ends an in-flight query, or stamps a timestamp query via
// glQueryCounter (spec.md §4.E "Queries": "end ends it or calls
// glQueryCounter for timestamps").
func (c *Context) EndQuery(q *Query) {
	if q.Target == glapi.TIMESTAMP {
		c.GL.QueryCounter(q.GLQuery, glapi.TIMESTAMP)
		return
	}
	if q.Started {
		c.GL.EndQuery(q.Target)
		q.Started = false
	}
}

// GetQueryResult polls QUERY_RESULT_AVAILABLE; when ready it caches the
// value on q and returns true, otherwise it returns false and the caller is
// expected to register q on the waiting list (spec.md §4.E "Queries":
// "get_result polls QUERY_RESULT_AVAILABLE; if not ready, the query joins a
// global waiting list drained by a polling function that the transport
// calls between commands").
func (c *Context) GetQueryResult(q *Query) bool {
	if c.GL.GetQueryObjectuiv(q.GLQuery, glapi.QUERY_RESULT_AVAILABLE) == 0 {
		return false
	}
	q.Result = c.GL.GetQueryObjectui64v(q.GLQuery, glapi.QUERY_RESULT)
	q.Available = true
	return true
}

// WriteQueryResult lands {result:u64, state:u32} into dst the same way
// TransferWrite would, via a direct BufferSubData, since the payload is
// host-generated rather than gathered from guest iovecs. The decoder calls
// this only when GetQueryResult reports q.Available while handling
// GET_QUERY_RESULT itself; a query that becomes ready later through
// WaitList.Poll has its value cached on q but is not written to any resource.
func (c *Context) WriteQueryResult(dst *Resource, q *Query) {
	if dst == nil || !dst.IsBuffer || !q.Available {
		return
	}
	payload := make([]byte, 12)
	for i := 0; i < 8; i++ {
		payload[i] = byte(q.Result >> (8 * i))
	}
	state := uint32(1)
	for i := 0; i < 4; i++ {
		payload[8+i] = byte(state >> (8 * i))
	}
	c.GL.BindBuffer(dst.Target, dst.GLObject)
	c.GL.BufferSubData(dst.Target, 0, uintptr(len(payload)), bytesAddr(payload))
}

// WaitList is the global set of queries not yet ready, drained by Poll
// between decoded commands (spec.md §7 "Suspension points": "get_query_result
// ... queues the query onto the waiting list and the next poll() cycle
// drains it").
type WaitList struct {
	mu      sync.Mutex
	pending []*Query
}

func (w *WaitList) Add(q *Query) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, q)
}

// Poll retries every pending query's result once; ready queries are removed
// from the list. The transport calls this between command-buffer reads
// (spec.md §7).
func (w *WaitList) Poll(c *Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	remaining := w.pending[:0]
	for _, q := range w.pending {
		if !c.GetQueryResult(q) {
			remaining = append(remaining, q)
		}
	}
	w.pending = remaining
}

// RenderConditionMode is the gallium render-condition mode, translated
// 1:1 to the matching GL_CONDITIONAL_RENDER_* token (spec.md §4.E "Render
// condition").
type RenderConditionMode uint32

const (
	RenderConditionWait RenderConditionMode = iota
	RenderConditionNoWait
	RenderConditionByRegionWait
	RenderConditionByRegionNoWait
)

func (m RenderConditionMode) glToken() uint32 {
	switch m {
	case RenderConditionNoWait:
		return glapi.CONDITIONAL_RENDER_NO_WAIT
	case RenderConditionByRegionWait:
		return glapi.CONDITIONAL_RENDER_BY_REGION_WAIT
	case RenderConditionByRegionNoWait:
		return glapi.CONDITIONAL_RENDER_BY_REGION_NO_WAIT
	default:
		return glapi.CONDITIONAL_RENDER_WAIT
	}
}

// SetRenderCondition starts or ends a conditional-render block; handle 0
// (q == nil) ends it (spec.md §4.E "Render condition": "Handle 0 ends the
// conditional block").
func (c *Context) SetRenderCondition(q *Query, mode RenderConditionMode) {
	if q == nil {
		c.GL.EndConditionalRender()
		return
	}
	c.GL.BeginConditionalRender(q.GLQuery, mode.glToken())
}
