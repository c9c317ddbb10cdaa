package renderer

import (
	"sync"

	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/objtbl"
	"github.com/mittorn/vrend/internal/program"
)

// Resource is a process-global GL-backed allocation (buffer or texture),
// spec.md §3 Entities / §5 "Shared resources": resources are process-global,
// their backing GL objects live in sub-context 0's share group, and the
// process-global resource table is the single authority on their lifetime.
type Resource struct {
	Handle   uint32
	Target   uint32 // GL buffer or texture target
	GLObject uint32
	Format   format.Entry
	Width, Height, Depth uint32
	ArraySize, MipLevels uint32
	Samples  uint32
	IsBuffer bool

	refCount int32
	mu       sync.Mutex

	// readbackFBO caches a per-resource FBO used by Transfer Read when the
	// format isn't directly glReadPixels-able without a framebuffer bind
	// (spec.md §4.E "Transfer read").
	readbackFBO uint32
}

func (r *Resource) Ref()   { r.mu.Lock(); r.refCount++; r.mu.Unlock() }
func (r *Resource) Unref() int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refCount--
	return r.refCount
}

// ResourceTable is the process-global authority on Resource lifetime
// (spec.md §5 "Shared resources").
type ResourceTable struct {
	mu    sync.Mutex
	byID  map[uint32]*Resource
}

func NewResourceTable() *ResourceTable {
	return &ResourceTable{byID: make(map[uint32]*Resource)}
}

func (t *ResourceTable) Insert(r *Resource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r.refCount = 1
	t.byID[r.Handle] = r
}

func (t *ResourceTable) Lookup(handle uint32) (*Resource, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.byID[handle]
	return r, ok
}

// Unref drops the table's own reference to handle (the explicit
// resource_unref transport op) and, once nothing else holds it, deletes the
// GL object backing it (spec.md §3: "destroyed when refcount hits zero after
// all referencing handles in all contexts are dropped").
func (t *ResourceTable) Unref(gl *glapi.Context, handle uint32) {
	t.mu.Lock()
	r, ok := t.byID[handle]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.byID, handle)
	t.mu.Unlock()
	releaseResourceRef(gl, r)
}

// releaseResourceRef drops one reference from r and deletes its backing GL
// object once the refcount reaches zero (spec.md invariant 4: "the refcount
// of a resource equals (attachments + live object references)").
func releaseResourceRef(gl *glapi.Context, r *Resource) {
	if r == nil {
		return
	}
	if r.Unref() > 0 {
		return
	}
	if r.IsBuffer {
		gl.DeleteBuffers([]uint32{r.GLObject})
		return
	}
	gl.DeleteTextures([]uint32{r.GLObject})
	if r.readbackFBO != 0 {
		gl.DeleteFramebuffers([]uint32{r.readbackFBO})
	}
}

// StreamoutObject is a bound set of transform-feedback buffer targets,
// reused across SET_STREAMOUT_TARGETS calls that name the same handle tuple
// (spec.md §4.E "Streamout targets").
type StreamoutObject struct {
	GLObject uint32
	Handles  []uint32
	State    StreamoutState
}

type StreamoutState uint8

const (
	StreamoutIdle StreamoutState = iota
	StreamoutStartedNeedBegin
	StreamoutStarted
	StreamoutPaused
)

// Query is a GL query object plus the bookkeeping the async get_result path
// needs (spec.md §4.E "Queries").
type Query struct {
	Handle   uint32
	GLQuery  uint32
	Target   uint32
	Started  bool
	Result   uint64
	Available bool
}

// Fence marks a point in a context's command stream for the external
// write_fence callback (spec.md §5 "Ordering guarantees").
type Fence struct {
	ContextID uint32
	FenceID   uint32
	GLSync    uintptr
}

// Context is one guest rendering context: a set of sub-contexts (sub-context
// 0 always present), a reference to the shared object/resource tables, and
// the active sub-context index. Two-phase switching lives in subcontext.go.
type Context struct {
	ID       uint32
	GL       *glapi.Context
	Formats  *format.Table
	Res      *ResourceTable

	subs        []*SubContext
	activeIdx   int
	pendingIdx  int
	switchPending bool

	// attached mirrors spec.md §3/§5: "a context also keeps a small
	// 'attached' table mapping handle→resource for O(1) validated lookup of
	// guest-supplied handles without consulting the global table". Grounded
	// on struct vrend_context's res_hash in the original renderer.
	attached map[uint32]*Resource
	attMu    sync.Mutex

	Latch Latch
}

// SubContext owns a GL context/VAO/FBO pair, its shader program cache, and
// its own object table (spec.md §4.G).
type SubContext struct {
	ID        uint32
	Objects   *objtbl.Table
	Programs  *program.Cache

	VAO         uint32
	FBO         uint32
	BlitFBORead uint32
	BlitFBODraw uint32

	// StreamoutList holds every streamout object this sub-context has ever
	// bound, so set_streamout_targets can find and reuse one whose target
	// handle tuple matches instead of always allocating a fresh GL TFB
	// object (spec.md §4.E "Streamout targets").
	StreamoutList []*StreamoutObject

	State PipelineState
}

func NewContext(id uint32, gl *glapi.Context, formats *format.Table, res *ResourceTable) *Context {
	c := &Context{ID: id, GL: gl, Formats: formats, Res: res, attached: make(map[uint32]*Resource)}
	c.subs = append(c.subs, newSubContext(0, gl, program.NewCache(gl)))
	return c
}

// AttachResource grants this context permission to reference handle (spec.md
// §3: "a context 'attaches' a resource to become permitted to reference
// it"), grounded on vrend_renderer_attach_res_ctx. It takes a reference on
// the underlying Resource per invariant 4 ("refcount equals attachments +
// live object references").
func (c *Context) AttachResource(handle uint32) error {
	res, ok := c.Res.Lookup(handle)
	if !ok {
		return &CmdError{Kind: ErrIllegalResource, Handle: handle}
	}
	c.attMu.Lock()
	defer c.attMu.Unlock()
	if _, already := c.attached[handle]; already {
		return nil
	}
	res.Ref()
	c.attached[handle] = res
	return nil
}

// DetachResource revokes a context's permission to reference handle and
// drops the reference AttachResource took, grounded on
// vrend_renderer_detach_res_ctx.
func (c *Context) DetachResource(handle uint32) {
	c.attMu.Lock()
	res, ok := c.attached[handle]
	if !ok {
		c.attMu.Unlock()
		return
	}
	delete(c.attached, handle)
	c.attMu.Unlock()
	releaseResourceRef(c.GL, res)
}

// DropResourceRef releases one object-held reference to r, deleting its
// backing GL object once nothing else references it (spec.md invariant 4).
// Object kinds that embed a *Resource (surfaces, sampler views, streamout
// targets) call this from their DESTROY_OBJECT destructor.
func (c *Context) DropResourceRef(r *Resource) {
	releaseResourceRef(c.GL, r)
}

// LookupAttached is the validated handle→resource lookup every command
// handler must use instead of consulting the process-global resource table
// directly, per Testable Property 1 "Handle isolation" (spec.md §8: "For
// any resource r attached to ctx A but not to ctx B, every command in B that
// references r fails with ILLEGAL_RESOURCE").
func (c *Context) LookupAttached(handle uint32) (*Resource, bool) {
	c.attMu.Lock()
	defer c.attMu.Unlock()
	r, ok := c.attached[handle]
	return r, ok
}

func newSubContext(id uint32, gl *glapi.Context, progs *program.Cache) *SubContext {
	return &SubContext{ID: id, Objects: objtbl.New(), Programs: progs, State: NewPipelineState()}
}

func (c *Context) Active() *SubContext { return c.subs[c.activeIdx] }
