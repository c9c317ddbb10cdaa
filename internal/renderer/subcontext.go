package renderer

import (
	"github.com/mittorn/vrend/internal/objtbl"
	"github.com/mittorn/vrend/internal/program"
)

// CreateSubContext allocates sub-context n: a GL context sharing the
// process's GL namespace with sub-context 0 (except for the very first
// sub-context created), a VAO, an FBO, and two blit FBOs (spec.md §4.G).
// The GL context/VAO/FBO creation itself is driven by the external
// create_gl_context/make_current hooks (spec.md §6); this only allocates
// the GL-namespace objects that live inside that context.
func (c *Context) CreateSubContext(id uint32) *SubContext {
	sc := newSubContext(id, c.GL, program.NewCache(c.GL))
	fbos := c.GL.GenFramebuffers(3)
	sc.FBO, sc.BlitFBORead, sc.BlitFBODraw = fbos[0], fbos[1], fbos[2]
	vaos := c.GL.GenVertexArrays(1)
	sc.VAO = vaos[0]
	c.subs = append(c.subs, sc)
	return sc
}

// SetSubContext marks idx as the sub-context that should become active.
// Per spec.md §4.G the switch is two-phase: this only records intent,
// finishMakeCurrent performs the real make_current on the next draw/clear,
// batching rapid toggles between many SET_SUB_CTX commands.
func (c *Context) SetSubContext(idx int) {
	if idx == c.activeIdx && !c.switchPending {
		return
	}
	c.pendingIdx = idx
	c.switchPending = true
}

// finishSwitch performs the deferred make_current if a switch is pending.
// Called at the top of draw and clear reconcile (spec.md §4.E step 1,
// §4.G "finish_context_switch").
func (c *Context) finishSwitch(makeCurrent func(subID uint32)) {
	if !c.switchPending {
		return
	}
	c.activeIdx = c.pendingIdx
	c.switchPending = false
	if makeCurrent != nil {
		makeCurrent(c.subs[c.activeIdx].ID)
	}
}

// DestroySubContext deletes the sub-context's FBOs and VAO. It walks the
// object table without removing any entry, does not delete the
// sub-context's linked programs, and leaves the sub-context in c.subs, so
// idx still resolves to it.
func (c *Context) DestroySubContext(idx int) {
	sc := c.subs[idx]
	sc.Objects.ForEach(func(handle uint32, tag objtbl.TypeTag, value any) bool {
		return true
	})
	c.GL.DeleteFramebuffers([]uint32{sc.FBO, sc.BlitFBORead, sc.BlitFBODraw})
	c.GL.DeleteVertexArrays([]uint32{sc.VAO})
}
