// Command vhostrenderer is a minimal wiring example for embedding the
// renderer core: it shows how an embedder supplies the four callbacks
// spec.md §6 names (write_fence, create_gl_context, destroy_gl_context,
// make_current) and constructs one Context + Decoder + shader Blitter
// ready to receive submit-cmd payloads.
//
// It deliberately does not implement the transport loop itself (the Unix
// socket / shared-memory ring that demultiplexes TransportHeader records):
// that belongs to whatever process embeds this core (spec.md §1 scopes the
// transport out; §6 "Transport (external)").
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mittorn/vrend/internal/blitter"
	"github.com/mittorn/vrend/internal/decoder"
	"github.com/mittorn/vrend/internal/format"
	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/renderer"
	"github.com/mittorn/vrend/internal/vlog"
)

// glContextHandle is the opaque value create_gl_context hands back and
// make_current/destroy_gl_context later consume (spec.md §6).
type glContextHandle uintptr

// hostCallbacks implements the four renderer callbacks an embedder must
// provide. This example's bodies are stand-ins for the real platform GLX/
// EGL/WGL calls a production embedder makes; wiring those is a windowing-
// system integration concern outside this module's scope, the same way the
// transport read loop is.
type hostCallbacks struct {
	nextHandle glContextHandle
}

func (h *hostCallbacks) createGLContext(cookie uintptr, scanoutIdx uint32, shared bool, major, minor int) (glContextHandle, error) {
	h.nextHandle++
	vlog.Logger().Info("create_gl_context", "cookie", cookie, "scanout", scanoutIdx, "shared", shared, "major", major, "minor", minor)
	return h.nextHandle, nil
}

func (h *hostCallbacks) destroyGLContext(cookie uintptr, ctx glContextHandle) {
	vlog.Logger().Info("destroy_gl_context", "cookie", cookie, "ctx", ctx)
}

func (h *hostCallbacks) makeCurrent(cookie uintptr, scanoutIdx uint32, ctx glContextHandle) int {
	vlog.Logger().Info("make_current", "cookie", cookie, "scanout", scanoutIdx, "ctx", ctx)
	return 0
}

func (h *hostCallbacks) writeFence(cookie uintptr, fenceID uint32) {
	vlog.Logger().Info("write_fence", "cookie", cookie, "fence", fenceID)
}

func main() {
	vlog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	host := &hostCallbacks{}
	ctxHandle, err := host.createGLContext(0, 0, false, 3, 2)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create_gl_context:", err)
		os.Exit(1)
	}
	if rc := host.makeCurrent(0, 0, ctxHandle); rc != 0 {
		fmt.Fprintln(os.Stderr, "make_current failed:", rc)
		os.Exit(1)
	}

	gl, err := glapi.NewContext()
	if err != nil {
		fmt.Fprintln(os.Stderr, "glapi.NewContext:", err)
		os.Exit(1)
	}

	formats := format.New()
	resources := renderer.NewResourceTable()
	rctx := renderer.NewContext(1, gl, formats, resources)

	caps := renderer.QueryCapabilitiesV2(gl, formats)
	vlog.Logger().Info("capabilities queried", "glsl", caps.GLSLLevel, "max_samples", caps.MaxSamples)

	// A real embedder calls CreateResource once per guest resource_create
	// transport message, then AttachResource for every context that message's
	// ctx_id list names (spec.md §3 "Created by resource_create" /
	// "attached to become permitted to reference it"). This 1x1 scanout
	// surface stands in for that first resource a guest driver typically
	// creates.
	scanout, err := rctx.CreateResource(renderer.ResourceCreateArgs{
		Handle: 1, Target: renderer.PipeTexture2D, Format: format.FormatR8G8B8A8Unorm,
		Bind: renderer.BindRenderTarget, Width: 1, Height: 1, Depth: 1, ArraySize: 1,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "create_resource:", err)
		os.Exit(1)
	}
	if err := rctx.AttachResource(scanout.Handle); err != nil {
		fmt.Fprintln(os.Stderr, "attach_resource:", err)
		os.Exit(1)
	}

	d := &decoder.Decoder{
		Ctx:         rctx,
		MakeCurrent: func(subID uint32) { host.makeCurrent(0, 0, ctxHandle) },
		Waits:       &renderer.WaitList{},
		Blitter:     blitter.New(gl),
	}

	// A real embedder loops here reading TransportHeader-prefixed records
	// off its transport and forwarding each submit-cmd payload to d.Decode.
	_ = d
	host.destroyGLContext(0, ctxHandle)
}
