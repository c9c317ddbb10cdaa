//go:build linux

package glapi

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Context resolves and calls real GL entry points against whatever GL
// context the embedder has already made current (via the external
// create_gl_context/make_current hooks, spec.md §6). It never creates or
// makes current a GL context itself.
//
// Unlike the teacher's hal/gles/gl/context_linux.go, which hand-declares one
// package-level CallInterface per GL function, this renderer calls well
// over a hundred distinct GL entry points with a long tail of one-off
// signatures (DSA getters, compressed-tex variants, indexed state setters).
// Declaring a named field per function the teacher's way would be several
// thousand lines of pure boilerplate. Context instead memoizes
// CallInterfaces by their (return, args) signature shape and resolves
// function-pointer symbols lazily by name on first use; the call-site API
// (see call.go) still goes through goffi's PrepareCallInterface/
// CallFunction exactly as the teacher does.
type Context struct {
	mu    sync.Mutex
	lib   unsafe.Pointer
	procs map[string]unsafe.Pointer
	cifs  map[string]*types.CallInterface
}

// NewContext loads libGL.so.1 (falling back to libGL.so) and returns a
// Context ready to resolve symbols against the currently-current GL
// context. Mirrors hal/gles/egl.Init's try-versioned-then-bare pattern.
func NewContext() (*Context, error) {
	lib, err := ffi.LoadLibrary("libGL.so.1")
	if err != nil {
		lib, err = ffi.LoadLibrary("libGL.so")
		if err != nil {
			return nil, fmt.Errorf("glapi: failed to load libGL: %w", err)
		}
	}
	return &Context{
		lib:   lib,
		procs: make(map[string]unsafe.Pointer),
		cifs:  make(map[string]*types.CallInterface),
	}, nil
}

func (c *Context) proc(name string) (unsafe.Pointer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.procs[name]; ok {
		return p, nil
	}
	sym, err := ffi.GetSymbol(c.lib, name)
	if err != nil {
		return nil, fmt.Errorf("glapi: symbol %s not found: %w", name, err)
	}
	c.procs[name] = sym
	return sym, nil
}

// kind is a compact tag used to build a signature cache key; it mirrors the
// handful of TypeDescriptors the GL ABI actually needs here.
type kind byte

const (
	kVoid kind = iota
	kU32
	kI32
	kF32
	kF64
	kPtr
)

func (k kind) descriptor() *types.TypeDescriptor {
	switch k {
	case kVoid:
		return types.VoidTypeDescriptor
	case kU32:
		return types.UInt32TypeDescriptor
	case kI32:
		return types.Int32TypeDescriptor
	case kF32:
		return types.FloatTypeDescriptor
	case kF64:
		return types.DoubleTypeDescriptor
	default:
		return types.PointerTypeDescriptor
	}
}

func (c *Context) cif(ret kind, args ...kind) (*types.CallInterface, error) {
	key := make([]byte, 0, len(args)+2)
	key = append(key, byte(ret), '|')
	for _, a := range args {
		key = append(key, byte(a))
	}
	sig := string(key)

	c.mu.Lock()
	if cached, ok := c.cifs[sig]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	argDescs := make([]*types.TypeDescriptor, len(args))
	for i, a := range args {
		argDescs[i] = a.descriptor()
	}
	cif := &types.CallInterface{}
	if err := ffi.PrepareCallInterface(cif, types.DefaultCall, ret.descriptor(), argDescs); err != nil {
		return nil, fmt.Errorf("glapi: PrepareCallInterface %q: %w", sig, err)
	}

	c.mu.Lock()
	c.cifs[sig] = cif
	c.mu.Unlock()
	return cif, nil
}

// call resolves fn by name, prepares (or reuses) the CallInterface for the
// given signature, invokes it with args, and returns the raw result word.
// Used by call.go's typed wrappers; never exported directly so every GL
// call site states its signature once, close to the function name.
func (c *Context) call(fn string, ret kind, argKinds []kind, args []unsafe.Pointer) (uintptr, error) {
	sym, err := c.proc(fn)
	if err != nil {
		return 0, err
	}
	cif, err := c.cif(ret, argKinds...)
	if err != nil {
		return 0, err
	}
	var result uintptr
	if err := ffi.CallFunction(cif, sym, unsafe.Pointer(&result), args); err != nil {
		return 0, fmt.Errorf("glapi: call %s: %w", fn, err)
	}
	return result, nil
}
