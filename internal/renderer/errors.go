// Package renderer implements the shadow-state machine described in
// spec.md §4.E: per-context pipeline state shadowing, the draw/clear
// reconcile algorithms, resource transfers, blits, queries, streamout, and
// (per SPEC_FULL.md §5) sub-context management.
package renderer

import "fmt"

// ErrorKind classifies a recoverable validation failure recorded on a
// Context (spec.md §4.F "Validation": "records an error kind on the context
// ... further commands in the same buffer continue to be processed").
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrIllegalShader
	ErrIllegalHandle
	ErrIllegalResource
	ErrIllegalSurface
	ErrIllegalVertexFormat
	ErrIllegalCommandBuffer
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIllegalShader:
		return "illegal shader"
	case ErrIllegalHandle:
		return "illegal handle"
	case ErrIllegalResource:
		return "illegal resource"
	case ErrIllegalSurface:
		return "illegal surface"
	case ErrIllegalVertexFormat:
		return "illegal vertex format"
	case ErrIllegalCommandBuffer:
		return "illegal command buffer"
	default:
		return "none"
	}
}

// CmdError pairs an ErrorKind with the offending handle/opcode for
// diagnostics; the context latch only ever stores the ErrorKind, but
// handlers construct this to return to the decoder / log (spec.md §4.F).
type CmdError struct {
	Kind   ErrorKind
	Handle uint32
	Detail string
}

func (e *CmdError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (handle=%d): %s", e.Kind, e.Handle, e.Detail)
	}
	return fmt.Sprintf("%s (handle=%d)", e.Kind, e.Handle)
}

// Latch records the first error kind seen on a context, sticking until
// explicitly cleared; spec.md §4.F: the decoder drops the remainder of the
// offending command but keeps processing later commands in the same buffer.
type Latch struct {
	kind ErrorKind
}

func (l *Latch) Set(k ErrorKind) {
	if l.kind == ErrNone {
		l.kind = k
	}
}

func (l *Latch) Kind() ErrorKind { return l.kind }
func (l *Latch) InError() bool   { return l.kind != ErrNone }
func (l *Latch) Clear()          { l.kind = ErrNone }
