// Package program implements the per-sub-context linked-program cache and
// the shader-selector variant chain described in spec.md §4.D: a shader
// selector holds the TGSI program for one VS/FS/GS object plus a chain of
// already-translated GLSL variants keyed by shader key; a linked program
// pairs one variant from each active stage and introspects its uniform
// locations once, at link time.
package program

import (
	"github.com/mittorn/vrend/internal/shadertranslate"
	"github.com/mittorn/vrend/internal/tgsi"
)

// Variant is one translated GLSL build of a selector for a specific key.
type Variant struct {
	Key    shadertranslate.Key
	Result shadertranslate.Result
}

// Selector owns the untranslated TGSI program for one shader object and a
// chain of variants already compiled for past draw keys. The chain is kept
// in most-recently-used order: a hit rotates its entry to the front, mirroring
// vrend_shader.c's shader_select splay-to-front behavior (spec.md §4.D step 1).
type Selector struct {
	ID        uint32
	Processor tgsi.ProcessorType
	Program   *tgsi.Program
	variants  []*Variant
}

func NewSelector(id uint32, prog *tgsi.Program) *Selector {
	return &Selector{ID: id, Processor: prog.Processor, Program: prog}
}

// Select returns the variant for key, translating and caching a new one if
// no exact key match exists in the chain.
func (s *Selector) Select(cfg shadertranslate.Config, key shadertranslate.Key) (*Variant, error) {
	packed := key.Pack64()
	for i, v := range s.variants {
		if v.Key.Pack64() == packed {
			s.promote(i)
			return v, nil
		}
	}
	res, err := shadertranslate.Translate(cfg, s.Program, key)
	if err != nil {
		return nil, err
	}
	v := &Variant{Key: key, Result: res}
	s.variants = append([]*Variant{v}, s.variants...)
	return v, nil
}

func (s *Selector) promote(i int) {
	if i == 0 {
		return
	}
	v := s.variants[i]
	copy(s.variants[1:i+1], s.variants[0:i])
	s.variants[0] = v
}

// DropVariants removes every cached variant (called when the selector's
// underlying TGSI program is replaced by a later CREATE_OBJECT on the same
// handle, which invalidates all previously-compiled variants).
func (s *Selector) DropVariants() { s.variants = nil }
