package program

import (
	"testing"

	"github.com/mittorn/vrend/internal/shadertranslate"
	"github.com/mittorn/vrend/internal/tgsi"
)

func trivialProgram(proc tgsi.ProcessorType) *tgsi.Program {
	return &tgsi.Program{
		Processor: proc,
		Declarations: []tgsi.Declaration{
			{File: tgsi.FileOutput, First: 0, Last: 0, Semantic: tgsi.Semantic{Name: tgsi.SemanticPosition}},
		},
		Instructions: []tgsi.Instruction{{Opcode: tgsi.OpEND}},
	}
}

func TestSelectorCachesByKey(t *testing.T) {
	s := NewSelector(1, trivialProgram(tgsi.ProcessorVertex))
	cfg := shadertranslate.Config{GLSLVersion: 330, UseCoreProfile: true}

	v1, err := s.Select(cfg, shadertranslate.Key{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	v2, err := s.Select(cfg, shadertranslate.Key{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if v1 != v2 {
		t.Errorf("expected identical cached variant pointer for the same key")
	}

	v3, err := s.Select(cfg, shadertranslate.Key{Flatshade: true})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if v3 == v1 {
		t.Errorf("expected a new variant for a different key")
	}
	if len(s.variants) != 2 {
		t.Errorf("variants chain length = %d, want 2", len(s.variants))
	}
	if s.variants[0] != v3 {
		t.Errorf("most recently selected variant should be promoted to the front")
	}
}

func TestSelectorPromoteOnHit(t *testing.T) {
	s := NewSelector(1, trivialProgram(tgsi.ProcessorFragment))
	cfg := shadertranslate.Config{GLSLVersion: 330, UseCoreProfile: true}

	a, _ := s.Select(cfg, shadertranslate.Key{Flatshade: false})
	_, _ = s.Select(cfg, shadertranslate.Key{Flatshade: true})
	if s.variants[0] == a {
		t.Fatalf("precondition: a should not be at front after selecting a different key")
	}
	hit, err := s.Select(cfg, shadertranslate.Key{Flatshade: false})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if hit != a {
		t.Errorf("expected cache hit to return the original variant")
	}
	if s.variants[0] != a {
		t.Errorf("expected cache hit to promote its variant to the front")
	}
}

func TestDropVariants(t *testing.T) {
	s := NewSelector(1, trivialProgram(tgsi.ProcessorVertex))
	cfg := shadertranslate.Config{GLSLVersion: 330, UseCoreProfile: true}
	_, _ = s.Select(cfg, shadertranslate.Key{})
	s.DropVariants()
	if len(s.variants) != 0 {
		t.Errorf("expected variants to be cleared")
	}
}
