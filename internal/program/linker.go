package program

import (
	"fmt"
	"math/bits"

	"github.com/mittorn/vrend/internal/glapi"
	"github.com/mittorn/vrend/internal/shadertranslate"
)

// Key identifies one linked program by the (vs, fs, gs, dual_src) tuple
// spec.md §4.D names as the program cache's index.
type Key struct {
	VSID     uint32
	FSID     uint32
	GSID     uint32 // 0 when no geometry shader is bound
	DualSrc  bool
}

// SamplerUniform is one introspected "{stage}samp{i}" location, plus its
// paired shadow-compare uniforms when the sampler is a shadow sampler
// (spec.md §4.D introspection rules).
type SamplerUniform struct {
	Index       uint32
	Location    int32
	ShadowMask  int32 // -1 when this sampler isn't a shadow sampler
	ShadowAdd   int32
}

// StageUniforms holds one stage's introspected locations.
type StageUniforms struct {
	Samplers         []SamplerUniform
	SamplersUsedMask uint32
	ConstLocations   []int32 // one GL uniform location per {stage}const0[i] slot
	UBOBlockIndices  []uint32
}

// Linked is a fully linked GL program plus its introspected uniform
// locations for every active stage.
type Linked struct {
	Key       Key
	GLProgram uint32
	VS, FS    *Variant
	GS        *Variant // nil when no geometry shader

	Stage map[ShaderStage]StageUniforms
}

// ShaderStage indexes Linked.Stage; exported so callers outside this package
// (internal/renderer's draw/clear reconcile) can look up a stage's
// introspected uniform locations.
type ShaderStage uint8

const (
	StageVS ShaderStage = iota
	StageFS
	StageGS
)

// Cache is the per-sub-context linked-program table (spec.md §4.D: "Per
// sub-context, a list of linked programs indexed by
// (vs_id, fs_id, gs_id, dual_src_flag)").
type Cache struct {
	gl      *glapi.Context
	linked  map[Key]*Linked
	byVS    map[uint32][]Key // back-references for cascading deletion
	byFS    map[uint32][]Key
	byGS    map[uint32][]Key
}

func NewCache(gl *glapi.Context) *Cache {
	return &Cache{
		gl:     gl,
		linked: make(map[Key]*Linked),
		byVS:   make(map[uint32][]Key),
		byFS:   make(map[uint32][]Key),
		byGS:   make(map[uint32][]Key),
	}
}

// FindOrLink returns the cached linked program for key, translating and
// linking a new one if absent. Grounded on spec.md §4.D steps 2-3.
func (c *Cache) FindOrLink(key Key, vs, fs, gs *Selector, shaderKey shadertranslate.Key, cfg shadertranslate.Config) (*Linked, error) {
	if l, ok := c.linked[key]; ok {
		return l, nil
	}

	vsVar, err := vs.Select(cfg, shaderKey)
	if err != nil {
		return nil, fmt.Errorf("program: vertex shader select: %w", err)
	}
	fsVar, err := fs.Select(cfg, shaderKey)
	if err != nil {
		return nil, fmt.Errorf("program: fragment shader select: %w", err)
	}

	// Linker patchback: rewrite the vertex shader's interpolation
	// qualifiers in place to match the fragment shader's actual
	// declarations before compiling either stage (spec.md §4.D step 2,
	// "patch VS/GS interpolants from FS").
	patchedVS := shadertranslate.PatchVertexInterpolants(
		vsVar.Result.Source, vsVar.Result.Reflection.Interp, fsVar.Result.Reflection.Interp,
		gs != nil, shaderKey.Flatshade)

	var gsVar *Variant
	var gsID uint32
	if gs != nil {
		gsVar, err = gs.Select(cfg, shaderKey)
		if err != nil {
			return nil, fmt.Errorf("program: geometry shader select: %w", err)
		}
		gsID = gs.ID
	}

	glProg, err := c.compileAndLink(patchedVS, fsVar.Result.Source, stringOrEmpty(gsVar), key.DualSrc)
	if err != nil {
		return nil, err
	}

	l := &Linked{Key: key, GLProgram: glProg, VS: vsVar, FS: fsVar, GS: gsVar,
		Stage: make(map[ShaderStage]StageUniforms)}
	l.Stage[StageVS] = c.introspect(glProg, "vs_", vsVar.Result.Reflection)
	l.Stage[StageFS] = c.introspect(glProg, "fs_", fsVar.Result.Reflection)
	if gsVar != nil {
		l.Stage[StageGS] = c.introspect(glProg, "gs_", gsVar.Result.Reflection)
	}

	c.linked[key] = l
	c.byVS[key.VSID] = append(c.byVS[key.VSID], key)
	c.byFS[key.FSID] = append(c.byFS[key.FSID], key)
	if gs != nil {
		c.byGS[gsID] = append(c.byGS[gsID], key)
	}
	return l, nil
}

func stringOrEmpty(v *Variant) string {
	if v == nil {
		return ""
	}
	return v.Result.Source
}

func (c *Cache) compileAndLink(vsSrc, fsSrc, gsSrc string, dualSrc bool) (uint32, error) {
	prog := c.gl.CreateProgram()

	vs := c.gl.CreateShader(glapi.VERTEX_SHADER)
	c.gl.ShaderSource(vs, vsSrc)
	c.gl.CompileShader(vs)
	if ok, log := c.gl.ShaderCompileStatus(vs); !ok {
		return 0, fmt.Errorf("program: vertex shader failed to compile: %s", log)
	}
	c.gl.AttachShader(prog, vs)

	fs := c.gl.CreateShader(glapi.FRAGMENT_SHADER)
	c.gl.ShaderSource(fs, fsSrc)
	c.gl.CompileShader(fs)
	if ok, log := c.gl.ShaderCompileStatus(fs); !ok {
		return 0, fmt.Errorf("program: fragment shader failed to compile: %s", log)
	}
	c.gl.AttachShader(prog, fs)

	var gs uint32
	if gsSrc != "" {
		gs = c.gl.CreateShader(glapi.GEOMETRY_SHADER)
		c.gl.ShaderSource(gs, gsSrc)
		c.gl.CompileShader(gs)
		if ok, log := c.gl.ShaderCompileStatus(gs); !ok {
			return 0, fmt.Errorf("program: geometry shader failed to compile: %s", log)
		}
		c.gl.AttachShader(prog, gs)
	}

	// BindFragDataLocationIndexed for fsout_c0/c1: index 0,0 for dual-source
	// blending (both bound to color buffer 0, indices 0 and 1), otherwise
	// 0,1 naming separate color buffers (spec.md §4.D step 2).
	if dualSrc {
		c.gl.BindFragDataLocationIndexed(prog, 0, 0, "fsout_c0")
		c.gl.BindFragDataLocationIndexed(prog, 0, 1, "fsout_c1")
	} else {
		c.gl.BindFragDataLocationIndexed(prog, 0, 0, "fsout_c0")
		c.gl.BindFragDataLocationIndexed(prog, 1, 0, "fsout_c1")
	}

	c.gl.LinkProgram(prog)
	if ok, log := c.gl.ProgramLinkStatus(prog); !ok {
		return 0, fmt.Errorf("program: link failed: %s", log)
	}

	c.gl.DetachShader(prog, vs)
	c.gl.DeleteShader(vs)
	c.gl.DetachShader(prog, fs)
	c.gl.DeleteShader(fs)
	if gs != 0 {
		c.gl.DetachShader(prog, gs)
		c.gl.DeleteShader(gs)
	}

	return prog, nil
}

// introspect queries every uniform location the translator's naming
// convention predicts exists, per spec.md §4.D introspection rules.
func (c *Cache) introspect(glProg uint32, stage string, refl shadertranslate.Reflection) StageUniforms {
	var su StageUniforms
	su.SamplersUsedMask = refl.SamplersUsedMask

	mask := refl.SamplersUsedMask
	for mask != 0 {
		i := uint32(bits.TrailingZeros32(mask))
		mask &^= 1 << i
		loc := c.gl.GetUniformLocation(glProg, samplerUniformName(stage, i))
		su2 := SamplerUniform{Index: i, Location: loc, ShadowMask: -1, ShadowAdd: -1}
		if refl.ShadowSampMask&(1<<i) != 0 {
			su2.ShadowMask = c.gl.GetUniformLocation(glProg, shadowMaskUniformName(stage, i))
			su2.ShadowAdd = c.gl.GetUniformLocation(glProg, shadowAddUniformName(stage, i))
		}
		su.Samplers = append(su.Samplers, su2)
	}

	su.ConstLocations = make([]int32, refl.NumConsts)
	for i := 0; i < refl.NumConsts; i++ {
		su.ConstLocations[i] = c.gl.GetUniformLocation(glProg, constElemName(stage, i))
	}

	su.UBOBlockIndices = make([]uint32, refl.NumUBOs)
	for i := 0; i < refl.NumUBOs; i++ {
		su.UBOBlockIndices[i] = c.gl.GetUniformBlockIndex(glProg, uboBlockName(stage, i))
	}
	return su
}

func samplerUniformName(stage string, i uint32) string    { return fmt.Sprintf("%ssamp%d", stage, i) }
func shadowMaskUniformName(stage string, i uint32) string  { return fmt.Sprintf("%sshadmask%d", stage, i) }
func shadowAddUniformName(stage string, i uint32) string   { return fmt.Sprintf("%sshadadd%d", stage, i) }
func constElemName(stage string, i int) string             { return fmt.Sprintf("%sconst0[%d]", stage, i) }
func uboBlockName(stage string, i int) string              { return fmt.Sprintf("%sblock%d", stage, i) }

// DropForSelector invalidates and deletes every linked program that
// references the given shader id in the given stage, called when a
// CREATE_OBJECT replaces an existing shader handle (spec.md §4.D step 3:
// "store back-references so shader variant deletion deletes all dependent
// programs").
func (c *Cache) DropForSelector(stage ShaderStage, id uint32) {
	var table map[uint32][]Key
	switch stage {
	case StageVS:
		table = c.byVS
	case StageFS:
		table = c.byFS
	default:
		table = c.byGS
	}
	keys := table[id]
	delete(table, id)
	for _, k := range keys {
		if l, ok := c.linked[k]; ok {
			c.gl.DeleteProgram(l.GLProgram)
			delete(c.linked, k)
		}
	}
}
