package shadertranslate

import "fmt"

// stagePrefix returns the per-stage identifier prefix used by the
// introspection naming convention internal/program relies on
// ({stage}samp{i}, {stage}const0[i], and {stage}block{i} for UBO blocks,
// whose member array is {stage}ubo{i} — spec.md §4.D).
func stagePrefix(p processorKind) string {
	switch p {
	case procVertex:
		return "vs_"
	case procGeometry:
		return "gs_"
	default:
		return "fs_"
	}
}

type processorKind uint8

const (
	procVertex processorKind = iota
	procFragment
	procGeometry
)

func tempName(idx uint32) string   { return fmt.Sprintf("temp%d", idx) }
func addrName(idx uint32) string   { return fmt.Sprintf("addr%d", idx) }
func inputName(idx uint32) string  { return fmt.Sprintf("in_%d", idx) }
func outputName(idx uint32) string { return fmt.Sprintf("out_%d", idx) }

// samplerName follows "{stage}samp{i}" so the linker can locate a sampler
// uniform's GL location purely from its TGSI index (spec.md §4.D).
func samplerName(stage string, idx uint32) string { return fmt.Sprintf("%ssamp%d", stage, idx) }

// shadowMaskName/shadowAddName are the paired uniforms vrend_shader.c emits
// next to a shadow sampler so the translator can fake PCF-compare state for
// targets that don't carry it natively in the sampler itself.
func shadowMaskName(stage string, idx uint32) string { return fmt.Sprintf("%sshadmask%d", stage, idx) }
func shadowAddName(stage string, idx uint32) string  { return fmt.Sprintf("%sshadadd%d", stage, idx) }

// constArrayName/uboName follow "{stage}const0[i]" / "{stage}ubo{i}".
func constArrayName(stage string) string       { return stage + "const0" }
func uboName(stage string, idx uint32) string  { return fmt.Sprintf("%subo%d", stage, idx) }

const swizzleLetters = "xyzw"

func swizzleSuffix(sw [4]uint8, n int) string {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		c := sw[i]
		if c > 3 {
			c = 0
		}
		out = append(out, swizzleLetters[c])
	}
	return string(out)
}

func writeMaskSuffix(mask uint8) string {
	out := make([]byte, 0, 4)
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			out = append(out, swizzleLetters[i])
		}
	}
	return string(out)
}

func maskPopcount(mask uint8) int {
	n := 0
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}
