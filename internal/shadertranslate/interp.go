package shadertranslate

import "strings"

// PatchVertexInterpolants rewrites a vertex shader's output interpolation
// qualifiers in place so they match what the paired fragment shader actually
// declared for the same (semantic name, semantic index) varying.
//
// TGSI lets a fragment shader's interpolation decoration differ from what
// the vertex shader guessed when it was translated in isolation (the two
// are translated independently, potentially cached and reused against
// different partners). Rather than re-translating the vertex shader once its
// partner is known, this overwrites the fixed-width qualifier column
// declare.go reserved (see interpPrefix) directly in the GLSL source text.
// This is a deliberate text-patch shortcut, not a parse-and-rewrite: it only
// works because every candidate qualifier word is padded to the same column
// width at emission time. Grounded on
// original_source/src/vrend_shader.c's vrend_patch_vertex_shader_interpolants,
// carried over per spec.md §4.C and flagged as an accepted shortcut in §9.
func PatchVertexInterpolants(vsSource string, vsInterp, fsInterp []InterpInfo, isGS, flatshade bool) string {
	lines := strings.Split(vsSource, "\n")
	for _, fi := range fsInterp {
		idx := matchInterp(vsInterp, fi)
		if idx < 0 {
			continue
		}
		want := interpQualifier(fi.Interpolate, flatshade)
		lineIdx := findOutputDecl(lines, idx)
		if lineIdx < 0 {
			continue
		}
		lines[lineIdx] = rewriteQualifierColumn(lines[lineIdx], want)
	}
	return strings.Join(lines, "\n")
}

func matchInterp(vsInterp []InterpInfo, fi InterpInfo) int {
	for i, vi := range vsInterp {
		if vi.SemanticName == fi.SemanticName && vi.SemanticIndex == fi.SemanticIndex {
			return i
		}
	}
	return -1
}

// findOutputDecl returns the line of the n-th qualified output declaration.
// declare.go emits one such line per entry of the vertex shader's Interp
// reflection, in the same order (gl_Position gets neither), so n is an index
// into that slice, not an output register number.
func findOutputDecl(lines []string, n int) int {
	seen := 0
	for i, l := range lines {
		if !strings.Contains(strings.TrimSpace(l), " out vec4 ") {
			continue
		}
		if seen == n {
			return i
		}
		seen++
	}
	return -1
}

// rewriteQualifierColumn replaces the interpPrefix-padded qualifier word at
// the front of a declaration line, preserving the line's total width.
func rewriteQualifierColumn(line, want string) string {
	trimmed := strings.TrimLeft(line, " ")
	padWidth := len(line) - len(trimmed)
	rest := trimmed
	for _, q := range []string{"noperspective", "smooth", "flat"} {
		if strings.HasPrefix(rest, q+" ") {
			rest = strings.TrimPrefix(rest, q+" ")
			break
		}
	}
	newPad := interpPrefixPad(want)
	_ = padWidth
	return newPad + want + " " + rest
}
