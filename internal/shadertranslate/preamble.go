package shadertranslate

import (
	"fmt"
	"strings"
)

// emitPreamble writes the #version line (330 when cfg.GLSLVersion is 0) and,
// for a core-profile cfg, a "// core profile" marker line. No #extension
// directives are emitted. Grounded on vrend_shader.c's preamble emission,
// which picks #version from vrend_shader_cfg.glsl_version.
func emitPreamble(b *strings.Builder, cfg Config) {
	v := cfg.GLSLVersion
	if v == 0 {
		v = 330
	}
	fmt.Fprintf(b, "#version %d\n", v)
	if cfg.UseCoreProfile {
		b.WriteString("// core profile\n")
	}
}
