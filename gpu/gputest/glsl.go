package gputest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/telrender/tel/gpu"
)

var (
	// Matches things like `layout(location = 2) in vec3 vertNormal;` and `in vec3 vertNormal;`
	inDeclRegex      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
	uniformDeclRegex = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)
	errorDirRegex    = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)
	mainRegex        = regexp.MustCompile(`void\s+main\s*\(\s*\)`)
)

var glslTypes = map[string]uint32{
	"float": gpu.FLOAT,
	"int":   gpu.INT,
	"uint":  gpu.UNSIGNED_INT,
	"vec2":  gpu.FLOAT_VEC2,
	"vec3":  gpu.FLOAT_VEC3,
	"vec4":  gpu.FLOAT_VEC4,
	"mat4":  gpu.FLOAT_MAT4,
}

// checkSource returns a compiler style log for src, or an empty string when it compiles
func checkSource(src string) string {

	if m := errorDirRegex.FindStringSubmatchIndex(src); m != nil {
		line := strings.Count(src[:m[0]], "\n") + 1
		return fmt.Sprintf("0:%d(1): error: #error %s\n", line, src[m[2]:m[3]])
	}

	braces, parens := 0, 0
	line := 1
	for _, r := range src {

		switch r {
		case '\n':
			line++
		case '{':
			braces++
		case '}':
			braces--
		case '(':
			parens++
		case ')':
			parens--
		}

		if braces < 0 || parens < 0 {
			return fmt.Sprintf("0:%d(1): error: syntax error, unexpected '%c'\n", line, r)
		}
	}

	if braces != 0 || parens != 0 {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file\n", line)
	}

	for _, m := range append(uniformDeclRegex.FindAllStringSubmatch(src, -1), inDeclsAsUniformShape(src)...) {
		if _, ok := glslTypes[m[1]]; !ok {
			return fmt.Sprintf("0:1(1): error: unknown type '%s'\n", m[1])
		}
	}

	if !mainRegex.MatchString(src) {
		return "0:1(1): error: no function with name 'main'\n"
	}

	return ""
}

// inDeclsAsUniformShape returns `in` declarations shaped like uniform matches ([full, type, name])
func inDeclsAsUniformShape(src string) [][]string {

	matches := inDeclRegex.FindAllStringSubmatch(src, -1)
	out := make([][]string, len(matches))
	for i, m := range matches {
		out[i] = []string{m[0], m[2], m[3]}
	}

	return out
}

// linkAttributes assigns attribute locations the way a linker would: explicit
// BindAttribLocation calls first, then layout qualifiers, then the lowest free slot.
func linkAttributes(vertSrc string, binds map[string]uint32) ([]gpu.ActiveVariable, map[string]int32) {

	matches := inDeclRegex.FindAllStringSubmatch(vertSrc, -1)

	vars := make([]gpu.ActiveVariable, 0, len(matches))
	locs := make(map[string]int32, len(matches))
	used := map[int32]bool{}

	pending := []string{}
	for _, m := range matches {

		name := m[3]
		vars = append(vars, gpu.ActiveVariable{Name: name, Type: glslTypes[m[2]], Size: 1})

		if slot, ok := binds[name]; ok {
			locs[name] = int32(slot)
			used[int32(slot)] = true
			continue
		}

		if m[1] != "" {
			slot, _ := strconv.Atoi(m[1])
			locs[name] = int32(slot)
			used[int32(slot)] = true
			continue
		}

		pending = append(pending, name)
	}

	next := int32(0)
	for _, name := range pending {

		for used[next] {
			next++
		}

		locs[name] = next
		used[next] = true
	}

	return vars, locs
}

// linkUniforms collects uniforms of all stages, numbering locations in order of first appearance
func linkUniforms(srcs ...string) ([]gpu.ActiveVariable, map[string]int32) {

	vars := []gpu.ActiveVariable{}
	locs := map[string]int32{}
	for _, src := range srcs {

		for _, m := range uniformDeclRegex.FindAllStringSubmatch(src, -1) {

			name := m[2]
			if _, ok := locs[name]; ok {
				continue
			}

			locs[name] = int32(len(vars))
			vars = append(vars, gpu.ActiveVariable{Name: name, Type: glslTypes[m[1]], Size: 1})
		}
	}

	return vars, locs
}
