package prompt

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{|\}\}|\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Render substitutes {name} placeholders with vars and turns {{ and }}
// into literal braces, the escaping task_decomposition is written in. Placeholders without a value are left untouched.
func Render(tpl string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tpl, func(m string) string {
		switch m {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Fill replaces every {name} in tpl with value and leaves all other
// braces alone, so templates can carry literal JSON with single braces.
func Fill(tpl, name, value string) string {
	return strings.ReplaceAll(tpl, "{"+name+"}", value)
}
