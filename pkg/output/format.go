package output

import (
	"fmt"
	"os"
)

// Format renders a template with the given arguments.
//
// With no arguments the template is returned unchanged, so literal percent
// signs are safe. A single map[string]any argument triggers named
// substitution of ${key} references. Any other non-empty argument list is
// applied positionally with fmt.Sprintf semantics.
func Format(template string, args ...any) string {
	if len(args) == 1 {
		if mapping, ok := args[0].(map[string]any); ok {
			return expandMapping(template, mapping)
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(template, args...)
	}
	return template
}

// expandMapping substitutes ${key} references using the mapping. Missing
// keys render as an explicit marker, following fmt's convention for bad
// verbs, so broken templates are visible instead of silently empty.
func expandMapping(template string, mapping map[string]any) string {
	return os.Expand(template, func(key string) string {
		if value, ok := mapping[key]; ok {
			return fmt.Sprint(value)
		}
		return "%!(NOKEY:" + key + ")"
	})
}
