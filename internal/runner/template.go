// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"strings"
)

// Expand substitutes {name} placeholders in template with values from
// params. A placeholder with no matching key is an error; literal braces
// have no escape because no command template needs them.
func Expand(template string, params map[string]string) (string, error) {
	var out strings.Builder
	rest := template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in template %q", template)
		}

		name := rest[start+1 : start+end]
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("unknown placeholder {%s} in template %q", name, template)
		}

		out.WriteString(rest[:start])
		out.WriteString(value)
		rest = rest[start+end+1:]
	}
}
