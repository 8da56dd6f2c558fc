// Package markup renders the lightweight bold-emphasis markup used by
// instruction-step bodies (**text**) into sanitized HTML.
package markup

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func emphasisPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("strong")
		policy = p
	})
	return policy
}

// Emphasis converts **text** spans into <strong> elements, escaping
// everything else, and sanitizes the result. An unterminated ** is left as
// literal text.
func Emphasis(raw string) string {
	var sb strings.Builder
	rest := raw
	for {
		start := strings.Index(rest, "**")
		if start < 0 {
			sb.WriteString(html.EscapeString(rest))
			break
		}
		end := strings.Index(rest[start+2:], "**")
		if end < 0 {
			sb.WriteString(html.EscapeString(rest))
			break
		}
		sb.WriteString(html.EscapeString(rest[:start]))
		sb.WriteString("<strong>")
		sb.WriteString(html.EscapeString(rest[start+2 : start+2+end]))
		sb.WriteString("</strong>")
		rest = rest[start+2+end+2:]
	}
	return strings.TrimSpace(emphasisPolicy().Sanitize(sb.String()))
}
