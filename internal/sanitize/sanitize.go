// Package sanitize neutralizes HTML-significant characters in untrusted
// text so stored and returned values are inert when rendered. Applied on
// both write and read paths: rows written before sanitization was
// introduced may still hold raw markup.
package sanitize

import (
	"regexp"
	"strings"
)

// entity matches the escapes Clean itself produces, plus numeric
// references, immediately after an ampersand. Ampersands introducing one
// of these are left alone so Clean is idempotent.
var entity = regexp.MustCompile(`^(?:amp|lt|gt|quot|#39|#[0-9]{1,6}|#x[0-9a-fA-F]{1,6});`)

// Clean entity-encodes <, >, ", ' and any ampersand that does not already
// begin a recognized entity. All other bytes pass through unchanged, and
// Clean(Clean(s)) == Clean(s) for every s.
func Clean(s string) string {
	if !strings.ContainsAny(s, `<>"'&`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if entity.MatchString(s[i+1:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Fields applies Clean to every string value in the payload in place,
// leaving non-string values untouched.
func Fields(payload map[string]any) {
	for k, v := range payload {
		if s, ok := v.(string); ok {
			payload[k] = Clean(s)
		}
	}
}
