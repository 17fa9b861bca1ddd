package textutil

import "strings"

// Normalize lowercases s and drops every character that is not an ASCII
// letter or digit. The result is idempotent: Normalize(Normalize(x)) ==
// Normalize(x).
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lowered))
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Truncate shortens text to at most limit runes, appending "..." when
// anything was cut.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + "..."
		}
		count++
	}
	return text
}
