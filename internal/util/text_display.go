package util

import (
	"strings"
	"unicode"
)

// DisplaySnippet flattens an excerpt onto one line for terminal output and
// caps it at maxRunes, appending "..." when cut.
func DisplaySnippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 420
	}
	s = normalizeWhitespace(SanitizeText(s))

	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	if len(out) > maxRunes {
		return strings.TrimSpace(string(out[:maxRunes])) + "..."
	}
	return string(out)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
