package util

import "strings"

// SanitizeText removes NUL bytes and control characters that some PDF and OCR
// extractors emit. Newlines, carriage returns and tabs are kept.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		if ch == '\u00a0' {
			ch = ' '
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

// NormalizeText is the canonical form every extractor returns: sanitized and
// lower-cased.
func NormalizeText(s string) string {
	return strings.ToLower(SanitizeText(s))
}
