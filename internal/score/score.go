// Package score ranks a document's text against a variant set.
//
// Offsets are measured in runes so accented text is never cut mid-character.
package score

import (
	"strings"
	"unicode/utf8"
)

const (
	LeadWindow    = 500
	LeadBonus     = 5
	ExcerptBefore = 50
	ExcerptAfter  = 150
	Emphasis      = "**"

	ExcerptNotFound = "(no excerpt found)"
)

type Result struct {
	Score       int
	Occurrences int
	Excerpt     string
}

// Matched reports whether the document belongs in search results. The gate
// is the raw occurrence count, not the score.
func (r Result) Matched() bool { return r.Occurrences > 0 }

// Score counts non-overlapping occurrences of every variant in text, one
// point each, and adds LeadBonus when any variant starts inside the first
// LeadWindow runes. text is expected to be lower-case already.
func Score(text string, variants []string) Result {
	var res Result
	for _, v := range variants {
		if v == "" {
			continue
		}
		res.Occurrences += strings.Count(text, v)
	}
	res.Score = res.Occurrences

	lead := prefixRunes(text, LeadWindow)
	for _, v := range variants {
		if v != "" && strings.Contains(lead, v) {
			res.Score += LeadBonus
			break
		}
	}

	res.Excerpt = Excerpt(text, variants)
	return res
}

// Excerpt takes the first variant, in the given order, that occurs in text and
// returns the window from ExcerptBefore runes before its first match to
// ExcerptAfter runes after the match start, with the first occurrence inside
// the window wrapped in Emphasis.
func Excerpt(text string, variants []string) string {
	for _, v := range variants {
		if v == "" {
			continue
		}
		idx := strings.Index(text, v)
		if idx < 0 {
			continue
		}
		start := runesBack(text, idx, ExcerptBefore)
		end := runesForward(text, idx, ExcerptAfter)
		window := text[start:end]

		at := strings.Index(window, v)
		if at < 0 {
			// variant longer than the forward window
			return window
		}
		return window[:at] + Emphasis + v + Emphasis + window[at+len(v):]
	}
	return ExcerptNotFound
}

// runesBack returns the byte offset n runes before byte offset i, clamped to 0.
func runesBack(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// runesForward returns the byte offset n runes after byte offset i, clamped to
// len(s).
func runesForward(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func prefixRunes(s string, n int) string {
	return s[:runesForward(s, 0, n)]
}
