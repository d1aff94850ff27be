// Package expand turns a keyword into the set of terms a search looks for:
// each token with its lemma, followed by the keyword's synonyms.
package expand

import "strings"

type Expander struct {
	lemmatizer Lemmatizer
	synonyms   Synonyms
}

// New falls back to IdentityLemmatizer and DefaultSynonyms when given nil.
func New(l Lemmatizer, s Synonyms) *Expander {
	if l == nil {
		l = IdentityLemmatizer{}
	}
	if s == nil {
		s = DefaultSynonyms()
	}
	return &Expander{lemmatizer: l, synonyms: s}
}

// Expand is pure and deterministic. Each token contributes its lower-cased
// surface form and then its lemma, in token order; synonyms follow in table
// order. A blank keyword yields an empty set.
func (e *Expander) Expand(keyword string) VariantSet {
	keyword = strings.TrimSpace(keyword)
	set := NewVariantSet()
	if keyword == "" {
		return set
	}
	for _, tok := range Tokenize(keyword) {
		tok = strings.ToLower(tok)
		set.add(tok)
		set.add(strings.ToLower(e.lemmatizer.Lemma(tok)))
	}
	for _, syn := range e.synonyms.Lookup(keyword) {
		set.add(strings.ToLower(syn))
	}
	return set
}
