package expand

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/kljensen/snowball"
)

// Lemmatizer reduces one token to its dictionary form.
type Lemmatizer interface {
	Lemma(token string) string
}

type stemFunc func(word string) (string, error)

func kljensen(language string) stemFunc {
	return func(word string) (string, error) {
		return snowball.Stem(word, language, true)
	}
}

func compiled(stem func(*snowballstem.Env) bool) stemFunc {
	return func(word string) (string, error) {
		env := snowballstem.NewEnv(word)
		stem(env)
		return env.Current(), nil
	}
}

// stemmers covers the languages of kljensen/snowball plus the compiled
// Snowball algorithms it does not ship.
var stemmers = map[string]stemFunc{
	"english":    kljensen("english"),
	"spanish":    kljensen("spanish"),
	"french":     kljensen("french"),
	"russian":    kljensen("russian"),
	"swedish":    kljensen("swedish"),
	"norwegian":  kljensen("norwegian"),
	"hungarian":  kljensen("hungarian"),
	"portuguese": compiled(portuguese.Stem),
	"german":     compiled(german.Stem),
	"italian":    compiled(italian.Stem),
	"dutch":      compiled(dutch.Stem),
}

// Languages lists the names NewSnowballLemmatizer accepts.
func Languages() []string {
	out := make([]string, 0, len(stemmers))
	for name := range stemmers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SnowballLemmatizer approximates lemmas with the Snowball stemmer for a
// single language.
type SnowballLemmatizer struct {
	language string
	stem     stemFunc
}

// NewSnowballLemmatizer fails when no Snowball algorithm exists for language.
func NewSnowballLemmatizer(language string) (*SnowballLemmatizer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	stem, ok := stemmers[language]
	if !ok {
		return nil, fmt.Errorf("snowball %q: unknown language (have %s)", language, strings.Join(Languages(), ", "))
	}
	return &SnowballLemmatizer{language: language, stem: stem}, nil
}

func (s *SnowballLemmatizer) Language() string { return s.language }

func (s *SnowballLemmatizer) Lemma(token string) string {
	token = strings.ToLower(token)
	stem, err := s.stem(token)
	if err != nil || stem == "" {
		return token
	}
	return stem
}

// IdentityLemmatizer returns tokens lower-cased and otherwise unchanged.
type IdentityLemmatizer struct{}

func (IdentityLemmatizer) Lemma(token string) string { return strings.ToLower(token) }

// Tokenize splits s on every rune that is neither a letter nor a digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
