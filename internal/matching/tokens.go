// Package matching implements the tokenization and mutual-fit scoring used
// to suggest B2B connections between actors of the same event.
package matching

import (
	"strings"
	"unicode/utf8"
)

// stopwords are connective words that carry no matching signal.
var stopwords = map[string]struct{}{
	"and": {},
	"or":  {},
}

// languageAliases maps common abbreviations to the full language name so
// "en" and "English" compare equal after normalization.
var languageAliases = map[string]string{
	"en": "english",
	"fr": "french",
	"es": "spanish",
	"de": "german",
	"ar": "arabic",
	"it": "italian",
	"pt": "portuguese",
	"zh": "chinese",
	"ru": "russian",
}

func isSeparator(r rune) bool {
	switch r {
	case ',', ';', '|', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Tokenize lower-cases the given free-text fields, splits them on whitespace
// and the separators , ; | /, drops tokens shorter than two characters and
// stopwords, and de-duplicates the result preserving first-seen order.
// Tokenization must be identical everywhere a field is compared; inconsistent
// tokenization between call sites silently breaks matching.
func Tokenize(fields ...string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, field := range fields {
		for _, raw := range strings.FieldsFunc(strings.ToLower(field), isSeparator) {
			if utf8.RuneCountInString(raw) < 2 {
				continue
			}
			if _, stop := stopwords[raw]; stop {
				continue
			}
			if _, dup := seen[raw]; dup {
				continue
			}
			seen[raw] = struct{}{}
			tokens = append(tokens, raw)
		}
	}
	return tokens
}

// TokenizeLanguages tokenizes a language field and folds abbreviations into
// their full names through the alias table.
func TokenizeLanguages(field string) []string {
	raw := Tokenize(field)
	out := raw[:0]
	seen := make(map[string]struct{})
	for _, tok := range raw {
		if full, ok := languageAliases[tok]; ok {
			tok = full
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Overlap counts the tokens present in both sets.
func Overlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, tok := range a {
		set[tok] = struct{}{}
	}
	n := 0
	for _, tok := range b {
		if _, ok := set[tok]; ok {
			n++
		}
	}
	return n
}
