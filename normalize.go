package rumetaphone

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Casers and chains carry state, so every call gets its own from the pool.
var normalizerPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			cases.Upper(language.Russian),
			runes.Remove(runes.Predicate(isInvalidSymbol)),
			runes.Remove(runes.Predicate(isUnusedSymbol)),
		)
	},
}

// delimiters are runs of ASCII blanks and hyphens
var delimiters = regexp.MustCompile(`[\t\n\v\f\r \-]+`)

func isBlank(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isInvalidSymbol is true for everything but upper-case Cyrillic letters,
// blanks and hyphens.
func isInvalidSymbol(r rune) bool {
	if r >= 'А' && r <= 'Я' || r == 'Ё' {
		return false
	}
	return !isBlank(r) && r != '-'
}

// Soft and hard signs are not pronounced.
func isUnusedSymbol(r rune) bool {
	return r == 'Ь' || r == 'Ъ'
}

// normalize trims and upper-cases source and strips every symbol without
// phonetic meaning. ok is false if nothing is left.
func normalize(source string) (value string, ok bool) {
	source = strings.TrimFunc(source, func(r rune) bool { return r <= ' ' })
	tr := normalizerPool.Get().(transform.Transformer)
	value, _, err := transform.String(tr, source)
	tr.Reset()
	normalizerPool.Put(tr)
	if err != nil {
		tracer().Errorf("normalizing %q: %v", source, err)
		return "", false
	}
	return value, value != ""
}

// tokenize splits a normalized value at runs of blanks and hyphens.
func tokenize(value string) []string {
	return delimiters.Split(value, -1)
}
