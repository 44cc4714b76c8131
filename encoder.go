package rumetaphone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned by EncodeValue for values which are not strings.
var ErrInvalidInput = errors.New("russian metaphone encode parameter is not of type String")

// Encoder encodes strings into Russian metaphone keys.
//
// An Encoder holds nothing but frozen rule tables and may be shared by any
// number of goroutines.
type Encoder struct {
	tables *Tables
}

var defaultEncoder = &Encoder{tables: defaultTables}

// New returns an encoder using the reference rule tables.
func New() *Encoder {
	return defaultEncoder
}

// NewWithTables returns an encoder using custom rule tables, e.g. from
// LoadTables. A nil tables argument selects the reference tables.
func NewWithTables(tables *Tables) *Encoder {
	if tables == nil {
		return defaultEncoder
	}
	return &Encoder{tables: tables}
}

// Tables returns the rule tables of enc.
func (enc *Encoder) Tables() *Tables {
	return enc.tables
}

// Encode returns the metaphone key for source using the reference tables.
func Encode(source string) string {
	return defaultEncoder.Metaphone(source)
}

// Encode returns the metaphone key for source. An empty key means that
// source has no phonetic content.
func (enc *Encoder) Encode(source string) string {
	return enc.Metaphone(source)
}

// EncodeValue is the untyped counterpart of Encode, for callers handing
// around values of arbitrary type. Values other than strings are rejected
// with ErrInvalidInput.
func (enc *Encoder) EncodeValue(value any) (string, error) {
	source, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w (got %T)", ErrInvalidInput, value)
	}
	return enc.Metaphone(source), nil
}

// Metaphone runs the encoding pipeline on source:
//
//	"Кузнецов Иван Сергеевич" => "КУЗНИЦ4 ИВАН СИРГИ?"
//
// Tokens are encoded independently and joined by single blanks.
func (enc *Encoder) Metaphone(source string) string {
	value, ok := normalize(source)
	if !ok {
		return ""
	}
	tokens := tokenize(value)
	var result strings.Builder
	result.Grow(len(value))
	for i, token := range tokens {
		result.WriteString(string(enc.encodeToken(token)))
		if i != len(tokens)-1 {
			result.WriteByte(' ')
		}
	}
	return strings.TrimSpace(result.String())
}

// EncodeToken encodes a single word which has already been normalized and
// split off, i.e. one element of the token stream. It is the per-token part
// of Metaphone and applies no normalization at all.
func (enc *Encoder) EncodeToken(token string) string {
	return string(enc.encodeToken(token))
}

func (enc *Encoder) encodeToken(token string) []rune {
	folded := enc.tables.suffixes.FirstMatch(token)
	reduced := enc.tables.vowels.ApplyAll(folded)
	devoiced := enc.tables.devoicing.FirstMatch(reduced)
	tracer().Debugf("token %s: suffix=%s vowels=%s devoiced=%s", token, folded, reduced, devoiced)
	return collapse(devoiced)
}
