/*
Package filter plugs the Russian metaphone encoder into a token stream, the
way search engines apply phonetic filters during analysis.

A Filter reads tokens from an upstream TokenStream and either replaces each
term by its metaphone key or injects the key as an additional token at the
same position, depending on option "replace":

	tokens := filter.NewWhitespaceTokenizer(strings.NewReader("Иван Кузнецов"))
	phonetic := filter.New(tokens, filter.WithReplace(false))
	for {
		token, err := phonetic.Next()
		if err == io.EOF {
			break
		}
		...
	}

yields "ИВАН", "Иван", "КУЗНИЦ4", "Кузнецов", where every original token
carries a position increment of 0.
*/
package filter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	rumetaphone "github.com/talbot/es-ru-metaphone"
)

// Name is the name the filter is registered under with analysis hosts.
const Name = "ru_phonetic"

// ReplaceSetting is the settings key for option "replace".
const ReplaceSetting = "replace"

// tracer writes to trace with key 'rumetaphone.filter'
func tracer() tracing.Trace {
	return tracing.Select("rumetaphone.filter")
}

// Token is a term of a token stream.
//
// Start and End are byte offsets into the original text. PositionIncrement
// is the distance to the position of the previous token; 0 stacks a token
// onto its predecessor.
type Token struct {
	Text              string
	Start, End        int
	PositionIncrement int
}

// TokenStream yields tokens one-by-one.
// It should return io.EOF when the stream is exhausted.
type TokenStream interface {
	Next() (Token, error)
}

// Config holds the options of a Filter.
type Config struct {
	Replace bool // replace terms by their key, or inject keys next to them
	Encoder *rumetaphone.Encoder
}

// DefaultConfig replaces terms, using the reference tables.
func DefaultConfig() Config {
	return Config{
		Replace: true,
		Encoder: rumetaphone.New(),
	}
}

// ConfigFromSettings reads a filter configuration from host settings.
// Only key "replace" is recognized; it defaults to true.
func ConfigFromSettings(settings map[string]string) (Config, error) {
	conf := DefaultConfig()
	if v, ok := settings[ReplaceSetting]; ok {
		replace, err := strconv.ParseBool(v)
		if err != nil {
			return conf, fmt.Errorf("filter %s: setting %s: %w", Name, ReplaceSetting, err)
		}
		conf.Replace = replace
	}
	return conf, nil
}

// Option configures a Filter.
type Option func(*Config)

// WithReplace sets option "replace".
func WithReplace(replace bool) Option {
	return func(conf *Config) {
		conf.Replace = replace
	}
}

// WithEncoder sets the encoder to use, e.g. one with custom rule tables.
func WithEncoder(enc *rumetaphone.Encoder) Option {
	return func(conf *Config) {
		if enc != nil {
			conf.Encoder = enc
		}
	}
}

// WithConfig replaces all options by conf.
func WithConfig(conf Config) Option {
	return func(c *Config) {
		*c = conf
		if c.Encoder == nil {
			c.Encoder = rumetaphone.New()
		}
	}
}

// Filter is a TokenStream applying the metaphone encoder to its input.
// A Filter is not safe for concurrent use; the encoder it uses is.
type Filter struct {
	input   TokenStream
	conf    Config
	pending *Token // original token to emit after an injected key
}

// New creates a filter reading from input.
func New(input TokenStream, opts ...Option) *Filter {
	conf := DefaultConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	return &Filter{input: input, conf: conf}
}

// Replace reports the setting of option "replace".
func (f *Filter) Replace() bool {
	return f.conf.Replace
}

// Next returns the next token. Terms without phonetic content, and terms
// identical to their key, are passed through untouched.
func (f *Filter) Next() (Token, error) {
	if f.pending != nil {
		token := *f.pending
		f.pending = nil
		return token, nil
	}
	token, err := f.input.Next()
	if err != nil {
		return token, err
	}
	if token.Text == "" {
		return token, nil
	}
	key := f.conf.Encoder.Encode(token.Text)
	if key == "" || key == token.Text {
		return token, nil
	}
	tracer().Debugf("%s => %s", token.Text, key)
	if f.conf.Replace {
		token.Text = key
		return token, nil
	}
	original := token
	original.PositionIncrement = 0
	f.pending = &original
	token.Text = key
	return token, nil
}

// Collect drains a token stream into a slice.
func Collect(stream TokenStream) ([]Token, error) {
	var tokens []Token
	for {
		token, err := stream.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
}
