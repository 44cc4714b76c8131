package filter

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"
)

// WhitespaceTokenizer splits text at Unicode white space, like the
// whitespace tokenizers of search engines. Hyphenated words stay one token.
type WhitespaceTokenizer struct {
	scanner *bufio.Scanner
	offset  int // bytes consumed by the scanner so far
	start   int // offset of the most recent token
}

// NewWhitespaceTokenizer creates a token stream over the text of reader.
func NewWhitespaceTokenizer(reader io.Reader) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{scanner: bufio.NewScanner(reader)}
	t.scanner.Split(t.split)
	return t
}

// split works like bufio.ScanWords, but tracks byte offsets.
func (t *WhitespaceTokenizer) split(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += width
	}
	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) {
			return t.advance(i+width, data[start:i], start)
		}
		i += width
	}
	if atEOF && len(data) > start {
		return t.advance(len(data), data[start:], start)
	}
	t.offset += start
	return start, nil, nil
}

func (t *WhitespaceTokenizer) advance(n int, word []byte, start int) (int, []byte, error) {
	t.start = t.offset + start
	t.offset += n
	return n, word, nil
}

// Next returns the next whitespace-delimited token.
func (t *WhitespaceTokenizer) Next() (Token, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return Token{}, err
		}
		return Token{}, io.EOF
	}
	text := t.scanner.Text()
	return Token{
		Text:              text,
		Start:             t.start,
		End:               t.start + len(text),
		PositionIncrement: 1,
	}, nil
}
