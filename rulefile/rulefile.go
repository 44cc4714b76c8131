/*
Package rulefile reads and writes rule tables for package rumetaphone in a
small TeX-flavoured text format.

Rules are enclosed in named blocks, one rule per line, pattern and
replacement separated by blanks:

	\message{surnames-2016}
	% longest suffixes first
	\suffixes{
	(ОВСКИЙ)$ @
	(ЕВСКИЙ)$ #
	}
	\vowels{
	[ОЫЯ] А
	}
	\devoicing{
	Б$ П
	}

Block names are the table names of package rumetaphone. Lines starting
with '%' are comments. Blocks may be omitted; LoadTables substitutes the
reference tables for them.
*/
package rulefile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	rumetaphone "github.com/talbot/es-ru-metaphone"
)

// tracer writes to trace with key 'rumetaphone.rulefile'
func tracer() tracing.Trace {
	return tracing.Select("rumetaphone.rulefile")
}

// Reader streams rules from rule-file sources.
type Reader struct {
	scanner    *bufio.Scanner
	identifier string
	table      string // block we're in, "" if outside of blocks
	line       int
}

// LoadTables parses rule-file data and returns ready-to-use rule tables.
// The tables are identified by the \message line of the data, or by name if
// there is none.
func LoadTables(name string, reader io.Reader) (*rumetaphone.Tables, error) {
	r := NewReader(reader)
	return rumetaphone.LoadTables(name, r)
}

// LoadEncoder parses rule-file data and returns an encoder for it.
func LoadEncoder(name string, reader io.Reader) (*rumetaphone.Encoder, error) {
	tables, err := LoadTables(name, reader)
	if err != nil {
		return nil, err
	}
	return rumetaphone.NewWithTables(tables), nil
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
	}
}

// Identifier returns the content of the \message{...} line, if any has been
// read yet.
func (r *Reader) Identifier() string {
	return r.identifier
}

// Next returns the next rule as (table, pattern, replacement).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, string, string, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "\\message{") && strings.HasSuffix(line, "}") {
			r.identifier = line[9 : len(line)-1]
			continue
		}
		if r.table == "" {
			if !strings.HasPrefix(line, "\\") || !strings.HasSuffix(line, "{") {
				return "", "", "", fmt.Errorf("line %d: rule outside of table block: %q", r.line, line)
			}
			r.table = line[1 : len(line)-1]
			tracer().Debugf("entering block %s at line %d", r.table, r.line)
			continue
		}
		if line == "}" {
			r.table = ""
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return "", "", "", fmt.Errorf("line %d: expected pattern and replacement, have %q", r.line, line)
		}
		return r.table, fields[0], fields[1], nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", "", err
	}
	if r.table != "" {
		return "", "", "", fmt.Errorf("line %d: unterminated block %s", r.line, r.table)
	}
	return "", "", "", io.EOF
}

// Write emits tables in rule-file format. Reading the output back with
// LoadTables yields tables with identical behaviour.
func Write(w io.Writer, tables *rumetaphone.Tables) error {
	bw := bufio.NewWriter(w)
	if id := tables.Identifier(); id != "" {
		fmt.Fprintf(bw, "\\message{%s}\n", id)
	}
	for _, name := range []string{rumetaphone.SuffixTable, rumetaphone.VowelTable, rumetaphone.DevoicingTable} {
		table, _ := tables.Table(name)
		fmt.Fprintf(bw, "\\%s{\n", name)
		for _, rule := range table.Rules() {
			fmt.Fprintln(bw, rule.String())
		}
		fmt.Fprintln(bw, "}")
	}
	return bw.Flush()
}
