package rumetaphone

import (
	"fmt"
	"io"
)

// Names of the rule tables, as used by RuleReader and package rulefile.
const (
	SuffixTable    = "suffixes"
	VowelTable     = "vowels"
	DevoicingTable = "devoicing"
)

// Tables is the complete, frozen set of rule tables driving an Encoder.
// A Tables value cannot be changed once it has been built.
type Tables struct {
	suffixes   RuleTable // surname and patronymic suffixes, first match wins
	vowels     RuleTable // vowel classes, applied cumulatively
	devoicing  RuleTable // final voiced consonant, first match wins
	identifier string
}

// Longest suffixes first. The second "(АЯ)$" rule can never fire; it is kept
// so that encodings stay identical to already indexed data.
var defaultSuffixes = mustRuleTable(SuffixTable,
	[2]string{"(ОВСКИЙ)$", "@"},
	[2]string{"(ЕВСКИЙ)$", "#"},
	[2]string{"(ОВСКАЯ)$", "$"},
	[2]string{"(ЕВСКАЯ)$", "%"},
	// patronymics
	[2]string{"(ЕВИЧ)$", "?"},
	[2]string{"(ОВИЧ)$", "?"},
	[2]string{"(ЕВНА)$", "!"},
	[2]string{"(ОВНА)$", "!"},
	//
	[2]string{"(ИЕВА)$", "9"},
	[2]string{"(ЕЕВА)$", "9"},
	[2]string{"(ОВА)$", "9"},
	[2]string{"(ЕВА)$", "9"},
	[2]string{"(ИЕВ)$", "4"},
	[2]string{"(ЕЕВ)$", "4"},
	[2]string{"(НКО)$", "3"},
	[2]string{"(УК)$", "0"},
	[2]string{"(ЮК)$", "0"},
	[2]string{"(ИНА)$", "1"},
	[2]string{"(ИК)$", "2"},
	[2]string{"(ЕК)$", "2"},
	[2]string{"(ОВ)$", "4"},
	[2]string{"(ЕВ)$", "4"},
	[2]string{"(ЫХ)$", "5"},
	[2]string{"(ИХ)$", "5"},
	[2]string{"(АЯ)$", "6"},
	[2]string{"(АЯ)$", "7"},
	[2]string{"(ИК)$", "7"},
	[2]string{"(ИН)$", "8"},
)

// Digraphs first, single letters would otherwise eat them.
var defaultVowels = mustRuleTable(VowelTable,
	[2]string{"(ИО)|(ЙО)|(ИЕ)|(ЙЕ)", "И"},
	[2]string{"[ОЫЯ]", "А"},
	[2]string{"[Ю]", "У"},
	[2]string{"[ЕЁЭ]", "И"},
)

var defaultDevoicing = mustRuleTable(DevoicingTable,
	[2]string{"Б$", "П"},
	[2]string{"В$", "Ф"},
	[2]string{"Г$", "К"},
	[2]string{"Д$", "Т"},
	[2]string{"З$", "С"},
)

var defaultTables = &Tables{
	suffixes:   defaultSuffixes,
	vowels:     defaultVowels,
	devoicing:  defaultDevoicing,
	identifier: "default",
}

// DefaultTables returns the reference rule tables.
func DefaultTables() *Tables {
	return defaultTables
}

// Suffixes returns the suffix table.
func (tables *Tables) Suffixes() RuleTable {
	return tables.suffixes
}

// Vowels returns the vowel table.
func (tables *Tables) Vowels() RuleTable {
	return tables.vowels
}

// Devoicing returns the table of final voiced consonants.
func (tables *Tables) Devoicing() RuleTable {
	return tables.devoicing
}

// Identifier identifies the table set, e.g. by the name of the rule file
// it has been loaded from.
func (tables *Tables) Identifier() string {
	return tables.identifier
}

// Table returns the rule table with the given name.
func (tables *Tables) Table(name string) (RuleTable, bool) {
	switch name {
	case SuffixTable:
		return tables.suffixes, true
	case VowelTable:
		return tables.vowels, true
	case DevoicingTable:
		return tables.devoicing, true
	}
	return RuleTable{}, false
}

// RuleReader yields rules one-by-one, each tagged with the name of the
// table it belongs to. It should return io.EOF when the stream is exhausted.
type RuleReader interface {
	Next() (table string, pattern string, replacement string, err error)
}

// identified is implemented by rule readers whose source names itself.
type identified interface {
	Identifier() string
}

// LoadTables compiles rule tables from a streaming, format-agnostic source.
// Rules keep the order in which they are read. Tables not mentioned by
// the reader are taken from the default tables.
//
// The tables are identified by name, unless reader has an Identifier method
// returning a non-empty identifier after the last rule has been read.
//
// File format parsing is outside this package. Use adapters like package
// rulefile to parse concrete formats and feed this API.
func LoadTables(name string, reader RuleReader) (*Tables, error) {
	loaded := map[string]*RuleTable{
		SuffixTable:    {name: SuffixTable},
		VowelTable:     {name: VowelTable},
		DevoicingTable: {name: DevoicingTable},
	}
	for {
		table, pattern, replacement, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading rule tables %s: %w", name, err)
		}
		t, ok := loaded[table]
		if !ok {
			return nil, fmt.Errorf("loading rule tables %s: unknown table %q", name, table)
		}
		if err = t.add(pattern, replacement); err != nil {
			return nil, fmt.Errorf("loading rule tables %s: %w", name, err)
		}
	}
	if r, ok := reader.(identified); ok && r.Identifier() != "" {
		name = r.Identifier()
	}
	tables := &Tables{
		suffixes:   pick(loaded[SuffixTable], defaultSuffixes),
		vowels:     pick(loaded[VowelTable], defaultVowels),
		devoicing:  pick(loaded[DevoicingTable], defaultDevoicing),
		identifier: name,
	}
	tracer().Infof("rule tables %s: suffixes=%d vowels=%d devoicing=%d", name,
		tables.suffixes.Len(), tables.vowels.Len(), tables.devoicing.Len())
	return tables, nil
}

func pick(loaded *RuleTable, fallback RuleTable) RuleTable {
	if loaded.Len() == 0 {
		tracer().Debugf("table %s not loaded, using defaults", fallback.name)
		return fallback
	}
	return *loaded
}
