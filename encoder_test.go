package rumetaphone

import (
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceRuleReader struct {
	entries [][3]string
	index   int
}

func (r *sliceRuleReader) Next() (string, string, string, error) {
	if r.index >= len(r.entries) {
		return "", "", "", io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry[0], entry[1], entry[2], nil
}

func TestEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rumetaphone")
	defer teardown()
	//
	tests := map[string]struct {
		src string
		dst string
	}{
		"full name":        {src: "Кузнецов Иван Сергеевич", dst: "КУЗНИЦ4 ИВАН СИРГИ?"},
		"double surname":   {src: "Всеволод Александрович Михалков-Кончаловский", dst: "ФСИВАЛАТ АЛИКСАНТР? МИХАЛК4 КАНЧАЛ@"},
		"lithuanian":       {src: "Айдас Ноктиниус", dst: "АЙДАС НАКТИНИУС"},
		"lithuanian woman": {src: "Екатерина Михайловна Ноктинити", dst: "ИКАТИР1 МИХАЙЛ! НАКТИНИТИ"},
		"lithuanian -aite": {src: "Виталина Айдасавна Ноктинайте", dst: "ВИТАЛ1 АЙДАСАВНА НАКТИНАЙТИ"},
		"spelling 1":       {src: "Спиридонова маргарита афанасьевна", dst: "СПИРИДАН9 МАРГАРИТА АФАНАС!"},
		"spelling 2":       {src: "спередонова моргорита офонасевна", dst: "СПИРИДАН9 МАРГАРИТА АФАНАС!"},
		"empty":            {src: "", dst: ""},
		"blanks":           {src: "   ", dst: ""},
		"latin only":       {src: "Ivan 123", dst: ""},
		"signs only":       {src: "ЬЪ", dst: ""},
		"hyphen only":      {src: "-", dst: ""},
		"leading garbage":  {src: "1 Иван", dst: "ИВАН"},
		"delimiter runs":   {src: "Иван  --\tПетров", dst: "ИВАН ПИТР4"},
		"final voiced":     {src: "Хлеб", dst: "ХЛИП"},
		"final z":          {src: "Мороз", dst: "МАРАС"},
		"before unvoiced":  {src: "Лодка", dst: "ЛАТКА"},
		"initial voiced":   {src: "Друг", dst: "ТРУК"},
		"repeated letters": {src: "Анна", dst: "АНА"},
		"feminine -aya":    {src: "Красная", dst: "КРАСН6"},
		"sentinel dollar":  {src: "Чайковская", dst: "ЧАЙК$"},
		"hard sign":        {src: "Подъячев", dst: "ПАДАЧ4"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.dst, Encode(test.src))
		})
	}
}

func TestEncodeSpellingVariantsConverge(t *testing.T) {
	variants := []string{
		"Спиридонова маргарита афанасьевна",
		"спередонова моргорита офонасевна",
		"СПИРИДОНОВА МАРГАРИТА АФАНАСЬЕВНА",
		"  Спиридонова-Маргарита   Афанасьевна  ",
	}
	enc := New()
	want := enc.Encode(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, enc.Encode(v), "variant %q", v)
	}
}

func TestEncodeValueRejectsNonStrings(t *testing.T) {
	enc := New()
	_, err := enc.EncodeValue([]byte{0, 1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "is not of type String")
	//
	key, err := enc.EncodeValue("Кузнецов")
	require.NoError(t, err)
	assert.Equal(t, "КУЗНИЦ4", key)
}

func TestEncodeIsDeterministic(t *testing.T) {
	inputs := []string{
		"Кузнецов Иван Сергеевич",
		"Всеволод Александрович Михалков-Кончаловский",
		"спередонова моргорита офонасевна",
	}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = Encode(in)
	}
	var wg sync.WaitGroup
	var mismatches atomic.Int32
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				for i, in := range inputs {
					if Encode(in) != want[i] {
						mismatches.Add(1)
					}
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, mismatches.Load(), "concurrent encodings differ")
}

func TestEncodeIsNotIdempotent(t *testing.T) {
	once := Encode("Кузнецов")
	assert.Equal(t, "КУЗНИЦ4", once)
	assert.Equal(t, "КУЗНИЦ", Encode(once)) // the sentinel does not survive normalization
}

func TestEncodeToken(t *testing.T) {
	enc := New()
	assert.Equal(t, "КАНЧАЛ@", enc.EncodeToken("КОНЧАЛОВСКИЙ"))
	assert.Equal(t, "СИРГИ?", enc.EncodeToken("СЕРГЕЕВИЧ"))
}

func TestLoadTablesFromReader(t *testing.T) {
	tables, err := LoadTables("custom", &sliceRuleReader{
		entries: [][3]string{
			{SuffixTable, "(ОВ)$", "4"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", tables.Identifier())
	assert.Equal(t, 1, tables.Suffixes().Len())
	assert.Equal(t, DefaultTables().Vowels().Len(), tables.Vowels().Len())
	assert.Equal(t, DefaultTables().Devoicing().Len(), tables.Devoicing().Len())
	enc := NewWithTables(tables)
	assert.Equal(t, "ПИТР4", enc.Encode("Петров"))
	assert.Equal(t, "ПИТРАФСКИЙ", enc.Encode("Петровский"))
	assert.Equal(t, "ПИТР@", Encode("Петровский"))
}

func TestLoadTablesErrors(t *testing.T) {
	_, err := LoadTables("unknown-table", &sliceRuleReader{
		entries: [][3]string{{"consonants", "Б", "П"}},
	})
	assert.Error(t, err)
	_, err = LoadTables("bad-pattern", &sliceRuleReader{
		entries: [][3]string{{VowelTable, "([ОЫЯ]", "А"}},
	})
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), "vowels"), err.Error())
	}
}

func TestNewWithNilTables(t *testing.T) {
	assert.Same(t, DefaultTables(), NewWithTables(nil).Tables())
}

func TestSharedTablesCannotBeChanged(t *testing.T) {
	rules := New().Tables().Suffixes().Rules()
	for i := range rules {
		rules[i].Replacement = "X"
		rules[i].Pattern.Longest()
	}
	rules[0] = Rule{}
	assert.Equal(t, "КУЗНИЦ4", Encode("Кузнецов"))
	assert.Equal(t, "КАНЧАЛ@", New().Encode("Кончаловский"))
	assert.Equal(t, 28, DefaultTables().Suffixes().Len())
}
