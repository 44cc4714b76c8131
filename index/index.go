/*
Package index is a small in-memory "sounds-like" index on top of the Russian
metaphone encoder.

Texts (typically full names) are stored under an id and can be found again
by any spelling which encodes to the same key:

	idx := index.New()
	idx.Add("42", "Спиридонова Маргарита Афанасьевна")
	idx.Lookup("спередонова моргорита офонасевна") // => ["42"]

Besides whole-text lookups the index answers queries for single words and
for key prefixes. An Index is safe for concurrent use.
*/
package index

import (
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	rumetaphone "github.com/talbot/es-ru-metaphone"
)

// tracer writes to trace with key 'rumetaphone.index'
func tracer() tracing.Trace {
	return tracing.Select("rumetaphone.index")
}

// Index maps metaphone keys to the ids of the texts they were computed from.
type Index struct {
	mu      sync.RWMutex
	encoder *rumetaphone.Encoder
	texts   keyStore         // full key => ids
	words   keyStore         // token key => ids
	docs    map[string]entry // id => keys, needed for removal
}

type entry struct {
	key   string
	words []string
}

// Option configures an Index.
type Option func(*Index)

// WithEncoder sets the encoder to compute keys with. Texts and queries are
// always encoded by the same encoder.
func WithEncoder(enc *rumetaphone.Encoder) Option {
	return func(idx *Index) {
		if enc != nil {
			idx.encoder = enc
		}
	}
}

// New creates an empty index.
func New(opts ...Option) *Index {
	idx := &Index{
		encoder: rumetaphone.New(),
		texts:   newTrieStore(),
		words:   newTrieStore(),
		docs:    make(map[string]entry),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Add stores text under id, replacing any text previously stored under id.
// It returns the key of text. Texts without phonetic content are not
// indexed and yield an empty key.
func (idx *Index) Add(id, text string) string {
	key := idx.encoder.Encode(text)
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.remove(id)
	if key == "" {
		tracer().Debugf("skipping %s: %q has no phonetic content", id, text)
		return ""
	}
	e := entry{key: key, words: strings.Fields(key)}
	idx.texts.Put(e.key, id)
	for _, w := range e.words {
		idx.words.Put(w, id)
	}
	idx.docs[id] = e
	tracer().Debugf("indexed %s as %s", id, key)
	return key
}

// Remove deletes the text stored under id. It reports whether there was one.
func (idx *Index) Remove(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.remove(id)
}

func (idx *Index) remove(id string) bool {
	e, ok := idx.docs[id]
	if !ok {
		return false
	}
	idx.texts.Delete(e.key, id)
	for _, w := range e.words {
		idx.words.Delete(w, id)
	}
	delete(idx.docs, id)
	return true
}

// Key returns the key stored for id.
func (idx *Index) Key(id string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.docs[id]
	return e.key, ok
}

// Len returns the number of indexed texts.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Lookup returns the ids, in ascending order, of all texts sounding like
// text as a whole.
func (idx *Index) Lookup(text string) []string {
	key := idx.encoder.Encode(text)
	if key == "" {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.texts.Get(key)
}

// LookupPrefix returns the ids of all texts whose key starts with the key of
// text, e.g. all bearers of a surname regardless of their given names.
func (idx *Index) LookupPrefix(text string) []string {
	key := idx.encoder.Encode(text)
	if key == "" {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.texts.WithPrefix(key)
}

// LookupWords returns the ids of all texts containing a word which sounds
// like any word of query.
func (idx *Index) LookupWords(query string) []string {
	key := idx.encoder.Encode(query)
	if key == "" {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	union := make(posting)
	for _, w := range strings.Fields(key) {
		for _, id := range idx.words.Get(w) {
			union[id] = struct{}{}
		}
	}
	return union.ids()
}

// Stats reports the number of distinct keys for whole texts and for words.
func (idx *Index) Stats() (textKeys, wordKeys int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.texts.Stats().Keys, idx.words.Stats().Keys
}
