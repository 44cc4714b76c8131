package index

import (
	"sort"

	"github.com/derekparker/trie"
)

type keyStoreStats struct {
	Backend string
	Keys    int
	Entries int
	Stale   int
}

// keyStore is the internal backend abstraction for key => ids postings.
type keyStore interface {
	Put(key, id string)
	Delete(key, id string)
	Get(key string) []string
	WithPrefix(prefix string) []string
	Stats() keyStoreStats
}

// posting is the set of ids stored under one key.
type posting map[string]struct{}

// trieStore keeps postings in a map and mirrors their keys in a trie, which
// makes prefix queries over keys cheap. The map is authoritative.
//
// Keys are never removed from the trie one by one. A key whose posting ran
// empty stays in the trie as a stale key and is filtered out of prefix
// results. Once stale keys outnumber live ones, the trie is rebuilt from the
// map.
type trieStore struct {
	postings map[string]posting
	trie     *trie.Trie
	stale    int
	entries  int
}

func newTrieStore() *trieStore {
	return &trieStore{
		postings: make(map[string]posting),
		trie:     trie.New(),
	}
}

func (ts *trieStore) Put(key, id string) {
	if key == "" {
		return
	}
	p, ok := ts.postings[key]
	if !ok {
		p = make(posting)
		ts.postings[key] = p
		ts.trie.Add(key, nil)
	}
	if _, dup := p[id]; !dup {
		p[id] = struct{}{}
		ts.entries++
	}
}

func (ts *trieStore) Delete(key, id string) {
	p, ok := ts.postings[key]
	if !ok {
		return
	}
	if _, found := p[id]; !found {
		return
	}
	delete(p, id)
	ts.entries--
	if len(p) == 0 {
		delete(ts.postings, key)
		ts.stale++
		if ts.stale > len(ts.postings) {
			ts.rebuild()
		}
	}
}

// rebuild replaces the trie by one holding exactly the live keys.
func (ts *trieStore) rebuild() {
	tracer().Debugf("rebuilding key trie: %d live keys, %d stale", len(ts.postings), ts.stale)
	ts.trie = trie.New()
	for key := range ts.postings {
		ts.trie.Add(key, nil)
	}
	ts.stale = 0
}

func (ts *trieStore) Get(key string) []string {
	return ts.postings[key].ids()
}

func (ts *trieStore) WithPrefix(prefix string) []string {
	if prefix == "" {
		return nil
	}
	union := make(posting)
	for _, key := range ts.trie.PrefixSearch(prefix) {
		for id := range ts.postings[key] {
			union[id] = struct{}{}
		}
	}
	return union.ids()
}

func (ts *trieStore) Stats() keyStoreStats {
	return keyStoreStats{
		Backend: "trie",
		Keys:    len(ts.postings),
		Entries: ts.entries,
		Stale:   ts.stale,
	}
}

// ids returns the ids of p in ascending order.
func (p posting) ids() []string {
	if len(p) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
