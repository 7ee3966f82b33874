package engine

import (
	"fmt"

	"key-maze/internal/grid"
)

// signature identifies a search state. The grid content is fully determined
// by the remaining keys, so position plus remaining keys is enough.
type signature struct {
	at        grid.Coord
	remaining grid.KeySet
}

func (s signature) String() string {
	return fmt.Sprintf("%s|%s", s.at.Key(), s.remaining)
}

// memoEntry is the best completion found from a state: the steps still to
// walk and the first key to collect.
type memoEntry struct {
	cost int
	key  byte
	at   grid.Coord
}

// memo holds completion costs for one top-level search. An entry is written
// once every branch below it has been evaluated and is trusted from then on.
type memo struct {
	entries map[signature]memoEntry
	hits    int
}

func newMemo() *memo {
	return &memo{entries: make(map[signature]memoEntry)}
}

func (m *memo) get(sig signature) (memoEntry, bool) {
	e, ok := m.entries[sig]
	if ok {
		m.hits++
	}
	return e, ok
}

func (m *memo) put(sig signature, e memoEntry) {
	m.entries[sig] = e
}

func (m *memo) len() int { return len(m.entries) }

// order follows the best choices from the given state and returns the keys in
// collection order. Each step removes one key, so at most remaining.Len()
// entries are followed.
func (m *memo) order(at grid.Coord, remaining grid.KeySet) string {
	keys := make([]byte, 0, remaining.Len())
	for n := remaining.Len(); n > 0; n-- {
		e, ok := m.entries[signature{at: at, remaining: remaining}]
		if !ok || !remaining.Has(e.key) {
			break
		}
		keys = append(keys, e.key)
		at, remaining = e.at, remaining.Remove(e.key)
	}
	return string(keys)
}
