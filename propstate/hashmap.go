package propstate

import "iter"

// hashMap is the fallback strategy: a conventional map keyed by property
// identity. Mandatory when any key lacks an assigned index, since the
// array strategies cannot place such a key.
type hashMap struct {
	entries map[*Property]Value
	hash    uint64
}

func newHashMap(assign map[*Property]Value) *hashMap {
	entries := make(map[*Property]Value, len(assign))
	for p, v := range assign {
		entries[p] = v
	}
	m := &hashMap{entries: entries}
	m.hash = entrySetHash(m)
	return m
}

func (m *hashMap) Get(p *Property) (Value, bool) {
	if p == nil {
		panic("propstate: nil property key")
	}
	v, ok := m.entries[p]
	return v, ok
}

func (m *hashMap) Contains(p *Property) bool {
	_, ok := m.Get(p)
	return ok
}

func (m *hashMap) Len() int { return len(m.entries) }

func (m *hashMap) Entries() iter.Seq2[*Property, Value] {
	return func(yield func(*Property, Value) bool) {
		for p, v := range m.entries {
			if !yield(p, v) {
				return
			}
		}
	}
}

func (m *hashMap) Equal(other StateMap) bool { return stateMapsEqual(m, other) }

func (m *hashMap) Hash() uint64 { return m.hash }
