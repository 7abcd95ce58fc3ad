package propstate

import (
	"iter"
	"sort"
)

// sparseMap stores entries in parallel key/value arrays sorted by
// property index, with no empty slots. Lookup is a binary search over
// the indices. Preferred when the key indices are spread out enough that
// a dense table would waste too many slots.
type sparseMap struct {
	keys   []*Property
	values []Value
	hash   uint64
}

func newSparseMap(assign map[*Property]Value) *sparseMap {
	m := &sparseMap{
		keys:   make([]*Property, 0, len(assign)),
		values: make([]Value, 0, len(assign)),
	}
	for p := range assign {
		m.keys = append(m.keys, p)
	}
	sort.Slice(m.keys, func(i, j int) bool {
		return m.keys[i].Index() < m.keys[j].Index()
	})
	for _, p := range m.keys {
		m.values = append(m.values, assign[p])
	}
	m.hash = entrySetHash(m)
	return m
}

func (m *sparseMap) Get(p *Property) (Value, bool) {
	if p == nil {
		panic("propstate: nil property key")
	}
	if !p.Initialized() {
		return nil, false
	}
	idx := p.Index()
	i := sort.Search(len(m.keys), func(i int) bool {
		return m.keys[i].Index() >= idx
	})
	if i < len(m.keys) && m.keys[i].Index() == idx {
		return m.values[i], true
	}
	return nil, false
}

func (m *sparseMap) Contains(p *Property) bool {
	_, ok := m.Get(p)
	return ok
}

func (m *sparseMap) Len() int { return len(m.keys) }

func (m *sparseMap) Entries() iter.Seq2[*Property, Value] {
	return func(yield func(*Property, Value) bool) {
		for i, p := range m.keys {
			if !yield(p, m.values[i]) {
				return
			}
		}
	}
}

func (m *sparseMap) Equal(other StateMap) bool { return stateMapsEqual(m, other) }

func (m *sparseMap) Hash() uint64 { return m.hash }
