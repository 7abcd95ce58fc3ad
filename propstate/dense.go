package propstate

import "iter"

// denseMap stores entries in parallel key/value arrays sized to the span
// of the keys' property indices, offset by the smallest index. Lookups
// are a subtraction, a bounds check, and an occupancy test. Slots with a
// nil key are empty; presence is never inferred from the value, so a
// stored false or 0 is still "present".
type denseMap struct {
	keys   []*Property
	values []Value
	offset int
	size   int
	hash   uint64
}

func newDenseMap(assign map[*Property]Value, offset, span int) *denseMap {
	m := &denseMap{
		keys:   make([]*Property, span),
		values: make([]Value, span),
		offset: offset,
		size:   len(assign),
	}
	for p, v := range assign {
		slot := p.Index() - offset
		m.keys[slot] = p
		m.values[slot] = v
	}
	m.hash = entrySetHash(m)
	return m
}

func (m *denseMap) Get(p *Property) (Value, bool) {
	if p == nil {
		panic("propstate: nil property key")
	}
	if !p.Initialized() {
		return nil, false
	}
	slot := p.Index() - m.offset
	if slot < 0 || slot >= len(m.keys) || m.keys[slot] == nil {
		return nil, false
	}
	return m.values[slot], true
}

func (m *denseMap) Contains(p *Property) bool {
	_, ok := m.Get(p)
	return ok
}

func (m *denseMap) Len() int { return m.size }

func (m *denseMap) Entries() iter.Seq2[*Property, Value] {
	return func(yield func(*Property, Value) bool) {
		for i, p := range m.keys {
			if p == nil {
				continue
			}
			if !yield(p, m.values[i]) {
				return
			}
		}
	}
}

func (m *denseMap) Equal(other StateMap) bool { return stateMapsEqual(m, other) }

func (m *denseMap) Hash() uint64 { return m.hash }
