package propstate

import "iter"

// StateMap is an immutable mapping from Property to a value drawn from
// that property's domain. Equality and hash depend only on the entry set,
// never on which storage strategy backs the instance. The interface
// exposes no mutating operations; a changed map is always a new map.
type StateMap interface {
	// Get returns the value for p. Presence is determined by slot
	// occupancy: a property stored with its domain's zero-like value
	// (false, 0) still reports ok=true.
	Get(p *Property) (Value, bool)

	// Contains reports whether p has a value in this map.
	Contains(p *Property) bool

	// Len returns the number of entries.
	Len() int

	// Entries iterates the (property, value) pairs. The sequence is lazy
	// and restartable; iteration order is strategy-dependent but the
	// entry multiset is not.
	Entries() iter.Seq2[*Property, Value]

	// Equal reports whether other holds exactly the same entries.
	Equal(other StateMap) bool

	// Hash returns a strategy-independent hash of the entry set.
	Hash() uint64
}

// DefaultThreshold is the default number of wasted dense-table slots
// tolerated before the factory falls back to the sparse strategy.
const DefaultThreshold = 30

// Options configures StateMap construction.
type Options struct {
	// Threshold is the maximum tolerated waste (index range minus entry
	// count) for the dense strategy. Zero forces sparse storage whenever
	// any slot would go unused. Negative values are treated as zero.
	Threshold int

	// Logger receives strategy-selection and registry diagnostics at
	// debug level. Nil disables logging.
	Logger Logger
}

// DefaultOptions returns the default construction options.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Logger:    newNoopLogger(),
	}
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return newNoopLogger()
	}
	return o.Logger
}

// emptyMap is the minimal representation of a StateMap with no entries.
type emptyMap struct{}

func (emptyMap) Get(*Property) (Value, bool) { return nil, false }
func (emptyMap) Contains(*Property) bool     { return false }
func (emptyMap) Len() int                    { return 0 }

func (emptyMap) Entries() iter.Seq2[*Property, Value] {
	return func(func(*Property, Value) bool) {}
}

func (emptyMap) Equal(other StateMap) bool { return other != nil && other.Len() == 0 }
func (emptyMap) Hash() uint64              { return 0 }

// NewStateMap builds an immutable map over the given assignment, choosing
// a storage strategy from the density of the keys' property indices:
// dense parallel arrays when the wasted slots stay within opts.Threshold,
// an index-sorted array with binary search otherwise. If any key lacks an
// assigned index the generic hash strategy is mandatory.
func NewStateMap(assign map[*Property]Value, opts Options) StateMap {
	if len(assign) == 0 {
		return emptyMap{}
	}
	minIdx, maxIdx := -1, -1
	for p := range assign {
		if p == nil {
			panic("propstate: nil property key")
		}
		if !p.Initialized() {
			opts.logger().Debugf("statemap: key %q has no index, using hash strategy", p.Name())
			return newHashMap(assign)
		}
		idx := p.Index()
		if minIdx == -1 || idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	threshold := opts.Threshold
	if threshold < 0 {
		threshold = 0
	}
	rng := maxIdx - minIdx + 1
	waste := rng - len(assign)
	if waste <= threshold {
		opts.logger().Debugf("statemap: dense strategy, size=%d range=%d waste=%d", len(assign), rng, waste)
		return newDenseMap(assign, minIdx, rng)
	}
	opts.logger().Debugf("statemap: sparse strategy, size=%d range=%d waste=%d", len(assign), rng, waste)
	return newSparseMap(assign)
}

// stateMapsEqual is the shared structural-equality check: same size and
// every entry of a present in b with an equal value.
func stateMapsEqual(a, b StateMap) bool {
	if b == nil || a.Len() != b.Len() {
		return false
	}
	for p, v := range a.Entries() {
		bv, ok := b.Get(p)
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// entrySetHash combines the per-entry hashes commutatively, so maps with
// different iteration orders still hash identically.
func entrySetHash(m StateMap) uint64 {
	var h uint64
	for p, v := range m.Entries() {
		h += pairHash(p, v)
	}
	return fnvUint(h, uint64(m.Len()))
}
