package propstate

import "sync"

// Registry interns canonical variants under dense integer ids. The
// forward table is keyed by full structural equality (two independently
// built variants with the same content resolve to the same id); the
// reverse table is a dense slice with nil marking ids registered out of
// order. The registry is the only structure mutated after setup, so both
// tables sit behind one lock.
type Registry struct {
	mu      sync.RWMutex
	forward map[uint64][]regEntry
	reverse []*Variant
	count   int
	nextID  int
	log     Logger
}

type regEntry struct {
	variant *Variant
	id      int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return NewRegistryWithLogger(nil)
}

// NewRegistryWithLogger creates an empty registry that reports growth and
// registration events to log at debug level.
func NewRegistryWithLogger(log Logger) *Registry {
	if log == nil {
		log = newNoopLogger()
	}
	return &Registry{
		forward: make(map[uint64][]regEntry, 64),
		log:     log,
	}
}

// IDOf returns the id registered for a variant structurally equal to v,
// or ok=false when no such variant has been registered. "Not yet
// registered" is an expected outcome, not an error.
func (r *Registry) IDOf(v *Variant) (int, bool) {
	if v == nil {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(v)
}

func (r *Registry) lookupLocked(v *Variant) (int, bool) {
	for _, e := range r.forward[v.Hash()] {
		if e.variant.Equal(v) {
			return e.id, true
		}
	}
	return 0, false
}

// VariantOf returns the canonical variant registered under id, or
// ok=false for an unassigned or padded id.
func (r *Registry) VariantOf(id int) (*Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.reverse) || r.reverse[id] == nil {
		return nil, false
	}
	return r.reverse[id], true
}

// RegisterAt associates id with v. The reverse table grows as needed,
// padding intermediate slots with nil. Registering the same variant
// twice under different ids is a caller contract violation: the forward
// table keeps the last id, and the registry's own invariants stay
// intact.
func (r *Registry) RegisterAt(v *Variant, id int) {
	if v == nil || id < 0 {
		panic("propstate: register requires a variant and a non-negative id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerLocked(v, id)
}

func (r *Registry) registerLocked(v *Variant, id int) {
	h := v.Hash()
	bucket := r.forward[h]
	replaced := false
	for i, e := range bucket {
		if e.variant.Equal(v) {
			bucket[i].id = id
			replaced = true
			break
		}
	}
	if !replaced {
		r.forward[h] = append(bucket, regEntry{variant: v, id: id})
		r.count++
	}
	if id >= len(r.reverse) {
		grown := make([]*Variant, id+1)
		copy(grown, r.reverse)
		r.log.Debugf("registry: reverse table grown %d -> %d", len(r.reverse), id+1)
		r.reverse = grown
	}
	r.reverse[id] = v
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

// Register interns v, returning its id. An already-registered variant
// (by structural equality) keeps its existing id; otherwise v receives
// the next dense id.
func (r *Registry) Register(v *Variant) int {
	if v == nil {
		panic("propstate: register requires a variant")
	}
	r.mu.RLock()
	id, ok := r.lookupLocked(v)
	r.mu.RUnlock()
	if ok {
		return id
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have won the race between the two locks.
	if id, ok := r.lookupLocked(v); ok {
		return id
	}
	id = r.nextID
	r.registerLocked(v, id)
	return id
}

// Len returns the number of distinct registered variants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}
