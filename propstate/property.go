// Package propstate models objects whose identity is a combination of
// property→value assignments. Properties carry small enumerable domains
// (bool, bounded integer range, enum subset); a full assignment over an
// owning type's declared properties forms an immutable Variant, and a
// Registry interns canonical Variants under dense integer ids for the
// benefit of storage layers that hold ids instead of object references.
package propstate

import (
	"cmp"
	"fmt"
)

const indexUnset = -1

// indexAllocator hands out the process-wide property indices. Index
// assignment happens during a single-threaded setup phase; FreezeIndexes
// marks the end of that phase, after which further assignment is a bug.
type indexAllocator struct {
	next   int
	frozen bool
}

var globalIndexes indexAllocator

// FreezeIndexes ends the property-registration phase. Any Init call after
// the freeze panics. Call it once all types have initialized their
// properties and before concurrent reads begin.
func FreezeIndexes() {
	globalIndexes.frozen = true
}

// Property identifies one named attribute with a finite domain of legal
// values. A property is inert until Init assigns it a globally unique
// index; array-backed StateMap strategies depend on that index.
type Property struct {
	name   string
	domain Domain
	index  int
}

// DefineProperty creates an uninitialized property. The owning type's
// registration step is expected to call Init exactly once before any
// StateMap referencing the property is built.
func DefineProperty(name string, domain Domain) *Property {
	if name == "" {
		panic("propstate: property name must not be empty")
	}
	if domain == nil {
		panic("propstate: property domain must not be nil")
	}
	return &Property{name: name, domain: domain, index: indexUnset}
}

// Init assigns the next value of the process-wide index counter to this
// property. Calling Init twice, or after FreezeIndexes, panics: both
// indicate a setup-ordering bug that would corrupt every array-indexed
// lookup built afterwards.
func (p *Property) Init() {
	if p.index != indexUnset {
		panic(fmt.Sprintf("propstate: property %q already initialized (index %d)", p.name, p.index))
	}
	if globalIndexes.frozen {
		panic(fmt.Sprintf("propstate: property %q initialized after FreezeIndexes", p.name))
	}
	p.index = globalIndexes.next
	globalIndexes.next++
}

// Index returns the globally unique index assigned by Init. It panics if
// the property was never initialized.
func (p *Property) Index() int {
	if p.index == indexUnset {
		panic(fmt.Sprintf("propstate: property %q not initialized", p.name))
	}
	return p.index
}

// Initialized reports whether Init has run. The StateMap factory uses it
// to decide whether array strategies are applicable at all.
func (p *Property) Initialized() bool {
	return p.index != indexUnset
}

// Name returns the property's display name, unique within an owning type.
func (p *Property) Name() string { return p.name }

// Domain returns the descriptor of the property's legal values.
func (p *Property) Domain() Domain { return p.domain }

func (p *Property) String() string {
	if p.index == indexUnset {
		return p.name
	}
	return fmt.Sprintf("%s#%d", p.name, p.index)
}

// CompareProperties orders properties by index. Both properties must be
// initialized.
func CompareProperties(a, b *Property) int {
	return cmp.Compare(a.Index(), b.Index())
}
