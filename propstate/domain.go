package propstate

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Value is a property value: bool, int, or EnumValue, as constrained by
// the property's Domain. All three are comparable, so values compare
// with == and may key ordinary maps.
type Value = any

// Domain describes the finite set of legal values for a property.
// Descriptors are immutable; Contains and Size never allocate and, for
// bool and integer-range domains, carry no storage proportional to the
// domain at all.
type Domain interface {
	// Contains reports whether v is a legal value of this domain.
	Contains(v Value) bool

	// Size returns the number of legal values.
	Size() int

	// Values iterates the legal values in a fixed order. The sequence is
	// lazy and restartable.
	Values() iter.Seq[Value]

	// Equal reports structural equality with another descriptor.
	Equal(other Domain) bool
}

// boolDomain is the fixed pair {false, true}.
type boolDomain struct{}

// BoolDomain returns the two-valued boolean domain. Iteration order is
// false, then true.
func BoolDomain() Domain { return boolDomain{} }

func (boolDomain) Contains(v Value) bool {
	_, ok := v.(bool)
	return ok
}

func (boolDomain) Size() int { return 2 }

func (boolDomain) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if !yield(false) {
			return
		}
		yield(true)
	}
}

func (boolDomain) Equal(other Domain) bool {
	_, ok := other.(boolDomain)
	return ok
}

func (boolDomain) String() string { return "bool" }

// intRange is a contiguous inclusive integer range. Membership and size
// are arithmetic; individual values are never stored.
type intRange struct {
	min, max int
}

// IntRange returns the domain of integers in [min, max]. It fails when
// min is negative or the range holds fewer than two values.
func IntRange(min, max int) (Domain, error) {
	if min < 0 {
		return nil, fmt.Errorf("%w: min %d is negative", ErrBadRange, min)
	}
	if max <= min {
		return nil, fmt.Errorf("%w: max %d must exceed min %d", ErrBadRange, max, min)
	}
	return intRange{min: min, max: max}, nil
}

// MustIntRange is IntRange for statically known bounds; it panics on a
// bad range.
func MustIntRange(min, max int) Domain {
	d, err := IntRange(min, max)
	if err != nil {
		panic(err)
	}
	return d
}

func (r intRange) Contains(v Value) bool {
	n, ok := v.(int)
	return ok && n >= r.min && n <= r.max
}

func (r intRange) Size() int { return r.max - r.min + 1 }

func (r intRange) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for n := r.min; n <= r.max; n++ {
			if !yield(n) {
				return
			}
		}
	}
}

func (r intRange) Equal(other Domain) bool {
	o, ok := other.(intRange)
	return ok && o.min == r.min && o.max == r.max
}

func (r intRange) String() string { return fmt.Sprintf("[%d,%d]", r.min, r.max) }

// enumSubset is a fixed subset of an enum's members, encoded as a bitset
// sized to the enum's cardinality. Contains is a bit test and Size a
// population count.
type enumSubset struct {
	enum *Enum
	bits *bitset.BitSet
}

// EnumSubset returns the domain holding the given members of enum. With
// no members listed, the domain covers the whole enumeration. All listed
// members must belong to enum.
func EnumSubset(enum *Enum, members ...EnumValue) (Domain, error) {
	if enum == nil {
		return nil, fmt.Errorf("propstate: enum subset requires an enum")
	}
	bits := bitset.New(uint(enum.Len()))
	if len(members) == 0 {
		for i := 0; i < enum.Len(); i++ {
			bits.Set(uint(i))
		}
	}
	for _, m := range members {
		if m.enum != enum {
			return nil, fmt.Errorf("propstate: member %q does not belong to enum %q", m, enum.Name())
		}
		bits.Set(uint(m.ordinal))
	}
	return enumSubset{enum: enum, bits: bits}, nil
}

func (s enumSubset) Contains(v Value) bool {
	m, ok := v.(EnumValue)
	return ok && m.enum == s.enum && s.bits.Test(uint(m.ordinal))
}

func (s enumSubset) Size() int { return int(s.bits.Count()) }

func (s enumSubset) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			if !yield(EnumValue{enum: s.enum, ordinal: int(i)}) {
				return
			}
		}
	}
}

func (s enumSubset) Equal(other Domain) bool {
	o, ok := other.(enumSubset)
	return ok && o.enum == s.enum && o.bits.Equal(s.bits)
}

func (s enumSubset) String() string {
	return fmt.Sprintf("%s(%d/%d)", s.enum.Name(), s.Size(), s.enum.Len())
}
