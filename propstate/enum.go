package propstate

import (
	"fmt"
	"iter"
)

// Enum is a named finite enumeration with ordered members. Enums exist so
// that enum-subset domains can be encoded as bitsets sized to the enum's
// cardinality rather than as general-purpose sets.
type Enum struct {
	name    string
	members []string
	ordinal map[string]int
}

// NewEnum creates an enumeration from an ordered member list. Member
// names must be unique and non-empty.
func NewEnum(name string, members ...string) (*Enum, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("propstate: enum %q has no members", name)
	}
	ordinal := make(map[string]int, len(members))
	for i, m := range members {
		if m == "" {
			return nil, fmt.Errorf("propstate: enum %q has an empty member name", name)
		}
		if _, dup := ordinal[m]; dup {
			return nil, fmt.Errorf("propstate: enum %q has duplicate member %q", name, m)
		}
		ordinal[m] = i
	}
	e := &Enum{name: name, ordinal: ordinal}
	e.members = append(e.members, members...)
	return e, nil
}

// Name returns the enumeration's name.
func (e *Enum) Name() string { return e.name }

// Len returns the enumeration's cardinality.
func (e *Enum) Len() int { return len(e.members) }

// Member looks up a member by name.
func (e *Enum) Member(name string) (EnumValue, bool) {
	ord, ok := e.ordinal[name]
	if !ok {
		return EnumValue{}, false
	}
	return EnumValue{enum: e, ordinal: ord}, true
}

// MemberAt returns the member with the given ordinal. It panics if the
// ordinal is out of range.
func (e *Enum) MemberAt(ordinal int) EnumValue {
	if ordinal < 0 || ordinal >= len(e.members) {
		panic(fmt.Sprintf("propstate: enum %q has no ordinal %d", e.name, ordinal))
	}
	return EnumValue{enum: e, ordinal: ordinal}
}

// Members iterates the enumeration's members in declaration order.
func (e *Enum) Members() iter.Seq[EnumValue] {
	return func(yield func(EnumValue) bool) {
		for i := range e.members {
			if !yield(EnumValue{enum: e, ordinal: i}) {
				return
			}
		}
	}
}

// EnumValue is one member of an Enum. It is a comparable value type: two
// EnumValues are == iff they name the same member of the same enum.
type EnumValue struct {
	enum    *Enum
	ordinal int
}

// Enum returns the enumeration this value belongs to.
func (v EnumValue) Enum() *Enum { return v.enum }

// Ordinal returns the member's position in the enum's declaration order.
func (v EnumValue) Ordinal() int { return v.ordinal }

func (v EnumValue) String() string {
	if v.enum == nil {
		return "<zero enum value>"
	}
	return v.enum.members[v.ordinal]
}
