package propstate

import (
	"fmt"
	"strings"
)

// Type is an owning type: a name plus the ordered set of properties every
// variant of the type must assign. Types are immutable once created.
type Type struct {
	name     string
	props    []*Property
	declared map[*Property]struct{}
}

// NewType declares an owning type. Property display names must be unique
// within the type.
func NewType(name string, props ...*Property) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("propstate: type name must not be empty")
	}
	declared := make(map[*Property]struct{}, len(props))
	names := make(map[string]struct{}, len(props))
	for _, p := range props {
		if _, dup := names[p.Name()]; dup {
			return nil, fmt.Errorf("%w: %q in type %q", ErrDuplicateProperty, p.Name(), name)
		}
		names[p.Name()] = struct{}{}
		declared[p] = struct{}{}
	}
	t := &Type{name: name, declared: declared}
	t.props = append(t.props, props...)
	return t, nil
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// Properties returns the declared properties in declaration order. The
// caller must not modify the returned slice.
func (t *Type) Properties() []*Property { return t.props }

// Declares reports whether p is part of this type's property set.
func (t *Type) Declares(p *Property) bool {
	_, ok := t.declared[p]
	return ok
}

// InitProperties assigns indices to every declared property, in
// declaration order. It must run exactly once per property, during the
// single-threaded setup phase, before any variant of the type is built.
func (t *Type) InitProperties() {
	for _, p := range t.props {
		p.Init()
	}
}

// EnumerateVariants builds one variant per combination of legal values
// over the declared properties, in domain iteration order with the last
// declared property varying fastest. Types with no properties yield a
// single empty variant.
func (t *Type) EnumerateVariants(opts Options) ([]*Variant, error) {
	assigns := []map[*Property]Value{{}}
	for _, p := range t.props {
		next := make([]map[*Property]Value, 0, len(assigns)*p.Domain().Size())
		for _, partial := range assigns {
			for v := range p.Domain().Values() {
				extended := make(map[*Property]Value, len(partial)+1)
				for k, pv := range partial {
					extended[k] = pv
				}
				extended[p] = v
				next = append(next, extended)
			}
		}
		assigns = next
	}
	variants := make([]*Variant, 0, len(assigns))
	for _, assign := range assigns {
		v, err := BuildVariant(t, assign, opts)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// Variant is an immutable value: an owning type plus a complete
// assignment over the type's declared properties. Variants are safe to
// share across goroutines; With produces a new variant instead of
// mutating.
type Variant struct {
	owner *Type
	state StateMap
	opts  Options
	hash  uint64
}

// BuildVariant constructs a variant of t from the given assignment. The
// assignment must cover exactly t's declared property set and every
// value must lie in its property's domain.
func BuildVariant(t *Type, assign map[*Property]Value, opts Options) (*Variant, error) {
	if t == nil {
		return nil, fmt.Errorf("propstate: variant requires an owning type")
	}
	if len(assign) != len(t.props) {
		return nil, fmt.Errorf("%w: type %q declares %d properties, assignment has %d",
			ErrIncompleteAssignment, t.name, len(t.props), len(assign))
	}
	for p, v := range assign {
		if !t.Declares(p) {
			return nil, fmt.Errorf("%w: %q is not declared by type %q", ErrUnknownProperty, p.Name(), t.name)
		}
		if !p.Domain().Contains(v) {
			return nil, fmt.Errorf("%w: %v is not in the domain of property %q", ErrIllegalValue, v, p.Name())
		}
	}
	state := NewStateMap(assign, opts)
	return &Variant{
		owner: t,
		state: state,
		opts:  opts,
		hash:  fnvUint(fnvString(t.name), state.Hash()),
	}, nil
}

// Type returns the owning type.
func (v *Variant) Type() *Type { return v.owner }

// State returns the variant's property map.
func (v *Variant) State() StateMap { return v.state }

// Get returns the value assigned to p. It fails if p is not part of the
// owning type's declared set.
func (v *Variant) Get(p *Property) (Value, error) {
	val, ok := v.state.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not declared by type %q", ErrUnknownProperty, p.Name(), v.owner.name)
	}
	return val, nil
}

// With returns the variant differing from v in exactly the value of p.
// It fails for an undeclared property or an out-of-domain value. When
// the new value equals the current one the receiver itself is returned,
// so callers skip both the rebuild and a wasted registry lookup.
func (v *Variant) With(p *Property, value Value) (*Variant, error) {
	cur, err := v.Get(p)
	if err != nil {
		return nil, err
	}
	if !p.Domain().Contains(value) {
		return nil, fmt.Errorf("%w: %v is not in the domain of property %q", ErrIllegalValue, value, p.Name())
	}
	if cur == value {
		return v, nil
	}
	assign := make(map[*Property]Value, v.state.Len())
	for k, kv := range v.state.Entries() {
		assign[k] = kv
	}
	assign[p] = value
	return BuildVariant(v.owner, assign, v.opts)
}

// Equal reports structural equality: same owning type and the same
// property assignment. Two independently built variants with identical
// content compare equal, which is what lets the registry deduplicate.
func (v *Variant) Equal(other *Variant) bool {
	if v == other {
		return true
	}
	if other == nil || v.owner != other.owner {
		return false
	}
	return v.state.Equal(other.state)
}

// Hash returns the variant's cached structural hash.
func (v *Variant) Hash() uint64 { return v.hash }

// String renders the variant as name[p=v,...] in declaration order.
func (v *Variant) String() string {
	var b strings.Builder
	b.WriteString(v.owner.name)
	b.WriteByte('[')
	for i, p := range v.owner.props {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name())
		b.WriteByte('=')
		val, _ := v.state.Get(p)
		fmt.Fprint(&b, val)
	}
	b.WriteByte(']')
	return b.String()
}
