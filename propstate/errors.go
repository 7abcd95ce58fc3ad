package propstate

import "errors"

// Rejected-operation errors surfaced to callers. Initialization-order
// violations (double Init, Index before Init) are a different class: they
// panic, since they indicate a setup bug that would corrupt every
// array-indexed lookup built afterwards.
var (
	// ErrBadRange reports an integer-range domain with negative min or
	// max <= min.
	ErrBadRange = errors.New("propstate: bad integer range")

	// ErrUnknownProperty reports a get/set against a property the owning
	// type does not declare.
	ErrUnknownProperty = errors.New("propstate: unknown property")

	// ErrIllegalValue reports a value outside the property's domain.
	ErrIllegalValue = errors.New("propstate: illegal value")

	// ErrIncompleteAssignment reports a variant build whose assignment
	// does not cover exactly the owning type's declared property set.
	ErrIncompleteAssignment = errors.New("propstate: assignment does not match declared properties")

	// ErrDuplicateProperty reports a type declared with two properties of
	// the same name.
	ErrDuplicateProperty = errors.New("propstate: duplicate property name")
)
