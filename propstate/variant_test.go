package propstate

import (
	"errors"
	"testing"
)

// newDoorType builds the canonical two-property fixture: a bool "open"
// and an integer "age" in [0, 15].
func newDoorType(t *testing.T) (*Type, *Property, *Property) {
	t.Helper()
	open := newTestProp(t, "open", BoolDomain())
	age := newTestProp(t, "age", MustIntRange(0, 15))
	door, err := NewType("door", open, age)
	if err != nil {
		t.Fatalf("NewType: %v", err)
	}
	return door, open, age
}

func TestBuildVariantAndGet(t *testing.T) {
	door, open, age := newDoorType(t)
	v, err := BuildVariant(door, map[*Property]Value{open: false, age: 3}, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}

	if got, err := v.Get(open); err != nil || got != false {
		t.Errorf("Get(open) = %v, %v; want false, nil", got, err)
	}
	if got, err := v.Get(age); err != nil || got != 3 {
		t.Errorf("Get(age) = %v, %v; want 3, nil", got, err)
	}

	stranger := newTestProp(t, "stranger", BoolDomain())
	if _, err := v.Get(stranger); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Get(undeclared) = %v; want ErrUnknownProperty", err)
	}
}

func TestBuildVariantValidation(t *testing.T) {
	door, open, age := newDoorType(t)

	if _, err := BuildVariant(door, map[*Property]Value{open: false}, DefaultOptions()); !errors.Is(err, ErrIncompleteAssignment) {
		t.Errorf("missing property: got %v, want ErrIncompleteAssignment", err)
	}

	extra := newTestProp(t, "extra", BoolDomain())
	if _, err := BuildVariant(door, map[*Property]Value{open: false, extra: true}, DefaultOptions()); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("undeclared property: got %v, want ErrUnknownProperty", err)
	}

	if _, err := BuildVariant(door, map[*Property]Value{open: false, age: 16}, DefaultOptions()); !errors.Is(err, ErrIllegalValue) {
		t.Errorf("out-of-domain value: got %v, want ErrIllegalValue", err)
	}
}

func TestWithIdentityFastPath(t *testing.T) {
	door, open, age := newDoorType(t)
	v, err := BuildVariant(door, map[*Property]Value{open: false, age: 3}, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}

	same, err := v.With(age, 3)
	if err != nil {
		t.Fatalf("With(age, 3): %v", err)
	}
	if same != v {
		t.Error("setting the current value must return the receiver itself")
	}
}

func TestWithCopyOnWrite(t *testing.T) {
	door, open, age := newDoorType(t)
	v, err := BuildVariant(door, map[*Property]Value{open: false, age: 3}, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}

	next, err := v.With(age, 4)
	if err != nil {
		t.Fatalf("With(age, 4): %v", err)
	}
	if next == v {
		t.Fatal("a changed value must produce a new variant")
	}
	if got, _ := next.Get(age); got != 4 {
		t.Errorf("next.Get(age) = %v; want 4", got)
	}
	if got, _ := next.Get(open); got != false {
		t.Errorf("next.Get(open) = %v; want false (untouched)", got)
	}
	if got, _ := v.Get(age); got != 3 {
		t.Errorf("original variant mutated: Get(age) = %v; want 3", got)
	}

	if _, err := v.With(age, 16); !errors.Is(err, ErrIllegalValue) {
		t.Errorf("With(age, 16) = %v; want ErrIllegalValue", err)
	}
	stranger := newTestProp(t, "with_stranger", BoolDomain())
	if _, err := v.With(stranger, true); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("With(undeclared) = %v; want ErrUnknownProperty", err)
	}
}

func TestWithCoversEveryDomainValue(t *testing.T) {
	door, open, age := newDoorType(t)
	v, err := BuildVariant(door, map[*Property]Value{open: true, age: 0}, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}
	for want := range age.Domain().Values() {
		next, err := v.With(age, want)
		if err != nil {
			t.Fatalf("With(age, %v): %v", want, err)
		}
		if got, _ := next.Get(age); got != want {
			t.Errorf("With(age, %v).Get(age) = %v", want, got)
		}
	}
}

func TestVariantStructuralEquality(t *testing.T) {
	door, open, age := newDoorType(t)
	assign := map[*Property]Value{open: true, age: 9}

	a, err := BuildVariant(door, assign, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}
	b, err := BuildVariant(door, assign, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}
	if a == b {
		t.Fatal("fixture broken: expected two independent instances")
	}
	if !a.Equal(b) {
		t.Error("independently built variants with equal content must be equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal variants must hash equally: %#x vs %#x", a.Hash(), b.Hash())
	}

	c, _ := a.With(age, 10)
	if a.Equal(c) {
		t.Error("variants differing in one value must not be equal")
	}
}

func TestEnumerateVariants(t *testing.T) {
	door, open, age := newDoorType(t)
	variants, err := door.EnumerateVariants(DefaultOptions())
	if err != nil {
		t.Fatalf("EnumerateVariants: %v", err)
	}
	want := open.Domain().Size() * age.Domain().Size()
	if len(variants) != want {
		t.Fatalf("expected %d variants, got %d", want, len(variants))
	}

	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		s := v.String()
		if _, dup := seen[s]; dup {
			t.Errorf("duplicate combination %s", s)
		}
		seen[s] = struct{}{}
	}

	// Last declared property varies fastest.
	if got, _ := variants[0].Get(age); got != 0 {
		t.Errorf("first variant age = %v; want 0", got)
	}
	if got, _ := variants[1].Get(age); got != 1 {
		t.Errorf("second variant age = %v; want 1", got)
	}
}

func TestTypeValidation(t *testing.T) {
	a := newTestProp(t, "twin", BoolDomain())
	b := newTestProp(t, "twin", BoolDomain())
	if _, err := NewType("broken", a, b); !errors.Is(err, ErrDuplicateProperty) {
		t.Errorf("duplicate names: got %v, want ErrDuplicateProperty", err)
	}
}

func TestVariantString(t *testing.T) {
	door, open, age := newDoorType(t)
	v, err := BuildVariant(door, map[*Property]Value{open: true, age: 7}, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildVariant: %v", err)
	}
	if got, want := v.String(), "door[open=true,age=7]"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}
