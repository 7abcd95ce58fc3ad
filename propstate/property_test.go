package propstate

import "testing"

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

func TestIndexBeforeInitPanics(t *testing.T) {
	p := DefineProperty("unready", BoolDomain())
	mustPanic(t, "Index before Init", func() { p.Index() })
}

func TestInitAssignsStableIndex(t *testing.T) {
	a := DefineProperty("a", BoolDomain())
	b := DefineProperty("b", BoolDomain())
	a.Init()
	b.Init()

	first := a.Index()
	if a.Index() != first {
		t.Errorf("index changed between reads: %d then %d", first, a.Index())
	}
	if b.Index() != first+1 {
		t.Errorf("expected monotonic indices, got %d then %d", first, b.Index())
	}
	if !a.Initialized() {
		t.Error("Initialized should be true after Init")
	}
}

func TestDoubleInitPanics(t *testing.T) {
	p := DefineProperty("once", BoolDomain())
	p.Init()
	mustPanic(t, "second Init", func() { p.Init() })
}

func TestFreezeBoundary(t *testing.T) {
	FreezeIndexes()
	defer func() { globalIndexes.frozen = false }()

	p := DefineProperty("late", BoolDomain())
	mustPanic(t, "Init after FreezeIndexes", func() { p.Init() })
	if p.Initialized() {
		t.Error("failed Init must leave the property uninitialized")
	}
}

func TestCompareProperties(t *testing.T) {
	a := DefineProperty("first", BoolDomain())
	b := DefineProperty("second", BoolDomain())
	a.Init()
	b.Init()

	if CompareProperties(a, b) >= 0 {
		t.Errorf("expected a < b, got %d", CompareProperties(a, b))
	}
	if CompareProperties(b, a) <= 0 {
		t.Errorf("expected b > a, got %d", CompareProperties(b, a))
	}
	if CompareProperties(a, a) != 0 {
		t.Errorf("expected a == a, got %d", CompareProperties(a, a))
	}
}
