package statedefs

import (
	"strings"
	"testing"

	"github.com/stateforge/variantstate/propstate"
)

const sampleDoc = `
enums:
  - name: facing
    members: [north, south, east, west]
types:
  - name: door
    properties:
      - name: open
        kind: bool
      - name: facing
        kind: enum
        enum: facing
        members: [north, south]
  - name: lamp
    properties:
      - name: level
        kind: range
        min: 0
        max: 7
`

func TestLoadRegistersTypes(t *testing.T) {
	bundle, err := Load(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(bundle.Types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(bundle.Types))
	}
	facing, ok := bundle.Enums["facing"]
	if !ok || facing.Len() != 4 {
		t.Fatalf("enum facing not loaded as declared")
	}

	door, ok := bundle.TypeByName("door")
	if !ok {
		t.Fatal("type door not loaded")
	}
	props := door.Properties()
	if len(props) != 2 || props[0].Name() != "open" || props[1].Name() != "facing" {
		t.Fatalf("unexpected door properties: %v", props)
	}
	for _, p := range props {
		if !p.Initialized() {
			t.Errorf("property %q must be initialized by Load", p.Name())
		}
	}
	if props[1].Domain().Size() != 2 {
		t.Errorf("facing subset should hold 2 members, got %d", props[1].Domain().Size())
	}
}

func TestLoadedTypesEnumerateAndIntern(t *testing.T) {
	bundle, err := Load(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	door, _ := bundle.TypeByName("door")

	variants, err := door.EnumerateVariants(propstate.DefaultOptions())
	if err != nil {
		t.Fatalf("EnumerateVariants: %v", err)
	}
	if len(variants) != 4 { // 2 bool × 2 facing members
		t.Fatalf("expected 4 variants, got %d", len(variants))
	}

	reg := propstate.NewRegistry()
	for _, v := range variants {
		reg.Register(v)
	}
	if reg.Len() != 4 {
		t.Errorf("registry holds %d variants; want 4", reg.Len())
	}
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown kind": `
types:
  - name: t
    properties:
      - {name: p, kind: float}
`,
		"unknown enum": `
types:
  - name: t
    properties:
      - {name: p, kind: enum, enum: missing}
`,
		"unknown member": `
enums:
  - {name: e, members: [a, b]}
types:
  - name: t
    properties:
      - {name: p, kind: enum, enum: e, members: [c]}
`,
		"bad range": `
types:
  - name: t
    properties:
      - {name: p, kind: range, min: 5, max: 5}
`,
		"duplicate enum": `
enums:
  - {name: e, members: [a]}
  - {name: e, members: [b]}
`,
		"unknown field": `
typos:
  - name: t
`,
	} {
		if _, err := Load(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
