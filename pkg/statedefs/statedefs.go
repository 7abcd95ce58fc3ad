// Package statedefs loads enum, property, and type declarations from a
// YAML document and registers them with the propstate core, giving the
// surrounding system a declarative way to describe which properties each
// object type carries.
package statedefs

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stateforge/variantstate/propstate"
)

// File is the YAML document shape.
type File struct {
	Enums []EnumDef `yaml:"enums"`
	Types []TypeDef `yaml:"types"`
}

// EnumDef declares a named enumeration.
type EnumDef struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// TypeDef declares an owning type and its properties.
type TypeDef struct {
	Name       string        `yaml:"name"`
	Properties []PropertyDef `yaml:"properties"`
}

// PropertyDef declares one property. Kind selects the domain shape:
// "bool", "range" (Min/Max inclusive), or "enum" (Enum names the
// enumeration, Members optionally restricts it to a subset).
type PropertyDef struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Min     int      `yaml:"min"`
	Max     int      `yaml:"max"`
	Enum    string   `yaml:"enum"`
	Members []string `yaml:"members"`
}

// Bundle is the registered result of loading a definitions document.
type Bundle struct {
	Enums map[string]*propstate.Enum
	Types []*propstate.Type
}

// TypeByName returns the loaded type with the given name.
func (b *Bundle) TypeByName(name string) (*propstate.Type, bool) {
	for _, t := range b.Types {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Load decodes a definitions document and registers its contents: enums
// first, then one type per declaration with freshly defined properties,
// initialized in declaration order. Load runs during the single-threaded
// setup phase; freezing the index space afterwards is the caller's call.
func Load(r io.Reader) (*Bundle, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("statedefs: decode: %w", err)
	}
	return build(&doc)
}

// LoadFile is Load over a file path.
func LoadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("statedefs: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func build(doc *File) (*Bundle, error) {
	bundle := &Bundle{Enums: make(map[string]*propstate.Enum, len(doc.Enums))}

	for _, ed := range doc.Enums {
		if _, dup := bundle.Enums[ed.Name]; dup {
			return nil, fmt.Errorf("statedefs: duplicate enum %q", ed.Name)
		}
		e, err := propstate.NewEnum(ed.Name, ed.Members...)
		if err != nil {
			return nil, fmt.Errorf("statedefs: enum %q: %w", ed.Name, err)
		}
		bundle.Enums[ed.Name] = e
	}

	for _, td := range doc.Types {
		props := make([]*propstate.Property, 0, len(td.Properties))
		for _, pd := range td.Properties {
			domain, err := bundle.domainFor(td.Name, pd)
			if err != nil {
				return nil, err
			}
			props = append(props, propstate.DefineProperty(pd.Name, domain))
		}
		typ, err := propstate.NewType(td.Name, props...)
		if err != nil {
			return nil, fmt.Errorf("statedefs: type %q: %w", td.Name, err)
		}
		typ.InitProperties()
		bundle.Types = append(bundle.Types, typ)
	}
	return bundle, nil
}

func (b *Bundle) domainFor(typeName string, pd PropertyDef) (propstate.Domain, error) {
	switch pd.Kind {
	case "bool":
		return propstate.BoolDomain(), nil
	case "range":
		d, err := propstate.IntRange(pd.Min, pd.Max)
		if err != nil {
			return nil, fmt.Errorf("statedefs: type %q property %q: %w", typeName, pd.Name, err)
		}
		return d, nil
	case "enum":
		e, ok := b.Enums[pd.Enum]
		if !ok {
			return nil, fmt.Errorf("statedefs: type %q property %q references unknown enum %q", typeName, pd.Name, pd.Enum)
		}
		members := make([]propstate.EnumValue, 0, len(pd.Members))
		for _, name := range pd.Members {
			m, ok := e.Member(name)
			if !ok {
				return nil, fmt.Errorf("statedefs: type %q property %q: enum %q has no member %q", typeName, pd.Name, pd.Enum, name)
			}
			members = append(members, m)
		}
		d, err := propstate.EnumSubset(e, members...)
		if err != nil {
			return nil, fmt.Errorf("statedefs: type %q property %q: %w", typeName, pd.Name, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("statedefs: type %q property %q has unknown kind %q", typeName, pd.Name, pd.Kind)
	}
}
