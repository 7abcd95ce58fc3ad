// Command stateinspect loads a YAML definitions file, enumerates and
// interns every variant of every declared type, and prints the resulting
// id table, either as an aligned text table or as YAML.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	yaml "github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/stateforge/variantstate/pkg/statedefs"
	"github.com/stateforge/variantstate/propstate"
)

func main() {
	var (
		defsPath  = flag.String("f", "statedefs.yaml", "definitions file to load")
		yamlOut   = flag.Bool("yaml", false, "emit the id table as YAML instead of text")
		logLevel  = flag.String("log", "warn", "log level: error, warn, info, debug")
		threshold = flag.Int("threshold", propstate.DefaultThreshold, "dense-table waste threshold")
	)
	flag.Parse()

	if err := run(*defsPath, *yamlOut, *logLevel, *threshold); err != nil {
		fmt.Fprintf(os.Stderr, "stateinspect: %v\n", err)
		os.Exit(1)
	}
}

// row is one interned variant in the output table.
type row struct {
	ID    int               `yaml:"id"`
	Type  string            `yaml:"type"`
	State map[string]string `yaml:"state"`
}

func run(defsPath string, yamlOut bool, logLevel string, threshold int) error {
	logger := propstate.NewLogger(propstate.ParseLogLevel(logLevel), os.Stderr)

	bundle, err := statedefs.LoadFile(defsPath)
	if err != nil {
		return err
	}
	propstate.FreezeIndexes()

	opts := propstate.Options{Threshold: threshold, Logger: logger}
	reg := propstate.NewRegistryWithLogger(logger)

	var rows []row
	for _, typ := range bundle.Types {
		variants, err := typ.EnumerateVariants(opts)
		if err != nil {
			return err
		}
		for _, v := range variants {
			id := reg.Register(v)
			state := make(map[string]string, len(typ.Properties()))
			for _, p := range typ.Properties() {
				val, err := v.Get(p)
				if err != nil {
					return err
				}
				state[p.Name()] = fmt.Sprint(val)
			}
			rows = append(rows, row{ID: id, Type: typ.Name(), State: state})
		}
	}
	logger.Infof("interned %d variants across %d types", reg.Len(), len(bundle.Types))

	if yamlOut {
		out, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	printTable(rows, bundle)
	return nil
}

func printTable(rows []row, bundle *statedefs.Bundle) {
	color := isatty.IsTerminal(os.Stdout.Fd())

	header := []string{"ID", "TYPE", "STATE"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		typ, _ := bundle.TypeByName(r.Type)
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.ID),
			r.Type,
			stateString(typ, r.State),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, line := range cells {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printLine := func(line []string, bold bool) {
		parts := make([]string, len(line))
		for i, cell := range line {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if bold && color {
			text = "\x1b[1m" + text + "\x1b[0m"
		}
		fmt.Println(text)
	}

	printLine(header, true)
	for _, line := range cells {
		printLine(line, false)
	}
}

// stateString renders the property assignment in declaration order so
// the table stays stable run to run.
func stateString(typ *propstate.Type, state map[string]string) string {
	if typ == nil {
		return ""
	}
	var b strings.Builder
	for i, p := range typ.Properties() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name())
		b.WriteByte('=')
		b.WriteString(state[p.Name()])
	}
	return b.String()
}
