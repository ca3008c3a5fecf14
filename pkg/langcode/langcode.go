package langcode

import (
	_ "embed"
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Default is the language code the delivery service requires content for.
const Default = "en"

//go:embed langcodes.yaml
var rawTable []byte

// table maps language codes to English display names. Loaded once at init;
// the embedded file is part of the build, so a parse failure is a programmer
// error and panics rather than returning a runtime error.
var table map[string]string

func init() {
	if err := yaml.Unmarshal(rawTable, &table); err != nil {
		panic(fmt.Errorf("langcode: failed to parse embedded table: %w", err))
	}
	if len(table) == 0 {
		panic("langcode: embedded table is empty")
	}
}

// Name returns the English name of the language for code, and whether the
// code is in the delivery service's table.
func Name(code string) (string, bool) {
	name, ok := table[code]
	return name, ok
}

// Valid reports whether code is usable as a content language key. Codes in
// the service table are always valid; anything else must at least be a
// well-formed BCP 47 tag, which covers regional variants the table does not
// enumerate.
func Valid(code string) bool {
	if _, ok := table[code]; ok {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}

// Codes returns all table codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
