// Package formats converts text in the structured formats datashell understands
// into shelltypes values. Each format has one ParseFunc; the format service
// looks them up by the format name resolved from flags or file extensions.
package formats

import (
	"sort"
	"strings"

	"datashell/pkg/shelltypes"
)

// ParseFunc parses the complete text of a document.
type ParseFunc func(content string) (shelltypes.Value, error)

var parsers = map[shelltypes.Format]ParseFunc{
	shelltypes.FormatJSON:  ParseJSON,
	shelltypes.FormatYAML:  ParseYAML,
	shelltypes.FormatYML:   ParseYAML,
	shelltypes.FormatTOML:  ParseTOML,
	shelltypes.FormatINI:   ParseINI,
	shelltypes.FormatXML:   ParseXML,
	shelltypes.FormatCSV:   ParseCSV,
	shelltypes.FormatHCL:   ParseHCL,
	shelltypes.FormatTFVar: ParseHCL,
	shelltypes.FormatEnv:   ParseEnv,
}

// Lookup returns the parser registered for a format.
func Lookup(format shelltypes.Format) (ParseFunc, bool) {
	parse, ok := parsers[format]
	return parse, ok
}

// Names returns the supported format names, sorted.
func Names() []string {
	names := make([]string, 0, len(parsers))
	for format := range parsers {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return names
}

// DisplayName returns the name used in messages, e.g. "YAML" for both yaml and yml.
func DisplayName(format shelltypes.Format) string {
	switch format {
	case shelltypes.FormatYML:
		return "YAML"
	case shelltypes.FormatTFVar:
		return "HCL"
	case shelltypes.FormatNone:
		return "TEXT"
	}
	return strings.ToUpper(string(format))
}

// sortedKeys returns map keys in lexical order; used by formats whose
// decoders do not preserve document order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
