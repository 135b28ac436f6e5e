// Package shelltypes defines the shared types for datashell.
// This file contains the content format names and the hint derived from command flags.
package shelltypes

import "strings"

// Format names a structured content format. FormatNone means "do not parse".
type Format string

const (
	FormatNone  Format = ""
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatINI   Format = "ini"
	FormatYAML  Format = "yaml"
	FormatYML   Format = "yml"
	FormatTOML  Format = "toml"
	FormatCSV   Format = "csv"
	FormatHCL   Format = "hcl"
	FormatTFVar Format = "tfvars"
	FormatEnv   Format = "env"
)

// FormatFromExtension normalises a file extension ("JSON", ".json") into a Format.
func FormatFromExtension(ext string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// IsNone reports whether the format requests unparsed passthrough.
func (f Format) IsNone() bool {
	return f == FormatNone
}

// FormatHint is the format a caller asked for explicitly, or FormatHintUnset
// when the fetched extension should decide.
type FormatHint int

const (
	// FormatHintUnset defers to the extension reported by the fetcher
	FormatHintUnset FormatHint = iota
	// FormatHintNone forces unparsed passthrough
	FormatHintNone
	FormatHintJSON
	FormatHintXML
	FormatHintINI
	FormatHintYAML
	FormatHintTOML
)

var hintFormats = map[FormatHint]Format{
	FormatHintNone: FormatNone,
	FormatHintJSON: FormatJSON,
	FormatHintXML:  FormatXML,
	FormatHintINI:  FormatINI,
	FormatHintYAML: FormatYAML,
	FormatHintTOML: FormatTOML,
}

// IsSet reports whether the hint overrides the fetched extension.
func (h FormatHint) IsSet() bool {
	return h != FormatHintUnset
}

// Format returns the format the hint stands for. The second result is false for FormatHintUnset.
func (h FormatHint) Format() (Format, bool) {
	f, ok := hintFormats[h]
	return f, ok
}

// Resolve returns the hinted format, or the fetched extension when the hint is unset.
func (h FormatHint) Resolve(extension string) Format {
	if f, ok := h.Format(); ok {
		return f
	}
	return FormatFromExtension(extension)
}

// String returns the hint name.
func (h FormatHint) String() string {
	switch h {
	case FormatHintUnset:
		return "unset"
	case FormatHintNone:
		return "raw"
	}
	return string(hintFormats[h])
}
