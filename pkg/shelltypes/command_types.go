// Package shelltypes defines command system types for datashell.
// This file contains the bound arguments handed to a command, the declared
// command signature, and the structured help information.
package shelltypes

// SyntaxShape describes what kind of positional argument a command expects.
type SyntaxShape string

const (
	// ShapeAny accepts any value
	ShapeAny SyntaxShape = "any"
	// ShapeString expects text
	ShapeString SyntaxShape = "string"
	// ShapeBlock expects a path-like word
	ShapeBlock SyntaxShape = "block"
)

// PositionalType declares one positional parameter of a command.
type PositionalType struct {
	Name      string
	Shape     SyntaxShape
	Mandatory bool
}

// MandatoryBlock declares a required path-like positional parameter.
func MandatoryBlock(name string) PositionalType {
	return PositionalType{Name: name, Shape: ShapeBlock, Mandatory: true}
}

// OptionalPositional declares an optional positional parameter.
func OptionalPositional(name string, shape SyntaxShape) PositionalType {
	return PositionalType{Name: name, Shape: shape}
}

// NamedType declares a flag a command understands.
type NamedType struct {
	Name        string
	Switch      bool // presence-only flag, no value
	Description string
}

// CommandConfig is the signature a command registers with.
type CommandConfig struct {
	Name           string
	Positional     []PositionalType
	RestPositional bool
	IsFilter       bool
	IsSink         bool
	Named          []NamedType
	// ValidatesArgs marks commands that report missing positionals themselves.
	ValidatesArgs bool
}

// MandatoryCount returns the number of leading mandatory positionals.
func (c CommandConfig) MandatoryCount() int {
	count := 0
	for _, p := range c.Positional {
		if p.Mandatory {
			count++
		}
	}
	return count
}

// NamedArg is one flag as it appeared on the command line.
type NamedArg struct {
	Name  string
	Value Spanned
}

// NamedArgs keeps flags in the order they were written.
type NamedArgs struct {
	entries []NamedArg
}

// NewNamedArgs builds NamedArgs from entries in source order.
func NewNamedArgs(entries ...NamedArg) NamedArgs {
	return NamedArgs{entries: append([]NamedArg(nil), entries...)}
}

// Add appends a flag. A repeated name replaces the earlier value in place.
func (n *NamedArgs) Add(name string, value Spanned) {
	for i := range n.entries {
		if n.entries[i].Name == name {
			n.entries[i].Value = value
			return
		}
	}
	n.entries = append(n.entries, NamedArg{Name: name, Value: value})
}

// Get returns the flag stored under name.
func (n NamedArgs) Get(name string) (Spanned, bool) {
	for _, entry := range n.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return Spanned{}, false
}

// Has reports whether the flag was supplied, regardless of its value.
func (n NamedArgs) Has(name string) bool {
	_, ok := n.Get(name)
	return ok
}

// Len returns the number of flags supplied.
func (n NamedArgs) Len() int {
	return len(n.entries)
}

// Entries returns the flags in source order.
func (n NamedArgs) Entries() []NamedArg {
	return append([]NamedArg(nil), n.entries...)
}

// CommandArgs contains the bound arguments for one command invocation.
// It is built by the executor and must be treated as read-only by commands.
type CommandArgs struct {
	NameSpan   Span
	Positional []Spanned
	Named      NamedArgs
	Env        Environment
}

// Len returns the number of positional arguments.
func (a *CommandArgs) Len() int {
	return len(a.Positional)
}

// Nth returns the i-th positional argument.
func (a *CommandArgs) Nth(i int) (Spanned, bool) {
	if i < 0 || i >= len(a.Positional) {
		return Spanned{}, false
	}
	return a.Positional[i], true
}

// Has reports whether a flag was supplied.
func (a *CommandArgs) Has(name string) bool {
	return a.Named.Has(name)
}

// HelpInfo represents structured help information for a command.
// It provides rich help data that can be rendered in both plain text and styled formats.
type HelpInfo struct {
	Command     string        `json:"command"`            // Command name
	Description string        `json:"description"`        // Brief description of what the command does
	Usage       string        `json:"usage"`              // Usage syntax
	Options     []HelpOption  `json:"options,omitempty"`  // Command flags
	Examples    []HelpExample `json:"examples,omitempty"` // Usage examples
	Notes       []string      `json:"notes,omitempty"`    // Additional notes or warnings
}

// HelpOption represents a command flag with detailed information.
type HelpOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// HelpExample represents a usage example with explanation.
type HelpExample struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}
