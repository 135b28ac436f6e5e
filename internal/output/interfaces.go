// Package output provides console output for datashell: diagnostics, banners
// and notices, styled with lipgloss on a terminal and plain in test mode.
package output

// StyleProvider supplies a style per semantic type.
// The printer depends only on this interface.
type StyleProvider interface {
	// GetStyle returns the style for a semantic type such as "error" or "info".
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable reports whether styles can be applied.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style implements it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines the output mode of a printer.
type Mode int

const (
	// ModeAuto styles output when a provider is available
	ModeAuto Mode = iota
	// ModePlain never styles output
	ModePlain
)

// SemanticType defines the meaning of a piece of output.
type SemanticType string

const (
	// SemanticPlain represents text without semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents banners and notices.
	SemanticInfo SemanticType = "info"
	// SemanticWarning represents recoverable problems.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents command diagnostics.
	SemanticError SemanticType = "error"
)
