package output

import "github.com/charmbracelet/lipgloss"

// LipglossStyles is the terminal StyleProvider.
type LipglossStyles struct {
	styles map[SemanticType]lipgloss.Style
}

// NewLipglossStyles creates the default terminal styles.
func NewLipglossStyles() *LipglossStyles {
	return &LipglossStyles{
		styles: map[SemanticType]lipgloss.Style{
			SemanticPlain:   lipgloss.NewStyle(),
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

// GetStyle returns the style for semantic, or an unstyled one.
func (s *LipglossStyles) GetStyle(semantic SemanticType) TextStyle {
	if style, ok := s.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable reports whether styles were configured.
func (s *LipglossStyles) IsAvailable() bool {
	return s != nil && len(s.styles) > 0
}
