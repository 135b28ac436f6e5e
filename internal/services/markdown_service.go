package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	shellcontext "datashell/internal/context"
	"datashell/internal/logger"
)

// MarkdownService renders help and other documentation markdown for the terminal with glamour.
// When the theme is "plain" or test mode is on, markdown is returned unrendered.
type MarkdownService struct {
	initialized bool
	renderer    *glamour.TermRenderer
}

// NewMarkdownService creates a new MarkdownService instance.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize creates the glamour renderer unless output is plain.
func (m *MarkdownService) Initialize() error {
	plain := shellcontext.GetGlobalContext().IsTestMode()
	if configService, err := GetGlobalConfigurationService(); err == nil {
		if theme, err := configService.GetConfigValue("DSH_THEME"); err == nil && theme == "plain" {
			plain = true
		}
	}

	m.renderer = nil
	if !plain {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		m.renderer = renderer
	}

	m.initialized = true
	logger.Debug("MarkdownService initialized", "plain", plain)
	return nil
}

// IsPlain reports whether Render returns markdown unchanged.
func (m *MarkdownService) IsPlain() bool {
	return m.renderer == nil
}

// Render renders markdown content for the terminal.
func (m *MarkdownService) Render(markdown string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}
	if m.renderer == nil {
		return strings.TrimRight(markdown, "\n"), nil
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimRight(rendered, "\n"), nil
}

// GetGlobalMarkdownService returns the markdown service from the global registry.
func GetGlobalMarkdownService() (*MarkdownService, error) {
	return getGlobalService[*MarkdownService]("markdown")
}
