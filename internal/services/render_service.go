package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	shellcontext "datashell/internal/context"
	"datashell/pkg/shelltypes"
)

// RenderService turns structured values into terminal text.
type RenderService struct {
	initialized bool
	plain       bool
	keyStyle    lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// NewRenderService creates a new RenderService instance.
func NewRenderService() *RenderService {
	return &RenderService{}
}

// Name returns the service name "render" for registration.
func (r *RenderService) Name() string {
	return "render"
}

// Initialize selects styled or plain output from the theme setting and test mode.
func (r *RenderService) Initialize() error {
	theme := "default"
	if configService, err := GetGlobalConfigurationService(); err == nil {
		if value, err := configService.GetConfigValue("DSH_THEME"); err == nil && value != "" {
			theme = value
		}
	}
	r.SetPlain(theme == "plain" || shellcontext.GetGlobalContext().IsTestMode())
	r.initialized = true
	return nil
}

// SetPlain switches between styled and unstyled rendering.
func (r *RenderService) SetPlain(plain bool) {
	r.plain = plain
	if plain {
		r.keyStyle = lipgloss.NewStyle()
		r.headerStyle = lipgloss.NewStyle().Padding(0, 1)
		r.cellStyle = lipgloss.NewStyle().Padding(0, 1)
		return
	}
	r.keyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	r.headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	r.cellStyle = lipgloss.NewStyle().Padding(0, 1)
}

// IsPlain reports whether styling is disabled.
func (r *RenderService) IsPlain() bool {
	return r.plain
}

// Render formats a value: scalars as text, rows as key/value lines, lists of
// rows as a table and other lists one item per line.
func (r *RenderService) Render(value shelltypes.Value) (string, error) {
	if !r.initialized {
		return "", fmt.Errorf("render service not initialized")
	}

	switch value.Kind() {
	case shelltypes.KindRow:
		row, _ := value.AsRow()
		return r.renderRow(row), nil
	case shelltypes.KindList:
		items, _ := value.AsList()
		if len(items) > 0 && allRows(items) {
			return r.renderTable(items), nil
		}
		return r.renderList(items), nil
	}
	return value.Display(), nil
}

func (r *RenderService) renderRow(row *shelltypes.Row) string {
	keys := row.Keys()
	width := 0
	for _, key := range keys {
		if len(key) > width {
			width = len(key)
		}
	}

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value, _ := row.Get(key)
		padded := key + strings.Repeat(" ", width-len(key))
		lines = append(lines, r.keyStyle.Render(padded)+"  "+value.Display())
	}
	return strings.Join(lines, "\n")
}

func (r *RenderService) renderList(items []shelltypes.Value) string {
	if len(items) == 0 {
		return "[empty list]"
	}
	width := len(strconv.Itoa(len(items) - 1))
	lines := make([]string, 0, len(items))
	for i, item := range items {
		index := fmt.Sprintf("%*d", width, i)
		lines = append(lines, r.keyStyle.Render(index)+"  "+item.Display())
	}
	return strings.Join(lines, "\n")
}

func (r *RenderService) renderTable(items []shelltypes.Value) string {
	var headers []string
	seen := make(map[string]bool)
	for _, item := range items {
		row, _ := item.AsRow()
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row, _ := item.AsRow()
		cells := make([]string, len(headers))
		for i, header := range headers {
			if value, ok := row.Get(header); ok {
				cells[i] = value.Display()
			}
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.headerStyle
			}
			return r.cellStyle
		})
	return t.String()
}

func allRows(items []shelltypes.Value) bool {
	for _, item := range items {
		if item.Kind() != shelltypes.KindRow {
			return false
		}
	}
	return true
}

// GetGlobalRenderService returns the render service from the global registry.
func GetGlobalRenderService() (*RenderService, error) {
	return getGlobalService[*RenderService]("render")
}
