package services

import (
	"context"
	"fmt"
	"strings"

	"datashell/internal/formats"
	"datashell/internal/logger"
	"datashell/pkg/shelltypes"
)

// FormatService parses text into structured values by format name.
type FormatService struct {
	initialized bool
}

// NewFormatService creates a new FormatService instance.
func NewFormatService() *FormatService {
	return &FormatService{}
}

// Name returns the service name "format" for registration.
func (f *FormatService) Name() string {
	return "format"
}

// Initialize marks the service ready.
func (f *FormatService) Initialize() error {
	f.initialized = true
	return nil
}

// SupportedFormats lists the format names Parse understands.
func (f *FormatService) SupportedFormats() []string {
	return formats.Names()
}

// Parse converts content according to format. FormatNone and formats without a
// parser leave the text unparsed as a String value. Parse failures are reported
// at contentSpan.
func (f *FormatService) Parse(_ context.Context, format shelltypes.Format, content string, contentSpan shelltypes.Span, nameSpan shelltypes.Span) (shelltypes.Value, error) {
	if !f.initialized {
		return shelltypes.Value{}, fmt.Errorf("format service not initialized")
	}

	parse, ok := formats.Lookup(format)
	if !ok {
		logger.Debug("No parser for format, keeping text", "format", string(format), "bytes", len(content))
		return shelltypes.NewString(content), nil
	}

	value, err := parse(content)
	if err != nil {
		name := formats.DisplayName(format)
		logger.Debug("Parse failed", "format", name, "error", err, "span", nameSpan.String())
		return shelltypes.Value{}, shelltypes.NewLabeledError(shelltypes.ErrorParseFailure,
			fmt.Sprintf("Could not parse as %s", name),
			fmt.Sprintf("could not parse as %s", name),
			contentSpan).WithCause(err)
	}

	logger.Debug("Parsed content", "format", strings.ToLower(formats.DisplayName(format)), "kind", value.TypeName())
	return value, nil
}

// GetGlobalFormatService returns the format service from the global registry.
func GetGlobalFormatService() (*FormatService, error) {
	return getGlobalService[*FormatService]("format")
}
