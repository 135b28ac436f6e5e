package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"datashell/internal/logger"
	"datashell/pkg/shelltypes"
)

const (
	defaultFetchTimeout  = 30 * time.Second
	defaultMaxFetchBytes = 64 << 20
)

// contentTypeFormats maps response media types to format names for URLs
// whose path carries no extension.
var contentTypeFormats = map[string]string{
	"application/json":   "json",
	"text/json":          "json",
	"application/xml":    "xml",
	"text/xml":           "xml",
	"application/yaml":   "yaml",
	"application/x-yaml": "yaml",
	"text/yaml":          "yaml",
	"text/x-yaml":        "yaml",
	"application/toml":   "toml",
	"text/csv":           "csv",
}

// FetchService resolves identifiers to content. Local paths are read through
// an afero filesystem; http and https URLs are fetched with net/http.
type FetchService struct {
	initialized bool
	fs          afero.Fs
	client      *http.Client
	timeout     time.Duration
	maxBytes    int64
	log         *log.Logger
}

// NewFetchService creates a FetchService reading from the OS filesystem.
func NewFetchService() *FetchService {
	return NewFetchServiceWithFs(afero.NewOsFs())
}

// NewFetchServiceWithFs creates a FetchService reading from fs.
func NewFetchServiceWithFs(fs afero.Fs) *FetchService {
	return &FetchService{
		fs:       fs,
		timeout:  defaultFetchTimeout,
		maxBytes: defaultMaxFetchBytes,
		log:      logger.NewStyledLogger("Fetch"),
	}
}

// Name returns the service name "fetch" for registration.
func (f *FetchService) Name() string {
	return "fetch"
}

// Initialize applies configured limits, when the configuration service is available,
// and creates the HTTP client.
func (f *FetchService) Initialize() error {
	if configService, err := GetGlobalConfigurationService(); err == nil {
		if settings, err := configService.Settings(); err == nil {
			if settings.HTTPTimeout > 0 {
				f.timeout = settings.HTTPTimeout
			}
			if settings.MaxFetchBytes > 0 {
				f.maxBytes = settings.MaxFetchBytes
			}
		} else {
			f.log.Warn("Ignoring invalid fetch configuration", "error", err)
		}
	}

	f.log.SetLevel(logger.Logger.GetLevel())
	f.client = &http.Client{Timeout: f.timeout}
	f.initialized = true
	f.log.Debug("FetchService initialized", "timeout", f.timeout.String(), "max_bytes", f.maxBytes)
	return nil
}

// SetMaxBytes configures the largest content accepted.
func (f *FetchService) SetMaxBytes(maxBytes int64) {
	f.maxBytes = maxBytes
}

// Fetch reads identifier, resolving relative paths against cwd. Text content is
// returned as a String value and anything else as Binary. The extension is the
// lower-cased file extension, or for URLs without one, derived from the Content-Type.
func (f *FetchService) Fetch(ctx context.Context, cwd string, identifier string, span shelltypes.Span) (shelltypes.FetchedContent, error) {
	if !f.initialized {
		return shelltypes.FetchedContent{}, fmt.Errorf("fetch service not initialized")
	}

	if isURL(identifier) {
		return f.fetchURL(ctx, identifier, span)
	}
	return f.fetchFile(cwd, identifier, span)
}

func isURL(identifier string) bool {
	lower := strings.ToLower(identifier)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (f *FetchService) fetchFile(cwd string, identifier string, span shelltypes.Span) (shelltypes.FetchedContent, error) {
	location := expandHome(identifier)
	if !filepath.IsAbs(location) {
		location = filepath.Join(cwd, location)
	}

	f.log.Debug("Fetching file", "path", location)

	info, err := f.fs.Stat(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return shelltypes.FetchedContent{}, shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure,
				fmt.Sprintf("File not found: %s", identifier), "file not found", span).WithCause(err)
		}
		return shelltypes.FetchedContent{}, shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure,
			fmt.Sprintf("File could not be opened: %s", identifier), "could not read", span).WithCause(err)
	}
	if info.IsDir() {
		return shelltypes.FetchedContent{}, shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure,
			fmt.Sprintf("'%s' is a directory, not a file", identifier), "could not read", span)
	}
	if info.Size() > f.maxBytes {
		return shelltypes.FetchedContent{}, shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure,
			fmt.Sprintf("File is too large (%d bytes, limit %d)", info.Size(), f.maxBytes), "could not read", span)
	}

	data, err := afero.ReadFile(f.fs, location)
	if err != nil {
		return shelltypes.FetchedContent{}, shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure,
			fmt.Sprintf("File could not be read: %s", identifier), "could not read", span).WithCause(err)
	}

	return shelltypes.FetchedContent{
		Extension: strings.ToLower(strings.TrimPrefix(filepath.Ext(location), ".")),
		Content:   decodeContent(data),
		Span:      span,
	}, nil
}

func (f *FetchService) fetchURL(ctx context.Context, rawURL string, span shelltypes.Span) (shelltypes.FetchedContent, error) {
	fetchErr := func(message string, cause error) error {
		return shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure, message, "could not fetch", span).WithCause(cause)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("Invalid URL: %s", rawURL), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("Invalid URL: %s", rawURL), err)
	}

	f.log.Debug("Fetching URL", "url", rawURL, "timeout", f.timeout.String())

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("Failed to fetch URL", "error", err, "url", rawURL)
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("URL could not be fetched: %s", rawURL), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("URL returned %s", resp.Status), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("URL could not be read: %s", rawURL), err)
	}
	if int64(len(body)) > f.maxBytes {
		return shelltypes.FetchedContent{}, fetchErr(fmt.Sprintf("Response is larger than %d bytes", f.maxBytes), nil)
	}

	extension := strings.ToLower(strings.TrimPrefix(path.Ext(parsed.Path), "."))
	if extension == "" {
		extension = contentTypeExtension(resp.Header.Get("Content-Type"))
	}

	f.log.Debug("URL fetched", "url", rawURL, "status", resp.StatusCode, "bytes", len(body), "extension", extension)

	return shelltypes.FetchedContent{
		Extension: extension,
		Content:   decodeContent(body),
		Span:      span,
	}, nil
}

func contentTypeExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return contentTypeFormats[mediaType]
}

func expandHome(location string) string {
	if location != "~" && !strings.HasPrefix(location, "~/") {
		return location
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return location
	}
	return filepath.Join(home, strings.TrimPrefix(location, "~"))
}

// decodeContent returns text as a String value and everything else as Binary.
func decodeContent(data []byte) shelltypes.Value {
	if isText(data) {
		return shelltypes.NewString(string(data))
	}
	return shelltypes.NewBinary(data)
}

// isText rejects NUL bytes, invalid UTF-8 and content with more than 30% control characters.
func isText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}

	control := 0
	for _, b := range data {
		if b == 0 {
			return false
		}
		if b < 32 && b != '\n' && b != '\r' && b != '\t' {
			control++
		}
	}
	return len(data) == 0 || float64(control)/float64(len(data)) <= 0.3
}

// GetGlobalFetchService returns the fetch service from the global registry.
func GetGlobalFetchService() (*FetchService, error) {
	return getGlobalService[*FetchService]("fetch")
}
