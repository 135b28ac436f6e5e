package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashell/internal/logger"
	"datashell/pkg/shelltypes"
)

func newTestFetchService(t *testing.T) (*FetchService, afero.Fs) {
	t.Helper()
	setupServiceTest(t, "/")

	fs := afero.NewMemMapFs()
	service := NewFetchServiceWithFs(fs)
	require.NoError(t, service.Initialize())
	return service, fs
}

func TestFetchService_Uninitialized(t *testing.T) {
	service := NewFetchServiceWithFs(afero.NewMemMapFs())
	assert.Equal(t, "fetch", service.Name())

	_, err := service.Fetch(context.Background(), "/", "a.json", shelltypes.NewSpan(0, 6))
	assert.Error(t, err)
}

func TestFetchService_RelativeFile(t *testing.T) {
	service, fs := newTestFetchService(t)
	require.NoError(t, afero.WriteFile(fs, "/work/data/Config.JSON", []byte(`{"a": 1}`), 0o644))

	span := shelltypes.NewSpan(6, 22)
	content, err := service.Fetch(context.Background(), "/work", "data/Config.JSON", span)
	require.NoError(t, err)

	assert.Equal(t, "json", content.Extension)
	assert.Equal(t, span, content.Span)
	text, ok := content.Content.AsString()
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, text)
}

func TestFetchService_LogsWithComponentPrefix(t *testing.T) {
	setupServiceTest(t, "/")
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	previous := logger.Logger.GetLevel()
	logger.Logger.SetLevel(log.DebugLevel)
	defer func() {
		logger.SetOutput(os.Stderr)
		logger.Logger.SetLevel(previous)
	}()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.json", []byte(`{}`), 0o644))
	service := NewFetchServiceWithFs(fs)
	require.NoError(t, service.Initialize())

	_, err := service.Fetch(context.Background(), "/", "a.json", shelltypes.NewSpan(0, 6))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Fetch")
	assert.Contains(t, buf.String(), "Fetching file")
}

func TestFetchService_AbsoluteFileIgnoresCwd(t *testing.T) {
	service, fs := newTestFetchService(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/notes", []byte("hello"), 0o644))

	content, err := service.Fetch(context.Background(), "/elsewhere", "/etc/notes", shelltypes.NewSpan(0, 10))
	require.NoError(t, err)
	assert.Equal(t, "", content.Extension)
	assert.Equal(t, shelltypes.NewString("hello"), content.Content)
}

func TestFetchService_BinaryFile(t *testing.T) {
	service, fs := newTestFetchService(t)
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	require.NoError(t, afero.WriteFile(fs, "/img.png", data, 0o644))

	content, err := service.Fetch(context.Background(), "/", "img.png", shelltypes.NewSpan(0, 7))
	require.NoError(t, err)
	assert.Equal(t, "png", content.Extension)

	bytes, ok := content.Content.AsBinary()
	require.True(t, ok)
	assert.Equal(t, data, bytes)
}

func TestFetchService_FileErrors(t *testing.T) {
	service, fs := newTestFetchService(t)
	require.NoError(t, fs.MkdirAll("/dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/big.txt", []byte("0123456789"), 0o644))
	service.SetMaxBytes(4)

	span := shelltypes.NewSpan(6, 14)
	tests := []struct {
		name       string
		identifier string
		label      string
		message    string
	}{
		{name: "missing", identifier: "missing.json", label: "file not found", message: "File not found: missing.json"},
		{name: "directory", identifier: "dir", label: "could not read", message: "'dir' is a directory, not a file"},
		{name: "too large", identifier: "big.txt", label: "could not read", message: "File is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Fetch(context.Background(), "/", tt.identifier, span)
			require.Error(t, err)

			shellErr, ok := shelltypes.AsShellError(err)
			require.True(t, ok)
			assert.Equal(t, shelltypes.ErrorFetchFailure, shellErr.Kind)
			assert.Equal(t, tt.label, shellErr.Label)
			assert.Equal(t, span, shellErr.Span)
			assert.Contains(t, shellErr.Message, tt.message)
		})
	}
}

func TestFetchService_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data.yaml":
			_, _ = w.Write([]byte("a: 1\n"))
		case "/api/items":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`[1, 2]`))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("just text"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	service, _ := newTestFetchService(t)
	span := shelltypes.NewSpan(6, 40)

	tests := []struct {
		path      string
		extension string
		content   string
	}{
		{path: "/data.yaml", extension: "yaml", content: "a: 1\n"},
		{path: "/api/items", extension: "json", content: "[1, 2]"},
		{path: "/plain", extension: "", content: "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			content, err := service.Fetch(context.Background(), "/", server.URL+tt.path, span)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, content.Extension)
			assert.Equal(t, shelltypes.NewString(tt.content), content.Content)
			assert.Equal(t, span, content.Span)
		})
	}

	_, err := service.Fetch(context.Background(), "/", server.URL+"/missing", span)
	require.Error(t, err)
	assert.True(t, shelltypes.IsErrorKind(err, shelltypes.ErrorFetchFailure))
	shellErr, _ := shelltypes.AsShellError(err)
	assert.Equal(t, "could not fetch", shellErr.Label)
	assert.Contains(t, shellErr.Message, "404")
}

func TestFetchService_URLTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	service, _ := newTestFetchService(t)
	service.SetMaxBytes(5)

	_, err := service.Fetch(context.Background(), "/", server.URL+"/big.txt", shelltypes.NewSpan(0, 1))
	require.Error(t, err)
	assert.True(t, shelltypes.IsErrorKind(err, shelltypes.ErrorFetchFailure))
}

func TestFetchService_URLCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	service, _ := newTestFetchService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := service.Fetch(ctx, "/", server.URL+"/slow.json", shelltypes.NewSpan(0, 1))
	require.Error(t, err)
	assert.True(t, shelltypes.IsErrorKind(err, shelltypes.ErrorFetchFailure))
}

func TestFetchService_UsesConfiguredLimits(t *testing.T) {
	ctx := setupServiceTest(t, "/")
	ctx.Configuration().SetTestEnvOverride("DSH_HTTP_TIMEOUT", "3s")
	ctx.Configuration().SetTestEnvOverride("DSH_MAX_FETCH_BYTES", "2")

	registry := GetGlobalRegistry()
	require.NoError(t, registry.RegisterService(NewConfigurationService()))
	fetch := NewFetchServiceWithFs(afero.NewMemMapFs())
	require.NoError(t, registry.RegisterService(fetch))
	require.NoError(t, registry.InitializeAll())

	assert.Equal(t, 3*time.Second, fetch.timeout)
	assert.Equal(t, int64(2), fetch.maxBytes)
}

func TestIsText(t *testing.T) {
	assert.True(t, isText([]byte("")))
	assert.True(t, isText([]byte("line one\nline two\ttabbed\r\n")))
	assert.True(t, isText([]byte("héllo wörld")))
	assert.False(t, isText([]byte{'a', 0x00, 'b'}))
	assert.False(t, isText([]byte{0xff, 0xfe, 0xfd}))
	assert.False(t, isText([]byte{0x01, 0x02, 0x03, 'a'}))
}

func TestContentTypeExtension(t *testing.T) {
	assert.Equal(t, "json", contentTypeExtension("application/json"))
	assert.Equal(t, "xml", contentTypeExtension("text/xml; charset=utf-8"))
	assert.Equal(t, "yaml", contentTypeExtension("application/x-yaml"))
	assert.Equal(t, "", contentTypeExtension("text/html"))
	assert.Equal(t, "", contentTypeExtension(""))
}
