package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shellcontext "datashell/internal/context"
)

type stubService struct {
	name    string
	initErr error
	calls   *[]string
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Initialize() error {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	return s.initErr
}

// setupServiceTest installs a fresh registry and a test-mode global context rooted at root.
func setupServiceTest(t *testing.T, root string) *shellcontext.ShellContext {
	t.Helper()

	ctx := shellcontext.NewWithRoot(root)
	ctx.SetTestMode(true)
	ctx.Configuration().SetTestConfigDir(t.TempDir())
	ctx.Configuration().SetTestWorkingDir(t.TempDir())

	oldRegistry := GetGlobalRegistry()
	SetGlobalRegistry(NewRegistry())
	shellcontext.SetGlobalContext(ctx)

	t.Cleanup(func() {
		SetGlobalRegistry(oldRegistry)
		shellcontext.ResetGlobalContext()
	})
	return ctx
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	service := &stubService{name: "stub"}

	require.NoError(t, registry.RegisterService(service))
	assert.True(t, registry.HasService("stub"))

	got, err := registry.GetService("stub")
	require.NoError(t, err)
	assert.Same(t, service, got)

	err = registry.RegisterService(&stubService{name: "stub"})
	assert.Error(t, err)

	_, err = registry.GetService("missing")
	assert.Error(t, err)
}

func TestRegistry_InitializeAllInOrder(t *testing.T) {
	var calls []string
	registry := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, registry.RegisterService(&stubService{name: name, calls: &calls}))
	}

	require.NoError(t, registry.InitializeAll())
	assert.Equal(t, []string{"c", "a", "b"}, calls)
	assert.Equal(t, []string{"a", "b", "c"}, registry.GetAllServices())
}

func TestRegistry_InitializeAllStopsOnError(t *testing.T) {
	registry := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, registry.RegisterService(&stubService{name: "broken", initErr: boom}))

	err := registry.InitializeAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func TestGetGlobalService_WrongType(t *testing.T) {
	setupServiceTest(t, "/")
	require.NoError(t, GetGlobalRegistry().RegisterService(&stubService{name: "fetch"}))

	_, err := GetGlobalFetchService()
	assert.Error(t, err)

	_, err = GetGlobalFormatService()
	assert.Error(t, err)
}
