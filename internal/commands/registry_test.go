package commands

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashell/internal/testutils"
	"datashell/pkg/shelltypes"
)

type misnamedCommand struct {
	*testutils.MockCommand
}

func (m misnamedCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{Name: "other"}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	cmd := testutils.NewMockCommand("enter")

	require.NoError(t, registry.Register(cmd))
	assert.True(t, registry.IsValidCommand("enter"))

	got, ok := registry.Get("enter")
	require.True(t, ok)
	assert.Same(t, cmd, got)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(testutils.NewMockCommand(""))
	assert.EqualError(t, err, "command name cannot be empty")

	require.NoError(t, registry.Register(testutils.NewMockCommand("dup")))
	err = registry.Register(testutils.NewMockCommand("dup"))
	assert.EqualError(t, err, "command dup already registered")

	err = registry.Register(misnamedCommand{testutils.NewMockCommand("named")})
	assert.Error(t, err)
	assert.False(t, registry.IsValidCommand("named"))
}

func TestRegistry_UnregisterAndGetAll(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"shells", "enter", "exit"} {
		require.NoError(t, registry.Register(testutils.NewMockCommand(name)))
	}

	var names []string
	for _, cmd := range registry.GetAll() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"enter", "exit", "shells"}, names)

	registry.Unregister("exit")
	registry.Unregister("never-registered")
	assert.Len(t, registry.GetAll(), 2)
	assert.False(t, registry.IsValidCommand("exit"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("cmd%d", i)
			assert.NoError(t, registry.Register(testutils.NewMockCommand(name)))
			_, ok := registry.Get(name)
			assert.True(t, ok)
			_ = registry.GetAll()
		}(i)
	}
	wg.Wait()

	assert.Len(t, registry.GetAll(), 20)
}

func TestGlobalRegistry_Swap(t *testing.T) {
	original := GetGlobalRegistry()
	defer SetGlobalRegistry(original)

	fresh := NewRegistry()
	SetGlobalRegistry(fresh)
	assert.Same(t, fresh, GetGlobalRegistry())
}
