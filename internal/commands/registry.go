// Package commands provides command registration and lookup for datashell.
// Builtin commands register themselves with the global registry from init().
package commands

import (
	"fmt"
	"sort"
	"sync"

	"datashell/pkg/shelltypes"
)

// Registry manages command registration and lookup for datashell commands.
// It provides thread-safe registration and retrieval of commands by name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]shelltypes.Command
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]shelltypes.Command),
	}
}

// Register adds a command to the registry. Returns an error if the command
// name is empty, does not match its config, or is already registered.
func (r *Registry) Register(cmd shelltypes.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if configName := cmd.Config().Name; configName != name {
		return fmt.Errorf("command %s declares config name %q", name, configName)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.commands[name] = cmd
	return nil
}

// Unregister removes a command from the registry by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (shelltypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAll returns all registered commands sorted by name.
func (r *Registry) GetAll() []shelltypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]shelltypes.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// GlobalRegistry is the global command registry instance used throughout datashell.
// Commands register themselves with this instance during initialization.
var GlobalRegistry = NewRegistry()

var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global command registry.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry replaces the global command registry. Used by tests.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}
