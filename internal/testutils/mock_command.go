// Package testutils provides fakes and helpers shared by datashell tests.
package testutils

import (
	"context"
	"fmt"

	"datashell/pkg/shelltypes"
)

// MockCommand implements shelltypes.Command with a configurable Run.
type MockCommand struct {
	name    string
	config  shelltypes.CommandConfig
	runFunc func(ctx context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error)

	// Calls records the arguments of every Run.
	Calls []*shelltypes.CommandArgs
}

// NewMockCommand creates a mock command that emits nothing.
func NewMockCommand(name string) *MockCommand {
	return &MockCommand{
		name:   name,
		config: shelltypes.CommandConfig{Name: name, RestPositional: true},
	}
}

// Name returns the command name.
func (m *MockCommand) Name() string { return m.name }

// Config returns the command signature.
func (m *MockCommand) Config() shelltypes.CommandConfig { return m.config }

// Description returns a generated description.
func (m *MockCommand) Description() string { return fmt.Sprintf("Mock command: %s", m.name) }

// Usage returns a generated usage line.
func (m *MockCommand) Usage() string { return fmt.Sprintf("\\%s", m.name) }

// HelpInfo returns minimal help.
func (m *MockCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{Command: m.name, Description: m.Description(), Usage: m.Usage()}
}

// Run records the call and delegates to the configured function.
func (m *MockCommand) Run(ctx context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	m.Calls = append(m.Calls, args)
	if m.runFunc != nil {
		return m.runFunc(ctx, args)
	}
	return nil, nil
}

// SetConfig replaces the command signature. The name is kept.
func (m *MockCommand) SetConfig(config shelltypes.CommandConfig) {
	config.Name = m.name
	m.config = config
}

// SetRunFunc sets the behaviour of Run.
func (m *MockCommand) SetRunFunc(fn func(ctx context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error)) {
	m.runFunc = fn
}

// Emitting returns a run function that emits the given values.
func Emitting(values ...shelltypes.Value) func(context.Context, *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	return func(context.Context, *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
		out := make(shelltypes.OutputStream, 0, len(values))
		for _, value := range values {
			out = append(out, shelltypes.EmitValue(value.Spanned(shelltypes.UnknownSpan)))
		}
		return out, nil
	}
}
