package builtin

import (
	"context"
	"fmt"

	"datashell/internal/commands"
	"datashell/internal/logger"
	"datashell/pkg/shelltypes"
)

// ExitCommand implements the \exit command. It leaves the innermost entered
// context, and at the root context asks the shell to terminate.
type ExitCommand struct{}

// Name returns the command name "exit" for registration and lookup.
func (c *ExitCommand) Name() string {
	return "exit"
}

// Config declares a command without arguments.
func (c *ExitCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{Name: c.Name()}
}

// Description returns a brief description of what the exit command does.
func (c *ExitCommand) Description() string {
	return "Leave the current context, or exit the shell at the root"
}

// Usage returns the syntax for the exit command.
func (c *ExitCommand) Usage() string {
	return "\\exit"
}

// HelpInfo returns structured help information for the exit command.
func (c *ExitCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\exit", Description: "Return to the context \\enter was run from"},
		},
		Notes: []string{
			"At the root context the shell exits",
			"Use Ctrl+C as an alternative exit method",
		},
	}
}

// Run pops the innermost frame, or returns commands.ErrExitShell at the root.
func (c *ExitCommand) Run(_ context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	if args.Env == nil {
		return nil, commands.ErrExitShell
	}

	frame, ok := args.Env.Pop()
	if !ok {
		return nil, commands.ErrExitShell
	}
	logger.Debug("Left context", "name", frame.Name(), "depth", args.Env.Depth())
	return nil, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&ExitCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register exit command: %v", err))
	}
}
