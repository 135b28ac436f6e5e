package builtin

import (
	"context"
	"fmt"

	"datashell/internal/commands"
	"datashell/pkg/shelltypes"
)

// ShellsCommand implements the \shells command, listing the environment stack.
type ShellsCommand struct{}

// Name returns the command name "shells" for registration and lookup.
func (c *ShellsCommand) Name() string {
	return "shells"
}

// Config declares a command without arguments.
func (c *ShellsCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{Name: c.Name()}
}

// Description returns a brief description of what the shells command does.
func (c *ShellsCommand) Description() string {
	return "List the entered contexts, innermost first"
}

// Usage returns the syntax for the shells command.
func (c *ShellsCommand) Usage() string {
	return "\\shells"
}

// HelpInfo returns structured help information for the shells command.
func (c *ShellsCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\shells", Description: "Show every context with its name and directory"},
		},
	}
}

// Run emits one row per frame with index, active, name and path columns.
func (c *ShellsCommand) Run(_ context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	if args.Env == nil {
		return nil, fmt.Errorf("shells: no environment available")
	}

	frames := args.Env.Frames()
	rows := make([]shelltypes.Value, 0, len(frames))
	for i, frame := range frames {
		row := shelltypes.NewRow().
			Set("index", shelltypes.NewInt(int64(i))).
			Set("active", shelltypes.NewBoolean(i == 0)).
			Set("name", shelltypes.NewString(frame.Name())).
			Set("path", shelltypes.NewString(frame.Path()))
		rows = append(rows, shelltypes.NewRowValue(row))
	}

	return shelltypes.OutputStream{
		shelltypes.EmitValue(shelltypes.NewList(rows...).Spanned(args.NameSpan)),
	}, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&ShellsCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register shells command: %v", err))
	}
}
