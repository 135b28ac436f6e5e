package builtin

import (
	"context"
	"fmt"

	"datashell/internal/commands"
	"datashell/pkg/shelltypes"
)

// OpenCommand implements the \open command: \enter without changing the working context.
type OpenCommand struct {
	source dataSource
}

// NewOpenCommand creates an open command using the given collaborators.
// Nil collaborators fall back to the global fetch and format services.
func NewOpenCommand(fetcher shelltypes.Fetcher, parser shelltypes.Parser) *OpenCommand {
	return &OpenCommand{source: dataSource{fetcher: fetcher, parser: parser}}
}

// Name returns the command name "open" for registration and lookup.
func (c *OpenCommand) Name() string {
	return "open"
}

// Config declares one mandatory path and the format switches.
func (c *OpenCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{
		Name:          c.Name(),
		Positional:    []shelltypes.PositionalType{shelltypes.MandatoryBlock("path")},
		Named:         formatFlagTypes(),
		ValidatesArgs: true,
	}
}

// Description returns a brief description of what the open command does.
func (c *OpenCommand) Description() string {
	return "Load a file or URL and print its parsed value"
}

// Usage returns the syntax for the open command.
func (c *OpenCommand) Usage() string {
	return "\\open[raw|json|xml|ini|yaml|toml] path_or_url"
}

// HelpInfo returns structured help information for the open command.
func (c *OpenCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options:     formatFlagOptions(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\open Cargo.toml", Description: "Show the parsed content of Cargo.toml"},
			{Command: "\\open[raw] config.yaml", Description: "Show the file as text"},
		},
		Notes: []string{
			"Accepts the same flags as \\enter but leaves the working context unchanged",
		},
	}
}

// Run loads the source and emits its value.
func (c *OpenCommand) Run(ctx context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	if err := requirePath(c.Name(), args); err != nil {
		return nil, err
	}

	hint, err := resolveFormatHint(c.Name(), args.Named)
	if err != nil {
		return nil, err
	}

	value, _, err := c.source.load(ctx, c.Name(), args, hint)
	if err != nil {
		return nil, err
	}
	return shelltypes.OutputStream{shelltypes.EmitValue(value)}, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(NewOpenCommand(nil, nil)); err != nil {
		panic(fmt.Sprintf("failed to register open command: %v", err))
	}
}
