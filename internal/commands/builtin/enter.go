package builtin

import (
	"context"
	"fmt"

	"datashell/internal/commands"
	"datashell/internal/logger"
	"datashell/pkg/shelltypes"
)

// EnterCommand implements the \enter command. It loads a file or URL, parses it
// according to its format and makes the resulting value the new working context.
type EnterCommand struct {
	source dataSource
}

// NewEnterCommand creates an enter command using the given collaborators.
// Nil collaborators fall back to the global fetch and format services.
func NewEnterCommand(fetcher shelltypes.Fetcher, parser shelltypes.Parser) *EnterCommand {
	return &EnterCommand{source: dataSource{fetcher: fetcher, parser: parser}}
}

// Name returns the command name "enter" for registration and lookup.
func (c *EnterCommand) Name() string {
	return "enter"
}

// Config declares one mandatory path and the format switches.
func (c *EnterCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{
		Name:           c.Name(),
		Positional:     []shelltypes.PositionalType{shelltypes.MandatoryBlock("path")},
		RestPositional: false,
		IsFilter:       false,
		IsSink:         false,
		Named:          formatFlagTypes(),
		ValidatesArgs:  true,
	}
}

// Description returns a brief description of what the enter command does.
func (c *EnterCommand) Description() string {
	return "Load a file or URL and make it the working context"
}

// Usage returns the syntax for the enter command.
func (c *EnterCommand) Usage() string {
	return "\\enter[raw|json|xml|ini|yaml|toml] path_or_url"
}

// HelpInfo returns structured help information for the enter command.
func (c *EnterCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options:     formatFlagOptions(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\enter config.toml", Description: "Parse config.toml as TOML and enter it"},
			{Command: "\\enter[json] data.txt", Description: "Parse a file as JSON regardless of its extension"},
			{Command: "\\enter[raw] notes.md", Description: "Enter the file content as plain text"},
			{Command: "\\enter https://example.com/api/items", Description: "Fetch a URL and enter the parsed response"},
		},
		Notes: []string{
			"Without a format flag the format is taken from the file extension",
			"When several format flags are given, raw, json, xml, ini, yaml, toml is the order of precedence",
			"Binary content is emitted as-is without entering it",
			"Use \\exit to leave the entered context and \\shells to list contexts",
		},
	}
}

// Run validates the arguments, resolves the format and loads the source.
// Text content yields one EnterContext action, other content one EmitValue action.
func (c *EnterCommand) Run(ctx context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	if err := requirePath(c.Name(), args); err != nil {
		return nil, err
	}

	hint, err := resolveFormatHint(c.Name(), args.Named)
	if err != nil {
		return nil, err
	}

	value, parsed, err := c.source.load(ctx, c.Name(), args, hint)
	if err != nil {
		return nil, err
	}

	if !parsed {
		logger.Debug("Emitting non-text content", "kind", value.Item.TypeName())
		return shelltypes.OutputStream{shelltypes.EmitValue(value)}, nil
	}
	return shelltypes.OutputStream{shelltypes.EnterContext(value.Item)}, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(NewEnterCommand(nil, nil)); err != nil {
		panic(fmt.Sprintf("failed to register enter command: %v", err))
	}
}
