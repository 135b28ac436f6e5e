package builtin

import (
	"context"
	"fmt"
	"strings"

	"datashell/internal/commands"
	"datashell/internal/services"
	"datashell/pkg/shelltypes"
)

// HelpCommand implements the \help command for listing commands and showing their usage.
type HelpCommand struct{}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string {
	return "help"
}

// Config declares an optional command name.
func (c *HelpCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{
		Name:       c.Name(),
		Positional: []shelltypes.PositionalType{shelltypes.OptionalPositional("command", shelltypes.ShapeString)},
	}
}

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Show command help"
}

// Usage returns the syntax for the help command.
func (c *HelpCommand) Usage() string {
	return "\\help [command]"
}

// HelpInfo returns structured help information for the help command.
func (c *HelpCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\help", Description: "List all commands"},
			{Command: "\\help enter", Description: "Show detailed help for \\enter"},
		},
	}
}

// Run emits the rendered help text as a string.
func (c *HelpCommand) Run(_ context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	var markdown string
	if target, ok := args.Nth(0); ok {
		name := strings.TrimPrefix(target.Item.Display(), "\\")
		cmd, found := commands.GetGlobalRegistry().Get(name)
		if !found {
			return nil, shelltypes.NewLabeledError(shelltypes.ErrorUnknownCommand,
				fmt.Sprintf("Unknown command: %s", name), "no such command", target.Span)
		}
		markdown = commandHelpMarkdown(cmd.HelpInfo())
	} else {
		markdown = commandListMarkdown(commands.GetGlobalRegistry().GetAll())
	}

	text := markdown
	if markdownService, err := services.GetGlobalMarkdownService(); err == nil {
		rendered, err := markdownService.Render(markdown)
		if err != nil {
			return nil, err
		}
		text = rendered
	}

	return shelltypes.OutputStream{
		shelltypes.EmitValue(shelltypes.NewString(text).Spanned(args.NameSpan)),
	}, nil
}

func commandListMarkdown(cmds []shelltypes.Command) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("| Command | Description |\n|---|---|\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "| `\\%s` | %s |\n", cmd.Name(), cmd.Description())
	}
	b.WriteString("\nUse `\\help command` for details.\n")
	return b.String()
}

func commandHelpMarkdown(info shelltypes.HelpInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# \\%s\n\n%s\n\n", info.Command, info.Description)
	fmt.Fprintf(&b, "## Usage\n\n```\n%s\n```\n", info.Usage)

	if len(info.Options) > 0 {
		b.WriteString("\n## Options\n\n")
		for _, option := range info.Options {
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", option.Name, option.Type, option.Description)
		}
	}
	if len(info.Examples) > 0 {
		b.WriteString("\n## Examples\n\n")
		for _, example := range info.Examples {
			fmt.Fprintf(&b, "- `%s`: %s\n", example.Command, example.Description)
		}
	}
	if len(info.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, note := range info.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}
	return b.String()
}

func init() {
	if err := commands.GlobalRegistry.Register(&HelpCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register help command: %v", err))
	}
}
