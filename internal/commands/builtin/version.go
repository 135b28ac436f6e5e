package builtin

import (
	"context"
	"fmt"

	"datashell/internal/commands"
	"datashell/internal/version"
	"datashell/pkg/shelltypes"
)

// VersionCommand implements the \version command.
type VersionCommand struct{}

// Name returns the command name "version" for registration and lookup.
func (c *VersionCommand) Name() string {
	return "version"
}

// Config declares a command without arguments.
func (c *VersionCommand) Config() shelltypes.CommandConfig {
	return shelltypes.CommandConfig{Name: c.Name()}
}

// Description returns a brief description of what the version command does.
func (c *VersionCommand) Description() string {
	return "Show datashell version information"
}

// Usage returns the syntax for the version command.
func (c *VersionCommand) Usage() string {
	return "\\version"
}

// HelpInfo returns structured help information for the version command.
func (c *VersionCommand) HelpInfo() shelltypes.HelpInfo {
	return shelltypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []shelltypes.HelpExample{
			{Command: "\\version", Description: "Show version, commit, build date and platform"},
		},
	}
}

// Run emits a row describing the build.
func (c *VersionCommand) Run(_ context.Context, args *shelltypes.CommandArgs) (shelltypes.OutputStream, error) {
	info, err := version.GetInfo()
	if err != nil {
		return nil, err
	}

	row := shelltypes.NewRow().
		Set("version", shelltypes.NewString(info.Version)).
		Set("commit", shelltypes.NewString(info.GitCommit)).
		Set("build_date", shelltypes.NewString(info.BuildDate)).
		Set("go_version", shelltypes.NewString(info.GoVersion)).
		Set("platform", shelltypes.NewString(info.Platform)).
		Set("prerelease", shelltypes.NewBoolean(info.Prerelease != ""))

	return shelltypes.OutputStream{
		shelltypes.EmitValue(shelltypes.NewRowValue(row).Spanned(args.NameSpan)),
	}, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&VersionCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register version command: %v", err))
	}
}
