package builtin

import (
	"context"
	"fmt"

	"datashell/internal/logger"
	"datashell/internal/services"
	"datashell/pkg/shelltypes"
)

// formatFlag pairs a presence flag with the format hint it selects.
type formatFlag struct {
	name        string
	hint        shelltypes.FormatHint
	description string
}

// formatFlags is checked in order; the first flag present wins.
var formatFlags = []formatFlag{
	{name: "raw", hint: shelltypes.FormatHintNone, description: "Keep the content as unparsed text"},
	{name: "json", hint: shelltypes.FormatHintJSON, description: "Parse the content as JSON"},
	{name: "xml", hint: shelltypes.FormatHintXML, description: "Parse the content as XML"},
	{name: "ini", hint: shelltypes.FormatHintINI, description: "Parse the content as INI"},
	{name: "yaml", hint: shelltypes.FormatHintYAML, description: "Parse the content as YAML"},
	{name: "toml", hint: shelltypes.FormatHintTOML, description: "Parse the content as TOML"},
}

// formatFlagTypes declares the format flags as switches for CommandConfig.
func formatFlagTypes() []shelltypes.NamedType {
	named := make([]shelltypes.NamedType, 0, len(formatFlags))
	for _, flag := range formatFlags {
		named = append(named, shelltypes.NamedType{Name: flag.name, Switch: true, Description: flag.description})
	}
	return named
}

// formatFlagOptions describes the format flags for HelpInfo.
func formatFlagOptions() []shelltypes.HelpOption {
	options := make([]shelltypes.HelpOption, 0, len(formatFlags))
	for _, flag := range formatFlags {
		options = append(options, shelltypes.HelpOption{Name: flag.name, Description: flag.description, Type: "switch"})
	}
	return options
}

// requirePath fails when no positional argument was given.
func requirePath(commandName string, args *shelltypes.CommandArgs) error {
	if args.Len() == 0 {
		return shelltypes.NewLabeledError(shelltypes.ErrorMissingArgument,
			fmt.Sprintf("%s requires a path or url", commandName), "missing path", args.NameSpan)
	}
	return nil
}

// resolveFormatHint picks the hint of the highest-precedence flag present.
// With no flags at all the hint is unset. Unrecognized flags are only
// rejected when no recognized flag matched.
func resolveFormatHint(commandName string, named shelltypes.NamedArgs) (shelltypes.FormatHint, error) {
	for _, flag := range formatFlags {
		if named.Has(flag.name) {
			return flag.hint, nil
		}
	}

	entries := named.Entries()
	if len(entries) == 0 {
		return shelltypes.FormatHintUnset, nil
	}
	return shelltypes.FormatHintUnset, shelltypes.NewLabeledError(shelltypes.ErrorUnrecognizedFlag,
		fmt.Sprintf("Unknown flag for %s", commandName), "unknown flag", entries[0].Value.Span)
}

// dataSource runs the fetch and parse steps shared by \enter and \open.
type dataSource struct {
	fetcher shelltypes.Fetcher
	parser  shelltypes.Parser
}

func (d dataSource) resolveFetcher() (shelltypes.Fetcher, error) {
	if d.fetcher != nil {
		return d.fetcher, nil
	}
	return services.GetGlobalFetchService()
}

func (d dataSource) resolveParser() (shelltypes.Parser, error) {
	if d.parser != nil {
		return d.parser, nil
	}
	return services.GetGlobalFormatService()
}

// load reads the working directory, fetches the first positional and parses
// text content. parsed is false when the fetcher already returned a
// non-text value, which is then returned unchanged with its span.
func (d dataSource) load(ctx context.Context, commandName string, args *shelltypes.CommandArgs, hint shelltypes.FormatHint) (value shelltypes.Spanned, parsed bool, err error) {
	if args.Env == nil {
		return shelltypes.Spanned{}, false, fmt.Errorf("%s: no environment available", commandName)
	}
	cwd, err := args.Env.CurrentPath()
	if err != nil {
		return shelltypes.Spanned{}, false, err
	}

	target, _ := args.Nth(0)
	identifier, ok := target.Item.AsString()
	if !ok {
		return shelltypes.Spanned{}, false, shelltypes.NewLabeledError(shelltypes.ErrorWrongArgumentType,
			"Expected string value for filename", "expected filename", target.Span)
	}

	fetcher, err := d.resolveFetcher()
	if err != nil {
		return shelltypes.Spanned{}, false, err
	}
	parser, err := d.resolveParser()
	if err != nil {
		return shelltypes.Spanned{}, false, err
	}

	fetched, err := fetcher.Fetch(ctx, cwd, identifier, target.Span)
	if err != nil {
		return shelltypes.Spanned{}, false, err
	}

	format := hint.Resolve(fetched.Extension)
	logger.Debug("Resolved format", "command", commandName, "identifier", identifier,
		"hint", hint.String(), "extension", fetched.Extension, "format", string(format))

	text, isText := fetched.Content.AsString()
	if !isText {
		return fetched.Content.Spanned(fetched.Span), false, nil
	}

	result, err := parser.Parse(ctx, format, text, fetched.Span, args.NameSpan)
	if err != nil {
		return shelltypes.Spanned{}, false, err
	}
	return result.Spanned(fetched.Span), true, nil
}
