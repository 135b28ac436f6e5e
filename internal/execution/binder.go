package execution

import (
	"fmt"
	"strconv"

	"datashell/internal/parser"
	"datashell/pkg/shelltypes"
)

// bindArgs converts a parsed command into CommandArgs for cmd.
//
// Unquoted arguments that read as integers bind as Int and true/false as
// Boolean; everything else binds as String. Options without a value bind as
// Boolean true, options with a value as String. Missing mandatory positionals
// are rejected unless the command validates its own arguments; unknown options
// are always left for the command to report.
func bindArgs(parsed *parser.Command, config shelltypes.CommandConfig, env shelltypes.Environment) (*shelltypes.CommandArgs, error) {
	args := &shelltypes.CommandArgs{
		NameSpan: parsed.NameSpan,
		Env:      env,
	}

	if !config.RestPositional && len(parsed.Args) > len(config.Positional) {
		extra := parsed.Args[len(config.Positional)]
		return nil, shelltypes.NewLabeledError(shelltypes.ErrorUnexpectedArgument,
			fmt.Sprintf("%s takes at most %d argument(s)", config.Name, len(config.Positional)),
			"unexpected argument", extra.Span)
	}

	if !config.ValidatesArgs && len(parsed.Args) < config.MandatoryCount() {
		missing := config.Positional[len(parsed.Args)]
		return nil, shelltypes.NewLabeledError(shelltypes.ErrorMissingArgument,
			fmt.Sprintf("%s requires a %s argument", config.Name, missing.Name),
			"missing "+missing.Name, parsed.NameSpan)
	}

	for _, arg := range parsed.Args {
		args.Positional = append(args.Positional, bindArg(arg))
	}

	for _, option := range parsed.Options {
		value := shelltypes.NewBoolean(true)
		if option.HasValue {
			value = shelltypes.NewString(option.Value)
		}
		args.Named.Add(option.Name, value.Spanned(option.Span))
	}

	return args, nil
}

func bindArg(arg parser.Arg) shelltypes.Spanned {
	if arg.Quoted {
		return shelltypes.NewString(arg.Text).Spanned(arg.Span)
	}
	if i, err := strconv.ParseInt(arg.Text, 10, 64); err == nil {
		return shelltypes.NewInt(i).Spanned(arg.Span)
	}
	switch arg.Text {
	case "true":
		return shelltypes.NewBoolean(true).Spanned(arg.Span)
	case "false":
		return shelltypes.NewBoolean(false).Spanned(arg.Span)
	}
	return shelltypes.NewString(arg.Text).Spanned(arg.Span)
}
