package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datashell/internal/parser"
	"datashell/pkg/shelltypes"
)

func TestBindArg(t *testing.T) {
	span := shelltypes.NewSpan(3, 8)
	tests := []struct {
		arg      parser.Arg
		expected shelltypes.Value
	}{
		{arg: parser.Arg{Text: "-17"}, expected: shelltypes.NewInt(-17)},
		{arg: parser.Arg{Text: "false"}, expected: shelltypes.NewBoolean(false)},
		{arg: parser.Arg{Text: "1.5"}, expected: shelltypes.NewString("1.5")},
		{arg: parser.Arg{Text: "True"}, expected: shelltypes.NewString("True")},
		{arg: parser.Arg{Text: "true", Quoted: true}, expected: shelltypes.NewString("true")},
		{arg: parser.Arg{Text: "99999999999999999999"}, expected: shelltypes.NewString("99999999999999999999")},
	}

	for _, tt := range tests {
		t.Run(tt.arg.Text, func(t *testing.T) {
			tt.arg.Span = span
			bound := bindArg(tt.arg)
			assert.Equal(t, tt.expected, bound.Item)
			assert.Equal(t, span, bound.Span)
		})
	}
}

func TestBindArgs_RepeatedOptionKeepsPosition(t *testing.T) {
	parsed, err := parser.ParseCommand(`\x[json, raw, json=again]`)
	assert.NoError(t, err)

	args, err := bindArgs(parsed, shelltypes.CommandConfig{Name: "x"}, nil)
	assert.NoError(t, err)

	entries := args.Named.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "json", entries[0].Name)
	assert.Equal(t, shelltypes.NewString("again"), entries[0].Value.Item)
	assert.Equal(t, "raw", entries[1].Name)
}

func TestBindArgs_MissingMandatoryPositional(t *testing.T) {
	parsed, err := parser.ParseCommand(`\x[json]`)
	assert.NoError(t, err)

	config := shelltypes.CommandConfig{
		Name: "x",
		Positional: []shelltypes.PositionalType{
			shelltypes.MandatoryBlock("path"),
			shelltypes.OptionalPositional("extra", shelltypes.ShapeAny),
		},
	}
	_, err = bindArgs(parsed, config, nil)
	shellErr, ok := shelltypes.AsShellError(err)
	assert.True(t, ok)
	assert.Equal(t, shelltypes.ErrorMissingArgument, shellErr.Kind)
	assert.Equal(t, "missing path", shellErr.Label)
	assert.Equal(t, parsed.NameSpan, shellErr.Span)

	config.ValidatesArgs = true
	args, err := bindArgs(parsed, config, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, args.Len())
}
