package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashell/pkg/shelltypes"
)

func TestParseCommand_Basic(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedName string
		expectedArgs []string
		expectedOpts []string
	}{
		{
			name:         "bare command",
			input:        "\\exit",
			expectedName: "exit",
		},
		{
			name:         "command with argument",
			input:        "\\enter data.json",
			expectedName: "enter",
			expectedArgs: []string{"data.json"},
		},
		{
			name:         "command with flag and argument",
			input:        "\\enter[json] notes.txt",
			expectedName: "enter",
			expectedArgs: []string{"notes.txt"},
			expectedOpts: []string{"json"},
		},
		{
			name:         "multiple options with spaces",
			input:        "\\enter[ raw , json ] a b",
			expectedName: "enter",
			expectedArgs: []string{"a", "b"},
			expectedOpts: []string{"raw", "json"},
		},
		{
			name:         "leading whitespace",
			input:        "   \\help enter",
			expectedName: "help",
			expectedArgs: []string{"enter"},
		},
		{
			name:         "empty brackets",
			input:        "\\shells[]",
			expectedName: "shells",
		},
		{
			name:         "hyphenated name",
			input:        "\\my-cmd x",
			expectedName: "my-cmd",
			expectedArgs: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, cmd.Name)

			var args []string
			for _, arg := range cmd.Args {
				args = append(args, arg.Text)
			}
			assert.Equal(t, tt.expectedArgs, args)

			var opts []string
			for _, opt := range cmd.Options {
				opts = append(opts, opt.Name)
			}
			assert.Equal(t, tt.expectedOpts, opts)
		})
	}
}

func TestParseCommand_Spans(t *testing.T) {
	input := `\enter[raw, depth=2] "my file.json" next`
	cmd, err := ParseCommand(input)
	require.NoError(t, err)

	assert.Equal(t, shelltypes.NewSpan(0, 6), cmd.NameSpan)
	assert.Equal(t, `\enter`, input[cmd.NameSpan.Start:cmd.NameSpan.End])

	require.Len(t, cmd.Options, 2)
	assert.Equal(t, "raw", input[cmd.Options[0].Span.Start:cmd.Options[0].Span.End])
	assert.False(t, cmd.Options[0].HasValue)
	assert.Equal(t, "depth=2", input[cmd.Options[1].Span.Start:cmd.Options[1].Span.End])
	assert.True(t, cmd.Options[1].HasValue)
	assert.Equal(t, "2", cmd.Options[1].Value)

	require.Len(t, cmd.Args, 2)
	assert.Equal(t, "my file.json", cmd.Args[0].Text)
	assert.True(t, cmd.Args[0].Quoted)
	assert.Equal(t, `"my file.json"`, input[cmd.Args[0].Span.Start:cmd.Args[0].Span.End])
	assert.Equal(t, "next", cmd.Args[1].Text)
	assert.False(t, cmd.Args[1].Quoted)
	assert.Equal(t, shelltypes.NewSpan(36, 40), cmd.Args[1].Span)
}

func TestParseCommand_QuotedValues(t *testing.T) {
	cmd, err := ParseCommand(`\open[label="a, b]"] 'single quoted' "esc \"q\""`)
	require.NoError(t, err)

	opt, ok := cmd.Option("label")
	require.True(t, ok)
	assert.Equal(t, "a, b]", opt.Value)

	require.Len(t, cmd.Args, 2)
	assert.Equal(t, "single quoted", cmd.Args[0].Text)
	assert.Equal(t, `esc "q"`, cmd.Args[1].Text)

	_, ok = cmd.Option("missing")
	assert.False(t, ok)
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		span  shelltypes.Span
	}{
		{name: "empty", input: "   ", span: shelltypes.NewSpan(0, 3)},
		{name: "no backslash", input: "enter x", span: shelltypes.NewSpan(0, 1)},
		{name: "missing name", input: "\\ x", span: shelltypes.NewSpan(0, 1)},
		{name: "unterminated brackets", input: "\\enter[json", span: shelltypes.NewSpan(6, 11)},
		{name: "unterminated quote", input: "\\enter \"a.json", span: shelltypes.NewSpan(7, 14)},
		{name: "junk after name", input: "\\enter!x", span: shelltypes.NewSpan(6, 7)},
		{name: "bad option separator", input: "\\enter[json yaml]", span: shelltypes.NewSpan(12, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			require.Error(t, err)
			assert.Nil(t, cmd)

			shellErr, ok := shelltypes.AsShellError(err)
			require.True(t, ok)
			assert.Equal(t, shelltypes.ErrorSyntax, shellErr.Kind)
			assert.Equal(t, tt.span, shellErr.Span)
		})
	}
}

func TestIsBlankOrComment(t *testing.T) {
	assert.True(t, IsBlankOrComment(""))
	assert.True(t, IsBlankOrComment("   \t"))
	assert.True(t, IsBlankOrComment("%% a comment"))
	assert.True(t, IsBlankOrComment("  %%indented"))
	assert.False(t, IsBlankOrComment("\\enter a.json"))
	assert.False(t, IsBlankOrComment("% not a comment"))
}

func TestCommand_String(t *testing.T) {
	cmd, err := ParseCommand(`\enter[raw, depth=2] "my file"  plain`)
	require.NoError(t, err)
	assert.Equal(t, `\enter[raw, depth="2"] "my file" plain`, cmd.String())
}
