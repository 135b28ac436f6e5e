package execution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"datashell/pkg/shelltypes"
)

func TestFormatError(t *testing.T) {
	line := `\enter[foo] a.json`

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			err:      errors.New("disk on fire"),
			expected: "error: disk on fire",
		},
		{
			name:     "span in line",
			err:      shelltypes.NewLabeledError(shelltypes.ErrorUnrecognizedFlag, "Unknown flag for enter", "unknown flag", shelltypes.NewSpan(7, 10)),
			expected: "error: Unknown flag for enter\n  \\enter[foo] a.json\n         ^^^ unknown flag",
		},
		{
			name:     "empty span",
			err:      shelltypes.NewLabeledError(shelltypes.ErrorSyntax, "oops", "here", shelltypes.NewSpan(0, 0)),
			expected: "error: oops\n  \\enter[foo] a.json\n  ^ here",
		},
		{
			name:     "unknown span",
			err:      shelltypes.NewLabeledError(shelltypes.ErrorParseFailure, "Could not parse as JSON", "could not parse as JSON", shelltypes.UnknownSpan),
			expected: "error: Could not parse as JSON (could not parse as JSON)",
		},
		{
			name:     "span past the line",
			err:      shelltypes.NewLabeledError(shelltypes.ErrorParseFailure, "bad", "", shelltypes.NewSpan(40, 50)),
			expected: "error: bad",
		},
		{
			name: "wrapped with cause",
			err: shelltypes.NewLabeledError(shelltypes.ErrorFetchFailure, "File not found: a.json", "file not found", shelltypes.NewSpan(12, 18)).
				WithCause(errors.New("no such file")),
			expected: "error: File not found: a.json: no such file\n  \\enter[foo] a.json\n              ^^^^^^ file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatError(line, tt.err))
		})
	}
}
