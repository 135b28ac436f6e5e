package execution

import (
	"fmt"
	"strings"

	"datashell/pkg/shelltypes"
)

// FormatError renders err for display. ShellErrors whose span falls inside
// line are shown with the line and a caret underline carrying the label:
//
//	error: Unknown flag for enter
//	  \enter[foo] a.json
//	         ^^^ unknown flag
func FormatError(line string, err error) string {
	if err == nil {
		return ""
	}

	shellErr, ok := shelltypes.AsShellError(err)
	if !ok {
		return fmt.Sprintf("error: %v", err)
	}

	header := fmt.Sprintf("error: %s", shellErr.Error())
	span := shellErr.Span
	if !span.IsKnown() || span.End > len(line) {
		if shellErr.Label == "" {
			return header
		}
		return fmt.Sprintf("%s (%s)", header, shellErr.Label)
	}

	width := span.Len()
	if width == 0 {
		width = 1
	}
	underline := strings.Repeat(" ", displayWidth(line[:span.Start])) + strings.Repeat("^", width)
	if shellErr.Label != "" {
		underline += " " + shellErr.Label
	}

	return fmt.Sprintf("%s\n  %s\n  %s", header, strings.ReplaceAll(line, "\t", " "), underline)
}

// displayWidth counts runes so carets line up under multi-byte text.
func displayWidth(s string) int {
	return len([]rune(s))
}
