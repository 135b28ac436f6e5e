// Package shelltypes defines the shared types for datashell.
// This file contains source spans used to attribute errors to the part of the
// input line they came from.
package shelltypes

import "fmt"

// Span is a half-open byte range [Start, End) into the command line being executed.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// UnknownSpan is used for values that did not originate from user input.
var UnknownSpan = Span{Start: -1, End: -1}

// NewSpan creates a span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// IsKnown reports whether the span points into an input line.
func (s Span) IsKnown() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if !s.IsKnown() {
		return 0
	}
	return s.End - s.Start
}

// String renders the span as "start..end".
func (s Span) String() string {
	if !s.IsKnown() {
		return "unknown"
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Spanned pairs a value with the span it came from.
type Spanned struct {
	Item Value
	Span Span
}

// NewSpanned wraps a value with its span.
func NewSpanned(item Value, span Span) Spanned {
	return Spanned{Item: item, Span: span}
}
