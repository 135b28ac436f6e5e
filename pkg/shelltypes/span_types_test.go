package shelltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		known bool
		len   int
		str   string
	}{
		{name: "regular", span: NewSpan(3, 8), known: true, len: 5, str: "3..8"},
		{name: "empty", span: NewSpan(4, 4), known: true, len: 0, str: "4..4"},
		{name: "unknown", span: UnknownSpan, known: false, len: 0, str: "unknown"},
		{name: "inverted", span: NewSpan(5, 2), known: false, len: 0, str: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.known, tt.span.IsKnown())
			assert.Equal(t, tt.len, tt.span.Len())
			assert.Equal(t, tt.str, tt.span.String())
		})
	}
}

func TestSpanned(t *testing.T) {
	s := NewSpanned(NewString("x"), NewSpan(1, 2))
	assert.Equal(t, NewSpan(1, 2), s.Span)
	assert.True(t, s.Item.Equal(NewString("x")))

	assert.Equal(t, s, NewString("x").Spanned(NewSpan(1, 2)))
}
