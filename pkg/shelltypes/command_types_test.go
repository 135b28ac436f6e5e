package shelltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConfig_MandatoryCount(t *testing.T) {
	config := CommandConfig{
		Name: "enter",
		Positional: []PositionalType{
			MandatoryBlock("path"),
			OptionalPositional("extra", ShapeAny),
		},
	}
	assert.Equal(t, 1, config.MandatoryCount())
	assert.Equal(t, 0, CommandConfig{}.MandatoryCount())
	assert.Equal(t, ShapeBlock, config.Positional[0].Shape)
}

func TestNamedArgs(t *testing.T) {
	named := NewNamedArgs()
	named.Add("json", NewBoolean(true).Spanned(NewSpan(7, 11)))
	named.Add("raw", NewBoolean(true).Spanned(NewSpan(13, 16)))
	named.Add("json", NewString("x").Spanned(NewSpan(18, 24)))

	assert.Equal(t, 2, named.Len())
	assert.True(t, named.Has("raw"))
	assert.False(t, named.Has("toml"))

	got, ok := named.Get("json")
	require.True(t, ok)
	assert.Equal(t, NewSpan(18, 24), got.Span)

	entries := named.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "json", entries[0].Name)
	assert.Equal(t, "raw", entries[1].Name)

	entries[0].Name = "mutated"
	assert.True(t, named.Has("json"))
}

func TestCommandArgs(t *testing.T) {
	args := &CommandArgs{
		Positional: []Spanned{NewString("a.json").Spanned(NewSpan(7, 13))},
		Named:      NewNamedArgs(NamedArg{Name: "yaml", Value: NewBoolean(true).Spanned(NewSpan(1, 2))}),
	}

	assert.Equal(t, 1, args.Len())
	first, ok := args.Nth(0)
	require.True(t, ok)
	assert.Equal(t, NewSpan(7, 13), first.Span)

	_, ok = args.Nth(1)
	assert.False(t, ok)
	_, ok = args.Nth(-1)
	assert.False(t, ok)

	assert.True(t, args.Has("yaml"))
	assert.False(t, args.Has("json"))
}
