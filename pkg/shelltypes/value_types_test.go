package shelltypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ZeroIsNothing(t *testing.T) {
	var v Value
	assert.True(t, v.IsNothing())
	assert.Equal(t, "nothing", v.TypeName())
	assert.Nil(t, v.Native())
}

func TestValue_Accessors(t *testing.T) {
	s, ok := NewString("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	_, ok = NewInt(1).AsString()
	assert.False(t, ok)

	i, ok := NewInt(42).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	b, ok := NewBoolean(true).AsBoolean()
	assert.True(t, ok)
	assert.True(t, b)

	f, ok := NewDecimal(1.5).AsDecimal()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	list, ok := NewList(NewInt(1), NewInt(2)).AsList()
	assert.True(t, ok)
	assert.Len(t, list, 2)

	row, ok := NewRowValue(nil).AsRow()
	require.True(t, ok)
	assert.Equal(t, 0, row.Len())
}

func TestValue_BinaryIsCopied(t *testing.T) {
	raw := []byte{0xff, 0x00}
	v := NewBinary(raw)
	raw[0] = 0x01

	got, ok := v.AsBinary()
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0x00}, got)
}

func TestValue_Display(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	row := NewRow().Set("name", NewString("dsh")).Set("size", NewInt(3))

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "nothing", value: NewNothing(), want: ""},
		{name: "bool", value: NewBoolean(false), want: "false"},
		{name: "int", value: NewInt(-7), want: "-7"},
		{name: "decimal", value: NewDecimal(2.25), want: "2.25"},
		{name: "string", value: NewString("a b"), want: "a b"},
		{name: "binary", value: NewBinary([]byte{1, 2, 3}), want: "<binary: 3 bytes>"},
		{name: "date", value: NewDate(when), want: "2024-03-01T12:00:00Z"},
		{name: "list", value: NewList(NewInt(1), NewInt(2)), want: "[list 2 items]"},
		{name: "row", value: NewRowValue(row), want: "[row name size]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Display())
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValue_Native(t *testing.T) {
	row := NewRow().
		Set("name", NewString("dsh")).
		Set("tags", NewList(NewString("a"), NewBoolean(true))).
		Set("empty", NewNothing())

	assert.Equal(t, map[string]any{
		"name":  "dsh",
		"tags":  []any{"a", true},
		"empty": nil,
	}, NewRowValue(row).Native())
}

func TestValue_Equal(t *testing.T) {
	a := NewRowValue(NewRow().Set("x", NewInt(1)).Set("y", NewInt(2)))
	b := NewRowValue(NewRow().Set("x", NewInt(1)).Set("y", NewInt(2)))
	reordered := NewRowValue(NewRow().Set("y", NewInt(2)).Set("x", NewInt(1)))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered), "row key order is significant")
	assert.False(t, NewInt(1).Equal(NewDecimal(1)))
	assert.True(t, NewNothing().Equal(Value{}))
	assert.False(t, NewList(NewInt(1)).Equal(NewList(NewInt(1), NewInt(2))))
	assert.True(t, NewBinary([]byte("ab")).Equal(NewBinary([]byte("ab"))))
}

func TestRow_SetKeepsFirstPosition(t *testing.T) {
	row := NewRow().Set("a", NewInt(1)).Set("b", NewInt(2)).Set("a", NewInt(3))

	assert.Equal(t, []string{"a", "b"}, row.Keys())
	v, ok := row.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(NewInt(3)))

	_, ok = row.Get("missing")
	assert.False(t, ok)

	keys := row.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, row.Keys())
}

func TestRow_EqualNil(t *testing.T) {
	var nilRow *Row
	assert.True(t, nilRow.Equal(nil))
	assert.False(t, NewRow().Equal(nil))
}
