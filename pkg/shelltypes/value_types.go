// Package shelltypes defines the shared types for datashell.
// This file contains the structured value model that every command produces
// and consumes: scalars, binary blobs, lists and ordered rows.
package shelltypes

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// KindNothing is the empty value (null in JSON/YAML, missing in INI)
	KindNothing ValueKind = iota
	// KindBoolean holds true or false
	KindBoolean
	// KindInt holds a signed 64-bit integer
	KindInt
	// KindDecimal holds a float64
	KindDecimal
	// KindString holds UTF-8 text
	KindString
	// KindBinary holds raw bytes that are not valid text
	KindBinary
	// KindDate holds a point in time
	KindDate
	// KindList holds an ordered sequence of values
	KindList
	// KindRow holds an ordered set of named columns
	KindRow
)

var kindNames = map[ValueKind]string{
	KindNothing: "nothing",
	KindBoolean: "boolean",
	KindInt:     "int",
	KindDecimal: "decimal",
	KindString:  "string",
	KindBinary:  "binary",
	KindDate:    "date",
	KindList:    "list",
	KindRow:     "row",
}

// String returns the lower-case name of the kind.
func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is the generic structured value passed between commands.
// The zero Value is Nothing.
type Value struct {
	kind    ValueKind
	boolean bool
	integer int64
	decimal float64
	text    string
	binary  []byte
	date    time.Time
	list    []Value
	row     *Row
}

// NewNothing returns the empty value.
func NewNothing() Value { return Value{kind: KindNothing} }

// NewBoolean wraps a bool.
func NewBoolean(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// NewInt wraps an int64.
func NewInt(i int64) Value { return Value{kind: KindInt, integer: i} }

// NewDecimal wraps a float64.
func NewDecimal(f float64) Value { return Value{kind: KindDecimal, decimal: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: KindString, text: s} }

// NewBinary wraps raw bytes. The slice is copied.
func NewBinary(b []byte) Value {
	return Value{kind: KindBinary, binary: append([]byte(nil), b...)}
}

// NewDate wraps a time.Time.
func NewDate(t time.Time) Value { return Value{kind: KindDate, date: t} }

// NewList wraps a list of values.
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// NewRowValue wraps a row. A nil row becomes an empty row.
func NewRowValue(row *Row) Value {
	if row == nil {
		row = NewRow()
	}
	return Value{kind: KindRow, row: row}
}

// Kind returns the variant held by the value.
func (v Value) Kind() ValueKind { return v.kind }

// TypeName returns a human readable type name used in error messages.
func (v Value) TypeName() string { return v.kind.String() }

// IsNothing reports whether the value is Nothing.
func (v Value) IsNothing() bool { return v.kind == KindNothing }

// AsString returns the text of a String value.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsBoolean returns the bool of a Boolean value.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.boolean, true
}

// AsInt returns the integer of an Int value.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.integer, true
}

// AsDecimal returns the float of a Decimal value.
func (v Value) AsDecimal() (float64, bool) {
	if v.kind != KindDecimal {
		return 0, false
	}
	return v.decimal, true
}

// AsBinary returns the bytes of a Binary value.
func (v Value) AsBinary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return v.binary, true
}

// AsDate returns the time of a Date value.
func (v Value) AsDate() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// AsList returns the items of a List value.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsRow returns the row of a Row value.
func (v Value) AsRow() (*Row, bool) {
	if v.kind != KindRow {
		return nil, false
	}
	return v.row, true
}

// Spanned attaches a span to the value.
func (v Value) Spanned(span Span) Spanned {
	return Spanned{Item: v, Span: span}
}

// Display renders a scalar as a single line of text. Lists and rows are
// summarised as "[list N items]" / "[row a b c]".
func (v Value) Display() string {
	switch v.kind {
	case KindNothing:
		return ""
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindDecimal:
		return strconv.FormatFloat(v.decimal, 'f', -1, 64)
	case KindString:
		return v.text
	case KindBinary:
		return fmt.Sprintf("<binary: %d bytes>", len(v.binary))
	case KindDate:
		return v.date.Format(time.RFC3339)
	case KindList:
		return fmt.Sprintf("[list %d items]", len(v.list))
	case KindRow:
		return fmt.Sprintf("[row %s]", joinKeys(v.row.Keys()))
	}
	return ""
}

// Native converts the value into plain Go values (map[string]any, []any,
// string, int64, float64, bool, []byte, time.Time, nil) for encoding.
func (v Value) Native() any {
	switch v.kind {
	case KindBoolean:
		return v.boolean
	case KindInt:
		return v.integer
	case KindDecimal:
		return v.decimal
	case KindString:
		return v.text
	case KindBinary:
		return v.binary
	case KindDate:
		return v.date
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Native()
		}
		return items
	case KindRow:
		m := make(map[string]any, v.row.Len())
		for _, key := range v.row.Keys() {
			item, _ := v.row.Get(key)
			m[key] = item.Native()
		}
		return m
	}
	return nil
}

// Equal reports whether two values are structurally equal. Row key order is significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNothing:
		return true
	case KindBoolean:
		return v.boolean == other.boolean
	case KindInt:
		return v.integer == other.integer
	case KindDecimal:
		return v.decimal == other.decimal
	case KindString:
		return v.text == other.text
	case KindBinary:
		return bytes.Equal(v.binary, other.binary)
	case KindDate:
		return v.date.Equal(other.date)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindRow:
		return v.row.Equal(other.row)
	}
	return false
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Display()
}

// Row is an ordered collection of named values. Keys keep the position of
// their first insertion.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]Value)}
}

// Set stores a value under key. Replacing an existing key keeps its position.
func (r *Row) Set(key string, value Value) *Row {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value stored under key.
func (r *Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (r *Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of columns.
func (r *Row) Len() int {
	return len(r.keys)
}

// Equal compares two rows including key order.
func (r *Row) Equal(other *Row) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, key := range r.keys {
		if other.keys[i] != key {
			return false
		}
		if !r.values[key].Equal(other.values[key]) {
			return false
		}
	}
	return true
}

func joinKeys(keys []string) string {
	var buf bytes.Buffer
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(key)
	}
	return buf.String()
}
