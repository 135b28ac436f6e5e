package formats

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"

	"datashell/pkg/shelltypes"
)

// ParseJSON parses a JSON document. Object keys keep their document order.
func ParseJSON(content string) (shelltypes.Value, error) {
	if !gjson.Valid(content) {
		return shelltypes.Value{}, errors.New("invalid JSON document")
	}
	return fromGJSON(gjson.Parse(content)), nil
}

func fromGJSON(r gjson.Result) shelltypes.Value {
	switch r.Type {
	case gjson.Null:
		return shelltypes.NewNothing()
	case gjson.False:
		return shelltypes.NewBoolean(false)
	case gjson.True:
		return shelltypes.NewBoolean(true)
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return shelltypes.NewInt(i)
		}
		return shelltypes.NewDecimal(r.Num)
	case gjson.String:
		return shelltypes.NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := []shelltypes.Value{}
			r.ForEach(func(_, value gjson.Result) bool {
				items = append(items, fromGJSON(value))
				return true
			})
			return shelltypes.NewList(items...)
		}
		row := shelltypes.NewRow()
		r.ForEach(func(key, value gjson.Result) bool {
			row.Set(key.Str, fromGJSON(value))
			return true
		})
		return shelltypes.NewRowValue(row)
	}
	return shelltypes.NewNothing()
}
