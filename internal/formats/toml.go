package formats

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"datashell/pkg/shelltypes"
)

// ParseTOML parses a TOML document. Table keys are sorted because the decoder
// does not expose document order.
func ParseTOML(content string) (shelltypes.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		return shelltypes.Value{}, err
	}
	return fromNative(doc)
}

// fromNative converts decoder output (maps, slices and scalars) into a value.
func fromNative(v any) (shelltypes.Value, error) {
	switch t := v.(type) {
	case nil:
		return shelltypes.NewNothing(), nil
	case bool:
		return shelltypes.NewBoolean(t), nil
	case int64:
		return shelltypes.NewInt(t), nil
	case int:
		return shelltypes.NewInt(int64(t)), nil
	case float64:
		return shelltypes.NewDecimal(t), nil
	case string:
		return shelltypes.NewString(t), nil
	case time.Time:
		return shelltypes.NewDate(t), nil
	case toml.LocalDate:
		return shelltypes.NewString(t.String()), nil
	case toml.LocalTime:
		return shelltypes.NewString(t.String()), nil
	case toml.LocalDateTime:
		return shelltypes.NewString(t.String()), nil
	case []any:
		items := make([]shelltypes.Value, 0, len(t))
		for _, item := range t {
			value, err := fromNative(item)
			if err != nil {
				return shelltypes.Value{}, err
			}
			items = append(items, value)
		}
		return shelltypes.NewList(items...), nil
	case map[string]any:
		row := shelltypes.NewRow()
		for _, key := range sortedKeys(t) {
			value, err := fromNative(t[key])
			if err != nil {
				return shelltypes.Value{}, err
			}
			row.Set(key, value)
		}
		return shelltypes.NewRowValue(row), nil
	}
	return shelltypes.Value{}, fmt.Errorf("unsupported value of type %T", v)
}
