package formats

import (
	"github.com/joho/godotenv"

	"datashell/pkg/shelltypes"
)

// ParseEnv parses a dotenv file into a row of string values, sorted by key.
func ParseEnv(content string) (shelltypes.Value, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return shelltypes.Value{}, err
	}

	row := shelltypes.NewRow()
	for _, key := range sortedKeys(vars) {
		row.Set(key, shelltypes.NewString(vars[key]))
	}
	return shelltypes.NewRowValue(row), nil
}
