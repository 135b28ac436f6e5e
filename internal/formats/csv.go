package formats

import (
	"encoding/csv"
	"strings"

	"datashell/pkg/shelltypes"
)

// ParseCSV parses comma separated values. The first record names the columns;
// every following record becomes a row. All values are strings.
func ParseCSV(content string) (shelltypes.Value, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return shelltypes.Value{}, err
	}
	if len(records) == 0 {
		return shelltypes.NewList(), nil
	}

	headers := records[0]
	rows := make([]shelltypes.Value, 0, len(records)-1)
	for _, record := range records[1:] {
		row := shelltypes.NewRow()
		for i, header := range headers {
			row.Set(header, shelltypes.NewString(record[i]))
		}
		rows = append(rows, shelltypes.NewRowValue(row))
	}
	return shelltypes.NewList(rows...), nil
}
