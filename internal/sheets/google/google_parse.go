package google

import (
	"fmt"
	"strings"

	"dailyoffice/internal/core"
)

// tableFromValues converts a values matrix (as returned by Sheets API) into
// a Table. The first row is the header; the API trims trailing empty cells,
// so short rows leave their last columns missing.
func tableFromValues(values [][]interface{}) core.Table {
	if len(values) == 0 {
		return core.Table{}
	}
	header := toStrings(values[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := core.Table{Header: header, Rows: make([]core.Row, 0, len(values)-1)}
	for _, raw := range values[1:] {
		cells := toStrings(raw)
		row := make(core.Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
