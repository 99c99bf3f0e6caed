package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dailyoffice/internal/core"
	ports "dailyoffice/internal/sheets"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// Reader loads a dataset from a CSV file with a header row.
type Reader struct {
	path string
}

var _ ports.TableReader = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the file the reader loads.
func (r *Reader) Path() string {
	return r.path
}

// ReadTable opens and parses the file. A missing or unreadable file is an error.
func (r *Reader) ReadTable(ctx context.Context) (core.Table, error) {
	if err := ctx.Err(); err != nil {
		return core.Table{}, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return core.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return core.Table{}, fmt.Errorf("read csv %s: %w", r.path, err)
	}
	return t, nil
}

// Parse reads CSV data whose first record is the header. Short rows leave
// the trailing columns missing; cells beyond the header are dropped.
func Parse(in io.Reader) (core.Table, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return core.Table{}, nil
	}
	if err != nil {
		return core.Table{}, fmt.Errorf("header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := core.Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.Table{}, err
		}
		row := make(core.Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
