package tabular

import (
	"fmt"
	"strings"
)

// MalformedTableError reports a structurally broken table: no rows at all, or
// a data row whose cell count differs from the header row. Ragged rows are
// rejected rather than padded or truncated, since silent truncation can drop
// money columns.
type MalformedTableError struct {
	Source string
	Row    int // 1-based row number, 0 when the whole table is empty
	Got    int
	Want   int
}

func (e *MalformedTableError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed table %q: no rows", e.Source)
	}
	return fmt.Sprintf("malformed table %q: row %d has %d cells, header has %d",
		e.Source, e.Row, e.Got, e.Want)
}

// Record maps a header name to the trimmed cell value of one row.
type Record map[string]string

// Table is a normalized tabular source: verbatim headers in original order
// plus one Record per data row.
type Table struct {
	Source  string
	Headers []string
	Records []Record
}

// Normalize converts a TableSource into a Table. The first row is taken as
// the header, verbatim: header matching downstream is case- and
// whitespace-sensitive. Data cells are whitespace-trimmed.
func Normalize(src TableSource) (*Table, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &MalformedTableError{Source: src.Name()}
	}

	headers := rows[0]
	t := &Table{
		Source:  src.Name(),
		Headers: headers,
		Records: make([]Record, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		if len(row) != len(headers) {
			return nil, &MalformedTableError{
				Source: src.Name(),
				Row:    i + 2,
				Got:    len(row),
				Want:   len(headers),
			}
		}
		rec := make(Record, len(headers))
		for j, h := range headers {
			rec[h] = strings.TrimSpace(row[j])
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// HasHeader reports whether the table contains the exact header name.
func (t *Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
