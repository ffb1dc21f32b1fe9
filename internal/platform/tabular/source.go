package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// TableSource is a rectangular tabular input: the first row holds column
// headers, every following row is one record. The two variants unify the
// structured-document-table and delimited-text upload forms so nothing
// downstream sees a difference.
type TableSource interface {
	// Name identifies the source in error messages (filename, upload id).
	Name() string
	// Rows returns every row of the table, header row first.
	Rows() ([][]string, error)
}

// DocumentTable is a table already extracted from a structured document by an
// external front-end. Cells are taken as-is, header row included.
type DocumentTable struct {
	SourceName string
	Cells      [][]string
}

func (d *DocumentTable) Name() string { return d.SourceName }

func (d *DocumentTable) Rows() ([][]string, error) {
	return d.Cells, nil
}

// DelimitedText reads a table from delimited text (CSV by default).
type DelimitedText struct {
	SourceName string
	Reader     io.Reader
	Comma      rune // defaults to ','
}

func (d *DelimitedText) Name() string { return d.SourceName }

func (d *DelimitedText) Rows() ([][]string, error) {
	bufReader := bufio.NewReaderSize(d.Reader, 64*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	// Width checking is the normalizer's job so both variants report ragged
	// rows the same way.
	reader.FieldsPerRecord = -1
	if d.Comma != 0 {
		reader.Comma = d.Comma
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", d.SourceName, err)
		}
		if len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
		}
		rows = append(rows, row)
	}

	return rows, nil
}
