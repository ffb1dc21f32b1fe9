package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeDocumentTable(t *testing.T) {
	src := &DocumentTable{
		SourceName: "rates.xlsx",
		Cells: [][]string{
			{"Disease Name", "ICD Code", "Kelvin Rate"},
			{" Malaria ", "B54", " 150 "},
			{"Typhoid", "A01.0", "200"},
		},
	}

	table, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if table.Source != "rates.xlsx" {
		t.Errorf("Source = %q, want %q", table.Source, "rates.xlsx")
	}
	if len(table.Headers) != 3 || table.Headers[2] != "Kelvin Rate" {
		t.Errorf("Headers = %v", table.Headers)
	}
	if len(table.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(table.Records))
	}
	// Data cells are trimmed; headers are kept verbatim.
	if got := table.Records[0]["Disease Name"]; got != "Malaria" {
		t.Errorf("Disease Name = %q, want %q", got, "Malaria")
	}
	if got := table.Records[0]["Kelvin Rate"]; got != "150" {
		t.Errorf("Kelvin Rate = %q, want %q", got, "150")
	}
}

func TestNormalizeDelimitedText(t *testing.T) {
	csvBody := "Disease Name,ICD Code,Insurance Rate\n" +
		"Malaria,B54,\"1,200\"\n" +
		"Typhoid,A01.0,90\n"

	src := &DelimitedText{SourceName: "acme.csv", Reader: strings.NewReader(csvBody)}
	table, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(table.Records))
	}
	if got := table.Records[0]["Insurance Rate"]; got != "1,200" {
		t.Errorf("Insurance Rate = %q, want %q", got, "1,200")
	}
}

func TestNormalizeDelimitedTextBOM(t *testing.T) {
	csvBody := "\ufeffDisease Name,ICD Code\nMalaria,B54\n"

	src := &DelimitedText{SourceName: "bom.csv", Reader: strings.NewReader(csvBody)}
	table, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !table.HasHeader("Disease Name") {
		t.Errorf("BOM not stripped from first header: %v", table.Headers)
	}
}

func TestNormalizeRaggedRow(t *testing.T) {
	src := &DocumentTable{
		SourceName: "ragged.xlsx",
		Cells: [][]string{
			{"Disease Name", "ICD Code", "Kelvin Rate"},
			{"Malaria", "B54", "150"},
			{"Typhoid", "A01.0", "200", "extra"},
		},
	}

	_, err := Normalize(src)
	var malformed *MalformedTableError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedTableError", err)
	}
	if malformed.Row != 3 {
		t.Errorf("Row = %d, want 3", malformed.Row)
	}
	if malformed.Got != 4 || malformed.Want != 3 {
		t.Errorf("Got/Want = %d/%d, want 4/3", malformed.Got, malformed.Want)
	}
}

func TestNormalizeShortRow(t *testing.T) {
	src := &DocumentTable{
		SourceName: "short.xlsx",
		Cells: [][]string{
			{"Disease Name", "ICD Code", "Kelvin Rate", "Nana Rate"},
			{"Malaria", "B54", "150"},
		},
	}

	_, err := Normalize(src)
	var malformed *MalformedTableError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedTableError", err)
	}
	if malformed.Got != 3 || malformed.Want != 4 {
		t.Errorf("Got/Want = %d/%d, want 3/4", malformed.Got, malformed.Want)
	}
}

func TestNormalizeEmptyTable(t *testing.T) {
	src := &DocumentTable{SourceName: "empty.xlsx"}

	_, err := Normalize(src)
	var malformed *MalformedTableError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedTableError", err)
	}
	if malformed.Row != 0 {
		t.Errorf("Row = %d, want 0", malformed.Row)
	}
}

func TestNormalizeHeaderOnly(t *testing.T) {
	src := &DocumentTable{
		SourceName: "headers.xlsx",
		Cells:      [][]string{{"Disease Name", "ICD Code"}},
	}

	table, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(table.Records) != 0 {
		t.Errorf("got %d records, want 0", len(table.Records))
	}
}
