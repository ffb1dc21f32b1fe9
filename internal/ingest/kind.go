package ingest

import (
	"fmt"
	"strings"
)

// Kind selects which canonical entity shape a table maps to.
type Kind string

const (
	KindDoctorRates        Kind = "doctor-rates"
	KindInsuranceRates     Kind = "insurance-rates"
	KindPatientAssignments Kind = "patient-assignments"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDoctorRates, KindInsuranceRates, KindPatientAssignments:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown ingestion kind %q (want %s, %s or %s)",
		s, KindDoctorRates, KindInsuranceRates, KindPatientAssignments)
}

// SchemaMismatchError reports required columns missing for the declared kind.
// Header matching is exact, so the message carries the verbatim names.
type SchemaMismatchError struct {
	Source  string
	Kind    Kind
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %q does not match kind %s: missing column(s) %s",
		e.Source, e.Kind, strings.Join(e.Missing, ", "))
}

// InvalidRateError reports a money cell that does not parse as a decimal.
// The whole batch fails; rows are never silently dropped.
type InvalidRateError struct {
	Source string
	Row    int // 1-based data row index
	Column string
	Value  string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("table %q row %d: column %q has non-numeric rate %q",
		e.Source, e.Row, e.Column, e.Value)
}
