package billing

import (
	"encoding/csv"
	"fmt"
	"io"
)

// exportColumns is the documented ledger export order. Downstream consumers
// key on these positions; do not reorder.
var exportColumns = []string{
	"Doctor",
	"Patient ID",
	"Patient Name",
	"Disease",
	"Doctor Charge",
	"Insurance Provider",
	"Insurance Pays",
	"Patient Pays",
}

// WriteCSV serializes the ledger as delimited text. Money cells carry the
// raw decimal value with two places, no currency symbols, so any consumer
// can parse them back.
func WriteCSV(ledger *Ledger, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range ledger.Rows {
		rec := []string{
			row.Doctor,
			row.PatientID,
			row.PatientName,
			row.Disease,
			row.DoctorCharge.StringFixed(2),
			row.InsuranceProvider,
			row.InsurancePays.StringFixed(2),
			row.PatientPays.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
