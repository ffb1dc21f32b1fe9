package billing

import (
	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/domain/patient"
)

// FilterAll is the conventional filter value meaning "no filtering".
const FilterAll = "All"

// Filter narrows the ledger by simple equality. Empty values and FilterAll
// both mean unfiltered.
type Filter struct {
	Doctor  string
	Patient string
	Insurer string
}

func (f Filter) matches(row *LedgerRow) bool {
	if !filterMatch(f.Doctor, row.Doctor) {
		return false
	}
	if !filterMatch(f.Patient, row.PatientName) {
		return false
	}
	return filterMatch(f.Insurer, row.InsuranceProvider)
}

func filterMatch(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// LedgerRow is one resolved billing outcome. Amounts stay numeric end to
// end; currency formatting is applied only at the presentation boundary.
type LedgerRow struct {
	Doctor            string          `json:"doctor"`
	PatientID         string          `json:"patient_id"`
	PatientName       string          `json:"patient_name"`
	Disease           string          `json:"disease"`
	ICDCode           string          `json:"icd_code"`
	DoctorCharge      decimal.Decimal `json:"doctor_charge"`
	InsuranceProvider string          `json:"insurance_provider"`
	InsurancePays     decimal.Decimal `json:"insurance_pays"`
	PatientPays       decimal.Decimal `json:"patient_pays"`
	Unresolved        []Unresolved    `json:"unresolved,omitempty"`
}

// Totals are column sums over the ledger rows.
type Totals struct {
	DoctorCharge  decimal.Decimal `json:"doctor_charge"`
	InsurancePays decimal.Decimal `json:"insurance_pays"`
	PatientPays   decimal.Decimal `json:"patient_pays"`
}

// Ledger is the billing summary: one row per patient plus column totals.
type Ledger struct {
	Rows   []LedgerRow `json:"rows"`
	Totals Totals      `json:"totals"`
}

// Aggregate resolves every patient against the snapshot and collects the
// rows that pass the filter, in input order. Reporting order is a caller
// contract, so patients are never reordered here. Totals are summed from the
// kept rows' numeric values.
func Aggregate(patients []*patient.Patient, snap *Snapshot, filter Filter) *Ledger {
	ledger := &Ledger{
		Rows: make([]LedgerRow, 0, len(patients)),
		Totals: Totals{
			DoctorCharge:  decimal.Zero,
			InsurancePays: decimal.Zero,
			PatientPays:   decimal.Zero,
		},
	}

	for _, p := range patients {
		res := Resolve(p, snap)

		doctorName, ok := snap.DoctorNames[p.AssignedDoctorID]
		if !ok {
			doctorName = "Unknown"
		}

		row := LedgerRow{
			Doctor:            doctorName,
			PatientID:         p.ID,
			PatientName:       p.Name,
			Disease:           p.Disease,
			ICDCode:           p.ICDCode,
			DoctorCharge:      res.DoctorCharge,
			InsuranceProvider: p.InsuranceProvider,
			InsurancePays:     res.InsurancePays,
			PatientPays:       res.PatientPays,
			Unresolved:        res.Unresolved,
		}
		if !filter.matches(&row) {
			continue
		}

		ledger.Rows = append(ledger.Rows, row)
		ledger.Totals.DoctorCharge = ledger.Totals.DoctorCharge.Add(res.DoctorCharge)
		ledger.Totals.InsurancePays = ledger.Totals.InsurancePays.Add(res.InsurancePays)
		ledger.Totals.PatientPays = ledger.Totals.PatientPays.Add(res.PatientPays)
	}

	return ledger
}
