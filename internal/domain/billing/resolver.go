package billing

import (
	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/domain/patient"
)

// Unresolved marks a rate lookup that found nothing and fell back to zero.
// It is surfaced as row metadata, never as an error: billing still renders a
// row for every patient.
type Unresolved string

const (
	UnresolvedDoctorRate    Unresolved = "doctor-rate"
	UnresolvedInsuranceRate Unresolved = "insurance-rate"
)

// Resolution is the billing outcome for one patient.
type Resolution struct {
	DoctorCharge  decimal.Decimal
	InsurancePays decimal.Decimal
	PatientPays   decimal.Decimal
	Unresolved    []Unresolved
}

// Resolve computes the effective doctor charge and insurer payment for one
// patient against a snapshot.
//
// An override for (patient, doctor, icd) takes strict precedence over the
// doctor's default rate; the two are never combined. With neither present
// the charge is zero and the row is flagged unresolved. The insurer payment
// comes from (provider, icd) or falls back to zero the same way.
// PatientPays may go negative (insurer pays more than the charge); it is
// deliberately not clamped, since clamping would hide upstream rate errors.
func Resolve(p *patient.Patient, snap *Snapshot) Resolution {
	var res Resolution

	if amt, ok := snap.Overrides[OverrideKey{PatientID: p.ID, DoctorID: p.AssignedDoctorID, ICDCode: p.ICDCode}]; ok {
		res.DoctorCharge = amt
	} else if amt, ok := snap.DoctorRates[DoctorRateKey{DoctorID: p.AssignedDoctorID, ICDCode: p.ICDCode}]; ok {
		res.DoctorCharge = amt
	} else {
		res.DoctorCharge = decimal.Zero
		res.Unresolved = append(res.Unresolved, UnresolvedDoctorRate)
	}

	if amt, ok := snap.InsuranceRates[InsuranceRateKey{Provider: p.InsuranceProvider, ICDCode: p.ICDCode}]; ok {
		res.InsurancePays = amt
	} else {
		res.InsurancePays = decimal.Zero
		res.Unresolved = append(res.Unresolved, UnresolvedInsuranceRate)
	}

	res.PatientPays = res.DoctorCharge.Sub(res.InsurancePays)
	return res
}
