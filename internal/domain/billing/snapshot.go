package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/domain/doctor"
	"github.com/medbill/medbill/internal/domain/insurance"
)

// DoctorRateKey identifies a doctor's default rate for one diagnosis.
type DoctorRateKey struct {
	DoctorID uuid.UUID
	ICDCode  string
}

// InsuranceRateKey identifies an insurer's rate for one diagnosis.
type InsuranceRateKey struct {
	Provider string
	ICDCode  string
}

// OverrideKey identifies a patient-specific custom charge.
type OverrideKey struct {
	PatientID string
	DoctorID  uuid.UUID
	ICDCode   string
}

// Snapshot is an immutable view of the three rate tables plus doctor names,
// read once per aggregation pass. Resolution is a pure function of a
// Snapshot and a patient record: no lookups reach the store after the
// snapshot is built, so one pass can never see torn state.
type Snapshot struct {
	DoctorNames    map[uuid.UUID]string
	DoctorRates    map[DoctorRateKey]decimal.Decimal
	InsuranceRates map[InsuranceRateKey]decimal.Decimal
	Overrides      map[OverrideKey]decimal.Decimal
}

// NewSnapshot builds the lookup maps from canonical records.
func NewSnapshot(doctors []*doctor.Doctor, doctorRates []doctor.Rate, insuranceRates []insurance.Rate, overrides []Override) *Snapshot {
	s := &Snapshot{
		DoctorNames:    make(map[uuid.UUID]string, len(doctors)),
		DoctorRates:    make(map[DoctorRateKey]decimal.Decimal, len(doctorRates)),
		InsuranceRates: make(map[InsuranceRateKey]decimal.Decimal, len(insuranceRates)),
		Overrides:      make(map[OverrideKey]decimal.Decimal, len(overrides)),
	}
	for _, d := range doctors {
		s.DoctorNames[d.ID] = d.Name
	}
	for _, r := range doctorRates {
		s.DoctorRates[DoctorRateKey{DoctorID: r.DoctorID, ICDCode: r.ICDCode}] = r.DefaultRate
	}
	for _, r := range insuranceRates {
		s.InsuranceRates[InsuranceRateKey{Provider: r.Provider, ICDCode: r.ICDCode}] = r.Amount
	}
	for _, o := range overrides {
		s.Overrides[OverrideKey{PatientID: o.PatientID, DoctorID: o.DoctorID, ICDCode: o.ICDCode}] = o.Amount
	}
	return s
}
