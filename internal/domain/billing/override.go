package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Override is a patient-specific custom charge that supersedes the doctor's
// default rate for one diagnosis. At most one exists per
// (patient_id, doctor_id, icd_code); writing the same key replaces the value.
type Override struct {
	PatientID string          `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID       `db:"doctor_id" json:"doctor_id"`
	ICDCode   string          `db:"icd_code" json:"icd_code"`
	Amount    decimal.Decimal `db:"custom_rate" json:"custom_rate"`
}

type OverrideRepository interface {
	// Set inserts or replaces the override for its composite key.
	Set(ctx context.Context, o *Override) error
	Get(ctx context.Context, patientID string, doctorID uuid.UUID, icdCode string) (*Override, error)
	List(ctx context.Context) ([]Override, error)
	ListByPatient(ctx context.Context, patientID string) ([]Override, error)
}
