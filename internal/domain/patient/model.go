package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. The id is derived from the identity
// triple (see DeriveID), so re-ingesting the same patient is idempotent.
// Email and phone exist only for identity derivation and display.
type Patient struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Email             string    `db:"email" json:"email"`
	Phone             string    `db:"phone" json:"phone"`
	Disease           string    `db:"disease" json:"disease"`
	ICDCode           string    `db:"icd_code" json:"icd_code"`
	AssignedDoctorID  uuid.UUID `db:"assigned_doctor_id" json:"assigned_doctor_id"`
	InsuranceProvider string    `db:"insurance_provider" json:"insurance_provider"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
