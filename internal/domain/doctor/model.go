package doctor

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor maps to the doctors table. Name is unique and non-empty.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Rates     []Rate    `json:"rates,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Rate is a doctor's default charge for one diagnosis code. At most one Rate
// exists per (doctor_id, icd_code).
type Rate struct {
	DoctorID    uuid.UUID       `db:"doctor_id" json:"doctor_id"`
	ICDCode     string          `db:"icd_code" json:"icd_code"`
	Disease     string          `db:"disease" json:"disease"`
	DefaultRate decimal.Decimal `db:"default_rate" json:"default_rate"`
}
