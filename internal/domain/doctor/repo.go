package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByName(ctx context.Context, name string) (*Doctor, error)
	// Delete removes the doctor and, via cascade, all of its rates.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)

	// UpsertRate inserts or replaces the rate for (doctor_id, icd_code).
	UpsertRate(ctx context.Context, r *Rate) error
	ListRates(ctx context.Context, doctorID uuid.UUID) ([]Rate, error)
	// ListAllRates returns every doctor rate, for snapshot building.
	ListAllRates(ctx context.Context) ([]Rate, error)
}
