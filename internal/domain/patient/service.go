package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DuplicateIDError means the derived id already belongs to a patient with a
// different identity triple: a truncated-hash collision. The registration is
// rejected rather than silently merging two people.
type DuplicateIDError struct {
	ID           string
	ExistingName string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("patient id %s already exists for a different identity (%s)",
		e.ID, e.ExistingName)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Registration is the intake record for a new patient. When ID is empty it
// is derived from the identity triple; roster uploads that carry an explicit
// "Patient ID" column set it directly.
type Registration struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Disease           string
	ICDCode           string
	AssignedDoctorID  uuid.UUID
	InsuranceProvider string
}

// Register creates a patient with an id derived from the identity triple.
// Registering the same triple again is a no-op returning the existing
// patient, so re-ingesting an assignment sheet never duplicates anyone.
// A derived-id clash with a different triple fails with DuplicateIDError.
func (s *Service) Register(ctx context.Context, reg Registration) (*Patient, error) {
	if reg.Name == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if reg.AssignedDoctorID == uuid.Nil {
		return nil, fmt.Errorf("assigned doctor is required")
	}

	id := reg.ID
	if id == "" {
		id = DeriveID(reg.Name, reg.Email, reg.Phone)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err == nil {
		if !sameIdentity(existing, reg.Name, reg.Email, reg.Phone) {
			return nil, &DuplicateIDError{ID: id, ExistingName: existing.Name}
		}
		return existing, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	p := &Patient{
		ID:                id,
		Name:              reg.Name,
		Email:             reg.Email,
		Phone:             reg.Phone,
		Disease:           reg.Disease,
		ICDCode:           reg.ICDCode,
		AssignedDoctorID:  reg.AssignedDoctorID,
		InsuranceProvider: reg.InsuranceProvider,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}
