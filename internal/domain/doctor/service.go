package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, name string) (*Doctor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	d := &Doctor{Name: name}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// EnsureDoctor returns the doctor with the given name, creating it if absent.
// Ingestion uses this for implicit registration from "<Name> Rate" columns.
func (s *Service) EnsureDoctor(ctx context.Context, name string) (*Doctor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	d, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return d, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	return s.CreateDoctor(ctx, name)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Rates, err = s.repo.ListRates(ctx, id)
	return d, err
}

func (s *Service) GetDoctorByName(ctx context.Context, name string) (*Doctor, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) SetRate(ctx context.Context, rate *Rate) error {
	if rate.ICDCode == "" {
		return fmt.Errorf("icd_code is required")
	}
	if rate.DefaultRate.IsNegative() {
		return fmt.Errorf("default_rate must not be negative")
	}
	return s.repo.UpsertRate(ctx, rate)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListDoctors returns doctors with their rate schedules attached.
func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	doctors, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, d := range doctors {
		if d.Rates, err = s.repo.ListRates(ctx, d.ID); err != nil {
			return nil, 0, err
		}
	}
	return doctors, total, nil
}
