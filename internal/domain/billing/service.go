package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medbill/medbill/internal/domain/doctor"
	"github.com/medbill/medbill/internal/domain/insurance"
	"github.com/medbill/medbill/internal/domain/patient"
	"github.com/medbill/medbill/internal/platform/db"
)

type Service struct {
	pool      *pgxpool.Pool
	doctors   doctor.Repository
	insurers  insurance.Repository
	patients  patient.Repository
	overrides OverrideRepository
}

func NewService(pool *pgxpool.Pool, doctors doctor.Repository, insurers insurance.Repository,
	patients patient.Repository, overrides OverrideRepository) *Service {
	return &Service{
		pool:      pool,
		doctors:   doctors,
		insurers:  insurers,
		patients:  patients,
		overrides: overrides,
	}
}

// Snapshot reads all four tables inside one transaction and returns the
// immutable lookup view plus the patient roster in creation order.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, []*patient.Patient, error) {
	var (
		snap     *Snapshot
		patients []*patient.Patient
	)

	err := db.WithTx(ctx, s.pool, func(ctx context.Context) error {
		doctors, _, err := s.doctors.List(ctx, pgNoLimit, 0)
		if err != nil {
			return fmt.Errorf("list doctors: %w", err)
		}
		doctorRates, err := s.doctors.ListAllRates(ctx)
		if err != nil {
			return fmt.Errorf("list doctor rates: %w", err)
		}
		insuranceRates, err := s.insurers.List(ctx)
		if err != nil {
			return fmt.Errorf("list insurance rates: %w", err)
		}
		overrides, err := s.overrides.List(ctx)
		if err != nil {
			return fmt.Errorf("list overrides: %w", err)
		}
		patients, err = s.patients.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list patients: %w", err)
		}

		snap = NewSnapshot(doctors, doctorRates, insuranceRates, overrides)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return snap, patients, nil
}

// pgNoLimit is large enough to cover any realistic roster; the engine works
// on in-memory snapshots of hundreds to low-thousands of rows.
const pgNoLimit = 1 << 20

// Ledger recomputes the billing summary from a fresh snapshot. Nothing is
// cached across calls, so rate or override changes show up immediately.
func (s *Service) Ledger(ctx context.Context, filter Filter) (*Ledger, error) {
	snap, patients, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(patients, snap, filter), nil
}

// SetOverride upserts a patient-specific custom charge after checking that
// the patient and doctor actually exist.
func (s *Service) SetOverride(ctx context.Context, o *Override) error {
	if o.ICDCode == "" {
		return fmt.Errorf("icd_code is required")
	}
	if o.Amount.IsNegative() {
		return fmt.Errorf("custom_rate must not be negative")
	}
	if _, err := s.patients.GetByID(ctx, o.PatientID); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("unknown patient %q", o.PatientID)
		}
		return err
	}
	if _, err := s.doctors.GetByID(ctx, o.DoctorID); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("unknown doctor %q", o.DoctorID)
		}
		return err
	}
	return s.overrides.Set(ctx, o)
}

func (s *Service) GetOverride(ctx context.Context, patientID string, doctorID uuid.UUID, icdCode string) (*Override, error) {
	return s.overrides.Get(ctx, patientID, doctorID, icdCode)
}

func (s *Service) ListOverrides(ctx context.Context, patientID string) ([]Override, error) {
	if patientID == "" {
		return s.overrides.List(ctx)
	}
	return s.overrides.ListByPatient(ctx, patientID)
}
