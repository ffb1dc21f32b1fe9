package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medbill/medbill/internal/domain/doctor"
	"github.com/medbill/medbill/internal/domain/insurance"
	"github.com/medbill/medbill/internal/domain/patient"
	"github.com/medbill/medbill/internal/platform/db"
	"github.com/medbill/medbill/internal/platform/tabular"
)

type Service struct {
	pool     *pgxpool.Pool
	doctors  *doctor.Service
	insurers *insurance.Service
	patients *patient.Service
}

func NewService(pool *pgxpool.Pool, doctors *doctor.Service, insurers *insurance.Service,
	patients *patient.Service) *Service {
	return &Service{pool: pool, doctors: doctors, insurers: insurers, patients: patients}
}

// Summary reports what one ingestion batch wrote.
type Summary struct {
	Kind           Kind   `json:"kind"`
	Source         string `json:"source"`
	Doctors        int    `json:"doctors,omitempty"`
	DoctorRates    int    `json:"doctor_rates,omitempty"`
	InsuranceRates int    `json:"insurance_rates,omitempty"`
	Patients       int    `json:"patients,omitempty"`
}

// Ingest normalizes the source, maps it to canonical records for the kind
// and commits everything in one transaction. Any error rolls the whole batch
// back: a half-ingested rate table would silently corrupt later
// aggregations. The provider argument is only consulted for insurance-rates
// sheets with a generic "Insurance Rate" column.
func (s *Service) Ingest(ctx context.Context, kind Kind, src tabular.TableSource, provider string) (*Summary, error) {
	table, err := tabular.Normalize(src)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Kind: kind, Source: table.Source}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context) error {
		switch kind {
		case KindDoctorRates:
			return s.ingestDoctorRates(ctx, table, summary)
		case KindInsuranceRates:
			return s.ingestInsuranceRates(ctx, table, provider, summary)
		case KindPatientAssignments:
			return s.ingestPatientAssignments(ctx, table, summary)
		}
		return fmt.Errorf("unknown ingestion kind %q", kind)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) ingestDoctorRates(ctx context.Context, table *tabular.Table, summary *Summary) error {
	sheets, err := MapDoctorRates(table)
	if err != nil {
		return err
	}

	for _, sheet := range sheets {
		d, err := s.doctors.EnsureDoctor(ctx, sheet.DoctorName)
		if err != nil {
			return fmt.Errorf("register doctor %q: %w", sheet.DoctorName, err)
		}
		summary.Doctors++

		for _, entry := range sheet.Rates {
			rate := &doctor.Rate{
				DoctorID:    d.ID,
				ICDCode:     entry.ICDCode,
				Disease:     entry.Disease,
				DefaultRate: entry.Rate,
			}
			if err := s.doctors.SetRate(ctx, rate); err != nil {
				return fmt.Errorf("set rate for doctor %q icd %q: %w",
					sheet.DoctorName, entry.ICDCode, err)
			}
			summary.DoctorRates++
		}
	}
	return nil
}

func (s *Service) ingestInsuranceRates(ctx context.Context, table *tabular.Table, provider string, summary *Summary) error {
	rows, err := MapInsuranceRates(table, provider)
	if err != nil {
		return err
	}

	for _, row := range rows {
		rate := &insurance.Rate{
			Provider: row.Provider,
			ICDCode:  row.ICDCode,
			Disease:  row.Disease,
			Amount:   row.Rate,
		}
		if err := s.insurers.SetRate(ctx, rate); err != nil {
			return fmt.Errorf("set rate for provider %q icd %q: %w",
				row.Provider, row.ICDCode, err)
		}
		summary.InsuranceRates++
	}
	return nil
}

func (s *Service) ingestPatientAssignments(ctx context.Context, table *tabular.Table, summary *Summary) error {
	rows, err := MapPatientAssignments(table)
	if err != nil {
		return err
	}

	for i, row := range rows {
		d, err := s.doctors.GetDoctorByName(ctx, row.DoctorName)
		if err != nil {
			if err == pgx.ErrNoRows {
				return fmt.Errorf("table %q row %d: unknown doctor %q",
					table.Source, i+1, row.DoctorName)
			}
			return err
		}

		_, err = s.patients.Register(ctx, patient.Registration{
			ID:                row.PatientID,
			Name:              row.Name,
			Email:             row.Email,
			Phone:             row.Phone,
			Disease:           row.Disease,
			ICDCode:           row.ICDCode,
			AssignedDoctorID:  d.ID,
			InsuranceProvider: row.InsuranceProvider,
		})
		if err != nil {
			return fmt.Errorf("table %q row %d: %w", table.Source, i+1, err)
		}
		summary.Patients++
	}
	return nil
}
