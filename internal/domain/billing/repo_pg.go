package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medbill/medbill/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type overrideRepoPG struct{ pool *pgxpool.Pool }

func NewOverrideRepoPG(pool *pgxpool.Pool) OverrideRepository {
	return &overrideRepoPG{pool: pool}
}

func (r *overrideRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *overrideRepoPG) Set(ctx context.Context, o *Override) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO overrides (patient_id, doctor_id, icd_code, custom_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (patient_id, doctor_id, icd_code)
		DO UPDATE SET custom_rate = EXCLUDED.custom_rate`,
		o.PatientID, o.DoctorID, o.ICDCode, o.Amount)
	return err
}

func (r *overrideRepoPG) Get(ctx context.Context, patientID string, doctorID uuid.UUID, icdCode string) (*Override, error) {
	var o Override
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT patient_id, doctor_id, icd_code, custom_rate
		FROM overrides
		WHERE patient_id = $1 AND doctor_id = $2 AND icd_code = $3`,
		patientID, doctorID, icdCode).
		Scan(&o.PatientID, &o.DoctorID, &o.ICDCode, &o.Amount)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *overrideRepoPG) List(ctx context.Context) ([]Override, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT patient_id, doctor_id, icd_code, custom_rate FROM overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func (r *overrideRepoPG) ListByPatient(ctx context.Context, patientID string) ([]Override, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT patient_id, doctor_id, icd_code, custom_rate
		FROM overrides WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func scanOverrides(rows pgx.Rows) ([]Override, error) {
	var overrides []Override
	for rows.Next() {
		var o Override
		if err := rows.Scan(&o.PatientID, &o.DoctorID, &o.ICDCode, &o.Amount); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
