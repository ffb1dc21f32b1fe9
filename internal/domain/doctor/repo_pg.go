package doctor

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const docCols = `id, name, created_at`

func (r *repoPG) scanRow(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.CreatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (id, name) VALUES ($1, $2)
		RETURNING created_at`,
		d.ID, d.Name).Scan(&d.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+docCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*Doctor, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+docCols+` FROM doctors WHERE name = $1`, name))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	c := r.conn(ctx)

	var total int
	if err := c.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := c.Query(ctx, `
		SELECT `+docCols+` FROM doctors
		ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, d)
	}
	return doctors, total, rows.Err()
}

func (r *repoPG) UpsertRate(ctx context.Context, rate *Rate) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor_rates (doctor_id, icd_code, disease, default_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (doctor_id, icd_code)
		DO UPDATE SET disease = EXCLUDED.disease, default_rate = EXCLUDED.default_rate`,
		rate.DoctorID, rate.ICDCode, rate.Disease, rate.DefaultRate)
	return err
}

func (r *repoPG) ListRates(ctx context.Context, doctorID uuid.UUID) ([]Rate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT doctor_id, icd_code, disease, default_rate
		FROM doctor_rates WHERE doctor_id = $1 ORDER BY icd_code`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRates(rows)
}

func (r *repoPG) ListAllRates(ctx context.Context) ([]Rate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT doctor_id, icd_code, disease, default_rate
		FROM doctor_rates ORDER BY doctor_id, icd_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRates(rows)
}

func scanRates(rows pgx.Rows) ([]Rate, error) {
	var rates []Rate
	for rows.Next() {
		var rt Rate
		if err := rows.Scan(&rt.DoctorID, &rt.ICDCode, &rt.Disease, &rt.DefaultRate); err != nil {
			return nil, err
		}
		rates = append(rates, rt)
	}
	return rates, rows.Err()
}
