package insurance

import (
	"context"

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

func (r *repoPG) Upsert(ctx context.Context, rate *Rate) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO insurance_rates (provider, icd_code, disease, rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, icd_code)
		DO UPDATE SET disease = EXCLUDED.disease, rate = EXCLUDED.rate`,
		rate.Provider, rate.ICDCode, rate.Disease, rate.Amount)
	return err
}

func (r *repoPG) Get(ctx context.Context, provider, icdCode string) (*Rate, error) {
	var rt Rate
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT provider, icd_code, disease, rate
		FROM insurance_rates WHERE provider = $1 AND icd_code = $2`,
		provider, icdCode).Scan(&rt.Provider, &rt.ICDCode, &rt.Disease, &rt.Amount)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repoPG) ListByProvider(ctx context.Context, provider string) ([]Rate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT provider, icd_code, disease, rate
		FROM insurance_rates WHERE provider = $1 ORDER BY icd_code`, provider)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRates(rows)
}

func (r *repoPG) List(ctx context.Context) ([]Rate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT provider, icd_code, disease, rate
		FROM insurance_rates ORDER BY provider, icd_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRates(rows)
}

func (r *repoPG) ListProviders(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT DISTINCT provider FROM insurance_rates ORDER BY provider`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func scanRates(rows pgx.Rows) ([]Rate, error) {
	var rates []Rate
	for rows.Next() {
		var rt Rate
		if err := rows.Scan(&rt.Provider, &rt.ICDCode, &rt.Disease, &rt.Amount); err != nil {
			return nil, err
		}
		rates = append(rates, rt)
	}
	return rates, rows.Err()
}
