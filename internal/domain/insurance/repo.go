package insurance

import "context"

type Repository interface {
	// Upsert inserts or replaces the rate for (provider, icd_code).
	Upsert(ctx context.Context, r *Rate) error
	Get(ctx context.Context, provider, icdCode string) (*Rate, error)
	ListByProvider(ctx context.Context, provider string) ([]Rate, error)
	List(ctx context.Context) ([]Rate, error)
	ListProviders(ctx context.Context) ([]string, error)
}
