package insurance

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) SetRate(ctx context.Context, rate *Rate) error {
	if rate.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if rate.ICDCode == "" {
		return fmt.Errorf("icd_code is required")
	}
	if rate.Amount.IsNegative() {
		return fmt.Errorf("rate must not be negative")
	}
	return s.repo.Upsert(ctx, rate)
}

func (s *Service) GetRate(ctx context.Context, provider, icdCode string) (*Rate, error) {
	return s.repo.Get(ctx, provider, icdCode)
}

func (s *Service) ListRates(ctx context.Context, provider string) ([]Rate, error) {
	if provider == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByProvider(ctx, provider)
}

func (s *Service) ListProviders(ctx context.Context) ([]string, error) {
	return s.repo.ListProviders(ctx)
}
