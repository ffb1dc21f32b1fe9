package insurance

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type memRepo struct {
	rates []Rate
}

func (r *memRepo) Upsert(ctx context.Context, rate *Rate) error {
	for i, existing := range r.rates {
		if existing.Provider == rate.Provider && existing.ICDCode == rate.ICDCode {
			r.rates[i] = *rate
			return nil
		}
	}
	r.rates = append(r.rates, *rate)
	return nil
}

func (r *memRepo) Get(ctx context.Context, provider, icdCode string) (*Rate, error) {
	for _, rate := range r.rates {
		if rate.Provider == provider && rate.ICDCode == icdCode {
			return &rate, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memRepo) ListByProvider(ctx context.Context, provider string) ([]Rate, error) {
	var out []Rate
	for _, rate := range r.rates {
		if rate.Provider == provider {
			out = append(out, rate)
		}
	}
	return out, nil
}

func (r *memRepo) List(ctx context.Context) ([]Rate, error) {
	return r.rates, nil
}

func (r *memRepo) ListProviders(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, rate := range r.rates {
		if !seen[rate.Provider] {
			seen[rate.Provider] = true
			out = append(out, rate.Provider)
		}
	}
	return out, nil
}

func TestSetRateUpserts(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	rate := &Rate{Provider: "Medicaid", ICDCode: "B54", Disease: "Malaria",
		Amount: decimal.RequireFromString("120")}
	if err := svc.SetRate(ctx, rate); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	rate.Amount = decimal.RequireFromString("130")
	if err := svc.SetRate(ctx, rate); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	got, err := svc.GetRate(ctx, "Medicaid", "B54")
	if err != nil {
		t.Fatalf("GetRate: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("130")) {
		t.Errorf("Amount = %s, want 130", got.Amount)
	}
	if len(repo.rates) != 1 {
		t.Errorf("store has %d rates, want 1", len(repo.rates))
	}
}

func TestSetRateValidation(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	cases := []Rate{
		{Provider: "", ICDCode: "B54"},
		{Provider: "Medicaid", ICDCode: ""},
		{Provider: "Medicaid", ICDCode: "B54", Amount: decimal.RequireFromString("-5")},
	}
	for i, rate := range cases {
		if err := svc.SetRate(ctx, &rate); err == nil {
			t.Errorf("case %d: invalid rate accepted", i)
		}
	}
}

func TestListRates(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	for _, rate := range []Rate{
		{Provider: "Medicaid", ICDCode: "B54", Disease: "Malaria", Amount: decimal.RequireFromString("120")},
		{Provider: "Medicaid", ICDCode: "A01.0", Disease: "Typhoid", Amount: decimal.RequireFromString("90")},
		{Provider: "Acme Health", ICDCode: "B54", Disease: "Malaria", Amount: decimal.RequireFromString("110")},
	} {
		r := rate
		if err := svc.SetRate(ctx, &r); err != nil {
			t.Fatalf("SetRate: %v", err)
		}
	}

	// Empty provider lists everything.
	all, err := svc.ListRates(ctx, "")
	if err != nil {
		t.Fatalf("ListRates: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d rates, want 3", len(all))
	}

	medicaid, err := svc.ListRates(ctx, "Medicaid")
	if err != nil {
		t.Fatalf("ListRates: %v", err)
	}
	if len(medicaid) != 2 {
		t.Errorf("got %d Medicaid rates, want 2", len(medicaid))
	}

	providers, err := svc.ListProviders(ctx)
	if err != nil {
		t.Fatalf("ListProviders: %v", err)
	}
	if len(providers) != 2 {
		t.Errorf("providers = %v, want 2 entries", providers)
	}
}
