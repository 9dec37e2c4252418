package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

var testDay = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type stubProductRepo struct {
	products      []domain.Product
	expiringAsked time.Time
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) ListInStock(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Stock > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) ListExpiringBy(_ context.Context, cutoff time.Time) ([]domain.Product, error) {
	s.expiringAsked = cutoff
	var out []domain.Product
	for _, p := range s.products {
		if p.ExpiresOn != nil && !p.ExpiresOn.After(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.products = append(s.products, p)
	return &p, nil
}

func (s *stubProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductRepo) Delete(_ context.Context, _ string) error { return nil }

type stubCategoryRepo struct{}

func (stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) { return nil, nil }
func (stubCategoryRepo) GetByID(_ context.Context, _ string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}
func (stubCategoryRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}
func (stubCategoryRepo) Update(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}
func (stubCategoryRepo) Delete(_ context.Context, _ string) error { return nil }

type stubPromotionLister struct {
	promos []domain.Promotion
}

func (s *stubPromotionLister) ListCurrent(_ context.Context, _ time.Time) ([]domain.Promotion, error) {
	return s.promos, nil
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(products *stubProductRepo, promos *stubPromotionLister) *Service {
	svc := New(products, stubCategoryRepo{}, promos)
	svc.now = func() time.Time { return testDay }
	return svc
}

func TestStorefrontAnnotatesPromotions(t *testing.T) {
	products := &stubProductRepo{products: []domain.Product{
		{ID: "p1", Name: "Vainilla 1L", Price: price("1000"), Stock: 5, CategoryID: "c1"},
		{ID: "p2", Name: "Paleta Frutilla", Price: price("1200"), Stock: 3, CategoryID: "c1"},
		{ID: "sold-out", Name: "Chocolate 1L", Price: price("1100"), Stock: 0, CategoryID: "c1"},
	}}
	promos := &stubPromotionLister{promos: []domain.Promotion{
		{ID: 1, Name: "Verano", Kind: domain.PromotionPercentage, ProductIDs: []string{"p1"}},
		{ID: 2, Name: "Todo", Kind: domain.PromotionFixedAmount},
	}}

	views, err := newTestService(products, promos).Storefront(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected sold-out product excluded, got %d views", len(views))
	}
	if len(views[0].Promotions) != 2 {
		t.Fatalf("p1 promotions = %d, want 2", len(views[0].Promotions))
	}
	if len(views[1].Promotions) != 1 || views[1].Promotions[0].ID != 2 {
		t.Fatalf("p2 should only carry the unscoped promotion, got %+v", views[1].Promotions)
	}
}

func TestExpiringSoonUsesWarningWindow(t *testing.T) {
	inWindow := testDay.AddDate(0, 0, 3)
	beyond := testDay.AddDate(0, 0, 30)
	products := &stubProductRepo{products: []domain.Product{
		{ID: "p1", Name: "Crema Nata", ExpiresOn: &inWindow, Stock: 2},
		{ID: "p2", Name: "Toppings Mix", ExpiresOn: &beyond, Stock: 2},
		{ID: "p3", Name: "Cono Clasico", Stock: 2},
	}}

	svc := newTestService(products, &stubPromotionLister{})
	got, err := svc.ExpiringSoon(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected only the product inside the window, got %+v", got)
	}
	wantCutoff := testDay.AddDate(0, 0, domain.ExpiryWarningDays)
	if !products.expiringAsked.Equal(wantCutoff) {
		t.Fatalf("cutoff = %v, want %v", products.expiringAsked, wantCutoff)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(&stubProductRepo{}, &stubPromotionLister{})

	valid := domain.Product{Name: "Vainilla 1L", Price: price("1000"), Stock: 5, CategoryID: "c1"}
	if _, err := svc.CreateProduct(context.Background(), valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []domain.Product{
		{Price: price("1000"), Stock: 5, CategoryID: "c1"},
		{Name: "Gratis", Price: price("0"), Stock: 5, CategoryID: "c1"},
		{Name: "Negativo", Price: price("1000"), Stock: -1, CategoryID: "c1"},
		{Name: "Sin categoria", Price: price("1000"), Stock: 5},
	}
	for _, p := range bad {
		if _, err := svc.CreateProduct(context.Background(), p); err == nil {
			t.Errorf("expected validation error for %+v", p)
		}
	}
}
