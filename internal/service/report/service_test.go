package report

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	reportrepo "scoopshop/internal/repository/report"
)

type stubRepo struct {
	totals     *reportrepo.Totals
	byCustomer []reportrepo.CustomerSales
	top        []reportrepo.TopProduct
	limit      int
	err        error
}

func (s *stubRepo) Totals(_ context.Context) (*reportrepo.Totals, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.totals, nil
}

func (s *stubRepo) SalesByCustomer(_ context.Context) ([]reportrepo.CustomerSales, error) {
	return s.byCustomer, nil
}

func (s *stubRepo) TopProducts(_ context.Context, limit int) ([]reportrepo.TopProduct, error) {
	s.limit = limit
	return s.top, nil
}

func TestSalesComposesAggregates(t *testing.T) {
	repo := &stubRepo{
		totals: &reportrepo.Totals{Orders: 12, Revenue: decimal.NewFromInt(84000)},
		byCustomer: []reportrepo.CustomerSales{
			{CustomerID: "cust-1", Email: "ana@example.com", Orders: 4, Revenue: decimal.NewFromInt(30000)},
		},
		top: []reportrepo.TopProduct{
			{ProductID: "p1", Name: "Vainilla 1L", Units: 20, Revenue: decimal.NewFromInt(18000)},
		},
	}
	svc := New(repo)

	got, err := svc.Sales(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Totals.Orders != 12 {
		t.Fatalf("orders = %d, want 12", got.Totals.Orders)
	}
	if len(got.ByCustomer) != 1 || got.ByCustomer[0].CustomerID != "cust-1" {
		t.Fatalf("unexpected customer breakdown: %+v", got.ByCustomer)
	}
	if len(got.TopProducts) != 1 || got.TopProducts[0].Units != 20 {
		t.Fatalf("unexpected top products: %+v", got.TopProducts)
	}
	if repo.limit != topProductsLimit {
		t.Fatalf("limit = %d, want %d", repo.limit, topProductsLimit)
	}
}

func TestSalesPropagatesErrors(t *testing.T) {
	repo := &stubRepo{err: errors.New("boom")}
	svc := New(repo)

	if _, err := svc.Sales(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
