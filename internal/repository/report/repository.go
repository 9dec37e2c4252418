package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Totals aggregates the whole order ledger.
type Totals struct {
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	LastOrder *time.Time      `json:"lastOrder,omitempty"`
}

// CustomerSales is one row of the per-customer sales breakdown consumed by
// the export layer.
type CustomerSales struct {
	CustomerID string          `json:"customerId"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName,omitempty"`
	LastName   string          `json:"lastName,omitempty"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
	LastOrder  *time.Time      `json:"lastOrder,omitempty"`
}

// TopProduct is one row of the best-sellers breakdown.
type TopProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
	SalesByCustomer(ctx context.Context) ([]CustomerSales, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}
