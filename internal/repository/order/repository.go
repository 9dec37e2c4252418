package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

type CheckoutLine struct {
	ProductID string
	Quantity  int
}

// PriceFunc resolves the final unit price for a product row that is locked
// for the duration of the checkout transaction.
type PriceFunc func(p domain.Product, quantity int) (unit, subtotal decimal.Decimal, promotionID *int64)

type CreateOrderInput struct {
	CustomerID *string
	Lines      []CheckoutLine
	Price      PriceFunc
}

type Repository interface {
	// CreateOrder persists an order and its lines in one transaction,
	// decrementing stock per line. Product rows are locked so concurrent
	// checkouts of the same product serialize. Lines whose product no longer
	// exists are skipped; insufficient stock aborts the whole order.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	CountByCustomerSince(ctx context.Context, customerID string, since time.Time) (int, error)
	// RecomputeTotal sums line subtotals into the order total. Idempotent;
	// an order with no lines totals 0.00.
	RecomputeTotal(ctx context.Context, orderID int64) (decimal.Decimal, error)
	// UpdateLineQuantity rewrites a line's quantity at its resolved unit
	// price, applying only the quantity delta to product stock, then
	// recomputes the order total.
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Order, error)
}
