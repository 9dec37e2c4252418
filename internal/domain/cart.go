package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart states.
const (
	CartStateActive  = "active"
	CartStateOrdered = "ordered"
)

type Cart struct {
	ID           string     `json:"id"`
	SessionToken string     `json:"-"`
	CustomerID   *string    `json:"customerId,omitempty"`
	State        string     `json:"state"`
	CreatedAt    time.Time  `json:"createdAt"`
	Lines        []CartLine `json:"lines,omitempty"`
}

// CartLine snapshots product name and unit price at the time it was added.
// The snapshot is display-only; checkout re-resolves prices.
type CartLine struct {
	ID        string          `json:"id"`
	CartID    string          `json:"cartId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}
