package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the durable record of a completed checkout. CustomerID is nullable
// so orders survive customer deletion.
type Order struct {
	ID         int64           `json:"id"`
	CustomerID *string         `json:"customerId,omitempty"`
	PlacedAt   time.Time       `json:"placedAt"`
	Total      decimal.Decimal `json:"total"`
	Lines      []OrderLine     `json:"lines,omitempty"`
}

type OrderLine struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
