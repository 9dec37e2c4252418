package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion kinds.
const (
	PromotionPercentage   = "percentage"
	PromotionFixedAmount  = "fixed_amount"
	PromotionBuyOneGetOne = "bogo"
)

// Promotion is a time-bounded discount rule. An empty ProductIDs set means the
// promotion applies to every product. General promotions apply to every
// customer; otherwise only the listed beneficiaries qualify.
type Promotion struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Kind        string           `json:"kind"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	StartsOn    time.Time        `json:"startsOn"`
	EndsOn      time.Time        `json:"endsOn"`
	Active      bool             `json:"active"`
	General     bool             `json:"general"`
	ProductIDs  []string         `json:"productIds,omitempty"`
	CustomerIDs []string         `json:"customerIds,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// InWindow reports whether the promotion is active and asOf falls inside its
// date range (inclusive on both ends, compared by calendar day).
func (p Promotion) InWindow(asOf time.Time) bool {
	if !p.Active {
		return false
	}
	day := truncateToDay(asOf)
	return !day.Before(truncateToDay(p.StartsOn)) && !day.After(truncateToDay(p.EndsOn))
}

// AppliesToProduct reports whether the promotion covers the given product.
func (p Promotion) AppliesToProduct(productID string) bool {
	if len(p.ProductIDs) == 0 {
		return true
	}
	for _, id := range p.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// AppliesToCustomer reports whether the promotion covers the given customer.
// A nil customer only qualifies for general promotions.
func (p Promotion) AppliesToCustomer(customerID *string) bool {
	if p.General {
		return true
	}
	if customerID == nil {
		return false
	}
	for _, id := range p.CustomerIDs {
		if id == *customerID {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
