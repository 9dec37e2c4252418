package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ExpiresOn   *time.Time      `json:"expiresOn,omitempty"`
	CategoryID  string          `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ExpiryWarningDays is the window within which a product counts as expiring soon.
const ExpiryWarningDays = 7

// ExpiringSoon reports whether the product expires within the warning window
// relative to the given date. Products without an expiry date never expire.
func (p Product) ExpiringSoon(asOf time.Time) bool {
	if p.ExpiresOn == nil {
		return false
	}
	return !p.ExpiresOn.After(asOf.AddDate(0, 0, ExpiryWarningDays))
}
