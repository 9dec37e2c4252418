package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Quote is the outcome of resolving one (product, quantity, customer) tuple.
// UnitPrice and Subtotal are rounded half-up to 2 decimals, ready to persist.
type Quote struct {
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	PromotionID *int64
}

// Resolve picks the candidate promotion yielding the lowest unit price and
// returns the resulting quote. Candidates are evaluated in promotion id
// ascending order and ties are broken by the first candidate reaching the
// best price, so resolution is deterministic for a fixed candidate set.
//
// Resolve performs no I/O and does not touch stock; the caller checks stock
// sufficiency and applies the decrement. Buy-one-get-one reprices the whole
// line (paid units = ceil(quantity/2)) and is never combined with other
// discount kinds in the same pass.
func Resolve(product domain.Product, quantity int, customerID *string, asOf time.Time, candidates []domain.Promotion) Quote {
	base := product.Price

	ordered := make([]domain.Promotion, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	best := base.Round(2)
	var bestID *int64
	for _, promo := range ordered {
		if !promo.InWindow(asOf) || !promo.AppliesToProduct(product.ID) || !promo.AppliesToCustomer(customerID) {
			continue
		}
		candidate, ok := candidateUnitPrice(promo, base, quantity)
		if !ok {
			continue
		}
		candidate = candidate.Round(2)
		if candidate.LessThan(best) {
			best = candidate
			id := promo.ID
			bestID = &id
		}
	}

	subtotal := best.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return Quote{UnitPrice: best, Subtotal: subtotal, PromotionID: bestID}
}

func candidateUnitPrice(promo domain.Promotion, base decimal.Decimal, quantity int) (decimal.Decimal, bool) {
	switch promo.Kind {
	case domain.PromotionPercentage:
		if promo.Discount == nil {
			return zero, false
		}
		price := base.Mul(decimal.NewFromInt(1).Sub(promo.Discount.Div(hundred)))
		if price.IsNegative() {
			price = zero
		}
		return price, true
	case domain.PromotionFixedAmount:
		if promo.Discount == nil {
			return zero, false
		}
		price := base.Sub(*promo.Discount)
		if price.IsNegative() {
			price = zero
		}
		return price, true
	case domain.PromotionBuyOneGetOne:
		if quantity < 2 {
			return zero, false
		}
		paid := int64((quantity + 1) / 2)
		return base.Mul(decimal.NewFromInt(paid)).Div(decimal.NewFromInt(int64(quantity))), true
	}
	return zero, false
}
