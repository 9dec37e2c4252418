package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

var testDay = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func promo(id int64, kind string, discount *decimal.Decimal) domain.Promotion {
	return domain.Promotion{
		ID:       id,
		Name:     "promo",
		Kind:     kind,
		Discount: discount,
		StartsOn: testDay.AddDate(0, 0, -1),
		EndsOn:   testDay.AddDate(0, 0, 1),
		Active:   true,
		General:  true,
	}
}

func product(price string) domain.Product {
	return domain.Product{ID: "p1", Name: "Vanilla", Price: dec(price), Stock: 10}
}

func TestResolveNoPromotions(t *testing.T) {
	for _, qty := range []int{1, 3, 7} {
		q := Resolve(product("990.00"), qty, nil, testDay, nil)
		if !q.UnitPrice.Equal(dec("990.00")) {
			t.Fatalf("qty=%d unit price = %s, want 990.00", qty, q.UnitPrice)
		}
		if q.PromotionID != nil {
			t.Fatalf("qty=%d unexpected promotion id %d", qty, *q.PromotionID)
		}
	}
}

func TestResolvePercentage(t *testing.T) {
	q := Resolve(product("1000.00"), 2, nil, testDay, []domain.Promotion{
		promo(1, domain.PromotionPercentage, decPtr("10")),
	})
	if !q.UnitPrice.Equal(dec("900.00")) {
		t.Fatalf("unit price = %s, want 900.00", q.UnitPrice)
	}
	if !q.Subtotal.Equal(dec("1800.00")) {
		t.Fatalf("subtotal = %s, want 1800.00", q.Subtotal)
	}
	if q.PromotionID == nil || *q.PromotionID != 1 {
		t.Fatalf("promotion id = %v, want 1", q.PromotionID)
	}
}

func TestResolvePercentageRoundsHalfUp(t *testing.T) {
	// 3.33 * 0.85 = 2.8305 -> 2.83; 9.99 * 0.975 = 9.74025 -> 9.74
	q := Resolve(product("3.33"), 1, nil, testDay, []domain.Promotion{
		promo(1, domain.PromotionPercentage, decPtr("15")),
	})
	if !q.UnitPrice.Equal(dec("2.83")) {
		t.Fatalf("unit price = %s, want 2.83", q.UnitPrice)
	}

	// 0.125 halves exactly: 12.50 at 99% -> 0.125 -> 0.13
	q = Resolve(product("12.50"), 1, nil, testDay, []domain.Promotion{
		promo(1, domain.PromotionPercentage, decPtr("99")),
	})
	if !q.UnitPrice.Equal(dec("0.13")) {
		t.Fatalf("unit price = %s, want 0.13", q.UnitPrice)
	}
}

func TestResolveFixedAmountClampsAtZero(t *testing.T) {
	q := Resolve(product("500.00"), 1, nil, testDay, []domain.Promotion{
		promo(1, domain.PromotionFixedAmount, decPtr("800")),
	})
	if !q.UnitPrice.Equal(dec("0.00")) {
		t.Fatalf("unit price = %s, want 0.00", q.UnitPrice)
	}

	q = Resolve(product("500.00"), 1, nil, testDay, []domain.Promotion{
		promo(1, domain.PromotionFixedAmount, decPtr("120.50")),
	})
	if !q.UnitPrice.Equal(dec("379.50")) {
		t.Fatalf("unit price = %s, want 379.50", q.UnitPrice)
	}
}

func TestResolveBuyOneGetOne(t *testing.T) {
	cases := []struct {
		qty      int
		unit     string
		subtotal string
	}{
		{1, "1000.00", "1000.00"}, // no discount below two units
		{2, "500.00", "1000.00"},
		{4, "500.00", "2000.00"},
		{5, "600.00", "3000.00"}, // pays for ceil(5/2)=3 units
	}
	for _, tc := range cases {
		q := Resolve(product("1000.00"), tc.qty, nil, testDay, []domain.Promotion{
			promo(1, domain.PromotionBuyOneGetOne, nil),
		})
		if !q.UnitPrice.Equal(dec(tc.unit)) {
			t.Fatalf("qty=%d unit price = %s, want %s", tc.qty, q.UnitPrice, tc.unit)
		}
		if !q.Subtotal.Equal(dec(tc.subtotal)) {
			t.Fatalf("qty=%d subtotal = %s, want %s", tc.qty, q.Subtotal, tc.subtotal)
		}
	}
}

func TestResolvePicksLowestUnitPrice(t *testing.T) {
	candidates := []domain.Promotion{
		promo(1, domain.PromotionFixedAmount, decPtr("100")), // 900.00
		promo(2, domain.PromotionPercentage, decPtr("25")),   // 750.00
		promo(3, domain.PromotionBuyOneGetOne, nil),          // 666.67 at qty=3
	}
	q := Resolve(product("1000.00"), 3, nil, testDay, candidates)
	if !q.UnitPrice.Equal(dec("666.67")) {
		t.Fatalf("unit price = %s, want 666.67", q.UnitPrice)
	}
	if q.PromotionID == nil || *q.PromotionID != 3 {
		t.Fatalf("promotion id = %v, want 3", q.PromotionID)
	}
}

func TestResolveTieBreaksByLowestID(t *testing.T) {
	// Same resulting price from two promotions; the lower id must win even
	// when the slice arrives out of order.
	candidates := []domain.Promotion{
		promo(7, domain.PromotionPercentage, decPtr("10")),
		promo(2, domain.PromotionFixedAmount, decPtr("100")),
	}
	q := Resolve(product("1000.00"), 1, nil, testDay, candidates)
	if !q.UnitPrice.Equal(dec("900.00")) {
		t.Fatalf("unit price = %s, want 900.00", q.UnitPrice)
	}
	if q.PromotionID == nil || *q.PromotionID != 2 {
		t.Fatalf("promotion id = %v, want 2", q.PromotionID)
	}
}

func TestResolveAudienceFiltering(t *testing.T) {
	targeted := promo(1, domain.PromotionPercentage, decPtr("50"))
	targeted.General = false
	targeted.CustomerIDs = []string{"cust-1"}

	// Anonymous shopper: targeted promotion does not apply.
	q := Resolve(product("100.00"), 1, nil, testDay, []domain.Promotion{targeted})
	if !q.UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("anonymous unit price = %s, want 100.00", q.UnitPrice)
	}

	// Beneficiary gets it.
	cust := "cust-1"
	q = Resolve(product("100.00"), 1, &cust, testDay, []domain.Promotion{targeted})
	if !q.UnitPrice.Equal(dec("50.00")) {
		t.Fatalf("beneficiary unit price = %s, want 50.00", q.UnitPrice)
	}

	// A different customer does not.
	other := "cust-2"
	q = Resolve(product("100.00"), 1, &other, testDay, []domain.Promotion{targeted})
	if !q.UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("other customer unit price = %s, want 100.00", q.UnitPrice)
	}
}

func TestResolveProductScoping(t *testing.T) {
	scoped := promo(1, domain.PromotionPercentage, decPtr("10"))
	scoped.ProductIDs = []string{"other-product"}

	q := Resolve(product("100.00"), 1, nil, testDay, []domain.Promotion{scoped})
	if !q.UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("unit price = %s, want 100.00", q.UnitPrice)
	}
}

func TestResolveWindowAndActiveFlags(t *testing.T) {
	expired := promo(1, domain.PromotionPercentage, decPtr("10"))
	expired.EndsOn = testDay.AddDate(0, 0, -2)

	inactive := promo(2, domain.PromotionPercentage, decPtr("10"))
	inactive.Active = false

	q := Resolve(product("100.00"), 1, nil, testDay, []domain.Promotion{expired, inactive})
	if !q.UnitPrice.Equal(dec("100.00")) {
		t.Fatalf("unit price = %s, want 100.00", q.UnitPrice)
	}

	// Boundary days are inclusive.
	boundary := promo(3, domain.PromotionPercentage, decPtr("10"))
	boundary.StartsOn = testDay
	boundary.EndsOn = testDay
	q = Resolve(product("100.00"), 1, nil, testDay, []domain.Promotion{boundary})
	if !q.UnitPrice.Equal(dec("90.00")) {
		t.Fatalf("unit price = %s, want 90.00", q.UnitPrice)
	}
}

func TestResolveNeverRaisesPrice(t *testing.T) {
	// A promotion whose candidate price equals or exceeds the base price
	// must not be selected.
	worse := promo(1, domain.PromotionFixedAmount, decPtr("0.00"))
	q := Resolve(product("100.00"), 1, nil, testDay, []domain.Promotion{worse})
	if q.PromotionID != nil {
		t.Fatalf("expected no promotion, got id %d", *q.PromotionID)
	}
}
