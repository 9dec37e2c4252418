package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

var testDay = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type stubOrderCounter struct {
	count int
	since time.Time
}

func (s *stubOrderCounter) CountByCustomerSince(_ context.Context, _ string, since time.Time) (int, error) {
	s.since = since
	return s.count, nil
}

type assignment struct {
	promotionID int64
	customerID  string
}

type stubAssigner struct {
	promos   map[string]*domain.Promotion
	assigned []assignment
}

func (s *stubAssigner) FindActiveByName(_ context.Context, fragment string) (*domain.Promotion, error) {
	p, ok := s.promos[fragment]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubAssigner) AssignCustomer(_ context.Context, promotionID int64, customerID string) error {
	s.assigned = append(s.assigned, assignment{promotionID, customerID})
	return nil
}

func windowPromo(id int64) *domain.Promotion {
	return &domain.Promotion{
		ID:       id,
		Kind:     domain.PromotionPercentage,
		StartsOn: testDay.AddDate(0, 0, -10),
		EndsOn:   testDay.AddDate(0, 0, 10),
		Active:   true,
	}
}

func order(customerID string, total string) *domain.Order {
	t, err := decimal.NewFromString(total)
	if err != nil {
		panic(err)
	}
	return &domain.Order{ID: 1, CustomerID: &customerID, Total: t}
}

func newTestService(orders *stubOrderCounter, promos *stubAssigner) *Service {
	svc := New(orders, promos, nil)
	svc.now = func() time.Time { return testDay }
	return svc
}

func TestAfterCheckoutFrequentBuyer(t *testing.T) {
	orders := &stubOrderCounter{count: 3}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{frequentPromoName: windowPromo(7)}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), order("cust-1", "1500"))

	if len(promos.assigned) != 1 {
		t.Fatalf("expected one assignment, got %d", len(promos.assigned))
	}
	if promos.assigned[0] != (assignment{7, "cust-1"}) {
		t.Fatalf("unexpected assignment: %+v", promos.assigned[0])
	}
	wantSince := testDay.AddDate(0, 0, -frequentWindowDays)
	if !orders.since.Equal(wantSince) {
		t.Fatalf("window start = %v, want %v", orders.since, wantSince)
	}
}

func TestAfterCheckoutBelowOrderCount(t *testing.T) {
	orders := &stubOrderCounter{count: 2}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{frequentPromoName: windowPromo(7)}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), order("cust-1", "1500"))

	if len(promos.assigned) != 0 {
		t.Fatalf("expected no assignment, got %+v", promos.assigned)
	}
}

func TestAfterCheckoutHighSpend(t *testing.T) {
	orders := &stubOrderCounter{count: 1}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{highSpendPromoName: windowPromo(9)}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), order("cust-1", "20000"))

	if len(promos.assigned) != 1 || promos.assigned[0].promotionID != 9 {
		t.Fatalf("expected high spend assignment, got %+v", promos.assigned)
	}

	promos.assigned = nil
	svc.AfterCheckout(context.Background(), order("cust-1", "19999.99"))
	if len(promos.assigned) != 0 {
		t.Fatalf("expected no assignment below threshold, got %+v", promos.assigned)
	}
}

func TestAfterCheckoutBothRules(t *testing.T) {
	orders := &stubOrderCounter{count: 5}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{
		frequentPromoName:  windowPromo(7),
		highSpendPromoName: windowPromo(9),
	}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), order("cust-1", "25000"))

	if len(promos.assigned) != 2 {
		t.Fatalf("expected two assignments, got %+v", promos.assigned)
	}
}

func TestAfterCheckoutAnonymousOrder(t *testing.T) {
	orders := &stubOrderCounter{count: 10}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{frequentPromoName: windowPromo(7)}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), &domain.Order{ID: 1, Total: decimal.NewFromInt(50000)})
	svc.AfterCheckout(context.Background(), nil)

	if len(promos.assigned) != 0 {
		t.Fatalf("expected no assignment for anonymous order, got %+v", promos.assigned)
	}
}

func TestAfterCheckoutExpiredPromotionSkipped(t *testing.T) {
	stale := windowPromo(7)
	stale.EndsOn = testDay.AddDate(0, 0, -1)

	orders := &stubOrderCounter{count: 3}
	promos := &stubAssigner{promos: map[string]*domain.Promotion{frequentPromoName: stale}}
	svc := newTestService(orders, promos)

	svc.AfterCheckout(context.Background(), order("cust-1", "1500"))

	if len(promos.assigned) != 0 {
		t.Fatalf("expected no assignment for expired promotion, got %+v", promos.assigned)
	}
}
