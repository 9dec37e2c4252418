package loyalty

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

// Auto-assignment thresholds, carried over from the shop's marketing rules.
const (
	frequentOrderCount = 3
	frequentWindowDays = 30
	highSpendPromoName = "Compra Alta"
	frequentPromoName  = "Fidelidad"
)

var highSpendThreshold = decimal.NewFromInt(20000)

// Service assigns marketing promotions to customers based on purchase
// behavior. It runs as a post-checkout hook; failures are logged and never
// affect the committed order.
type Service struct {
	orders orderCounter
	promos promotionAssigner
	logger *log.Logger
	now    func() time.Time
}

type orderCounter interface {
	CountByCustomerSince(ctx context.Context, customerID string, since time.Time) (int, error)
}

type promotionAssigner interface {
	FindActiveByName(ctx context.Context, fragment string) (*domain.Promotion, error)
	AssignCustomer(ctx context.Context, promotionID int64, customerID string) error
}

func New(orders orderCounter, promos promotionAssigner, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, promos: promos, logger: logger, now: time.Now}
}

// AfterCheckout applies the two assignment rules: a frequent-buyer promotion
// after three orders inside the trailing window, and a high-spend promotion
// when the order total clears the threshold. Assignments are idempotent.
func (s *Service) AfterCheckout(ctx context.Context, ord *domain.Order) {
	if ord == nil || ord.CustomerID == nil {
		return
	}
	customerID := *ord.CustomerID
	asOf := s.now()

	since := asOf.AddDate(0, 0, -frequentWindowDays)
	count, err := s.orders.CountByCustomerSince(ctx, customerID, since)
	if err != nil {
		s.logger.Printf("loyalty: count orders customer=%s error=%v", customerID, err)
	} else if count >= frequentOrderCount {
		s.assign(ctx, frequentPromoName, customerID, asOf)
	}

	if ord.Total.GreaterThanOrEqual(highSpendThreshold) {
		s.assign(ctx, highSpendPromoName, customerID, asOf)
	}
}

func (s *Service) assign(ctx context.Context, promoName, customerID string, asOf time.Time) {
	promo, err := s.promos.FindActiveByName(ctx, promoName)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("loyalty: find promotion %q error=%v", promoName, err)
		}
		return
	}
	if !promo.InWindow(asOf) {
		return
	}
	if err := s.promos.AssignCustomer(ctx, promo.ID, customerID); err != nil {
		s.logger.Printf("loyalty: assign promotion=%d customer=%s error=%v", promo.ID, customerID, err)
		return
	}
	s.logger.Printf("loyalty: assigned promotion %q to customer=%s", promo.Name, customerID)
}
