package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
	promorepo "scoopshop/internal/repository/promotion"
)

type Service struct {
	repo promorepo.Repository
}

func New(repo promorepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Promotion, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListCurrent(ctx context.Context, asOf time.Time) ([]domain.Promotion, error) {
	return s.repo.ListCurrent(ctx, asOf)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the promotion and persists it. Malformed promotions are
// rejected here so they never reach price resolution.
func (s *Service) Create(ctx context.Context, p domain.Promotion) (*domain.Promotion, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p domain.Promotion) (*domain.Promotion, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AssignCustomer(ctx context.Context, promotionID int64, customerID string) error {
	return s.repo.AssignCustomer(ctx, promotionID, customerID)
}

// Validate enforces the promotion invariants: a coherent date range, a
// discount value matching the kind, and a single audience mode.
func Validate(p domain.Promotion) error {
	switch p.Kind {
	case domain.PromotionPercentage:
		if p.Discount == nil {
			return fmt.Errorf("percentage promotion requires a discount value: %w", domain.ErrInvalidPromotionConfig)
		}
		if !p.Discount.IsPositive() || p.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("percentage discount must be in (0,100]: %w", domain.ErrInvalidPromotionConfig)
		}
	case domain.PromotionFixedAmount:
		if p.Discount == nil {
			return fmt.Errorf("fixed-amount promotion requires a discount value: %w", domain.ErrInvalidPromotionConfig)
		}
		if !p.Discount.IsPositive() {
			return fmt.Errorf("fixed-amount discount must be positive: %w", domain.ErrInvalidPromotionConfig)
		}
	case domain.PromotionBuyOneGetOne:
		if p.Discount != nil {
			return fmt.Errorf("buy-one-get-one promotions carry no discount value: %w", domain.ErrInvalidDiscountCombination)
		}
	default:
		return fmt.Errorf("unknown promotion kind %q: %w", p.Kind, domain.ErrInvalidPromotionConfig)
	}

	if p.StartsOn.After(p.EndsOn) {
		return fmt.Errorf("start date after end date: %w", domain.ErrInvalidPromotionConfig)
	}
	if p.General && len(p.CustomerIDs) > 0 {
		return fmt.Errorf("promotion cannot be both general and customer-scoped: %w", domain.ErrInvalidPromotionConfig)
	}
	return nil
}
