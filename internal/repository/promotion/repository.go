package promotion

import (
	"context"
	"time"

	"scoopshop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	// ListCurrent returns active promotions whose window contains asOf, with
	// product and customer scopes loaded, ordered by id ascending.
	ListCurrent(ctx context.Context, asOf time.Time) ([]domain.Promotion, error)
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	Create(ctx context.Context, p domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, p domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id int64) error
	// AssignCustomer adds a beneficiary; assigning twice is a no-op.
	AssignCustomer(ctx context.Context, promotionID int64, customerID string) error
	// FindActiveByName returns the first active promotion whose name contains
	// the given fragment (case-insensitive), or domain.ErrNotFound.
	FindActiveByName(ctx context.Context, fragment string) (*domain.Promotion, error)
}
