package product

import (
	"context"
	"time"

	"scoopshop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListInStock(ctx context.Context) ([]domain.Product, error)
	ListExpiringBy(ctx context.Context, cutoff time.Time) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
