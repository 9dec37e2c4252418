package cart

import (
	"context"

	"scoopshop/internal/domain"
)

type Repository interface {
	// GetBySession returns the active cart for a session token.
	GetBySession(ctx context.Context, token string) (*domain.Cart, error)
	Create(ctx context.Context, token string, customerID *string) (*domain.Cart, error)
	// AddLine inserts a line snapshotting the product's name and price, or
	// merges the quantity into an existing line for the same product.
	AddLine(ctx context.Context, cartID string, product domain.Product, quantity int) error
	RemoveLine(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
	MarkOrdered(ctx context.Context, cartID string) error
	AttachCustomer(ctx context.Context, cartID, customerID string) error
}
