package cart

import (
	"context"
	"errors"

	"scoopshop/internal/domain"
)

// Service manages one session's cart: fetch-or-create, line mutation, and
// silent pruning of lines whose product has been deleted since it was added.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	GetBySession(ctx context.Context, token string) (*domain.Cart, error)
	Create(ctx context.Context, token string, customerID *string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID string, product domain.Product, quantity int) error
	RemoveLine(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
	AttachCustomer(ctx context.Context, cartID, customerID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Fetch returns the session's active cart, creating one on first use. Lines
// referencing deleted products are removed rather than surfaced as errors.
func (s *Service) Fetch(ctx context.Context, sessionToken string, customerID *string) (*domain.Cart, error) {
	cart, err := s.fetchOrCreate(ctx, sessionToken, customerID)
	if err != nil {
		return nil, err
	}
	return s.prune(ctx, cart)
}

// AddItem snapshots the product's current name and price into the cart,
// merging quantities when the product is already present.
func (s *Service) AddItem(ctx context.Context, sessionToken string, customerID *string, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.fetchOrCreate(ctx, sessionToken, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddLine(ctx, cart.ID, *product, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetBySession(ctx, sessionToken)
}

func (s *Service) RemoveItem(ctx context.Context, sessionToken, productID string) (*domain.Cart, error) {
	cart, err := s.repo.GetBySession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLine(ctx, cart.ID, productID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.GetBySession(ctx, sessionToken)
}

func (s *Service) Clear(ctx context.Context, sessionToken string) error {
	cart, err := s.repo.GetBySession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

func (s *Service) fetchOrCreate(ctx context.Context, sessionToken string, customerID *string) (*domain.Cart, error) {
	cart, err := s.repo.GetBySession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.repo.Create(ctx, sessionToken, customerID)
		}
		return nil, err
	}
	if cart.CustomerID == nil && customerID != nil {
		if err := s.repo.AttachCustomer(ctx, cart.ID, *customerID); err != nil {
			return nil, err
		}
		cart.CustomerID = customerID
	}
	return cart, nil
}

func (s *Service) prune(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		_, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				if err := s.repo.RemoveLine(ctx, cart.ID, line.ProductID); err != nil && !errors.Is(err, domain.ErrNotFound) {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		kept = append(kept, line)
	}
	cart.Lines = kept
	return cart, nil
}
