package catalog

import (
	"context"
	"errors"
	"time"

	"scoopshop/internal/domain"
	categoryrepo "scoopshop/internal/repository/category"
	productrepo "scoopshop/internal/repository/product"
)

// Service exposes the storefront catalog: products grouped with their active
// promotions, plus the admin CRUD surface.
type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
	promotions promotionLister
	now        func() time.Time
}

type promotionLister interface {
	ListCurrent(ctx context.Context, asOf time.Time) ([]domain.Promotion, error)
}

func New(products productrepo.Repository, categories categoryrepo.Repository, promotions promotionLister) *Service {
	return &Service{
		products:   products,
		categories: categories,
		promotions: promotions,
		now:        time.Now,
	}
}

// ProductView decorates a product with the promotions currently applying to it.
type ProductView struct {
	domain.Product
	Promotions []domain.Promotion `json:"promotions,omitempty"`
}

// Storefront lists in-stock products annotated with their active promotions.
func (s *Service) Storefront(ctx context.Context) ([]ProductView, error) {
	products, err := s.products.ListInStock(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.promotions.ListCurrent(ctx, s.now())
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := ProductView{Product: p}
		for _, promo := range current {
			if promo.AppliesToProduct(p.ID) {
				view.Promotions = append(view.Promotions, promo)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ExpiringSoon lists products whose expiry date falls within the warning window.
func (s *Service) ExpiringSoon(ctx context.Context) ([]domain.Product, error) {
	cutoff := s.now().AddDate(0, 0, domain.ExpiryWarningDays)
	return s.products.ListExpiringBy(ctx, cutoff)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" {
		return nil, errors.New("category name required")
	}
	return s.categories.Create(ctx, c)
}

func (s *Service) UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" {
		return nil, errors.New("category name required")
	}
	return s.categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func validateProduct(p domain.Product) error {
	if p.Name == "" {
		return errors.New("product name required")
	}
	if !p.Price.IsPositive() {
		return errors.New("price must be greater than zero")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if p.CategoryID == "" {
		return errors.New("category required")
	}
	return nil
}
