package validation

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
	ExpiresOn   *time.Time      `json:"expiresOn"`
	CategoryID  string          `json:"categoryId" validate:"required"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// PromotionRequest is the payload for creating or updating a promotion.
// Kind-specific invariants (discount ranges, BOGO carrying no value) are
// enforced by the promotion service at save time.
type PromotionRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Kind        string           `json:"kind" validate:"required,oneof=percentage fixed_amount bogo"`
	Discount    *decimal.Decimal `json:"discount"`
	StartsOn    time.Time        `json:"startsOn" validate:"required"`
	EndsOn      time.Time        `json:"endsOn" validate:"required"`
	Active      bool             `json:"active"`
	General     bool             `json:"general"`
	ProductIDs  []string         `json:"productIds"`
	CustomerIDs []string         `json:"customerIds"`
}

type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address"`
	RUT       string `json:"rut" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateOrderLineRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
