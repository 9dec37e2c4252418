package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned when a checkout line asks for more
	// units than the product has on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart is returned when checkout is attempted on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductInUse is returned when deleting a product that order lines
	// still reference.
	ErrProductInUse = errors.New("product referenced by orders")

	// ErrInvalidPromotionConfig indicates a promotion violates its invariants
	// and is rejected before persistence.
	ErrInvalidPromotionConfig = errors.New("invalid promotion configuration")

	// ErrInvalidDiscountCombination indicates a buy-one-get-one promotion was
	// configured with a discount value.
	ErrInvalidDiscountCombination = errors.New("invalid discount combination")
)
