package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
	"scoopshop/internal/pricing"
	orderrepo "scoopshop/internal/repository/order"
)

// PostCheckoutHook runs after an order has been committed. Hook failures must
// not undo the order; hooks handle their own errors.
type PostCheckoutHook func(ctx context.Context, ord *domain.Order)

// Service converts a session cart into a persisted order. All line writes and
// stock decrements happen inside one transaction owned by the order
// repository; price resolution is injected per locked product row so quotes
// always see the price current at commit time.
type Service struct {
	carts  cartRepo
	orders orderRepo
	promos promotionRepo
	logger *log.Logger
	now    func() time.Time
	hooks  []PostCheckoutHook
}

type cartRepo interface {
	GetBySession(ctx context.Context, token string) (*domain.Cart, error)
	MarkOrdered(ctx context.Context, cartID string) error
}

type orderRepo interface {
	CreateOrder(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Order, error)
	RecomputeTotal(ctx context.Context, orderID int64) (decimal.Decimal, error)
}

type promotionRepo interface {
	ListCurrent(ctx context.Context, asOf time.Time) ([]domain.Promotion, error)
}

func New(carts cartRepo, orders orderRepo, promos promotionRepo, logger *log.Logger, hooks ...PostCheckoutHook) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		carts:  carts,
		orders: orders,
		promos: promos,
		logger: logger,
		now:    time.Now,
		hooks:  hooks,
	}
}

// Checkout places an order for the session's cart. The whole order succeeds
// or nothing is persisted: insufficient stock on any line rolls back every
// line and stock change. On success the cart is retired and post-checkout
// hooks run with the committed order.
func (s *Service) Checkout(ctx context.Context, sessionToken string, customerID *string) (*domain.Order, error) {
	cart, err := s.carts.GetBySession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	if customerID == nil {
		customerID = cart.CustomerID
	}

	asOf := s.now()
	candidates, err := s.promos.ListCurrent(ctx, asOf)
	if err != nil {
		return nil, err
	}

	lines := make([]orderrepo.CheckoutLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, orderrepo.CheckoutLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	ord, err := s.orders.CreateOrder(ctx, orderrepo.CreateOrderInput{
		CustomerID: customerID,
		Lines:      lines,
		Price: func(p domain.Product, quantity int) (decimal.Decimal, decimal.Decimal, *int64) {
			quote := pricing.Resolve(p, quantity, customerID, asOf, candidates)
			return quote.UnitPrice, quote.Subtotal, quote.PromotionID
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.MarkOrdered(ctx, cart.ID); err != nil {
		// The order is committed; a cart left active is an inconvenience,
		// not a correctness problem.
		s.logger.Printf("checkout: retire cart id=%s error=%v", cart.ID, err)
	}

	for _, hook := range s.hooks {
		hook(ctx, ord)
	}

	s.logger.Printf("checkout: order=%d lines=%d total=%s", ord.ID, len(ord.Lines), ord.Total)
	return ord, nil
}

// Order returns one order with its lines.
func (s *Service) Order(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// History lists a customer's orders, newest first.
func (s *Service) History(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// UpdateLineQuantity changes a persisted line's quantity. Only the delta is
// applied to product stock; the order total is recomputed afterwards.
func (s *Service) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	return s.orders.UpdateLineQuantity(ctx, lineID, quantity)
}

// RecomputeTotal re-derives an order's total from its lines.
func (s *Service) RecomputeTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return s.orders.RecomputeTotal(ctx, orderID)
}
