package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"scoopshop/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ord domain.Order
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (customer_id)
VALUES ($1)
RETURNING id, customer_id::text, placed_at, total
`, in.CustomerID).Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.Total); err != nil {
		return nil, err
	}

	inserted := 0
	for _, line := range in.Lines {
		var p domain.Product
		err := tx.QueryRow(ctx, `
SELECT id::text, name, COALESCE(description, ''), price, stock, expires_on, category_id::text, created_at
FROM products
WHERE id = $1
FOR UPDATE
`, line.ProductID).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ExpiresOn, &p.CategoryID, &p.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Stale cart reference; the product was deleted after it was
				// added. Skip the line rather than failing the order.
				r.logger.Printf("order repo: skipping vanished product id=%s", line.ProductID)
				continue
			}
			return nil, err
		}

		if line.Quantity > p.Stock {
			return nil, fmt.Errorf("%s: %w", p.Name, domain.ErrInsufficientStock)
		}

		unit, subtotal, promoID := in.Price(p, line.Quantity)

		var ol domain.OrderLine
		if err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price, subtotal)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, product_id::text, quantity, unit_price, subtotal
`, ord.ID, p.ID, line.Quantity, unit, subtotal).
			Scan(&ol.ID, &ol.OrderID, &ol.ProductID, &ol.Quantity, &ol.UnitPrice, &ol.Subtotal); err != nil {
			return nil, err
		}
		ol.ProductName = p.Name

		if _, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $2
WHERE id = $1
`, p.ID, line.Quantity); err != nil {
			return nil, err
		}

		if promoID != nil {
			r.logger.Printf("order repo: order=%d product=%s promotion=%d unit=%s", ord.ID, p.ID, *promoID, unit)
		}
		ord.Lines = append(ord.Lines, ol)
		inserted++
	}

	if inserted == 0 {
		return nil, domain.ErrEmptyCart
	}

	if err := tx.QueryRow(ctx, `
UPDATE orders
SET total = COALESCE((
	SELECT SUM(subtotal)
	FROM order_lines
	WHERE order_id = $1
), 0)
WHERE id = $1
RETURNING total
`, ord.ID).Scan(&ord.Total); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order=%d lines=%d total=%s", ord.ID, inserted, ord.Total)
	return &ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var ord domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id, customer_id::text, placed_at, total
FROM orders
WHERE id = $1
`, id).Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	ord.Lines = lines
	return &ord, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, customer_id::text, placed_at, total
FROM orders
WHERE customer_id = $1
ORDER BY placed_at DESC
`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var ord domain.Order
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.Total); err != nil {
			return nil, err
		}
		result = append(result, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.fetchLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) CountByCustomerSince(ctx context.Context, customerID string, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM orders
WHERE customer_id = $1 AND placed_at >= $2
`, customerID, since).Scan(&n)
	return n, err
}

func (r *postgresRepo) RecomputeTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
UPDATE orders
SET total = COALESCE((
	SELECT SUM(subtotal)
	FROM order_lines
	WHERE order_id = $1
), 0)
WHERE id = $1
RETURNING total
`, orderID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, err
	}
	return total, nil
}

func (r *postgresRepo) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var orderID int64
	var productID string
	var oldQty int
	var unit decimal.Decimal
	err = tx.QueryRow(ctx, `
SELECT order_id, product_id::text, quantity, unit_price
FROM order_lines
WHERE id = $1
FOR UPDATE
`, lineID).Scan(&orderID, &productID, &oldQty, &unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	delta := quantity - oldQty
	if delta != 0 {
		var stock int
		var name string
		if err := tx.QueryRow(ctx, `
SELECT name, stock
FROM products
WHERE id = $1
FOR UPDATE
`, productID).Scan(&name, &stock); err != nil {
			return nil, err
		}
		if delta > 0 && delta > stock {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrInsufficientStock)
		}
		if _, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $2
WHERE id = $1
`, productID, delta); err != nil {
			return nil, err
		}
	}

	subtotal := unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	if _, err := tx.Exec(ctx, `
UPDATE order_lines
SET quantity = $2, subtotal = $3
WHERE id = $1
`, lineID, quantity, subtotal); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders
SET total = COALESCE((
	SELECT SUM(subtotal)
	FROM order_lines
	WHERE order_id = $1
), 0)
WHERE id = $1
`, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT ol.id, ol.order_id, ol.product_id::text, COALESCE(p.name, ''), ol.quantity, ol.unit_price, ol.subtotal
FROM order_lines ol
LEFT JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = $1
ORDER BY ol.id ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var ol domain.OrderLine
		if err := rows.Scan(&ol.ID, &ol.OrderID, &ol.ProductID, &ol.ProductName, &ol.Quantity, &ol.UnitPrice, &ol.Subtotal); err != nil {
			return nil, err
		}
		lines = append(lines, ol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
