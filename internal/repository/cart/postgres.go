package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scoopshop/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetBySession(ctx context.Context, token string) (*domain.Cart, error) {
	const q = `
SELECT id::text, session_token, customer_id::text, state, created_at
FROM carts
WHERE session_token = $1 AND state = 'active'
ORDER BY created_at DESC
LIMIT 1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, token).Scan(&cart.ID, &cart.SessionToken, &cart.CustomerID, &cart.State, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, cart_id::text, product_id::text, name, quantity, unit_price, created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.CartID, &line.ProductID, &line.Name, &line.Quantity, &line.UnitPrice, &line.CreatedAt); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) Create(ctx context.Context, token string, customerID *string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (session_token, customer_id, state)
VALUES ($1, $2, 'active')
RETURNING id::text, session_token, customer_id::text, state, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, token, customerID).
		Scan(&cart.ID, &cart.SessionToken, &cart.CustomerID, &cart.State, &cart.CreatedAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, cartID string, product domain.Product, quantity int) error {
	const q = `
INSERT INTO cart_lines (cart_id, product_id, name, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, cartID, product.ID, product.Name, quantity, product.Price)
	return err
}

func (r *postgresRepo) RemoveLine(ctx context.Context, cartID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	return err
}

func (r *postgresRepo) MarkOrdered(ctx context.Context, cartID string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE carts
SET state = 'ordered'
WHERE id = $1 AND state = 'active'
`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AttachCustomer(ctx context.Context, cartID, customerID string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE carts
SET customer_id = $2
WHERE id = $1
`, cartID, customerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
