package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Totals(ctx context.Context) (*Totals, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(total), 0), MAX(placed_at)
FROM orders
`
	var t Totals
	if err := r.pool.QueryRow(ctx, q).Scan(&t.Orders, &t.Revenue, &t.LastOrder); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) SalesByCustomer(ctx context.Context) ([]CustomerSales, error) {
	const q = `
SELECT c.id::text, c.email, c.first_name, c.last_name,
       COUNT(o.id), COALESCE(SUM(o.total), 0), MAX(o.placed_at)
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id
GROUP BY c.id, c.email, c.first_name, c.last_name
ORDER BY COALESCE(SUM(o.total), 0) DESC, c.email ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CustomerSales
	for rows.Next() {
		var cs CustomerSales
		if err := rows.Scan(&cs.CustomerID, &cs.Email, &cs.FirstName, &cs.LastName, &cs.Orders, &cs.Revenue, &cs.LastOrder); err != nil {
			return nil, err
		}
		result = append(result, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	const q = `
SELECT p.id::text, p.name, COALESCE(SUM(ol.quantity), 0), COALESCE(SUM(ol.subtotal), 0)
FROM products p
JOIN order_lines ol ON ol.product_id = p.id
GROUP BY p.id, p.name
ORDER BY SUM(ol.subtotal) DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TopProduct
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Units, &tp.Revenue); err != nil {
			return nil, err
		}
		result = append(result, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
