package promotion

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scoopshop/internal/domain"
)

const promotionColumns = `id, name, COALESCE(description, ''), kind, discount, starts_on, ends_on, active, general, created_at`

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Promotion, error) {
	const q = `
SELECT ` + promotionColumns + `
FROM promotions
ORDER BY id ASC
`
	return r.scanWithScopes(ctx, q)
}

func (r *postgresRepo) ListCurrent(ctx context.Context, asOf time.Time) ([]domain.Promotion, error) {
	const q = `
SELECT ` + promotionColumns + `
FROM promotions
WHERE active AND starts_on <= $1 AND ends_on >= $1
ORDER BY id ASC
`
	return r.scanWithScopes(ctx, q, asOf)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	const q = `
SELECT ` + promotionColumns + `
FROM promotions
WHERE id = $1
`
	promos, err := r.scanWithScopes(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if len(promos) == 0 {
		return nil, domain.ErrNotFound
	}
	return &promos[0], nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Promotion) (*domain.Promotion, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO promotions (name, description, kind, discount, starts_on, ends_on, active, general)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`
	out := p
	if err := tx.QueryRow(ctx, q, p.Name, p.Description, p.Kind, p.Discount, p.StartsOn, p.EndsOn, p.Active, p.General).
		Scan(&out.ID, &out.CreatedAt); err != nil {
		r.logger.Printf("promotion repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}

	if err := replaceScopes(ctx, tx, out.ID, p.ProductIDs, p.CustomerIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("promotion repo: created id=%d name=%q kind=%s", out.ID, out.Name, out.Kind)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Promotion) (*domain.Promotion, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE promotions
SET name = $2,
    description = NULLIF($3, ''),
    kind = $4,
    discount = $5,
    starts_on = $6,
    ends_on = $7,
    active = $8,
    general = $9
WHERE id = $1
RETURNING created_at
`
	out := p
	if err := tx.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Kind, p.Discount, p.StartsOn, p.EndsOn, p.Active, p.General).
		Scan(&out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("promotion repo: update id=%d error=%v", p.ID, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM promotion_products WHERE promotion_id = $1`, p.ID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM promotion_customers WHERE promotion_id = $1`, p.ID); err != nil {
		return nil, err
	}
	if err := replaceScopes(ctx, tx, p.ID, p.ProductIDs, p.CustomerIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AssignCustomer(ctx context.Context, promotionID int64, customerID string) error {
	const q = `
INSERT INTO promotion_customers (promotion_id, customer_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, promotionID, customerID); err != nil {
		r.logger.Printf("promotion repo: assign promotion_id=%d customer_id=%s error=%v", promotionID, customerID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) FindActiveByName(ctx context.Context, fragment string) (*domain.Promotion, error) {
	const q = `
SELECT ` + promotionColumns + `
FROM promotions
WHERE active AND name ILIKE '%' || $1 || '%'
ORDER BY id ASC
LIMIT 1
`
	promos, err := r.scanWithScopes(ctx, q, fragment)
	if err != nil {
		return nil, err
	}
	if len(promos) == 0 {
		return nil, domain.ErrNotFound
	}
	return &promos[0], nil
}

func (r *postgresRepo) scanWithScopes(ctx context.Context, q string, args ...interface{}) ([]domain.Promotion, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("promotion repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Promotion
	index := map[int64]int{}
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Kind, &p.Discount, &p.StartsOn, &p.EndsOn, &p.Active, &p.General, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(result)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(result))
	for _, p := range result {
		ids = append(ids, p.ID)
	}

	prodRows, err := r.pool.Query(ctx, `
SELECT promotion_id, product_id::text
FROM promotion_products
WHERE promotion_id = ANY($1)
ORDER BY promotion_id, product_id
`, ids)
	if err != nil {
		return nil, err
	}
	defer prodRows.Close()
	for prodRows.Next() {
		var promoID int64
		var productID string
		if err := prodRows.Scan(&promoID, &productID); err != nil {
			return nil, err
		}
		i := index[promoID]
		result[i].ProductIDs = append(result[i].ProductIDs, productID)
	}
	if err := prodRows.Err(); err != nil {
		return nil, err
	}

	custRows, err := r.pool.Query(ctx, `
SELECT promotion_id, customer_id::text
FROM promotion_customers
WHERE promotion_id = ANY($1)
ORDER BY promotion_id, customer_id
`, ids)
	if err != nil {
		return nil, err
	}
	defer custRows.Close()
	for custRows.Next() {
		var promoID int64
		var customerID string
		if err := custRows.Scan(&promoID, &customerID); err != nil {
			return nil, err
		}
		i := index[promoID]
		result[i].CustomerIDs = append(result[i].CustomerIDs, customerID)
	}
	if err := custRows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func replaceScopes(ctx context.Context, tx pgx.Tx, promotionID int64, productIDs, customerIDs []string) error {
	for _, pid := range productIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO promotion_products (promotion_id, product_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, promotionID, pid); err != nil {
			return err
		}
	}
	for _, cid := range customerIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO promotion_customers (promotion_id, customer_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, promotionID, cid); err != nil {
			return err
		}
	}
	return nil
}
