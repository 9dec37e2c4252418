package product

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"scoopshop/internal/domain"
)

const productColumns = `id::text, name, COALESCE(description, ''), price, stock, expires_on, category_id::text, created_at`

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY name ASC
`
	return r.scanProducts(ctx, q)
}

func (r *postgresRepo) ListInStock(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE stock > 0
ORDER BY name ASC
`
	return r.scanProducts(ctx, q)
}

func (r *postgresRepo) ListExpiringBy(ctx context.Context, cutoff time.Time) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE expires_on IS NOT NULL AND expires_on <= $1
ORDER BY expires_on ASC
`
	return r.scanProducts(ctx, q, cutoff)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	// Cart lines keep product ids as opaque text, so a malformed id reaches
	// here and would fail the uuid cast instead of returning no rows.
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ExpiresOn, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, stock, expires_on, category_id)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Price, p.Stock, p.ExpiresOn, p.CategoryID).
		Scan(&out.ID, &out.Name, &out.Description, &out.Price, &out.Stock, &out.ExpiresOn, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%q", out.ID, out.Name)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if uuid.Validate(p.ID) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price = $4,
    stock = $5,
    expires_on = $6,
    category_id = $7
WHERE id = $1
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Price, p.Stock, p.ExpiresOn, p.CategoryID).
		Scan(&out.ID, &out.Name, &out.Description, &out.Price, &out.Stock, &out.ExpiresOn, &out.CategoryID, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrProductInUse
		}
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ExpiresOn, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}
