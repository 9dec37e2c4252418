package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ShelfDays   int
	Category    string
}

type promotionSeed struct {
	Name     string
	Kind     string
	Discount *decimal.Decimal
	Days     int
	General  bool
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]string{
		"Helados":  "Iced scoops and tubs",
		"Paletas":  "Ice pops",
		"Toppings": "Extras and sauces",
	}
	categoryIDs := map[string]string{}
	for name, desc := range categories {
		id, err := ensureCategory(ctx, pool, name, desc)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{Name: "Vainilla 1L", Description: "Classic vanilla tub", Price: decimal.NewFromInt(4990), Stock: 40, ShelfDays: 60, Category: "Helados"},
		{Name: "Chocolate 1L", Description: "Dark chocolate tub", Price: decimal.NewFromInt(5490), Stock: 35, ShelfDays: 60, Category: "Helados"},
		{Name: "Paleta Frutilla", Description: "Strawberry pop", Price: decimal.NewFromInt(1200), Stock: 100, ShelfDays: 5, Category: "Paletas"},
		{Name: "Salsa Manjar", Description: "Caramel sauce", Price: decimal.NewFromInt(1990), Stock: 25, ShelfDays: 90, Category: "Toppings"},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	ten := decimal.NewFromInt(10)
	fiveHundred := decimal.NewFromInt(500)
	promotions := []promotionSeed{
		{Name: "Verano 10%", Kind: "percentage", Discount: &ten, Days: 30, General: true},
		{Name: "Descuento Paletas", Kind: "fixed_amount", Discount: &fiveHundred, Days: 14, General: true},
		{Name: "2x1 Helados", Kind: "bogo", Days: 7, General: true},
		{Name: "Fidelidad 15%", Kind: "percentage", Discount: decimalPtr(15), Days: 90, General: false},
		{Name: "Compra Alta 20%", Kind: "percentage", Discount: decimalPtr(20), Days: 90, General: false},
	}
	for _, p := range promotions {
		if err := upsertPromotion(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert promotion %s: %w", p.Name, err)
		}
	}

	return nil
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, description string) (string, error) {
	const q = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	expires := time.Now().AddDate(0, 0, p.ShelfDays)
	const q = `
INSERT INTO products (name, description, price, stock, expires_on, category_id)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.Stock, expires, categoryID)
	return err
}

func upsertPromotion(ctx context.Context, pool *pgxpool.Pool, p promotionSeed) error {
	start := time.Now()
	end := start.AddDate(0, 0, p.Days)
	const q = `
INSERT INTO promotions (name, kind, discount, starts_on, ends_on, active, general)
SELECT $1, $2, $3, $4, $5, true, $6
WHERE NOT EXISTS (SELECT 1 FROM promotions WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Kind, p.Discount, start, end, p.General)
	return err
}
