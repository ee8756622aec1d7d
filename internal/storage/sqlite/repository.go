// Package sqlite mirrors the ledger into a local SQLite database. Each save
// replaces the table contents in one transaction, keeping entry order in
// the position column.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"vendas/internal/core"

	_ "modernc.org/sqlite"
)

const (
	selectSales = `SELECT sale_date, seller, product, quantity, unit_price_cents, total_cents, region
FROM sales ORDER BY position`
	deleteSales = `DELETE FROM sales`
	insertSale  = `INSERT INTO sales (position, sale_date, seller, product, quantity, unit_price_cents, total_cents, region)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

type Repository struct {
	db   *sql.DB
	path string
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, path: dbPath}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns every stored sale in entry order.
func (r *Repository) Load(ctx context.Context) ([]core.Sale, error) {
	rows, err := r.db.QueryContext(ctx, selectSales)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []core.Sale
	for rows.Next() {
		var s core.Sale
		if err := rows.Scan(&s.Date, &s.Seller, &s.Product, &s.Quantity, &s.UnitPrice.Cents, &s.Total.Cents, &s.Region); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

// Save replaces the stored ledger with sales.
func (r *Repository) Save(ctx context.Context, sales []core.Sale) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteSales); err != nil {
		return fmt.Errorf("clear sales: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSale)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range sales {
		if _, err = stmt.ExecContext(ctx, i+1, s.Date, s.Seller, s.Product, s.Quantity, s.UnitPrice.Cents, s.Total.Cents, s.Region); err != nil {
			return fmt.Errorf("insert sale %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
