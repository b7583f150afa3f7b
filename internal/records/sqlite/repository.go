// Package sqlite is the optional persistent record backend, selected with
// DATA_BACKEND=sqlite. The default deployment keeps receipts in memory for
// the session only; this backend exists for installs that want the set to
// survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"spendview/internal/core"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
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

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements records.Appender. The batch goes in a single
// transaction so a failure leaves the set untouched.
func (r *Repository) Append(ctx context.Context, recs []core.Receipt) error {
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("receipt %s: %w", rec.ID, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO receipts
		(id, vendor, tx_date, amount_cents, category, file_name, file_type, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, q,
			rec.ID, rec.Vendor, rec.Date.String(), rec.Amount.Cents,
			string(rec.Category), rec.FileName, rec.FileType, rec.Confidence,
		); err != nil {
			return fmt.Errorf("insert receipt %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Receipt batch saved to SQLite", "count", len(recs))
	return nil
}

// List implements records.Lister, returning receipts in insertion order.
func (r *Repository) List(ctx context.Context) ([]core.Receipt, error) {
	const q = `SELECT id, vendor, tx_date, amount_cents, category, file_name, file_type, confidence
		FROM receipts ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	var out []core.Receipt
	for rows.Next() {
		var (
			rec      core.Receipt
			dateStr  string
			category string
		)
		if err := rows.Scan(&rec.ID, &rec.Vendor, &dateStr, &rec.Amount.Cents,
			&category, &rec.FileName, &rec.FileType, &rec.Confidence); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		rec.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("receipt %s has bad date %q: %w", rec.ID, dateStr, err)
		}
		rec.Category = core.Category(category)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return n, nil
}
