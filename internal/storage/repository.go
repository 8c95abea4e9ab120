package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expenses/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the record store: a single expenses table in a
// local SQLite file. Every mutation is one auto-committed statement.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens the database at dbPath, creating the file and
// its parent directory if needed, and initializes the schema.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection for the process lifetime.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db, path: dbPath}
	if err := repo.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Initialize ensures the expenses table exists. Safe to call repeatedly.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := RunMigrations(r.path); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert appends a record and returns its store-assigned id. The date is
// written as given.
func (r *SQLiteRepository) Insert(ctx context.Context, date, description string, amount float64) (int64, error) {
	if err := core.ValidateDescription(description); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses (date, description, amount) VALUES (?, ?, ?)",
		date, description, amount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", date,
		"description", description,
		"amount", amount)

	return id, nil
}

// ListAll returns every record ordered by stored date, ties by id.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, date, description, amount FROM expenses ORDER BY date, id",
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			e      core.Expense
			date   sql.NullString
			desc   sql.NullString
			amount sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &date, &desc, &amount); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = date.String
		e.Description = desc.String
		e.Amount = amount.Float64
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteByID removes the record with id. Deleting a missing id is a no-op.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Delete matched no expense", "id", id)
	}
	return nil
}

// SumAmounts returns the sum of all amounts, 0 for an empty store.
func (r *SQLiteRepository) SumAmounts(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, "SELECT SUM(amount) FROM expenses").Scan(&total); err != nil {
		return 0, fmt.Errorf("sum amounts: %w", err)
	}
	return total.Float64, nil
}
