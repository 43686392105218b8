package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/carson-networks/expense-server/internal/storage/sqlconfig"
)

type Storage struct {
	DB       *sql.DB
	Expenses sqlconfig.IExpenseTable
}

// Open connects to Postgres using the given connection string and verifies the
// connection with a ping bounded by timeout.
func Open(ctx context.Context, connStr string, timeout time.Duration) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	return New(db), nil
}

func New(db *sql.DB) *Storage {
	return &Storage{
		DB:       db,
		Expenses: sqlconfig.NewExpensesTable(db),
	}
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
