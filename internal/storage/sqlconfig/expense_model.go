package sqlconfig

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrExpenseNotFound is returned when no row matches the requested id.
var ErrExpenseNotFound = errors.New("sqlconfig: expense not found")

// Expense represents an expense record.
type Expense struct {
	ID        uuid.UUID       `db:"id"`
	Date      string          `db:"expense_date"`
	Category  string          `db:"category"`
	Amount    decimal.Decimal `db:"amount"`
	Notes     string          `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// ExpenseCreate is the input for creating a new expense.
type ExpenseCreate struct {
	Date     string
	Category string
	Amount   decimal.Decimal
	Notes    string
}

// ExpenseUpdate holds the columns touched by a partial update. Unset values are left alone.
type ExpenseUpdate struct {
	Date     omit.Val[string]
	Category omit.Val[string]
	Amount   omit.Val[decimal.Decimal]
	Notes    omit.Val[string]
}

// IsEmpty reports whether the update touches no column.
func (u *ExpenseUpdate) IsEmpty() bool {
	return !u.Date.IsSet() && !u.Category.IsSet() && !u.Amount.IsSet() && !u.Notes.IsSet()
}

// IExpenseTable defines the interface for expense storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IExpenseTable interface {
	List(ctx context.Context) ([]*Expense, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	Insert(ctx context.Context, create *ExpenseCreate) (*Expense, error)
	Update(ctx context.Context, id uuid.UUID, update *ExpenseUpdate) (*Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
