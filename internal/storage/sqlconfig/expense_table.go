package sqlconfig

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const expensesTable = "expenses"

var expenseColumns = []any{
	"id", "expense_date", "category", "amount", "notes", "created_at", "updated_at",
}

// Ensure ExpensesTable implements IExpenseTable at compile time.
var _ IExpenseTable = (*ExpensesTable)(nil)

// ExpensesTable provides access to the expenses table.
type ExpensesTable struct {
	exec bob.Executor
}

// NewExpensesTable creates an ExpensesTable for the given database.
func NewExpensesTable(db *sql.DB) *ExpensesTable {
	return &ExpensesTable{exec: bob.NewDB(db)}
}

// List returns every expense, most recently created first.
func (t *ExpensesTable) List(ctx context.Context) ([]*Expense, error) {
	query := psql.Select(
		sm.Columns(expenseColumns...),
		sm.From(expensesTable),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[*Expense]())
	if err != nil {
		return nil, errors.Wrap(err, "expenses.list")
	}
	return rows, nil
}

// FindByID retrieves an expense by primary key.
func (t *ExpensesTable) FindByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := psql.Select(
		sm.Columns(expenseColumns...),
		sm.From(expensesTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[*Expense]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "expenses.findByID")
	}
	return row, nil
}

// Insert creates a new expense with a freshly generated id and returns the stored row.
func (t *ExpensesTable) Insert(ctx context.Context, create *ExpenseCreate) (*Expense, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "expenses.insert.newID")
	}

	query := psql.Insert(
		im.Into(expensesTable, "id", "expense_date", "category", "amount", "notes"),
		im.Values(psql.Arg(id, create.Date, create.Category, create.Amount, create.Notes)),
		im.Returning(expenseColumns...),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[*Expense]())
	if err != nil {
		return nil, errors.Wrap(err, "expenses.insert")
	}
	return row, nil
}

// Update writes the touched columns and refreshes updated_at in a single statement.
func (t *ExpensesTable) Update(ctx context.Context, id uuid.UUID, update *ExpenseUpdate) (*Expense, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(expensesTable),
	}
	if v, ok := update.Date.Get(); ok {
		queryMods = append(queryMods, um.SetCol("expense_date").ToArg(v))
	}
	if v, ok := update.Category.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category").ToArg(v))
	}
	if v, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Notes.Get(); ok {
		queryMods = append(queryMods, um.SetCol("notes").ToArg(v))
	}
	queryMods = append(queryMods,
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(expenseColumns...),
	)

	row, err := bob.One(ctx, t.exec, psql.Update(queryMods...), scan.StructMapper[*Expense]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "expenses.update")
	}
	return row, nil
}

// Delete permanently removes an expense.
func (t *ExpensesTable) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(expensesTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return errors.Wrap(err, "expenses.delete")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "expenses.delete.rowsAffected")
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
