package service

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/expense-server/internal/storage"
	"github.com/carson-networks/expense-server/internal/storage/sqlconfig"
)

// ExpenseService handles expense business logic.
type ExpenseService struct {
	storage *storage.Storage
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store *storage.Storage) *ExpenseService {
	return &ExpenseService{storage: store}
}

// ListExpenses returns every expense, most recently created first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := s.storage.Expenses.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	expenses := make([]Expense, len(rows))
	for i, row := range rows {
		expenses[i] = expenseFromStorage(row)
	}
	return expenses, nil
}

// CreateExpense validates payload and stores it as a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, payload Payload) (*Expense, error) {
	create, err := parseCreatePayload(payload)
	if err != nil {
		return nil, err
	}

	row, err := s.storage.Expenses.Insert(ctx, create)
	if err != nil {
		return nil, &StorageError{Op: "insert", Err: err}
	}

	expense := expenseFromStorage(row)
	return &expense, nil
}

// GetExpense retrieves an expense by its raw id.
func (s *ExpenseService) GetExpense(ctx context.Context, rawID string) (*Expense, error) {
	id, err := ParseExpenseID(rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.storage.Expenses.FindByID(ctx, id)
	if err != nil {
		return nil, classifyStorageError("find", err)
	}

	expense := expenseFromStorage(row)
	return &expense, nil
}

// UpdateExpense applies the recognized fields of payload to the expense with the given id.
// Either every validated field is written or none is.
func (s *ExpenseService) UpdateExpense(ctx context.Context, rawID string, payload Payload) (*Expense, error) {
	id, err := ParseExpenseID(rawID)
	if err != nil {
		return nil, err
	}

	update, err := parseUpdatePayload(payload)
	if err != nil {
		return nil, err
	}

	row, err := s.storage.Expenses.Update(ctx, id, update)
	if err != nil {
		return nil, classifyStorageError("update", err)
	}

	expense := expenseFromStorage(row)
	return &expense, nil
}

// DeleteExpense permanently removes the expense with the given id.
func (s *ExpenseService) DeleteExpense(ctx context.Context, rawID string) error {
	id, err := ParseExpenseID(rawID)
	if err != nil {
		return err
	}

	if err := s.storage.Expenses.Delete(ctx, id); err != nil {
		return classifyStorageError("delete", err)
	}
	return nil
}

func parseCreatePayload(payload Payload) (*sqlconfig.ExpenseCreate, error) {
	var missing []string
	if isBlank(payload[fieldDate]) {
		missing = append(missing, fieldDate)
	}
	if isBlank(payload[fieldCategory]) {
		missing = append(missing, fieldCategory)
	}
	if payload[fieldAmount] == nil {
		missing = append(missing, fieldAmount)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Message: "date, category, and amount are required",
			Details: map[string]any{"missing": missing},
		}
	}

	date, err := ValidateDate(payload[fieldDate])
	if err != nil {
		return nil, err
	}
	category, err := ValidateCategory(payload[fieldCategory])
	if err != nil {
		return nil, err
	}
	amount, err := NormalizeAmount(payload[fieldAmount])
	if err != nil {
		return nil, err
	}
	notes, err := NormalizeNotes(payload[fieldNotes])
	if err != nil {
		return nil, err
	}

	return &sqlconfig.ExpenseCreate{
		Date:     date,
		Category: string(category),
		Amount:   amount,
		Notes:    notes,
	}, nil
}

// parseUpdatePayload validates every recognized, non-null field. Other keys are ignored.
func parseUpdatePayload(payload Payload) (*sqlconfig.ExpenseUpdate, error) {
	update := &sqlconfig.ExpenseUpdate{}

	if raw, ok := payload[fieldDate]; ok && raw != nil {
		date, err := ValidateDate(raw)
		if err != nil {
			return nil, err
		}
		update.Date = omit.From(date)
	}
	if raw, ok := payload[fieldCategory]; ok && raw != nil {
		category, err := ValidateCategory(raw)
		if err != nil {
			return nil, err
		}
		update.Category = omit.From(string(category))
	}
	if raw, ok := payload[fieldAmount]; ok && raw != nil {
		amount, err := NormalizeAmount(raw)
		if err != nil {
			return nil, err
		}
		update.Amount = omit.From(amount)
	}
	if raw, ok := payload[fieldNotes]; ok && raw != nil {
		notes, err := NormalizeNotes(raw)
		if err != nil {
			return nil, err
		}
		update.Notes = omit.From(notes)
	}

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}
	return update, nil
}

func isBlank(raw any) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && s == ""
}

func classifyStorageError(op string, err error) error {
	if errors.Is(err, sqlconfig.ErrExpenseNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}

func expenseFromStorage(row *sqlconfig.Expense) Expense {
	return Expense{
		ID:        row.ID,
		Date:      row.Date,
		Category:  Category(row.Category),
		Amount:    row.Amount,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
