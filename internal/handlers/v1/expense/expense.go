package expense

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/service"
)

// Expense is the API response model for an expense.
type Expense struct {
	ID        string    `json:"id" doc:"Expense UUID"`
	Date      string    `json:"date" doc:"Expense date, YYYY-MM-DD"`
	Category  string    `json:"category" enum:"food,transport,rent,utilities,shopping,entertainment,health,income,other" doc:"Expense category"`
	Amount    float64   `json:"amount" minimum:"0" doc:"Amount rounded to two decimal places"`
	Notes     string    `json:"notes" doc:"Free-form notes, empty when not given"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt time.Time `json:"updatedAt" doc:"Time of the last successful mutation"`
}

func expenseFromService(e *service.Expense) Expense {
	return Expense{
		ID:        e.ID.String(),
		Date:      e.Date,
		Category:  string(e.Category),
		Amount:    e.Amount.InexactFloat64(),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// Location returns the resource locator of the expense with the given id.
func Location(id string) string {
	return "/expenses/" + id
}

// ExpenseService is everything the expense endpoints need from the service layer.
type ExpenseService interface {
	expenseLister
	expenseCreator
	expenseGetter
	expenseUpdater
	expenseDeleter
}

// Register registers all expense endpoints with the Huma API.
func Register(api huma.API, svc ExpenseService) {
	NewListExpensesHandler(svc).Register(api)
	NewCreateExpenseHandler(svc).Register(api)
	NewGetExpenseHandler(svc).Register(api)
	NewUpdateExpenseHandler(svc).Register(api)
	NewDeleteExpenseHandler(svc).Register(api)
}
