package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

// ListExpensesOutput is the Huma output for listing expenses.
type ListExpensesOutput struct {
	Body []Expense
}

// expenseLister is the interface for listing expenses.
type expenseLister interface {
	ListExpenses(ctx context.Context) ([]service.Expense, error)
}

// ListExpensesHandler handles GET /expenses.
type ListExpensesHandler struct {
	ExpenseService expenseLister
}

// NewListExpensesHandler creates a new ListExpensesHandler.
func NewListExpensesHandler(svc expenseLister) *ListExpensesHandler {
	return &ListExpensesHandler{ExpenseService: svc}
}

// Register registers the list expenses endpoint with the Huma API.
func (h *ListExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-expenses",
		Method:      http.MethodGet,
		Path:        "/expenses",
		Summary:     "List expenses",
		Description: "Returns every expense, most recently created first.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *ListExpensesHandler) handle(ctx context.Context, _ *struct{}) (*ListExpensesOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listExpensesMs")
	}
	expenses, err := h.ExpenseService.ListExpenses(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	if logData != nil {
		logData.AddData("expenseCount", len(expenses))
	}

	body := make([]Expense, len(expenses))
	for i := range expenses {
		body[i] = expenseFromService(&expenses[i])
	}

	return &ListExpensesOutput{Body: body}, nil
}
