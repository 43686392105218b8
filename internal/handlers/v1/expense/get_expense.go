package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

// GetExpenseInput is the Huma input for fetching one expense.
type GetExpenseInput struct {
	ID string `path:"id" doc:"Expense UUID"`
}

// GetExpenseOutput is the Huma output for fetching one expense.
type GetExpenseOutput struct {
	Body Expense
}

type expenseGetter interface {
	GetExpense(ctx context.Context, rawID string) (*service.Expense, error)
}

// GetExpenseHandler handles GET /expenses/{id}.
type GetExpenseHandler struct {
	ExpenseService expenseGetter
}

// NewGetExpenseHandler creates a new GetExpenseHandler.
func NewGetExpenseHandler(svc expenseGetter) *GetExpenseHandler {
	return &GetExpenseHandler{ExpenseService: svc}
}

// Register registers the get expense endpoint with the Huma API.
func (h *GetExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-expense",
		Method:      http.MethodGet,
		Path:        "/expenses/{id}",
		Summary:     "Get an expense",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *GetExpenseHandler) handle(ctx context.Context, input *GetExpenseInput) (*GetExpenseOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("expenseID", input.ID)
	}

	found, err := h.ExpenseService.GetExpense(ctx, input.ID)
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	return &GetExpenseOutput{Body: expenseFromService(found)}, nil
}
