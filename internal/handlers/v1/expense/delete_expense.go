package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/logging"
)

// DeleteExpenseInput is the Huma input for deleting an expense.
type DeleteExpenseInput struct {
	ID string `path:"id" doc:"Expense UUID"`
}

// DeleteExpenseOutput is empty: a successful delete answers 204 with no body.
type DeleteExpenseOutput struct{}

type expenseDeleter interface {
	DeleteExpense(ctx context.Context, rawID string) error
}

// DeleteExpenseHandler handles DELETE /expenses/{id}.
type DeleteExpenseHandler struct {
	ExpenseService expenseDeleter
}

// NewDeleteExpenseHandler creates a new DeleteExpenseHandler.
func NewDeleteExpenseHandler(svc expenseDeleter) *DeleteExpenseHandler {
	return &DeleteExpenseHandler{ExpenseService: svc}
}

// Register registers the delete expense endpoint with the Huma API.
func (h *DeleteExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-expense",
		Method:        http.MethodDelete,
		Path:          "/expenses/{id}",
		DefaultStatus: http.StatusNoContent,
		Summary:       "Delete an expense",
		Description:   "Permanently removes an expense.",
		Tags:          []string{"Expenses"},
	}, h.handle)
}

func (h *DeleteExpenseHandler) handle(ctx context.Context, input *DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("expenseID", input.ID)
	}

	if err := h.ExpenseService.DeleteExpense(ctx, input.ID); err != nil {
		return nil, response.FromError(ctx, err)
	}

	return &DeleteExpenseOutput{}, nil
}
