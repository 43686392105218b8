package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

// UpdateExpenseInput is the Huma input for partially updating an expense.
type UpdateExpenseInput struct {
	ID      string `path:"id" doc:"Expense UUID"`
	RawBody []byte
}

// UpdateExpenseOutput is the Huma output for partially updating an expense.
type UpdateExpenseOutput struct {
	Body Expense
}

// expenseUpdater is the interface for partially updating expenses.
type expenseUpdater interface {
	UpdateExpense(ctx context.Context, rawID string, payload service.Payload) (*service.Expense, error)
}

// UpdateExpenseHandler handles PATCH /expenses/{id}.
type UpdateExpenseHandler struct {
	ExpenseService expenseUpdater
}

// NewUpdateExpenseHandler creates a new UpdateExpenseHandler.
func NewUpdateExpenseHandler(svc expenseUpdater) *UpdateExpenseHandler {
	return &UpdateExpenseHandler{ExpenseService: svc}
}

// Register registers the update expense endpoint with the Huma API.
func (h *UpdateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-expense",
		Method:      http.MethodPatch,
		Path:        "/expenses/{id}",
		Summary:     "Update an expense",
		Description: "Updates any subset of date, category, amount and notes. Other keys are ignored.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *UpdateExpenseHandler) handle(ctx context.Context, input *UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("expenseID", input.ID)
	}

	payload, err := service.DecodePayload(input.RawBody)
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateExpenseMs")
	}
	updated, err := h.ExpenseService.UpdateExpense(ctx, input.ID, payload)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	return &UpdateExpenseOutput{Body: expenseFromService(updated)}, nil
}
