package expense

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/handlers/response"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

// CreateExpenseInput is the Huma input for creating an expense. The body is
// decoded by the service so that field rules produce the API's own errors.
type CreateExpenseInput struct {
	RawBody []byte
}

// CreateExpenseOutput is the response for creating an expense.
type CreateExpenseOutput struct {
	Status   int
	Location string `header:"Location" doc:"Locator of the created expense"`
	Body     Expense
}

// expenseCreator is the interface for creating expenses.
type expenseCreator interface {
	CreateExpense(ctx context.Context, payload service.Payload) (*service.Expense, error)
}

// CreateExpenseHandler handles POST /expenses.
type CreateExpenseHandler struct {
	ExpenseService expenseCreator
}

// NewCreateExpenseHandler creates a new CreateExpenseHandler.
func NewCreateExpenseHandler(svc expenseCreator) *CreateExpenseHandler {
	return &CreateExpenseHandler{ExpenseService: svc}
}

// Register registers the create expense endpoint with the Huma API.
func (h *CreateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-expense",
		Method:        http.MethodPost,
		Path:          "/expenses",
		DefaultStatus: http.StatusCreated,
		Summary:       "Create an expense",
		Description:   "Creates an expense from {date, category, amount, notes?}. The amount is rounded to two decimal places.",
		Tags:          []string{"Expenses"},
	}, h.handle)
}

func (h *CreateExpenseHandler) handle(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
	logData := logging.GetLogData(ctx)

	payload, err := service.DecodePayload(input.RawBody)
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createExpenseMs")
	}
	created, err := h.ExpenseService.CreateExpense(ctx, payload)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.FromError(ctx, err)
	}

	body := expenseFromService(created)
	if logData != nil {
		logData.AddData("expenseID", body.ID)
	}

	return &CreateExpenseOutput{
		Status:   http.StatusCreated,
		Location: Location(body.ID),
		Body:     body,
	}, nil
}
