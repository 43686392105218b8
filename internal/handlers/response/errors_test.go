package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

func encode(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestFromError_Statuses(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid id", service.ErrInvalidIdentifier, http.StatusBadRequest, "invalid id format"},
		{"no fields", service.ErrNoFieldsToUpdate, http.StatusBadRequest, "no fields to update"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "expense not found"},
		{"wrapped not found", fmt.Errorf("get: %w", service.ErrNotFound), http.StatusNotFound, "expense not found"},
		{"storage", &service.StorageError{Op: "list", Err: errors.New("dial tcp: refused")}, http.StatusInternalServerError, "Internal Server Error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			statusErr := FromError(context.Background(), tc.err)

			assert.Equal(t, tc.status, statusErr.GetStatus())
			body := encode(t, statusErr)
			errBody, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.message, errBody["message"])
			assert.NotContains(t, errBody, "details")
		})
	}
}

func TestFromError_ValidationDetails(t *testing.T) {
	_, err := service.NormalizeAmount("abc")

	statusErr := FromError(context.Background(), err)

	assert.Equal(t, http.StatusBadRequest, statusErr.GetStatus())
	body := encode(t, statusErr)
	assert.Equal(t, map[string]any{
		"message": "amount must be a number",
		"details": map[string]any{"field": "amount"},
	}, body["error"])
}

func TestFromError_RecordsCauseOnLogData(t *testing.T) {
	logData := logging.NewLogData(logging.SetupLogging(logrus.InfoLevel))
	ctx := logging.WithLogData(context.Background(), logData)

	FromError(ctx, &service.StorageError{Op: "insert", Err: errors.New("disk full")})

	entry := logData.Log()
	assert.Equal(t, "storage insert: disk full", entry.Data["error"])
}

func TestNewError_HidesServerErrorCauses(t *testing.T) {
	statusErr := NewError(http.StatusInternalServerError, "panic: nil map", errors.New("stack"))

	body := encode(t, statusErr)
	assert.Equal(t, map[string]any{"message": "Internal Server Error"}, body["error"])
}

func TestNewError_ClientErrorDetails(t *testing.T) {
	statusErr := NewError(http.StatusBadRequest, "request body too large", errors.New("limit 1MB"))

	assert.Equal(t, http.StatusBadRequest, statusErr.GetStatus())
	body := encode(t, statusErr)
	assert.Equal(t, map[string]any{
		"message": "request body too large",
		"details": []any{"limit 1MB"},
	}, body["error"])
}
