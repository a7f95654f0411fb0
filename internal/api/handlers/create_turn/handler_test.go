package create_turn

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnService/internal/service/turns/models"
	createTurn "github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
)

type fakeUseCase struct {
	resp *models.TurnResponse
	err  error

	gotReq *createTurn.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createTurn.Request) (*models.TurnResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/turns", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	wait := 0
	uc := &fakeUseCase{resp: &models.TurnResponse{
		ID:              "3c3cb62e-9e8c-4b72-9ad4-44ee33fa80ab",
		CustomerName:    "أحمد",
		MobileNumber:    "0501234567",
		ServiceType:     "haircut",
		TurnNumber:      3,
		Status:          "waiting",
		WaitTimeMinutes: &wait,
		CreatedAt:       time.Now(),
	}}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(t, h, `{"customerName":"أحمد","mobileNumber":"0501234567","serviceType":"haircut"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateTurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "تم تأكيد الدور رقم 3!", resp.Message)
	require.NotNil(t, resp.Turn)
	assert.Equal(t, 3, resp.Turn.TurnNumber)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "0501234567", uc.gotReq.MobileNumber)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	rec := doRequest(t, h, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeValidationError, resp.Error.Code)
	assert.Equal(t, http.StatusBadRequest, resp.Error.StatusCode)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid name",
			err:        createTurn.ErrInvalidCustomerName,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeValidationError,
		},
		{
			name:       "invalid mobile",
			err:        createTurn.ErrInvalidMobileNumber,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeValidationError,
		},
		{
			name:       "duplicate active turn",
			err:        createTurn.ErrDuplicateActiveTurn,
			wantStatus: http.StatusConflict,
			wantCode:   handlers.CodeDuplicateActiveTurn,
		},
		{
			name:       "concurrency conflict",
			err:        createTurn.ErrConcurrencyConflict,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   handlers.CodeConcurrencyConflict,
		},
		{
			name:       "storage unavailable",
			err:        createTurn.ErrStorageUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   handlers.CodeStorageUnavailable,
		},
		{
			name:       "internal error",
			err:        createTurn.ErrInternal,
			wantStatus: http.StatusInternalServerError,
			wantCode:   handlers.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, noopLogger{})

			rec := doRequest(t, h, `{"customerName":"أحمد","mobileNumber":"0501234567","serviceType":"haircut"}`)

			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantStatus, resp.Error.StatusCode)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
