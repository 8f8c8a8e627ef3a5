package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "reppi/internal/errors"
	"reppi/internal/service"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "structured message",
			err:        echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{Error: "Not authorized to access this goal", Code: "FORBIDDEN"}),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"Not authorized to access this goal","code":"FORBIDDEN"}`,
		},
		{
			name:       "string message",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method Not Allowed"}`,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(zap.NewNop())(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCustomValidator(t *testing.T) {
	type payload struct {
		Token string `validate:"required"`
	}
	v := &CustomValidator{validator: service.Validator()}
	assert.Error(t, v.Validate(payload{}))
	assert.NoError(t, v.Validate(payload{Token: "x"}))
}
