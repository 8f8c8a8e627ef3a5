package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "reppi/internal/errors"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantLogged bool
	}{
		{"validation", apperrors.Validation("Title is required"), http.StatusBadRequest, "Title is required", false},
		{"forbidden", apperrors.Forbidden("Not authorized to modify this note"), http.StatusForbidden, "Not authorized to modify this note", false},
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrNoteNotFound), http.StatusNotFound, "Note not found", false},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "Failed to create note", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			b := newBase(zap.New(core))
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/api/notes", nil), httptest.NewRecorder())

			err := b.fail(c, tt.err, "Failed to create note")

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantStatus, he.Code)
			assert.Equal(t, tt.wantMsg, he.Message.(apperrors.ErrorResponse).Error)
			if tt.wantLogged {
				require.Equal(t, 1, logs.Len())
				assert.Equal(t, "disk full", logs.All()[0].ContextMap()["error"])
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}
