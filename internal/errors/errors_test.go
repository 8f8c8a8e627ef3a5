package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"not authenticated", ErrNotAuthenticated, http.StatusUnauthorized, "Not authenticated"},
		{"wrapped user not found", fmt.Errorf("resolve owner: %w", ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"goal not found", ErrGoalNotFound, http.StatusNotFound, "Goal not found"},
		{"duplicate user", ErrUserAlreadyExists, http.StatusConflict, "User with this email already exists"},
		{"validation", Validation("Title is required"), http.StatusBadRequest, "Title is required"},
		{"forbidden", fmt.Errorf("note: %w", Forbidden("Not authorized to delete this note")), http.StatusForbidden, "Not authorized to delete this note"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, httpErr.ToErrorResponse().Error)
			assert.Equal(t, tt.expectedStatus >= 500, httpErr.Internal())
		})
	}
}

func TestMapErrorToHTTP_Nil(t *testing.T) {
	assert.Nil(t, MapErrorToHTTP(nil))
}
