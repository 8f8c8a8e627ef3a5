package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when a request carries no valid session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUserNotFound is returned when the session user no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a refresh token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGoalNotFound is returned when a goal is not found.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrNoteNotFound is returned when a note is not found.
	ErrNoteNotFound = errors.New("note not found")
	// ErrObjectiveNotFound is returned when an objective is not found.
	ErrObjectiveNotFound = errors.New("objective not found")
)

// ValidationError is a rejected payload. Message is shown to the caller as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation returns a ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// ForbiddenError is an ownership violation. Message is shown to the caller as is.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// Forbidden returns a ForbiddenError with the given message.
func Forbidden(message string) error {
	return &ForbiddenError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Internal reports whether the mapped error is an unexpected failure.
func (e *HTTPError) Internal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

var notFound = []struct {
	err     error
	message string
	code    string
}{
	{ErrUserNotFound, "User not found", "USER_NOT_FOUND"},
	{ErrCategoryNotFound, "Category not found", "CATEGORY_NOT_FOUND"},
	{ErrGoalNotFound, "Goal not found", "GOAL_NOT_FOUND"},
	{ErrNoteNotFound, "Note not found", "NOTE_NOT_FOUND"},
	{ErrObjectiveNotFound, "Objective not found", "OBJECTIVE_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var forbiddenErr *ForbiddenError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, "User with this email already exists", "USER_ALREADY_EXISTS")
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.As(err, &forbiddenErr):
		return NewHTTPError(http.StatusForbidden, forbiddenErr.Message, "FORBIDDEN")
	}
	for _, nf := range notFound {
		if errors.Is(err, nf.err) {
			return NewHTTPError(http.StatusNotFound, nf.message, nf.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
