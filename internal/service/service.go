package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "reppi/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator returns the validator shared by the services, for use at the HTTP layer.
func Validator() *validator.Validate {
	return validate
}

// validateInput runs struct validation and turns the first failing field into
// a user-facing message, looked up as "Field.tag" and then "Field". Fields
// without an entry in messages use fallback.
func validateInput(in interface{}, fallback string, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return apperrors.Validation(msg)
		}
		if msg, ok := messages[fe.Field()]; ok {
			return apperrors.Validation(msg)
		}
	}
	return apperrors.Validation(fallback)
}

// parseID parses a record id. Malformed ids cannot exist, so they report notFound.
func parseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// authorize fails with a ForbiddenError unless owner is the acting user.
func authorize(userID, owner uuid.UUID, message string) error {
	if userID != owner {
		return apperrors.Forbidden(message)
	}
	return nil
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
