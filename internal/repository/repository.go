package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDupKey reports whether err is a unique constraint violation.
// gorm translates most driver errors to ErrDuplicatedKey; the message check
// covers drivers and wrappers that do not.
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// notFound translates gorm.ErrRecordNotFound into the given domain error.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
