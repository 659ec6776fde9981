package persistence

import (
	"errors"
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

// isDuplicateKey reports whether err is a unique constraint violation from
// any supported driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE "+pqUniqueViolation) ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// translateWriteError turns a unique violation into ALREADY_EXISTS naming what
// collided; other errors pass through.
func translateWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return shared.NewDomainErrorWithCause("ALREADY_EXISTS", what+" already exists", err)
	}
	return err
}

// translateReadError maps gorm's not-found to the domain not-found error
func translateReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
