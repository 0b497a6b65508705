package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a get or delete by id matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation is returned when a write breaks a referential or
	// integrity constraint, e.g. a reading for a sensor that does not exist.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrConnectivity covers an unreachable store and failed statements.
	ErrConnectivity = errors.New("storage failure")
)

// classify maps a storage error onto the package sentinels.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, ErrConstraintViolation),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrDuplicatedKey),
		isConstraintMessage(err):
		return fmt.Errorf("%s: %w: %v", op, ErrConstraintViolation, err)
	case errors.Is(err, ErrConnectivity):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrConnectivity, err)
	}
}

// isConstraintMessage catches driver errors the dialect does not translate.
func isConstraintMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "violates foreign key") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates not-null") ||
		strings.Contains(msg, "violates unique")
}
