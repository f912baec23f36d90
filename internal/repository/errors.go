package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound matches every NotFoundError
var ErrNotFound = errors.New("record not found")

// ErrIncompleteAccount means a multi-row account insert failed and could not be rolled back
var ErrIncompleteAccount = errors.New("account insert failed and rollback did not complete")

// NotFoundError names the missing entity
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return err
}

// rollback aborts tx after cause. A failed rollback is reported as ErrIncompleteAccount.
func rollback(tx *gorm.DB, cause error) error {
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("%w: %v (rollback: %v)", ErrIncompleteAccount, cause, err)
	}
	return cause
}

// LabelCount is one bar of a grouped count
type LabelCount struct {
	Label string
	Count int64
}
