package dre

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is matched by every AccountNotFoundError.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCategoryNotFound is returned when a category name is not registered.
	ErrCategoryNotFound = errors.New("category not found")
)

// AccountNotFoundError reports an account identifier that a category or a
// caller referenced but the statement does not contain.
type AccountNotFoundError struct {
	Account  string
	Category string
}

// Error implements the error interface
func (e *AccountNotFoundError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("account not found: %q (category %q)", e.Account, e.Category)
	}
	return fmt.Sprintf("account not found: %q", e.Account)
}

// Is makes errors.Is(err, ErrAccountNotFound) hold.
func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

func accountNotFound(account, category string) error {
	return &AccountNotFoundError{Account: account, Category: category}
}

// withCategory stamps a category name onto an AccountNotFoundError coming
// from a lower-level table operation.
func withCategory(err error, category string) error {
	var notFound *AccountNotFoundError
	if errors.As(err, &notFound) && notFound.Category == "" {
		return accountNotFound(notFound.Account, category)
	}
	return err
}
