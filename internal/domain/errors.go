package domain

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors
	ErrNotFound         = errors.New("not found")
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrAccountNotFound  = fmt.Errorf("account %w", ErrNotFound)

	// Directory errors
	ErrDuplicateCustomer = errors.New("customer already registered")
	ErrDuplicateAccount  = errors.New("account already registered")
	ErrUnknownCustomer   = errors.New("unknown customer")

	// Ledger errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSameAccount       = errors.New("cannot transfer to same account")
)

// DuplicateCustomerError reports the contact number that is already registered.
type DuplicateCustomerError struct {
	Contact string
}

func (e DuplicateCustomerError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateCustomer, e.Contact)
}

func (e DuplicateCustomerError) Unwrap() error {
	return ErrDuplicateCustomer
}

// DuplicateAccountError reports the account number that is already registered.
type DuplicateAccountError struct {
	Number string
}

func (e DuplicateAccountError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateAccount, e.Number)
}

func (e DuplicateAccountError) Unwrap() error {
	return ErrDuplicateAccount
}
