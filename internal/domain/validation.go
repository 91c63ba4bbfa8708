package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCustomerName  = errors.New("invalid customer name")
	ErrInvalidContact       = errors.New("invalid contact number")
	ErrInvalidAddress       = errors.New("invalid address")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrAmountTooLarge       = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall       = errors.New("amount below minimum allowed")
	ErrAmountTooPrecise     = errors.New("amount has too many decimal places")
)

// Validation constants
const (
	MaxCustomerNameLength = 255
	MaxAddressLength      = 512
	MaxAccountNumberLen   = 34
	MaxAmount             = "1000000000000" // 1 trillion
	MinAmount             = "0.01"
	AmountScale           = 2
)

var (
	contactRegex       = regexp.MustCompile(`^\+?[0-9]{3,20}$`)
	accountNumberRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	contactSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)
)

// ValidateCustomerName validates a customer's display name.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCustomerName)
	}

	if len(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCustomerName, MaxCustomerNameLength)
	}

	return nil
}

// ValidateAddress validates a postal address. Empty addresses are allowed.
func ValidateAddress(address string) error {
	if len(address) > MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidAddress, MaxAddressLength)
	}
	return nil
}

// NormalizeContact strips the separators people type in phone numbers, so
// "+1 555-0100" and "+15550100" name the same customer.
func NormalizeContact(contact string) string {
	return contactSeparators.Replace(strings.TrimSpace(contact))
}

// ValidateContact validates a contact (phone) number after normalization.
func ValidateContact(contact string) error {
	if !contactRegex.MatchString(NormalizeContact(contact)) {
		return fmt.Errorf("%w: %q", ErrInvalidContact, contact)
	}
	return nil
}

// ValidateAccountNumber validates an operator-supplied account number.
func ValidateAccountNumber(number string) error {
	if number == "" {
		return fmt.Errorf("%w: number cannot be empty", ErrInvalidAccountNumber)
	}

	if len(number) > MaxAccountNumberLen {
		return fmt.Errorf("%w: number exceeds %d characters", ErrInvalidAccountNumber, MaxAccountNumberLen)
	}

	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidAccountNumber, number)
	}

	return nil
}

// ValidateAmount validates a deposit, withdrawal or transfer amount.
// Every rejection wraps ErrInvalidAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: %w: minimum amount is %s", ErrInvalidAmount, ErrAmountTooSmall, MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %w: maximum amount is %s", ErrInvalidAmount, ErrAmountTooLarge, MaxAmount)
	}

	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: %w: at most %d decimal places", ErrInvalidAmount, ErrAmountTooPrecise, AmountScale)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
