package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	Contact string `json:"contact"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ToCommand converts to a bank command.
func (r *CreateCustomerRequest) ToCommand() usecase.Command {
	return usecase.Command{
		Op:      usecase.OpCreateCustomer,
		Contact: r.Contact,
		Name:    r.Name,
		Address: r.Address,
	}
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Contact       string `json:"contact"`
	AccountNumber string `json:"account_number"`
}

// ToCommand converts to a bank command.
func (r *OpenAccountRequest) ToCommand() usecase.Command {
	return usecase.Command{
		Op:            usecase.OpOpenAccount,
		Contact:       r.Contact,
		AccountNumber: r.AccountNumber,
	}
}

// AmountRequest carries the amount of a deposit or withdrawal.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// ToCommand converts to a deposit or withdrawal on account number.
func (r *AmountRequest) ToCommand(op usecase.CommandOp, number string) (usecase.Command, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return usecase.Command{}, err
	}
	return usecase.Command{
		Op:            op,
		AccountNumber: number,
		Amount:        amount,
	}, nil
}

// CreateTransferRequest represents a request to move money between accounts.
type CreateTransferRequest struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Amount      string `json:"amount"`
}

// ToCommand converts to a bank command.
func (r *CreateTransferRequest) ToCommand() (usecase.Command, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return usecase.Command{}, err
	}
	return usecase.Command{
		Op:            usecase.OpTransfer,
		AccountNumber: r.FromAccount,
		Destination:   r.ToAccount,
		Amount:        amount,
	}, nil
}

// ParseAmount parses a decimal amount string.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	return amount, nil
}
