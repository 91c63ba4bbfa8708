package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidCommand = errors.New("invalid command")
)

// CommandOp names the intent of a Command.
type CommandOp string

const (
	OpCreateCustomer CommandOp = "create_customer"
	OpFindCustomer   CommandOp = "find_customer"
	OpOpenAccount    CommandOp = "open_account"
	OpFindAccount    CommandOp = "find_account"
	OpDeposit        CommandOp = "deposit"
	OpWithdraw       CommandOp = "withdraw"
	OpTransfer       CommandOp = "transfer"
	OpBalance        CommandOp = "balance"
	OpHistory        CommandOp = "history"
)

// Command is one operator request. Only the fields its Op needs are read.
type Command struct {
	Op            CommandOp
	Name          string
	Address       string
	Contact       string
	AccountNumber string
	Destination   string
	Amount        decimal.Decimal
}

// Validate checks that the fields required by the Op are present.
func (c Command) Validate() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidCommand, c.Op, field)
	}

	switch c.Op {
	case OpCreateCustomer:
		if c.Contact == "" {
			return missing("contact")
		}
		if c.Name == "" {
			return missing("name")
		}
	case OpFindCustomer:
		if c.Contact == "" {
			return missing("contact")
		}
	case OpOpenAccount:
		if c.Contact == "" {
			return missing("contact")
		}
		if c.AccountNumber == "" {
			return missing("account number")
		}
	case OpFindAccount, OpBalance, OpHistory, OpDeposit, OpWithdraw:
		if c.AccountNumber == "" {
			return missing("account number")
		}
	case OpTransfer:
		if c.AccountNumber == "" {
			return missing("source account")
		}
		if c.Destination == "" {
			return missing("destination account")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Op)
	}
	return nil
}

// Result carries whatever Execute produced for a Command's Op.
type Result struct {
	Op          CommandOp
	Customer    *domain.Customer
	Account     *domain.Snapshot
	Transaction *domain.Transaction
	Transfer    *TransferResult
	Balance     decimal.Decimal
	History     []domain.Transaction
}

// Bank executes Commands by resolving identifiers through the directory and
// delegating ledger operations to the account service.
type Bank struct {
	directory *DirectoryUseCase
	accounts  *AccountUseCase
}

// NewBank creates a new Bank.
func NewBank(directory *DirectoryUseCase, accounts *AccountUseCase) *Bank {
	return &Bank{
		directory: directory,
		accounts:  accounts,
	}
}

// Execute runs cmd and returns its result.
func (b *Bank) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Op: cmd.Op}

	switch cmd.Op {
	case OpCreateCustomer:
		customer, err := b.directory.CreateCustomer(ctx, CreateCustomerInput{
			Name:    cmd.Name,
			Address: cmd.Address,
			Contact: cmd.Contact,
		})
		if err != nil {
			return nil, err
		}
		result.Customer = customer

	case OpFindCustomer:
		customer, err := b.directory.FindCustomer(ctx, cmd.Contact)
		if err != nil {
			return nil, err
		}
		result.Customer = customer

	case OpOpenAccount:
		account, err := b.directory.OpenAccount(ctx, OpenAccountInput{
			Contact:       cmd.Contact,
			AccountNumber: cmd.AccountNumber,
		})
		if err != nil {
			return nil, err
		}
		snap := b.accounts.Snapshot(ctx, account)
		result.Account = &snap

	case OpFindAccount:
		account, err := b.directory.FindAccount(ctx, cmd.AccountNumber)
		if err != nil {
			return nil, err
		}
		snap := b.accounts.Snapshot(ctx, account)
		result.Account = &snap

	case OpDeposit, OpWithdraw:
		account, err := b.directory.FindAccount(ctx, cmd.AccountNumber)
		if err != nil {
			return nil, err
		}

		apply := b.accounts.Deposit
		if cmd.Op == OpWithdraw {
			apply = b.accounts.Withdraw
		}
		txn, err := apply(ctx, account, cmd.Amount)
		if err != nil {
			return nil, err
		}
		result.Transaction = txn
		result.Balance = txn.BalanceAfter

	case OpTransfer:
		source, err := b.directory.FindAccount(ctx, cmd.AccountNumber)
		if err != nil {
			return nil, err
		}
		destination, err := b.directory.FindAccount(ctx, cmd.Destination)
		if err != nil {
			return nil, err
		}

		transfer, err := b.accounts.Transfer(ctx, source, destination, cmd.Amount)
		if err != nil {
			return nil, err
		}
		result.Transfer = transfer
		result.Balance = transfer.Outbound.BalanceAfter

	case OpBalance:
		account, err := b.directory.FindAccount(ctx, cmd.AccountNumber)
		if err != nil {
			return nil, err
		}
		result.Balance = b.accounts.Balance(ctx, account)

	case OpHistory:
		account, err := b.directory.FindAccount(ctx, cmd.AccountNumber)
		if err != nil {
			return nil, err
		}
		result.History = b.accounts.History(ctx, account)
	}

	return result, nil
}
