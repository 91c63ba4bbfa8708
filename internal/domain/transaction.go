package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies what a recorded transaction did to an account.
type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "deposit"
	TransactionKindWithdrawal  TransactionKind = "withdrawal"
	TransactionKindTransferOut TransactionKind = "transfer_out"
	TransactionKindTransferIn  TransactionKind = "transfer_in"
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindDeposit, TransactionKindWithdrawal,
		TransactionKindTransferOut, TransactionKindTransferIn:
		return true
	}
	return false
}

// IsDebit reports whether the kind takes money out of the account.
func (k TransactionKind) IsDebit() bool {
	return k == TransactionKindWithdrawal || k == TransactionKindTransferOut
}

// Transaction is one recorded effect on an account's history.
type Transaction struct {
	CreatedAt     time.Time
	ID            string
	AccountNumber string
	Kind          TransactionKind
	// Counterparty is the other account of a transfer; empty otherwise.
	Counterparty  string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// SignedAmount returns the amount with the sign of its effect on the balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}
