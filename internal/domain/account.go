package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind tags the flavour of an account. Only savings exists today.
type AccountKind string

const (
	AccountKindSavings AccountKind = "savings"
)

// Account is a balance-holding record owned by one customer.
//
// Account does not guard its own invariants or its own concurrency: the account
// service validates every mutation and serializes access per account number.
type Account struct {
	number       string
	kind         AccountKind
	owner        string
	balance      decimal.Decimal
	version      int64
	transactions []Transaction
	openedAt     time.Time
}

// NewAccount creates an empty account owned by the customer with the given contact number.
func NewAccount(number, owner string, kind AccountKind, openedAt time.Time) *Account {
	return &Account{
		number:   number,
		kind:     kind,
		owner:    owner,
		balance:  decimal.Zero,
		openedAt: openedAt,
	}
}

func (a *Account) Number() string { return a.number }
func (a *Account) Kind() AccountKind { return a.kind }
func (a *Account) Owner() string { return a.owner }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Version() int64 { return a.version }
func (a *Account) OpenedAt() time.Time { return a.openedAt }

// Transactions returns a copy of the history in the order it was recorded.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.balance.Add(amount)
}

// Record appends txn and moves the balance to txn.BalanceAfter.
func (a *Account) Record(txn Transaction) {
	a.transactions = append(a.transactions, txn)
	a.balance = txn.BalanceAfter
	a.version++
}

// Snapshot is a detached copy of an account's state, safe to hand to renderers.
type Snapshot struct {
	Number       string
	Kind         AccountKind
	Owner        string
	Balance      decimal.Decimal
	Version      int64
	OpenedAt     time.Time
	Transactions []Transaction
}

// Snapshot copies the account's current state.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Number:       a.number,
		Kind:         a.kind,
		Owner:        a.owner,
		Balance:      a.balance,
		Version:      a.version,
		OpenedAt:     a.openedAt,
		Transactions: a.Transactions(),
	}
}
