package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNotFoundErrorsShareKind(t *testing.T) {
	for _, err := range []error{ErrCustomerNotFound, ErrAccountNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected %v to wrap ErrNotFound", err)
		}
	}
	if errors.Is(ErrCustomerNotFound, ErrAccountNotFound) {
		t.Fatal("customer and account not-found errors must stay distinguishable")
	}
}

func TestDuplicateErrors(t *testing.T) {
	var err error = DuplicateCustomerError{Contact: "555-0100"}
	if !errors.Is(err, ErrDuplicateCustomer) {
		t.Fatalf("expected ErrDuplicateCustomer, got %v", err)
	}

	wrapped := fmt.Errorf("registering: %w", DuplicateAccountError{Number: "1001"})
	var dup DuplicateAccountError
	if !errors.As(wrapped, &dup) || dup.Number != "1001" {
		t.Fatalf("expected DuplicateAccountError carrying the number, got %v", wrapped)
	}
	if !errors.Is(wrapped, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", wrapped)
	}
}

func TestTransactionSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(25)

	tests := []struct {
		kind TransactionKind
		want decimal.Decimal
	}{
		{TransactionKindDeposit, amount},
		{TransactionKindTransferIn, amount},
		{TransactionKindWithdrawal, amount.Neg()},
		{TransactionKindTransferOut, amount.Neg()},
	}

	for _, tt := range tests {
		txn := Transaction{Kind: tt.kind, Amount: amount}
		if got := txn.SignedAmount(); !got.Equal(tt.want) {
			t.Errorf("%s: expected %s, got %s", tt.kind, tt.want, got)
		}
	}

	if TransactionKind("reversal").IsValid() {
		t.Fatal("unknown kinds must be invalid")
	}
}
