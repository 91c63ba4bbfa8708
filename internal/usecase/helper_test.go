package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
	"github.com/iho/goldenlock/internal/usecase/mocks"
)

type testBank struct {
	customers *memory.CustomerRepository
	accounts  *memory.AccountRepository
	outbox    *mocks.StubOutboxRepository
	recorder  *mocks.StubOperationRecorder
	directory *usecase.DirectoryUseCase
	service   *usecase.AccountUseCase
	ledger    *usecase.LedgerUseCase
	bank      *usecase.Bank
}

func newTestBank(t *testing.T) *testBank {
	t.Helper()

	tb := &testBank{
		customers: memory.NewCustomerRepository(),
		accounts:  memory.NewAccountRepository(),
		outbox:    mocks.NewStubOutboxRepository(),
		recorder:  mocks.NewStubOperationRecorder(),
	}
	idGen := mocks.NewStubIDGenerator()

	tb.directory = usecase.NewDirectoryUseCase(tb.customers, tb.accounts, tb.outbox, idGen)
	tb.service = usecase.NewAccountUseCase(tb.outbox, idGen, tb.recorder)
	tb.ledger = usecase.NewLedgerUseCase(tb.accounts, tb.service)
	tb.bank = usecase.NewBank(tb.directory, tb.service)
	return tb
}

// open registers a customer (if needed) and opens an account for them.
func (tb *testBank) open(t *testing.T, contact, number string) *domain.Account {
	t.Helper()
	ctx := context.Background()

	if _, err := tb.directory.FindCustomer(ctx, contact); err != nil {
		if _, err := tb.directory.CreateCustomer(ctx, usecase.CreateCustomerInput{
			Name:    "Customer " + contact,
			Address: "1 Test Street",
			Contact: contact,
		}); err != nil {
			t.Fatalf("create customer %s: %v", contact, err)
		}
	}

	acc, err := tb.directory.OpenAccount(ctx, usecase.OpenAccountInput{Contact: contact, AccountNumber: number})
	if err != nil {
		t.Fatalf("open account %s: %v", number, err)
	}
	return acc
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
