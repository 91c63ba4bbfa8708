package handler

import (
	"context"
	"io"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

// CommandExecutor runs bank commands.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd usecase.Command) (*usecase.Result, error)
}

// Directory lists and resolves customers and accounts.
type Directory interface {
	ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	FindAccount(ctx context.Context, number string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListAccountsByCustomer(ctx context.Context, contact string) ([]*domain.Account, error)
}

// AccountReader reads account state under the account lock.
type AccountReader interface {
	Snapshot(ctx context.Context, account *domain.Account) domain.Snapshot
	HistoryPage(ctx context.Context, account *domain.Account, limit, offset int) []domain.Transaction
}

// ConsistencyChecker verifies the ledger.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// StatementRenderer renders an account statement.
type StatementRenderer interface {
	Render(w io.Writer, snap domain.Snapshot) error
}

// StatementCache stores rendered statements by account version.
type StatementCache interface {
	Get(ctx context.Context, number string, version int64) ([]byte, bool, error)
	Put(ctx context.Context, number string, version int64, data []byte) error
}
