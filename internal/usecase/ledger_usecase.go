package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when balances and histories disagree.
	ErrInconsistentLedger = errors.New("ledger is inconsistent")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	accountRepo AccountRepository
	accounts    *AccountUseCase
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, accounts *AccountUseCase) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		accounts:    accounts,
	}
}

// ConsistencyIssue describes one failed check.
type ConsistencyIssue struct {
	AccountNumber string
	TransactionID string
	Reason        string
}

// ConsistencyReport summarizes a consistency check over every account.
type ConsistencyReport struct {
	CheckedAt        time.Time
	Accounts         int
	Transactions     int
	TotalBalance     decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TransfersOut     decimal.Decimal
	TransfersIn      decimal.Decimal
	Issues           []ConsistencyIssue
}

// Consistent reports whether every check passed.
func (r *ConsistencyReport) Consistent() bool {
	return len(r.Issues) == 0
}

// CheckConsistency replays every account's history against its balance.
//
// Per account: the balance is non-negative, each transaction starts where the
// previous one ended, and the last one ends at the current balance. Across
// accounts: money leaving through transfers equals money arriving, and the total
// balance equals deposits minus withdrawals.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	accounts, err := uc.accountRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		CheckedAt:        time.Now().UTC(),
		Accounts:         len(accounts),
		TotalBalance:     decimal.Zero,
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TransfersOut:     decimal.Zero,
		TransfersIn:      decimal.Zero,
	}

	for _, snap := range uc.accounts.SnapshotAll(ctx, accounts) {
		uc.checkAccount(report, snap)
	}

	if !report.TransfersOut.Equal(report.TransfersIn) {
		report.Issues = append(report.Issues, ConsistencyIssue{
			Reason: fmt.Sprintf("transfers out %s do not match transfers in %s", report.TransfersOut, report.TransfersIn),
		})
	}

	net := report.TotalDeposits.Sub(report.TotalWithdrawals)
	if !report.TotalBalance.Equal(net) {
		report.Issues = append(report.Issues, ConsistencyIssue{
			Reason: fmt.Sprintf("total balance %s differs from deposits minus withdrawals %s", report.TotalBalance, net),
		})
	}

	if !report.Consistent() {
		return report, ErrInconsistentLedger
	}

	return report, nil
}

func (uc *LedgerUseCase) checkAccount(report *ConsistencyReport, snap domain.Snapshot) {
	report.Transactions += len(snap.Transactions)
	report.TotalBalance = report.TotalBalance.Add(snap.Balance)

	if snap.Balance.IsNegative() {
		report.Issues = append(report.Issues, ConsistencyIssue{
			AccountNumber: snap.Number,
			Reason:        fmt.Sprintf("negative balance %s", snap.Balance),
		})
	}

	running := decimal.Zero
	for _, txn := range snap.Transactions {
		if !txn.Kind.IsValid() {
			report.Issues = append(report.Issues, ConsistencyIssue{
				AccountNumber: snap.Number,
				TransactionID: txn.ID,
				Reason:        fmt.Sprintf("unknown transaction kind %q", txn.Kind),
			})
		}
		if !txn.BalanceBefore.Equal(running) {
			report.Issues = append(report.Issues, ConsistencyIssue{
				AccountNumber: snap.Number,
				TransactionID: txn.ID,
				Reason:        fmt.Sprintf("balance before %s does not follow previous balance %s", txn.BalanceBefore, running),
			})
		}

		running = running.Add(txn.SignedAmount())
		if !txn.BalanceAfter.Equal(running) {
			report.Issues = append(report.Issues, ConsistencyIssue{
				AccountNumber: snap.Number,
				TransactionID: txn.ID,
				Reason:        fmt.Sprintf("balance after %s does not match replayed balance %s", txn.BalanceAfter, running),
			})
			running = txn.BalanceAfter
		}

		switch txn.Kind {
		case domain.TransactionKindDeposit:
			report.TotalDeposits = report.TotalDeposits.Add(txn.Amount)
		case domain.TransactionKindWithdrawal:
			report.TotalWithdrawals = report.TotalWithdrawals.Add(txn.Amount)
		case domain.TransactionKindTransferOut:
			report.TransfersOut = report.TransfersOut.Add(txn.Amount)
		case domain.TransactionKindTransferIn:
			report.TransfersIn = report.TransfersIn.Add(txn.Amount)
		}
	}

	if !running.Equal(snap.Balance) {
		report.Issues = append(report.Issues, ConsistencyIssue{
			AccountNumber: snap.Number,
			Reason:        fmt.Sprintf("balance %s does not match replayed history %s", snap.Balance, running),
		})
	}
}
