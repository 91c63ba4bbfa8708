package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
)

// AccountUseCase moves money in, out of and between accounts.
//
// Every read and write of an account goes through its entry in the lock table,
// so a balance check and the mutation that depends on it are never interleaved
// with another operation on the same account.
type AccountUseCase struct {
	outboxRepo OutboxRepository
	idGen      IDGenerator
	recorder   OperationRecorder
	locks      *lockTable
}

// NewAccountUseCase creates a new AccountUseCase. outboxRepo and recorder may be nil.
func NewAccountUseCase(outboxRepo OutboxRepository, idGen IDGenerator, recorder OperationRecorder) *AccountUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AccountUseCase{
		outboxRepo: outboxRepo,
		idGen:      idGen,
		recorder:   recorder,
		locks:      newLockTable(),
	}
}

// TransferResult holds the two transactions written by a transfer.
type TransferResult struct {
	Outbound domain.Transaction
	Inbound  domain.Transaction
}

// Deposit credits amount to account.
func (uc *AccountUseCase) Deposit(ctx context.Context, account *domain.Account, amount decimal.Decimal) (*domain.Transaction, error) {
	start := time.Now()
	txn, err := uc.credit(ctx, account, amount)
	uc.observe(string(OpDeposit), start, err, txn)
	return txn, err
}

// Withdraw debits amount from account. The balance never goes below zero.
func (uc *AccountUseCase) Withdraw(ctx context.Context, account *domain.Account, amount decimal.Decimal) (*domain.Transaction, error) {
	start := time.Now()
	txn, err := uc.debit(ctx, account, amount)
	uc.observe(string(OpWithdraw), start, err, txn)
	return txn, err
}

// Transfer moves amount from source to destination. Either both accounts are
// updated or neither is.
func (uc *AccountUseCase) Transfer(ctx context.Context, source, destination *domain.Account, amount decimal.Decimal) (*TransferResult, error) {
	start := time.Now()
	result, err := uc.transfer(ctx, source, destination, amount)

	var outbound *domain.Transaction
	if result != nil {
		outbound = &result.Outbound
		uc.recorder.RecordBalance(result.Inbound.AccountNumber, result.Inbound.BalanceAfter.InexactFloat64())
	}
	uc.observe(string(OpTransfer), start, err, outbound)

	return result, err
}

// Balance returns the current balance of account.
func (uc *AccountUseCase) Balance(ctx context.Context, account *domain.Account) decimal.Decimal {
	unlock := uc.locks.acquire(account.Number())
	defer unlock()

	return account.Balance()
}

// History returns a copy of the account's transactions in the order they were recorded.
func (uc *AccountUseCase) History(ctx context.Context, account *domain.Account) []domain.Transaction {
	unlock := uc.locks.acquire(account.Number())
	defer unlock()

	return account.Transactions()
}

// HistoryPage returns one page of the account's history, oldest first.
func (uc *AccountUseCase) HistoryPage(ctx context.Context, account *domain.Account, limit, offset int) []domain.Transaction {
	limit, offset = domain.ValidatePagination(limit, offset)

	history := uc.History(ctx, account)
	if offset >= len(history) {
		return []domain.Transaction{}
	}

	end := offset + limit
	if end > len(history) {
		end = len(history)
	}
	return history[offset:end]
}

// Snapshot returns a detached copy of account taken under its lock.
func (uc *AccountUseCase) Snapshot(ctx context.Context, account *domain.Account) domain.Snapshot {
	unlock := uc.locks.acquire(account.Number())
	defer unlock()

	return account.Snapshot()
}

// SnapshotAll copies every account while holding all of their locks at once,
// so no transfer is observed half applied.
func (uc *AccountUseCase) SnapshotAll(ctx context.Context, accounts []*domain.Account) []domain.Snapshot {
	numbers := make([]string, len(accounts))
	for i, acc := range accounts {
		numbers[i] = acc.Number()
	}

	unlock := uc.locks.acquire(numbers...)
	defer unlock()

	snapshots := make([]domain.Snapshot, len(accounts))
	for i, acc := range accounts {
		snapshots[i] = acc.Snapshot()
	}
	return snapshots
}

func (uc *AccountUseCase) credit(ctx context.Context, account *domain.Account, amount decimal.Decimal) (*domain.Transaction, error) {
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	unlock := uc.locks.acquire(account.Number())
	defer unlock()

	now := time.Now().UTC()
	txn := domain.Transaction{
		ID:            uc.idGen.Generate(),
		AccountNumber: account.Number(),
		Kind:          domain.TransactionKindDeposit,
		Amount:        amount,
		BalanceBefore: account.Balance(),
		BalanceAfter:  account.ApplyCredit(amount),
		CreatedAt:     now,
	}

	if err := uc.emitBalanceChanged(ctx, domain.EventTypeDepositRecorded, txn); err != nil {
		return nil, err
	}

	account.Record(txn)
	return &txn, nil
}

func (uc *AccountUseCase) debit(ctx context.Context, account *domain.Account, amount decimal.Decimal) (*domain.Transaction, error) {
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	unlock := uc.locks.acquire(account.Number())
	defer unlock()

	if err := account.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		ID:            uc.idGen.Generate(),
		AccountNumber: account.Number(),
		Kind:          domain.TransactionKindWithdrawal,
		Amount:        amount,
		BalanceBefore: account.Balance(),
		BalanceAfter:  account.ApplyDebit(amount),
		CreatedAt:     now,
	}

	if err := uc.emitBalanceChanged(ctx, domain.EventTypeWithdrawalRecorded, txn); err != nil {
		return nil, err
	}

	account.Record(txn)
	return &txn, nil
}

func (uc *AccountUseCase) transfer(ctx context.Context, source, destination *domain.Account, amount decimal.Decimal) (*TransferResult, error) {
	if source == nil || destination == nil {
		return nil, domain.ErrAccountNotFound
	}
	if source.Number() == destination.Number() {
		return nil, domain.ErrSameAccount
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	// Both locks are held for the whole check-and-mutate window.
	unlock := uc.locks.acquire(source.Number(), destination.Number())
	defer unlock()

	if err := source.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &TransferResult{
		Outbound: domain.Transaction{
			ID:            uc.idGen.Generate(),
			AccountNumber: source.Number(),
			Kind:          domain.TransactionKindTransferOut,
			Counterparty:  destination.Number(),
			Amount:        amount,
			BalanceBefore: source.Balance(),
			BalanceAfter:  source.ApplyDebit(amount),
			CreatedAt:     now,
		},
		Inbound: domain.Transaction{
			ID:            uc.idGen.Generate(),
			AccountNumber: destination.Number(),
			Kind:          domain.TransactionKindTransferIn,
			Counterparty:  source.Number(),
			Amount:        amount,
			BalanceBefore: destination.Balance(),
			BalanceAfter:  destination.ApplyCredit(amount),
			CreatedAt:     now,
		},
	}

	event := &domain.OutboxEvent{
		AggregateID:   source.Number(),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeTransferCompleted,
		Payload: map[string]any{
			"from_account":            source.Number(),
			"to_account":              destination.Number(),
			"amount":                  amount.String(),
			"outbound_transaction_id": result.Outbound.ID,
			"inbound_transaction_id":  result.Inbound.ID,
		},
		CreatedAt: now,
	}
	if err := emit(ctx, uc.outboxRepo, uc.idGen, event); err != nil {
		return nil, err
	}

	source.Record(result.Outbound)
	destination.Record(result.Inbound)

	return result, nil
}

func (uc *AccountUseCase) emitBalanceChanged(ctx context.Context, eventType string, txn domain.Transaction) error {
	return emit(ctx, uc.outboxRepo, uc.idGen, &domain.OutboxEvent{
		AggregateID:   txn.AccountNumber,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     eventType,
		Payload: map[string]any{
			"transaction_id": txn.ID,
			"account_number": txn.AccountNumber,
			"amount":         txn.Amount.String(),
			"balance":        txn.BalanceAfter.String(),
		},
		CreatedAt: txn.CreatedAt,
	})
}

func (uc *AccountUseCase) observe(op string, start time.Time, err error, txn *domain.Transaction) {
	uc.recorder.RecordOperation(op, time.Since(start), err)
	if err == nil && txn != nil {
		uc.recorder.RecordBalance(txn.AccountNumber, txn.BalanceAfter.InexactFloat64())
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, time.Duration, error) {}
func (nopRecorder) RecordBalance(string, float64) {}
