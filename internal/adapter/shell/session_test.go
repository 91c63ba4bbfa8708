package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()

	accountRepo := memory.NewAccountRepository()
	idGen := memory.NewULIDGenerator()
	directory := usecase.NewDirectoryUseCase(memory.NewCustomerRepository(), accountRepo, nil, idGen)
	accounts := usecase.NewAccountUseCase(nil, idGen, nil)

	var out bytes.Buffer
	s := NewSession(
		usecase.NewBank(directory, accounts),
		usecase.NewLedgerUseCase(accountRepo, accounts),
		&out,
		zerolog.Nop(),
		WithPrompt(false),
	)
	return s, &out
}

func TestSession_Run(t *testing.T) {
	s, out := newTestSession(t)

	script := strings.Join([]string{
		"customer add 5550001 Ada Lovelace | 12 St James Sq",
		"customer add 5550002 Charles Babbage",
		"account open 5550001 1001",
		"account open 5550002 2001",
		"history 1001",
		"deposit 1001 100",
		"withdraw 1001 40",
		"withdraw 1001 1000",
		"transfer 1001 2001 10",
		"balance 1001",
		"balance 2001",
		"history 1001",
		"consistency",
		"exit",
		"balance 1001",
	}, "\n")

	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "customer 5550001 registered")
	assert.Contains(t, got, "account 1001 opened for 5550001")
	assert.Contains(t, got, "no transactions")
	assert.Contains(t, got, "deposit 100.00, balance 100.00")
	assert.Contains(t, got, "withdrawal 40.00, balance 60.00")
	assert.Contains(t, got, "error [insufficient_funds]")
	assert.Contains(t, got, "transferred 10.00 from 1001 to 2001, balance 50.00")
	assert.Contains(t, got, "balance 50.00\n")
	assert.Contains(t, got, "balance 10.00\n")
	assert.Contains(t, got, "transfer_out")
	assert.Contains(t, got, "ledger consistent: 2 accounts, 4 transactions, total balance 60.00")
	assert.True(t, strings.HasSuffix(got, "bye\n"), "lines after exit are not run:\n%s", got)
}

func TestSession_RunStopsAtEOF(t *testing.T) {
	s, out := newTestSession(t)

	require.NoError(t, s.Run(context.Background(), strings.NewReader("help")))
	assert.Contains(t, out.String(), "transfer <from> <to> <amount>")
}

func TestSession_RunHonoursCancelledContext(t *testing.T) {
	s, _ := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, strings.NewReader("help\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_HandleReportsErrorKinds(t *testing.T) {
	tests := []struct {
		line string
		kind string
	}{
		{"balance 9999", "account_not_found"},
		{"customer show 5559999", "customer_not_found"},
		{"account open 5559999 3001", "unknown_customer"},
		{"deposit 1001 -5", "invalid_amount"},
		{"transfer 1001 1001 5", "same_account"},
		{"frobnicate", "usage"},
	}

	s, out := newTestSession(t)
	require.True(t, s.Handle(context.Background(), "customer add 5550001 Ada"))
	require.True(t, s.Handle(context.Background(), "account open 5550001 1001"))
	require.True(t, s.Handle(context.Background(), "deposit 1001 10"))

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			assert.True(t, s.Handle(context.Background(), tt.line))
			assert.Contains(t, out.String(), "error ["+tt.kind+"]")
		})
	}
}

func TestSession_ConsistencyWithoutChecker(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(nil, nil, &out, zerolog.Nop())

	assert.True(t, s.Handle(context.Background(), "consistency"))
	assert.Contains(t, out.String(), "not available")
}

type stubChecker struct {
	report *usecase.ConsistencyReport
	err    error
}

func (s stubChecker) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return s.report, s.err
}

func TestSession_ConsistencyRendersIssues(t *testing.T) {
	var out bytes.Buffer
	report := &usecase.ConsistencyReport{
		Accounts: 1,
		Issues:   []usecase.ConsistencyIssue{{AccountNumber: "1001", Reason: "negative balance -5"}},
	}
	s := NewSession(nil, stubChecker{report: report, err: usecase.ErrInconsistentLedger}, &out, zerolog.Nop())

	s.Handle(context.Background(), "consistency")

	assert.Contains(t, out.String(), "ledger INCONSISTENT")
	assert.Contains(t, out.String(), "1001: negative balance -5")
	assert.NotContains(t, out.String(), "error [")
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "duplicate_customer", ErrorKind(domain.DuplicateCustomerError{Contact: "5550001"}))
	assert.Equal(t, "duplicate_account", ErrorKind(domain.DuplicateAccountError{Number: "1001"}))
	assert.Equal(t, "invalid_input", ErrorKind(domain.ErrInvalidContact))
	assert.Equal(t, "inconsistent_ledger", ErrorKind(usecase.ErrInconsistentLedger))
	assert.Equal(t, "internal", ErrorKind(errors.New("boom")))
}
