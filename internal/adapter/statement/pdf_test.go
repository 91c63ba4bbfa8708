package statement

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goldenlock/internal/domain"
)

func TestRenderWritesPDF(t *testing.T) {
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	acc := domain.NewAccount("1001", "+15550001", domain.AccountKindSavings, opened)
	acc.Record(domain.Transaction{
		ID:            "txn-1",
		AccountNumber: "1001",
		Kind:          domain.TransactionKindDeposit,
		Amount:        decimal.NewFromInt(100),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  decimal.NewFromInt(100),
		CreatedAt:     opened.Add(time.Hour),
	})
	acc.Record(domain.Transaction{
		ID:            "txn-2",
		AccountNumber: "1001",
		Kind:          domain.TransactionKindTransferOut,
		Counterparty:  "1002",
		Amount:        decimal.NewFromInt(40),
		BalanceBefore: decimal.NewFromInt(100),
		BalanceAfter:  decimal.NewFromInt(60),
		CreatedAt:     opened.Add(2 * time.Hour),
	})

	r := NewPDFRenderer("Golden Lock Bank")
	r.now = func() time.Time { return opened.Add(24 * time.Hour) }

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, acc.Snapshot()))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")), "missing PDF trailer")
}

func TestRenderEmptyHistory(t *testing.T) {
	acc := domain.NewAccount("1002", "+15550002", domain.AccountKindSavings, time.Now())

	var buf bytes.Buffer
	require.NoError(t, NewPDFRenderer("Golden Lock Bank").Render(&buf, acc.Snapshot()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
