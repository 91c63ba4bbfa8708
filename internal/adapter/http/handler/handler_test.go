package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/goldenlock/internal/adapter/http/handler/mocks"
	"github.com/iho/goldenlock/internal/domain"
)

type handlerMocks struct {
	bank      *mocks.MockCommandExecutor
	directory *mocks.MockDirectory
	reader    *mocks.MockAccountReader
	checker   *mocks.MockConsistencyChecker
	renderer  *mocks.MockStatementRenderer
	cache     *mocks.MockStatementCache
}

func newHandlerMocks(t *testing.T) *handlerMocks {
	ctrl := gomock.NewController(t)
	return &handlerMocks{
		bank:      mocks.NewMockCommandExecutor(ctrl),
		directory: mocks.NewMockDirectory(ctrl),
		reader:    mocks.NewMockAccountReader(ctrl),
		checker:   mocks.NewMockConsistencyChecker(ctrl),
		renderer:  mocks.NewMockStatementRenderer(ctrl),
		cache:     mocks.NewMockStatementCache(ctrl),
	}
}

func testAccount(number string, deposits ...int64) *domain.Account {
	acc := domain.NewAccount(number, "+15550001", domain.AccountKindSavings, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	balance := decimal.Zero
	for i, d := range deposits {
		amount := decimal.NewFromInt(d)
		acc.Record(domain.Transaction{
			ID:            number + "-txn-" + string(rune('a'+i)),
			AccountNumber: number,
			Kind:          domain.TransactionKindDeposit,
			Amount:        amount,
			BalanceBefore: balance,
			BalanceAfter:  balance.Add(amount),
		})
		balance = balance.Add(amount)
	}
	return acc
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
