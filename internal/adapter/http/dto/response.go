package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountScale)
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	Contact   string    `json:"contact"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerFromDomain converts domain customer to response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		Contact:   c.Contact,
		Name:      c.Name,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// ListCustomersResponse represents a page of customers.
type ListCustomersResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int                 `json:"total"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	Number           string    `json:"number"`
	Kind             string    `json:"kind"`
	Owner            string    `json:"owner"`
	Balance          string    `json:"balance"`
	Version          int64     `json:"version"`
	TransactionCount int       `json:"transaction_count"`
	OpenedAt         time.Time `json:"opened_at"`
}

// AccountFromSnapshot converts an account snapshot to response.
func AccountFromSnapshot(s domain.Snapshot) *AccountResponse {
	return &AccountResponse{
		Number:           s.Number,
		Kind:             string(s.Kind),
		Owner:            s.Owner,
		Balance:          money(s.Balance),
		Version:          s.Version,
		TransactionCount: len(s.Transactions),
		OpenedAt:         s.OpenedAt,
	}
}

// AccountsFromSnapshots converts account snapshots to responses.
func AccountsFromSnapshots(snaps []domain.Snapshot) []*AccountResponse {
	result := make([]*AccountResponse, len(snaps))
	for i, s := range snaps {
		result[i] = AccountFromSnapshot(s)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int                `json:"total"`
}

// TransactionResponse represents a recorded transaction in API responses.
type TransactionResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"account_number"`
	Kind          string    `json:"kind"`
	Counterparty  string    `json:"counterparty,omitempty"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		AccountNumber: t.AccountNumber,
		Kind:          string(t.Kind),
		Counterparty:  t.Counterparty,
		Amount:        money(t.Amount),
		BalanceBefore: money(t.BalanceBefore),
		BalanceAfter:  money(t.BalanceAfter),
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of an account's history.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int                    `json:"total"`
}

// TransferResponse represents both sides of a completed transfer.
type TransferResponse struct {
	Outbound *TransactionResponse `json:"outbound"`
	Inbound  *TransactionResponse `json:"inbound"`
}

// TransferFromResult converts a transfer result to response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Outbound: TransactionFromDomain(r.Outbound),
		Inbound:  TransactionFromDomain(r.Inbound),
	}
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
}

// ConsistencyIssueResponse represents one failed ledger check.
type ConsistencyIssueResponse struct {
	AccountNumber string `json:"account_number,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"reason"`
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Consistent       bool                       `json:"consistent"`
	CheckedAt        time.Time                  `json:"checked_at"`
	Accounts         int                        `json:"accounts"`
	Transactions     int                        `json:"transactions"`
	TotalBalance     string                     `json:"total_balance"`
	TotalDeposits    string                     `json:"total_deposits"`
	TotalWithdrawals string                     `json:"total_withdrawals"`
	TransfersOut     string                     `json:"transfers_out"`
	TransfersIn      string                     `json:"transfers_in"`
	Issues           []ConsistencyIssueResponse `json:"issues,omitempty"`
}

// ConsistencyFromReport converts a consistency report to response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	resp := &ConsistencyResponse{
		Consistent:       r.Consistent(),
		CheckedAt:        r.CheckedAt,
		Accounts:         r.Accounts,
		Transactions:     r.Transactions,
		TotalBalance:     money(r.TotalBalance),
		TotalDeposits:    money(r.TotalDeposits),
		TotalWithdrawals: money(r.TotalWithdrawals),
		TransfersOut:     money(r.TransfersOut),
		TransfersIn:      money(r.TransfersIn),
	}
	for _, issue := range r.Issues {
		resp.Issues = append(resp.Issues, ConsistencyIssueResponse{
			AccountNumber: issue.AccountNumber,
			TransactionID: issue.TransactionID,
			Reason:        issue.Reason,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
