package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goldenlock/internal/adapter/http/dto"
	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	bank      CommandExecutor
	directory Directory
	reader    AccountReader
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(bank CommandExecutor, directory Directory, reader AccountReader) *AccountHandler {
	return &AccountHandler{
		bank:      bank,
		directory: directory,
		reader:    reader,
	}
}

// Open opens a new account for an existing customer.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.bank.Execute(r.Context(), req.ToCommand())
	if err != nil {
		writeDomainError(w, "failed to open account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromSnapshot(*result.Account))
}

// Get retrieves an account by number.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	result, err := h.bank.Execute(r.Context(), usecase.Command{
		Op:            usecase.OpFindAccount,
		AccountNumber: number,
	})
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(*result.Account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.directory.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	h.writeAccounts(w, r, accounts)
}

// ListByCustomer lists the accounts owned by a customer.
func (h *AccountHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	contact := chi.URLParam(r, "contact")
	if contact == "" {
		writeError(w, http.StatusBadRequest, "missing contact number", "")
		return
	}

	accounts, err := h.directory.ListAccountsByCustomer(r.Context(), contact)
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	h.writeAccounts(w, r, accounts)
}

func (h *AccountHandler) writeAccounts(w http.ResponseWriter, r *http.Request, accounts []*domain.Account) {
	snaps := make([]domain.Snapshot, len(accounts))
	for i, acc := range accounts {
		snaps[i] = h.reader.Snapshot(r.Context(), acc)
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromSnapshots(snaps),
		Total:    len(snaps),
	})
}

// Deposit adds money to an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, usecase.OpDeposit)
}

// Withdraw takes money out of an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, usecase.OpWithdraw)
}

func (h *AccountHandler) applyAmount(w http.ResponseWriter, r *http.Request, op usecase.CommandOp) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cmd, err := req.ToCommand(op, number)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.bank.Execute(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, "failed to "+string(op), err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(*result.Transaction))
}

// Balance returns the current balance of an account.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	result, err := h.bank.Execute(r.Context(), usecase.Command{
		Op:            usecase.OpBalance,
		AccountNumber: number,
	})
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountNumber: number,
		Balance:       result.Balance.StringFixed(domain.AmountScale),
	})
}

// Transactions lists one page of an account's history, oldest first.
func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.directory.FindAccount(r.Context(), number)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)
	page := h.reader.HistoryPage(r.Context(), account, limit, offset)

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(page),
		Total:        len(page),
	})
}
