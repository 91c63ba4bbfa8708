package shell

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountScale)
}

// ErrorKind names the class of err for display.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return "usage"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnknownCustomer):
		return "unknown_customer"
	case errors.Is(err, domain.ErrDuplicateCustomer):
		return "duplicate_customer"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate_account"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountTooPrecise):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidContact),
		errors.Is(err, domain.ErrInvalidCustomerName),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidAccountNumber),
		errors.Is(err, usecase.ErrInvalidCommand):
		return "invalid_input"
	case errors.Is(err, usecase.ErrInconsistentLedger):
		return "inconsistent_ledger"
	}
	return "internal"
}

func renderResult(w io.Writer, result *usecase.Result) {
	switch result.Op {
	case usecase.OpCreateCustomer:
		fmt.Fprintf(w, "customer %s registered\n", result.Customer.Contact)
	case usecase.OpFindCustomer:
		c := result.Customer
		fmt.Fprintf(w, "contact: %s\nname:    %s\naddress: %s\n", c.Contact, c.Name, c.Address)
	case usecase.OpOpenAccount:
		fmt.Fprintf(w, "account %s opened for %s\n", result.Account.Number, result.Account.Owner)
	case usecase.OpFindAccount:
		a := result.Account
		fmt.Fprintf(w, "account: %s (%s)\nowner:   %s\nbalance: %s\nopened:  %s\n",
			a.Number, a.Kind, a.Owner, money(a.Balance), a.OpenedAt.Format(time.RFC3339))
	case usecase.OpDeposit, usecase.OpWithdraw:
		fmt.Fprintf(w, "%s %s, balance %s\n", result.Transaction.Kind, money(result.Transaction.Amount), money(result.Balance))
	case usecase.OpTransfer:
		out := result.Transfer.Outbound
		fmt.Fprintf(w, "transferred %s from %s to %s, balance %s\n",
			money(out.Amount), out.AccountNumber, out.Counterparty, money(result.Balance))
	case usecase.OpBalance:
		fmt.Fprintf(w, "balance %s\n", money(result.Balance))
	case usecase.OpHistory:
		renderHistory(w, result.History)
	}
}

func renderHistory(w io.Writer, history []domain.Transaction) {
	if len(history) == 0 {
		fmt.Fprintln(w, "no transactions")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tkind\tamount\tbalance\tcounterparty\t")
	for i, txn := range history {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", i+1, txn.Kind, money(txn.SignedAmount()), money(txn.BalanceAfter), txn.Counterparty)
	}
	tw.Flush()
}

func renderReport(w io.Writer, report *usecase.ConsistencyReport) {
	status := "consistent"
	if !report.Consistent() {
		status = "INCONSISTENT"
	}
	fmt.Fprintf(w, "ledger %s: %d accounts, %d transactions, total balance %s\n",
		status, report.Accounts, report.Transactions, money(report.TotalBalance))
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  %s: %s\n", issue.AccountNumber, issue.Reason)
	}
}
