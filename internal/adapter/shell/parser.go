package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

// ErrUsage is returned for lines that do not match the grammar.
var ErrUsage = errors.New("usage")

// Action is what a parsed line asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionCommand
	ActionConsistency
	ActionHelp
	ActionExit
)

// Request is one parsed shell line.
type Request struct {
	Action  Action
	Command usecase.Command
}

const helpText = `commands:
  customer add <contact> <name...> [| <address...>]
  customer show <contact>
  account open <contact> <number>
  account show <number>
  deposit <number> <amount>
  withdraw <number> <amount>
  transfer <from> <to> <amount>
  balance <number>
  history <number>
  consistency
  help
  exit`

func usage(format string) error {
	return fmt.Errorf("%w: %s", ErrUsage, format)
}

// Parse turns one input line into a Request. Blank lines and lines starting
// with '#' parse to ActionNone.
func Parse(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Request{Action: ActionNone}, nil
	}

	fields := strings.Fields(line)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "help", "?":
		return Request{Action: ActionHelp}, nil
	case "exit", "quit":
		return Request{Action: ActionExit}, nil
	case "consistency":
		return Request{Action: ActionConsistency}, nil
	case "customer":
		return parseCustomer(line, args)
	case "account":
		return parseAccount(args)
	case "deposit", "withdraw":
		if len(args) != 2 {
			return Request{}, usage(verb + " <number> <amount>")
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return Request{}, err
		}
		op := usecase.OpDeposit
		if verb == "withdraw" {
			op = usecase.OpWithdraw
		}
		return command(usecase.Command{Op: op, AccountNumber: args[0], Amount: amount}), nil
	case "transfer":
		if len(args) != 3 {
			return Request{}, usage("transfer <from> <to> <amount>")
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return Request{}, err
		}
		return command(usecase.Command{
			Op:            usecase.OpTransfer,
			AccountNumber: args[0],
			Destination:   args[1],
			Amount:        amount,
		}), nil
	case "balance", "history":
		if len(args) != 1 {
			return Request{}, usage(verb + " <number>")
		}
		op := usecase.OpBalance
		if verb == "history" {
			op = usecase.OpHistory
		}
		return command(usecase.Command{Op: op, AccountNumber: args[0]}), nil
	}

	return Request{}, fmt.Errorf("%w: unknown command %q, try help", ErrUsage, verb)
}

func parseCustomer(line string, args []string) (Request, error) {
	if len(args) == 0 {
		return Request{}, usage("customer add|show ...")
	}

	switch strings.ToLower(args[0]) {
	case "add":
		if len(args) < 3 {
			return Request{}, usage("customer add <contact> <name...> [| <address...>]")
		}
		// Name and address keep their original spacing.
		name, address, _ := strings.Cut(dropFields(line, 3), "|")
		name = strings.TrimSpace(name)
		if name == "" {
			return Request{}, usage("customer add <contact> <name...> [| <address...>]")
		}
		return command(usecase.Command{
			Op:      usecase.OpCreateCustomer,
			Contact: args[1],
			Name:    name,
			Address: strings.TrimSpace(address),
		}), nil
	case "show":
		if len(args) != 2 {
			return Request{}, usage("customer show <contact>")
		}
		return command(usecase.Command{Op: usecase.OpFindCustomer, Contact: args[1]}), nil
	}

	return Request{}, usage("customer add|show ...")
}

func parseAccount(args []string) (Request, error) {
	if len(args) == 0 {
		return Request{}, usage("account open|show ...")
	}

	switch strings.ToLower(args[0]) {
	case "open":
		if len(args) != 3 {
			return Request{}, usage("account open <contact> <number>")
		}
		return command(usecase.Command{
			Op:            usecase.OpOpenAccount,
			Contact:       args[1],
			AccountNumber: args[2],
		}), nil
	case "show":
		if len(args) != 2 {
			return Request{}, usage("account show <number>")
		}
		return command(usecase.Command{Op: usecase.OpFindAccount, AccountNumber: args[1]}), nil
	}

	return Request{}, usage("account open|show ...")
}

// dropFields returns s without its first n whitespace-separated fields.
func dropFields(s string, n int) string {
	for range n {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		s = s[i:]
	}
	return s
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	return amount, nil
}

func command(cmd usecase.Command) Request {
	return Request{Action: ActionCommand, Command: cmd}
}
