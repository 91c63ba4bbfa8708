// Package seed loads customers, accounts and opening deposits from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/goldenlock/internal/domain"
	"github.com/iho/goldenlock/internal/usecase"
)

var ErrInvalidFixture = errors.New("invalid seed fixture")

// Fixture is the decoded seed file.
type Fixture struct {
	Customers []Customer `yaml:"customers"`
	Accounts  []Account  `yaml:"accounts"`
}

type Customer struct {
	Contact string `yaml:"contact"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type Account struct {
	Number   string            `yaml:"number"`
	Owner    string            `yaml:"owner"`
	Deposits []decimal.Decimal `yaml:"deposits"`
}

// Load reads and validates the fixture at path.
func Load(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a fixture.
func Parse(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate checks the fixture references without touching a bank.
func (fx *Fixture) Validate() error {
	contacts := make(map[string]bool, len(fx.Customers))
	for i, c := range fx.Customers {
		if c.Contact == "" || c.Name == "" {
			return fmt.Errorf("%w: customer %d needs contact and name", ErrInvalidFixture, i)
		}
		contact := domain.NormalizeContact(c.Contact)
		if contacts[contact] {
			return fmt.Errorf("%w: customer %s listed twice", ErrInvalidFixture, c.Contact)
		}
		contacts[contact] = true
	}

	numbers := make(map[string]bool, len(fx.Accounts))
	for i, a := range fx.Accounts {
		if a.Number == "" {
			return fmt.Errorf("%w: account %d needs a number", ErrInvalidFixture, i)
		}
		if numbers[a.Number] {
			return fmt.Errorf("%w: account %s listed twice", ErrInvalidFixture, a.Number)
		}
		if !contacts[domain.NormalizeContact(a.Owner)] {
			return fmt.Errorf("%w: account %s owner %q is not a listed customer", ErrInvalidFixture, a.Number, a.Owner)
		}
		numbers[a.Number] = true
	}
	return nil
}

// Commands returns the fixture as bank commands, customers first.
func (fx *Fixture) Commands() []usecase.Command {
	var cmds []usecase.Command
	for _, c := range fx.Customers {
		cmds = append(cmds, usecase.Command{
			Op:      usecase.OpCreateCustomer,
			Contact: c.Contact,
			Name:    c.Name,
			Address: c.Address,
		})
	}
	for _, a := range fx.Accounts {
		cmds = append(cmds, usecase.Command{
			Op:            usecase.OpOpenAccount,
			Contact:       a.Owner,
			AccountNumber: a.Number,
		})
		for _, amount := range a.Deposits {
			cmds = append(cmds, usecase.Command{
				Op:            usecase.OpDeposit,
				AccountNumber: a.Number,
				Amount:        amount,
			})
		}
	}
	return cmds
}

// Executor runs a bank command.
type Executor interface {
	Execute(ctx context.Context, cmd usecase.Command) (*usecase.Result, error)
}

// Apply executes every fixture command, stopping at the first failure.
func (fx *Fixture) Apply(ctx context.Context, bank Executor) error {
	for _, cmd := range fx.Commands() {
		if _, err := bank.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("seed %s: %w", cmd.Op, err)
		}
	}
	return nil
}
