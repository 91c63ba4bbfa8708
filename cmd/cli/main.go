package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goldenlock/internal/adapter/http/dto"
	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/adapter/shell"
	"github.com/iho/goldenlock/internal/infrastructure/logger"
	"github.com/iho/goldenlock/internal/infrastructure/seed"
	"github.com/iho/goldenlock/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "goldenlock",
		Short:         "Golden Lock Bank CLI tool",
		Long:          `A command line interface for the Golden Lock Bank: a local operator session and checks against a running server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Golden Lock API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(sessionCmd(), ledgerCmd(), seedCmd())
	return rootCmd
}

func sessionCmd() *cobra.Command {
	var (
		seedFile string
		logLevel string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive bank session backed by an in-memory ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(logger.Config{Level: logLevel, Format: "console", Output: cmd.ErrOrStderr()})

			bank, ledger := newLocalBank()
			if seedFile != "" {
				fixture, err := seed.Load(seedFile)
				if err != nil {
					return err
				}
				if err := fixture.Apply(cmd.Context(), bank); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, "Golden Lock Bank session. Type help for commands.")
			}
			s := shell.NewSession(bank, ledger, out, log, shell.WithPrompt(!quiet))
			return s.Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML fixture applied before the session starts")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress banner and prompt (for scripts)")
	return cmd
}

func newLocalBank() (*usecase.Bank, *usecase.LedgerUseCase) {
	accountRepo := memory.NewAccountRepository()
	idGen := memory.NewULIDGenerator()

	directory := usecase.NewDirectoryUseCase(memory.NewCustomerRepository(), accountRepo, nil, idGen)
	accounts := usecase.NewAccountUseCase(nil, idGen, nil)
	return usecase.NewBank(directory, accounts), usecase.NewLedgerUseCase(accountRepo, accounts)
}

func ledgerCmd() *cobra.Command {
	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd.Context(), cmd.OutOrStdout())
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	return ledgerCmd
}

func checkConsistency(ctx context.Context, out io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/ledger/consistency", nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("consistency check FAILED (status: %d): %s", resp.StatusCode, string(body))
	}

	var report dto.ConsistencyResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !report.Consistent {
		fmt.Fprintln(out, "Consistency check FAILED")
		for _, issue := range report.Issues {
			fmt.Fprintf(out, "  %s %s: %s\n", issue.AccountNumber, issue.TransactionID, issue.Reason)
		}
		return fmt.Errorf("ledger is inconsistent: %d issues", len(report.Issues))
	}

	fmt.Fprintln(out, "Consistency check PASSED")
	fmt.Fprintf(out, "Accounts: %d\nTransactions: %d\nTotal balance: %s\n",
		report.Accounts, report.Transactions, report.TotalBalance)
	return nil
}

func seedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed fixture operations",
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a seed fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d customers, %d accounts, %d commands\n",
				args[0], len(fixture.Customers), len(fixture.Accounts), len(fixture.Commands()))
			return nil
		},
	}

	seedCmd.AddCommand(validateCmd)
	return seedCmd
}
