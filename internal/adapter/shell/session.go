package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iho/goldenlock/internal/usecase"
)

// Executor runs bank commands.
type Executor interface {
	Execute(ctx context.Context, cmd usecase.Command) (*usecase.Result, error)
}

// ConsistencyChecker verifies the ledger.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

const prompt = "goldenlock> "

// Session is an interactive operator shell over a Bank.
type Session struct {
	bank    Executor
	checker ConsistencyChecker
	out     io.Writer
	logger  zerolog.Logger
	prompt  bool
}

// Option configures a Session.
type Option func(*Session)

// WithPrompt toggles printing the prompt before each line.
func WithPrompt(enabled bool) Option {
	return func(s *Session) {
		s.prompt = enabled
	}
}

// NewSession creates a Session writing to out. checker may be nil.
func NewSession(bank Executor, checker ConsistencyChecker, out io.Writer, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		bank:    bank,
		checker: checker,
		out:     out,
		logger:  logger.With().Str("session_id", uuid.NewString()).Logger(),
		prompt:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until exit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if s.prompt {
			fmt.Fprint(s.out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Handle(ctx, scanner.Text()) {
			return nil
		}
	}
}

// Handle runs one line and reports whether the session should continue.
func (s *Session) Handle(ctx context.Context, line string) bool {
	req, err := Parse(line)
	if err != nil {
		s.fail(line, err)
		return true
	}

	switch req.Action {
	case ActionNone:
	case ActionExit:
		fmt.Fprintln(s.out, "bye")
		return false
	case ActionHelp:
		fmt.Fprintln(s.out, helpText)
	case ActionConsistency:
		s.consistency(ctx, line)
	case ActionCommand:
		result, err := s.bank.Execute(ctx, req.Command)
		if err != nil {
			s.fail(line, err)
			return true
		}
		renderResult(s.out, result)
	}
	return true
}

func (s *Session) consistency(ctx context.Context, line string) {
	if s.checker == nil {
		fmt.Fprintln(s.out, "consistency checks are not available")
		return
	}

	report, err := s.checker.CheckConsistency(ctx)
	if report != nil {
		renderReport(s.out, report)
	}
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		s.fail(line, err)
	}
}

func (s *Session) fail(line string, err error) {
	s.logger.Debug().Err(err).Str("line", line).Msg("command failed")
	fmt.Fprintf(s.out, "error [%s]: %v\n", ErrorKind(err), err)
}
