package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/aggregate"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// Ledger is the part of the ledger the shell drives.
type Ledger interface {
	AddIncome(ctx context.Context, amount decimal.Decimal, description, category string) (model.Entry, error)
	AddExpense(ctx context.Context, amount decimal.Decimal, description, category string) (model.Entry, error)
	SetBudgetGoal(ctx context.Context, category string, amount decimal.Decimal) error
	Reset(ctx context.Context) error
	Snapshot() model.LedgerState
}

// ErrUsage is returned when a command is called with the wrong arguments.
var ErrUsage = errors.New("usage")

const helpText = `
Available commands:
  income <amount> [description] [category] - Add income
  expense <amount> [description] [category] - Add expense
  goal <category> <amount> - Set budget goal for category
  summary - Display budget summary
  clear - Clear all data
  help - Show this help message
  quit - Exit the application

Examples:
  income 3000 "Monthly salary" salary
  expense 50.25 "Groceries" food
  goal food 400
  summary
`

// Shell is the interactive command loop.
type Shell struct {
	ledger     Ledger
	aggregator *aggregate.Aggregator
	reader     *LineReader
	out        io.Writer
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(ledger Ledger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		ledger:     ledger,
		aggregator: aggregate.New(ledger),
		reader:     NewLineReader(in),
		out:        out,
	}
}

// Run reads and executes commands until quit, end of input or cancellation.
// Command failures are reported and never end the loop.
func (s *Shell) Run(ctx context.Context) error {
	s.println(FormatTitle(MoneyIcon + " Welcome to Personal Budget Calculator!"))
	s.println("Type 'help' for available commands or 'quit' to exit.")

	for {
		line, err := s.reader.Prompt(ctx, s.out, "\n> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
				s.println("\nGoodbye!")
				break
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		if quit := s.Execute(ctx, line); quit {
			break
		}
	}

	s.println("Thank you for using Personal Budget Calculator!")
	return nil
}

// Execute runs one command line and reports the outcome. It returns true
// when the user asked to quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		s.reportError(err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	verb := strings.ToLower(args[0])
	switch verb {
	case "quit", "exit":
		return true
	case "help":
		s.println(helpText)
		return false
	}

	if err := s.Dispatch(ctx, verb, args[1:]); err != nil {
		s.reportError(err)
	}
	return false
}

// Dispatch runs a single ledger command. Confirmations are written to the
// shell's output; failures are returned.
func (s *Shell) Dispatch(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "income":
		return s.addEntry(ctx, model.KindIncome, args)
	case "expense":
		return s.addEntry(ctx, model.KindExpense, args)
	case "goal":
		return s.setGoal(ctx, args)
	case "summary":
		return RenderSummary(s.out, s.aggregator.Summary())
	case "clear":
		return s.clear(ctx)
	default:
		return common.NewUserError("Unknown command. Type 'help' for available commands.", fmt.Errorf("%w: %s", ErrUsage, verb))
	}
}

func (s *Shell) addEntry(ctx context.Context, kind model.EntryKind, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return usageError(fmt.Sprintf("%s <amount> [description] [category]", kind))
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	var description, category string
	if len(args) > 1 {
		description = args[1]
	}
	if len(args) > 2 {
		category = args[2]
	}

	add := s.ledger.AddIncome
	if kind == model.KindExpense {
		add = s.ledger.AddExpense
	}

	entry, err := add(ctx, amount, description, category)
	if err != nil && !errors.Is(err, common.ErrStoreWrite) {
		return err
	}

	s.println(FormatSuccess(fmt.Sprintf("Added %s: %s - %s", kind, FormatMoney(entry.Amount), entry.Description)))
	return err
}

func (s *Shell) setGoal(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("goal <category> <amount>")
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	err = s.ledger.SetBudgetGoal(ctx, args[0], amount)
	if err != nil && !errors.Is(err, common.ErrStoreWrite) {
		return err
	}

	s.println(FormatSuccess(fmt.Sprintf("Set budget goal for %s: %s", args[0], FormatMoney(amount))))
	return err
}

func (s *Shell) clear(ctx context.Context) error {
	answer, err := s.reader.Prompt(ctx, s.out, "Are you sure you want to clear all data? (yes/no): ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if !strings.EqualFold(answer, "yes") {
		s.println("Clear canceled.")
		return nil
	}

	if err := s.ledger.Reset(ctx); err != nil {
		return err
	}
	s.println(FormatSuccess("All data cleared."))
	return nil
}

// reportError prints err without ending the session. Save failures are
// warnings because the change is still held in memory.
func (s *Shell) reportError(err error) {
	if errors.Is(err, common.ErrStoreWrite) {
		s.println(FormatWarning(common.UserMessage(err)))
		return
	}
	s.println(FormatError("Error: " + common.UserMessage(err)))
}

func (s *Shell) println(text string) {
	// Output errors are not actionable inside the loop.
	_, _ = fmt.Fprintln(s.out, text)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, common.NewUserError(
			fmt.Sprintf("%q is not a valid amount", raw),
			fmt.Errorf("%w: %w", common.ErrInvalidAmount, err),
		)
	}
	return amount, nil
}

func usageError(usage string) error {
	return common.NewUserError("Usage: "+usage, ErrUsage)
}
