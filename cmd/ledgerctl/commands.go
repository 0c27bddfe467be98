package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/google/subcommands"

	"ledger/internal/cli"
	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
)

var commands = []subcommands.Command{
	&listCmd{},
	&summaryCmd{},
	&addCmd{},
	&deleteCmd{},
}

// withLedger opens the configured ledger, runs fn and flushes pending writes.
func withLedger(ctx context.Context, fn func(*ledger.Ledger) error) subcommands.ExitStatus {
	logger := cli.SetupLogger("ledgerctl")
	cfg := cli.LoadAndValidateConfig(logger)

	app, err := cli.OpenLedger(ctx, cfg, logger.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	runErr := fn(app.Ledger)
	if err := app.Close(ctx); err != nil {
		logger.Error("Backend cleanup error", applog.FieldError, err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// viewFlags selects a filtered view of the ledger.
type viewFlags struct {
	search   string
	category string
}

func (v *viewFlags) register(f *flag.FlagSet) {
	f.StringVar(&v.search, "search", "", "Case-insensitive text matched against particular, company and category.")
	f.StringVar(&v.category, "category", core.AllCategories, "Category to show, or 'all'.")
}

type listCmd struct{ view viewFlags }

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print ledger entries with their running balance" }
func (*listCmd) Usage() string {
	return `ledgerctl list [-search <text>] [-category <name>]

  Prints the entries in ledger order. Balances are always the running
  balance of the whole ledger, even when filtered.
`
}
func (c *listCmd) SetFlags(f *flag.FlagSet) { c.view.register(f) }

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		printEntries(os.Stdout, l.Filter(c.view.search, c.view.category))
		return nil
	})
}

func printEntries(out io.Writer, entries []core.Entry) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tDate\tCompany\tParticular\tCategory\tCredit\tDebit\tBalance\t")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.ID, e.Date, e.CompanyName, e.Particular, e.Category,
			orDash(e.Credit), orDash(e.Debit), core.FormatFixed(e.Balance))
	}
	tw.Flush()
}

func orDash(a core.Amount) string {
	if !a.IsSet() {
		return "-"
	}
	return a.String()
}

type summaryCmd struct{ view viewFlags }

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print total credit, total debit and the ending balance" }
func (*summaryCmd) Usage() string {
	return `ledgerctl summary [-search <text>] [-category <name>]
`
}
func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.view.register(f) }

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		s := l.FilteredSummary(c.view.search, c.view.category)
		fmt.Printf("Total Credit:   %s\n", core.FormatINR(s.TotalCredit))
		fmt.Printf("Total Debit:    %s\n", core.FormatINR(s.TotalDebit))
		fmt.Printf("Ending Balance: %s\n", core.FormatINR(s.EndingBalance))
		return nil
	})
}

type addCmd struct {
	date       string
	company    string
	particular string
	category   string
	credit     string
	debit      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append an entry to the ledger" }
func (*addCmd) Usage() string {
	return `ledgerctl add -company <name> -category <name> (-credit <amount> | -debit <amount>) [-date yyyy-mm-dd] [-particular <text>]
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Entry date (defaults to today).")
	f.StringVar(&c.company, "company", "", "Company name.")
	f.StringVar(&c.particular, "particular", "", "Description of the entry.")
	f.StringVar(&c.category, "category", "", "One of Sales, Purchase, Salary, Rent, Utilities, Marketing, Others.")
	f.StringVar(&c.credit, "credit", "", "Credit amount.")
	f.StringVar(&c.debit, "debit", "", "Debit amount.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d := core.NewDraft(core.Today())
	if c.date != "" {
		on, err := core.ParseDate(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		d.Date = on
	}
	d.CompanyName = c.company
	d.Particular = c.particular
	d.Category = core.Category(c.category)
	d.Credit = core.LenientAmount(c.credit)
	d.Debit = core.LenientAmount(c.debit)

	return withLedger(ctx, func(l *ledger.Ledger) error {
		e, err := l.Add(d)
		if err != nil {
			return err
		}
		fmt.Printf("Added entry %d, balance %s\n", e.ID, core.FormatFixed(e.Balance))
		return nil
	})
}

type deleteCmd struct{}

func (*deleteCmd) Name() string             { return "delete" }
func (*deleteCmd) Synopsis() string         { return "remove entries by id" }
func (*deleteCmd) Usage() string            { return "ledgerctl delete <id>...\n" }
func (*deleteCmd) SetFlags(_ *flag.FlagSet) {}

func (*deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ids := make([]int64, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid entry id %q\n", arg)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		for _, id := range ids {
			if !l.Delete(id) {
				fmt.Printf("Entry %d not found\n", id)
				continue
			}
			fmt.Printf("Deleted entry %d\n", id)
		}
		return nil
	})
}
