package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"ledger/internal/config"
	"ledger/internal/export"
	"ledger/internal/ledger"
)

var exportCommands = []subcommands.Command{
	&exportXLSXCmd{},
	&exportPDFCmd{},
	&exportAllCmd{},
	&shareCmd{},
}

func defaultExportDir() string { return config.Load().ExportDir }

type exportXLSXCmd struct {
	view viewFlags
	dir  string
}

func (*exportXLSXCmd) Name() string     { return "export-xlsx" }
func (*exportXLSXCmd) Synopsis() string { return "write the ledger view to ledger.xlsx" }
func (*exportXLSXCmd) Usage() string {
	return `ledgerctl export-xlsx [-dir <path>] [-search <text>] [-category <name>]
`
}

func (c *exportXLSXCmd) SetFlags(f *flag.FlagSet) {
	c.view.register(f)
	f.StringVar(&c.dir, "dir", defaultExportDir(), "Output directory.")
}

func (c *exportXLSXCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		p, err := export.WriteXLSXFile(c.dir, l.Filter(c.view.search, c.view.category))
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	})
}

type exportPDFCmd struct {
	view viewFlags
	dir  string
}

func (*exportPDFCmd) Name() string     { return "export-pdf" }
func (*exportPDFCmd) Synopsis() string { return "write the ledger view as a PDF report" }
func (*exportPDFCmd) Usage() string {
	return `ledgerctl export-pdf [-dir <path>] [-search <text>] [-category <name>]

  The report is named after the company of the first entry shown.
`
}

func (c *exportPDFCmd) SetFlags(f *flag.FlagSet) {
	c.view.register(f)
	f.StringVar(&c.dir, "dir", defaultExportDir(), "Output directory.")
}

func (c *exportPDFCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		report, err := export.BuildReport(l.Filter(c.view.search, c.view.category), time.Now())
		if err != nil {
			return err
		}
		p, err := export.WritePDFFile(c.dir, report)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	})
}

type exportAllCmd struct {
	view viewFlags
	dir  string
}

func (*exportAllCmd) Name() string     { return "export" }
func (*exportAllCmd) Synopsis() string { return "write both the workbook and the PDF report" }
func (*exportAllCmd) Usage() string {
	return `ledgerctl export [-dir <path>] [-search <text>] [-category <name>]
`
}

func (c *exportAllCmd) SetFlags(f *flag.FlagSet) {
	c.view.register(f)
	f.StringVar(&c.dir, "dir", defaultExportDir(), "Output directory.")
}

func (c *exportAllCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		res, err := export.Bundle(ctx, c.dir, l.Filter(c.view.search, c.view.category), time.Now())
		if err != nil {
			return err
		}
		fmt.Println(res.XLSXPath)
		fmt.Println(res.PDFPath)
		return nil
	})
}

type shareCmd struct{ url bool }

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print the ledger summary message for sharing" }
func (*shareCmd) Usage() string {
	return `ledgerctl share [-url]

  Prints the summary of the whole ledger. With -url the WhatsApp link is
  printed instead.
`
}
func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.url, "url", false, "Print the WhatsApp share link.")
}

func (c *shareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		msg, err := export.ShareMessage(l.Entries(), time.Now())
		if err != nil {
			return err
		}
		if c.url {
			msg = export.WhatsAppURL(msg)
		}
		_, err = fmt.Fprintln(os.Stdout, msg)
		return err
	})
}
