package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

func TestPrintEntries(t *testing.T) {
	entries := []core.Entry{
		{ID: 7, Date: core.NewDate(2024, 1, 2), CompanyName: "Acme", Category: core.Sales,
			Credit: core.AmountFromInt(100), Balance: decimal.NewFromInt(100)},
	}
	var buf bytes.Buffer
	printEntries(&buf, entries)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"7", "2024-01-02", "Acme", "Sales", "100", "-", "100.00"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range append(commands, exportCommands...) {
		if seen[c.Name()] {
			t.Errorf("duplicate command %q", c.Name())
		}
		seen[c.Name()] = true
		if c.Synopsis() == "" || c.Usage() == "" {
			t.Errorf("command %q lacks help text", c.Name())
		}
	}
}
