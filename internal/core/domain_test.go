package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("%s should be valid", c)
		}
	}
	for _, c := range []Category{"", "sales", "Travel", AllCategories} {
		if c.IsValid() {
			t.Fatalf("%q should not be valid", c)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Date:        NewDate(2025, 1, 1),
		Category:    Sales,
		CompanyName: "Acme",
		Credit:      AmountFromInt(100),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	withParticular := good
	withParticular.Particular = ""
	withParticular.Credit = Amount{}
	if err := withParticular.Validate(); err != nil {
		t.Fatalf("empty particular and no amount should be ok, got %v", err)
	}

	cases := []struct {
		name  string
		edit  func(*Draft)
		field string
		cause error
	}{
		{"zero date", func(d *Draft) { d.Date = Date{} }, "date", ErrInvalidDate},
		{"blank company", func(d *Draft) { d.CompanyName = "  " }, "companyName", ErrEmptyCompany},
		{"blank category", func(d *Draft) { d.Category = "" }, "category", ErrEmptyCategory},
		{"unknown category", func(d *Draft) { d.Category = "Travel" }, "category", ErrUnknownCategory},
		{"both amounts", func(d *Draft) { d.Debit = AmountFromInt(20); d.Credit = AmountFromInt(50) }, "credit", ErrCreditAndDebit},
		{"negative credit", func(d *Draft) { d.Credit = LenientAmount("-5") }, "credit", ErrInvalidAmount},
		{"text debit", func(d *Draft) { d.Credit = Amount{}; d.Debit = LenientAmount("ten") }, "debit", ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := good
			tc.edit(&d)
			err := d.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
			if !errors.Is(err, tc.cause) {
				t.Fatalf("expected cause %v, got %v", tc.cause, err)
			}
		})
	}
}

func TestDraftEntryRoundTrip(t *testing.T) {
	d := Draft{
		Date:        NewDate(2025, 3, 4),
		Particular:  "invoice 7",
		Category:    Rent,
		CompanyName: "Landlord",
		Debit:       AmountFromInt(40),
	}
	e := d.Entry(42)
	if e.ID != 42 || !e.Balance.IsZero() {
		t.Fatalf("unexpected entry %+v", e)
	}
	back := e.Draft()
	if back.Date != d.Date || back.CompanyName != d.CompanyName || !back.Debit.Equal(d.Debit) {
		t.Fatalf("draft mismatch: %+v vs %+v", back, d)
	}
	if got := e.Effect().String(); got != "-40" {
		t.Fatalf("effect = %s, want -40", got)
	}
}

func TestDateJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"2025-02-03"`, "2025-02-03"},
		{`"2025-02-03T10:00:00.000Z"`, "2025-02-03"},
		{`""`, ""},
		{`null`, ""},
		{`"yesterday"`, ""},
	}
	for _, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if d.String() != tc.want {
			t.Fatalf("%s: got %q want %q", tc.in, d.String(), tc.want)
		}
	}
	out, _ := json.Marshal(NewDate(2024, 12, 31))
	if string(out) != `"2024-12-31"` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestDateOf(t *testing.T) {
	tm := time.Date(2025, 6, 7, 23, 59, 0, 0, time.UTC)
	if got := DateOf(tm).String(); got != "2025-06-07" {
		t.Fatalf("DateOf = %s", got)
	}
	if _, err := ParseDate("07/06/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
