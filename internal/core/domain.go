package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Sales     Category = "Sales"
	Purchase  Category = "Purchase"
	Salary    Category = "Salary"
	Rent      Category = "Rent"
	Utilities Category = "Utilities"
	Marketing Category = "Marketing"
	Others    Category = "Others"

	// AllCategories is the filter value that matches every category.
	AllCategories = "all"
)

type (
	Category string

	// Entry is one dated credit or debit against a company. Balance is derived
	// and always recomputed by the ledger.
	Entry struct {
		ID          int64
		Date        Date
		Particular  string
		Category    Category
		CompanyName string
		Credit      Amount
		Debit       Amount
		Balance     decimal.Decimal
	}

	// Draft holds the user-editable fields of an entry before it is saved.
	Draft struct {
		Date        Date     `json:"date"`
		Particular  string   `json:"particular"`
		Category    Category `json:"category"`
		CompanyName string   `json:"companyName"`
		Credit      Amount   `json:"credit"`
		Debit       Amount   `json:"debit"`
	}

	// ValidationError reports the draft field that blocked a mutation.
	ValidationError struct {
		Field string
		Err   error
	}
)

var (
	ErrEmptyCompany    = errors.New("company name is required")
	ErrEmptyCategory   = errors.New("category is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrCreditAndDebit  = errors.New("credit and debit cannot both be set")
	ErrInvalidAmount   = errors.New("amount must be a non-negative number")
	ErrInvalidDate     = errors.New("invalid date")
)

var categories = []Category{Sales, Purchase, Salary, Rent, Utilities, Marketing, Others}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) IsValid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// NewDraft returns an empty draft dated on the given day.
func NewDraft(on Date) Draft {
	return Draft{Date: on}
}

// Validate checks the fields required before a draft may enter the ledger.
func (d Draft) Validate() error {
	if d.Date.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	if strings.TrimSpace(d.CompanyName) == "" {
		return invalid("companyName", ErrEmptyCompany)
	}
	if strings.TrimSpace(string(d.Category)) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	if !d.Category.IsValid() {
		return invalid("category", fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category))
	}
	if err := d.Credit.Validate(); err != nil {
		return invalid("credit", err)
	}
	if err := d.Debit.Validate(); err != nil {
		return invalid("debit", err)
	}
	if d.Credit.IsSet() && d.Debit.IsSet() {
		return invalid("credit", ErrCreditAndDebit)
	}
	return nil
}

// Entry materialises the draft under the given id. Balance is left zero.
func (d Draft) Entry(id int64) Entry {
	return Entry{
		ID:          id,
		Date:        d.Date,
		Particular:  d.Particular,
		Category:    d.Category,
		CompanyName: d.CompanyName,
		Credit:      d.Credit,
		Debit:       d.Debit,
	}
}

// Draft copies the editable fields of a persisted entry.
func (e Entry) Draft() Draft {
	return Draft{
		Date:        e.Date,
		Particular:  e.Particular,
		Category:    e.Category,
		CompanyName: e.CompanyName,
		Credit:      e.Credit,
		Debit:       e.Debit,
	}
}

// Effect is the signed contribution of the entry to the running balance.
func (e Entry) Effect() decimal.Decimal {
	return e.Credit.Value().Sub(e.Debit.Value())
}

// Date is a calendar day without a time component.
type Date struct {
	time.Time
}

// DateLayout is the persisted and wire format of a Date.
const DateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts yyyy-MM-dd or a full timestamp; anything else
// leaves the date zero.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*d = Date{}
	if s == "" || s == "null" {
		return nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}
