package core

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an optional non-negative money value. Text that is not a plain
// number is kept verbatim and contributes its leading numeric prefix (or 0)
// to balances, but never passes validation.
type Amount struct {
	value   decimal.Decimal
	set     bool
	inexact bool
	raw     string
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// NewAmount returns a set amount holding d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, set: true}
}

// AmountFromInt is a shorthand for whole-unit amounts.
func AmountFromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// ParseAmount reads user text strictly. Blank text is an absent amount.
func ParseAmount(s string) (Amount, error) {
	a := LenientAmount(s)
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// LenientAmount reads stored text the way the balance scan needs it: blank is
// absent, a numeric prefix counts, anything else counts as zero.
func LenientAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return Amount{value: d, set: true}
	}
	a := Amount{set: true, inexact: true, raw: s}
	if m := numericPrefix.FindString(s); m != "" {
		if d, err := decimal.NewFromString(m); err == nil {
			a.value = d
		}
	}
	return a
}

func (a Amount) IsSet() bool { return a.set }

// Value is the numeric contribution of the amount, zero when absent.
func (a Amount) Value() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	return a.value
}

// Validate accepts absent amounts and non-negative plain numbers.
func (a Amount) Validate() error {
	if !a.set {
		return nil
	}
	if a.inexact || a.value.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (a Amount) String() string {
	switch {
	case !a.set:
		return ""
	case a.inexact:
		return a.raw
	default:
		return a.value.String()
	}
}

func (a Amount) Equal(b Amount) bool {
	return a.set == b.set && a.inexact == b.inexact && a.raw == b.raw && a.value.Equal(b.value)
}

// MarshalJSON writes null for an absent amount and a string otherwise.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts null, a JSON number or a string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = Amount{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*a = LenientAmount(text)
		return nil
	}
	*a = LenientAmount(s)
	return nil
}
