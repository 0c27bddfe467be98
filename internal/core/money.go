// Package core holds the ledger domain types.
//
// This file contains the display formatting of money values.
package core

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code every ledger amount is expressed in.
const Currency = money.INR

// FormatINR renders d in rupees with two decimals, e.g. "₹1,234.50".
func FormatINR(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	frac := int32(cur.Fraction)
	return cur.Formatter().Format(d.Round(frac).Shift(frac).IntPart())
}

// FormatFixed renders d with two decimals and no grouping, e.g. "1234.50".
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
