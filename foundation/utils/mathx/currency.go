// File: currency.go
// Title: Currency Operations and Formatting
// Description: Currency registry and Money formatting. The registry holds
//              the currencies a catalog price may be quoted in.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with currency formatting and operations
// - 2026-10-16 v0.2.0: Registry reduced to UAH, USD and EUR; unrounded arithmetic

package mathx

import (
	"fmt"
	"strings"
)

// Currency represents a currency with its properties
type Currency struct {
	Code          string // ISO 4217 code
	Symbol        string
	DecimalPlaces int
	Name          string
}

// Supported currencies
var (
	UAH = Currency{Code: "UAH", Symbol: "₴", DecimalPlaces: 2, Name: "Ukrainian Hryvnia"}
	USD = Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2, Name: "US Dollar"}
	EUR = Currency{Code: "EUR", Symbol: "€", DecimalPlaces: 2, Name: "Euro"}
)

// CurrencyRegistry holds all known currencies
var CurrencyRegistry = map[string]Currency{
	"UAH": UAH,
	"USD": USD,
	"EUR": EUR,
}

// GetCurrency retrieves a currency by code
func GetCurrency(code string) (Currency, bool) {
	currency, exists := CurrencyRegistry[strings.ToUpper(code)]
	return currency, exists
}

// Money represents a monetary amount with currency. Amounts are kept exact;
// rounding happens only when formatting.
type Money struct {
	Amount   Decimal
	Currency Currency
}

// NewMoney creates a new Money instance
func NewMoney(amount Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// String formats the money with its code, e.g. "20.00 UAH"
func (m Money) String() string {
	return m.FormatWithCode()
}

// FormatWithCode formats the money with the currency code
func (m Money) FormatWithCode() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(m.Currency.DecimalPlaces), m.Currency.Code)
}

// FormatCurrency formats an amount for a currency code, falling back to two
// places and the raw code for unknown currencies
func FormatCurrency(amount Decimal, currencyCode string) string {
	currency, exists := GetCurrency(currencyCode)
	if !exists {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), currencyCode)
	}
	return NewMoney(amount, currency).FormatWithCode()
}
