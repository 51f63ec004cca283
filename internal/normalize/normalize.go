// Package normalize turns text captured by the grammar into typed field
// values: trimmed names, decimals and the composite "CURRENCY/UNIT" token.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/grammar"
)

// UnitSeparator joins currency and unit in a composite unit
const UnitSeparator = "/"

// ErrEmpty is returned for a value that is blank after trimming
var ErrEmpty = errors.New("empty value")

// FieldCoercionError reports a captured substring that cannot become a
// typed value
type FieldCoercionError struct {
	Field string
	Text  string
	Err   error
}

func (e *FieldCoercionError) Error() string {
	return fmt.Sprintf("field %s: cannot coerce %q: %v", e.Field, e.Text, e.Err)
}

func (e *FieldCoercionError) Unwrap() error { return e.Err }

// Code returns the error code used by the foundation error helpers
func (e *FieldCoercionError) Code() mdwerror.Code { return mdwerror.CodeFieldCoercion }

// Name trims a product name and rejects an empty result
func Name(field, text string) (string, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", &FieldCoercionError{Field: field, Text: text, Err: ErrEmpty}
	}
	return name, nil
}

// Category trims a category value
func Category(text string) string {
	return strings.TrimSpace(text)
}

// Decimal parses a decimal amount. Only the grammar's decimal form is
// accepted: no sign, no exponent, no thousands separators.
func Decimal(field, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, &FieldCoercionError{Field: field, Text: text, Err: ErrEmpty}
	}
	if _, err := grammar.Match(grammar.Decimal, trimmed); err != nil {
		return 0, &FieldCoercionError{Field: field, Text: text, Err: err}
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FieldCoercionError{Field: field, Text: text, Err: err}
	}
	return value, nil
}

// Measure strips an exact leading label and trailing suffix from a line such
// as "Calories: 52 cal" and parses what is left as a decimal.
func Measure(field, text, label, suffix string) (float64, error) {
	value := strings.TrimSpace(text)
	value = strings.TrimSpace(strings.TrimPrefix(value, label))
	if suffix != "" {
		value = strings.TrimSpace(strings.TrimSuffix(value, suffix))
	}
	v, err := Decimal(field, value)
	if err != nil {
		var coercion *FieldCoercionError
		if errors.As(err, &coercion) {
			coercion.Text = text
		}
		return 0, err
	}
	return v, nil
}

// Price parses a price line ("Price: 10 UAH/kg", label optional) into the
// amount and the composite unit "UAH/kg".
func Price(field, text string) (float64, string, error) {
	value := strings.TrimSpace(text)
	value = strings.TrimSpace(strings.TrimPrefix(value, "Price:"))

	node, err := grammar.Match(grammar.PriceValue, value)
	if err != nil {
		return 0, "", &FieldCoercionError{Field: field, Text: text, Err: err}
	}

	amount, err := Decimal(field, node.Find(grammar.RuleDecimal).Text)
	if err != nil {
		return 0, "", err
	}
	unit := CompositeUnit(node.Find(grammar.RuleCurrency).Text, node.Find(grammar.RuleUnit).Text)
	return amount, unit, nil
}

// CompositeUnit builds "CURRENCY/UNIT" with no whitespace
func CompositeUnit(currency, unit string) string {
	return strings.TrimSpace(currency) + UnitSeparator + strings.TrimSpace(unit)
}

// SplitUnit splits a composite unit at its first "/". ok is false when the
// value has no separator.
func SplitUnit(composite string) (currency, unit string, ok bool) {
	return strings.Cut(composite, UnitSeparator)
}
