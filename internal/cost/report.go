package cost

import (
	"encoding/json"
	"fmt"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/foundation/utils/mathx"
)

// DiagnosticKind classifies why a requested item was not priced
type DiagnosticKind string

const (
	KindMalformed    DiagnosticKind = "malformed"
	KindNotFound     DiagnosticKind = "not_found"
	KindUnitMismatch DiagnosticKind = "unit_mismatch"
)

// LookupError reports a requested product that is not in the catalog
type LookupError struct {
	ProductName string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("product %q not found in catalog", e.ProductName)
}

// Code returns the error code used by the foundation error helpers
func (e *LookupError) Code() mdwerror.Code { return mdwerror.CodeNotFound }

// UnitMismatchError reports a requested unit that differs from the unit the
// product is priced in
type UnitMismatchError struct {
	ProductName string
	Requested   string
	Stored      string // empty when the catalog unit has no "/"
	Composite   string
}

func (e *UnitMismatchError) Error() string {
	if e.Stored == "" {
		return fmt.Sprintf("product %q has malformed unit %q", e.ProductName, e.Composite)
	}
	return fmt.Sprintf("product %q is priced per %s, requested %s", e.ProductName, e.Stored, e.Requested)
}

// Code returns the error code used by the foundation error helpers
func (e *UnitMismatchError) Code() mdwerror.Code { return mdwerror.CodeUnitMismatch }

// CostLine is one priced item
type CostLine struct {
	ProductName  string        `json:"product_name"`
	Quantity     float64       `json:"quantity"`
	Unit         string        `json:"unit"`
	Currency     string        `json:"currency"`
	PricePerUnit mathx.Decimal `json:"price_per_unit"`
	ExtendedCost mathx.Decimal `json:"extended_cost"`
}

// FormatCost renders the extended cost with its currency, e.g. "20.00 UAH"
func (l CostLine) FormatCost() string {
	return mathx.FormatCurrency(l.ExtendedCost, l.Currency)
}

// Diagnostic is a non-fatal reason an item was skipped
type Diagnostic struct {
	Index   int
	Segment string
	Kind    DiagnosticKind
	Err     error
}

// MarshalJSON renders the cause as a message and its error code
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	message := ""
	if d.Err != nil {
		message = d.Err.Error()
	}
	return json.Marshal(struct {
		Index   int            `json:"index"`
		Segment string         `json:"segment"`
		Kind    DiagnosticKind `json:"kind"`
		Code    mdwerror.Code  `json:"code"`
		Message string         `json:"message"`
	}{d.Index, d.Segment, d.Kind, mdwerror.GetCode(d.Err), message})
}

// Outcome is the result for one requested entry: exactly one of Line and
// Diagnostic is set
type Outcome struct {
	Index      int         `json:"index"`
	Line       *CostLine   `json:"line,omitempty"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// Total is the sum of all cost lines in one currency
type Total struct {
	Currency string        `json:"currency"`
	Amount   mathx.Decimal `json:"amount"`
}

func (t Total) String() string {
	return mathx.FormatCurrency(t.Amount, t.Currency)
}

// Report is the result of pricing a shopping list. Totals are ordered by
// the first appearance of each currency.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
	Totals   []Total   `json:"totals"`
}

// Lines returns all priced lines in order
func (r *Report) Lines() []CostLine {
	var lines []CostLine
	for _, o := range r.Outcomes {
		if o.Line != nil {
			lines = append(lines, *o.Line)
		}
	}
	return lines
}

// Diagnostics returns all skipped items in order
func (r *Report) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, o := range r.Outcomes {
		if o.Diagnostic != nil {
			diags = append(diags, *o.Diagnostic)
		}
	}
	return diags
}

// Total returns the total for currency
func (r *Report) Total(currency string) (mathx.Decimal, bool) {
	for _, t := range r.Totals {
		if t.Currency == currency {
			return t.Amount, true
		}
	}
	return mathx.Zero(), false
}
