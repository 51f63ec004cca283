// Package cost prices parsed shopping lists against a catalog.
//
// Items are matched by exact product name (first catalog match wins) and
// must be requested in the unit the product is priced in. Items that cannot
// be priced become diagnostics; they never stop the remaining items from
// being priced. Totals are kept per currency.
package cost

import (
	"time"

	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/foundation/utils/mathx"
	"github.com/msto63/grocer/internal/catalog"
	"github.com/msto63/grocer/internal/metrics"
	"github.com/msto63/grocer/internal/normalize"
	"github.com/msto63/grocer/internal/shopping"
)

// Options configures an Aggregator
type Options struct {
	Logger  *mdwlog.Logger
	Metrics *metrics.Registry
}

// Aggregator joins shopping list entries with catalog products
type Aggregator struct {
	logger  *mdwlog.Logger
	metrics *metrics.Registry
}

// New creates an Aggregator
func New(opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Aggregator{
		logger:  logger.WithField("component", "cost"),
		metrics: opts.Metrics,
	}
}

// Aggregate prices entries with a default Aggregator
func Aggregate(entries []shopping.Entry, products []catalog.Product) *Report {
	return New(Options{}).Aggregate(entries, products)
}

// Aggregate prices every entry in order and sums the cost lines per
// currency
func (a *Aggregator) Aggregate(entries []shopping.Entry, products []catalog.Product) *Report {
	start := time.Now()
	report := &Report{Outcomes: make([]Outcome, 0, len(entries))}
	totals := make(map[string]int)

	for _, entry := range entries {
		line, diag := a.price(entry, products)
		if diag != nil {
			report.Outcomes = append(report.Outcomes, Outcome{Index: entry.Index, Diagnostic: diag})
			a.logger.Debug("Item skipped", mdwlog.Fields{
				"index":   entry.Index,
				"segment": entry.Segment,
				"kind":    string(diag.Kind),
			}, mdwlog.Err(diag.Err))
			if a.metrics != nil {
				a.metrics.Diagnostics.WithLabelValues(string(diag.Kind)).Inc()
			}
			continue
		}

		report.Outcomes = append(report.Outcomes, Outcome{Index: entry.Index, Line: line})
		i, seen := totals[line.Currency]
		if !seen {
			i = len(report.Totals)
			totals[line.Currency] = i
			report.Totals = append(report.Totals, Total{Currency: line.Currency, Amount: mathx.Zero()})
		}
		report.Totals[i].Amount = report.Totals[i].Amount.Add(line.ExtendedCost)

		if a.metrics != nil {
			a.metrics.CostLines.WithLabelValues(line.Currency).Inc()
			a.metrics.Spend.WithLabelValues(line.Currency).Add(line.ExtendedCost.Float64())
		}
	}

	if a.metrics != nil {
		a.metrics.ListItems.Add(float64(len(entries)))
	}
	a.logger.Timed("Shopping list priced", start, mdwlog.Fields{
		"items":      len(entries),
		"lines":      len(report.Outcomes) - len(report.Diagnostics()),
		"currencies": len(report.Totals),
	})
	return report
}

func (a *Aggregator) price(entry shopping.Entry, products []catalog.Product) (*CostLine, *Diagnostic) {
	diag := func(kind DiagnosticKind, err error) *Diagnostic {
		return &Diagnostic{Index: entry.Index, Segment: entry.Segment, Kind: kind, Err: err}
	}

	if entry.Err != nil {
		return nil, diag(KindMalformed, entry.Err)
	}
	item := entry.Item

	product, ok := catalog.Find(products, item.ProductName)
	if !ok {
		return nil, diag(KindNotFound, &LookupError{ProductName: item.ProductName})
	}

	currency, stored, ok := normalize.SplitUnit(product.Unit)
	if !ok {
		return nil, diag(KindUnitMismatch, &UnitMismatchError{
			ProductName: item.ProductName,
			Requested:   item.Unit,
			Composite:   product.Unit,
		})
	}
	if stored != item.Unit {
		return nil, diag(KindUnitMismatch, &UnitMismatchError{
			ProductName: item.ProductName,
			Requested:   item.Unit,
			Stored:      stored,
			Composite:   product.Unit,
		})
	}

	price, err := mathx.NewDecimalFromFloat(product.PricePerUnit)
	if err != nil {
		return nil, diag(KindMalformed, err)
	}
	quantity, err := mathx.NewDecimalFromFloat(item.Quantity)
	if err != nil {
		return nil, diag(KindMalformed, err)
	}

	return &CostLine{
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		Currency:     currency,
		PricePerUnit: price,
		ExtendedCost: price.Multiply(quantity),
	}, nil
}
