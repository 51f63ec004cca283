package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/internal/normalize"
)

// Product is one catalog entry
type Product struct {
	ProductName   string  `json:"product_name" yaml:"product_name"`
	Category      string  `json:"category" yaml:"category"`
	PricePerUnit  float64 `json:"price_per_unit" yaml:"price_per_unit"`
	Unit          string  `json:"unit" yaml:"unit"` // "CURRENCY/UNIT"
	Calories      float64 `json:"calories" yaml:"calories"`
	Proteins      float64 `json:"proteins" yaml:"proteins"`
	Carbohydrates float64 `json:"carbohydrates" yaml:"carbohydrates"`
	Fats          float64 `json:"fats" yaml:"fats"`
}

// Currency returns the currency half of the composite unit
func (p Product) Currency() string {
	currency, _, _ := normalize.SplitUnit(p.Unit)
	return currency
}

// MeasureUnit returns the unit half of the composite unit, or "" when the
// stored unit has no separator
func (p Product) MeasureUnit() string {
	_, unit, _ := normalize.SplitUnit(p.Unit)
	return unit
}

// Format renders the product in the labelled seven line catalog form.
// Parsing the result yields the same product.
func (p Product) Format() string {
	values := []string{
		p.ProductName,
		p.Category,
		fmt.Sprintf("%s %s", formatNumber(p.PricePerUnit), p.Unit),
		formatNumber(p.Calories),
		formatNumber(p.Proteins),
		formatNumber(p.Carbohydrates),
		formatNumber(p.Fats),
	}

	var b strings.Builder
	for i, f := range grammar.CatalogFields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Label)
		b.WriteByte(' ')
		b.WriteString(values[i])
		if f.Suffix != "" {
			b.WriteByte(' ')
			b.WriteString(f.Suffix)
		}
	}
	return b.String()
}

// FormatCatalog renders products as a catalog document
func FormatCatalog(products []Product) string {
	entries := make([]string, len(products))
	for i, p := range products {
		entries[i] = p.Format()
	}
	if len(entries) == 0 {
		return ""
	}
	return strings.Join(entries, "\n\n") + "\n"
}

// Find returns the first product whose name equals name exactly
func Find(products []Product, name string) (Product, bool) {
	for _, p := range products {
		if p.ProductName == name {
			return p, true
		}
	}
	return Product{}, false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
