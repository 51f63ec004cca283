// Package catalog parses plain-text product catalogs into Product records.
//
// A catalog is a sequence of entries separated by exactly one blank line.
// Each entry has seven lines in fixed order:
//
//	Product name: Apple
//	Category: Fruits
//	Price: 40 UAH/kg
//	Calories: 52 cal
//	Proteins: 0.3 g
//	Carbohydrates: 14 g
//	Fats: 0.2 g
//
// Only the "Product name:" label may be omitted. Parsing is
// fail-fast: the first bad entry aborts the parse and no partial catalog is
// returned.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/internal/metrics"
	"github.com/msto63/grocer/internal/normalize"
)

// Structural failures wrapped by GrammarError
var (
	ErrMissingField = errors.New("missing field")
	ErrExtraLine    = errors.New("unexpected line after fats")
	ErrSeparator    = errors.New("entries must be separated by exactly one blank line")
)

// GrammarError reports a catalog entry that does not conform to the entry
// structure or whose field value cannot be coerced
type GrammarError struct {
	Entry  int    // 0-based index among entries
	Field  string // empty when the failure is not tied to a field
	Line   int    // 1-based document line
	Column int
	Err    error
}

func (e *GrammarError) Error() string {
	field := e.Field
	if field == "" {
		field = "-"
	}
	// a syntax error already carries the document position
	if _, ok := e.Err.(*grammar.SyntaxError); ok {
		return fmt.Sprintf("entry %d, field %s: %v", e.Entry, field, e.Err)
	}
	if e.Column > 0 {
		return fmt.Sprintf("entry %d, field %s (line %d, column %d): %v", e.Entry, field, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("entry %d, field %s (line %d): %v", e.Entry, field, e.Line, e.Err)
}

func (e *GrammarError) Unwrap() error { return e.Err }

// Code returns the error code used by the foundation error helpers
func (e *GrammarError) Code() mdwerror.Code { return mdwerror.CodeGrammar }

// Options configures a Parser
type Options struct {
	Logger  *mdwlog.Logger
	Metrics *metrics.Registry
}

// Parser turns catalog text into products
type Parser struct {
	logger  *mdwlog.Logger
	metrics *metrics.Registry
}

// NewParser creates a catalog parser
func NewParser(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Parser{
		logger:  logger.WithField("component", "catalog"),
		metrics: opts.Metrics,
	}
}

// Parse parses text with a default parser
func Parse(text string) ([]Product, error) {
	return NewParser(Options{}).Parse(text)
}

// Parse parses a whole catalog document. An empty or blank document yields
// an empty, non-nil slice.
func (p *Parser) Parse(text string) ([]Product, error) {
	start := time.Now()
	text = grammar.NormalizeNewlines(text)

	doc, err := grammar.Match(grammar.Document, text)
	if err != nil {
		entry, field := 0, ""
		var syntaxErr *grammar.SyntaxError
		if errors.As(err, &syntaxErr) {
			entry, field = locate(text, syntaxErr.Offset)
		}
		return nil, p.fail(toGrammarError(text, entry, field, 0, err))
	}

	entries := doc.FindAll(grammar.RuleEntry)
	separators := doc.FindAll(grammar.RuleSeparator)
	products := make([]Product, 0, len(entries))

	for i, entry := range entries {
		if i > 0 && strings.Count(separators[i-1].Text, "\n") != 2 {
			line, _ := grammar.Position(text, entry.Start)
			return nil, p.fail(&GrammarError{Entry: i, Line: line, Err: ErrSeparator})
		}

		product, err := p.parseEntry(text, i, entry)
		if err != nil {
			return nil, p.fail(err)
		}
		products = append(products, product)
	}

	if p.metrics != nil {
		p.metrics.ProductsParsed.Add(float64(len(products)))
	}
	p.logger.Timed("Catalog parsed", start, mdwlog.Fields{
		"products": len(products),
		"bytes":    len(text),
	})
	return products, nil
}

func (p *Parser) parseEntry(text string, index int, entry *grammar.Node) (Product, error) {
	lines := entry.FindAll(grammar.RuleLine)
	var product Product

	for i, field := range grammar.CatalogFields {
		if i >= len(lines) {
			last := lines[len(lines)-1]
			line, _ := grammar.Position(text, last.End)
			return Product{}, &GrammarError{Entry: index, Field: field.Name, Line: line + 1, Err: ErrMissingField}
		}

		src := lines[i]
		lineNo, _ := grammar.Position(text, src.Start)
		node, err := grammar.Match(field.Rule, src.Text)
		if err != nil {
			return Product{}, toGrammarError(text, index, field.Name, src.Start, err)
		}

		if err := assign(&product, field, src.Text, node); err != nil {
			return Product{}, &GrammarError{Entry: index, Field: field.Name, Line: lineNo, Err: err}
		}
	}

	if len(lines) > len(grammar.CatalogFields) {
		extra := lines[len(grammar.CatalogFields)]
		line, _ := grammar.Position(text, extra.Start)
		return Product{}, &GrammarError{Entry: index, Line: line, Err: ErrExtraLine}
	}

	p.logger.Trace("Entry parsed", mdwlog.Fields{
		"entry":   index,
		"product": product.ProductName,
	})
	return product, nil
}

// assign coerces one matched line into its product field
func assign(product *Product, field grammar.Field, text string, node *grammar.Node) error {
	var err error
	switch field.Name {
	case grammar.RuleProductName:
		product.ProductName, err = normalize.Name(field.Name, node.Find(grammar.RuleName).Text)
	case grammar.RuleCategory:
		product.Category = normalize.Category(node.Find(grammar.RuleName).Text)
	case grammar.RulePrice:
		product.PricePerUnit, product.Unit, err = normalize.Price(field.Name, text)
	case grammar.RuleCalories:
		product.Calories, err = normalize.Measure(field.Name, text, field.Label, field.Suffix)
	case grammar.RuleProteins:
		product.Proteins, err = normalize.Measure(field.Name, text, field.Label, field.Suffix)
	case grammar.RuleCarbohydrates:
		product.Carbohydrates, err = normalize.Measure(field.Name, text, field.Label, field.Suffix)
	case grammar.RuleFats:
		product.Fats, err = normalize.Measure(field.Name, text, field.Label, field.Suffix)
	default:
		err = fmt.Errorf("unknown field %q", field.Name)
	}
	return err
}

// toGrammarError wraps err. A syntax error found in a slice of text that
// starts at byte base is rebased onto the whole document.
func toGrammarError(text string, entry int, field string, base int, err error) *GrammarError {
	ge := &GrammarError{Entry: entry, Field: field, Err: err}
	var syntaxErr *grammar.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return ge
	}
	rebased := *syntaxErr
	rebased.Offset += base
	rebased.Line, rebased.Column = grammar.Position(text, rebased.Offset)
	ge.Err = &rebased
	ge.Line, ge.Column = rebased.Line, rebased.Column
	return ge
}

// locate maps a document offset to the entry and field line it falls in
func locate(text string, offset int) (entry int, field string) {
	entry, row := -1, 0
	blank := true
	for start := 0; ; {
		end := strings.IndexByte(text[start:], '\n')
		line := text[start:]
		if end >= 0 {
			line = text[start : start+end]
		}
		if strings.Trim(line, " \t") == "" {
			blank = true
		} else {
			if blank {
				entry, row = entry+1, 0
			} else {
				row++
			}
			blank = false
		}
		if end < 0 || start+end+1 > offset {
			break
		}
		start += end + 1
	}

	if entry < 0 {
		return 0, ""
	}
	if row < len(grammar.CatalogFields) {
		field = grammar.CatalogFields[row].Name
	}
	return entry, field
}

func (p *Parser) fail(err error) error {
	if p.metrics != nil {
		p.metrics.ParseFailures.Inc()
	}
	p.logger.Debug("Catalog rejected", mdwlog.Err(err))
	return err
}
