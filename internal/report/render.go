// Package report renders products, cost reports and the credits banner for
// the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/grocer/internal/catalog"
	"github.com/msto63/grocer/internal/cost"
	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/pkg/core/version"
)

// Renderer turns domain values into terminal text
type Renderer struct {
	styles Styles
	plain  bool
}

// New creates a renderer. Plain output carries no color or borders.
func New(plain bool) *Renderer {
	if plain {
		return &Renderer{styles: PlainStyles(), plain: true}
	}
	return &Renderer{styles: DefaultStyles()}
}

// Product renders all seven fields in catalog label form
func (r *Renderer) Product(p catalog.Product) string {
	lines := strings.Split(p.Format(), "\n")
	for i, line := range lines {
		label := grammar.CatalogFields[i].Label
		lines[i] = r.styles.Label.Render(label) + strings.TrimPrefix(line, label)
	}
	body := strings.Join(lines, "\n")
	if r.plain {
		return body
	}
	return r.styles.Box.Render(r.styles.Title.Render(p.ProductName) + "\n" + body)
}

// Report renders priced lines, skipped items and per-currency totals
func (r *Renderer) Report(rep *cost.Report) string {
	var b strings.Builder

	for _, o := range rep.Outcomes {
		switch {
		case o.Line != nil:
			b.WriteString(r.styles.Line.Render(FormatLine(*o.Line)))
		case o.Diagnostic != nil:
			b.WriteString(r.styles.Diagnostic.Render(FormatDiagnostic(*o.Diagnostic)))
		}
		b.WriteByte('\n')
	}

	if len(rep.Totals) == 0 {
		b.WriteString(r.styles.Muted.Render("Total: nothing priced"))
		return b.String()
	}
	for i, t := range rep.Totals {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.styles.Total.Render("Total: " + t.String()))
	}
	return b.String()
}

// Credits renders the author and version banner
func (r *Renderer) Credits(info version.Info) string {
	lines := []string{
		r.styles.Title.Render(info.String()),
		"Plain-text product catalog parser and shopping list calculator",
		r.styles.Label.Render("Author: ") + info.Author,
	}
	body := strings.Join(lines, "\n")
	if r.plain {
		return body
	}
	return r.styles.Box.Render(body)
}

// FormatLine renders a cost line as "- 2 kg apple, price: 20.00 UAH"
func FormatLine(l cost.CostLine) string {
	return fmt.Sprintf("- %s %s %s, price: %s",
		strconv.FormatFloat(l.Quantity, 'f', -1, 64), l.Unit, l.ProductName, l.FormatCost())
}

// FormatDiagnostic renders a skipped item
func FormatDiagnostic(d cost.Diagnostic) string {
	return fmt.Sprintf("! skipped %q (%s): %v", d.Segment, d.Kind, d.Err)
}
