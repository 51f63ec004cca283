package shopping

import (
	"strings"

	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/internal/normalize"
)

const categorizedFormat = "expected <name> <quantity> <unit> - <category>"

// CategorizedItem is an item of the line oriented dialect
// "<name> <quantity> <unit> - <category>"
type CategorizedItem struct {
	RequestedItem
	Category string `json:"category" yaml:"category"`
}

// CategorizedEntry is the result for one line of a categorized list
type CategorizedEntry struct {
	Index int // 0-based line number
	Line  string
	Item  CategorizedItem
	Err   error
}

// ParseCategorized parses one line of the categorized dialect
func ParseCategorized(line string) (CategorizedItem, error) {
	return parseCategorized(0, strings.TrimSpace(line))
}

// ParseCategorizedList parses a categorized list, one item per line.
// Blank lines are skipped but still count for Index.
func ParseCategorizedList(text string) []CategorizedEntry {
	var entries []CategorizedEntry
	for i, raw := range strings.Split(grammar.NormalizeNewlines(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		item, err := parseCategorized(i, line)
		entries = append(entries, CategorizedEntry{Index: i, Line: line, Item: item, Err: err})
	}
	return entries
}

func parseCategorized(index int, line string) (CategorizedItem, error) {
	node, err := grammar.Match(grammar.CategorizedItem, line)
	if err != nil {
		return CategorizedItem{}, &ItemFormatError{Index: index, Segment: line, Reason: categorizedFormat, Err: err}
	}

	quantity, err := normalize.Decimal("quantity", node.Find(grammar.RuleQuantity).Text)
	if err != nil {
		return CategorizedItem{}, &ItemFormatError{Index: index, Segment: line, Reason: "invalid quantity", Err: err}
	}

	return CategorizedItem{
		RequestedItem: RequestedItem{
			ProductName: node.Find(grammar.RuleName).Text,
			Quantity:    quantity,
			Unit:        node.Find(grammar.RuleUnit).Text,
		},
		Category: node.Find(grammar.RuleCategory).Text,
	}, nil
}
