// Package shopping parses free-text shopping lists into requested items.
//
// A list is a comma separated sequence of "<name> <quantity> <unit>"
// items. Names may contain several words: the last two tokens of an item
// are always quantity and unit, everything before them is the name. Each
// item is parsed on its own, so one bad item never hides the others.
package shopping

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/internal/normalize"
)

// ItemSeparator separates items of a list
const ItemSeparator = ","

// RequestedItem is one parsed shopping list item
type RequestedItem struct {
	ProductName string  `json:"product_name" yaml:"product_name"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	Unit        string  `json:"unit" yaml:"unit"`
}

func (r RequestedItem) String() string {
	return fmt.Sprintf("%s %s %s", r.ProductName, formatQuantity(r.Quantity), r.Unit)
}

// ItemFormatError reports a list segment that is not a valid item
type ItemFormatError struct {
	Index   int // 0-based position of the segment in the list
	Segment string
	Reason  string
	Err     error
}

func (e *ItemFormatError) Error() string {
	return fmt.Sprintf("item %d %q: %s", e.Index+1, e.Segment, e.Reason)
}

func (e *ItemFormatError) Unwrap() error { return e.Err }

// Code returns the error code used by the foundation error helpers
func (e *ItemFormatError) Code() mdwerror.Code { return mdwerror.CodeItemFormat }

// Entry is the result for one list segment: either Item or Err is set
type Entry struct {
	Index   int
	Segment string
	Item    RequestedItem
	Err     error
}

// OK reports whether the segment parsed
func (e Entry) OK() bool { return e.Err == nil }

// ParseList splits text on commas and parses every segment. It returns one
// Entry per segment in input order; blank input yields no entries.
func ParseList(text string) []Entry {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	segments := strings.Split(text, ItemSeparator)
	entries := make([]Entry, 0, len(segments))
	for i, raw := range segments {
		segment := strings.TrimSpace(raw)
		item, err := parseItem(i, segment)
		entries = append(entries, Entry{Index: i, Segment: segment, Item: item, Err: err})
	}
	return entries
}

// ParseItem parses a single "<name> <quantity> <unit>" item
func ParseItem(text string) (RequestedItem, error) {
	return parseItem(0, strings.TrimSpace(text))
}

// Items returns the successfully parsed items of entries
func Items(entries []Entry) []RequestedItem {
	var items []RequestedItem
	for _, e := range entries {
		if e.OK() {
			items = append(items, e.Item)
		}
	}
	return items
}

func parseItem(index int, segment string) (RequestedItem, error) {
	fail := func(reason string, err error) (RequestedItem, error) {
		return RequestedItem{}, &ItemFormatError{Index: index, Segment: segment, Reason: reason, Err: err}
	}

	if segment == "" {
		return fail("empty item", nil)
	}

	tokens := strings.Fields(segment)
	if len(tokens) < 3 {
		return fail(fmt.Sprintf("expected <name> <quantity> <unit>, got %d token(s)", len(tokens)), nil)
	}

	n := len(tokens)
	name := strings.Join(tokens[:n-2], " ")
	if _, err := grammar.Match(grammar.Name, name); err != nil {
		return fail(fmt.Sprintf("invalid name %q", name), err)
	}
	quantity, err := normalize.Decimal("quantity", tokens[n-2])
	if err != nil {
		return fail(fmt.Sprintf("invalid quantity %q", tokens[n-2]), err)
	}
	if _, err := grammar.Match(grammar.Unit, tokens[n-1]); err != nil {
		return fail(fmt.Sprintf("unknown unit %q", tokens[n-1]), err)
	}

	return RequestedItem{ProductName: name, Quantity: quantity, Unit: tokens[n-1]}, nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
