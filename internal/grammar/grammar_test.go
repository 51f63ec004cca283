package grammar

import (
	"errors"
	"strings"
	"testing"
)

func TestMatch_Terminals(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		input   string
		wantErr bool
	}{
		{"decimal integer", Decimal, "100", false},
		{"decimal fraction", Decimal, "0.35", false},
		{"decimal trailing dot", Decimal, "5.", true},
		{"decimal leading dot", Decimal, ".5", true},
		{"decimal comma", Decimal, "2,5", true},
		{"currency", Currency, "UAH", false},
		{"currency lowercase", Currency, "uah", true},
		{"currency unknown", Currency, "GBP", true},
		{"unit kg", Unit, "kg", false},
		{"unit g", Unit, "g", false},
		{"unit l", Unit, "l", false},
		{"unit ml", Unit, "ml", false},
		{"unit pcs", Unit, "pcs", false},
		{"unit plural", Unit, "kgs", true},
		{"name single", Name, "apple", false},
		{"name words", Name, "green apple", false},
		{"name cyrillic", Name, "яблуко", false},
		{"name double space", Name, "green  apple", true},
		{"name digit", Name, "apple2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Match(tt.rule, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Match(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestMatch_Captures(t *testing.T) {
	node, err := Match(Price, "Price: 40.5 UAH/kg")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	value := node.Find(RulePriceValue)
	if value == nil || value.Text != "40.5 UAH/kg" {
		t.Fatalf("price_value = %+v, want 40.5 UAH/kg", value)
	}
	checks := map[string]string{
		RuleDecimal:  "40.5",
		RuleCurrency: "UAH",
		RuleUnit:     "kg",
	}
	for rule, want := range checks {
		got := value.Find(rule)
		if got == nil || got.Text != want {
			t.Errorf("Find(%s) = %+v, want %q", rule, got, want)
		}
	}
	if value.Start != len("Price: ") {
		t.Errorf("price_value Start = %d, want %d", value.Start, len("Price: "))
	}
}

func TestMatch_OptionalLabel(t *testing.T) {
	for _, input := range []string{"Product name: Apple", "Apple", "  Product name:Apple  "} {
		node, err := Match(ProductName, input)
		if err != nil {
			t.Errorf("Match(%q) error = %v", input, err)
			continue
		}
		if got := node.Find(RuleName).Text; got != "Apple" {
			t.Errorf("Match(%q) name = %q, want Apple", input, got)
		}
	}
}

func TestMatch_MandatoryLabel(t *testing.T) {
	if _, err := Match(Calories, "52 cal"); err == nil {
		t.Error("Calories without label should fail")
	}
	if _, err := Match(Price, "40 UAH/kg"); err == nil {
		t.Error("Price without label should fail")
	}
	if _, err := Match(Category, "fruit"); err == nil {
		t.Error("Category without label should fail")
	}
	if _, err := Match(ProductName, "apple"); err != nil {
		t.Errorf("ProductName without label: error = %v", err)
	}
	for _, input := range []string{"Calories: 52 cal", "Calories: 52", "Calories:52cal"} {
		if _, err := Match(Calories, input); err != nil {
			t.Errorf("Match(Calories, %q) error = %v", input, err)
		}
	}
}

func TestClass_ReplacementCharacter(t *testing.T) {
	anyRune := Class("any", func(rune) bool { return true })

	if _, err := Match(anyRune, "\uFFFD"); err != nil {
		t.Errorf("encoded U+FFFD: error = %v", err)
	}
	if _, err := Match(anyRune, "\xff"); err == nil {
		t.Error("invalid byte should not match")
	}
}

func TestMatch_OrderedChoiceBacktracks(t *testing.T) {
	// "l" is listed before "ml"; the first alternative fails and the second wins
	node, err := Match(Unit, "ml")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if got := node.Find(RuleUnit).Text; got != "ml" {
		t.Errorf("unit = %q, want ml", got)
	}

	// a failed alternative must not leave captures behind
	rule := Choice(Seq(Capture("a", Lit("x")), Lit("y")), Capture("b", Lit("xz")))
	node, err = Match(rule, "xz")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(node.Children) != 1 || node.Children[0].Rule != "b" {
		t.Errorf("children = %+v, want only b", node.Children)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := Match(Price, "Price: abc UAH/kg")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %T, want *SyntaxError", err)
	}
	if syntaxErr.Offset != 7 || syntaxErr.Line != 1 || syntaxErr.Column != 8 {
		t.Errorf("position = %d (%d:%d), want 7 (1:8)", syntaxErr.Offset, syntaxErr.Line, syntaxErr.Column)
	}
	if !strings.Contains(syntaxErr.Error(), "decimal number") {
		t.Errorf("Error() = %q, want mention of decimal number", syntaxErr.Error())
	}
	if syntaxErr.Found != `'a'` {
		t.Errorf("Found = %s, want 'a'", syntaxErr.Found)
	}
}

func TestSyntaxError_TrailingInput(t *testing.T) {
	_, err := Match(Unit, "kgx")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %T, want *SyntaxError", err)
	}
	if syntaxErr.Offset != 2 {
		t.Errorf("Offset = %d, want 2", syntaxErr.Offset)
	}
}

func TestPosition(t *testing.T) {
	input := "ab\nсир\nx"
	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{3, 2, 1},
		{len("ab\nсир"), 2, 4},
		{len(input), 3, 2},
	}
	for _, tt := range tests {
		line, col := Position(input, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestDocument_Entries(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		entries []int // lines per entry
		seps    []int // newlines per separator
	}{
		{"empty", "", nil, nil},
		{"blank only", "\n  \n\t\n", nil, nil},
		{"single", "a\nb\nc", []int{3}, nil},
		{"two", "a\nb\n\nc\nd\n", []int{2, 2}, []int{2}},
		{"whitespace separator", "a\n   \nb", []int{1, 1}, []int{2}},
		{"double separator", "a\n\n\nb", []int{1, 1}, []int{3}},
		{"leading blanks", "\n\na", []int{1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Match(Document, tt.input)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			entries := node.FindAll(RuleEntry)
			if len(entries) != len(tt.entries) {
				t.Fatalf("entries = %d, want %d", len(entries), len(tt.entries))
			}
			for i, e := range entries {
				if got := len(e.FindAll(RuleLine)); got != tt.entries[i] {
					t.Errorf("entry %d lines = %d, want %d", i, got, tt.entries[i])
				}
			}
			seps := node.FindAll(RuleSeparator)
			if len(seps) != len(tt.seps) {
				t.Fatalf("separators = %d, want %d", len(seps), len(tt.seps))
			}
			for i, s := range seps {
				if got := strings.Count(s.Text, "\n"); got != tt.seps[i] {
					t.Errorf("separator %d newlines = %d, want %d", i, got, tt.seps[i])
				}
			}
		})
	}
}

func TestCategorizedItem(t *testing.T) {
	node, err := Match(CategorizedItem, "green apple 2.5 kg - fresh fruit")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if got := node.Find(RuleName).Text; got != "green apple" {
		t.Errorf("name = %q", got)
	}
	if got := node.Find(RuleQuantity).Text; got != "2.5" {
		t.Errorf("quantity = %q", got)
	}
	if got := node.Find(RuleCategory).Find(RuleName).Text; got != "fresh fruit" {
		t.Errorf("category = %q", got)
	}

	if _, err := Match(CategorizedItem, "apple 2 kg"); err == nil {
		t.Error("missing category should fail")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc\n"); got != "a\nb\nc\n" {
		t.Errorf("NormalizeNewlines() = %q", got)
	}
}
