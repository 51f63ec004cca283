package grammar

import (
	"strings"
	"unicode"
)

// Capture names produced by the catalog and list rules
const (
	RuleDecimal       = "decimal"
	RuleCurrency      = "currency"
	RuleUnit          = "unit"
	RuleName          = "name"
	RuleQuantity      = "quantity"
	RuleProductName   = "product_name"
	RuleCategory      = "category"
	RulePrice         = "price"
	RulePriceValue    = "price_value"
	RuleCalories      = "calories"
	RuleProteins      = "proteins"
	RuleCarbohydrates = "carbohydrates"
	RuleFats          = "fats"
	RuleEntry         = "entry"
	RuleLine          = "line"
	RuleSeparator     = "separator"
)

// Currencies and units the grammar accepts, in match order
var (
	Currencies = []string{"UAH", "USD", "EUR"}
	Units      = []string{"kg", "g", "l", "ml", "pcs"}
)

var (
	// WS is a single insignificant blank (space or tab)
	WS = Class("whitespace", func(r rune) bool { return r == ' ' || r == '\t' })

	ws      = Many(WS)
	newline = Lit("\n")
	digit   = Class("digit", func(r rune) bool { return r >= '0' && r <= '9' })
	letter  = Class("letter", unicode.IsLetter)
	word    = Many1(letter)

	// Decimal is digits with an optional fractional part
	Decimal = Label("decimal number", Capture(RuleDecimal,
		Seq(Many1(digit), Opt(Seq(Lit("."), Many1(digit))))))

	// Currency is one of the supported currency codes
	Currency = Label("currency code", Capture(RuleCurrency, literals(Currencies)))

	// Unit is one of the supported measurement units
	Unit = Label("unit", Capture(RuleUnit, literals(Units)))

	// Name is one or more letter words separated by single spaces
	Name = Label("name", Capture(RuleName, Seq(word, Many(Seq(Lit(" "), word)))))

	// PriceValue is "<decimal> <currency>/<unit>"
	PriceValue = Capture(RulePriceValue, Seq(Decimal, Many1(WS), Currency, Lit("/"), Unit))

	// ProductName takes an optional "Product name:" label
	ProductName = Capture(RuleProductName,
		Seq(ws, Opt(Seq(Lit("Product name:"), ws)), Name, ws))

	// Category requires its label
	Category = Capture(RuleCategory, Seq(ws, Lit("Category:"), ws, Name, ws))

	Price         = Capture(RulePrice, Seq(ws, Lit("Price:"), ws, PriceValue, ws))
	Calories      = Capture(RuleCalories, measure("Calories:", "cal"))
	Proteins      = Capture(RuleProteins, measure("Proteins:", "g"))
	Carbohydrates = Capture(RuleCarbohydrates, measure("Carbohydrates:", "g"))
	Fats          = Capture(RuleFats, measure("Fats:", "g"))

	// Document splits a catalog into entries: blocks of non-blank lines
	// separated by blank lines. Field syntax is checked per line afterwards.
	Document = Seq(
		Many(blankLine),
		Opt(Seq(entry, Many(Seq(separator, entry)))),
		Many(Choice(WS, newline)),
	)

	// CategorizedItem is the "<name> <quantity> <unit> - <category>" dialect
	CategorizedItem = Seq(ws, Name, Many1(WS), Capture(RuleQuantity, Decimal),
		Many1(WS), Unit, Many1(WS), Lit("-"), Many1(WS), Capture(RuleCategory, Name), ws)
)

var (
	blankLine   = Seq(ws, newline)
	lineChar    = Class("character", func(r rune) bool { return r != '\n' })
	contentLine = Capture(RuleLine, Seq(Not(Seq(ws, Choice(newline, EOI))), Many1(lineChar)))
	entry       = Capture(RuleEntry, Seq(contentLine, Many(Seq(newline, contentLine))))
	separator   = Capture(RuleSeparator, Seq(newline, Many1(blankLine)))
)

// Field describes one line of a catalog entry
type Field struct {
	Name   string
	Label  string
	Suffix string
	Rule   Rule
}

// CatalogFields lists the entry lines in the order they must appear
var CatalogFields = []Field{
	{Name: RuleProductName, Label: "Product name:", Rule: ProductName},
	{Name: RuleCategory, Label: "Category:", Rule: Category},
	{Name: RulePrice, Label: "Price:", Rule: Price},
	{Name: RuleCalories, Label: "Calories:", Suffix: "cal", Rule: Calories},
	{Name: RuleProteins, Label: "Proteins:", Suffix: "g", Rule: Proteins},
	{Name: RuleCarbohydrates, Label: "Carbohydrates:", Suffix: "g", Rule: Carbohydrates},
	{Name: RuleFats, Label: "Fats:", Suffix: "g", Rule: Fats},
}

func measure(label, suffix string) Rule {
	return Seq(ws, Lit(label), ws, Decimal, ws, Opt(Lit(suffix)), ws)
}

func literals(words []string) Rule {
	alts := make([]Rule, len(words))
	for i, w := range words {
		alts[i] = Lit(w)
	}
	return Choice(alts...)
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
