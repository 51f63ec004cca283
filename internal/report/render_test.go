package report

import (
	"strings"
	"testing"

	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/internal/catalog"
	"github.com/msto63/grocer/internal/cost"
	"github.com/msto63/grocer/internal/shopping"
	"github.com/msto63/grocer/pkg/core/version"
)

var apple = catalog.Product{
	ProductName:   "apple",
	Category:      "fruit",
	PricePerUnit:  10,
	Unit:          "UAH/kg",
	Calories:      52,
	Proteins:      0.3,
	Carbohydrates: 14,
	Fats:          0.2,
}

func TestRenderer_ProductPlain(t *testing.T) {
	got := New(true).Product(apple)
	want := strings.Join([]string{
		"Product name: apple",
		"Category: fruit",
		"Price: 10 UAH/kg",
		"Calories: 52 cal",
		"Proteins: 0.3 g",
		"Carbohydrates: 14 g",
		"Fats: 0.2 g",
	}, "\n")
	if got != want {
		t.Errorf("Product() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderer_ProductStyled(t *testing.T) {
	got := New(false).Product(apple)
	for _, want := range []string{"apple", "UAH/kg", "Fats"} {
		if !strings.Contains(got, want) {
			t.Errorf("Product() missing %q:\n%s", want, got)
		}
	}
}

func TestRenderer_Report(t *testing.T) {
	products := []catalog.Product{apple}
	agg := cost.New(cost.Options{Logger: mdwlog.Discard()})
	rep := agg.Aggregate(shopping.ParseList("apple 2 kg, banana 1 kg"), products)

	got := New(true).Report(rep)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Report() has %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != "- 2 kg apple, price: 20.00 UAH" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `! skipped "banana 1 kg" (not_found)`) {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != "Total: 20.00 UAH" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestRenderer_ReportNothingPriced(t *testing.T) {
	rep := cost.New(cost.Options{Logger: mdwlog.Discard()}).Aggregate(nil, nil)
	if got := New(true).Report(rep); got != "Total: nothing priced" {
		t.Errorf("Report() = %q", got)
	}
}

func TestRenderer_Credits(t *testing.T) {
	got := New(true).Credits(version.Get())
	if !strings.Contains(got, "grocer v"+version.Version) || !strings.Contains(got, version.Author) {
		t.Errorf("Credits() = %q", got)
	}
}
