package normalize

import (
	"errors"
	"testing"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"52", 52, false},
		{" 0.35 ", 0.35, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"1e3", 0, true},
		{"5 cal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Decimal("calories", tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decimal(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decimal(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		label   string
		suffix  string
		want    float64
		wantErr bool
	}{
		{"calories", "Calories: 52 cal", "Calories:", "cal", 52, false},
		{"grams", "Proteins: 0.3 g", "Proteins:", "g", 0.3, false},
		{"no space", "Fats:0.2g", "Fats:", "g", 0.2, false},
		{"no suffix", "Fats: 0.2", "Fats:", "g", 0.2, false},
		{"wrong suffix", "Fats: 0.2 kg", "Fats:", "g", 0, true},
		{"garbage", "Calories: lots cal", "Calories:", "cal", 0, true},
		{"empty value", "Calories: cal", "Calories:", "cal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Measure("field", tt.text, tt.label, tt.suffix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Measure(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMeasure_ErrorKeepsOriginalText(t *testing.T) {
	_, err := Measure("calories", "Calories: many cal", "Calories:", "cal")

	var coercion *FieldCoercionError
	if !errors.As(err, &coercion) {
		t.Fatalf("error = %T, want *FieldCoercionError", err)
	}
	if coercion.Field != "calories" || coercion.Text != "Calories: many cal" {
		t.Errorf("error = %+v", coercion)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeFieldCoercion) {
		t.Error("error should carry FIELD_COERCION")
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		text    string
		amount  float64
		unit    string
		wantErr bool
	}{
		{"Price: 10 UAH/kg", 10, "UAH/kg", false},
		{"Price:\t42.50  EUR/pcs", 42.5, "EUR/pcs", false},
		{"10 USD/l", 10, "USD/l", false},
		{"Price: 10 UAH / kg", 0, "", true},
		{"Price: 10 GBP/kg", 0, "", true},
		{"Price: 10UAH/kg", 0, "", true},
		{"Price: ten UAH/kg", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			amount, unit, err := Price("price", tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Price(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if amount != tt.amount || unit != tt.unit {
				t.Errorf("Price(%q) = %v %q, want %v %q", tt.text, amount, unit, tt.amount, tt.unit)
			}
		})
	}
}

func TestName(t *testing.T) {
	if got, err := Name("product_name", "  green apple "); err != nil || got != "green apple" {
		t.Errorf("Name() = %q, %v", got, err)
	}
	if _, err := Name("product_name", "   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("Name(blank) error = %v, want ErrEmpty", err)
	}
	if got := Category(" fruit "); got != "fruit" {
		t.Errorf("Category() = %q", got)
	}
}

func TestSplitUnit(t *testing.T) {
	currency, unit, ok := SplitUnit(CompositeUnit("UAH", "kg"))
	if !ok || currency != "UAH" || unit != "kg" {
		t.Errorf("SplitUnit() = %q %q %v", currency, unit, ok)
	}
	if _, _, ok := SplitUnit("kg"); ok {
		t.Error("SplitUnit without separator should report !ok")
	}
}
