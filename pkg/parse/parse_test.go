package parse

import (
	"errors"
	"math"
	"testing"
)

func TestAssay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Percent", "5%", 0.05},
		{"Percent with space", " 0.711 % ", 0.00711},
		{"Decimal fraction", "0.003", 0.003},
		{"Ratio", "1/20", 0.05},
		{"Ratio with spaces", "3 / 1000", 0.003},
		{"Scientific notation", "7e-3", 0.007},
		{"Percent ratio", "1/2%", 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assay(tt.input)
			if err != nil {
				t.Fatalf("Assay(%q) returned error: %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-15 {
				t.Errorf("Assay(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAssayRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Zero percent", "0%"},
		{"Hundred percent", "100%"},
		{"Negative", "-5"},
		{"Text", "abc"},
		{"Zero denominator", "1/0"},
		{"Missing denominator", "1/"},
		{"Missing numerator", "/2"},
		{"Double fraction", "1/2/3"},
		{"Empty", ""},
		{"Only percent", "%"},
		{"One", "1"},
		{"Above one", "1.5"},
		{"NaN", "NaN"},
		{"Infinity", "Inf"},
		{"Unit suffix", "5kg"},
		{"Hexadecimal float", "0x1p-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assay(tt.input)
			if err == nil {
				t.Fatalf("Assay(%q) expected error, got nil", tt.input)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Assay(%q) error %v is not ErrParse", tt.input, err)
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.Kind != KindAssay {
				t.Errorf("Assay(%q) error %v does not carry KindAssay", tt.input, err)
			}
		})
	}
}

func TestMass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Bare number is kilograms", "10", 10},
		{"Kilograms", "2.5kg", 2.5},
		{"Kilograms uranium with space", "2.5 kgU", 2.5},
		{"Long form", "3 kilograms", 3},
		{"Grams", "500 g", 0.5},
		{"Grams uranium", "250gU", 0.25},
		{"Pounds", "1 lb", 0.45359237},
		{"Pounds plural", "2 lbs", 0.90718474},
		{"Tonnes", "1.2 t", 1200},
		{"Metric tonnes uranium", "3 MTU", 3000},
		{"Thousands separator", "1,250 kg", 1250},
		{"Grouped with decimals", "12,500.5 kg", 12500.5},
		{"Ratio", "1/4 kg", 0.25},
		{"Scientific notation", "1e3g", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mass(tt.input)
			if err != nil {
				t.Fatalf("Mass(%q) returned error: %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Mass(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMassRejects(t *testing.T) {
	tests := []string{"0", "0 kg", "-5", "-5 kg", "abc", "1/0", "1/0 kg", "5 oz", "kg", "", "1e309", "NaN",
		"1,2,3 kg", "1000,0 kg", ",100 kg", "0x10 kg", "0x1p-5"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Mass(input)
			if err == nil {
				t.Fatalf("Mass(%q) expected error, got nil", input)
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.Kind != KindMass {
				t.Errorf("Mass(%q) error %v does not carry KindMass", input, err)
			}
		})
	}
}

func TestScalar(t *testing.T) {
	tests := map[string]float64{
		"100":       100,
		" 52.5 ":    52.5,
		"1,000":     1000,
		"1,250,000": 1250000,
		"3/2":       1.5,
		"1e-3":      0.001,
		"140.0000":  140,
	}

	for input, expected := range tests {
		got, err := Scalar(input)
		if err != nil {
			t.Fatalf("Scalar(%q) returned error: %v", input, err)
		}
		if math.Abs(got-expected) > 1e-12 {
			t.Fatalf("Scalar(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func TestScalarRejects(t *testing.T) {
	for _, input := range []string{"0", "0%", "100%", "-5", "abc", "1/0", "", "Inf", "5 kg", "1,00", "1,2,3", "0x1p-5", "-0X10"} {
		if _, err := Scalar(input); !errors.Is(err, ErrParse) {
			t.Fatalf("Scalar(%q) expected ErrParse, got %v", input, err)
		}
	}
}

func TestValueDispatchesOnKind(t *testing.T) {
	if got, err := Value(KindAssay, "5%"); err != nil || math.Abs(got-0.05) > 1e-15 {
		t.Fatalf("Value(KindAssay) = %v, %v", got, err)
	}
	if got, err := Value(KindMass, "500 g"); err != nil || math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Value(KindMass) = %v, %v", got, err)
	}
	if got, err := Value(KindScalar, "7"); err != nil || got != 7 {
		t.Fatalf("Value(KindScalar) = %v, %v", got, err)
	}
	if _, err := Value(Kind(42), "1"); !errors.Is(err, ErrParse) {
		t.Fatalf("Value(unknown kind) expected ErrParse, got %v", err)
	}
}

func TestBoundaryInputsRejectedForEveryKind(t *testing.T) {
	for _, kind := range []Kind{KindAssay, KindMass, KindScalar} {
		for _, input := range []string{"0%", "100%", "-5", "abc", "1/0"} {
			if _, err := Value(kind, input); !errors.Is(err, ErrParse) {
				t.Fatalf("Value(%s, %q) expected ErrParse, got %v", kind, input, err)
			}
		}
	}
}

func TestWithField(t *testing.T) {
	_, err := Assay("abc")
	annotated := WithField(err, "feedAssay")
	var pe *Error
	if !errors.As(annotated, &pe) {
		t.Fatalf("expected *Error, got %T", annotated)
	}
	if pe.Field != "feedAssay" {
		t.Fatalf("expected field feedAssay, got %q", pe.Field)
	}
	if got := annotated.Error(); got != `feedAssay: invalid assay "abc": not a number` {
		t.Fatalf("unexpected message %q", got)
	}

	other := errors.New("boom")
	if WithField(other, "x") != other {
		t.Fatal("WithField should leave foreign errors untouched")
	}
}
