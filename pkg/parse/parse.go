// Package parse converts the strings typed into the calculator forms into
// validated base-unit values: assay fractions, masses in kilograms of uranium
// and strictly positive scalars such as SWU quantities and prices.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
	"gonum.org/v1/gonum/unit"
)

// Kind identifies the semantic type expected from a raw input.
type Kind int

const (
	// KindAssay is a fissile fraction strictly inside (Epsilon, 1-Epsilon).
	KindAssay Kind = iota
	// KindMass is a strictly positive mass, converted to kilograms.
	KindMass
	// KindScalar is a strictly positive finite number.
	KindScalar
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAssay:
		return "assay"
	case KindMass:
		return "mass"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets a Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrParse is matched by every error returned from this package.
var ErrParse = errors.New("parse error")

// Error describes why a raw input was rejected.
type Error struct {
	Kind   Kind
	Field  string
	Input  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid %s %q: %s", e.Field, e.Kind, e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

// Is reports ErrParse so callers can use errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrParse
}

// WithField returns a copy of err annotated with the form field name. Errors
// that did not originate in this package are returned unchanged.
func WithField(err error, field string) error {
	var pe *Error
	if !errors.As(err, &pe) {
		return err
	}
	annotated := *pe
	annotated.Field = field
	return &annotated
}

var massUnits = map[string]unit.Mass{
	"":          unit.Kilogram,
	"kg":        unit.Kilogram,
	"kgu":       unit.Kilogram,
	"kilogram":  unit.Kilogram,
	"kilograms": unit.Kilogram,
	"g":         unit.Gram,
	"gu":        unit.Gram,
	"gram":      unit.Gram,
	"grams":     unit.Gram,
	"lb":        unit.Mass(constants.KilogramsPerPound),
	"lbs":       unit.Mass(constants.KilogramsPerPound),
	"pound":     unit.Mass(constants.KilogramsPerPound),
	"pounds":    unit.Mass(constants.KilogramsPerPound),
	"t":         unit.Mass(constants.KilogramsPerTonne),
	"tu":        unit.Mass(constants.KilogramsPerTonne),
	"mtu":       unit.Mass(constants.KilogramsPerTonne),
	"tonne":     unit.Mass(constants.KilogramsPerTonne),
	"tonnes":    unit.Mass(constants.KilogramsPerTonne),
}

// Value parses raw according to kind.
func Value(kind Kind, raw string) (float64, error) {
	switch kind {
	case KindAssay:
		return Assay(raw)
	case KindMass:
		return Mass(raw)
	case KindScalar:
		return Scalar(raw)
	default:
		return 0, &Error{Kind: kind, Input: raw, Reason: "unsupported input kind"}
	}
}

// Assay parses a percentage ("0.711%"), a decimal fraction ("0.00711") or a
// ratio ("1/20"). The result lies strictly between Epsilon and 1-Epsilon.
func Assay(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	percent := strings.HasSuffix(trimmed, "%")
	if percent {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	}

	value, reason := number(trimmed)
	if reason != "" {
		return 0, &Error{Kind: KindAssay, Input: raw, Reason: reason}
	}
	if percent {
		value = mathutil.FromPercent(value)
	}

	if value <= constants.Epsilon || value >= 1-constants.Epsilon {
		return 0, &Error{Kind: KindAssay, Input: raw, Reason: "must lie strictly between 0% and 100%"}
	}
	return value, nil
}

// Mass parses a number with an optional unit suffix (kg, g, lb, t and their
// long forms) and returns kilograms of uranium.
func Mass(raw string) (float64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))

	idx := len(trimmed)
	for idx > 0 && unicode.IsLetter(rune(trimmed[idx-1])) {
		idx--
	}
	numPart := strings.TrimSpace(trimmed[:idx])
	unitPart := strings.TrimSpace(trimmed[idx:])

	factor, ok := massUnits[unitPart]
	if !ok {
		return 0, &Error{Kind: KindMass, Input: raw, Reason: fmt.Sprintf("unsupported unit %q", unitPart)}
	}

	plain, ok := stripGrouping(numPart)
	if !ok {
		return 0, &Error{Kind: KindMass, Input: raw, Reason: "malformed thousands separators"}
	}
	value, reason := number(plain)
	if reason != "" {
		return 0, &Error{Kind: KindMass, Input: raw, Reason: reason}
	}
	if value <= 0 {
		return 0, &Error{Kind: KindMass, Input: raw, Reason: "must be greater than zero"}
	}

	kg := value * float64(factor)
	if !mathutil.IsFinite(kg) || kg <= 0 {
		return 0, &Error{Kind: KindMass, Input: raw, Reason: "out of range"}
	}
	return kg, nil
}

// Scalar parses a strictly positive finite number such as a SWU quantity or
// a price.
func Scalar(raw string) (float64, error) {
	plain, ok := stripGrouping(strings.TrimSpace(raw))
	if !ok {
		return 0, &Error{Kind: KindScalar, Input: raw, Reason: "malformed thousands separators"}
	}
	value, reason := number(plain)
	if reason != "" {
		return 0, &Error{Kind: KindScalar, Input: raw, Reason: reason}
	}
	if value <= 0 {
		return 0, &Error{Kind: KindScalar, Input: raw, Reason: "must be greater than zero"}
	}
	return value, nil
}

// number parses a decimal or an "n/d" ratio. A non-empty reason means the
// text was rejected.
func number(text string) (float64, string) {
	if text == "" {
		return 0, "value is empty"
	}

	if strings.Contains(text, "/") {
		parts := strings.Split(text, "/")
		if len(parts) != 2 {
			return 0, "malformed fraction"
		}
		num, reason := decimalValue(strings.TrimSpace(parts[0]))
		if reason != "" {
			return 0, "malformed fraction numerator"
		}
		den, reason := decimalValue(strings.TrimSpace(parts[1]))
		if reason != "" {
			return 0, "malformed fraction denominator"
		}
		if den == 0 {
			return 0, "fraction denominator is zero"
		}
		return num / den, ""
	}

	return decimalValue(text)
}

func decimalValue(text string) (float64, string) {
	if text == "" {
		return 0, "value is empty"
	}
	digits := strings.TrimLeft(text, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, "not a decimal number"
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, "not a number"
	}
	if !mathutil.IsFinite(value) {
		return 0, "not a finite number"
	}
	return value, ""
}

// groupedNumber matches a decimal with comma thousands separators between
// three-digit groups, such as "12,500" or "1,250.5".
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?([eE][+-]?\d+)?$`)

// stripGrouping removes thousands separators so "1,250 kg" parses. It
// reports false when commas appear anywhere but between digit groups.
func stripGrouping(text string) (string, bool) {
	if !strings.Contains(text, ",") {
		return text, true
	}
	if !groupedNumber.MatchString(text) {
		return "", false
	}
	return strings.ReplaceAll(text, ",", ""), true
}
