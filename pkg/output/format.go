// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/calculator"
	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/format"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
)

// Row is one labelled quantity of a result, in display units.
type Row struct {
	Quantity string  `json:"quantity"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Places   int32   `json:"places"`
	Unit     string  `json:"unit,omitempty"`
	Display  string  `json:"display"`
}

// CSVValue is the rounded value without grouping.
func (r Row) CSVValue() string {
	return mathutil.FixedString(r.Value, r.Places)
}

// Rows lists the quantities of result in the order they are displayed.
func Rows(result modes.Result) []Row {
	switch {
	case result.Balance != nil:
		b := result.Balance
		return []Row{
			assayRow("productAssay", "Product assay", b.Assays.Product),
			assayRow("feedAssay", "Feed assay", b.Assays.Feed),
			assayRow("tailsAssay", "Tails assay", b.Assays.Tails),
			massRow("product", "Product", b.Product),
			massRow("feed", "Feed", b.Feed),
			massRow("tails", "Tails", b.Tails),
			swuRow("swu", "Separative work", b.SWU),
			ratioRow("feedPerProduct", "Feed per kg product", b.FeedPerProduct()),
			ratioRow("swuPerProduct", "SWU per kg product", b.SWUPerProduct()),
		}
	case result.Optimum != nil:
		o := result.Optimum
		return []Row{
			assayRow("productAssay", "Product assay", o.ProductAssay),
			assayRow("feedAssay", "Feed assay", o.FeedAssay),
			currencyRow("feedPrice", "Feed price per kgU", o.FeedPrice),
			currencyRow("swuPrice", "SWU price", o.SWUPrice),
			assayRow("tailsAssay", "Optimum tails assay", o.TailsAssay),
			ratioRow("feedPerProduct", "Feed per kg product", o.FeedPerProduct),
			ratioRow("tailsPerProduct", "Tails per kg product", o.TailsPerProduct),
			ratioRow("swuPerProduct", "SWU per kg product", o.SWUPerProduct),
			currencyRow("feedCostPerProduct", "Feed cost per kg product", o.FeedCostPerProduct),
			currencyRow("swuCostPerProduct", "SWU cost per kg product", o.SWUCostPerProduct),
			currencyRow("costPerProduct", "Total cost per kg product", o.CostPerProduct),
			{Quantity: "iterations", Label: "Iterations", Value: float64(o.Iterations), Display: strconv.Itoa(o.Iterations)},
		}
	default:
		return nil
	}
}

// Notes returns the remarks attached to result.
func Notes(result modes.Result) []string {
	if result.Optimum != nil {
		return result.Optimum.Notes
	}
	return nil
}

// Heading names the mode of result, e.g. "Mode 2: Feed and SWU for a product mass".
func Heading(id modes.ID) string {
	m, ok := modes.Lookup(id)
	if !ok {
		return string(id)
	}
	return fmt.Sprintf("Mode %d: %s", m.Number, m.Title)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, outcomes []calculator.Outcome) {
	for i, outcome := range outcomes {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", outcome.Name)
		if outcome.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", outcome.Err)
		} else {
			rows := Rows(outcome.Result)
			width := len("Quantity")
			for _, row := range rows {
				if len(row.Label) > width {
					width = len(row.Label)
				}
			}
			fmt.Fprintf(w, "%s\n", Heading(outcome.Result.Mode))
			fmt.Fprintf(w, "%-*s | %s\n", width, "Quantity", "Value")
			fmt.Fprintf(w, "%-*s | %s\n", width, "________", "_____")
			for _, row := range rows {
				fmt.Fprintf(w, "%-*s | %s\n", width, row.Label, row.Display)
			}
			for _, note := range Notes(outcome.Result) {
				fmt.Fprintf(w, "Note: %s\n", note)
			}
		}
		if len(outcomes) > 1 && i < len(outcomes)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per quantity.
func CsvFormat(w io.Writer, outcomes []calculator.Outcome) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"scenario", "mode", "quantity", "value", "unit"}); err != nil {
		return err
	}
	for _, outcome := range outcomes {
		mode := string(outcome.Mode)
		if outcome.Err != nil {
			if err := writer.Write([]string{outcome.Name, mode, "error", outcome.Err.Error(), ""}); err != nil {
				return err
			}
			continue
		}
		for _, row := range Rows(outcome.Result) {
			if err := writer.Write([]string{outcome.Name, mode, row.Quantity, row.CSVValue(), row.Unit}); err != nil {
				return err
			}
		}
		for _, note := range Notes(outcome.Result) {
			if err := writer.Write([]string{outcome.Name, mode, "note", note, ""}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of outcomes.
func CsvString(outcomes []calculator.Outcome) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, outcomes); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ClipboardText renders one result as plain "Label: value" lines for
// pasting into a document.
func ClipboardText(result modes.Result) string {
	var b strings.Builder
	b.WriteString(Heading(result.Mode))
	b.WriteString("\n")
	for _, row := range Rows(result) {
		fmt.Fprintf(&b, "%s: %s\n", row.Label, row.Display)
	}
	for _, note := range Notes(result) {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}
	return b.String()
}

func assayRow(quantity, label string, fraction float64) Row {
	return Row{
		Quantity: quantity,
		Label:    label,
		Value:    mathutil.ToPercent(fraction),
		Places:   constants.AssayDisplayDecimals,
		Unit:     "%",
		Display:  format.Assay(fraction),
	}
}

func massRow(quantity, label string, kg float64) Row {
	return Row{Quantity: quantity, Label: label, Value: kg, Places: constants.MassDisplayDecimals, Unit: "kgU", Display: format.Mass(kg)}
}

func swuRow(quantity, label string, swu float64) Row {
	return Row{Quantity: quantity, Label: label, Value: swu, Places: constants.SWUDisplayDecimals, Unit: "SWU", Display: format.SWU(swu)}
}

func ratioRow(quantity, label string, value float64) Row {
	return Row{Quantity: quantity, Label: label, Value: value, Places: constants.MassDisplayDecimals, Display: format.Ratio(value)}
}

func currencyRow(quantity, label string, amount float64) Row {
	return Row{Quantity: quantity, Label: label, Value: amount, Places: constants.CurrencyDisplayDecimals, Unit: "USD", Display: format.Currency(amount)}
}
