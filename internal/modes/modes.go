// Package modes maps each calculation mode to the inputs it needs and the
// solver that answers it, so a form or a scenario file can drive every
// solver the same way.
package modes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/optimizer"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/enrichment"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/optimization"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/parse"
)

// ID names a calculation mode.
type ID string

const (
	UnitProduct ID = "unit-product"
	FromProduct ID = "product"
	FromFeed    ID = "feed"
	FromSWU     ID = "swu"
	Optimize    ID = "optimize"
)

// ErrUnknownMode is returned for a mode name that matches no mode.
var ErrUnknownMode = errors.New("unknown calculation mode")

// Input names shared by the modes.
const (
	InputProductAssay = "productAssay"
	InputTailsAssay   = "tailsAssay"
	InputFeedAssay    = "feedAssay"
	InputProductMass  = "productMass"
	InputFeedMass     = "feedMass"
	InputSWU          = "swu"
	InputFeedPrice    = "feedPrice"
	InputSWUPrice     = "swuPrice"
)

// Input is one value a mode requires, in form order.
type Input struct {
	Name  string     `json:"name"`
	Label string     `json:"label"`
	Kind  parse.Kind `json:"kind"`
}

// Mode describes a calculation mode.
type Mode struct {
	ID     ID      `json:"id"`
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Inputs []Input `json:"inputs"`

	solve func(values map[string]float64, opts optimizer.Options) (Result, error)
}

// Result is the outcome of one solved mode. Exactly one of Balance and
// Optimum is set.
type Result struct {
	Mode    ID                    `json:"mode"`
	Inputs  map[string]float64    `json:"inputs"`
	Balance *enrichment.Balance   `json:"balance,omitempty"`
	Optimum *optimization.Summary `json:"optimum,omitempty"`
}

var (
	productAssay = Input{Name: InputProductAssay, Label: "Product assay", Kind: parse.KindAssay}
	tailsAssay   = Input{Name: InputTailsAssay, Label: "Tails assay", Kind: parse.KindAssay}
	feedAssay    = Input{Name: InputFeedAssay, Label: "Feed assay", Kind: parse.KindAssay}
)

var catalogue = []Mode{
	{
		ID:     UnitProduct,
		Number: 1,
		Title:  "Feed and SWU per kilogram of product",
		Inputs: []Input{productAssay, tailsAssay, feedAssay},
		solve: func(v map[string]float64, _ optimizer.Options) (Result, error) {
			return balanceResult(enrichment.UnitProduct(assaysFrom(v)))
		},
	},
	{
		ID:     FromProduct,
		Number: 2,
		Title:  "Feed and SWU for a product mass",
		Inputs: []Input{productAssay, tailsAssay, feedAssay, {Name: InputProductMass, Label: "Product mass", Kind: parse.KindMass}},
		solve: func(v map[string]float64, _ optimizer.Options) (Result, error) {
			return balanceResult(enrichment.FromProduct(assaysFrom(v), v[InputProductMass]))
		},
	},
	{
		ID:     FromFeed,
		Number: 3,
		Title:  "Product and SWU from a feed mass",
		Inputs: []Input{productAssay, tailsAssay, feedAssay, {Name: InputFeedMass, Label: "Feed mass", Kind: parse.KindMass}},
		solve: func(v map[string]float64, _ optimizer.Options) (Result, error) {
			return balanceResult(enrichment.FromFeed(assaysFrom(v), v[InputFeedMass]))
		},
	},
	{
		ID:     FromSWU,
		Number: 4,
		Title:  "Product and feed from available SWU",
		Inputs: []Input{productAssay, tailsAssay, feedAssay, {Name: InputSWU, Label: "Separative work (SWU)", Kind: parse.KindScalar}},
		solve: func(v map[string]float64, _ optimizer.Options) (Result, error) {
			return balanceResult(enrichment.FromSWU(assaysFrom(v), v[InputSWU]))
		},
	},
	{
		ID:     Optimize,
		Number: 5,
		Title:  "Optimum tails assay for feed and SWU prices",
		Inputs: []Input{
			productAssay,
			feedAssay,
			{Name: InputFeedPrice, Label: "Feed price per kgU", Kind: parse.KindScalar},
			{Name: InputSWUPrice, Label: "SWU price", Kind: parse.KindScalar},
		},
		solve: func(v map[string]float64, opts optimizer.Options) (Result, error) {
			rates := enrichment.CostRates{FeedPrice: v[InputFeedPrice], SWUPrice: v[InputSWUPrice]}
			summary, err := optimizer.FindOptimumTails(v[InputProductAssay], v[InputFeedAssay], rates, opts)
			if err != nil {
				return Result{}, err
			}
			return Result{Optimum: &summary}, nil
		},
	},
}

// All returns every mode in mode-number order.
func All() []Mode {
	out := make([]Mode, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the mode registered under id.
func Lookup(id ID) (Mode, bool) {
	for _, m := range catalogue {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// Canonical resolves the spellings accepted in forms and scenario files:
// the mode number, the canonical id, and case or separator variants.
func Canonical(raw string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	key = strings.TrimPrefix(key, "mode-")
	key = strings.TrimPrefix(key, "from-")

	switch key {
	case "1", "unit-product", "unit", "per-product":
		return UnitProduct, nil
	case "2", "product", "product-mass":
		return FromProduct, nil
	case "3", "feed", "feed-mass":
		return FromFeed, nil
	case "4", "swu", "separative-work":
		return FromSWU, nil
	case "5", "optimize", "optimise", "optimum", "optimum-tails":
		return Optimize, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMode, raw)
	}
}

// Parse converts the raw inputs of a mode into base-unit values. Names are
// matched case-insensitively; inputs the mode does not use are ignored.
func (m Mode) Parse(raw map[string]string) (map[string]float64, error) {
	lowered := make(map[string]string, len(raw))
	for k, v := range raw {
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}

	values := make(map[string]float64, len(m.Inputs))
	for _, in := range m.Inputs {
		text, ok := lowered[strings.ToLower(in.Name)]
		if !ok || strings.TrimSpace(text) == "" {
			return nil, &parse.Error{Kind: in.Kind, Field: in.Name, Input: text, Reason: "value is required"}
		}
		value, err := parse.Value(in.Kind, text)
		if err != nil {
			return nil, parse.WithField(err, in.Name)
		}
		values[in.Name] = value
	}
	return values, nil
}

// Missing lists the required inputs absent from raw.
func (m Mode) Missing(raw map[string]string) []string {
	present := make(map[string]bool, len(raw))
	for k, v := range raw {
		if strings.TrimSpace(v) != "" {
			present[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	var missing []string
	for _, in := range m.Inputs {
		if !present[strings.ToLower(in.Name)] {
			missing = append(missing, in.Name)
		}
	}
	return missing
}

// Unused lists the keys of raw the mode does not read.
func (m Mode) Unused(raw map[string]string) []string {
	wanted := make(map[string]bool, len(m.Inputs))
	for _, in := range m.Inputs {
		wanted[strings.ToLower(in.Name)] = true
	}
	var unused []string
	for k := range raw {
		if !wanted[strings.ToLower(strings.TrimSpace(k))] {
			unused = append(unused, k)
		}
	}
	sort.Strings(unused)
	return unused
}

// SolveValues runs the mode on already-parsed values.
func (m Mode) SolveValues(values map[string]float64, opts optimizer.Options) (Result, error) {
	if m.solve == nil {
		return Result{}, fmt.Errorf("mode %q has no solver", m.ID)
	}
	res, err := m.solve(values, opts)
	if err != nil {
		return Result{}, err
	}
	res.Mode = m.ID
	res.Inputs = values
	return res, nil
}

// Solve parses raw for the mode named id and runs its solver.
func Solve(id ID, raw map[string]string, opts optimizer.Options) (Result, error) {
	m, ok := Lookup(id)
	if !ok {
		return Result{}, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	values, err := m.Parse(raw)
	if err != nil {
		return Result{}, err
	}
	return m.SolveValues(values, opts)
}

func assaysFrom(v map[string]float64) enrichment.Assays {
	return enrichment.Assays{
		Product: v[InputProductAssay],
		Feed:    v[InputFeedAssay],
		Tails:   v[InputTailsAssay],
	}
}

func balanceResult(b enrichment.Balance, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	return Result{Balance: &b}, nil
}
