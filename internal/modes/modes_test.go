package modes

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/optimizer"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/enrichment"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/parse"
)

func TestCanonical(t *testing.T) {
	testCases := []struct {
		input    string
		expected ID
	}{
		{"1", UnitProduct},
		{"unit-product", UnitProduct},
		{"Unit_Product", UnitProduct},
		{"mode 1", UnitProduct},
		{"2", FromProduct},
		{"from-product", FromProduct},
		{"3", FromFeed},
		{"FROM-FEED", FromFeed},
		{"feed_mass", FromFeed},
		{"4", FromSWU},
		{" SWU ", FromSWU},
		{"5", Optimize},
		{"optimise", Optimize},
		{"optimum tails", Optimize},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Canonical(tc.input)
			if err != nil {
				t.Fatalf("Canonical(%q) error = %v", tc.input, err)
			}
			if got != tc.expected {
				t.Fatalf("Canonical(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}

	for _, bad := range []string{"", "6", "tails", "0"} {
		if _, err := Canonical(bad); !errors.Is(err, ErrUnknownMode) {
			t.Fatalf("Canonical(%q) expected ErrUnknownMode, got %v", bad, err)
		}
	}
}

func TestCatalogueOrderAndInputs(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 modes, got %d", len(all))
	}
	for i, m := range all {
		if m.Number != i+1 {
			t.Fatalf("mode %s has number %d, expected %d", m.ID, m.Number, i+1)
		}
		looked, ok := Lookup(m.ID)
		if !ok || looked.ID != m.ID {
			t.Fatalf("Lookup(%s) failed", m.ID)
		}
	}

	expected := map[ID][]string{
		UnitProduct: {InputProductAssay, InputTailsAssay, InputFeedAssay},
		FromProduct: {InputProductAssay, InputTailsAssay, InputFeedAssay, InputProductMass},
		FromFeed:    {InputProductAssay, InputTailsAssay, InputFeedAssay, InputFeedMass},
		FromSWU:     {InputProductAssay, InputTailsAssay, InputFeedAssay, InputSWU},
		Optimize:    {InputProductAssay, InputFeedAssay, InputFeedPrice, InputSWUPrice},
	}
	for id, names := range expected {
		m, _ := Lookup(id)
		var got []string
		for _, in := range m.Inputs {
			got = append(got, in.Name)
		}
		if !reflect.DeepEqual(got, names) {
			t.Fatalf("mode %s inputs = %v, expected %v", id, got, names)
		}
	}

	if _, ok := Lookup("nope"); ok {
		t.Fatal("Lookup of unknown id should fail")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Title = "changed"
	if m, _ := Lookup(UnitProduct); m.Title == "changed" {
		t.Fatal("All() exposed the catalogue")
	}
}

func TestSolveUnitProduct(t *testing.T) {
	res, err := Solve(UnitProduct, map[string]string{
		"productAssay": "5%",
		"tailsAssay":   "0.3%",
		"feedAssay":    "0.7%",
	}, optimizer.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Mode != UnitProduct || res.Balance == nil || res.Optimum != nil {
		t.Fatalf("unexpected result shape %+v", res)
	}
	if math.Abs(res.Balance.Feed-11.75) > 1e-9 {
		t.Fatalf("expected feed 11.75, got %v", res.Balance.Feed)
	}
	if math.Abs(res.Balance.SWU-7.287414746698914) > 1e-6 {
		t.Fatalf("expected SWU 7.287415, got %v", res.Balance.SWU)
	}
	if math.Abs(res.Inputs[InputFeedAssay]-0.007) > 1e-15 {
		t.Fatalf("expected parsed feed assay 0.007, got %v", res.Inputs[InputFeedAssay])
	}
}

func TestSolveMatchesInputNamesCaseInsensitively(t *testing.T) {
	// viper may fold the case of map keys read from scenario files
	res, err := Solve(FromProduct, map[string]string{
		"productassay": "0.05",
		"TAILSASSAY":   "0.003",
		"feedassay":    "0.00711",
		"productmass":  "10000 g",
	}, optimizer.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if math.Abs(res.Balance.Product-10) > 1e-12 {
		t.Fatalf("expected product 10 kg, got %v", res.Balance.Product)
	}
	if math.Abs(res.Balance.Feed-114.35523114355232) > 1e-9 {
		t.Fatalf("unexpected feed %v", res.Balance.Feed)
	}
}

func TestSolveFeedAndSWUModes(t *testing.T) {
	base := map[string]string{"productAssay": "5%", "tailsAssay": "0.3%", "feedAssay": "0.711%"}

	withFeed := copyInputs(base)
	withFeed[InputFeedMass] = "114.35523114355232"
	res, err := Solve(FromFeed, withFeed, optimizer.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve(feed) error = %v", err)
	}
	if math.Abs(res.Balance.Product-10) > 1e-6 {
		t.Fatalf("expected product 10, got %v", res.Balance.Product)
	}

	withSWU := copyInputs(base)
	withSWU[InputSWU] = "1,000"
	res, err = Solve(FromSWU, withSWU, optimizer.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve(swu) error = %v", err)
	}
	if math.Abs(res.Balance.Product-138.9213356250651) > 1e-6 {
		t.Fatalf("unexpected product %v", res.Balance.Product)
	}
}

func TestSolveOptimize(t *testing.T) {
	res, err := Solve(Optimize, map[string]string{
		"productAssay": "5%",
		"feedAssay":    "0.7%",
		"feedPrice":    "50",
		"swuPrice":     "100",
		"tailsAssay":   "ignored",
	}, optimizer.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve(optimize) error = %v", err)
	}
	if res.Optimum == nil || res.Balance != nil {
		t.Fatalf("unexpected result shape %+v", res)
	}
	if math.Abs(res.Optimum.TailsAssay-0.0029776895) > 1e-8 {
		t.Fatalf("unexpected optimum tails %v", res.Optimum.TailsAssay)
	}
}

func TestSolveErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mode   ID
		inputs map[string]string
		target error
		field  string
	}{
		{
			name:   "missing input",
			mode:   UnitProduct,
			inputs: map[string]string{"productAssay": "5%", "feedAssay": "0.7%"},
			target: parse.ErrParse,
			field:  InputTailsAssay,
		},
		{
			name:   "blank input",
			mode:   UnitProduct,
			inputs: map[string]string{"productAssay": "5%", "tailsAssay": "  ", "feedAssay": "0.7%"},
			target: parse.ErrParse,
			field:  InputTailsAssay,
		},
		{
			name:   "bad assay",
			mode:   UnitProduct,
			inputs: map[string]string{"productAssay": "100%", "tailsAssay": "0.3%", "feedAssay": "0.7%"},
			target: parse.ErrParse,
			field:  InputProductAssay,
		},
		{
			name:   "bad mass",
			mode:   FromProduct,
			inputs: map[string]string{"productAssay": "5%", "tailsAssay": "0.3%", "feedAssay": "0.7%", "productMass": "-5"},
			target: parse.ErrParse,
			field:  InputProductMass,
		},
		{
			name:   "ordering",
			mode:   UnitProduct,
			inputs: map[string]string{"productAssay": "5%", "tailsAssay": "0.8%", "feedAssay": "0.7%"},
			target: enrichment.ErrOrdering,
		},
		{
			name:   "optimizer ordering",
			mode:   Optimize,
			inputs: map[string]string{"productAssay": "0.5%", "feedAssay": "0.7%", "feedPrice": "50", "swuPrice": "100"},
			target: enrichment.ErrOrdering,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.mode, tc.inputs, optimizer.DefaultOptions())
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			if tc.field != "" {
				var pe *parse.Error
				if !errors.As(err, &pe) || pe.Field != tc.field {
					t.Fatalf("expected error on field %s, got %v", tc.field, err)
				}
			}
		})
	}

	if _, err := Solve("bogus", nil, optimizer.Options{}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestMissingAndUnused(t *testing.T) {
	m, _ := Lookup(FromSWU)
	raw := map[string]string{"productassay": "5%", "feedAssay": "", "extra": "1", "another": "2"}

	missing := m.Missing(raw)
	if !reflect.DeepEqual(missing, []string{InputTailsAssay, InputFeedAssay, InputSWU}) {
		t.Fatalf("Missing() = %v", missing)
	}
	unused := m.Unused(raw)
	if !reflect.DeepEqual(unused, []string{"another", "extra"}) {
		t.Fatalf("Unused() = %v", unused)
	}
}

func copyInputs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
