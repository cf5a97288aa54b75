package marketdata_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ordli77/interestrate/marketdata"
)

func TestTableRateScaling(t *testing.T) {
	t.Parallel()

	cases := []struct {
		scale marketdata.Scale
		raw   string
		want  float64
	}{
		{marketdata.ScaleDecimal, "0.0231", 0.0231},
		{marketdata.ScalePercent, "2.31", 0.0231},
		{marketdata.ScaleBasisPoints, "12.5", 0.00125},
	}
	for _, tc := range cases {
		table := &marketdata.Table{
			Class: "test",
			Scale: tc.scale,
			Rows: []marketdata.Row{
				{Term: "5Y", Value: decimal.RequireFromString(tc.raw)},
			},
		}
		got, err := table.Rate("5Y")
		if err != nil {
			t.Fatalf("%s: %v", tc.scale, err)
		}
		if math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("%s %s: got %.10f, want %.10f", tc.scale, tc.raw, got, tc.want)
		}
	}
}

func TestTableRateCaseAndMisses(t *testing.T) {
	t.Parallel()

	table := &marketdata.Table{
		Class: "ois",
		Scale: marketdata.ScalePercent,
		Rows: []marketdata.Row{
			{Term: "10Y", Value: decimal.RequireFromString("2.55")},
		},
	}
	if _, err := table.Rate("10y"); err != nil {
		t.Errorf("term lookup should be case-insensitive: %v", err)
	}
	if _, err := table.Rate("30Y"); err == nil {
		t.Error("missing term did not error")
	} else if !strings.Contains(err.Error(), "30Y") {
		t.Errorf("error does not name the term: %v", err)
	}
}

func TestParseScale(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"decimal", "percent", "bp", " Percent "} {
		if _, err := marketdata.ParseScale(s); err != nil {
			t.Errorf("ParseScale(%q): %v", s, err)
		}
	}
	if _, err := marketdata.ParseScale("permille"); err == nil {
		t.Error("unknown scale accepted")
	}
}

func TestCatalogRate(t *testing.T) {
	t.Parallel()

	cat := marketdata.SampleCatalog()
	got, err := cat.Rate("ois", "10Y")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if math.Abs(got-0.0255) > 1e-15 {
		t.Errorf("ois 10Y = %.6f, want 0.0255", got)
	}

	spread, err := cat.Rate("basis3m6m", "2Y")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if math.Abs(spread-0.0012) > 1e-15 {
		t.Errorf("basis 2Y = %.6f, want 0.0012", spread)
	}

	if _, err := cat.Rate("cds", "5Y"); err == nil {
		t.Error("missing class did not error")
	}
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := marketdata.StaticSource(marketdata.SampleCatalog())
	table, err := src.Table(context.Background(), "irs6m", marketdata.SampleDate)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(table.Terms()) == 0 {
		t.Fatal("empty sample table")
	}
	if _, err := src.Table(context.Background(), "fxswap", marketdata.SampleDate); err == nil {
		t.Error("missing class did not error")
	}
}
