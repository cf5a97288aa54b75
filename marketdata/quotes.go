// Package marketdata loads curve input quotes from static tables or a
// Postgres store. Quoted values are carried as exact decimals and only
// converted to float64 at the curve boundary.
package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Scale states the unit quotes of a table are stored in.
type Scale string

const (
	ScaleDecimal     Scale = "decimal" // 0.0231
	ScalePercent     Scale = "percent" // 2.31
	ScaleBasisPoints Scale = "bp"      // 12.5
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// ParseScale maps a storage spelling to its Scale.
func ParseScale(s string) (Scale, error) {
	switch Scale(strings.ToLower(strings.TrimSpace(s))) {
	case ScaleDecimal:
		return ScaleDecimal, nil
	case ScalePercent:
		return ScalePercent, nil
	case ScaleBasisPoints:
		return ScaleBasisPoints, nil
	}
	return "", fmt.Errorf("unknown quote scale %q", s)
}

// Row is one quoted instrument: a term label and its stored value.
type Row struct {
	Term  string
	Value decimal.Decimal
}

// Table holds the quote strip of one instrument class on one date.
type Table struct {
	Class     string
	CurveDate time.Time
	Scale     Scale
	Rows      []Row
}

// Rate returns the quote for a term as a decimal fraction, applying
// the table scale exactly before the float conversion.
func (t *Table) Rate(term string) (float64, error) {
	for _, r := range t.Rows {
		if strings.EqualFold(r.Term, term) {
			return scaled(r.Value, t.Scale), nil
		}
	}
	return 0, fmt.Errorf("class %s: no quote for term %q on %s",
		t.Class, term, t.CurveDate.Format("2006-01-02"))
}

// Terms lists the quoted term labels in storage order.
func (t *Table) Terms() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Term
	}
	return out
}

func scaled(v decimal.Decimal, s Scale) float64 {
	switch s {
	case ScalePercent:
		v = v.Div(hundred)
	case ScaleBasisPoints:
		v = v.Div(tenThousand)
	}
	f, _ := v.Float64()
	return f
}

// Catalog maps instrument classes to their quote tables for one date.
type Catalog map[string]*Table

// Rate resolves a class/term pair across the catalog.
func (c Catalog) Rate(class, term string) (float64, error) {
	t, ok := c[class]
	if !ok {
		return 0, fmt.Errorf("no quote table for class %q", class)
	}
	return t.Rate(term)
}

// Source supplies quote tables; the Postgres store and the static
// sample source both satisfy it.
type Source interface {
	Table(ctx context.Context, class string, curveDate time.Time) (*Table, error)
}

// StaticSource serves tables from memory, keyed by class. Curve date
// filtering is the caller's concern; development and tests use it in
// place of a live store.
type StaticSource map[string]*Table

func (s StaticSource) Table(_ context.Context, class string, _ time.Time) (*Table, error) {
	t, ok := s[class]
	if !ok {
		return nil, fmt.Errorf("static source: no table for class %q", class)
	}
	return t, nil
}
