package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ordli77/interestrate/calendar"
	"github.com/ordli77/interestrate/curve"
	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/marketdata"
	"github.com/ordli77/interestrate/quote"
)

// Result holds the built curve set, keyed by curve name.
type Result struct {
	Order   []string
	Curves  map[string]*curve.PiecewiseCurve
	Handles map[string]*curve.Handle
}

// Build constructs and calibrates every curve of the set in file
// order, wiring cross-curve references through relinkable handles. The
// catalog may be nil when every instrument quotes inline.
func Build(f *File, cat marketdata.Catalog, logger *zerolog.Logger) (*Result, error) {
	curveDate, err := f.Date()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Curves:  make(map[string]*curve.PiecewiseCurve, len(f.Curves)),
		Handles: make(map[string]*curve.Handle, len(f.Curves)),
	}
	// handles exist before any curve so self references and relinking
	// after a rebuild both work
	for _, def := range f.Curves {
		res.Handles[def.Name] = curve.NewHandle()
	}

	for _, def := range f.Curves {
		tr, err := curve.ParseTrait(def.Trait)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", def.Name, err)
		}
		method, err := interp.ParseMethod(def.Method)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", def.Name, err)
		}
		var dc market.DayCount
		if def.DayCount != "" {
			if dc, err = market.ParseDayCount(def.DayCount); err != nil {
				return nil, fmt.Errorf("curve %s: %w", def.Name, err)
			}
		}
		helpers, err := buildHelpers(def, curveDate, cat, res.Handles)
		if err != nil {
			return nil, err
		}

		c, err := curve.NewPiecewiseCurve(curve.Config{
			Name:          def.Name,
			ReferenceDate: curveDate,
			DayCount:      dc,
			Trait:         tr,
			Method:        method,
			Helpers:       helpers,
			Accuracy:      f.Solver.Accuracy,
			MaxIterations: f.Solver.MaxIterations,
			MaxSweeps:     f.Solver.MaxSweeps,
			MaxRate:       f.Solver.MaxRate,
			Logger:        logger,
		})
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", def.Name, err)
		}
		res.Handles[def.Name].LinkTo(c)
		if err := c.Calibrate(); err != nil {
			return nil, fmt.Errorf("curve %s: %w", def.Name, err)
		}
		res.Curves[def.Name] = c
		res.Order = append(res.Order, def.Name)
	}
	return res, nil
}

func buildHelpers(def Curve, curveDate time.Time, cat marketdata.Catalog, handles map[string]*curve.Handle) ([]curve.RateHelper, error) {
	out := make([]curve.RateHelper, 0, len(def.Instruments))
	for _, in := range def.Instruments {
		h, err := buildHelper(def, in, curveDate, cat, handles)
		if err != nil {
			return nil, fmt.Errorf("curve %s, %s %s: %w", def.Name, in.Type, in.Term, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func buildHelper(def Curve, in Instrument, curveDate time.Time, cat marketdata.Catalog, handles map[string]*curve.Handle) (curve.RateHelper, error) {
	q, err := instrumentQuote(def, in, cat)
	if err != nil {
		return nil, err
	}
	idx, err := market.IndexByName(in.Index)
	if err != nil {
		return nil, err
	}
	var disc *curve.Handle
	if def.Discount != "" {
		disc = handles[def.Discount]
	}
	var proj *curve.Handle
	if def.Projection != "" {
		proj = handles[def.Projection]
	}
	spot := curveDate
	if def.SettlementDays > 0 {
		spot = calendar.AddBusinessDays(idx.Calendar, curveDate, def.SettlementDays)
	}

	switch in.Type {
	case "deposit":
		tenor, err := market.ParsePeriod(in.Term)
		if err != nil {
			return nil, err
		}
		return curve.NewDepositRateHelper(q, spot, tenor, idx)

	case "fra":
		return curve.NewFRARateHelper(q, spot, in.StartMonths, idx)

	case "swap":
		cfg := curve.SwapHelperConfig{
			Quote:      q,
			Spot:       spot,
			Index:      idx,
			Discount:   disc,
			Projection: proj,
		}
		if cfg.Tenor, err = market.ParsePeriod(in.Term); err != nil {
			return nil, err
		}
		if in.FixedFreq != "" {
			if cfg.FixedFreq, err = market.ParseFrequency(in.FixedFreq); err != nil {
				return nil, err
			}
		}
		if in.FixedDayCount != "" {
			if cfg.FixedDayCount, err = market.ParseDayCount(in.FixedDayCount); err != nil {
				return nil, err
			}
		}
		return curve.NewSwapRateHelper(cfg)

	case "ois":
		cfg := curve.OISHelperConfig{
			Quote:    q,
			Spot:     spot,
			Index:    idx,
			Discount: disc,
		}
		if cfg.Tenor, err = market.ParsePeriod(in.Term); err != nil {
			return nil, err
		}
		if in.FixedFreq != "" {
			if cfg.FixedFreq, err = market.ParseFrequency(in.FixedFreq); err != nil {
				return nil, err
			}
		}
		if in.FixedDayCount != "" {
			if cfg.FixedDayCount, err = market.ParseDayCount(in.FixedDayCount); err != nil {
				return nil, err
			}
		}
		return curve.NewOISRateHelper(cfg)

	case "basis":
		other, err := market.IndexByName(in.OtherIndex)
		if err != nil {
			return nil, err
		}
		cfg := curve.BasisHelperConfig{
			Quote:         q,
			Spot:          spot,
			BaseIndex:     idx,
			OtherIndex:    other,
			Discount:      disc,
			Projection:    proj,
			BootstrapBase: true,
		}
		if cfg.Tenor, err = market.ParsePeriod(in.Term); err != nil {
			return nil, err
		}
		if in.BootstrapBase != nil {
			cfg.BootstrapBase = *in.BootstrapBase
		}
		return curve.NewBasisSwapRateHelper(cfg)
	}
	return nil, fmt.Errorf("unknown instrument type %q", in.Type)
}

func instrumentQuote(def Curve, in Instrument, cat marketdata.Catalog) (*quote.Quote, error) {
	if in.Quote != nil {
		return quote.New(*in.Quote), nil
	}
	class := in.Class
	if class == "" {
		class = def.Class
	}
	if cat == nil {
		return nil, fmt.Errorf("no catalog to resolve class %q term %q", class, in.Term)
	}
	v, err := cat.Rate(class, in.Term)
	if err != nil {
		return nil, err
	}
	return quote.New(v), nil
}
