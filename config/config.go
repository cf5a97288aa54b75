// Package config reads curve-set definitions: an ordered list of
// curves, the instruments feeding each one, and solver settings. The
// order is the dependency order; a curve may discount or project on
// itself or on any curve defined before it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ordli77/interestrate/curve"
	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/market"
)

// Solver carries the bootstrap numerics applied to every curve in the
// set. Zero fields fall back to the curve package defaults.
type Solver struct {
	Accuracy      float64 `yaml:"accuracy"`
	MaxIterations int     `yaml:"max_iterations"`
	MaxSweeps     int     `yaml:"max_sweeps"`
	MaxRate       float64 `yaml:"max_rate"`
}

// DefaultSolver matches the curve package defaults.
var DefaultSolver = Solver{
	Accuracy:      curve.DefaultAccuracy,
	MaxIterations: curve.DefaultMaxIterations,
	MaxSweeps:     curve.DefaultMaxSweeps,
	MaxRate:       curve.DefaultMaxRate,
}

// Logging mirrors the console flags of the command line tools.
type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Instrument is one calibration instrument row. Quotes either come
// inline or are looked up in a marketdata catalog under (class, term).
type Instrument struct {
	Type          string   `yaml:"type"` // deposit | fra | swap | ois | basis
	Term          string   `yaml:"term"`
	Index         string   `yaml:"index"`
	OtherIndex    string   `yaml:"other_index"` // basis flat leg
	StartMonths   int      `yaml:"start_months"`
	FixedFreq     string   `yaml:"fixed_freq"`
	FixedDayCount string   `yaml:"fixed_day_count"`
	Class         string   `yaml:"class"`
	Quote         *float64 `yaml:"quote"`          // decimal fraction
	BootstrapBase *bool    `yaml:"bootstrap_base"` // basis only, default true
}

// Curve defines one curve of the set.
type Curve struct {
	Name           string       `yaml:"name"`
	Trait          string       `yaml:"trait"`
	Method         string       `yaml:"method"`
	DayCount       string       `yaml:"day_count"`
	SettlementDays int          `yaml:"settlement_days"` // business days from curve date to spot
	Class          string       `yaml:"class"`           // default quote class
	Discount       string       `yaml:"discount"`        // curve name, self allowed
	Projection     string       `yaml:"projection"`      // curve name, for float legs
	Instruments    []Instrument `yaml:"instruments"`
}

// File is a parsed curve-set definition.
type File struct {
	CurveDate string  `yaml:"curve_date"`
	Logging   Logging `yaml:"logging"`
	Solver    Solver  `yaml:"solver"`
	Curves    []Curve `yaml:"curves"`
}

// Load reads and validates a curve-set file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a curve-set document.
func Parse(b []byte) (*File, error) {
	f := &File{Solver: DefaultSolver}
	f.Logging.Level = "info"
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.Solver.Accuracy <= 0 {
		f.Solver.Accuracy = DefaultSolver.Accuracy
	}
	if f.Solver.MaxIterations <= 0 {
		f.Solver.MaxIterations = DefaultSolver.MaxIterations
	}
	if f.Solver.MaxSweeps <= 0 {
		f.Solver.MaxSweeps = DefaultSolver.MaxSweeps
	}
	if f.Solver.MaxRate <= 0 {
		f.Solver.MaxRate = DefaultSolver.MaxRate
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Date returns the parsed curve date.
func (f *File) Date() (time.Time, error) {
	d, err := time.Parse("2006-01-02", f.CurveDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("curve_date %q: %w", f.CurveDate, err)
	}
	return d, nil
}

func (f *File) validate() error {
	if f.CurveDate == "" {
		return fmt.Errorf("config: curve_date is required")
	}
	if _, err := f.Date(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(f.Curves) == 0 {
		return fmt.Errorf("config: no curves defined")
	}

	seen := make(map[string]bool, len(f.Curves))
	for i, c := range f.Curves {
		if c.Name == "" {
			return fmt.Errorf("config: curve %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("config: duplicate curve name %q", c.Name)
		}
		if _, err := curve.ParseTrait(c.Trait); err != nil {
			return fmt.Errorf("curve %s: %w", c.Name, err)
		}
		if _, err := interp.ParseMethod(c.Method); err != nil {
			return fmt.Errorf("curve %s: %w", c.Name, err)
		}
		if c.DayCount != "" {
			if _, err := market.ParseDayCount(c.DayCount); err != nil {
				return fmt.Errorf("curve %s: %w", c.Name, err)
			}
		}
		if c.SettlementDays < 0 {
			return fmt.Errorf("curve %s: negative settlement_days %d", c.Name, c.SettlementDays)
		}
		// references resolve to self or an already-defined curve
		for _, ref := range []string{c.Discount, c.Projection} {
			if ref != "" && ref != c.Name && !seen[ref] {
				return fmt.Errorf("curve %s: reference %q is not defined earlier", c.Name, ref)
			}
		}
		if len(c.Instruments) == 0 {
			return fmt.Errorf("curve %s: no instruments", c.Name)
		}
		for j, in := range c.Instruments {
			if err := validateInstrument(c, in); err != nil {
				return fmt.Errorf("curve %s instrument %d: %w", c.Name, j, err)
			}
		}
		seen[c.Name] = true
	}
	return nil
}

func validateInstrument(c Curve, in Instrument) error {
	switch in.Type {
	case "deposit", "swap", "ois":
		if _, err := market.ParsePeriod(in.Term); err != nil {
			return err
		}
	case "fra":
		if in.StartMonths <= 0 {
			return fmt.Errorf("fra needs start_months")
		}
	case "basis":
		if _, err := market.ParsePeriod(in.Term); err != nil {
			return err
		}
		if in.OtherIndex == "" {
			return fmt.Errorf("basis needs other_index")
		}
		if c.Projection == "" {
			return fmt.Errorf("basis needs a projection curve on %s", c.Name)
		}
	default:
		return fmt.Errorf("unknown instrument type %q", in.Type)
	}
	if in.Index == "" {
		return fmt.Errorf("%s needs an index", in.Type)
	}
	if _, err := market.IndexByName(in.Index); err != nil {
		return err
	}
	if in.Type == "basis" {
		if _, err := market.IndexByName(in.OtherIndex); err != nil {
			return err
		}
	}
	if in.FixedFreq != "" {
		if _, err := market.ParseFrequency(in.FixedFreq); err != nil {
			return err
		}
	}
	if in.FixedDayCount != "" {
		if _, err := market.ParseDayCount(in.FixedDayCount); err != nil {
			return err
		}
	}
	if in.Quote == nil && in.Class == "" && c.Class == "" {
		return fmt.Errorf("%s %s: no quote and no class to look one up", in.Type, in.Term)
	}
	return nil
}
