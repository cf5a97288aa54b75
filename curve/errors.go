package curve

import (
	"fmt"
	"time"
)

// ConfigurationError reports an invalid curve or helper setup detected
// before any calibration runs: no helpers, duplicate pillar dates,
// malformed conventions, or a trait/interpolation pairing that cannot
// work.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "curve configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// DependencyError reports a dereference of a curve handle that has not
// been linked to a calibrated curve yet.
type DependencyError struct {
	Helper string
}

func (e *DependencyError) Error() string {
	if e.Helper == "" {
		return "curve dependency: handle not linked"
	}
	return fmt.Sprintf("curve dependency: handle not linked, needed by %s", e.Helper)
}

// CalibrationError reports a pillar whose root finding failed, with
// the offending helper and the last residual in quote units.
type CalibrationError struct {
	Curve    string
	Helper   string
	Pillar   time.Time
	Residual float64
	Err      error
}

func (e *CalibrationError) Error() string {
	name := e.Curve
	if name == "" {
		name = "curve"
	}
	return fmt.Sprintf("%s: calibration failed for %s at pillar %s, residual %g: %v",
		name, e.Helper, e.Pillar.Format("2006-01-02"), e.Residual, e.Err)
}

func (e *CalibrationError) Unwrap() error { return e.Err }

// OutOfRangeError reports a query before the reference date or beyond
// the last pillar without extrapolation enabled.
type OutOfRangeError struct {
	Date time.Time
	Min  time.Time
	Max  time.Time
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("date %s outside curve range [%s, %s]",
		e.Date.Format("2006-01-02"), e.Min.Format("2006-01-02"), e.Max.Format("2006-01-02"))
}
