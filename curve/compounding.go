package curve

import (
	"fmt"
	"math"

	"github.com/ordli77/interestrate/market"
)

// Compounding selects how a rate converts to a growth factor.
type Compounding int

const (
	Simple Compounding = iota
	Compounded
	Continuous
)

func (c Compounding) String() string {
	switch c {
	case Simple:
		return "simple"
	case Compounded:
		return "compounded"
	case Continuous:
		return "continuous"
	}
	return fmt.Sprintf("Compounding(%d)", int(c))
}

// impliedRate converts a growth factor over t years into a rate under
// the given compounding convention.
func impliedRate(compound, t float64, comp Compounding, freq market.Frequency) (float64, error) {
	if t <= 0 {
		return 0, fmt.Errorf("implied rate needs positive year fraction, got %g", t)
	}
	if compound <= 0 {
		return 0, fmt.Errorf("implied rate needs positive growth factor, got %g", compound)
	}
	switch comp {
	case Simple:
		return (compound - 1) / t, nil
	case Compounded:
		n := freq.PerYear()
		if n <= 0 {
			return 0, fmt.Errorf("compounded rate needs a coupon frequency, got %s", freq)
		}
		return n * (math.Pow(compound, 1/(n*t)) - 1), nil
	case Continuous:
		return math.Log(compound) / t, nil
	}
	return 0, fmt.Errorf("unknown compounding %v", comp)
}
