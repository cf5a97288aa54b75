package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ordli77/interestrate/curve"
	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/marketdata"
	"github.com/ordli77/interestrate/quote"
)

// Bootstraps an ESTR discount curve and an OIS-discounted EURIBOR6M
// projection curve from the bundled sample strips, prints both node
// tables, then bumps the 10Y swap quote to show dependent curves
// recalibrating on their own.
func main() {
	refDate := marketdata.SampleDate
	cat := marketdata.SampleCatalog()

	ois, err := buildDiscountCurve(refDate, cat)
	if err != nil {
		log.Fatal(err)
	}
	discount := curve.NewHandle()
	discount.LinkTo(ois)

	sixM, tenY, err := buildProjectionCurve(refDate, cat, discount)
	if err != nil {
		log.Fatal(err)
	}

	if err := printNodes(ois); err != nil {
		log.Fatal(err)
	}
	if err := printNodes(sixM); err != nil {
		log.Fatal(err)
	}

	tenYDate := refDate.AddDate(10, 0, 0)
	before, err := sixM.ZeroRate(tenYDate, curve.Continuous, 0, true)
	if err != nil {
		log.Fatal(err)
	}
	tenY.SetValue(tenY.Value() + 0.0010)
	after, err := sixM.ZeroRate(tenYDate, curve.Continuous, 0, true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("10Y zero before bump: %.6f%%\n", before*100)
	fmt.Printf("10Y zero after 10bp swap bump: %.6f%%\n", after*100)
}

func buildDiscountCurve(refDate time.Time, cat marketdata.Catalog) (*curve.PiecewiseCurve, error) {
	var helpers []curve.RateHelper
	for _, term := range cat["ois"].Terms() {
		r, err := cat.Rate("ois", term)
		if err != nil {
			return nil, err
		}
		h, err := curve.NewOISRateHelper(curve.OISHelperConfig{
			Quote: quote.New(r),
			Spot:  refDate,
			Tenor: market.MustParsePeriod(term),
			Index: market.ESTR,
		})
		if err != nil {
			return nil, err
		}
		helpers = append(helpers, h)
	}
	return curve.NewPiecewiseCurve(curve.Config{
		Name:          "estr",
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
}

func buildProjectionCurve(refDate time.Time, cat marketdata.Catalog, discount *curve.Handle) (*curve.PiecewiseCurve, *quote.Quote, error) {
	r, err := cat.Rate("irs6m", "6M")
	if err != nil {
		return nil, nil, err
	}
	depo, err := curve.NewDepositRateHelper(quote.New(r), refDate, market.MustParsePeriod("6M"), market.Euribor6M)
	if err != nil {
		return nil, nil, err
	}
	helpers := []curve.RateHelper{depo}

	var tenY *quote.Quote
	for _, term := range []string{"1Y", "2Y", "3Y", "4Y", "5Y", "7Y", "10Y"} {
		r, err := cat.Rate("irs6m", term)
		if err != nil {
			return nil, nil, err
		}
		q := quote.New(r)
		if term == "10Y" {
			tenY = q
		}
		h, err := curve.NewSwapRateHelper(curve.SwapHelperConfig{
			Quote:    q,
			Spot:     refDate,
			Tenor:    market.MustParsePeriod(term),
			Index:    market.Euribor6M,
			Discount: discount,
		})
		if err != nil {
			return nil, nil, err
		}
		helpers = append(helpers, h)
	}

	c, err := curve.NewPiecewiseCurve(curve.Config{
		Name:          "euribor6m",
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		return nil, nil, err
	}
	return c, tenY, nil
}

func printNodes(c *curve.PiecewiseCurve) error {
	nodes, err := c.Nodes()
	if err != nil {
		return err
	}
	fmt.Printf("curve %s (%d pillars)\n", c.Name(), len(nodes)-1)
	for _, n := range nodes {
		z, err := c.ZeroRate(n.Date, curve.Continuous, 0, false)
		if err != nil {
			return err
		}
		fmt.Printf("  %s  t=%7.4f  df=%.8f  zero=%.4f%%\n",
			n.Date.Format("2006-01-02"), n.Time, n.Value, z*100)
	}
	fmt.Println()
	return nil
}
