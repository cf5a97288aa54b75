package marketdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleDate is the curve date of the bundled sample strips.
var SampleDate = time.Date(2025, time.November, 21, 0, 0, 0, 0, time.UTC)

// SampleCatalog returns a bundled EUR-style quote set for development
// and tests: an overnight OIS strip, a 6M IBOR strip with its anchor
// deposit, and a 3M/6M tenor basis strip in basis points.
func SampleCatalog() Catalog {
	return Catalog{
		"ois": &Table{
			Class:     "ois",
			CurveDate: SampleDate,
			Scale:     ScalePercent,
			Rows: sampleRows([][2]string{
				{"1M", "1.92"}, {"3M", "1.95"}, {"6M", "1.98"},
				{"1Y", "2.02"}, {"2Y", "2.08"}, {"3Y", "2.14"},
				{"5Y", "2.26"}, {"7Y", "2.38"}, {"10Y", "2.55"},
				{"12Y", "2.63"},
			}),
		},
		"irs6m": &Table{
			Class:     "irs6m",
			CurveDate: SampleDate,
			Scale:     ScalePercent,
			Rows: sampleRows([][2]string{
				{"6M", "2.28"},
				{"1Y", "2.31"}, {"2Y", "2.38"}, {"3Y", "2.46"},
				{"4Y", "2.53"}, {"5Y", "2.60"}, {"7Y", "2.71"},
				{"10Y", "2.85"},
			}),
		},
		"basis3m6m": &Table{
			Class:     "basis3m6m",
			CurveDate: SampleDate,
			Scale:     ScaleBasisPoints,
			Rows: sampleRows([][2]string{
				{"1Y", "11"}, {"2Y", "12"}, {"3Y", "12.5"},
				{"5Y", "14"}, {"10Y", "16"},
			}),
		},
	}
}

func sampleRows(pairs [][2]string) []Row {
	out := make([]Row, len(pairs))
	for i, p := range pairs {
		out[i] = Row{Term: p[0], Value: decimal.RequireFromString(p[1])}
	}
	return out
}
