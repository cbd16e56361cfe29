package percentile

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/who"
)

// StandardRanks are the curves drawn on every growth chart, in output order.
var StandardRanks = []float64{5, 50, 95}

// CurveMonths is the number of points in each curve, months 0..36.
const CurveMonths = who.MedianMonths

// Curve is one reference percentile line. Values[i] is the value at month i.
type Curve struct {
	Rank   float64   `json:"rank"`
	Values []float64 `json:"values"`
}

// Curves generates the 5th, 50th and 95th percentile curves for months 0..36.
func Curves(metric growth.Metric, sex growth.Sex, useMetric bool) ([]Curve, error) {
	curves := make([]Curve, 0, len(StandardRanks))
	for _, rank := range StandardRanks {
		c := Curve{
			Rank:   rank,
			Values: make([]float64, 0, CurveMonths),
		}
		for month := 0; month < CurveMonths; month++ {
			v, err := Value(metric, month, rank, sex, useMetric)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "failed to generate %vth percentile curve", rank)
			}
			c.Values = append(c.Values, v)
		}
		curves = append(curves, c)
	}
	return curves, nil
}
