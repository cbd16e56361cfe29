// Package zscore converts between percentile ranks and standard-normal
// z-scores.
//
// ForPercentile uses the Beasley-Springer-Moro style rational approximation
// (Acklam's coefficients), accurate to about 1.15e-9 absolute error. The
// coefficients must not be rounded: curves and ranks drift if they are.
package zscore

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sproutlab/sprout/pkg/growth"
)

var (
	a = [6]float64{-39.6968302866538, 220.946098424521, -275.928510446969, 138.357751867269, -30.6647980661472, 2.50662827745924}
	b = [5]float64{-54.4760987982241, 161.585836858041, -155.698979859887, 66.8013118877197, -13.2806815528857}
	c = [6]float64{-0.00778489400243029, -0.322396458041136, -2.40075827716184, -2.54973253934373, 4.37466414146497, 2.93816398269878}
	d = [4]float64{0.00778469570904146, 0.322467129070040, 2.44513413714300, 3.75440866190742}
)

const (
	pLow  = 0.02425
	pHigh = 1 - pLow
)

// ForPercentile returns the z-score below which rank percent of a standard
// normal population falls. rank must lie strictly between 0 and 100.
func ForPercentile(rank float64) (float64, error) {
	if math.IsNaN(rank) || rank <= 0 || rank >= 100 {
		return 0, pkgerrors.Wrapf(growth.ErrInvalidPercentile, "got %v", rank)
	}

	p := rank / 100

	switch {
	case p < pLow:
		return tail(math.Sqrt(-2 * math.Log(p))), nil
	case p <= pHigh:
		q := p - 0.5
		r := q * q
		num := (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q
		den := ((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1
		return num / den, nil
	default:
		return -tail(math.Sqrt(-2 * math.Log(1-p))), nil
	}
}

// tail evaluates the lower-tail rational function for q = sqrt(-2 ln p).
func tail(q float64) float64 {
	num := ((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]
	den := (((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1
	return num / den
}

// Percentile is the forward direction: the share (0..100) of a standard
// normal population below z.
func Percentile(z float64) float64 {
	return distuv.UnitNormal.CDF(z) * 100
}
