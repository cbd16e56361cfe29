// Package who is the compiled-in store of WHO 0-36 month growth references.
//
// Lookups past the tabulated range never fail: medians continue linearly at a
// per-metric, per-sex monthly gain and standard deviations settle on a
// per-metric constant.
package who

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/sproutlab/sprout/pkg/growth"
)

const (
	// MedianMonths is the number of tabulated median months (0..36).
	MedianMonths = len(weightMedianMale)
	// SDMonths is the number of tabulated standard deviation months (0..23).
	SDMonths = len(weightSDMale)
)

// Median returns the 50th percentile value in kg or cm.
func Median(metric growth.Metric, sex growth.Sex, month int) (float64, error) {
	t, err := lookup(metric, sex, month)
	if err != nil {
		return 0, err
	}

	n := len(t.median)
	if month < n {
		return t.median[month], nil
	}

	return t.median[n-1] + float64(month-n+1)*t.gain, nil
}

// StandardDeviation returns the spread around the median in kg or cm.
func StandardDeviation(metric growth.Metric, sex growth.Sex, month int) (float64, error) {
	t, err := lookup(metric, sex, month)
	if err != nil {
		return 0, err
	}

	if month < len(t.sd) {
		return t.sd[month], nil
	}

	return t.sdTail, nil
}

// monthlyGain returns the rate used to extend medians past month 36.
func monthlyGain(metric growth.Metric, sex growth.Sex) (float64, error) {
	t, err := lookup(metric, sex, 0)
	if err != nil {
		return 0, err
	}
	return t.gain, nil
}

func lookup(metric growth.Metric, sex growth.Sex, month int) (table, error) {
	if month < 0 {
		return table{}, pkgerrors.Wrapf(growth.ErrNegativeAge, "got month %d", month)
	}

	bySex, ok := tables[metric]
	if !ok {
		return table{}, pkgerrors.Wrapf(growth.ErrUnknownMetric, "%q", metric)
	}

	t, ok := bySex[sex]
	if !ok {
		return table{}, pkgerrors.Wrapf(growth.ErrUnknownSex, "%q", sex)
	}

	return t, nil
}
