// Package percentile turns reference medians and spreads into percentile
// values, percentile ranks and the reference curves drawn on growth charts.
//
// Everything here is a pure function of its arguments. Values go in and come
// out in metric units unless useMetric is false, in which case only the final
// result is converted.
package percentile

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/units"
	"github.com/sproutlab/sprout/pkg/who"
	"github.com/sproutlab/sprout/pkg/zscore"
)

// Value returns the measurement at which a child of the given age and sex
// sits on the given percentile rank.
func Value(metric growth.Metric, month int, rank float64, sex growth.Sex, useMetric bool) (float64, error) {
	median, sd, err := reference(metric, sex, month)
	if err != nil {
		return 0, err
	}

	z, err := zscore.ForPercentile(rank)
	if err != nil {
		return 0, err
	}

	return units.Convert(metric, median+z*sd, useMetric), nil
}

// Rank returns the percentile rank (0..100) of a measurement given in metric
// units.
func Rank(metric growth.Metric, month int, measured float64, sex growth.Sex) (float64, error) {
	if !(measured > 0) {
		return 0, pkgerrors.Wrapf(growth.ErrMissingMeasurement, "got %v", measured)
	}

	z, err := ZScore(metric, month, measured, sex)
	if err != nil {
		return 0, err
	}

	rank := zscore.Percentile(z)
	switch {
	case rank < 0:
		return 0, nil
	case rank > 100:
		return 100, nil
	}
	return rank, nil
}

// ZScore returns how many standard deviations measured is from the median.
func ZScore(metric growth.Metric, month int, measured float64, sex growth.Sex) (float64, error) {
	median, sd, err := reference(metric, sex, month)
	if err != nil {
		return 0, err
	}
	return (measured - median) / sd, nil
}

func reference(metric growth.Metric, sex growth.Sex, month int) (median, sd float64, err error) {
	median, err = who.Median(metric, sex, month)
	if err != nil {
		return 0, 0, pkgerrors.Wrapf(err, "failed to look up %s median", metric)
	}
	sd, err = who.StandardDeviation(metric, sex, month)
	if err != nil {
		return 0, 0, pkgerrors.Wrapf(err, "failed to look up %s standard deviation", metric)
	}
	return median, sd, nil
}
