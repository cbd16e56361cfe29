// Package units converts between the metric values used internally and the
// imperial values shown to users who prefer them. Every conversion and unit
// label in the module goes through here.
package units

import (
	"fmt"

	"github.com/sproutlab/sprout/pkg/growth"
)

const (
	KilogramsToPounds   = 2.20462
	CentimetersToInches = 0.393701
)

func factor(metric growth.Metric) float64 {
	if metric == growth.Weight {
		return KilogramsToPounds
	}
	return CentimetersToInches
}

// FromMetric converts kg to lb or cm to in.
func FromMetric(metric growth.Metric, v float64) float64 {
	return v * factor(metric)
}

// ToMetric converts lb to kg or in to cm.
func ToMetric(metric growth.Metric, v float64) float64 {
	return v / factor(metric)
}

// Convert returns v in the units selected by useMetric.
func Convert(metric growth.Metric, v float64, useMetric bool) float64 {
	if useMetric {
		return v
	}
	return FromMetric(metric, v)
}

// Normalize is the inverse of Convert: it brings user input back to metric.
func Normalize(metric growth.Metric, v float64, useMetric bool) float64 {
	if useMetric {
		return v
	}
	return ToMetric(metric, v)
}

func Symbol(metric growth.Metric, useMetric bool) string {
	switch {
	case metric == growth.Weight && useMetric:
		return "kg"
	case metric == growth.Weight:
		return "lb"
	case useMetric:
		return "cm"
	default:
		return "in"
	}
}

// Format renders a metric value for display, e.g. "7.9 kg" or "17.4 lb".
func Format(metric growth.Metric, v float64, useMetric bool) string {
	return fmt.Sprintf("%.1f %s", Convert(metric, v, useMetric), Symbol(metric, useMetric))
}
