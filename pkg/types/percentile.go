// Package types holds the JSON shapes shared between the daemon and its
// clients.
package types

import (
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/percentile"
)

// PercentileValue answers "what measurement sits at this rank".
type PercentileValue struct {
	Metric growth.Metric `json:"metric"`
	Sex    growth.Sex    `json:"sex"`
	Month  int           `json:"month"`
	Rank   float64       `json:"rank"`
	Value  float64       `json:"value"`
	Unit   string        `json:"unit"`
}

// PercentileRank answers "which rank does this measurement have". Value is
// always in kg or cm.
type PercentileRank struct {
	Metric     growth.Metric `json:"metric"`
	Sex        growth.Sex    `json:"sex"`
	Month      int           `json:"month"`
	Value      float64       `json:"value"`
	ZScore     float64       `json:"zScore"`
	Percentile float64       `json:"percentile"`
}

// CurveSet is the reference curves of one metric and sex.
type CurveSet struct {
	Metric growth.Metric      `json:"metric"`
	Sex    growth.Sex         `json:"sex"`
	Unit   string             `json:"unit"`
	Curves []percentile.Curve `json:"curves"`
}
