// Package history turns journal entries into chart-ready series: one point
// per measured entry with its age in months, display value and percentile
// rank, plus the reference curves to draw behind them.
package history

import (
	"errors"
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/journal"
	"github.com/sproutlab/sprout/pkg/percentile"
	"github.com/sproutlab/sprout/pkg/units"
)

// Point is one measured value placed on a growth chart.
type Point struct {
	EntryID    string    `json:"entryId"`
	Date       time.Time `json:"date"`
	Month      int       `json:"month"`
	Value      float64   `json:"value"`
	Percentile float64   `json:"percentile"`
}

// Chart is everything a renderer needs for one metric.
type Chart struct {
	Title  string             `json:"title"`
	Metric growth.Metric      `json:"metric"`
	Sex    growth.Sex         `json:"sex"`
	Unit   string             `json:"unit"`
	Curves []percentile.Curve `json:"curves"`
	Points []Point            `json:"points"`
}

// Builder carries the session choices every series depends on.
type Builder struct {
	Birth     time.Time
	Sex       growth.Sex
	UseMetric bool
}

// Series returns the points for metric in date order. Entries that did not
// measure metric are skipped so placeholder zeros never reach a chart, and so
// are entries dated before birth.
func (b Builder) Series(metric growth.Metric, entries []journal.Entry) ([]Point, error) {
	if b.Birth.IsZero() {
		return nil, ErrBirthDateUnset
	}

	points := make([]Point, 0, len(entries))
	for _, e := range entries {
		measured := e.Value(metric)
		if !(measured > 0) {
			continue
		}

		month, err := MonthsBetween(b.Birth, e.Date)
		if errors.Is(err, growth.ErrNegativeAge) {
			logrus.WithField("id", e.ID).Warnf("skipping entry: %v", err)
			continue
		}
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "entry %s", e.ID)
		}

		rank, err := percentile.Rank(metric, month, measured, b.Sex)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "entry %s", e.ID)
		}

		points = append(points, Point{
			EntryID:    e.ID,
			Date:       e.Date,
			Month:      month,
			Value:      units.Convert(metric, measured, b.UseMetric),
			Percentile: rank,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points, nil
}

// Latest returns the most recent point for metric, the value shown on a
// "current percentile" card.
func (b Builder) Latest(metric growth.Metric, entries []journal.Entry) (Point, bool, error) {
	points, err := b.Series(metric, entries)
	if err != nil {
		return Point{}, false, err
	}
	if len(points) == 0 {
		return Point{}, false, nil
	}
	return points[len(points)-1], true, nil
}

// Chart assembles curves and points for metric.
func (b Builder) Chart(metric growth.Metric, entries []journal.Entry) (Chart, error) {
	points, err := b.Series(metric, entries)
	if err != nil {
		return Chart{}, err
	}

	curves, err := percentile.Curves(metric, b.Sex, b.UseMetric)
	if err != nil {
		return Chart{}, err
	}

	return Chart{
		Title:  fmt.Sprintf("%s for age (%s)", metric.Title(), b.Sex),
		Metric: metric,
		Sex:    b.Sex,
		Unit:   units.Symbol(metric, b.UseMetric),
		Curves: curves,
		Points: points,
	}, nil
}
