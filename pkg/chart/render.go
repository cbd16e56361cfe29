// Package chart draws growth charts: the reference percentile curves with the
// child's measurements on top, rendered as PNG with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	pkgerrors "github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sproutlab/sprout/pkg/history"
)

// ErrNoCurves is returned when there is nothing to draw behind the points.
var ErrNoCurves = errors.New("chart has no reference curves")

var (
	outerCurveColor  = drawing.ColorFromHex("9CA3AF")
	medianCurveColor = drawing.ColorFromHex("4F46E5")
	pointColor       = drawing.ColorFromHex("EF4444")
)

type options struct {
	width  int
	height int
}

// Option configures Render.
type Option func(*options)

// WithSize sets the output size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// Render writes c to w as a PNG image.
func Render(w io.Writer, c history.Chart, opts ...Option) error {
	if len(c.Curves) == 0 {
		return ErrNoCurves
	}

	o := &options{width: 960, height: 540}
	for _, opt := range opts {
		opt(o)
	}

	series := make([]gochart.Series, 0, len(c.Curves)+1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	xMax := 0.0

	for _, curve := range c.Curves {
		xs := make([]float64, len(curve.Values))
		for i, v := range curve.Values {
			xs[i] = float64(i)
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
		xMax = math.Max(xMax, float64(len(curve.Values)-1))

		series = append(series, gochart.ContinuousSeries{
			Name:    fmt.Sprintf("P%g", curve.Rank),
			XValues: xs,
			YValues: curve.Values,
			Style:   curveStyle(curve.Rank),
		})
	}

	if len(c.Points) > 0 {
		xs := make([]float64, 0, len(c.Points))
		ys := make([]float64, 0, len(c.Points))
		for _, p := range c.Points {
			xs = append(xs, float64(p.Month))
			ys = append(ys, p.Value)
			yMin = math.Min(yMin, p.Value)
			yMax = math.Max(yMax, p.Value)
			xMax = math.Max(xMax, float64(p.Month))
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    "Measured",
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    5,
				DotColor:    pointColor,
			},
		})
	}

	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 1
	}

	ch := gochart.Chart{
		Title:      c.Title,
		Width:      o.width,
		Height:     o.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Age (months)",
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: monthTicks(xMax),
		},
		YAxis: gochart.YAxis{
			Name:  c.Unit,
			Range: &gochart.ContinuousRange{Min: math.Floor(yMin - pad), Max: math.Ceil(yMax + pad)},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return pkgerrors.Wrap(err, "failed to render chart")
	}
	return nil
}

func curveStyle(rank float64) gochart.Style {
	if rank == 50 {
		return gochart.Style{
			StrokeColor: medianCurveColor,
			StrokeWidth: 2.5,
		}
	}
	return gochart.Style{
		StrokeColor:     outerCurveColor,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{5, 5},
	}
}

// monthTicks labels every sixth month.
func monthTicks(xMax float64) []gochart.Tick {
	var ticks []gochart.Tick
	for m := 0; float64(m) <= xMax; m += 6 {
		ticks = append(ticks, gochart.Tick{Value: float64(m), Label: fmt.Sprintf("%d", m)})
	}
	return ticks
}
