package units

import (
	"math"
	"testing"

	"github.com/sproutlab/sprout/pkg/growth"
)

func TestRoundTrip(t *testing.T) {
	values := []float64{0.5, 3.3, 7.9, 15.1, 49.9, 73.8, 97.4}
	for _, m := range growth.Metrics {
		for _, v := range values {
			got := ToMetric(m, FromMetric(m, v))
			if math.Abs(got-v)/v > 1e-6 {
				t.Errorf("%s: round trip of %v gave %v", m, v, got)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name      string
		metric    growth.Metric
		v         float64
		useMetric bool
		want      float64
	}{
		{name: "metric weight untouched", metric: growth.Weight, v: 7.9, useMetric: true, want: 7.9},
		{name: "weight to pounds", metric: growth.Weight, v: 7.9, useMetric: false, want: 7.9 * 2.20462},
		{name: "height to inches", metric: growth.Height, v: 100, useMetric: false, want: 39.3701},
		{name: "head to inches", metric: growth.HeadCircumference, v: 10, useMetric: false, want: 3.93701},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.metric, tt.v, tt.useMetric)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
			if back := Normalize(tt.metric, got, tt.useMetric); math.Abs(back-tt.v) > 1e-9 {
				t.Errorf("Normalize() = %v, want %v", back, tt.v)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		metric    growth.Metric
		v         float64
		useMetric bool
		want      string
	}{
		{growth.Weight, 7.9, true, "7.9 kg"},
		{growth.Weight, 7.9, false, "17.4 lb"},
		{growth.Height, 73.8, true, "73.8 cm"},
		{growth.Height, 73.8, false, "29.1 in"},
		{growth.HeadCircumference, 45, false, "17.7 in"},
	}
	for _, tt := range tests {
		if got := Format(tt.metric, tt.v, tt.useMetric); got != tt.want {
			t.Errorf("Format(%s, %v, %t) = %q, want %q", tt.metric, tt.v, tt.useMetric, got, tt.want)
		}
	}
}
