package percentile

import (
	"errors"
	"math"
	"testing"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/who"
)

var sexes = []growth.Sex{growth.Male, growth.Female}

func TestValueAtMedianEqualsTable(t *testing.T) {
	for _, metric := range growth.Metrics {
		for _, sex := range sexes {
			for month := 0; month <= 48; month++ {
				got, err := Value(metric, month, 50, sex, true)
				if err != nil {
					t.Fatalf("Value() failed: %v", err)
				}
				want, _ := who.Median(metric, sex, month)
				if got != want {
					t.Errorf("Value(%s, %d, 50, %s) = %v, want median %v", metric, month, sex, got, want)
				}
			}
		}
	}
}

func TestValueMonotonicInRank(t *testing.T) {
	for _, metric := range growth.Metrics {
		for _, sex := range sexes {
			for month := 0; month <= 48; month += 3 {
				for _, useMetric := range []bool{true, false} {
					p5, _ := Value(metric, month, 5, sex, useMetric)
					p50, _ := Value(metric, month, 50, sex, useMetric)
					p95, _ := Value(metric, month, 95, sex, useMetric)
					if !(p5 < p50 && p50 < p95) {
						t.Errorf("%s/%s month %d: %v, %v, %v not increasing", metric, sex, month, p5, p50, p95)
					}
				}
			}
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name      string
		metric    growth.Metric
		month     int
		rank      float64
		sex       growth.Sex
		useMetric bool
		want      float64
		tolerance float64
	}{
		{
			name:   "female height median at one year",
			metric: growth.Height, month: 12, rank: 50, sex: growth.Female, useMetric: true,
			want: 73.8, tolerance: 0,
		},
		{
			name:   "male weight median at six months in pounds",
			metric: growth.Weight, month: 6, rank: 50, sex: growth.Male, useMetric: false,
			want: 17.42, tolerance: 0.01,
		},
		{
			name:   "male weight 95th at birth",
			metric: growth.Weight, month: 0, rank: 95, sex: growth.Male, useMetric: true,
			want: 3.3 + 1.6448536*0.45, tolerance: 1e-6,
		},
		{
			name:   "female head 5th past the tables",
			metric: growth.HeadCircumference, month: 40, rank: 5, sex: growth.Female, useMetric: true,
			want: 48.5 + 4*0.07 - 1.6448536*1.5, tolerance: 1e-6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.metric, tt.month, tt.rank, tt.sex, tt.useMetric)
			if err != nil {
				t.Fatalf("Value() failed: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueErrors(t *testing.T) {
	if _, err := Value(growth.Weight, 3, 0, growth.Male, true); !errors.Is(err, growth.ErrInvalidPercentile) {
		t.Errorf("rank 0: got %v", err)
	}
	if _, err := Value(growth.Weight, 3, 100, growth.Male, true); !errors.Is(err, growth.ErrInvalidPercentile) {
		t.Errorf("rank 100: got %v", err)
	}
	if _, err := Value(growth.Weight, -2, 50, growth.Male, true); !errors.Is(err, growth.ErrNegativeAge) {
		t.Errorf("negative month: got %v", err)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		metric   growth.Metric
		month    int
		measured float64
		sex      growth.Sex
		want     float64
	}{
		{name: "median is fiftieth", metric: growth.Weight, month: 6, measured: 7.9, sex: growth.Male, want: 50},
		{name: "one sd above", metric: growth.Height, month: 0, measured: 49.9 + 1.9, sex: growth.Male, want: 84.1345},
		{name: "one sd below", metric: growth.HeadCircumference, month: 30, measured: 47.9 - 1.5, sex: growth.Female, want: 15.8655},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(tt.metric, tt.month, tt.measured, tt.sex)
			if err != nil {
				t.Fatalf("Rank() failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankInvertsValue(t *testing.T) {
	for _, metric := range growth.Metrics {
		for _, sex := range sexes {
			for _, rank := range []float64{3, 5, 15, 50, 85, 95, 97} {
				for _, month := range []int{0, 7, 18, 36, 42} {
					v, err := Value(metric, month, rank, sex, true)
					if err != nil {
						t.Fatalf("Value() failed: %v", err)
					}
					got, err := Rank(metric, month, v, sex)
					if err != nil {
						t.Fatalf("Rank() failed: %v", err)
					}
					if math.Abs(got-rank) > 1e-5 {
						t.Errorf("%s/%s month %d: Rank(Value(%v)) = %v", metric, sex, month, rank, got)
					}
				}
			}
		}
	}
}

func TestRankRejectsMissingMeasurement(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN()} {
		if _, err := Rank(growth.Weight, 2, v, growth.Female); !errors.Is(err, growth.ErrMissingMeasurement) {
			t.Errorf("Rank(%v) error = %v, want ErrMissingMeasurement", v, err)
		}
	}
}

func TestRankExtremesStayInRange(t *testing.T) {
	lo, err := Rank(growth.Weight, 12, 0.01, growth.Male)
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	hi, err := Rank(growth.Weight, 12, 500, growth.Male)
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	if lo < 0 || lo > 1e-6 {
		t.Errorf("tiny measurement rank = %v", lo)
	}
	if hi > 100 || hi < 100-1e-6 {
		t.Errorf("huge measurement rank = %v", hi)
	}
}
