package zscore

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sproutlab/sprout/pkg/growth"
)

func TestForPercentileMedianIsZero(t *testing.T) {
	z, err := ForPercentile(50)
	if err != nil {
		t.Fatalf("ForPercentile(50) failed: %v", err)
	}
	if math.Abs(z) > 1e-9 {
		t.Fatalf("ForPercentile(50) = %v, want 0", z)
	}
}

func TestForPercentileAgainstQuantile(t *testing.T) {
	tests := []struct {
		name string
		rank float64
	}{
		{name: "deep lower tail", rank: 0.01},
		{name: "lower tail", rank: 1},
		{name: "lower breakpoint", rank: 2.425},
		{name: "fifth", rank: 5},
		{name: "quartile", rank: 25},
		{name: "upper quartile", rank: 75},
		{name: "ninety fifth", rank: 95},
		{name: "upper breakpoint", rank: 97.575},
		{name: "upper tail", rank: 99},
		{name: "deep upper tail", rank: 99.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForPercentile(tt.rank)
			if err != nil {
				t.Fatalf("ForPercentile(%v) failed: %v", tt.rank, err)
			}
			want := distuv.UnitNormal.Quantile(tt.rank / 100)
			if math.Abs(got-want) > 1e-8 {
				t.Errorf("ForPercentile(%v) = %v, want %v", tt.rank, got, want)
			}
		})
	}
}

func TestForPercentileKnownValues(t *testing.T) {
	z5, _ := ForPercentile(5)
	if math.Abs(z5-(-1.6448536)) > 1e-6 {
		t.Errorf("ForPercentile(5) = %v, want -1.6448536", z5)
	}
	z95, _ := ForPercentile(95)
	if math.Abs(z95-1.6448536) > 1e-6 {
		t.Errorf("ForPercentile(95) = %v, want 1.6448536", z95)
	}
}

func TestForPercentileSymmetry(t *testing.T) {
	for p := 0.05; p < 100; p += 0.35 {
		lo, err := ForPercentile(p)
		if err != nil {
			t.Fatalf("ForPercentile(%v) failed: %v", p, err)
		}
		hi, err := ForPercentile(100 - p)
		if err != nil {
			t.Fatalf("ForPercentile(%v) failed: %v", 100-p, err)
		}
		if math.Abs(lo+hi) > 1e-6 {
			t.Errorf("ForPercentile(%v) = %v, ForPercentile(%v) = %v, not antisymmetric", p, lo, 100-p, hi)
		}
	}
}

func TestForPercentileMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for p := 0.1; p < 100; p += 0.1 {
		z, err := ForPercentile(p)
		if err != nil {
			t.Fatalf("ForPercentile(%v) failed: %v", p, err)
		}
		if z <= prev {
			t.Fatalf("ForPercentile not increasing at %v: %v <= %v", p, z, prev)
		}
		prev = z
	}
}

func TestForPercentileRejectsOutOfRange(t *testing.T) {
	for _, rank := range []float64{0, 100, -1, 100.5, math.NaN(), math.Inf(1)} {
		if _, err := ForPercentile(rank); !errors.Is(err, growth.ErrInvalidPercentile) {
			t.Errorf("ForPercentile(%v) error = %v, want ErrInvalidPercentile", rank, err)
		}
	}
}

func TestPercentileRoundTrip(t *testing.T) {
	for _, rank := range []float64{0.5, 3, 5, 15, 50, 85, 95, 97, 99.5} {
		z, err := ForPercentile(rank)
		if err != nil {
			t.Fatalf("ForPercentile(%v) failed: %v", rank, err)
		}
		if got := Percentile(z); math.Abs(got-rank) > 1e-6 {
			t.Errorf("Percentile(ForPercentile(%v)) = %v", rank, got)
		}
	}
	if got := Percentile(0); got != 50 {
		t.Errorf("Percentile(0) = %v, want 50", got)
	}
}
