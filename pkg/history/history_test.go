package history

import (
	"errors"
	"math"
	"testing"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/journal"
	"github.com/sproutlab/sprout/pkg/units"
)

var entries = []journal.Entry{
	{ID: "3", Date: date("2024-07-10"), WeightKg: 7.9, HeightCm: 67.6},
	{ID: "1", Date: date("2024-01-10"), WeightKg: 3.3, HeightCm: 49.9, HeadCircumferenceCm: 34.5},
	{ID: "2", Date: date("2024-04-12"), WeightKg: 6.4},
}

func TestSeriesFiltersAndOrders(t *testing.T) {
	b := Builder{Birth: date("2024-01-10"), Sex: growth.Male, UseMetric: true}

	weights, err := b.Series(growth.Weight, entries)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if len(weights) != 3 {
		t.Fatalf("got %d weight points, want 3", len(weights))
	}
	wantMonths := []int{0, 3, 6}
	for i, p := range weights {
		if p.Month != wantMonths[i] {
			t.Errorf("point %d month = %d, want %d", i, p.Month, wantMonths[i])
		}
		if math.Abs(p.Percentile-50) > 1e-9 {
			t.Errorf("point %d percentile = %v, want 50 for median values", i, p.Percentile)
		}
	}

	heads, err := b.Series(growth.HeadCircumference, entries)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if len(heads) != 1 || heads[0].EntryID != "1" {
		t.Fatalf("placeholder zeros should be skipped, got %+v", heads)
	}
}

func TestSeriesImperial(t *testing.T) {
	b := Builder{Birth: date("2024-01-10"), Sex: growth.Male, UseMetric: false}
	weights, err := b.Series(growth.Weight, entries)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	last := weights[len(weights)-1]
	if want := units.FromMetric(growth.Weight, 7.9); last.Value != want {
		t.Errorf("value = %v, want %v", last.Value, want)
	}
	if math.Abs(last.Percentile-50) > 1e-9 {
		t.Errorf("percentile must not depend on display units, got %v", last.Percentile)
	}
}

func TestSeriesErrors(t *testing.T) {
	if _, err := (Builder{Sex: growth.Female}).Series(growth.Weight, entries); !errors.Is(err, ErrBirthDateUnset) {
		t.Errorf("error = %v, want ErrBirthDateUnset", err)
	}
}

func TestSeriesSkipsEntriesBeforeBirth(t *testing.T) {
	b := Builder{Birth: date("2024-02-01"), Sex: growth.Female, UseMetric: true}

	weights, err := b.Series(growth.Weight, entries)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("got %d points, want 2", len(weights))
	}
	for _, p := range weights {
		if p.EntryID == "1" {
			t.Fatalf("entry dated before birth should be skipped")
		}
	}

	latest, found, err := b.Latest(growth.HeadCircumference, entries)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if found {
		t.Fatalf("only head measurement predates birth, got %+v", latest)
	}
}

func TestLatest(t *testing.T) {
	b := Builder{Birth: date("2024-01-10"), Sex: growth.Male, UseMetric: true}

	p, ok, err := b.Latest(growth.Height, entries)
	if err != nil || !ok {
		t.Fatalf("Latest failed: %v, %t", err, ok)
	}
	if p.EntryID != "3" || p.Month != 6 {
		t.Errorf("Latest = %+v", p)
	}

	_, ok, err = b.Latest(growth.HeadCircumference, nil)
	if err != nil || ok {
		t.Errorf("Latest on empty journal = %t, %v", ok, err)
	}
}

func TestChart(t *testing.T) {
	b := Builder{Birth: date("2024-01-10"), Sex: growth.Female, UseMetric: false}
	c, err := b.Chart(growth.Height, entries)
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if c.Unit != "in" {
		t.Errorf("unit = %q, want in", c.Unit)
	}
	if len(c.Curves) != 3 || len(c.Points) != 2 {
		t.Errorf("got %d curves and %d points", len(c.Curves), len(c.Points))
	}
	if c.Title != "Height for age (female)" {
		t.Errorf("title = %q", c.Title)
	}
}
