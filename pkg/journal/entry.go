package journal

import (
	"time"

	"github.com/sproutlab/sprout/pkg/growth"
)

// Entry is one dated set of measurements. A zero value means the quantity was
// not measured on that day.
type Entry struct {
	ID                  string    `json:"id"`
	Date                time.Time `json:"date"`
	WeightKg            float64   `json:"weightKg,omitempty"`
	HeightCm            float64   `json:"heightCm,omitempty"`
	HeadCircumferenceCm float64   `json:"headCircumferenceCm,omitempty"`
	Note                string    `json:"note,omitempty"`
}

// Value returns the measurement for metric in kg or cm.
func (e Entry) Value(metric growth.Metric) float64 {
	switch metric {
	case growth.Weight:
		return e.WeightKg
	case growth.Height:
		return e.HeightCm
	case growth.HeadCircumference:
		return e.HeadCircumferenceCm
	default:
		return 0
	}
}

// Has reports whether metric was measured in this entry.
func (e Entry) Has(metric growth.Metric) bool {
	return e.Value(metric) > 0
}
