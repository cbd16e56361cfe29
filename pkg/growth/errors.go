package growth

import "errors"

var (
	// ErrInvalidPercentile is returned when a percentile rank is outside (0, 100).
	ErrInvalidPercentile = errors.New("percentile rank must be between 0 and 100 (exclusive)")

	// ErrNegativeAge is returned for ages before birth.
	ErrNegativeAge = errors.New("age in months must not be negative")

	// ErrMissingMeasurement is returned when a measured value is zero or negative.
	ErrMissingMeasurement = errors.New("measurement must be greater than zero")

	ErrUnknownMetric = errors.New("unknown growth metric")
	ErrUnknownSex    = errors.New("unknown sex")
)

// IsInvalidInput reports whether err is caused by a caller-side precondition
// violation rather than an internal failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidPercentile) ||
		errors.Is(err, ErrNegativeAge) ||
		errors.Is(err, ErrMissingMeasurement) ||
		errors.Is(err, ErrUnknownMetric) ||
		errors.Is(err, ErrUnknownSex)
}
