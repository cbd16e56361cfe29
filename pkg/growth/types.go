package growth

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Metric is one of the measured growth quantities.
type Metric string

const (
	Weight            Metric = "weight"
	Height            Metric = "height"
	HeadCircumference Metric = "head"
)

// Metrics lists every supported metric in display order.
var Metrics = []Metric{Weight, Height, HeadCircumference}

// ParseMetric accepts the canonical names plus a few common aliases.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weight", "w":
		return Weight, nil
	case "height", "length", "h":
		return Height, nil
	case "head", "head-circumference", "headcircumference", "hc":
		return HeadCircumference, nil
	default:
		return "", pkgerrors.Wrapf(ErrUnknownMetric, "%q", s)
	}
}

func (m Metric) Valid() bool {
	switch m {
	case Weight, Height, HeadCircumference:
		return true
	}
	return false
}

// Title is the human-readable name used in chart titles and CLI output.
func (m Metric) Title() string {
	switch m {
	case Weight:
		return "Weight"
	case Height:
		return "Height"
	case HeadCircumference:
		return "Head circumference"
	default:
		return string(m)
	}
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMetric(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sex selects the reference table variant.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "boy":
		return Male, nil
	case "female", "f", "girl":
		return Female, nil
	default:
		return "", pkgerrors.Wrapf(ErrUnknownSex, "%q", s)
	}
}

func (s Sex) Valid() bool {
	return s == Male || s == Female
}

func (s *Sex) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseSex(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
