package types

import (
	"time"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
)

// LatestCard is the current percentile of one metric. Found is false when no
// entry measured the metric yet.
type LatestCard struct {
	Metric growth.Metric `json:"metric"`
	Unit   string        `json:"unit"`
	Found  bool          `json:"found"`
	Point  history.Point `json:"point"`
}

// ReminderStatus describes the measurement reminder.
type ReminderStatus struct {
	Cron    string    `json:"cron"`
	Running bool      `json:"running"`
	NextRun time.Time `json:"nextRun,omitempty"`
}
