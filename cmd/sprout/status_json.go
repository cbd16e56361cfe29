package main

import (
	"time"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/types"
)

type statusJSON struct {
	Profile  statusProfileJSON  `json:"profile"`
	Latest   []types.LatestCard `json:"latest"`
	Entries  int                `json:"entries"`
	Reminder statusReminderJSON `json:"reminder"`
}

type statusProfileJSON struct {
	Name      string     `json:"name"`
	BirthDate *string    `json:"birthDate"`
	AgeMonths *int       `json:"ageMonths"`
	Sex       growth.Sex `json:"sex"`
	UseMetric bool       `json:"useMetric"`
}

type statusReminderJSON struct {
	Enabled bool       `json:"enabled"`
	Cron    string     `json:"cron,omitempty"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

func buildStatusJSON(data *statusData) statusJSON {
	conf := config.NewFileFromConfig(data.config, "")

	out := statusJSON{
		Profile: statusProfileJSON{
			Name:      conf.BabyName(),
			Sex:       conf.Sex(),
			UseMetric: conf.UseMetric(),
		},
		Latest:  data.latest,
		Entries: data.entries,
		Reminder: statusReminderJSON{
			Enabled: data.reminder.Cron != "",
			Cron:    data.reminder.Cron,
		},
	}
	if out.Latest == nil {
		out.Latest = []types.LatestCard{}
	}

	if birth := conf.BirthDate(); !birth.IsZero() {
		s := birth.Format(config.DateLayout)
		out.Profile.BirthDate = &s
		if age, err := history.MonthsBetween(birth, time.Now()); err == nil {
			out.Profile.AgeMonths = &age
		}
	}
	if next := data.reminder.NextRun; !next.IsZero() {
		out.Reminder.NextRun = &next
	}

	return out
}
