package config

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/growth"
)

type Config interface {
	BabyName() string
	// BirthDate returns the zero time when unset.
	BirthDate() time.Time
	Sex() growth.Sex
	UseMetric() bool
	AllowNonRootAccess() bool
	// ReminderCron is empty when reminders are disabled.
	ReminderCron() string

	SetBabyName(string)
	SetBirthDate(time.Time)
	SetSex(growth.Sex)
	SetUseMetric(bool)
	SetAllowNonRootAccess(bool)
	SetReminderCron(string)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
