package daemon

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/events"
)

// remind publishes a reminder.due event with the days since the last entry.
func remind() error {
	if entries == nil {
		return pkgerrors.New("journal is not loaded")
	}

	who := "your baby"
	if conf != nil && conf.BabyName() != "" {
		who = conf.BabyName()
	}

	ev := events.ReminderEvent{
		DaysSinceLastEntry: -1,
		Message:            fmt.Sprintf("No measurements recorded for %s yet.", who),
		Ts:                 time.Now().Unix(),
	}
	if last, ok := entries.Last(); ok {
		days := int(time.Since(last.Date).Hours() / 24)
		if days < 0 {
			days = 0
		}
		ev.DaysSinceLastEntry = days
		ev.Message = fmt.Sprintf("Last measurement of %s was %d days ago.", who, days)
	}

	logrus.WithField("daysSinceLastEntry", ev.DaysSinceLastEntry).Info(ev.Message)
	hub.Publish(events.ReminderDue, ev)
	return nil
}

// applyReminder schedules the reminder, or clears it when expr is empty.
func applyReminder(expr string) {
	if expr == "" {
		reminder.Unschedule()
		logrus.Debug("reminder disabled")
		return
	}

	if err := reminder.Schedule(expr); err != nil {
		logrus.Errorf("failed to schedule reminder: %v", err)
		return
	}
	next, _ := reminder.Status()
	logrus.WithField("nextRun", next.Format(time.DateTime)).Infof("reminder scheduled with %q", expr)
}
