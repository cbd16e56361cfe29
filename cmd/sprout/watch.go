package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Print daemon events as they happen",
		GroupID: gAdvanced,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch, err := apiClient.Subscribe(ctx)
			if err != nil {
				return err
			}

			for ev := range ch {
				ts := time.Now().Format(time.Kitchen)
				switch ev.Name {
				case events.ReminderDue:
					p, err := events.DecodeAs[events.ReminderEvent](ev)
					if err != nil {
						logrus.Warnf("bad %s payload: %v", ev.Name, err)
						continue
					}
					cmd.Printf("%s %s %s\n", ts, bold("reminder"), p.Message)
				case events.EntryAdded, events.EntryRemoved:
					p, err := events.DecodeAs[events.EntryEvent](ev)
					if err != nil {
						logrus.Warnf("bad %s payload: %v", ev.Name, err)
						continue
					}
					cmd.Printf("%s %s %s (%s)\n", ts, bold("%s", ev.Name), p.ID, p.Date)
				case events.ConfigChanged:
					p, err := events.DecodeAs[events.ConfigEvent](ev)
					if err != nil {
						logrus.Warnf("bad %s payload: %v", ev.Name, err)
						continue
					}
					cmd.Printf("%s %s %s = %v\n", ts, bold("%s", ev.Name), p.Key, p.Value)
				default:
					cmd.Printf("%s %s %s\n", ts, ev.Name, string(ev.Data))
				}
			}
			return nil
		},
	}
}
