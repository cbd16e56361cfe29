package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/types"
)

type statusData struct {
	config   *config.RawFileConfig
	latest   []types.LatestCard
	reminder *types.ReminderStatus
	entries  int
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	data := &statusData{config: conf}

	// Without a birth date there are no ages, so the cards cannot be computed.
	if !config.NewFileFromConfig(conf, "").BirthDate().IsZero() {
		data.latest, err = apiClient.GetLatest()
		if err != nil {
			return nil, fmt.Errorf("failed to get latest percentiles: %w", err)
		}
	}

	list, err := apiClient.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	data.entries = len(list)

	data.reminder, err = apiClient.GetReminder()
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder status: %w", err)
	}

	return data, nil
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gJournal,
		Short:   "Show the profile and the latest percentiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, buildStatusJSON(data))
			}

			conf := config.NewFileFromConfig(data.config, "")

			cmd.Println(bold("Profile:"))
			name := conf.BabyName()
			if name == "" {
				name = "(not set)"
			}
			cmd.Printf("  Name: %s\n", bold("%s", name))
			birth := conf.BirthDate()
			if birth.IsZero() {
				cmd.Printf("  Birth date: %s\n", bold("not set"))
				cmd.Println("    Set it with 'sprout birth-date YYYY-MM-DD' to see percentiles.")
			} else {
				age, _ := history.MonthsBetween(birth, time.Now())
				cmd.Printf("  Birth date: %s (%s)\n", bold("%s", birth.Format(config.DateLayout)), bold("%d months", age))
			}
			cmd.Printf("  Sex: %s\n", bold("%s", conf.Sex()))
			system := "imperial (lb, in)"
			if conf.UseMetric() {
				system = "metric (kg, cm)"
			}
			cmd.Printf("  Units: %s\n", bold("%s", system))
			cmd.Printf("  Journal entries: %s\n", bold("%d", data.entries))

			if len(data.latest) > 0 {
				cmd.Println()
				cmd.Println(bold("Latest percentiles:"))
				for _, card := range data.latest {
					if !card.Found {
						cmd.Printf("  %s: %s\n", card.Metric.Title(), "no measurement")
						continue
					}
					p := card.Point
					cmd.Printf("  %s: %s at %d months, percentile %s (%s)\n",
						card.Metric.Title(),
						bold("%.1f %s", p.Value, card.Unit),
						p.Month,
						rankColor(p.Percentile),
						p.Date.Format(config.DateLayout),
					)
				}
			}

			cmd.Println()
			cmd.Println(bold("Daemon:"))
			cmd.Printf("  Measurement reminder: %s", bool2Text(data.reminder.Cron != ""))
			if data.reminder.Cron != "" {
				cmd.Printf(" %s", data.reminder.Cron)
				if !data.reminder.NextRun.IsZero() {
					cmd.Printf(", next at %s", data.reminder.NextRun.Local().Format(time.DateTime))
				}
			}
			cmd.Println()
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
