package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/growth"
)

func NewSexCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "sex male|female",
		Short:     "Set the reference population",
		GroupID:   gSettings,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(growth.Male), string(growth.Female)},
		RunE: func(_ *cobra.Command, args []string) error {
			sex, err := growth.ParseSex(args[0])
			if err != nil {
				return err
			}

			ret, err := apiClient.SetSex(sex)
			if err != nil {
				return fmt.Errorf("failed to set sex: %v", err)
			}
			logResponse(ret)

			return nil
		},
	}
}

func NewUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "units metric|imperial",
		Short:     "Choose kilograms and centimeters, or pounds and inches",
		GroupID:   gSettings,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"metric", "imperial"},
		RunE: func(_ *cobra.Command, args []string) error {
			var useMetric bool
			switch strings.ToLower(args[0]) {
			case "metric", "si":
				useMetric = true
			case "imperial", "us":
				useMetric = false
			default:
				return fmt.Errorf("unknown unit system %q, expected metric or imperial", args[0])
			}

			ret, err := apiClient.SetUseMetric(useMetric)
			if err != nil {
				return fmt.Errorf("failed to set units: %v", err)
			}
			logResponse(ret)

			return nil
		},
	}
}

func NewBirthDateCommand() *cobra.Command {
	var clearDate bool

	cmd := &cobra.Command{
		Use:     "birth-date [YYYY-MM-DD]",
		Short:   "Set the birth date used to compute ages",
		GroupID: gSettings,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var birth time.Time
			switch {
			case clearDate:
			case len(args) == 1:
				var err error
				birth, err = time.Parse(config.DateLayout, args[0])
				if err != nil {
					return fmt.Errorf("invalid birth date %q, expected %s", args[0], config.DateLayout)
				}
			default:
				return fmt.Errorf("a birth date or --clear is required")
			}

			ret, err := apiClient.SetBirthDate(birth)
			if err != nil {
				return fmt.Errorf("failed to set birth date: %v", err)
			}
			logResponse(ret)

			return nil
		},
	}

	cmd.Flags().BoolVar(&clearDate, "clear", false, "clear the birth date")

	return cmd
}

func NewNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "name NAME",
		Short:   "Set the baby's name",
		GroupID: gSettings,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ret, err := apiClient.SetBabyName(args[0])
			if err != nil {
				return fmt.Errorf("failed to set name: %v", err)
			}
			logResponse(ret)

			return nil
		},
	}
}

func NewReminderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminder",
		Short:   "Schedule a reminder to take measurements",
		GroupID: gSettings,
		Long: `Schedule a reminder to take measurements.

The daemon publishes a reminder event on the schedule, reporting how many days
passed since the last journal entry. Watch for it with 'sprout watch'.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set CRON",
			Short: "Set the reminder schedule",
			Example: `  sprout reminder set "@weekly"
  sprout reminder set "0 9 * * MON"`,
			Args: cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				ret, err := apiClient.SetReminder(args[0])
				if err != nil {
					return fmt.Errorf("failed to set reminder: %v", err)
				}
				logResponse(ret)
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Disable the reminder",
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.SetReminder("")
				if err != nil {
					return fmt.Errorf("failed to disable reminder: %v", err)
				}
				logResponse(ret)
				return nil
			},
		},
		&cobra.Command{
			Use:   "skip",
			Short: "Skip the next reminder",
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.SkipReminder()
				if err != nil {
					return fmt.Errorf("failed to skip reminder: %v", err)
				}
				logResponse(ret)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the reminder schedule",
			RunE: func(cmd *cobra.Command, _ []string) error {
				status, err := apiClient.GetReminder()
				if err != nil {
					return err
				}
				if status.Cron == "" {
					cmd.Println("Reminder: " + bool2Text(false))
					return nil
				}
				cmd.Printf("Reminder: %s %s\n", bool2Text(true), bold("%s", status.Cron))
				if !status.NextRun.IsZero() {
					cmd.Printf("  Next: %s\n", status.NextRun.Local().Format(time.DateTime))
				}
				logrus.Debugf("scheduler running: %t", status.Running)
				return nil
			},
		},
	)

	return cmd
}
