package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/journal"
	"github.com/sproutlab/sprout/pkg/units"
)

func NewEntryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Short:   "Manage journal entries",
		GroupID: gJournal,
	}

	cmd.AddCommand(
		newEntryAddCommand(),
		newEntryListCommand(),
		newEntryShowCommand(),
		newEntryRemoveCommand(),
	)

	return cmd
}

func newEntryAddCommand() *cobra.Command {
	var (
		date   string
		weight float64
		height float64
		head   float64
		note   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a measurement",
		Long: `Record a measurement.

Values are read in the units configured with 'sprout units'. Leave out the
quantities that were not measured.`,
		Example: `  sprout entry add --weight 7.9 --height 67.6
  sprout entry add --date 2024-07-15 --head 43.3 --note "6 month checkup"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := time.Now()
			if date != "" {
				var err error
				d, err = time.Parse(config.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected %s", date, config.DateLayout)
				}
			}
			d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

			conf, err := apiClient.GetConfig()
			if err != nil {
				return err
			}
			useMetric := config.NewFileFromConfig(conf, "").UseMetric()

			e := journal.Entry{
				Date:                d,
				WeightKg:            units.Normalize(growth.Weight, weight, useMetric),
				HeightCm:            units.Normalize(growth.Height, height, useMetric),
				HeadCircumferenceCm: units.Normalize(growth.HeadCircumference, head, useMetric),
				Note:                note,
			}

			added, err := apiClient.AddEntry(e)
			if err != nil {
				return err
			}

			logrus.WithField("id", added.ID).Infof("recorded entry for %s", added.Date.Format(config.DateLayout))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&date, "date", "d", "", "measurement date (YYYY-MM-DD), defaults to today")
	f.Float64VarP(&weight, "weight", "w", 0, "weight")
	f.Float64Var(&height, "height", 0, "height or length")
	f.Float64Var(&head, "head", 0, "head circumference")
	f.StringVarP(&note, "note", "n", "", "free-form note")

	return cmd
}

func newEntryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := apiClient.ListEntries()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				cmd.Println("No entries yet. Add one with 'sprout entry add'.")
				return nil
			}

			raw, err := apiClient.GetConfig()
			if err != nil {
				return err
			}
			conf := config.NewFileFromConfig(raw, "")

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tAGE\tWEIGHT\tHEIGHT\tHEAD\tNOTE")
			for _, e := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID,
					e.Date.Format(config.DateLayout),
					ageText(conf.BirthDate(), e.Date),
					cell(e, growth.Weight, conf.UseMetric()),
					cell(e, growth.Height, conf.UseMetric()),
					cell(e, growth.HeadCircumference, conf.UseMetric()),
					e.Note,
				)
			}
			return w.Flush()
		},
	}
}

func newEntryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := apiClient.GetEntry(args[0])
			if err != nil {
				return err
			}
			raw, err := apiClient.GetConfig()
			if err != nil {
				return err
			}
			conf := config.NewFileFromConfig(raw, "")

			cmd.Printf("%s %s (%s)\n", bold("Entry"), e.ID, e.Date.Format(config.DateLayout))
			cmd.Printf("  Age: %s\n", ageText(conf.BirthDate(), e.Date))
			for _, m := range growth.Metrics {
				cmd.Printf("  %s: %s\n", m.Title(), cell(*e, m, conf.UseMetric()))
			}
			if e.Note != "" {
				cmd.Printf("  Note: %s\n", e.Note)
			}
			return nil
		},
	}
}

func newEntryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		Short:   "Remove journal entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var failed []string
			for _, id := range args {
				removed, err := apiClient.RemoveEntry(id)
				if err != nil {
					logrus.Errorf("%v", err)
					failed = append(failed, id)
					continue
				}
				logrus.Infof("removed entry %s from %s", removed.ID, removed.Date.Format(config.DateLayout))
			}
			if len(failed) > 0 {
				return fmt.Errorf("failed to remove %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}

func cell(e journal.Entry, metric growth.Metric, useMetric bool) string {
	if !e.Has(metric) {
		return "-"
	}
	return units.Format(metric, e.Value(metric), useMetric)
}

func ageText(birth, date time.Time) string {
	if birth.IsZero() {
		return "?"
	}
	months, err := history.MonthsBetween(birth, date)
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%dm", months)
}
