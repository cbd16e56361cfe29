package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/percentile"
	"github.com/sproutlab/sprout/pkg/types"
	"github.com/sproutlab/sprout/pkg/units"
)

func NewValueCommand() *cobra.Command {
	var f referenceFlags

	cmd := &cobra.Command{
		Use:         "value METRIC MONTH RANK",
		Short:       "Measurement at a percentile rank",
		GroupID:     gCompute,
		Annotations: map[string]string{annotationLocal: "true"},
		Long: `Print the measurement that sits at a percentile rank.

METRIC is weight, height or head. MONTH is the age in whole months. RANK is a
percentile strictly between 0 and 100.`,
		Example: `  sprout value height 12 50 --sex female
  sprout value weight 6 95 --sex male --imperial`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := growth.ParseMetric(args[0])
			if err != nil {
				return err
			}
			month, err := parseIntArg(args[1], "month")
			if err != nil {
				return err
			}
			rank, err := parseFloatArg(args[2], "rank")
			if err != nil {
				return err
			}
			sex, useMetric, err := f.parse()
			if err != nil {
				return err
			}

			v, err := percentile.Value(metric, month, rank, sex, useMetric)
			if err != nil {
				return err
			}

			if f.json {
				return printJSON(cmd, types.PercentileValue{
					Metric: metric,
					Sex:    sex,
					Month:  month,
					Rank:   rank,
					Value:  v,
					Unit:   units.Symbol(metric, useMetric),
				})
			}

			cmd.Printf("%s %s at %d months (%s): %s\n",
				ordinal(rank), metric.Title(), month, sex, bold("%.1f %s", v, units.Symbol(metric, useMetric)))
			return nil
		},
	}

	f.register(cmd, true)

	return cmd
}

func NewRankCommand() *cobra.Command {
	var f referenceFlags

	cmd := &cobra.Command{
		Use:         "rank METRIC MONTH VALUE",
		Short:       "Percentile rank of a measurement",
		GroupID:     gCompute,
		Annotations: map[string]string{annotationLocal: "true"},
		Long: `Print the percentile rank of a measurement.

VALUE is in kilograms or centimeters, or in pounds or inches with --imperial.`,
		Example: `  sprout rank weight 6 8.4 --sex male
  sprout rank height 12 29 --imperial`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := growth.ParseMetric(args[0])
			if err != nil {
				return err
			}
			month, err := parseIntArg(args[1], "month")
			if err != nil {
				return err
			}
			value, err := parseFloatArg(args[2], "value")
			if err != nil {
				return err
			}
			sex, useMetric, err := f.parse()
			if err != nil {
				return err
			}

			measured := units.Normalize(metric, value, useMetric)
			z, err := percentile.ZScore(metric, month, measured, sex)
			if err != nil {
				return err
			}
			rank, err := percentile.Rank(metric, month, measured, sex)
			if err != nil {
				return err
			}

			if f.json {
				return printJSON(cmd, types.PercentileRank{
					Metric:     metric,
					Sex:        sex,
					Month:      month,
					Value:      measured,
					ZScore:     z,
					Percentile: rank,
				})
			}

			cmd.Printf("%s of %s at %d months (%s): percentile %s (z = %+.2f)\n",
				metric.Title(), units.Format(metric, measured, useMetric), month, sex, rankColor(rank), z)
			return nil
		},
	}

	f.register(cmd, true)

	return cmd
}

func NewCurvesCommand() *cobra.Command {
	var f referenceFlags

	cmd := &cobra.Command{
		Use:         "curves METRIC",
		Short:       "Reference percentile curves for months 0 to 36",
		GroupID:     gCompute,
		Annotations: map[string]string{annotationLocal: "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := growth.ParseMetric(args[0])
			if err != nil {
				return err
			}
			sex, useMetric, err := f.parse()
			if err != nil {
				return err
			}

			curves, err := percentile.Curves(metric, sex, useMetric)
			if err != nil {
				return err
			}

			if f.json {
				return printJSON(cmd, types.CurveSet{
					Metric: metric,
					Sex:    sex,
					Unit:   units.Symbol(metric, useMetric),
					Curves: curves,
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprint(w, "month\t")
			for _, c := range curves {
				fmt.Fprintf(w, "%s\t", ordinal(c.Rank))
			}
			fmt.Fprintln(w)
			for month := 0; month < percentile.CurveMonths; month++ {
				fmt.Fprintf(w, "%d\t", month)
				for _, c := range curves {
					fmt.Fprintf(w, "%.1f\t", c.Values[month])
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}

	f.register(cmd, true)

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
