package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/growth"
)

func NewChartCommand() *cobra.Command {
	var (
		output string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:     "chart METRIC",
		Short:   "Render a growth chart as PNG",
		GroupID: gJournal,
		Long: `Render a growth chart as PNG.

The chart shows the 5th, 50th and 95th percentile curves for the configured
sex, with every journal measurement of METRIC plotted on top.`,
		Example: `  sprout chart weight -o weight.png
  sprout chart height -o height.png --width 1280 --height 720`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			metric, err := growth.ParseMetric(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("%s.png", metric)
			}

			b, err := apiClient.GetChart(metric, width, height)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, b, 0644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}

			logrus.Infof("wrote %s chart to %s", metric, output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file, defaults to METRIC.png")
	f.IntVar(&width, "width", 0, "image width in pixels")
	f.IntVar(&height, "height", 0, "image height in pixels")

	return cmd
}
