package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/client"
	"github.com/sproutlab/sprout/pkg/growth"
)

func parseIntArg(arg string, valueName string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func parseFloatArg(arg string, valueName string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

// logResponse prints a plain daemon message.
func logResponse(ret string) {
	if msg := client.ParseMessage(ret); msg != "" {
		logrus.Infof("daemon responded: %s", msg)
	}
}

// referenceFlags are shared by the commands that compute locally.
type referenceFlags struct {
	sex      string
	imperial bool
	json     bool
}

func (f *referenceFlags) register(cmd *cobra.Command, withJSON bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.sex, "sex", "s", string(growth.Female), "reference population (male or female)")
	flags.BoolVar(&f.imperial, "imperial", false, "use pounds and inches instead of kilograms and centimeters")
	if withJSON {
		flags.BoolVar(&f.json, "json", false, "print JSON")
	}
}

func (f *referenceFlags) parse() (growth.Sex, bool, error) {
	sex, err := growth.ParseSex(f.sex)
	if err != nil {
		return "", false, err
	}
	return sex, !f.imperial, nil
}

func ordinal(rank float64) string {
	return fmt.Sprintf("P%s", strconv.FormatFloat(rank, 'f', -1, 64))
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// rankColor highlights ranks outside the 5th to 95th percentile band.
func rankColor(rank float64) string {
	s := fmt.Sprintf("%.1f", rank)
	switch {
	case rank < 5 || rank > 95:
		return color.New(color.Bold, color.FgYellow).Sprint(s)
	default:
		return color.New(color.Bold, color.FgGreen).Sprint(s)
	}
}
