package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sproutlab/sprout/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = defaultSocketPath()
	configPath     = filepath.Join(defaultDataDir(), "config.json")
	journalPath    = filepath.Join(defaultDataDir(), "journal.json")

	apiClient *client.Client
)

var (
	gCompute      = "Compute:"
	gJournal      = "Journal:"
	gSettings     = "Settings:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gCompute,
		gJournal,
		gSettings,
		gAdvanced,
	}
)

// annotationLocal marks commands that never talk to the daemon.
const annotationLocal = "sprout/local"

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sprout")
	}
	return filepath.Join(home, ".config", "sprout")
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "sprout.sock")
	}
	return "/tmp/sprout.sock"
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: sprout daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'sprout daemon', or check --daemon-socket.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Run the command as the user that started the daemon")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with '--always-allow-non-root-access'")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprout",
		Short: "sprout tracks a baby's growth against the WHO child growth standards",
		Long: `sprout tracks a baby's growth against the WHO child growth standards.

It computes weight, height and head circumference percentiles for ages
0 to 36 months, keeps a local journal of measurements, and renders growth
charts with the 5th, 50th and 95th percentile curves.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if cmd.Annotations[annotationLocal] != "" {
				return nil
			}

			if clientVersion, daemonVersion, err := getVersion(); err == nil {
				if daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. Restart the daemon after upgrading sprout.")
				}
			} else if errors.Is(err, client.ErrNotFound) {
				logrus.Error("sprout daemon is too old to report its version. Restart the daemon after upgrading sprout.")
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .yaml or .yml)")
	globalFlags.StringVar(&journalPath, "journal", journalPath, "journal file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "sprout daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewValueCommand(),
		NewRankCommand(),
		NewCurvesCommand(),
		NewStatusCommand(),
		NewEntryCommand(),
		NewChartCommand(),
		NewSexCommand(),
		NewUnitsCommand(),
		NewBirthDateCommand(),
		NewNameCommand(),
		NewReminderCommand(),
		NewWatchCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
