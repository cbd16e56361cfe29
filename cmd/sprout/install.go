package main

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sproutlab/sprout/pkg/config"
	daemonutils "github.com/sproutlab/sprout/pkg/utils/daemon"
)

var gInstallation = "Installation:"

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:         "install",
		Short:       "Install sprout daemon as a systemd user service",
		GroupID:     gInstallation,
		Annotations: map[string]string{annotationLocal: "true"},
		Long: `Install sprout daemon as a systemd user service.

This makes the daemon run in the background and start when you log in. The
service uses the current --config, --journal and --daemon-socket paths.

By default only your user can talk to the daemon socket. Use
--allow-non-root-access to open it to every local user.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("all local users are allowed to access the sprout daemon.")
			}

			err = daemonutils.Install(daemonutils.Paths{
				Config:  configPath,
				Journal: journalPath,
				Socket:  unixSocketPath,
			})
			if err != nil {
				return fmt.Errorf("failed to install daemon: %v", err)
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.Infof("installation succeeded")

			unitPath, _ := daemonutils.UnitPath()
			cmd.Printf("systemd will start the current binary through %s. If you move this binary, run `sprout install' again.\n", unitPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow all local users to access the sprout daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "uninstall",
		Short:       "Uninstall the sprout systemd user service",
		GroupID:     gInstallation,
		Annotations: map[string]string{annotationLocal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			cmd.Println("successfully uninstalled")
			cmd.Printf("Your config (%s) and journal (%s) are kept. Remove them manually for a complete uninstall.\n", configPath, journalPath)

			return nil
		},
	}
}
