// Package daemon installs the sprout daemon as a systemd user service.
package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const unitName = "sprout.service"

const unitTemplate = `[Unit]
Description=sprout growth journal daemon
After=default.target

[Service]
Type=simple
ExecStart="/path/to/sprout" daemon --config "/path/to/config" --journal "/path/to/journal" --daemon-socket "/path/to/socket"
Restart=on-failure
RestartSec=5

[Install]
WantedBy=default.target
`

// Paths are the files the installed daemon is started with.
type Paths struct {
	Executable string
	Config     string
	Journal    string
	Socket     string
}

// runSystemctl is replaced in tests.
var runSystemctl = func(args ...string) error {
	out, err := exec.Command("systemctl", append([]string{"--user"}, args...)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl --user %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// UnitPath returns where the user unit file is written.
func UnitPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find the user config directory: %w", err)
	}
	return filepath.Join(dir, "systemd", "user", unitName), nil
}

// Unit renders the unit file for p.
func Unit(p Paths) string {
	return strings.NewReplacer(
		"/path/to/sprout", p.Executable,
		"/path/to/config", p.Config,
		"/path/to/journal", p.Journal,
		"/path/to/socket", p.Socket,
	).Replace(unitTemplate)
}

// Install writes the unit file and starts the service. An empty
// p.Executable means the running binary.
func Install(p Paths) error {
	if p.Executable == "" {
		exePath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get the path to the current executable: %w", err)
		}
		p.Executable = exePath
	}
	exePath, err := filepath.Abs(p.Executable)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}
	p.Executable = exePath

	logrus.Infof("current executable path: %s", exePath)

	unitPath, err := UnitPath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(unitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(unitPath), err)
	}

	// warn if the file already exists
	_, err = os.Stat(unitPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	logrus.Infof("writing user unit to %s", unitPath)
	err = os.WriteFile(unitPath, []byte(Unit(p)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting sprout")

	if err := runSystemctl("daemon-reload"); err != nil {
		return err
	}
	return runSystemctl("enable", "--now", unitName)
}
