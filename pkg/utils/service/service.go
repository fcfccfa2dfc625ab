// Package service installs the battinfo daemon as a system service:
// a launchd daemon on macOS, a systemd unit on Linux.
package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

const exePlaceholder = "/path/to/battinfo"

// Manager knows where a service definition lives and how to (un)load it.
type Manager struct {
	// Path is where the service definition is written.
	Path string
	// Template is the service definition, with exePlaceholder standing in
	// for the executable.
	Template string
	// Load and Unload return the commands that start and stop the service.
	Load   func(path string) *exec.Cmd
	Unload func(path string) *exec.Cmd
}

// ForOS returns the Manager of the running OS.
func ForOS() (*Manager, error) {
	switch runtime.GOOS {
	case "darwin":
		return Launchd(), nil
	case "linux":
		return Systemd(), nil
	default:
		return nil, fmt.Errorf("installing a service is not supported on %s", runtime.GOOS)
	}
}

// Render returns the service definition for the executable at exePath.
func (m *Manager) Render(exePath string) string {
	return strings.ReplaceAll(m.Template, exePlaceholder, exePath)
}

func (m *Manager) Install() error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	dir := filepath.Dir(m.Path)
	logrus.Infof("writing service definition to %s", dir)

	// mkdir -p
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// warn if the file already exists
	_, err = os.Stat(m.Path)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", m.Path)
	}

	err = os.WriteFile(m.Path, []byte(m.Render(exePath)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", m.Path, err)
	}

	err = os.Chown(m.Path, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to chown %s: %w", m.Path, err)
	}

	logrus.Infof("starting battinfo")

	out, err := m.Load(m.Path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w: %s", m.Path, err, out)
	}

	return nil
}

func (m *Manager) Uninstall() error {
	logrus.Infof("stopping battinfo")

	out, err := m.Unload(m.Path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to unload %s: %w: %s. Are you root?", m.Path, err, out)
	}

	logrus.Infof("removing service definition")

	// if the file doesn't exist, we don't need to remove it
	_, err = os.Stat(m.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", m.Path, err)
	}

	err = os.Remove(m.Path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", m.Path, err)
	}

	return nil
}
