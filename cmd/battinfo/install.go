package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battinfo/pkg/config"
	"github.com/charlie0129/battinfo/pkg/utils/service"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install battinfo daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install battinfo daemon as a system service (launchd on macOS, systemd on Linux).

This makes battinfo run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the battinfo daemon. If you want to allow non-root users to query the daemon, use the --allow-non-root-access flag, so you don't have to use sudo every time.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the battinfo daemon.")
			} else {
				logrus.Info("only root user is allowed to access the battinfo daemon.")
			}

			m, err := service.ForOS()
			if err != nil {
				return err
			}

			// Save first: the service starts as soon as it is loaded.
			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = m.Install()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %v. Are you root?", err)
			}

			logrus.Infof("installation succeeded. The service uses the current binary, so do not move it. Once this binary is moved or deleted, you will need to run battinfo install again.")

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access battinfo daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall battinfo daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall battinfo daemon.

This stops battinfo from running in the background and automatically starting on boot. You must run this command as root.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := service.ForOS()
			if err != nil {
				return err
			}

			err = m.Uninstall()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			logrus.Infof("successfully uninstalled battinfo")

			return nil
		},
	}
}
