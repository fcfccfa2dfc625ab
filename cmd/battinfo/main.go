package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/battinfo.sock"
	configPath     = "/etc/battinfo.json"
	channelName    = channel.DefaultName
	local          = false
)

var (
	gQuery        = "Query:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gQuery,
		gAdvanced,
		gInstallation,
	}
)

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

// bindEnv fills every flag not given on the command line from its
// BATTINFO_* environment variable, e.g. --daemon-socket from
// BATTINFO_DAEMON_SOCKET.
func bindEnv(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix("battinfo")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s from environment: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: battinfo daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it? You can also query without the daemon using '--local'.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or reinstall the daemon with the '--allow-non-root-access' flag to grant permissions to your user")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintf(os.Stderr, "\nError: the daemon does not serve channel %q, or is too old\n", channelName)
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
		Use:   "battinfo",
		Short: "battinfo reports battery level and charging state",
		Long: `battinfo reports battery level and charging state.

Queries are answered by the battinfo daemon over a method channel, or
in-process with '--local'. Every flag can also be set through a
BATTINFO_* environment variable, e.g. BATTINFO_DAEMON_SOCKET.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv(cmd.Flags()); err != nil {
				return err
			}
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "battinfo daemon unix socket path")
	globalFlags.StringVar(&channelName, "channel", channelName, "method channel name")
	globalFlags.BoolVar(&local, "local", false, "answer queries in-process instead of asking the daemon")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewLevelCommand(),
		NewPlatformVersionCommand(),
		NewChargingCommand(),
		NewStateCommand(),
		NewTemperatureCommand(),
		NewCallCommand(),
		NewStatusCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
