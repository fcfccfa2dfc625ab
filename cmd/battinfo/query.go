package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version",
		GroupID: gAdvanced,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "level",
		Short:   "Print the battery level in percent",
		GroupID: gQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := query[int](channel.MethodGetBatteryLevel)
			if err != nil {
				return fmt.Errorf("failed to get battery level: %w", err)
			}
			cmd.Printf("%d%%\n", level)
			return nil
		},
	}
}

func NewPlatformVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "platform-version",
		Short:   "Print the operating system and its release",
		GroupID: gQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := query[string](channel.MethodGetPlatformVersion)
			if err != nil {
				return fmt.Errorf("failed to get platform version: %w", err)
			}
			cmd.Println(v)
			return nil
		},
	}
}

func NewChargingCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "charging",
		Short:   "Print whether the battery is charging",
		GroupID: gQuery,
		Long: `Print whether the battery is charging.

Android releases before 6.0 cannot tell, and always report false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			charging, err := query[bool](channel.MethodIsCharging)
			if err != nil {
				return fmt.Errorf("failed to get charging status: %w", err)
			}
			cmd.Println(charging)
			return nil
		},
	}
}

func NewStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "state",
		Short:   "Print the battery state (unknown, unplugged, charging, full)",
		GroupID: gQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := query[string](channel.MethodGetBatteryState)
			if err != nil {
				return fmt.Errorf("failed to get battery state: %w", err)
			}
			cmd.Println(state)
			return nil
		},
	}
}

func NewTemperatureCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "temperature",
		Short:   "Print the battery temperature in degrees Celsius",
		GroupID: gQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			temp, err := query[int](channel.MethodGetTemperature)
			if err != nil {
				return fmt.Errorf("failed to get battery temperature: %w", err)
			}
			cmd.Println(formatTemperature(temp))
			return nil
		},
	}
}

// formatTemperature renders tenths of a degree Celsius.
func formatTemperature(tenths int) string {
	return fmt.Sprintf("%.1f °C", float64(tenths)/10)
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
