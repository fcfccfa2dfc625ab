package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battinfo/pkg/channel"
)

// statusJSON is the machine-readable status. Unavailable metrics are null.
type statusJSON struct {
	PlatformVersion string `json:"platformVersion"`
	LevelPercent    *int   `json:"levelPercent"`
	Charging        bool   `json:"charging"`
	State           string `json:"state"`
	// TemperatureTenthsC is in tenths of a degree Celsius.
	TemperatureTenthsC *int `json:"temperatureTenthsC"`
}

// optional turns an UNAVAILABLE result into nil and keeps other errors.
func optional[T any](v T, err error) (*T, error) {
	if channel.IsUnavailable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fetchStatus() (*statusJSON, error) {
	var s statusJSON
	var errs []error

	v, err := query[string](channel.MethodGetPlatformVersion)
	s.PlatformVersion = v
	errs = append(errs, err)

	s.LevelPercent, err = optional[int](query[int](channel.MethodGetBatteryLevel))
	errs = append(errs, err)

	s.Charging, err = query[bool](channel.MethodIsCharging)
	errs = append(errs, err)

	s.State, err = query[string](channel.MethodGetBatteryState)
	errs = append(errs, err)

	s.TemperatureTenthsC, err = optional[int](query[int](channel.MethodGetTemperature))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &s, nil
}

func NewStatusCommand() *cobra.Command {
	jsonOutput := false

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gQuery,
		Short:   "Print everything battinfo knows about the battery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := fetchStatus()
			if err != nil {
				return err
			}

			if jsonOutput {
				b, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(b))
				return nil
			}

			cmd.Println(bold("Platform:"))
			cmd.Printf("  Version: %s\n", bold("%s", s.PlatformVersion))
			cmd.Println()

			cmd.Println(bold("Battery status:"))
			if s.LevelPercent != nil {
				cmd.Printf("  Level: %s\n", bold("%d%%", *s.LevelPercent))
			} else {
				cmd.Printf("  Level: %s\n", color.YellowString("not available"))
			}

			state := s.State
			switch s.State {
			case "charging":
				state = color.GreenString(s.State)
			case "unplugged":
				state = color.RedString(s.State)
			}
			cmd.Printf("  State: %s\n", bold("%s", state))
			cmd.Printf("  Charging: %s\n", bool2Text(s.Charging))

			if s.TemperatureTenthsC != nil {
				cmd.Printf("  Temperature: %s\n", bold("%s", formatTemperature(*s.TemperatureTenthsC)))
			} else {
				cmd.Printf("  Temperature: %s\n", color.YellowString("not available"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print status as JSON")

	return cmd
}
