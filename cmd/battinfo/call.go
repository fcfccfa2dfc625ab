package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battinfo/pkg/channel"
)

func NewCallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "call <method> [json-arguments]",
		Short:   "Invoke a method on the channel and print the raw response",
		GroupID: gAdvanced,
		Long: `Invoke a method on the channel and print the raw response envelope.

The envelope is one of:
  {"status":"success","result":...}
  {"status":"error","code":"UNAVAILABLE","message":"..."}
  {"status":"notImplemented"}

The command exits non-zero unless the status is success.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var callArgs json.RawMessage
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("arguments are not valid JSON: %s", args[1])
				}
				callArgs = json.RawMessage(args[1])
			}

			env, err := invoke(args[0], callArgs)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(b))

			if env.Status != channel.StatusSuccess {
				return fmt.Errorf("%s: %w", args[0], env.Err())
			}
			return nil
		},
	}
}
