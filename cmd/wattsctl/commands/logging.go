package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewLoggingCommand creates the logging command
func NewLoggingCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logging",
		Short: "Inspect and change the daemon's log level",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the daemon's current log level",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := apiFromCmd(cmd)
				level, err := c.GetLogLevel(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get log level: %w", err)
				}

				fmt.Println(level)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <level>",
			Short: "Change the daemon's log level (debug, info, warn, error)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c := apiFromCmd(cmd)
				if err := c.SetLogLevel(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to set log level: %w", err)
				}

				fmt.Printf("Log level set to %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
