package commands

import (
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dabloons/wattsd/pkg/client"
)

// NewLightCommand creates the light command
func NewLightCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "light",
		Short: "Inspect individual lights",
	}

	cmd.AddCommand(
		newLightListCommand(),
		newLightGetCommand(),
		newLightSetCommand(),
	)

	return cmd
}

// newLightListCommand creates the light list command
func newLightListCommand() *cobra.Command {
	var parseable bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known lights",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			lights, err := c.GetLights(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get lights: %w", err)
			}

			if len(lights) == 0 {
				if parseable {
					return nil
				}
				pterm.Info.Println("No lights discovered")
				return nil
			}

			if parseable {
				for _, l := range lights {
					fmt.Println(LightParseable(l))
				}
				return nil
			}

			for _, l := range lights {
				pterm.DefaultTable.WithData(LightTableData(l)).Render()
				pterm.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}

// newLightGetCommand creates the light get command
func newLightGetCommand() *cobra.Command {
	var parseable bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single light",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			l, err := c.GetLight(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get light: %w", err)
			}

			if parseable {
				fmt.Println(LightParseable(l))
				return nil
			}
			pterm.DefaultTable.WithData(LightTableData(l)).Render()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}

// newLightSetCommand creates the light set command
func newLightSetCommand() *cobra.Command {
	var (
		off        bool
		brightness float64
		hue        float64
		saturation float64
	)
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Apply a light state to a single light",
		Long: `Apply a light state to a single light.

Brightness and saturation are percentages (0-100), hue is in degrees
(0-360). The light is turned on unless --off is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if brightness < 0 || brightness > 100 {
				return fmt.Errorf("brightness must be between 0 and 100")
			}

			state := client.LightState{
				On:         !off,
				Brightness: brightness / 100,
			}
			if cmd.Flags().Changed("hue") {
				if hue < 0 || hue > 360 {
					return fmt.Errorf("hue must be between 0 and 360")
				}
				state.Hue = &hue
			}
			if cmd.Flags().Changed("saturation") {
				if saturation < 0 || saturation > 100 {
					return fmt.Errorf("saturation must be between 0 and 100")
				}
				s := saturation / 100
				state.Saturation = &s
			}

			c := apiFromCmd(cmd)
			if err := c.SetLightState(cmd.Context(), args[0], state); err != nil {
				return fmt.Errorf("failed to set light state: %w", err)
			}

			fmt.Printf("Updated light %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Turn the light off")
	cmd.Flags().Float64VarP(&brightness, "brightness", "b", 100, "Brightness percentage (0-100)")
	cmd.Flags().Float64Var(&hue, "hue", 0, "Hue in degrees (0-360)")
	cmd.Flags().Float64VarP(&saturation, "saturation", "s", 0, "Saturation percentage (0-100)")
	return cmd
}
