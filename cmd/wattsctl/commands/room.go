package commands

import (
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dabloons/wattsd/pkg/client"
)

// NewRoomCommand creates the room command
func NewRoomCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms of lights",
	}

	cmd.AddCommand(
		newRoomListCommand(),
		newRoomCreateCommand(),
		newRoomGetCommand(),
		newRoomDeleteCommand(),
		newRoomLightsCommand(),
		newRoomIntegrationsCommand(),
		newRoomAddLightCommand(),
		newRoomRemoveLightCommand(),
		newRoomSetCommand(),
		newRoomOnCommand(),
		newRoomOffCommand(),
	)

	return cmd
}

// newRoomListCommand creates the room list command
func newRoomListCommand() *cobra.Command {
	var parseable bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			rooms, err := c.GetRooms(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get rooms: %w", err)
			}

			if len(rooms) == 0 {
				if parseable {
					return nil
				}
				pterm.Info.Println("No rooms configured")
				return nil
			}

			if parseable {
				for _, room := range rooms {
					fmt.Println(RoomParseable(room))
				}
				return nil
			}

			for _, room := range rooms {
				pterm.DefaultTable.WithData(RoomTableData(room)).Render()
				pterm.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}

// newRoomCreateCommand creates the room create command
func newRoomCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			room, err := c.CreateRoom(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create room: %w", err)
			}

			fmt.Printf("Created room %s (%s)\n", room.Name, room.ID)
			return nil
		},
	}
}

// newRoomGetCommand creates the room get command
func newRoomGetCommand() *cobra.Command {
	var parseable bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			room, err := c.GetRoom(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get room: %w", err)
			}

			if parseable {
				fmt.Println(RoomParseable(room))
				return nil
			}
			pterm.DefaultTable.WithData(RoomTableData(room)).Render()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&parseable, "parseable", "p", false, "Output in parseable format (key=value)")
	return cmd
}

// newRoomDeleteCommand creates the room delete command
func newRoomDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a room (its lights are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			if err := c.DeleteRoom(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete room: %w", err)
			}

			fmt.Printf("Deleted room %s\n", args[0])
			return nil
		},
	}
}

// newRoomLightsCommand creates the room lights command
func newRoomLightsCommand() *cobra.Command {
	var parseable bool
	cmd := &cobra.Command{
		Use:   "lights <id>",
		Short: "List the lights in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			lights, err := c.GetRoomLights(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get room lights: %w", err)
			}

			if len(lights) == 0 {
				if parseable {
					return nil
				}
				pterm.Info.Println("Room has no lights")
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

// newRoomIntegrationsCommand creates the room integrations command
func newRoomIntegrationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "integrations <id>",
		Short: "List the vendor integrations represented in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			integrations, err := c.GetRoomIntegrations(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get room integrations: %w", err)
			}

			for _, integration := range integrations {
				fmt.Println(integration)
			}
			return nil
		},
	}
}

// newRoomAddLightCommand creates the room add-light command
func newRoomAddLightCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-light <id> <light-id>...",
		Short: "Add lights to a room",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			room, err := c.AddRoomLights(cmd.Context(), args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to add lights: %w", err)
			}

			fmt.Printf("Room %s now has %d lights\n", room.Name, len(room.LightIDs))
			return nil
		},
	}
}

// newRoomRemoveLightCommand creates the room remove-light command
func newRoomRemoveLightCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-light <id> <light-id>",
		Short: "Remove a light from a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			if err := c.RemoveRoomLight(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to remove light: %w", err)
			}

			fmt.Printf("Removed light %s from room %s\n", args[1], args[0])
			return nil
		},
	}
}

// newRoomSetCommand creates the room set command
func newRoomSetCommand() *cobra.Command {
	var (
		off        bool
		brightness float64
		hue        float64
		saturation float64
	)
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Apply a light state to every light in a room",
		Long: `Apply a light state to every light in a room.

Brightness and saturation are percentages (0-100), hue is in degrees
(0-360). Lights are turned on unless --off is given.`,
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
			if err := c.SetRoomState(cmd.Context(), args[0], state); err != nil {
				return fmt.Errorf("failed to set room state: %w", err)
			}

			fmt.Printf("Updated room %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Turn the lights off")
	cmd.Flags().Float64VarP(&brightness, "brightness", "b", 100, "Brightness percentage (0-100)")
	cmd.Flags().Float64Var(&hue, "hue", 0, "Hue in degrees (0-360)")
	cmd.Flags().Float64VarP(&saturation, "saturation", "s", 0, "Saturation percentage (0-100)")
	return cmd
}

// newRoomOnCommand creates the room on command
func newRoomOnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "on <id>",
		Short: "Turn every light in a room on at full brightness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			if err := c.TurnOnRoom(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to turn room on: %w", err)
			}

			fmt.Printf("Turned room %s on\n", args[0])
			return nil
		},
	}
}

// newRoomOffCommand creates the room off command
func newRoomOffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "off <id>",
		Short: "Turn every light in a room off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiFromCmd(cmd)
			if err := c.TurnOffRoom(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to turn room off: %w", err)
			}

			fmt.Printf("Turned room %s off\n", args[0])
			return nil
		},
	}
}
