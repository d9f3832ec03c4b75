package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNamingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "naming",
		Short: "Naming stage commands",
	}

	cmd.AddCommand(newNamingNameCmd())
	cmd.AddCommand(newNamingAvatarCmd())
	cmd.AddCommand(newNamingPlayCmd())
	cmd.AddCommand(newNamingBackCmd())

	return cmd
}

func newNamingNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <player-id> <name...>",
		Short: "Set a player's display name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			playerID := args[0]
			name := strings.Join(args[1:], " ")

			req := map[string]string{"name": name}
			var result Session

			if err := client.Patch(fmt.Sprintf("/api/v1/sessions/%s/players/%s/name", id, playerID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNamingAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <player-id> <symbol>",
		Short: "Set a player's avatar (see 'tiletally palette')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			req := map[string]string{"avatar": args[1]}
			var result Session

			if err := client.Patch(fmt.Sprintf("/api/v1/sessions/%s/players/%s/avatar", id, args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNamingPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Lock the roster in and start recording turns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/play", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNamingBackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the setup stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/setup", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
