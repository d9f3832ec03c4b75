package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Setup stage commands",
	}

	cmd.AddCommand(newSetupCountCmd())
	cmd.AddCommand(newSetupBeginCmd())

	return cmd
}

func newSetupCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <n>",
		Short: "Set the number of players (2-8)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count: %w", err)
			}

			req := map[string]int{"count": count}
			var result Session

			if err := client.Put(fmt.Sprintf("/api/v1/sessions/%s/player-count", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSetupBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Generate the roster and move to the naming stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/naming", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
