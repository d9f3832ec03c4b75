package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play stage commands",
	}

	cmd.AddCommand(newPlayAddCmd())
	cmd.AddCommand(newPlayUndoCmd())
	cmd.AddCommand(newPlayInputCmd())

	return cmd
}

func newPlayAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <points>",
		Short: "Record a turn for the current player",
		Long: `Record a turn for the current player and advance the rotation.

The points value is sent as entered; the server decides whether it
parses. Negative and zero scores are allowed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			req := map[string]string{"points": args[0]}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/turns", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent turn and step the rotation back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			var result Session

			if err := client.DeleteWithResult(fmt.Sprintf("/api/v1/sessions/%s/turns/last", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayInputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "input <text...>",
		Short: "Stash an in-progress point entry without recording it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			req := map[string]string{"text": strings.Join(args, " ")}
			var result Session

			if err := client.Put(fmt.Sprintf("/api/v1/sessions/%s/input", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
