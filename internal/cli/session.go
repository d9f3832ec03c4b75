package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionUseCmd())
	cmd.AddCommand(newSessionResetCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new scoring session and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions", nil, &result); err != nil {
				return err
			}

			if err := cfg.SaveSessionID(result.ID); err != nil {
				return fmt.Errorf("session created but could not be saved as active: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Make an existing session the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SaveSessionID(args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Active session: %s", args[0]))
			return nil
		},
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the active session to a fresh setup stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequireSessionID()
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session reset")
			return nil
		},
	}
}
