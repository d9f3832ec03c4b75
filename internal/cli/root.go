package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tiletally",
		Short: "CLI tool for the tiletally scoring API",
		Long: `tiletally is a CLI client for the tile game turn tracker API.

It walks the same staged flow as the app: pick a player count, name the
roster, then record per-turn points and running totals. The active
session ID is remembered between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load session ID from file if not provided via flag/env
			if err := cfg.LoadSessionID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TILETALLY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionID, "session", cfg.SessionID, "Session ID (env: TILETALLY_SESSION)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: TILETALLY_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newNamingCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
