package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/clidispatch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start a full-screen session",
	Long: `Runs the same engine as the interactive session in a full-screen
terminal interface with scrollback and input history.

Navigation:
  Enter       - run the command line
  Up/Down     - input history
  PgUp/PgDn   - scroll output
  Ctrl+C      - quit (or type exit)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := tui.DefaultConfig()
	cfg.Title = current.cfg.General.Name
	cfg.Prompt = current.cfg.Shell.Prompt
	cfg.CharLimit = current.cfg.Parser.MaxInputLength
	cfg.Logger = current.logger

	return tui.Run(cmd.Context(), current.engine, cfg)
}
