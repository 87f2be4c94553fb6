package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/clidispatch/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session (default)",
	Long: `Reads one command line per prompt from stdin and prints each result.

The session ends on the exit command or end of input. Any unexpected
failure is logged and ends the session with a non-zero exit status.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	loop := repl.New(current.engine, repl.Options{
		Input:   cmd.InOrStdin(),
		Output:  cmd.OutOrStdout(),
		Prompt:  current.cfg.Shell.Prompt,
		Logger:  current.logger,
		NoColor: !current.cfg.Shell.ColorEnabled(),
	})
	if err := loop.Run(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
