package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
)

// Exit codes of the run command
const (
	exitOK       = 0
	exitFailed   = 1
	exitNotFound = 2
)

var runCmd = &cobra.Command{
	Use:   "run <line...>",
	Short: "Dispatch a single command line",
	Long: `Joins the arguments into one command line, dispatches it and prints
the result.

Exit status: 0 on success, 1 when the handler failed, 2 when the line
could not be parsed, the command is unknown or its usage is wrong.

Example:
  clidispatch run -- greet bob --loud=true`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLine,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runLine(cmd *cobra.Command, args []string) error {
	line := strings.Join(args, " ")

	result, err := current.engine.Execute(cmd.Context(), line)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		return &exitError{code: exitNotFound}
	}

	if result.Printable() && result.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(result.Output, " \t\r\n"))
	}
	if result.Suggestion != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "did you mean %q?\n", result.Suggestion)
	}
	if result.Status == dispatcher.StatusFailed && result.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", result.Command, result.Err)
	}

	if code := exitCodeFor(result.Status); code != exitOK {
		return &exitError{code: code}
	}
	return nil
}

func exitCodeFor(status dispatcher.Status) int {
	switch status {
	case dispatcher.StatusFailed:
		return exitFailed
	case dispatcher.StatusNotFound, dispatcher.StatusUsage:
		return exitNotFound
	default:
		return exitOK
	}
}
