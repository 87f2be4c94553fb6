package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the registered commands",
	Long: `Prints the command table the help command shows, followed by the
records that were skipped during registration.`,
	Args: cobra.NoArgs,
	RunE: runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(cmd *cobra.Command, _ []string) error {
	reg := current.engine.Registry()
	fmt.Fprintln(cmd.OutOrStdout(), dispatcher.RenderTable(reg, current.engine.Dispatcher().Renderer()))

	for _, err := range reg.Skipped() {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", err)
	}
	return nil
}
