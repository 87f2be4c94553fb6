package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/msto63/clidispatch/foundation/cmdline"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwconfig "github.com/msto63/clidispatch/foundation/core/config"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	"github.com/msto63/clidispatch/internal/toolbox"
	"github.com/msto63/clidispatch/pkg/core/config"
	"github.com/msto63/clidispatch/pkg/core/logging"
)

var (
	cfgFile      string
	envFiles     []string
	manifestFile string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "clidispatch",
	Short: "clidispatch - interactive command dispatcher",
	Long: `clidispatch reads command lines, matches the first word against a
registry of commands and invokes the bound handler with the remaining
parameters, --key=value arguments and -flags.

Without a subcommand an interactive session is started.

Built-in commands:
  help [command]  - list commands or describe one
  cliversion      - print the engine version
  exit            - leave the session`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runREPL,
}

// Execute runs the root command. Errors other than exit codes are printed.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := teardown(); err == nil {
		err = closeErr
	}
	var exit *exitError
	if err != nil && !errors.As(err, &exit) {
		printError("clidispatch", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./clidispatch.toml, ./configs/clidispatch.toml)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, ".env files to load before the config")
	rootCmd.PersistentFlags().StringVar(&manifestFile, "manifest", "", "command manifest (TOML [[command]], YAML or JSONC commands:)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}

// exitError carries a process exit code without a message
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode maps an Execute error to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}

// app holds what every subcommand needs, built once in setup
type app struct {
	cfg    *config.Config
	logger *mdwlog.Logger
	closer io.Closer
	engine *cmdline.Engine
}

var current *app

func setup(cmd *cobra.Command, _ []string) error {
	if len(envFiles) > 0 {
		if err := mdwconfig.LoadEnvFiles(envFiles...); err != nil {
			return err
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	loggerCfg := cfg.LoggerConfig()
	loggerCfg.Terminal = cmd.ErrOrStderr()
	if verbose {
		loggerCfg.Level = "debug"
	}
	logger, closer, err := logging.NewLogger(loggerCfg)
	if err != nil {
		return err
	}
	mdwlog.SetDefault(logger)

	specs, err := commandSpecs(cfg)
	if err != nil {
		_ = closer.Close()
		return err
	}

	renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
	if !cfg.Shell.ColorEnabled() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	opts, err := cfg.EngineOptions(logger, renderer)
	if err != nil {
		_ = closer.Close()
		return err
	}

	host := toolbox.NewService(toolbox.Config{Logger: logger})
	engine, err := cmdline.New(specs, host, opts)
	if err != nil {
		_ = closer.Close()
		return err
	}

	logger.Debug("engine ready", mdwlog.Fields{
		"config":   cfg.Path(),
		"commands": engine.Registry().Len(),
		"skipped":  len(engine.Registry().Skipped()),
	})

	current = &app{cfg: cfg, logger: logger, closer: closer, engine: engine}
	return nil
}

// teardown releases the log file. Cobra skips post-run hooks when RunE fails,
// so Execute calls it directly.
func teardown() error {
	if current == nil {
		return nil
	}
	err := current.closer.Close()
	current = nil
	return err
}

// commandSpecs picks the command set: --manifest, then [[command]] records
// from the config, then the built-in toolbox manifest.
func commandSpecs(cfg *config.Config) ([]registry.Spec, error) {
	if manifestFile != "" {
		return config.LoadManifest(manifestFile)
	}
	if len(cfg.Commands) > 0 {
		return cfg.Commands, nil
	}
	return toolbox.Specs(), nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
