package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/clidispatch/foundation/cmdline"
	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwconfig "github.com/msto63/clidispatch/foundation/core/config"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	"github.com/msto63/clidispatch/foundation/core/validation"
	"github.com/msto63/clidispatch/pkg/core/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. CLIDISPATCH_SHELL_PROMPT
const EnvPrefix = "CLIDISPATCH"

// ConfigEnvVar names the environment variable holding the config file path
const ConfigEnvVar = "CLIDISPATCH_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig   `toml:"general" yaml:"general" json:"general"`
	Shell    ShellConfig     `toml:"shell" yaml:"shell" json:"shell"`
	Parser   ParserConfig    `toml:"parser" yaml:"parser" json:"parser"`
	Dispatch DispatchConfig  `toml:"dispatch" yaml:"dispatch" json:"dispatch"`
	Commands []registry.Spec `toml:"command" yaml:"commands" json:"commands"`

	path string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format" json:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file" json:"log_file"`
}

// ShellConfig holds interactive loop and message settings
type ShellConfig struct {
	Prompt        string `toml:"prompt" yaml:"prompt" json:"prompt"`
	NoSuchCommand string `toml:"no_such_command" yaml:"no_such_command" json:"no_such_command"`
	NoSuchMethod  string `toml:"no_such_method" yaml:"no_such_method" json:"no_such_method"`
	Color         *bool  `toml:"color" yaml:"color" json:"color"`
	Suggest       *bool  `toml:"suggest" yaml:"suggest" json:"suggest"`
}

// ParserConfig holds input parsing settings
type ParserConfig struct {
	QuoteMode      string `toml:"quote_mode" yaml:"quote_mode" json:"quote_mode"`
	Placeholder    string `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	ParseFlags     *bool  `toml:"parse_flags" yaml:"parse_flags" json:"parse_flags"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length" json:"max_input_length"`
}

// DispatchConfig holds dispatcher settings
type DispatchConfig struct {
	EnforceShape  bool `toml:"enforce_shape" yaml:"enforce_shape" json:"enforce_shape"`
	EnableAliases bool `toml:"enable_aliases" yaml:"enable_aliases" json:"enable_aliases"`
}

// ColorEnabled reports whether styled output is wanted
func (s ShellConfig) ColorEnabled() bool { return s.Color == nil || *s.Color }

// SuggestEnabled reports whether unknown commands get a suggestion
func (s ShellConfig) SuggestEnabled() bool { return s.Suggest == nil || *s.Suggest }

// FlagsEnabled reports whether -x / --x tokens are parsed as flags
func (p ParserConfig) FlagsEnabled() bool { return p.ParseFlags == nil || *p.ParseFlags }

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from path. An empty path searches the default
// locations and falls back to defaults when no file exists. Environment
// variables prefixed with CLIDISPATCH_ override file values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}

	var (
		doc *mdwconfig.Config
		err error
	)
	if path == "" {
		doc, err = mdwconfig.Discover(DiscoveryOptions())
	} else {
		doc, err = mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
			Format:    mdwconfig.FormatAuto,
			EnvPrefix: EnvPrefix,
		})
	}
	if err != nil {
		return nil, err
	}

	return fromDocument(doc)
}

// LoadFromString parses configuration content of the given format
func LoadFromString(content string, format mdwconfig.Format) (*Config, error) {
	doc, err := mdwconfig.LoadFromStringWithOptions(content, mdwconfig.LoadOptions{
		Format:    format,
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// DiscoveryOptions returns where Load looks for a config file when no path is
// given: ./clidispatch.*, ./configs/clidispatch.* and the user config dir.
func DiscoveryOptions() mdwconfig.DiscoveryOptions {
	paths := []string{".", "configs"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "clidispatch"))
	}
	return mdwconfig.DiscoveryOptions{
		Paths:     paths,
		Filenames: []string{"clidispatch"},
		EnvPrefix: EnvPrefix,
	}
}

func fromDocument(doc *mdwconfig.Config) (*Config, error) {
	var cfg Config
	if err := doc.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.path = doc.FilePath()

	cfg.applyEnv(doc)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv re-reads every scalar key through the document getters, which
// prefer CLIDISPATCH_* environment variables over file values.
func (c *Config) applyEnv(doc *mdwconfig.Config) {
	c.General.Name = doc.GetString("general.name", c.General.Name)
	c.General.LogLevel = doc.GetString("general.log_level", c.General.LogLevel)
	c.General.LogFormat = doc.GetString("general.log_format", c.General.LogFormat)
	c.General.LogFile = os.ExpandEnv(doc.GetString("general.log_file", c.General.LogFile))

	c.Shell.Prompt = doc.GetString("shell.prompt", c.Shell.Prompt)
	c.Shell.NoSuchCommand = doc.GetString("shell.no_such_command", c.Shell.NoSuchCommand)
	c.Shell.NoSuchMethod = doc.GetString("shell.no_such_method", c.Shell.NoSuchMethod)
	c.Shell.Color = boolOverride(doc, "shell.color", c.Shell.Color)
	c.Shell.Suggest = boolOverride(doc, "shell.suggest", c.Shell.Suggest)

	c.Parser.QuoteMode = doc.GetString("parser.quote_mode", c.Parser.QuoteMode)
	c.Parser.Placeholder = doc.GetString("parser.placeholder", c.Parser.Placeholder)
	c.Parser.ParseFlags = boolOverride(doc, "parser.parse_flags", c.Parser.ParseFlags)
	c.Parser.MaxInputLength = doc.GetInt("parser.max_input_length", c.Parser.MaxInputLength)

	c.Dispatch.EnforceShape = doc.GetBool("dispatch.enforce_shape", c.Dispatch.EnforceShape)
	c.Dispatch.EnableAliases = doc.GetBool("dispatch.enable_aliases", c.Dispatch.EnableAliases)
}

func boolOverride(doc *mdwconfig.Config, key string, current *bool) *bool {
	if !doc.Has(key) {
		return current
	}
	def := current == nil || *current
	v := doc.GetBool(key, def)
	return &v
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "clidispatch"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = "$ "
	}
	if c.Shell.NoSuchCommand == "" {
		c.Shell.NoSuchCommand = dispatcher.DefaultNoSuchCommandMessage
	}
	if c.Shell.NoSuchMethod == "" {
		c.Shell.NoSuchMethod = registry.DefaultNoSuchMethodMessage
	}

	// Parser
	if c.Parser.QuoteMode == "" {
		c.Parser.QuoteMode = "restore"
	}
	if c.Parser.Placeholder == "" {
		c.Parser.Placeholder = parser.DefaultPlaceholder
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = parser.DefaultMaxInputLength
	}
}

var placeholderPattern = regexp.MustCompile(`^\S+$`)

// Validate checks the configuration for values the engine cannot use
func (c *Config) Validate() error {
	chain := validation.NewValidatorChain("config").
		Add(validation.OneOf("general.log_level", []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"},
			func(v interface{}) string { return v.(*Config).General.LogLevel })).
		Add(validation.OneOf("general.log_format", []string{"console", "text", "json"},
			func(v interface{}) string { return v.(*Config).General.LogFormat })).
		Add(validation.OneOf("parser.quote_mode", []string{"restore", "legacy"},
			func(v interface{}) string { return v.(*Config).Parser.QuoteMode })).
		Add(validation.Matches("parser.placeholder", placeholderPattern,
			func(v interface{}) string { return v.(*Config).Parser.Placeholder })).
		Add(validation.IntRange("parser.max_input_length", 1, 1<<20,
			func(v interface{}) int { return v.(*Config).Parser.MaxInputLength })).
		Add(validation.NotBlank("shell.no_such_command",
			func(v interface{}) string { return v.(*Config).Shell.NoSuchCommand }))

	if err := chain.Validate(c).ToError(); err != nil {
		return mdwerror.Wrap(err, "invalid configuration").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("filePath", c.path)
	}
	return nil
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// LoggerConfig converts the [general] section into a logger configuration
func (c *Config) LoggerConfig() logging.LoggerConfig {
	cfg := logging.DefaultLoggerConfig(c.General.Name)
	cfg.Level = c.General.LogLevel
	cfg.Format = c.General.LogFormat
	cfg.File = c.General.LogFile
	cfg.NoColor = !c.Shell.ColorEnabled()
	return cfg
}

// EngineOptions converts the configuration into command line engine options
func (c *Config) EngineOptions(logger *mdwlog.Logger, renderer *lipgloss.Renderer) (cmdline.Options, error) {
	quoteMode, err := parser.ParseQuoteMode(c.Parser.QuoteMode)
	if err != nil {
		return cmdline.Options{}, err
	}

	return cmdline.Options{
		Logger: logger,
		Parser: parser.Options{
			QuoteMode:      quoteMode,
			Placeholder:    c.Parser.Placeholder,
			DisableFlags:   !c.Parser.FlagsEnabled(),
			MaxInputLength: c.Parser.MaxInputLength,
		},
		Registry: registry.Options{
			EnableAliases:       c.Dispatch.EnableAliases,
			NoSuchMethodMessage: c.Shell.NoSuchMethod,
		},
		Dispatcher: dispatcher.Options{
			NoSuchCommandMessage: c.Shell.NoSuchCommand,
			EnforceShape:         c.Dispatch.EnforceShape,
			Suggest:              c.Shell.SuggestEnabled(),
			Renderer:             renderer,
		},
	}, nil
}

type manifest struct {
	Commands []registry.Spec `toml:"command" yaml:"commands" json:"commands"`
}

// LoadManifest reads command records from a TOML ([[command]]), YAML or
// JSONC (commands:) file.
func LoadManifest(path string) ([]registry.Spec, error) {
	doc, err := mdwconfig.Load(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := doc.Decode(&m); err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("invalid command manifest %s", path)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.LoadManifest").
			WithDetail("filePath", path)
	}
	return m.Commands, nil
}
