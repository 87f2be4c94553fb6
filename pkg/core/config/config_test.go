package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	mdwconfig "github.com/msto63/clidispatch/foundation/core/config"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
)

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	// General defaults
	if cfg.General.Name != "clidispatch" {
		t.Errorf("General.Name = %v, want clidispatch", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "console" {
		t.Errorf("General.LogFormat = %v, want console", cfg.General.LogFormat)
	}

	// Shell defaults
	if cfg.Shell.Prompt != "$ " {
		t.Errorf("Shell.Prompt = %q, want %q", cfg.Shell.Prompt, "$ ")
	}
	if cfg.Shell.NoSuchCommand != "No such command" {
		t.Errorf("Shell.NoSuchCommand = %v, want No such command", cfg.Shell.NoSuchCommand)
	}
	if cfg.Shell.NoSuchMethod != "Internal exception: no such method" {
		t.Errorf("Shell.NoSuchMethod = %v", cfg.Shell.NoSuchMethod)
	}
	if !cfg.Shell.ColorEnabled() || !cfg.Shell.SuggestEnabled() {
		t.Error("color and suggest should default to enabled")
	}

	// Parser defaults
	if cfg.Parser.QuoteMode != "restore" {
		t.Errorf("Parser.QuoteMode = %v, want restore", cfg.Parser.QuoteMode)
	}
	if cfg.Parser.Placeholder != "_" {
		t.Errorf("Parser.Placeholder = %v, want _", cfg.Parser.Placeholder)
	}
	if !cfg.Parser.FlagsEnabled() {
		t.Error("Parser.FlagsEnabled() = false, want true")
	}
	if cfg.Parser.MaxInputLength != 4096 {
		t.Errorf("Parser.MaxInputLength = %v, want 4096", cfg.Parser.MaxInputLength)
	}

	// Dispatch defaults
	if cfg.Dispatch.EnforceShape || cfg.Dispatch.EnableAliases {
		t.Error("dispatch switches should default to off")
	}
}

func TestConfig_applyDefaults_KeepsValues(t *testing.T) {
	cfg := &Config{
		General: GeneralConfig{Name: "shell", LogLevel: "debug"},
		Shell:   ShellConfig{Prompt: "> "},
		Parser:  ParserConfig{QuoteMode: "legacy", MaxInputLength: 80},
	}
	cfg.applyDefaults()

	if cfg.General.Name != "shell" {
		t.Errorf("General.Name = %v, want shell", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Shell.Prompt != "> " {
		t.Errorf("Shell.Prompt = %v, want > ", cfg.Shell.Prompt)
	}
	if cfg.Parser.QuoteMode != "legacy" {
		t.Errorf("Parser.QuoteMode = %v, want legacy", cfg.Parser.QuoteMode)
	}
	if cfg.Parser.MaxInputLength != 80 {
		t.Errorf("Parser.MaxInputLength = %v, want 80", cfg.Parser.MaxInputLength)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "clidispatch.toml")

	configContent := `
[general]
name = "testshell"
log_level = "debug"

[shell]
prompt = "> "
no_such_command = "Unknown command"
color = false

[parser]
quote_mode = "legacy"
parse_flags = false

[dispatch]
enforce_shape = true
enable_aliases = true

[[command]]
name = "greet"
aliases = ["hi"]
params = 1
args = ["loud"]
description = "Greet someone"

[[command]]
name = "echo"
handler = "Echo"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "testshell" {
		t.Errorf("General.Name = %v, want testshell", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Shell.Prompt != "> " {
		t.Errorf("Shell.Prompt = %q, want %q", cfg.Shell.Prompt, "> ")
	}
	if cfg.Shell.NoSuchCommand != "Unknown command" {
		t.Errorf("Shell.NoSuchCommand = %v, want Unknown command", cfg.Shell.NoSuchCommand)
	}
	if cfg.Shell.ColorEnabled() {
		t.Error("Shell.ColorEnabled() = true, want false")
	}
	if cfg.Parser.QuoteMode != "legacy" {
		t.Errorf("Parser.QuoteMode = %v, want legacy", cfg.Parser.QuoteMode)
	}
	if cfg.Parser.FlagsEnabled() {
		t.Error("Parser.FlagsEnabled() = true, want false")
	}
	if !cfg.Dispatch.EnforceShape || !cfg.Dispatch.EnableAliases {
		t.Error("dispatch switches not loaded")
	}

	// Defaults still apply to unset values
	if cfg.Parser.MaxInputLength != 4096 {
		t.Errorf("Parser.MaxInputLength = %v, want 4096", cfg.Parser.MaxInputLength)
	}

	if len(cfg.Commands) != 2 {
		t.Fatalf("len(Commands) = %d, want 2", len(cfg.Commands))
	}
	greet := cfg.Commands[0]
	if greet.Name != "greet" || greet.Params != 1 || len(greet.Aliases) != 1 || greet.Args[0] != "loud" {
		t.Errorf("Commands[0] = %+v", greet)
	}
	if cfg.Commands[1].HandlerName() != "Echo" {
		t.Errorf("Commands[1].HandlerName() = %v, want Echo", cfg.Commands[1].HandlerName())
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %v, want %v", cfg.Path(), configPath)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "clidispatch.yaml")

	configContent := `
shell:
  prompt: "clid> "
  suggest: false
commands:
  - name: upper
    params: 1
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Shell.Prompt != "clid> " {
		t.Errorf("Shell.Prompt = %q", cfg.Shell.Prompt)
	}
	if cfg.Shell.SuggestEnabled() {
		t.Error("Shell.SuggestEnabled() = true, want false")
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Name != "upper" {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "clidispatch.toml")

	configContent := `
[shell]
prompt = "> "

[dispatch]
enforce_shape = false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv("CLIDISPATCH_SHELL_PROMPT", "env> ")
	t.Setenv("CLIDISPATCH_DISPATCH_ENFORCE_SHAPE", "true")
	t.Setenv("CLIDISPATCH_PARSER_PARSE_FLAGS", "false")
	t.Setenv("CLIDISPATCH_PARSER_MAX_INPUT_LENGTH", "128")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Shell.Prompt != "env> " {
		t.Errorf("Shell.Prompt = %q, want %q", cfg.Shell.Prompt, "env> ")
	}
	if !cfg.Dispatch.EnforceShape {
		t.Error("Dispatch.EnforceShape = false, want true")
	}
	if cfg.Parser.FlagsEnabled() {
		t.Error("Parser.FlagsEnabled() = true, want false")
	}
	if cfg.Parser.MaxInputLength != 128 {
		t.Errorf("Parser.MaxInputLength = %v, want 128", cfg.Parser.MaxInputLength)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/clidispatch.toml")
	if err == nil {
		t.Fatal("Load() should return error for nonexistent file")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("error code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeMissingConfig)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	if err := os.WriteFile(configPath, []byte("this is not valid toml [[["), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should return error for invalid TOML")
	}
}

func TestLoad_DiscoversNothing(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CLIDISPATCH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %v, want empty", cfg.Path())
	}
	if cfg.Shell.Prompt != "$ " {
		t.Errorf("Shell.Prompt = %q, want default", cfg.Shell.Prompt)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		wantCode mdwerror.Code
	}{
		{"defaults", func(c *Config) {}, false, ""},
		{"bad level", func(c *Config) { c.General.LogLevel = "loud" }, true, mdwerror.CodeInvalidConfig},
		{"bad format", func(c *Config) { c.General.LogFormat = "xml" }, true, mdwerror.CodeInvalidConfig},
		{"bad quote mode", func(c *Config) { c.Parser.QuoteMode = "strip" }, true, mdwerror.CodeInvalidConfig},
		{"placeholder with space", func(c *Config) { c.Parser.Placeholder = "a b" }, true, mdwerror.CodeInvalidConfig},
		{"negative length", func(c *Config) { c.Parser.MaxInputLength = -1 }, true, mdwerror.CodeInvalidConfig},
		{"blank message", func(c *Config) { c.Shell.NoSuchCommand = "  " }, true, mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && mdwerror.GetCode(err) != tt.wantCode {
				t.Errorf("code = %v, want %v", mdwerror.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestLoadFromString(t *testing.T) {
	content := `{
		// comments are allowed
		"parser": {"quote_mode": "legacy", "placeholder": "~"},
		"commands": [{"name": "reverse", "params": 1}],
	}`

	cfg, err := LoadFromString(content, mdwconfig.FormatJSONC)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if cfg.Parser.Placeholder != "~" {
		t.Errorf("Parser.Placeholder = %v, want ~", cfg.Parser.Placeholder)
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Name != "reverse" {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Parser.QuoteMode = "legacy"
	f := false
	cfg.Parser.ParseFlags = &f
	cfg.Shell.NoSuchCommand = "nope"
	cfg.Dispatch.EnableAliases = true

	logger := mdwlog.Nop()
	renderer := lipgloss.NewRenderer(os.Stdout)
	opts, err := cfg.EngineOptions(logger, renderer)
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}

	if opts.Logger != logger {
		t.Error("logger not propagated")
	}
	if opts.Parser.QuoteMode != parser.QuoteLegacy {
		t.Errorf("Parser.QuoteMode = %v, want legacy", opts.Parser.QuoteMode)
	}
	if !opts.Parser.DisableFlags {
		t.Error("Parser.DisableFlags = false, want true")
	}
	if opts.Dispatcher.NoSuchCommandMessage != "nope" {
		t.Errorf("NoSuchCommandMessage = %v, want nope", opts.Dispatcher.NoSuchCommandMessage)
	}
	if !opts.Registry.EnableAliases {
		t.Error("Registry.EnableAliases = false, want true")
	}
	if opts.Dispatcher.Renderer != renderer {
		t.Error("renderer not propagated")
	}

	cfg.Parser.QuoteMode = "bogus"
	if _, err := cfg.EngineOptions(logger, renderer); err == nil {
		t.Error("EngineOptions() should fail for unknown quote mode")
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.General.LogFile = "/tmp/clidispatch.log"
	no := false
	cfg.Shell.Color = &no

	lc := cfg.LoggerConfig()
	if lc.ServiceName != "clidispatch" || lc.Level != "warn" || lc.File != "/tmp/clidispatch.log" {
		t.Errorf("LoggerConfig() = %+v", lc)
	}
	if !lc.NoColor {
		t.Error("LoggerConfig().NoColor = false, want true")
	}
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
	}{
		{
			name: "toml",
			file: "commands.toml",
			content: `
[[command]]
name = "echo"
[[command]]
name = "add"
params = 2
`,
			want: []string{"echo", "add"},
		},
		{
			name: "yaml",
			file: "commands.yaml",
			content: `
commands:
  - name: greet
    args: [loud]
`,
			want: []string{"greet"},
		},
		{
			name:    "jsonc",
			file:    "commands.jsonc",
			content: `{"commands": [{"name": "flags"}, /* trailing */ {"name": "args"},]}`,
			want:    []string{"flags", "args"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			specs, err := LoadManifest(path)
			if err != nil {
				t.Fatalf("LoadManifest() error = %v", err)
			}
			if len(specs) != len(tt.want) {
				t.Fatalf("len(specs) = %d, want %d", len(specs), len(tt.want))
			}
			for i, name := range tt.want {
				if specs[i].Name != name {
					t.Errorf("specs[%d].Name = %v, want %v", i, specs[i].Name, name)
				}
			}
		})
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("LoadManifest() should fail for a missing file")
	}
}

func TestLoad_ShippedFiles(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "clidispatch.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Commands) == 0 {
		t.Error("shipped config should declare commands")
	}

	specs, err := LoadManifest(filepath.Join("..", "..", "..", "configs", "commands.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if len(specs) != 7 {
		t.Errorf("len(specs) = %d, want 7", len(specs))
	}
}
