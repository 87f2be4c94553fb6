package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
)

const testConfig = `
[general]
log_level = "error"

[shell]
prompt = "> "
color = false
suggest = true
`

// execute runs the root command with args and stdin, returning stdout,
// stderr and the exit code.
func execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "clidispatch.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	cfgFile, envFiles, manifestFile, verbose = "", nil, "", false
	t.Cleanup(func() {
		cfgFile, envFiles, manifestFile, verbose = "", nil, "", false
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))

	err := rootCmd.Execute()
	if closeErr := teardown(); err == nil {
		err = closeErr
	}
	return stdout.String(), stderr.String(), ExitCode(err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(&exitError{code: 2}))
	assert.Equal(t, 1, ExitCode(errors.New("other")))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		status dispatcher.Status
		want   int
	}{
		{dispatcher.StatusOK, 0},
		{dispatcher.StatusHelp, 0},
		{dispatcher.StatusVersion, 0},
		{dispatcher.StatusExit, 0},
		{dispatcher.StatusFailed, 1},
		{dispatcher.StatusNotFound, 2},
		{dispatcher.StatusUsage, 2},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.status))
		})
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantErr  string
		wantCode int
	}{
		{"ok", []string{"run", "--", "greet", "bob", "--loud=true"}, "HELLO, BOB!\n", "", 0},
		{"version", []string{"run", "cliversion"}, "2.0.2\n", "", 0},
		{"not found", []string{"run", "gret"}, "No such command\n", "did you mean \"greet\"?", 2},
		{"failed", []string{"run", "add", "1", "x"}, "", "add:", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, "", tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, stdout)
			if tt.wantErr != "" {
				assert.Contains(t, stderr, tt.wantErr)
			}
		})
	}
}

func TestReplIsDefault(t *testing.T) {
	stdout, _, code := execute(t, "echo one two\nexit\n")

	assert.Equal(t, 0, code)
	assert.Equal(t, "\n> \none two\n> \n", stdout)
}

func TestCommandsCommand(t *testing.T) {
	stdout, _, code := execute(t, "", "commands")

	assert.Equal(t, 0, code)
	for _, name := range []string{"COMMAND", "greet", "reverse", "Built-in: help [command], cliversion, exit"} {
		assert.Contains(t, stdout, name)
	}
}

func TestManifestFlag(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("commands:\n  - name: shout\n    handler: upper\n"), 0644))

	stdout, _, code := execute(t, "", "--manifest", manifest, "run", "shout", "hey")
	assert.Equal(t, 0, code)
	assert.Equal(t, "HEY\n", stdout)

	_, _, code = execute(t, "", "--manifest", manifest, "run", "greet", "bob")
	assert.Equal(t, 2, code)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, code := execute(t, "", "version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Engine:     2.0.2")
}

func TestBadConfig(t *testing.T) {
	_, _, code := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "commands")
	assert.Equal(t, 1, code)
}
