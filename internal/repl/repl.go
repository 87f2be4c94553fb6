package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
)

// DefaultPrompt is written before every read
const DefaultPrompt = "$ "

// maxLineBytes bounds a single input line; the parser enforces the real limit
const maxLineBytes = 1 << 20

// State is the lifecycle state of a loop
type State int

const (
	StateReady State = iota
	StateRunning
	StateTerminated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Executor runs one input line. *cmdline.Engine implements it.
type Executor interface {
	Execute(ctx context.Context, line string) (*dispatcher.Result, error)
}

// Options configures the loop
type Options struct {
	Input   io.Reader // defaults to os.Stdin; never closed by the loop
	Output  io.Writer // defaults to os.Stdout
	Prompt  string    // defaults to DefaultPrompt
	Logger  *mdwlog.Logger
	NoColor bool
}

// REPL reads lines, executes them and prints results until exit, end of
// input, context cancellation or an unexpected failure.
type REPL struct {
	exec   Executor
	opts   Options
	logger *mdwlog.Logger
	state  State

	plain       bool
	promptStyle lipgloss.Style
	hintStyle   lipgloss.Style
}

// New creates a loop around exec
func New(exec Executor, opts Options) *REPL {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	renderer := lipgloss.NewRenderer(opts.Output)
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &REPL{
		exec:        exec,
		opts:        opts,
		logger:      logger.WithField("component", "repl"),
		state:       StateReady,
		plain:       renderer.ColorProfile() == termenv.Ascii,
		promptStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		hintStyle:   renderer.NewStyle().Faint(true),
	}
}

// State returns the current lifecycle state
func (r *REPL) State() State {
	return r.state
}

// Run executes the loop. It returns nil after the exit command or end of
// input, ctx.Err() after cancellation and the failure otherwise. A loop runs
// at most once.
func (r *REPL) Run(ctx context.Context) error {
	if r.state != StateReady {
		return mdwerror.New(fmt.Sprintf("loop already %s", r.state)).
			WithCode(mdwerror.CodeInternal).
			WithOperation("repl.Run")
	}
	r.state = StateRunning
	defer func() { r.state = StateTerminated }()

	scanner := bufio.NewScanner(r.opts.Input)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	r.logger.Debug("session started")

	for {
		if err := ctx.Err(); err != nil {
			r.logger.Debug("session cancelled")
			return err
		}

		if err := r.write("\n" + r.style(r.promptStyle, r.opts.Prompt)); err != nil {
			return r.fail(err, "")
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return r.fail(err, "")
			}
			r.logger.Debug("session ended: end of input")
			return nil
		}

		line := scanner.Text()
		if mdwstringx.IsBlank(line) {
			continue
		}

		done, err := r.step(ctx, line)
		if err != nil {
			return r.fail(err, line)
		}
		if done {
			r.logger.Debug("session ended: exit command")
			return nil
		}
	}
}

// step executes one line. It reports true when the loop should end cleanly.
func (r *REPL) step(ctx context.Context, line string) (done bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = mdwerror.FromPanic(rec, "panic in loop body").
				WithOperation("repl.step")
		}
	}()

	result, err := r.exec.Execute(ctx, line)
	if err != nil {
		if Recoverable(err) {
			r.logger.Warn("input rejected", mdwlog.Fields{"error": err.Error()})
			return false, r.write("\n" + err.Error())
		}
		return false, err
	}
	if result == nil {
		return false, mdwerror.New("executor returned no result").
			WithCode(mdwerror.CodeInternal).
			WithOperation("repl.step")
	}

	if result.Terminates() {
		return true, nil
	}
	if result.Printable() {
		if err := r.write("\n" + strings.TrimRight(result.Output, " \t\r\n")); err != nil {
			return false, err
		}
	}
	if result.Suggestion != "" {
		hint := r.style(r.hintStyle, fmt.Sprintf("did you mean %q?", result.Suggestion))
		if err := r.write("\n" + hint); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Recoverable reports parse failures that become a message instead of
// ending the loop
func Recoverable(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeInputTooLong) ||
		mdwerror.HasCode(err, mdwerror.CodeEmptyInput) ||
		mdwerror.HasCode(err, mdwerror.CodeInvalidInput)
}

func (r *REPL) fail(err error, line string) error {
	wrapped := mdwerror.Wrap(err, "interactive loop terminated").
		WithOperation("repl.Run")
	if mdwerror.GetCode(err) == mdwerror.CodeUnknown {
		wrapped = wrapped.WithCode(mdwerror.CodeInternal)
	}
	if line != "" {
		wrapped = wrapped.WithDetail("line", mdwstringx.Truncate(line, 120, "..."))
	}
	wrapped = wrapped.WithSeverity(mdwerror.SeverityHigh)
	r.logger.LogError(wrapped)
	return wrapped
}

func (r *REPL) style(st lipgloss.Style, s string) string {
	if r.plain {
		return s
	}
	return st.Render(s)
}

func (r *REPL) write(s string) error {
	_, err := io.WriteString(r.opts.Output, s)
	return err
}
