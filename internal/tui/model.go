package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
	"github.com/msto63/clidispatch/internal/repl"
)

// Config holds TUI configuration
type Config struct {
	Title     string
	Prompt    string
	CharLimit int // defaults to 4096
	Logger    *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Title:     "clidispatch",
		Prompt:    repl.DefaultPrompt,
		CharLimit: 4096,
	}
}

// entryKind selects how a scrollback line is styled
type entryKind int

const (
	entryEcho entryKind = iota
	entryOutput
	entryHint
	entryError
)

type entry struct {
	kind entryKind
	text string
}

// Model is the Bubbletea model. Lines are executed synchronously in Update;
// a blocking handler blocks the interface.
type Model struct {
	// State
	width  int
	height int
	ready  bool
	done   bool
	err    error

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	ctx     context.Context
	exec    repl.Executor
	cfg     Config
	logger  *mdwlog.Logger
	entries []entry

	// Input history
	history      []string
	historyIndex int // -1 = editing a new line
	draft        string
}

// New creates a model around exec
func New(ctx context.Context, exec repl.Executor, cfg Config) Model {
	defaults := DefaultConfig()
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.CharLimit <= 0 {
		cfg.CharLimit = defaults.CharLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "help"
	ti.CharLimit = cfg.CharLimit
	ti.Width = 76
	ti.Focus()

	return Model{
		input:        ti,
		ctx:          ctx,
		exec:         exec,
		cfg:          cfg,
		logger:       logger.WithField("component", "tui"),
		historyIndex: -1,
	}
}

// Err returns the failure that ended the session, if any
func (m Model) Err() error {
	return m.err
}

// Done reports whether the session has ended
func (m Model) Done() bool {
	return m.done
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.done = true
			return m, tea.Quit

		case "enter":
			line := m.input.Value()
			m.input.Reset()
			if mdwstringx.IsBlank(line) {
				return m, nil
			}
			m.pushHistory(line)
			if m.submit(line) {
				m.done = true
				return m, tea.Quit
			}
			m.refresh()
			return m, nil

		case "up":
			m.historyBack()
			return m, nil

		case "down":
			m.historyForward()
			return m, nil

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // title + blank line
		footerHeight := 4 // input box + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.cfg.Prompt) - 6
		m.refresh()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes line and records the result. It reports true when the
// session should end, either on the exit command or an unexpected failure.
func (m *Model) submit(line string) bool {
	m.entries = append(m.entries, entry{kind: entryEcho, text: m.cfg.Prompt + line})

	result, err := m.execute(line)
	if err != nil {
		if repl.Recoverable(err) {
			m.entries = append(m.entries, entry{kind: entryError, text: err.Error()})
			return false
		}
		wrapped := mdwerror.Wrap(err, "interactive session terminated").
			WithOperation("tui.submit").
			WithSeverity(mdwerror.SeverityHigh).
			WithDetail("line", mdwstringx.Truncate(line, 120, "..."))
		if mdwerror.GetCode(err) == mdwerror.CodeUnknown {
			wrapped = wrapped.WithCode(mdwerror.CodeInternal)
		}
		m.logger.LogError(wrapped)
		m.err = wrapped
		return true
	}

	if result.Terminates() {
		return true
	}
	if result.Printable() && result.Output != "" {
		m.entries = append(m.entries, entry{kind: entryOutput, text: strings.TrimRight(result.Output, " \t\r\n")})
	}
	if result.Suggestion != "" {
		m.entries = append(m.entries, entry{kind: entryHint, text: fmt.Sprintf("did you mean %q?", result.Suggestion)})
	}
	return false
}

func (m *Model) execute(line string) (result *dispatcher.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = mdwerror.FromPanic(rec, "panic in loop body").
				WithOperation("tui.execute")
		}
	}()

	result, err = m.exec.Execute(m.ctx, line)
	if err == nil && result == nil {
		err = mdwerror.New("executor returned no result").
			WithCode(mdwerror.CodeInternal).
			WithOperation("tui.execute")
	}
	return result, err
}

func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.historyIndex = -1
	m.draft = ""
}

func (m *Model) historyBack() {
	if len(m.history) == 0 {
		return
	}
	if m.historyIndex == -1 {
		m.draft = m.input.Value()
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.history[m.historyIndex])
	m.input.CursorEnd()
}

func (m *Model) historyForward() {
	if m.historyIndex == -1 {
		return
	}
	if m.historyIndex < len(m.history)-1 {
		m.historyIndex++
		m.input.SetValue(m.history[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.input.SetValue(m.draft)
	}
	m.input.CursorEnd()
}

// transcript renders the scrollback
func (m Model) transcript() string {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		switch e.kind {
		case entryEcho:
			b.WriteString(EchoStyle.Render(e.text))
		case entryHint:
			b.WriteString(HintStyle.Render(e.text))
		case entryError:
			b.WriteString(ErrorStyle.Render(e.text))
		default:
			b.WriteString(OutputStyle.Render(e.text))
		}
	}
	return b.String()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.cfg.Title))
	b.WriteString("\n\n")
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.transcript())
	}
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter run • ↑/↓ history • pgup/pgdn scroll • exit or ctrl+c quit"))
	return b.String()
}

// Run starts the full-screen session and blocks until it ends. It returns
// the failure that ended the session, if any.
func Run(ctx context.Context, exec repl.Executor, cfg Config, opts ...tea.ProgramOption) error {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	opts = append(opts, tea.WithContext(ctx))

	final, err := tea.NewProgram(New(ctx, exec, cfg), opts...).Run()
	if err != nil {
		return mdwerror.Wrap(err, "terminal session failed").
			WithCode(mdwerror.CodeInternal).
			WithOperation("tui.Run")
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
