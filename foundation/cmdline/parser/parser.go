// File: parser.go
// Title: Command Line Parser
// Description: Classifies the tokens of one input line into a command name,
//              positional parameters, boolean flags and key/value arguments.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-04
// Modified: 2025-03-04
//
// Change History:
// - 2025-03-04 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
)

// DefaultMaxInputLength is the longest line accepted by default, in bytes
const DefaultMaxInputLength = 4096

// DefaultPlaceholder replaces whitespace runs inside quotes in QuoteLegacy mode
const DefaultPlaceholder = "_"

// ErrEmptyInput is returned for lines that contain only whitespace
var ErrEmptyInput = mdwerror.New("empty input").
	WithCode(mdwerror.CodeEmptyInput).
	WithOperation("parser.Parse")

var (
	plainArgPattern  = regexp.MustCompile(`^--[\p{L}\p{N}_]+=\S+$`)
	quotedArgPattern = regexp.MustCompile(`^--[\p{L}\p{N}_]+="[\s\S]*"$`)
	paramPattern     = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)
	flagPattern      = regexp.MustCompile(`^--?\p{L}[\p{L}\p{N}_-]*$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// QuoteMode controls how quoted argument values are returned
type QuoteMode int

const (
	// QuoteRestore strips the surrounding quotes and keeps inner whitespace
	QuoteRestore QuoteMode = iota

	// QuoteLegacy keeps the quotes, replaces inner whitespace runs with the
	// placeholder and turns every comma of the line into a period
	QuoteLegacy
)

// String returns the string representation of the quote mode
func (m QuoteMode) String() string {
	switch m {
	case QuoteRestore:
		return "restore"
	case QuoteLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseQuoteMode parses a quote mode name; "" selects QuoteRestore
func ParseQuoteMode(s string) (QuoteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "restore":
		return QuoteRestore, nil
	case "legacy":
		return QuoteLegacy, nil
	default:
		return QuoteRestore, mdwerror.New(fmt.Sprintf("unknown quote mode %q", s)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("parser.ParseQuoteMode")
	}
}

// FlagSet holds the names of flags present on a line, without dashes
type FlagSet map[string]struct{}

// Has reports whether name was given as a flag
func (f FlagSet) Has(name string) bool {
	_, ok := f[strings.ToLower(strings.TrimLeft(name, "-"))]
	return ok
}

// Names returns the flag names in sorted order
func (f FlagSet) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Input is the parsed form of one line
type Input struct {
	Command string            // lower-cased first word
	Params  []string          // positional parameters, never containing Command
	Flags   FlagSet           // nil when no flag was given
	Args    map[string]string // --key=value pairs, later duplicates win
	Raw     string            // the line as received
	Ignored []string          // tokens that fit no category
}

// Options configures a Parser
type Options struct {
	QuoteMode      QuoteMode
	Placeholder    string // QuoteLegacy only; defaults to "_"
	DisableFlags   bool   // when set, -x and --x tokens are ignored
	MaxInputLength int    // defaults to DefaultMaxInputLength
	Logger         *mdwlog.Logger
}

// Parser turns input lines into Input values. It holds no per-line state
// and may be reused.
type Parser struct {
	opts   Options
	logger *mdwlog.Logger
}

// New creates a parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.QuoteMode != QuoteRestore && opts.QuoteMode != QuoteLegacy {
		return nil, mdwerror.New(fmt.Sprintf("unknown quote mode %d", opts.QuoteMode)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("parser.New")
	}
	if opts.MaxInputLength < 0 {
		return nil, mdwerror.New("max input length must not be negative").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("parser.New").
			WithDetail("maxInputLength", opts.MaxInputLength)
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}

	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	return &Parser{
		opts:   opts,
		logger: logger.WithField("component", "parser"),
	}, nil
}

var defaultParser, _ = New(Options{Logger: mdwlog.Nop()})

// Parse parses line with default options
func Parse(line string) (*Input, error) {
	return defaultParser.Parse(line)
}

// Options returns the effective options
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses one line. Blank lines yield ErrEmptyInput.
func (p *Parser) Parse(line string) (*Input, error) {
	if len(line) > p.opts.MaxInputLength {
		return nil, mdwerror.New("input line too long").
			WithCode(mdwerror.CodeInputTooLong).
			WithOperation("parser.Parse").
			WithDetail("length", len(line)).
			WithDetail("max", p.opts.MaxInputLength)
	}
	if mdwstringx.IsBlank(line) {
		return nil, ErrEmptyInput
	}

	text := strings.ToLower(line)
	command := strings.Fields(text)[0]
	first := command
	if p.opts.QuoteMode == QuoteLegacy {
		text = strings.ReplaceAll(text, ",", ".")
		first = strings.ReplaceAll(first, ",", ".")
	}

	tokens := NewLexer(text).Tokenize()
	input := &Input{
		Command: command,
		Params:  []string{},
		Args:    make(map[string]string),
		Raw:     line,
	}

	// A quoted argument can start the line and span the command word; it is
	// still classified as an argument.
	if tokens[0].Value == first {
		tokens = tokens[1:]
	}
	for _, tok := range tokens {
		p.classify(input, tok)
	}

	if p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		p.logger.Trace("line parsed", mdwlog.Fields{
			"command": input.Command,
			"tokens":  len(tokens),
			"params":  len(input.Params),
			"args":    len(input.Args),
			"flags":   len(input.Flags),
			"ignored": len(input.Ignored),
		})
	}

	return input, nil
}

// classify assigns a token to exactly one category
func (p *Parser) classify(input *Input, tok Token) {
	value := tok.Value

	switch {
	case tok.Kind == TokenQuoted && quotedArgPattern.MatchString(value):
		key, raw := splitArg(value)
		input.Args[key] = p.quotedValue(raw)

	case plainArgPattern.MatchString(value):
		key, raw := splitArg(value)
		input.Args[key] = raw

	case paramPattern.MatchString(value):
		if value != input.Command {
			input.Params = append(input.Params, value)
		}

	case !p.opts.DisableFlags && flagPattern.MatchString(value):
		if input.Flags == nil {
			input.Flags = make(FlagSet)
		}
		input.Flags[strings.TrimLeft(value, "-")] = struct{}{}

	default:
		input.Ignored = append(input.Ignored, value)
	}
}

// quotedValue renders the value part of a --key="..." token, quotes included
func (p *Parser) quotedValue(raw string) string {
	inner := raw[1 : len(raw)-1]
	if p.opts.QuoteMode == QuoteLegacy {
		return `"` + whitespaceRun.ReplaceAllString(inner, p.opts.Placeholder) + `"`
	}
	return inner
}

func splitArg(token string) (key, value string) {
	body := strings.TrimPrefix(token, "--")
	idx := strings.Index(body, "=")
	return body[:idx], body[idx+1:]
}
