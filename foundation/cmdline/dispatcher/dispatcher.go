// File: dispatcher.go
// Title: Command Dispatcher
// Description: Routes a parsed command to the first matching descriptor,
//              intercepts the reserved commands and turns every outcome into
//              a tagged Result. Handler errors and panics are logged with
//              their stack and never escape.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-06
// Modified: 2025-03-06
//
// Change History:
// - 2025-03-06 v0.1.0: Initial dispatcher implementation

package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
	"github.com/msto63/clidispatch/pkg/core/version"
)

// Reserved command names, intercepted before registry lookup
const (
	CommandHelp    = registry.ReservedHelp
	CommandVersion = registry.ReservedVersion
	CommandExit    = registry.ReservedExit
)

// DefaultNoSuchCommandMessage is the output for unknown commands
const DefaultNoSuchCommandMessage = "No such command"

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint
const maxSuggestionDistance = 2

// IsReserved reports whether name is handled by the dispatcher itself
func IsReserved(name string) bool {
	return registry.IsReserved(name)
}

// Options configures a Dispatcher
type Options struct {
	Logger               *mdwlog.Logger
	NoSuchCommandMessage string             // defaults to DefaultNoSuchCommandMessage
	Version              string             // cliversion output, defaults to version.CLI
	EnforceShape         bool               // reject invocations missing declared params/args/flags
	Suggest              bool               // fill Result.Suggestion for unknown commands
	Renderer             *lipgloss.Renderer // help table rendering
}

// Dispatcher executes commands against a registry. It keeps no per-call
// state; the registry is read-only.
type Dispatcher struct {
	registry *registry.Registry
	opts     Options
	logger   *mdwlog.Logger
}

// New creates a dispatcher over reg
func New(reg *registry.Registry, opts Options) (*Dispatcher, error) {
	if reg == nil {
		return nil, mdwerror.New("registry cannot be nil").
			WithCode(mdwerror.CodeInternal).
			WithOperation("dispatcher.New")
	}
	if mdwstringx.IsBlank(opts.NoSuchCommandMessage) {
		opts.NoSuchCommandMessage = DefaultNoSuchCommandMessage
	}
	if mdwstringx.IsBlank(opts.Version) {
		opts.Version = version.CLI
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	return &Dispatcher{
		registry: reg,
		opts:     opts,
		logger:   logger.WithField("component", "dispatcher"),
	}, nil
}

// Registry returns the registry commands are dispatched against
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Renderer returns the renderer used for help output
func (d *Dispatcher) Renderer() *lipgloss.Renderer {
	return d.opts.Renderer
}

// Dispatch runs command. It always returns a Result.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, params []string, flags parser.FlagSet, args map[string]string) *Result {
	start := time.Now()
	result := &Result{Command: command, RequestID: uuid.NewString()}
	logger := d.logger.WithRequestID(result.RequestID)

	d.dispatch(ctx, logger, result, params, flags, args)

	result.Duration = time.Since(start)
	logger.Debug("command dispatched", mdwlog.Fields{
		"command":  command,
		"status":   result.Status.String(),
		"duration": result.Duration.String(),
	})
	return result
}

// DispatchInput runs a parsed input
func (d *Dispatcher) DispatchInput(ctx context.Context, input *parser.Input) *Result {
	return d.Dispatch(ctx, input.Command, input.Params, input.Flags, input.Args)
}

func (d *Dispatcher) dispatch(ctx context.Context, logger *mdwlog.Logger, result *Result, params []string, flags parser.FlagSet, args map[string]string) {
	switch result.Command {
	case CommandExit:
		result.Status = StatusExit
		return
	case CommandVersion:
		result.Status = StatusVersion
		result.Output = d.opts.Version
		return
	case CommandHelp:
		d.help(result, params)
		return
	}

	desc, ok := d.registry.Lookup(result.Command)
	if !ok {
		d.notFound(result, result.Command)
		logger.Debug("no such command", mdwlog.Fields{"command": result.Command, "suggestion": result.Suggestion})
		return
	}

	if d.opts.EnforceShape {
		if err := desc.CheckShape(params, flags, args); err != nil {
			result.Status = StatusUsage
			result.Output = "usage: " + desc.Usage()
			result.Err = err
			logger.Info("invocation rejected", mdwlog.Fields{"command": result.Command, "reason": err.Error()})
			return
		}
	}

	output, err := invoke(ctx, desc, params, flags, args)
	if err != nil {
		failure := mdwerror.Wrap(err, fmt.Sprintf("command %q failed", result.Command)).
			WithCode(mdwerror.CodeInvocationFailed).
			WithOperation("dispatcher.Dispatch").
			WithRequestID(result.RequestID).
			WithDetail("command", result.Command).
			WithDetail("handler", desc.HandlerName())
		logger.LogError(failure)

		result.Status = StatusFailed
		result.Err = failure
		return
	}

	result.Status = StatusOK
	result.Output = output
}

// invoke calls the handler and converts a panic into an error carrying the
// panic stack
func invoke(ctx context.Context, desc *registry.Descriptor, params []string, flags parser.FlagSet, args map[string]string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = ""
			err = mdwerror.FromPanic(r, "handler panicked").
				WithCode(mdwerror.CodeInvocationFailed)
		}
	}()
	return desc.Invoke(ctx, params, flags, args)
}

func (d *Dispatcher) help(result *Result, params []string) {
	if len(params) == 0 {
		result.Status = StatusHelp
		result.Output = RenderTable(d.registry, d.opts.Renderer)
		return
	}

	name := params[0]
	if IsReserved(name) {
		result.Status = StatusHelp
		result.Output = fmt.Sprintf("%s - built-in command", name)
		return
	}

	desc, ok := d.registry.Lookup(name)
	if !ok {
		d.notFound(result, name)
		return
	}
	result.Status = StatusHelp
	result.Output = Describe(desc, d.registry.AliasesEnabled())
}

func (d *Dispatcher) notFound(result *Result, name string) {
	result.Status = StatusNotFound
	result.Output = d.opts.NoSuchCommandMessage
	if d.opts.Suggest {
		result.Suggestion = d.suggest(name)
	}
}

// suggest returns the known command closest to name, or "" when nothing is
// within maxSuggestionDistance
func (d *Dispatcher) suggest(name string) string {
	candidates := append(d.registry.Names(), CommandHelp, CommandVersion, CommandExit)

	best, bestDistance := "", maxSuggestionDistance+1
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		if dist := levenshtein.ComputeDistance(name, candidate); dist < bestDistance {
			best, bestDistance = candidate, dist
		}
	}
	return best
}
