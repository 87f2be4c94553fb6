// File: cmdline.go
// Title: Command Line Engine
// Description: Ties parser, registry and dispatcher together so a raw input
//              line is parsed and dispatched in one call.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-07
// Modified: 2025-03-07
//
// Change History:
// - 2025-03-07 v0.1.0: Initial engine implementation

package cmdline

import (
	"context"

	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
)

// Engine parses and dispatches input lines against a fixed command set
type Engine struct {
	parser     *parser.Parser
	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	logger     *mdwlog.Logger
}

// Options configures the engine. Logger is used by every component whose own
// options leave it unset.
type Options struct {
	Logger     *mdwlog.Logger
	Parser     parser.Options
	Registry   registry.Options
	Dispatcher dispatcher.Options
}

// New builds the registry from specs and owner and wires the parser and
// dispatcher. Individual bad records do not fail construction; see
// Registry().Skipped().
func New(specs []registry.Spec, owner registry.Owner, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	if opts.Parser.Logger == nil {
		opts.Parser.Logger = logger
	}
	if opts.Registry.Logger == nil {
		opts.Registry.Logger = logger
	}
	if opts.Dispatcher.Logger == nil {
		opts.Dispatcher.Logger = logger
	}

	p, err := parser.New(opts.Parser)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create parser").WithOperation("cmdline.New")
	}

	reg := registry.Build(specs, owner, opts.Registry)

	d, err := dispatcher.New(reg, opts.Dispatcher)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create dispatcher").WithOperation("cmdline.New")
	}

	return &Engine{
		parser:     p,
		registry:   reg,
		dispatcher: d,
		logger:     logger.WithField("component", "engine"),
	}, nil
}

// Execute parses line and dispatches it. Blank lines return
// parser.ErrEmptyInput; callers normally skip them before calling.
func (e *Engine) Execute(ctx context.Context, line string) (*dispatcher.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := e.parser.Parse(line)
	if err != nil {
		return nil, err
	}

	return e.dispatcher.DispatchInput(ctx, input), nil
}

// Parse parses line without dispatching it
func (e *Engine) Parse(line string) (*parser.Input, error) {
	return e.parser.Parse(line)
}

// Registry returns the command registry
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Dispatcher returns the dispatcher
func (e *Engine) Dispatcher() *dispatcher.Dispatcher {
	return e.dispatcher
}
