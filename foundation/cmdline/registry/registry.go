// File: registry.go
// Title: Command Registry
// Description: Builds the ordered, read-only set of command descriptors from
//              metadata records and an owning handler set. Records that fail
//              to bind are logged and skipped; the batch never aborts.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-05
// Modified: 2025-03-05
//
// Change History:
// - 2025-03-05 v0.1.0: Initial registry implementation

package registry

import (
	"fmt"
	"regexp"
	"strings"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	"github.com/msto63/clidispatch/foundation/core/validation"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
)

// DefaultNoSuchMethodMessage is logged when a record names no resolvable handler
const DefaultNoSuchMethodMessage = "Internal exception: no such method"

// Names answered by the dispatcher before any registry lookup
const (
	ReservedHelp    = "help"
	ReservedVersion = "cliversion"
	ReservedExit    = "exit"
)

// IsReserved reports whether name can never reach a registered handler
func IsReserved(name string) bool {
	switch name {
	case ReservedHelp, ReservedVersion, ReservedExit:
		return true
	default:
		return false
	}
}

// MaxParams bounds the declared positional parameter count
const MaxParams = 64

var (
	commandNamePattern = regexp.MustCompile(`^\S+$`)
	identifierPattern  = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
)

// Options configures registry construction
type Options struct {
	Logger              *mdwlog.Logger
	EnableAliases       bool   // match aliases in Lookup
	NoSuchMethodMessage string // diagnostic for unresolvable handlers
}

// Registry is an ordered set of descriptors. Order is match priority.
type Registry struct {
	descriptors   []*Descriptor
	skipped       []error
	enableAliases bool
}

// Build binds every record to its handler. A record that cannot be bound is
// logged, recorded in Skipped and left out; later records are unaffected.
func Build(specs []Spec, owner Owner, opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	logger = logger.WithField("component", "registry")

	noSuchMethod := opts.NoSuchMethodMessage
	if mdwstringx.IsBlank(noSuchMethod) {
		noSuchMethod = DefaultNoSuchMethodMessage
	}

	reg := &Registry{
		descriptors:   make([]*Descriptor, 0, len(specs)),
		enableAliases: opts.EnableAliases,
	}
	checks := specValidator()
	seen := make(map[string]int, len(specs))

	for i, spec := range specs {
		if err := checks.Validate(spec).ToError(); err != nil {
			err = mdwerror.Wrap(err, fmt.Sprintf("invalid command record #%d", i)).
				WithOperation("registry.Build").
				WithDetail("index", i).
				WithDetail("name", spec.Name)
			logger.ErrorWithErr("command record skipped", err, mdwlog.Fields{"index": i, "name": spec.Name})
			reg.skipped = append(reg.skipped, err)
			continue
		}

		handler, err := resolve(spec, owner)
		if err != nil {
			err = err.WithDetail("index", i)
			logger.ErrorWithErr(noSuchMethod, err, mdwlog.Fields{
				"index":   i,
				"name":    spec.Name,
				"handler": spec.HandlerName(),
			})
			reg.skipped = append(reg.skipped, err)
			continue
		}

		d := &Descriptor{
			name:        strings.ToLower(strings.TrimSpace(spec.Name)),
			aliases:     mdwstringx.LowerAll(spec.Aliases),
			params:      spec.Params,
			args:        mdwstringx.LowerAll(spec.Args),
			flags:       normalizeFlags(spec.Flags),
			description: strings.TrimSpace(spec.Description),
			handlerName: spec.HandlerName(),
			handler:     handler,
		}
		if spec.Func != nil {
			d.handlerName = "func"
		}

		if IsReserved(d.name) {
			logger.Warn("command shadowed by built-in", mdwlog.Fields{
				"name":  d.name,
				"index": i,
			})
		}

		if first, dup := seen[d.name]; dup {
			logger.Warn("command shadowed by earlier registration", mdwlog.Fields{
				"name":       d.name,
				"index":      i,
				"shadowedBy": first,
			})
		} else {
			seen[d.name] = i
		}

		reg.descriptors = append(reg.descriptors, d)
		logger.Debug("command registered", mdwlog.Fields{
			"name":    d.name,
			"params":  d.params,
			"handler": d.handlerName,
		})
	}

	logger.Info("command registry built", mdwlog.Fields{
		"registered":    len(reg.descriptors),
		"skipped":       len(reg.skipped),
		"enableAliases": opts.EnableAliases,
	})

	return reg
}

func specValidator() *validation.ValidatorChain {
	return validation.NewValidatorChain("command").
		StopOnFirstError(true).
		Add(validation.NotBlank("name", func(v interface{}) string { return v.(Spec).Name })).
		Add(validation.Matches("name", commandNamePattern, func(v interface{}) string {
			return strings.TrimSpace(v.(Spec).Name)
		})).
		Add(validation.IntRange("params", 0, MaxParams, func(v interface{}) int { return v.(Spec).Params })).
		Add(validation.EachMatches("aliases", commandNamePattern, func(v interface{}) []string {
			return mdwstringx.LowerAll(v.(Spec).Aliases)
		})).
		Add(validation.EachMatches("args", identifierPattern, func(v interface{}) []string {
			return mdwstringx.LowerAll(v.(Spec).Args)
		})).
		Add(validation.EachMatches("flags", identifierPattern, func(v interface{}) []string {
			return normalizeFlags(v.(Spec).Flags)
		}))
}

// resolve finds the handler for spec; a direct Func wins over the owner
func resolve(spec Spec, owner Owner) (HandlerFunc, *mdwerror.Error) {
	if spec.Func != nil {
		return spec.Func, nil
	}

	name := spec.HandlerName()
	if owner == nil {
		return nil, mdwerror.New(fmt.Sprintf("no owner to resolve handler %q", name)).
			WithCode(mdwerror.CodeHandlerResolution).
			WithOperation("registry.Build").
			WithDetail("handler", name)
	}

	fn, ok := owner.Lookup(name)
	if !ok || fn == nil {
		return nil, mdwerror.New(fmt.Sprintf("handler %q not found for command %q", name, spec.Name)).
			WithCode(mdwerror.CodeHandlerResolution).
			WithOperation("registry.Build").
			WithDetail("handler", name).
			WithDetail("name", spec.Name)
	}
	return fn, nil
}

func normalizeFlags(flags []string) []string {
	trimmed := make([]string, 0, len(flags))
	for _, f := range flags {
		trimmed = append(trimmed, strings.TrimLeft(strings.TrimSpace(f), "-"))
	}
	return mdwstringx.LowerAll(trimmed)
}

// Lookup returns the first descriptor matching command
func (r *Registry) Lookup(command string) (*Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.Matches(command, r.enableAliases) {
			return d, true
		}
	}
	return nil, false
}

// Descriptors returns the descriptors in registration order
func (r *Registry) Descriptors() []*Descriptor {
	return append([]*Descriptor(nil), r.descriptors...)
}

// Names returns the distinct command names in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	seen := make(map[string]struct{}, len(r.descriptors))
	for _, d := range r.descriptors {
		if _, dup := seen[d.name]; dup {
			continue
		}
		seen[d.name] = struct{}{}
		names = append(names, d.name)
	}
	return names
}

// Len returns the number of registered descriptors, shadowed ones included
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Skipped returns the errors of records that were not registered
func (r *Registry) Skipped() []error {
	return append([]error(nil), r.skipped...)
}

// AliasesEnabled reports whether Lookup considers aliases
func (r *Registry) AliasesEnabled() bool {
	return r.enableAliases
}
