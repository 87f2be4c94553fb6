// File: descriptor.go
// Title: Command Descriptor
// Description: Defines the command metadata record, the handler binding and
//              the immutable descriptor produced for each registered command.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-05
// Modified: 2025-03-05
//
// Change History:
// - 2025-03-05 v0.1.0: Initial descriptor implementation

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
)

// HandlerFunc executes a command. The returned string is the command output.
type HandlerFunc func(ctx context.Context, params []string, flags parser.FlagSet, args map[string]string) (string, error)

// Owner resolves handler names to handlers
type Owner interface {
	Lookup(name string) (HandlerFunc, bool)
}

// Handlers is a map-backed Owner
type Handlers map[string]HandlerFunc

// Lookup implements Owner. An exact key wins over a case-insensitive match.
func (h Handlers) Lookup(name string) (HandlerFunc, bool) {
	if fn, ok := h[name]; ok {
		return fn, ok
	}
	fn, ok := h[strings.ToLower(name)]
	return fn, ok
}

// Spec is the declarative metadata of one command. It can be written in code
// or loaded from a manifest file.
type Spec struct {
	Name        string      `toml:"name" yaml:"name" json:"name"`
	Aliases     []string    `toml:"aliases" yaml:"aliases" json:"aliases"`
	Params      int         `toml:"params" yaml:"params" json:"params"`
	Args        []string    `toml:"args" yaml:"args" json:"args"`
	Flags       []string    `toml:"flags" yaml:"flags" json:"flags"`
	Handler     string      `toml:"handler" yaml:"handler" json:"handler"`
	Description string      `toml:"description" yaml:"description" json:"description"`
	Func        HandlerFunc `toml:"-" yaml:"-" json:"-"`
}

// HandlerName returns the owner handler name, defaulting to the
// lower-cased command name
func (s Spec) HandlerName() string {
	if h := strings.TrimSpace(s.Handler); h != "" {
		return h
	}
	return strings.ToLower(strings.TrimSpace(s.Name))
}

// Descriptor is a registered command. It is immutable after Build.
type Descriptor struct {
	name        string
	aliases     []string
	params      int
	args        []string
	flags       []string
	description string
	handlerName string
	handler     HandlerFunc
}

// Name returns the lower-cased command name
func (d *Descriptor) Name() string { return d.name }

// Aliases returns a copy of the lower-cased aliases
func (d *Descriptor) Aliases() []string { return copyStrings(d.aliases) }

// RequiredParams returns the number of positional parameters the command expects
func (d *Descriptor) RequiredParams() int { return d.params }

// RequiredArgs returns a copy of the argument keys the command expects
func (d *Descriptor) RequiredArgs() []string { return copyStrings(d.args) }

// RequiredFlags returns a copy of the flag names the command expects
func (d *Descriptor) RequiredFlags() []string { return copyStrings(d.flags) }

// Description returns the help text
func (d *Descriptor) Description() string { return d.description }

// HandlerName returns the name the handler was bound under
func (d *Descriptor) HandlerName() string { return d.handlerName }

// Matches reports whether command selects this descriptor. Aliases are only
// considered when withAliases is set.
func (d *Descriptor) Matches(command string, withAliases bool) bool {
	if command == d.name {
		return true
	}
	if !withAliases {
		return false
	}
	for _, alias := range d.aliases {
		if command == alias {
			return true
		}
	}
	return false
}

// Invoke calls the bound handler
func (d *Descriptor) Invoke(ctx context.Context, params []string, flags parser.FlagSet, args map[string]string) (string, error) {
	return d.handler(ctx, params, flags, args)
}

// CheckShape reports missing parameters, argument keys and flags. Types are
// never checked.
func (d *Descriptor) CheckShape(params []string, flags parser.FlagSet, args map[string]string) error {
	var problems []string
	details := map[string]interface{}{}

	if len(params) < d.params {
		problems = append(problems, fmt.Sprintf("expected %d parameter(s), got %d", d.params, len(params)))
		details["missingParams"] = d.params - len(params)
	}

	var missingArgs []string
	for _, key := range d.args {
		if _, ok := args[key]; !ok {
			missingArgs = append(missingArgs, "--"+key)
		}
	}
	if len(missingArgs) > 0 {
		problems = append(problems, "missing argument(s) "+strings.Join(missingArgs, ", "))
		details["missingArgs"] = missingArgs
	}

	var missingFlags []string
	for _, name := range d.flags {
		if !flags.Has(name) {
			missingFlags = append(missingFlags, "-"+name)
		}
	}
	if len(missingFlags) > 0 {
		problems = append(problems, "missing flag(s) "+strings.Join(missingFlags, ", "))
		details["missingFlags"] = missingFlags
	}

	if len(problems) == 0 {
		return nil
	}

	err := mdwerror.New(d.name+": "+strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeShapeMismatch).
		WithOperation("registry.CheckShape").
		WithDetail("command", d.name)
	for k, v := range details {
		err = err.WithDetail(k, v)
	}
	return err
}

// Usage renders a one-line synopsis, e.g. "greet <p1> --loud=<value> -v"
func (d *Descriptor) Usage() string {
	parts := []string{d.name}
	for i := 1; i <= d.params; i++ {
		parts = append(parts, fmt.Sprintf("<p%d>", i))
	}
	for _, key := range d.args {
		parts = append(parts, "--"+key+"=<value>")
	}
	for _, name := range d.flags {
		parts = append(parts, "-"+name)
	}
	return strings.Join(parts, " ")
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
