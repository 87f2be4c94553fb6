package toolbox

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
	mdwstringx "github.com/msto63/clidispatch/foundation/utils/stringx"
)

// Service is the built-in command host. It owns the handlers referenced by
// the default manifest and by manifest files that name them.
type Service struct {
	logger   *mdwlog.Logger
	handlers registry.Handlers
}

// Config holds service configuration
type Config struct {
	Logger *mdwlog.Logger
}

// NewService creates a new toolbox service
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.Nop()
	}

	s := &Service{logger: logger.WithName("toolbox")}
	s.handlers = registry.Handlers{
		"echo":    s.Echo,
		"greet":   s.Greet,
		"add":     s.Add,
		"upper":   s.Upper,
		"args":    s.Args,
		"flags":   s.Flags,
		"reverse": s.Reverse,
	}
	return s
}

// Lookup implements registry.Owner
func (s *Service) Lookup(name string) (registry.HandlerFunc, bool) {
	return s.handlers.Lookup(strings.ToLower(name))
}

// Names returns the handler names the service provides
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Specs returns the default command manifest
func Specs() []registry.Spec {
	return []registry.Spec{
		{Name: "echo", Aliases: []string{"say"}, Description: "Print the parameters"},
		{Name: "greet", Aliases: []string{"hi"}, Params: 1, Args: []string{"loud"}, Description: "Greet someone"},
		{Name: "add", Params: 2, Description: "Add integers"},
		{Name: "upper", Params: 1, Description: "Upper-case the parameters"},
		{Name: "args", Description: "List the named arguments"},
		{Name: "flags", Description: "List the flags"},
		{Name: "reverse", Aliases: []string{"rev"}, Params: 1, Description: "Reverse the parameters"},
	}
}

// Echo joins the parameters with single spaces
func (s *Service) Echo(_ context.Context, params []string, _ parser.FlagSet, _ map[string]string) (string, error) {
	return strings.Join(params, " "), nil
}

// Greet greets the first parameter, or "world". --loud=true or -loud shouts.
func (s *Service) Greet(_ context.Context, params []string, flags parser.FlagSet, args map[string]string) (string, error) {
	name := "world"
	if len(params) > 0 {
		name = mdwstringx.Capitalize(params[0])
	}
	greeting := fmt.Sprintf("Hello, %s!", name)

	loud, _ := strconv.ParseBool(args["loud"])
	if loud || flags.Has("loud") {
		greeting = strings.ToUpper(greeting)
	}
	return greeting, nil
}

// Add sums integer parameters. A non-integer parameter is an error.
func (s *Service) Add(_ context.Context, params []string, _ parser.FlagSet, _ map[string]string) (string, error) {
	var sum int64
	for i, p := range params {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return "", mdwerror.Wrap(err, fmt.Sprintf("parameter %d is not an integer: %q", i+1, p)).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("toolbox.Add").
				WithDetail("param", p)
		}
		sum += n
	}
	s.logger.Debug("add", mdwlog.Fields{"operands": len(params), "sum": sum})
	return strconv.FormatInt(sum, 10), nil
}

// Upper upper-cases the joined parameters
func (s *Service) Upper(_ context.Context, params []string, _ parser.FlagSet, _ map[string]string) (string, error) {
	return strings.ToUpper(strings.Join(params, " ")), nil
}

// Args lists the named arguments as key=value lines, sorted by key
func (s *Service) Args(_ context.Context, _ []string, _ parser.FlagSet, args map[string]string) (string, error) {
	if len(args) == 0 {
		return "(no arguments)", nil
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + args[k]
	}
	return strings.Join(lines, "\n"), nil
}

// Flags lists the flags, sorted
func (s *Service) Flags(_ context.Context, _ []string, flags parser.FlagSet, _ map[string]string) (string, error) {
	if len(flags) == 0 {
		return "(no flags)", nil
	}
	return strings.Join(flags.Names(), " "), nil
}

// Reverse reverses the joined parameters rune by rune
func (s *Service) Reverse(_ context.Context, params []string, _ parser.FlagSet, _ map[string]string) (string, error) {
	return mdwstringx.Reverse(strings.Join(params, " ")), nil
}
