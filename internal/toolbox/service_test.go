package toolbox

import (
	"context"
	"strings"
	"testing"

	"github.com/msto63/clidispatch/foundation/cmdline"
	"github.com/msto63/clidispatch/foundation/cmdline/dispatcher"
	"github.com/msto63/clidispatch/foundation/cmdline/parser"
	"github.com/msto63/clidispatch/foundation/cmdline/registry"
	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
)

func TestNewService(t *testing.T) {
	svc := NewService(Config{})
	if svc == nil {
		t.Fatal("NewService() returned nil")
	}

	want := []string{"add", "args", "echo", "flags", "greet", "reverse", "upper"}
	if got := strings.Join(svc.Names(), ","); got != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestService_Lookup(t *testing.T) {
	svc := NewService(Config{})

	if _, ok := svc.Lookup("Echo"); !ok {
		t.Error("Lookup(Echo) should resolve case-insensitively")
	}
	if _, ok := svc.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestSpecs_AllResolve(t *testing.T) {
	svc := NewService(Config{})
	reg := registry.Build(Specs(), svc, registry.Options{})

	if len(reg.Skipped()) != 0 {
		t.Fatalf("Skipped() = %v, want none", reg.Skipped())
	}
	if reg.Len() != len(Specs()) {
		t.Errorf("Len() = %d, want %d", reg.Len(), len(Specs()))
	}
}

func TestHandlers(t *testing.T) {
	svc := NewService(Config{})
	ctx := context.Background()

	tests := []struct {
		name    string
		handler registry.HandlerFunc
		params  []string
		flags   parser.FlagSet
		args    map[string]string
		want    string
	}{
		{"echo", svc.Echo, []string{"a", "b"}, nil, nil, "a b"},
		{"echo empty", svc.Echo, []string{}, nil, nil, ""},
		{"greet", svc.Greet, []string{"bob"}, nil, nil, "Hello, Bob!"},
		{"greet default", svc.Greet, nil, nil, nil, "Hello, world!"},
		{"greet loud arg", svc.Greet, []string{"bob"}, nil, map[string]string{"loud": "true"}, "HELLO, BOB!"},
		{"greet loud flag", svc.Greet, []string{"bob"}, parser.FlagSet{"loud": {}}, nil, "HELLO, BOB!"},
		{"greet quiet arg", svc.Greet, []string{"bob"}, nil, map[string]string{"loud": "no"}, "Hello, Bob!"},
		{"add", svc.Add, []string{"2", "40"}, nil, nil, "42"},
		{"add negative", svc.Add, []string{"-5", "3"}, nil, nil, "-2"},
		{"add nothing", svc.Add, nil, nil, nil, "0"},
		{"upper", svc.Upper, []string{"abc", "déf"}, nil, nil, "ABC DÉF"},
		{"args", svc.Args, nil, nil, map[string]string{"to": "bob", "cc": "amy"}, "cc=amy\nto=bob"},
		{"args none", svc.Args, nil, nil, map[string]string{}, "(no arguments)"},
		{"flags", svc.Flags, nil, parser.FlagSet{"v": {}, "force": {}}, nil, "force v"},
		{"flags none", svc.Flags, nil, nil, nil, "(no flags)"},
		{"reverse", svc.Reverse, []string{"abc", "äö"}, nil, nil, "öä cba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.handler(ctx, tt.params, tt.flags, tt.args)
			if err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestService_AddRejectsNonInteger(t *testing.T) {
	svc := NewService(Config{})

	_, err := svc.Add(context.Background(), []string{"1", "two"}, nil, nil)
	if err == nil {
		t.Fatal("Add() should fail for non-integer input")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeInvalidInput)
	}
}

func TestToolboxThroughEngine(t *testing.T) {
	svc := NewService(Config{})
	engine, err := cmdline.New(Specs(), svc, cmdline.Options{
		Logger:   mdwlog.Nop(),
		Registry: registry.Options{EnableAliases: true},
	})
	if err != nil {
		t.Fatalf("cmdline.New() error = %v", err)
	}

	tests := []struct {
		line   string
		status dispatcher.Status
		output string
	}{
		{"greet bob --loud=true", dispatcher.StatusOK, "HELLO, BOB!"},
		{"hi amy", dispatcher.StatusOK, "Hello, Amy!"},
		{`echo --msg="a b" x`, dispatcher.StatusOK, "x"},
		{"add 1 2 3", dispatcher.StatusOK, "6"},
		{"add 1 x", dispatcher.StatusFailed, ""},
		{"rev abc", dispatcher.StatusOK, "cba"},
		{"nope", dispatcher.StatusNotFound, "No such command"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			result, err := engine.Execute(context.Background(), tt.line)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if result.Status != tt.status {
				t.Errorf("Status = %v, want %v", result.Status, tt.status)
			}
			if result.Output != tt.output {
				t.Errorf("Output = %q, want %q", result.Output, tt.output)
			}
		})
	}
}
