// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func testApp(t *testing.T) *App {
	t.Helper()
	app := NewApp("t", "0.0.1")
	t.Cleanup(app.Close)
	return app
}

func TestResolveBinding(t *testing.T) {
	app := testApp(t)
	app.MustCommand("deploy <env> [target] [...services]", "").
		Option("-f, --force", "").
		Option("--timeout <duration>", "", WithKind(KindDuration), WithDefault(30*time.Second)).
		Option("-j, --jobs <n>", "", WithKind(KindInt))
	app.EnableVerbose().EnableDryRun()

	tests := []struct {
		name        string
		tokens      []string
		wantArgs    map[string]string
		wantVar     []string
		wantOptions map[string]any
		wantRest    []string
		wantGlobals GlobalState
	}{
		{
			name:     "required only",
			tokens:   []string{"deploy", "prod"},
			wantArgs: map[string]string{"env": "prod"},
			wantOptions: map[string]any{
				"force": false, "timeout": 30 * time.Second,
				"verbose": false, "dry-run": false,
			},
		},
		{
			name:     "optional and variadic",
			tokens:   []string{"deploy", "prod", "web", "api", "worker"},
			wantArgs: map[string]string{"env": "prod", "target": "web"},
			wantVar:  []string{"api", "worker"},
			wantOptions: map[string]any{
				"force": false, "timeout": 30 * time.Second,
				"verbose": false, "dry-run": false,
			},
		},
		{
			name:     "flags before and after command token",
			tokens:   []string{"--force", "deploy", "prod", "--timeout=1m"},
			wantArgs: map[string]string{"env": "prod"},
			wantOptions: map[string]any{
				"force": true, "timeout": time.Minute,
				"verbose": false, "dry-run": false,
			},
		},
		{
			name:     "short flag and space-separated value",
			tokens:   []string{"deploy", "-f", "prod", "-j", "4"},
			wantArgs: map[string]string{"env": "prod"},
			wantOptions: map[string]any{
				"force": true, "jobs": 4, "timeout": 30 * time.Second,
				"verbose": false, "dry-run": false,
			},
		},
		{
			name:     "separator stops option parsing",
			tokens:   []string{"deploy", "prod", "--", "--force", "raw"},
			wantArgs: map[string]string{"env": "prod"},
			wantOptions: map[string]any{
				"force": false, "timeout": 30 * time.Second,
				"verbose": false, "dry-run": false,
			},
			wantRest: []string{"--force", "raw"},
		},
		{
			name:     "negative number is positional",
			tokens:   []string{"deploy", "-10"},
			wantArgs: map[string]string{"env": "-10"},
			wantOptions: map[string]any{
				"force": false, "timeout": 30 * time.Second,
				"verbose": false, "dry-run": false,
			},
		},
		{
			name:     "globals are merged per invocation",
			tokens:   []string{"deploy", "prod", "-v", "--dry-run"},
			wantArgs: map[string]string{"env": "prod"},
			wantOptions: map[string]any{
				"force": false, "timeout": 30 * time.Second,
				"verbose": true, "dry-run": true,
			},
			wantGlobals: GlobalState{Verbose: true, DryRun: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := app.Resolve(tt.tokens)
			if err != nil {
				t.Fatalf("Resolve(%v) error = %v", tt.tokens, err)
			}
			if inv.Command.Name != "deploy" {
				t.Errorf("Command = %q, want %q", inv.Command.Name, "deploy")
			}
			for name, want := range tt.wantArgs {
				got, ok := inv.Arg(name)
				if !ok || got != want {
					t.Errorf("Arg(%q) = %q, %v, want %q, true", name, got, ok, want)
				}
			}
			if diff := cmp.Diff(tt.wantVar, inv.Variadic(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Variadic() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantOptions, inv.Options); diff != "" {
				t.Errorf("Options mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRest, inv.Rest, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Rest mismatch (-want +got):\n%s", diff)
			}
			if inv.Globals != tt.wantGlobals {
				t.Errorf("Globals = %+v, want %+v", inv.Globals, tt.wantGlobals)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	app := testApp(t)
	app.MustCommand("build [target]", "").Option("-j, --jobs <n>", "", WithKind(KindInt))
	app.MustCommand("deploy <env>", "")

	tests := []struct {
		name   string
		tokens []string
		want   any // pointer to the expected error type
	}{
		{name: "unknown command", tokens: []string{"frobnicate"}, want: new(*UnknownCommandError)},
		{name: "unknown option", tokens: []string{"build", "--frob"}, want: new(*UnknownOptionError)},
		{name: "missing required argument", tokens: []string{"deploy"}, want: new(*MissingArgumentError)},
		{name: "unexpected argument", tokens: []string{"build", "a", "b"}, want: new(*UnexpectedArgError)},
		{name: "missing option value", tokens: []string{"build", "--jobs"}, want: new(*InvalidOptionValueError)},
		{name: "uncoercible option value", tokens: []string{"build", "--jobs", "many"}, want: new(*InvalidOptionValueError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Resolve(tt.tokens)
			if err == nil {
				t.Fatalf("Resolve(%v) error = nil, want error", tt.tokens)
			}
			var matched bool
			switch target := tt.want.(type) {
			case **UnknownCommandError:
				matched = errors.As(err, target)
			case **UnknownOptionError:
				matched = errors.As(err, target)
			case **MissingArgumentError:
				matched = errors.As(err, target)
			case **UnexpectedArgError:
				matched = errors.As(err, target)
			case **InvalidOptionValueError:
				matched = errors.As(err, target)
			}
			if !matched {
				t.Errorf("Resolve(%v) error = %T, want %T", tt.tokens, err, tt.want)
			}
			if got := ExitCode(err); got != ExitUsage {
				t.Errorf("ExitCode = %d, want %d", got, ExitUsage)
			}
		})
	}
}

func TestResolvePassthrough(t *testing.T) {
	app := testApp(t)
	app.MustCommand("exec <bin>", "").AllowPassthrough()

	inv, err := app.Resolve([]string{"exec", "ls", "--color", "-la"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if bin, _ := inv.Arg("bin"); bin != "ls" {
		t.Errorf("Arg(bin) = %q, want %q", bin, "ls")
	}
	wantRest := []string{"--color", "-la"}
	if diff := cmp.Diff(wantRest, inv.Rest); diff != "" {
		t.Errorf("Rest mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNegatableOption(t *testing.T) {
	app := testApp(t)
	app.MustCommand("build", "").Option("--no-cache", "")

	inv, err := app.Resolve([]string{"build"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !inv.Bool("cache") {
		t.Errorf("cache default = false, want true")
	}

	inv, err = app.Resolve([]string{"build", "--no-cache"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Bool("cache") {
		t.Errorf("cache after --no-cache = true, want false")
	}
}

func TestResolveOptionalDefault(t *testing.T) {
	app := testApp(t)
	app.MustCommand("serve [port]", "").ArgDefault("port", "8080")

	inv, err := app.Resolve([]string{"serve"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if port, ok := inv.Arg("port"); !ok || port != "8080" {
		t.Errorf("Arg(port) = %q, %v, want %q, true", port, ok, "8080")
	}
}

func TestResolveAlias(t *testing.T) {
	app := testApp(t)
	app.MustCommand("build [target]", "").Alias("b")

	inv, err := app.Resolve([]string{"b", "web"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Command.Name != "build" {
		t.Errorf("Command = %q, want %q", inv.Command.Name, "build")
	}
}

func TestCommandOptionShadowsGlobal(t *testing.T) {
	app := testApp(t)
	app.EnableVerbose()
	app.MustCommand("log", "").Option("--verbose <level>", "")

	inv, err := app.Resolve([]string{"log", "--verbose", "high"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := inv.String("verbose"); got != "high" {
		t.Errorf("verbose = %q, want %q", got, "high")
	}
	if inv.Globals.Verbose {
		t.Errorf("Globals.Verbose = true, want false when shadowed")
	}
}
