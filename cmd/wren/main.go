// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wren is a demo host binary for the wren framework. It wires a
// handful of commands with hooks and middleware, enables the global
// switches, and maps framework errors to process exit codes.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wrenlet/wren/pkg/ctxlog"
	"github.com/wrenlet/wren/pkg/render"
	"github.com/wrenlet/wren/pkg/wren"
)

const version = "0.3.0"

var logLevel = new(slog.LevelVar)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	out := render.New(os.Stdout)
	errOut := render.New(os.Stderr)

	app := newApp(logger, out)
	defer app.Close()
	if err := app.Err(); err != nil {
		errOut.Error(err)
		return wren.ExitFailure
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = ctxlog.WithLogger(ctx, logger)

	err := app.Run(ctx, os.Args[1:], wren.RunConfig{Run: true})
	if err == nil {
		return wren.ExitSuccess
	}

	var help *wren.HelpRequested
	if errors.As(err, &help) {
		out.Help(help.Text)
		return wren.ExitSuccess
	}
	errOut.Error(err)
	var unknown *wren.UnknownCommandError
	if errors.As(err, &unknown) && unknown.Suggestion != "" {
		errOut.Hint("run '%s help' to list commands", app.Name)
	}
	return wren.ExitCode(err)
}

func newApp(logger *slog.Logger, out *render.Renderer) *wren.App {
	app := wren.NewApp("wren", version)
	app.Description = "a demo CLI built on the wren framework"
	app.SetLogger(logger)
	app.SetLogLevel(logLevel)
	app.EnableVerbose().EnableQuiet().EnableDebug().EnableDryRun()
	if loadedPrefs.HelpTTL > 0 {
		app.SetHelpTTL(time.Duration(loadedPrefs.HelpTTL) * time.Second)
	}
	if loadedPrefs.NoSuggestions {
		app.DisableSuggestions()
	}

	app.Root().
		Option("--version", "Print the version and exit").
		Action(func(ctx context.Context, ec *wren.Context) error {
			if ec.Bool("version") {
				out.Line("%s %s", app.Name, app.Version)
				return nil
			}
			text, err := ec.App().RenderHelp("")
			if err != nil {
				return err
			}
			out.Help(text)
			return nil
		})

	app.MustCommand("help [command]", "Show help for the app or one command").
		Action(func(ctx context.Context, ec *wren.Context) error {
			name, _ := ec.Arg("command")
			text, err := ec.App().RenderHelp(name)
			if err != nil {
				return err
			}
			out.Help(text)
			return nil
		})

	app.MustCommand("greet <name>", "Greet someone").
		Option("-l, --loud", "Shout the greeting").
		Option("--greeting <word>", "Greeting word", wren.WithDefault("hello")).
		Action(func(ctx context.Context, ec *wren.Context) error {
			name, _ := ec.Arg("name")
			greeting := ec.String("greeting")
			if ec.Bool("loud") {
				name = strings.ToUpper(name)
				greeting = strings.ToUpper(greeting)
			}
			out.Line("%s, %s!", greeting, name)
			return nil
		})

	app.MustCommand("build [target]", "Build a target").
		Alias("b").
		Option("-j, --jobs <n>", "Parallel jobs", wren.WithKind(wren.KindInt), wren.WithDefault(1)).
		Use(timing(logger)).
		Action(func(ctx context.Context, ec *wren.Context) error {
			target, ok := ec.Arg("target")
			if !ok {
				target = "all"
			}
			if ec.DryRun() {
				out.Line("would build %s with %d jobs", target, ec.Int("jobs"))
				return nil
			}
			out.Line("building %s with %d jobs", target, ec.Int("jobs"))
			return nil
		})

	app.MustCommand("deploy <env> [...services]", "Deploy services to an environment").
		Option("--timeout <duration>", "Per-service timeout", wren.WithKind(wren.KindDuration), wren.WithDefault(30*time.Second)).
		Before(requireEnv).
		Use(timing(logger)).
		Action(func(ctx context.Context, ec *wren.Context) error {
			env, _ := ec.Arg("env")
			services := ec.Variadic()
			if len(services) == 0 {
				services = []string{"api"}
			}
			for _, svc := range services {
				if ec.DryRun() {
					out.Line("would deploy %s to %s (timeout %s)", svc, env, ec.Duration("timeout"))
					continue
				}
				out.Line("deploying %s to %s", svc, env)
			}
			return nil
		}).
		After(func(ctx context.Context, ec *wren.Context) error {
			if !ec.Globals().Quiet {
				out.Line("deploy finished")
			}
			return nil
		})

	app.MustCommand("db:migrate", "Apply pending database migrations").
		Before(openDatabase).
		Action(func(ctx context.Context, ec *wren.Context) error {
			db := mustDatabase(ec)
			if ec.DryRun() {
				out.Line("would apply %d pending migrations on %s", len(db.pending), db.dsn)
				return nil
			}
			for _, m := range db.pending {
				out.Line("applying %s", m)
			}
			return nil
		})

	app.MustCommand("db:rollback [steps]", "Roll back applied migrations").
		Before(openDatabase).
		Action(func(ctx context.Context, ec *wren.Context) error {
			db := mustDatabase(ec)
			steps, _ := ec.Arg("steps")
			if steps == "" {
				steps = "1"
			}
			out.Line("rolling back %s step(s) on %s", steps, db.dsn)
			return nil
		})

	registerIntrospection(app)
	registerVersion(app, out)
	return app
}

// timing logs how long the inner chain took; it demonstrates onion
// middleware wrapping the action.
func timing(logger *slog.Logger) wren.Middleware {
	return func(ctx context.Context, ec *wren.Context, next wren.Next) error {
		start := time.Now()
		err := next(ctx)
		logger.DebugContext(ctx, "command timed",
			"command", ec.Command().Name, "elapsed", time.Since(start), "err", err)
		return err
	}
}

func requireEnv(ctx context.Context, ec *wren.Context) error {
	env, _ := ec.Arg("env")
	switch env {
	case "staging", "production":
		return nil
	default:
		return fmt.Errorf("unknown environment %q (want staging or production)", env)
	}
}

// database is a stand-in handle shared from the before hook to the
// action through the pipeline context.
type database struct {
	dsn     string
	pending []string
}

func openDatabase(ctx context.Context, ec *wren.Context) error {
	dsn := loadedPrefs.DatabaseDSN
	if dsn == "" {
		dsn = "sqlite://wren.db"
	}
	ctxlog.FromContext(ctx).DebugContext(ctx, "opening database", "dsn", dsn)
	ec.Set("db", &database{dsn: dsn, pending: []string{"0001_init", "0002_indexes"}})
	return nil
}

func mustDatabase(ec *wren.Context) *database {
	v, ok := ec.Get("db")
	if !ok {
		panic("database hook did not run")
	}
	return v.(*database)
}
