// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wrenlet/wren/pkg/memocache"
)

// Hook is a before/after hook or an action handler.
type Hook func(ctx context.Context, ec *Context) error

// Next resumes the middleware chain. A middleware that returns without
// calling it short-circuits the inner chain; that is a normal control
// path, not an error.
type Next func(ctx context.Context) error

// Middleware wraps the inner chain in onion order: code before next runs
// on the way in, code after next runs on the way out.
type Middleware func(ctx context.Context, ec *Context, next Next) error

// Command is the immutable descriptor of a registered command. It is
// created through App.Command and sealed once execution starts.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Args        []ArgSpec
	Options     []OptionSpec

	before      []Hook
	middlewares []Middleware
	after       []Hook
	action      Hook

	passthrough bool
	hidden      bool
	sealed      bool
}

// Namespace returns the substring before the first ':' in the command
// name, or "" for an ungrouped command. It is derived, never stored, and
// used only for grouping in help output.
func (c *Command) Namespace() string {
	if ns, _, ok := strings.Cut(c.Name, ":"); ok {
		return ns
	}
	return ""
}

// HasAction reports whether an action handler is registered.
func (c *Command) HasAction() bool { return c.action != nil }

// Hidden reports whether the command is excluded from help listings.
func (c *Command) Hidden() bool { return c.hidden }

func (c *Command) option(name string) (*OptionSpec, bool) {
	for i := range c.Options {
		if c.Options[i].Long == name || (c.Options[i].Short != "" && c.Options[i].Short == name) {
			return &c.Options[i], true
		}
	}
	return nil, false
}

const defaultHelpTTL = 5 * time.Second

// App is the command registry and execution entry point. Registration is
// single-threaded and must complete before the first Resolve or Execute;
// the two phases do not interleave.
type App struct {
	Name        string
	Version     string
	Description string

	commands []*Command // registration order, user-visible in help
	byName   map[string]*Command
	byAlias  map[string]*Command
	root     *Command

	globals       globalFlags
	lastGlobals   GlobalState
	noSuggestions bool

	cache    *memocache.Cache
	helpTTL  time.Duration
	logger   *slog.Logger
	logLevel *slog.LevelVar

	regErr error
}

// NewApp creates an application registry with an implicit root command
// that carries app-level options (e.g. --version) and is resolved when
// the argument vector names no subcommand.
func NewApp(name, version string) *App {
	app := &App{
		Name:    name,
		Version: version,
		byName:  make(map[string]*Command),
		byAlias: make(map[string]*Command),
		cache:   memocache.New(defaultHelpTTL, time.Minute),
		helpTTL: defaultHelpTTL,
		logger:  slog.Default(),
	}
	app.root = &Command{Name: name}
	return app
}

// SetLogger replaces the app logger used for debug-level pipeline logs.
func (app *App) SetLogger(l *slog.Logger) {
	if l != nil {
		app.logger = l
	}
}

// SetHelpTTL overrides the memoization TTL for rendered help text.
func (app *App) SetHelpTTL(ttl time.Duration) { app.helpTTL = ttl }

// DisableSuggestions turns off did-you-mean matching for unknown
// commands.
func (app *App) DisableSuggestions() { app.noSuggestions = true }

// Close releases the help cache's background sweeper.
func (app *App) Close() { app.cache.Close() }

// Command registers a command from a pattern string and returns its
// builder. Grammar violations and duplicate names are recorded and
// reported by Err; MustCommand panics on them instead.
func (app *App) Command(pattern, description string) *Builder {
	name, args, err := ParsePattern(pattern)
	if err != nil {
		app.fail(err)
		return &Builder{app: app, cmd: &Command{Name: name}, broken: true}
	}
	if _, exists := app.byName[name]; exists {
		app.fail(&DuplicateCommandError{Name: name})
		return &Builder{app: app, cmd: &Command{Name: name}, broken: true}
	}
	if _, exists := app.byAlias[name]; exists {
		app.fail(&DuplicateCommandError{Name: name})
		return &Builder{app: app, cmd: &Command{Name: name}, broken: true}
	}
	cmd := &Command{Name: name, Args: args, Description: description}
	app.commands = append(app.commands, cmd)
	app.byName[name] = cmd
	return &Builder{app: app, cmd: cmd}
}

// MustCommand is Command but panics on a registration error. Use for
// static registration where a bad pattern is a programming error.
func (app *App) MustCommand(pattern, description string) *Builder {
	before := app.regErr
	b := app.Command(pattern, description)
	if before == nil && app.regErr != nil {
		panic(app.regErr)
	}
	return b
}

// Root returns the builder for the implicit root command, used to attach
// app-level options and an action for bare invocations.
func (app *App) Root() *Builder {
	return &Builder{app: app, cmd: app.root}
}

// Err returns the first registration error, if any. Grammar and
// duplicate errors are fatal: callers are expected to check Err (or use
// MustCommand) before executing.
func (app *App) Err() error { return app.regErr }

// Commands returns all registered commands in registration order. The
// order is user-visible in help listings and is never alphabetized.
func (app *App) Commands() []*Command {
	out := make([]*Command, len(app.commands))
	copy(out, app.commands)
	return out
}

// ResolveExact returns the command registered under the given literal
// name or alias.
func (app *App) ResolveExact(name string) (*Command, bool) {
	if cmd, ok := app.byName[name]; ok {
		return cmd, ok
	}
	cmd, ok := app.byAlias[name]
	return cmd, ok
}

func (app *App) fail(err error) {
	if app.regErr == nil {
		app.regErr = err
	}
}

// namespaceChildren returns the registered commands under the given
// namespace prefix, in registration order.
func (app *App) namespaceChildren(ns string) []*Command {
	var out []*Command
	for _, cmd := range app.commands {
		if cmd.Namespace() == ns {
			out = append(out, cmd)
		}
	}
	return out
}

// seal freezes every descriptor; called on the first resolve so builder
// mutation cannot race an in-flight execution.
func (app *App) seal() {
	for _, cmd := range app.commands {
		cmd.sealed = true
	}
	app.root.sealed = true
}
