// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Context is the per-invocation handle passed to every hook, middleware
// and action. It carries a unique invocation ID, the resolved
// invocation, and shared scratch state that hooks can use to pass data
// down the pipeline.
type Context struct {
	app *App
	inv *Invocation

	id     string
	values map[string]any
}

func newContext(app *App, inv *Invocation) *Context {
	return &Context{
		app:    app,
		inv:    inv,
		id:     uuid.NewString(),
		values: make(map[string]any),
	}
}

// ID returns the unique identifier of this invocation.
func (ec *Context) ID() string { return ec.id }

// App returns the owning application.
func (ec *Context) App() *App { return ec.app }

// Command returns the resolved command descriptor.
func (ec *Context) Command() *Command { return ec.inv.Command }

// Invocation returns the full resolved invocation.
func (ec *Context) Invocation() *Invocation { return ec.inv }

// Logger returns the app logger with the invocation ID attached.
func (ec *Context) Logger() *slog.Logger {
	return ec.app.logger.With("invocation", ec.id, "command", ec.inv.Command.Name)
}

// Arg returns the value bound to the named argument slot.
func (ec *Context) Arg(name string) (string, bool) { return ec.inv.Arg(name) }

// Variadic returns the tokens absorbed by the variadic argument slot.
func (ec *Context) Variadic() []string { return ec.inv.Variadic() }

// Rest returns the passthrough tokens.
func (ec *Context) Rest() []string { return ec.inv.Rest }

// Bool returns the named option as a bool.
func (ec *Context) Bool(name string) bool { return ec.inv.Bool(name) }

// String returns the named option as a string.
func (ec *Context) String(name string) string { return ec.inv.String(name) }

// Int returns the named option as an int.
func (ec *Context) Int(name string) int { return ec.inv.Int(name) }

// Float64 returns the named option as a float64.
func (ec *Context) Float64(name string) float64 { return ec.inv.Float64(name) }

// Duration returns the named option as a time.Duration.
func (ec *Context) Duration(name string) time.Duration { return ec.inv.Duration(name) }

// Globals returns the resolved global switch state.
func (ec *Context) Globals() GlobalState { return ec.inv.Globals }

// DryRun reports the --dry-run global switch.
func (ec *Context) DryRun() bool { return ec.inv.Globals.DryRun }

// Set stores a value shared across the pipeline, e.g. a handle opened
// by a before hook and consumed by the action.
func (ec *Context) Set(key string, v any) { ec.values[key] = v }

// Get returns a value stored by an earlier pipeline stage.
func (ec *Context) Get(key string) (any, bool) {
	v, ok := ec.values[key]
	return v, ok
}
