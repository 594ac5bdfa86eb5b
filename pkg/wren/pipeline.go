// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"errors"
)

// Execute runs a resolved invocation through the full pipeline:
//
//	before hooks -> middleware chain (onion) -> action -> after hooks
//
// Phases run strictly in that order. A failure in any phase stops the
// pipeline; after hooks run only when everything up to and including the
// action succeeded. Handler failures come back wrapped in *HandlerError
// tagged with the phase.
//
// A grouping node (a namespace with children but no action of its own)
// invoked bare does not fail: Execute returns *HelpRequested carrying
// the rendered namespace listing.
func (app *App) Execute(ctx context.Context, inv *Invocation) error {
	cmd := inv.Command

	if inv.grouping || (cmd != app.root && !cmd.HasAction() && len(app.namespaceChildren(cmd.Name)) > 0) {
		text, err := app.RenderHelp(cmd.Name)
		if err != nil {
			return err
		}
		return &HelpRequested{Command: cmd.Name, Text: text}
	}
	if cmd == app.root && !cmd.HasAction() {
		text, err := app.RenderHelp("")
		if err != nil {
			return err
		}
		return &HelpRequested{Text: text}
	}

	ec := newContext(app, inv)
	log := ec.Logger()
	log.DebugContext(ctx, "pipeline start",
		"before", len(cmd.before), "middlewares", len(cmd.middlewares), "after", len(cmd.after))

	for _, hook := range cmd.before {
		if err := hook(ctx, ec); err != nil {
			log.DebugContext(ctx, "pipeline aborted", "phase", PhaseBefore, "err", err)
			return &HandlerError{Command: cmd.Name, Phase: PhaseBefore, Err: err}
		}
	}

	if err := app.runChain(ctx, ec); err != nil {
		var herr *HandlerError
		if !errors.As(err, &herr) {
			err = &HandlerError{Command: cmd.Name, Phase: PhaseMiddleware, Err: err}
		}
		log.DebugContext(ctx, "pipeline aborted", "err", err)
		return err
	}

	for _, hook := range cmd.after {
		if err := hook(ctx, ec); err != nil {
			log.DebugContext(ctx, "pipeline aborted", "phase", PhaseAfter, "err", err)
			return &HandlerError{Command: cmd.Name, Phase: PhaseAfter, Err: err}
		}
	}

	log.DebugContext(ctx, "pipeline done")
	return nil
}

// runChain composes the middleware chain around the action, innermost
// first, so that the first registered middleware is the outermost layer.
// A middleware that returns nil without calling next short-circuits the
// rest of the chain; the pipeline treats that as success and still runs
// the after hooks.
func (app *App) runChain(ctx context.Context, ec *Context) error {
	cmd := ec.Command()

	next := Next(func(ctx context.Context) error {
		if cmd.action == nil {
			return nil
		}
		if err := cmd.action(ctx, ec); err != nil {
			return &HandlerError{Command: cmd.Name, Phase: PhaseAction, Err: err}
		}
		return nil
	})
	for i := len(cmd.middlewares) - 1; i >= 0; i-- {
		mw := cmd.middlewares[i]
		inner := next
		next = func(ctx context.Context) error {
			return mw(ctx, ec, inner)
		}
	}
	return next(ctx)
}
