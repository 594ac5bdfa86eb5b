// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wren is a command-line application framework: it turns raw
// process arguments into structured command invocations, runs handlers
// through a composable hook/middleware pipeline, and renders help text
// from registry metadata.
//
// Commands are declared with a pattern string and a fluent builder:
//
//	app := wren.NewApp("mycli", "1.2.0")
//	app.Command("greet <name>", "Greet someone").
//	    Option("-l, --loud", "Shout the greeting").
//	    Action(func(ctx context.Context, ec *wren.Context) error {
//	        name, _ := ec.Arg("name")
//	        if ec.Bool("loud") {
//	            name = strings.ToUpper(name)
//	        }
//	        fmt.Println("hello", name)
//	        return nil
//	    })
//
//	if err := app.Run(ctx, os.Args[1:], wren.RunConfig{Run: true}); err != nil {
//	    os.Exit(wren.ExitCode(err))
//	}
//
// # Pattern syntax
//
// A pattern is a command name followed by argument tokens:
//
//	"deploy <env> [target] [...services]"
//
// <name> is required, [name] is optional, [...name] is variadic and must
// be last. Required arguments must precede optional ones. Command names
// may carry a namespace prefix ("db:migrate"); the prefix is used only
// for grouping in help output, never for routing.
//
// # Execution order
//
// A command's handlers run as: before hooks in registration order, then
// the middleware chain in onion order (each middleware's code after its
// next() call runs as the stack unwinds, in reverse registration order)
// around the action, then after hooks in registration order. A failing
// before hook or handler aborts the remainder; a middleware that never
// calls next short-circuits the inner chain without error.
//
// # Global flags
//
// Verbose, quiet, debug and dry-run switches can be enabled on the App
// and are merged into every command's option set at resolution time.
// Verbose and quiet are independent booleans; when both are set the
// stored values stay truthful and any suppression policy is left to the
// caller.
package wren
