// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import "log/slog"

// globalFlags records which built-in global switches the application has
// enabled. Disabled switches are invisible to resolution: their tokens
// are unknown options.
type globalFlags struct {
	verbose bool
	quiet   bool
	debug   bool
	dryRun  bool
}

// GlobalState is the resolved value of the enabled global switches for
// one invocation. The four switches are independent booleans; passing
// both -v and -q leaves both set, and any precedence between them
// belongs to the handlers that consume the state.
type GlobalState struct {
	Verbose bool
	Quiet   bool
	Debug   bool
	DryRun  bool
}

// EnableVerbose registers the -v, --verbose switch on every command.
func (app *App) EnableVerbose() *App {
	app.globals.verbose = true
	return app
}

// EnableQuiet registers the -q, --quiet switch on every command.
func (app *App) EnableQuiet() *App {
	app.globals.quiet = true
	return app
}

// EnableDebug registers the --debug switch on every command. When a
// level var is attached via SetLogLevel, resolving --debug lowers it to
// slog.LevelDebug.
func (app *App) EnableDebug() *App {
	app.globals.debug = true
	return app
}

// EnableDryRun registers the --dry-run switch on every command. The
// framework only records the flag; honoring it is up to the handlers.
func (app *App) EnableDryRun() *App {
	app.globals.dryRun = true
	return app
}

// SetLogLevel attaches the level var that --debug flips to debug level.
func (app *App) SetLogLevel(lv *slog.LevelVar) { app.logLevel = lv }

// Globals returns the global state captured by the most recent Resolve.
func (app *App) Globals() GlobalState { return app.lastGlobals }

// IsVerbose reports the verbose switch of the last resolution.
func (app *App) IsVerbose() bool { return app.lastGlobals.Verbose }

// IsQuiet reports the quiet switch of the last resolution.
func (app *App) IsQuiet() bool { return app.lastGlobals.Quiet }

// IsDebug reports the debug switch of the last resolution.
func (app *App) IsDebug() bool { return app.lastGlobals.Debug }

// IsDryRun reports the dry-run switch of the last resolution.
func (app *App) IsDryRun() bool { return app.lastGlobals.DryRun }

// globalSpecs returns option specs for the enabled switches. They are
// injected into each command's effective option set at resolve time.
func (app *App) globalSpecs() []OptionSpec {
	var specs []OptionSpec
	if app.globals.verbose {
		specs = append(specs, OptionSpec{Long: "verbose", Short: "v", Description: "enable verbose output", Kind: KindBool, Default: false, global: true})
	}
	if app.globals.quiet {
		specs = append(specs, OptionSpec{Long: "quiet", Short: "q", Description: "suppress non-essential output", Kind: KindBool, Default: false, global: true})
	}
	if app.globals.debug {
		specs = append(specs, OptionSpec{Long: "debug", Description: "enable debug logging", Kind: KindBool, Default: false, global: true})
	}
	if app.globals.dryRun {
		specs = append(specs, OptionSpec{Long: "dry-run", Description: "show what would happen without doing it", Kind: KindBool, Default: false, global: true})
	}
	return specs
}

// globalState reads the switch values out of a resolved option map,
// honoring only the specs actually injected as globals. A switch
// shadowed by a command-declared option of the same name stays false in
// the global state; the command owns that name.
func globalState(specs []OptionSpec, options map[string]any) GlobalState {
	var gs GlobalState
	for i := range specs {
		if !specs[i].global {
			continue
		}
		v, _ := options[specs[i].Long].(bool)
		switch specs[i].Long {
		case "verbose":
			gs.Verbose = v
		case "quiet":
			gs.Quiet = v
		case "debug":
			gs.Debug = v
		case "dry-run":
			gs.DryRun = v
		}
	}
	return gs
}

func (app *App) applyDebugLevel(gs GlobalState) {
	if gs.Debug && app.logLevel != nil {
		app.logLevel.Set(slog.LevelDebug)
	}
}
