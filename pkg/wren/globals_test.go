// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestGlobalsAreIndependent(t *testing.T) {
	app := testApp(t)
	app.EnableVerbose().EnableQuiet().EnableDebug().EnableDryRun()
	app.MustCommand("build", "")

	inv, err := app.Resolve([]string{"build", "-v", "-q"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// Both switches stay truthful; no precedence is applied.
	want := GlobalState{Verbose: true, Quiet: true}
	if inv.Globals != want {
		t.Errorf("Globals = %+v, want %+v", inv.Globals, want)
	}
	if !app.IsVerbose() || !app.IsQuiet() {
		t.Errorf("IsVerbose() = %v, IsQuiet() = %v, want true, true", app.IsVerbose(), app.IsQuiet())
	}
	if app.IsDebug() || app.IsDryRun() {
		t.Errorf("IsDebug() = %v, IsDryRun() = %v, want false, false", app.IsDebug(), app.IsDryRun())
	}
}

func TestDisabledGlobalIsUnknown(t *testing.T) {
	app := testApp(t)
	app.EnableVerbose() // quiet stays disabled
	app.MustCommand("build", "")

	_, err := app.Resolve([]string{"build", "--quiet"})
	var uerr *UnknownOptionError
	if !errors.As(err, &uerr) {
		t.Fatalf("Resolve() error = %v, want *UnknownOptionError", err)
	}
}

func TestGlobalsResetPerResolve(t *testing.T) {
	app := testApp(t)
	app.EnableVerbose()
	app.MustCommand("build", "")

	if _, err := app.Resolve([]string{"build", "-v"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !app.IsVerbose() {
		t.Fatalf("IsVerbose() = false after -v")
	}

	if _, err := app.Resolve([]string{"build"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if app.IsVerbose() {
		t.Errorf("IsVerbose() = true; state must reflect the latest resolution")
	}
}

func TestDebugLowersLogLevel(t *testing.T) {
	app := testApp(t)
	app.EnableDebug()
	app.MustCommand("build", "")

	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	app.SetLogLevel(lv)

	if _, err := app.Resolve([]string{"build"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if lv.Level() != slog.LevelInfo {
		t.Fatalf("level changed without --debug")
	}

	if _, err := app.Resolve([]string{"build", "--debug"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if lv.Level() != slog.LevelDebug {
		t.Errorf("level = %v after --debug, want %v", lv.Level(), slog.LevelDebug)
	}
}

func TestDryRunReachesHandlers(t *testing.T) {
	app := testApp(t)
	app.EnableDryRun()
	var sawDryRun bool
	app.MustCommand("deploy <env>", "").Action(func(ctx context.Context, ec *Context) error {
		sawDryRun = ec.DryRun()
		return nil
	})

	if err := app.Run(context.Background(), []string{"deploy", "prod", "--dry-run"}, RunConfig{Run: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !sawDryRun {
		t.Errorf("DryRun() = false inside action, want true")
	}
}
