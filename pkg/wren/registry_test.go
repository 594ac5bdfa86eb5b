// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"errors"
	"testing"
)

func TestDuplicateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		register func(app *App)
	}{
		{
			name: "same name twice",
			register: func(app *App) {
				app.Command("build", "")
				app.Command("build", "second")
			},
		},
		{
			name: "alias collides with name",
			register: func(app *App) {
				app.Command("build", "")
				app.Command("bake", "").Alias("build")
			},
		},
		{
			name: "name collides with alias",
			register: func(app *App) {
				app.Command("build", "").Alias("b")
				app.Command("b", "")
			},
		},
		{
			name: "alias collides with alias",
			register: func(app *App) {
				app.Command("build", "").Alias("b")
				app.Command("bake", "").Alias("b")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			tt.register(app)
			var derr *DuplicateCommandError
			if !errors.As(app.Err(), &derr) {
				t.Fatalf("Err() = %v, want *DuplicateCommandError", app.Err())
			}
		})
	}
}

func TestErrKeepsFirstError(t *testing.T) {
	app := testApp(t)
	app.Command("bad <", "")
	app.Command("build", "")
	app.Command("build", "")

	var gerr *GrammarError
	if !errors.As(app.Err(), &gerr) {
		t.Fatalf("Err() = %v, want the first *GrammarError", app.Err())
	}
}

func TestRunRefusesBrokenRegistry(t *testing.T) {
	app := testApp(t)
	app.Command("build", "")
	app.Command("build", "")

	err := app.Run(context.Background(), []string{"build"}, RunConfig{Run: true})
	var derr *DuplicateCommandError
	if !errors.As(err, &derr) {
		t.Fatalf("Run() error = %v, want *DuplicateCommandError", err)
	}
}

func TestMustCommandPanics(t *testing.T) {
	app := testApp(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("MustCommand did not panic on a malformed pattern")
		}
	}()
	app.MustCommand("bad [", "")
}

func TestCommandsRegistrationOrder(t *testing.T) {
	app := testApp(t)
	names := []string{"zeta", "alpha", "db:migrate", "beta"}
	for _, name := range names {
		app.MustCommand(name, "")
	}

	got := app.Commands()
	if len(got) != len(names) {
		t.Fatalf("Commands() returned %d commands, want %d", len(got), len(names))
	}
	for i, cmd := range got {
		if cmd.Name != names[i] {
			t.Errorf("Commands()[%d] = %q, want %q", i, cmd.Name, names[i])
		}
	}
}

func TestNamespaceDerivation(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "db:migrate", want: "db"},
		{name: "db:schema:dump", want: "db"},
		{name: "build", want: ""},
	}
	for _, tt := range tests {
		cmd := &Command{Name: tt.name}
		if got := cmd.Namespace(); got != tt.want {
			t.Errorf("Namespace(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuilderMutationAfterSealPanics(t *testing.T) {
	app := testApp(t)
	b := app.MustCommand("build", "")
	if _, err := app.Resolve([]string{"build"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("builder mutation after sealing did not panic")
		}
	}()
	b.Option("--late", "")
}
