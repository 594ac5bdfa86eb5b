// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"errors"
	"testing"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		aliases  map[string]string
		input    string
		want     string
	}{
		{
			name:     "close typo",
			commands: []string{"build", "deploy", "debug"},
			input:    "buidl",
			want:     "build",
		},
		{
			name:     "one edit away",
			commands: []string{"build", "deploy", "status"},
			input:    "deplo",
			want:     "deploy",
		},
		{
			name:     "too far away",
			commands: []string{"build", "deploy", "status"},
			input:    "frobnicate",
			want:     "",
		},
		{
			name:     "ambiguous tie yields nothing",
			commands: []string{"lista", "listb"},
			input:    "list",
			want:     "",
		},
		{
			name:     "alias can win",
			commands: []string{"deploy"},
			aliases:  map[string]string{"deploy": "ship"},
			input:    "shio",
			want:     "ship",
		},
		{
			name:     "namespaced near miss",
			commands: []string{"db:migrate", "db:rollback"},
			input:    "db:migrat",
			want:     "db:migrate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			for _, name := range tt.commands {
				b := app.MustCommand(name, "")
				if alias, ok := tt.aliases[name]; ok {
					b.Alias(alias)
				}
			}
			if got := app.suggest(tt.input); got != tt.want {
				t.Errorf("suggest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggestionAttachedNotExecuted(t *testing.T) {
	app := testApp(t)
	executed := false
	app.MustCommand("build", "").Action(func(ctx context.Context, ec *Context) error {
		executed = true
		return nil
	})

	err := app.Run(context.Background(), []string{"buidl"}, RunConfig{Run: true})
	var uerr *UnknownCommandError
	if !errors.As(err, &uerr) {
		t.Fatalf("Run() error = %v, want *UnknownCommandError", err)
	}
	if uerr.Suggestion != "build" {
		t.Errorf("Suggestion = %q, want %q", uerr.Suggestion, "build")
	}
	if executed {
		t.Errorf("suggested command was executed; suggestions must only be reported")
	}
}

func TestDisableSuggestions(t *testing.T) {
	app := testApp(t)
	app.MustCommand("build", "")
	app.DisableSuggestions()

	if got := app.suggest("buidl"); got != "" {
		t.Errorf("suggest() = %q, want empty after DisableSuggestions", got)
	}
}
