// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"fmt"
	"strings"
)

// RenderHelp renders help text for a command, a namespace, or the whole
// application when name is empty. Rendered text is memoized in the
// metadata cache under the app's help TTL; concurrent renders of the
// same key are deduplicated so the text is built once.
func (app *App) RenderHelp(name string) (string, error) {
	app.seal()

	key := "help:listing"
	if name != "" {
		key = "help:" + name
	}
	v, err := app.cache.Do(key, app.helpTTL, func() (any, error) {
		return app.renderHelp(name)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (app *App) renderHelp(name string) (string, error) {
	if name == "" || name == app.Name {
		return app.renderListing(), nil
	}
	if cmd, ok := app.ResolveExact(name); ok {
		// A registered grouping node reads better as its children.
		if !cmd.HasAction() {
			if children := app.namespaceChildren(cmd.Name); len(children) > 0 {
				return app.renderNamespace(cmd.Name, children), nil
			}
		}
		return app.renderCommand(cmd), nil
	}
	if children := app.namespaceChildren(name); len(children) > 0 {
		return app.renderNamespace(name, children), nil
	}
	return "", &UnknownCommandError{Name: name, Suggestion: app.suggest(name)}
}

// renderListing builds the application-wide help: ungrouped commands
// first, then one section per namespace. Within every section commands
// appear in registration order; nothing is alphabetized, the listing
// reads as the application author arranged it.
func (app *App) renderListing() string {
	var sb strings.Builder
	if app.Description != "" {
		fmt.Fprintf(&sb, "%s - %s\n\n", app.Name, app.Description)
	} else {
		fmt.Fprintf(&sb, "%s %s\n\n", app.Name, app.Version)
	}
	fmt.Fprintf(&sb, "USAGE:\n  %s <command> [arguments] [options]\n", app.Name)

	var (
		ungrouped  []*Command
		namespaces []string
		grouped    = make(map[string][]*Command)
	)
	for _, cmd := range app.commands {
		if cmd.Hidden() {
			continue
		}
		ns := cmd.Namespace()
		if ns == "" {
			ungrouped = append(ungrouped, cmd)
			continue
		}
		if _, seen := grouped[ns]; !seen {
			namespaces = append(namespaces, ns)
		}
		grouped[ns] = append(grouped[ns], cmd)
	}

	width := 0
	for _, cmd := range app.commands {
		if !cmd.Hidden() && len(cmd.Name) > width {
			width = len(cmd.Name)
		}
	}

	if len(ungrouped) > 0 {
		sb.WriteString("\nCOMMANDS:\n")
		for _, cmd := range ungrouped {
			writeEntry(&sb, cmd.Name, cmd.Description, width)
		}
	}
	for _, ns := range namespaces {
		fmt.Fprintf(&sb, "\n%s COMMANDS:\n", strings.ToUpper(ns))
		for _, cmd := range grouped[ns] {
			writeEntry(&sb, cmd.Name, cmd.Description, width)
		}
	}

	app.writeGlobalOptions(&sb)
	fmt.Fprintf(&sb, "\nRun '%s help <command>' for details on a command.\n", app.Name)
	return sb.String()
}

// renderNamespace builds the listing shown when a grouping node is
// invoked bare.
func (app *App) renderNamespace(ns string, children []*Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: commands grouped under %q\n", app.Name, ns)
	fmt.Fprintf(&sb, "\nUSAGE:\n  %s %s:<command> [arguments] [options]\n", app.Name, ns)

	width := 0
	for _, cmd := range children {
		if !cmd.Hidden() && len(cmd.Name) > width {
			width = len(cmd.Name)
		}
	}
	sb.WriteString("\nCOMMANDS:\n")
	for _, cmd := range children {
		if cmd.Hidden() {
			continue
		}
		writeEntry(&sb, cmd.Name, cmd.Description, width)
	}
	app.writeGlobalOptions(&sb)
	return sb.String()
}

func (app *App) renderCommand(cmd *Command) string {
	var sb strings.Builder
	if cmd.Description != "" {
		fmt.Fprintf(&sb, "%s %s - %s\n\n", app.Name, cmd.Name, cmd.Description)
	} else {
		fmt.Fprintf(&sb, "%s %s\n\n", app.Name, cmd.Name)
	}

	sb.WriteString("USAGE:\n  ")
	sb.WriteString(app.Name)
	sb.WriteString(" ")
	sb.WriteString(cmd.Name)
	if len(cmd.Options) > 0 {
		sb.WriteString(" [options]")
	}
	for _, arg := range cmd.Args {
		switch {
		case arg.Variadic:
			fmt.Fprintf(&sb, " [...%s]", arg.Name)
		case arg.Required:
			fmt.Fprintf(&sb, " <%s>", arg.Name)
		default:
			fmt.Fprintf(&sb, " [%s]", arg.Name)
		}
	}
	sb.WriteString("\n")

	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&sb, "\nALIASES:\n  %s\n", strings.Join(cmd.Aliases, ", "))
	}

	if len(cmd.Args) > 0 {
		sb.WriteString("\nARGUMENTS:\n")
		width := 0
		for _, arg := range cmd.Args {
			if len(arg.Name) > width {
				width = len(arg.Name)
			}
		}
		for _, arg := range cmd.Args {
			desc := ""
			switch {
			case arg.Variadic:
				desc = "(variadic)"
			case !arg.Required && arg.Default != "":
				desc = fmt.Sprintf("(default %q)", arg.Default)
			case !arg.Required:
				desc = "(optional)"
			}
			writeEntry(&sb, arg.Name, desc, width)
		}
	}

	if len(cmd.Options) > 0 {
		sb.WriteString("\nOPTIONS:\n")
		writeOptions(&sb, cmd.Options)
	}
	app.writeGlobalOptions(&sb)
	return sb.String()
}

func (app *App) writeGlobalOptions(sb *strings.Builder) {
	globals := app.globalSpecs()
	if len(globals) == 0 {
		return
	}
	sb.WriteString("\nGLOBAL OPTIONS:\n")
	writeOptions(sb, globals)
}

func writeOptions(sb *strings.Builder, specs []OptionSpec) {
	labels := make([]string, len(specs))
	width := 0
	for i, spec := range specs {
		labels[i] = optionLabel(spec)
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}
	for i, spec := range specs {
		desc := spec.Description
		if spec.TakesValue && spec.Default != nil {
			desc = fmt.Sprintf("%s (default %v)", desc, spec.Default)
		}
		writeEntry(sb, labels[i], desc, width)
	}
}

func optionLabel(spec OptionSpec) string {
	var sb strings.Builder
	if spec.Short != "" {
		sb.WriteString("-")
		sb.WriteString(spec.Short)
		sb.WriteString(", ")
	} else {
		sb.WriteString("    ")
	}
	if spec.Negatable {
		sb.WriteString("--[no-]")
	} else {
		sb.WriteString("--")
	}
	sb.WriteString(spec.Long)
	if spec.TakesValue {
		sb.WriteString(" <value>")
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, left, right string, width int) {
	if right == "" {
		fmt.Fprintf(sb, "  %s\n", left)
		return
	}
	fmt.Fprintf(sb, "  %-*s  %s\n", width, left, right)
}
