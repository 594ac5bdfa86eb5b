// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"context"
	"strings"
	"time"
)

// Invocation is the result of resolving raw argument tokens: the bound
// command, its positional argument values, the coerced option map
// (including injected globals), and any passthrough tokens.
type Invocation struct {
	Command *Command
	// Args holds the bound positional tokens in left-to-right binding
	// order, including the variadic tail.
	Args []string
	// Options maps canonical long option names to coerced values.
	Options map[string]any
	// Rest holds tokens after a "--" separator and, for passthrough
	// commands, unrecognized option tokens.
	Rest []string
	// Globals is the resolved state of the enabled global switches.
	Globals GlobalState

	named    map[string]string
	variadic []string
	grouping bool // namespace node resolved without an exact command match
}

// Arg returns the value bound to the named argument slot.
func (inv *Invocation) Arg(name string) (string, bool) {
	v, ok := inv.named[name]
	return v, ok
}

// Variadic returns the tokens absorbed by the variadic argument slot.
func (inv *Invocation) Variadic() []string { return inv.variadic }

// Option returns the coerced value of the named option.
func (inv *Invocation) Option(name string) (any, bool) {
	v, ok := inv.Options[name]
	return v, ok
}

// Bool returns the named option as a bool, or false.
func (inv *Invocation) Bool(name string) bool {
	v, _ := inv.Options[name].(bool)
	return v
}

// String returns the named option as a string, or "".
func (inv *Invocation) String(name string) string {
	v, _ := inv.Options[name].(string)
	return v
}

// Int returns the named option as an int, or 0.
func (inv *Invocation) Int(name string) int {
	v, _ := inv.Options[name].(int)
	return v
}

// Float64 returns the named option as a float64, or 0.
func (inv *Invocation) Float64(name string) float64 {
	v, _ := inv.Options[name].(float64)
	return v
}

// Duration returns the named option as a time.Duration, or 0.
func (inv *Invocation) Duration(name string) time.Duration {
	v, _ := inv.Options[name].(time.Duration)
	return v
}

// RunConfig controls whether Run performs resolution only (for
// inspection and testing) or full execution.
type RunConfig struct {
	Run bool
}

// Run resolves argv and, when cfg.Run is set, executes the resulting
// invocation. Registration errors take precedence over everything else.
func (app *App) Run(ctx context.Context, argv []string, cfg RunConfig) error {
	if app.regErr != nil {
		return app.regErr
	}
	inv, err := app.Resolve(argv)
	if err != nil {
		return err
	}
	if !cfg.Run {
		return nil
	}
	return app.Execute(ctx, inv)
}

// Resolve turns raw tokens into a bound invocation. The first non-flag
// token is the candidate command name; an exact literal or alias match
// wins. With no exact match, a near-miss suggestion (edit distance <= 2,
// strictly better than the runner-up) is attached to the error. The
// suggestion is reported, never executed. With no candidate at all the
// implicit root command is resolved.
func (app *App) Resolve(tokens []string) (*Invocation, error) {
	app.seal()

	cmdIdx := -1
	for i, tok := range tokens {
		if tok == "--" {
			break
		}
		if !isFlagToken(tok) {
			cmdIdx = i
			break
		}
	}

	var (
		cmd      *Command
		grouping bool
		rest     []string
	)
	if cmdIdx == -1 {
		cmd = app.root
		rest = tokens
	} else {
		candidate := tokens[cmdIdx]
		var ok bool
		cmd, ok = app.ResolveExact(candidate)
		if !ok {
			if children := app.namespaceChildren(candidate); len(children) > 0 {
				cmd = &Command{Name: candidate, sealed: true}
				grouping = true
			} else {
				return nil, &UnknownCommandError{Name: candidate, Suggestion: app.suggest(candidate)}
			}
		}
		rest = make([]string, 0, len(tokens)-1)
		rest = append(rest, tokens[:cmdIdx]...)
		rest = append(rest, tokens[cmdIdx+1:]...)
	}

	inv, err := app.bind(cmd, rest)
	if err != nil {
		return nil, err
	}
	inv.grouping = grouping
	app.lastGlobals = inv.Globals
	app.applyDebugLevel(inv.Globals)
	return inv, nil
}

// bind splits the remaining tokens into option and positional tokens,
// coerces option values against the command's effective option set
// (declared options plus enabled globals), and binds positionals to the
// command's argument slots left to right.
func (app *App) bind(cmd *Command, tokens []string) (*Invocation, error) {
	specs := app.effectiveOptions(cmd)
	inv := &Invocation{
		Command: cmd,
		Options: make(map[string]any),
		named:   make(map[string]string),
	}

	var positional []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok == "--" {
			inv.Rest = append(inv.Rest, tokens[i+1:]...)
			break
		}
		if !isFlagToken(tok) {
			positional = append(positional, tok)
			continue
		}

		name, value, hasValue := splitFlagToken(tok)
		spec, ok := lookupOption(specs, name)

		// --no-<long> form for negatable booleans.
		if !ok && strings.HasPrefix(name, "no-") {
			if neg, negOK := lookupOption(specs, strings.TrimPrefix(name, "no-")); negOK && neg.Negatable {
				inv.Options[neg.Long] = false
				continue
			}
		}
		if !ok {
			if cmd.passthrough {
				inv.Rest = append(inv.Rest, tok)
				continue
			}
			return nil, &UnknownOptionError{Command: cmd.Name, Option: tok}
		}

		if !spec.TakesValue {
			if hasValue {
				b, err := coerce(KindBool, value)
				if err != nil {
					return nil, &InvalidOptionValueError{Command: cmd.Name, Option: spec.Long, Value: value, Err: err}
				}
				inv.Options[spec.Long] = b
			} else {
				inv.Options[spec.Long] = true
			}
			continue
		}

		if !hasValue {
			// Consume the next token unless it looks like a flag.
			if i+1 < len(tokens) && !isFlagToken(tokens[i+1]) {
				value = tokens[i+1]
				i++
			} else {
				return nil, &InvalidOptionValueError{Command: cmd.Name, Option: spec.Long}
			}
		}
		v, err := coerce(spec.Kind, value)
		if err != nil {
			return nil, &InvalidOptionValueError{Command: cmd.Name, Option: spec.Long, Value: value, Err: err}
		}
		inv.Options[spec.Long] = v
	}

	// Fill defaults for options that were not set.
	for i := range specs {
		spec := &specs[i]
		if _, set := inv.Options[spec.Long]; set {
			continue
		}
		if spec.Default != nil {
			inv.Options[spec.Long] = spec.Default
		}
	}

	if err := bindArgs(cmd, inv, positional); err != nil {
		return nil, err
	}

	inv.Globals = globalState(specs, inv.Options)
	return inv, nil
}

func bindArgs(cmd *Command, inv *Invocation, positional []string) error {
	idx := 0
	for _, spec := range cmd.Args {
		if spec.Variadic {
			tail := positional[idx:]
			inv.variadic = append(inv.variadic, tail...)
			inv.Args = append(inv.Args, tail...)
			idx = len(positional)
			continue
		}
		if idx < len(positional) {
			inv.named[spec.Name] = positional[idx]
			inv.Args = append(inv.Args, positional[idx])
			idx++
			continue
		}
		if spec.Required {
			return &MissingArgumentError{Command: cmd.Name, Argument: spec.Name}
		}
		if spec.Default != "" {
			inv.named[spec.Name] = spec.Default
		}
	}
	if idx < len(positional) {
		return &UnexpectedArgError{Command: cmd.Name, Token: positional[idx]}
	}
	return nil
}

// effectiveOptions merges the command's declared options with the
// enabled global switches. The merge happens per resolution, never at
// registration, so commands defined before or after enabling a global
// behave identically. A command-declared option shadows the global of
// the same long name.
func (app *App) effectiveOptions(cmd *Command) []OptionSpec {
	specs := make([]OptionSpec, 0, len(cmd.Options)+4)
	specs = append(specs, cmd.Options...)
	for _, g := range app.globalSpecs() {
		if _, taken := cmd.option(g.Long); taken {
			continue
		}
		specs = append(specs, g)
	}
	return specs
}

func lookupOption(specs []OptionSpec, name string) (*OptionSpec, bool) {
	for i := range specs {
		if specs[i].Long == name || (len(name) == 1 && specs[i].Short == name) {
			return &specs[i], true
		}
	}
	return nil, false
}

// isFlagToken reports whether tok should be treated as an option token.
// A lone "-" and negative numbers are positional.
func isFlagToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	return !isNumeric(tok)
}

// isNumeric reports whether s parses as a (possibly signed) number, so
// that "-10" or "-3.14" is not mistaken for a flag.
func isNumeric(s string) bool {
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit, hasDot := false, false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}

// splitFlagToken strips dashes and splits an inline "=value" if present.
func splitFlagToken(tok string) (name, value string, hasValue bool) {
	name = strings.TrimLeft(tok, "-")
	if idx := strings.Index(name, "="); idx > 0 {
		return name[:idx], name[idx+1:], true
	}
	return name, "", false
}
