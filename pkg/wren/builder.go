// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

// Builder accumulates a command's options, handlers and aliases through
// fluent chained calls. The underlying descriptor is sealed when the app
// first resolves or executes; mutating a sealed command panics.
type Builder struct {
	app    *App
	cmd    *Command
	broken bool // registration already failed; swallow further calls
}

// OptionOpt customizes a declared option.
type OptionOpt func(*OptionSpec)

// WithDefault sets the option's default value. The value must match the
// option's kind (string by default).
func WithDefault(v any) OptionOpt {
	return func(spec *OptionSpec) { spec.Default = v }
}

// WithKind declares a coercion type hint for a value-taking option.
func WithKind(kind ValueKind) OptionOpt {
	return func(spec *OptionSpec) { spec.Kind = kind }
}

// Option declares an option from a flag definition string, e.g.
// "-o, --output <file>" or "--no-cache". Malformed flags and duplicate
// names are registration errors.
func (b *Builder) Option(flag, description string, opts ...OptionOpt) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	spec, err := ParseOptionFlag(flag)
	if err != nil {
		b.app.fail(err)
		return b
	}
	spec.Description = description
	for _, opt := range opts {
		opt(&spec)
	}
	for _, existing := range b.cmd.Options {
		if existing.Long == spec.Long {
			b.app.fail(&GrammarError{Pattern: flag, Reason: "option --" + spec.Long + " declared twice"})
			return b
		}
		if spec.Short != "" && existing.Short == spec.Short {
			b.app.fail(&GrammarError{Pattern: flag, Reason: "short flag -" + spec.Short + " declared twice"})
			return b
		}
	}
	b.cmd.Options = append(b.cmd.Options, spec)
	return b
}

// ArgDefault sets the default value of an optional argument slot.
func (b *Builder) ArgDefault(name, value string) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	for i := range b.cmd.Args {
		if b.cmd.Args[i].Name != name {
			continue
		}
		if b.cmd.Args[i].Required || b.cmd.Args[i].Variadic {
			b.app.fail(&GrammarError{Pattern: name, Reason: "only optional arguments take defaults"})
			return b
		}
		b.cmd.Args[i].Default = value
		return b
	}
	b.app.fail(&GrammarError{Pattern: name, Reason: "no such argument"})
	return b
}

// Action sets the command's single action handler.
func (b *Builder) Action(fn Hook) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.action = fn
	return b
}

// Before appends a hook that runs before the middleware chain, in
// registration order.
func (b *Builder) Before(fn Hook) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.before = append(b.cmd.before, fn)
	return b
}

// After appends a hook that runs after a successful action, in
// registration order. After hooks do not run when the pipeline fails.
func (b *Builder) After(fn Hook) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.after = append(b.cmd.after, fn)
	return b
}

// Use appends a middleware to the onion chain.
func (b *Builder) Use(fn Middleware) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.middlewares = append(b.cmd.middlewares, fn)
	return b
}

// Alias registers an alternative name for the command.
func (b *Builder) Alias(name string) *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	if _, exists := b.app.byName[name]; exists {
		b.app.fail(&DuplicateCommandError{Name: name})
		return b
	}
	if _, exists := b.app.byAlias[name]; exists {
		b.app.fail(&DuplicateCommandError{Name: name})
		return b
	}
	b.cmd.Aliases = append(b.cmd.Aliases, name)
	b.app.byAlias[name] = b.cmd
	return b
}

// AllowPassthrough lets unrecognized option tokens flow into the
// invocation's Rest instead of failing resolution.
func (b *Builder) AllowPassthrough() *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.passthrough = true
	return b
}

// Hidden excludes the command from help listings; it still resolves and
// executes normally.
func (b *Builder) Hidden() *Builder {
	if b.broken {
		return b
	}
	b.mutable()
	b.cmd.hidden = true
	return b
}

func (b *Builder) mutable() {
	if b.cmd.sealed {
		panic("wren: command " + b.cmd.Name + " mutated after execution started")
	}
}
