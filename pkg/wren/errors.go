// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"errors"
	"fmt"
)

// Exit codes for mapping framework errors to process exit status.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Phase identifies the pipeline phase a handler error occurred in.
type Phase string

const (
	PhaseBefore     Phase = "before"
	PhaseMiddleware Phase = "middleware"
	PhaseAction     Phase = "action"
	PhaseAfter      Phase = "after"
)

// GrammarError is returned when a command pattern or flag definition is
// malformed. It surfaces at registration time, never at invocation time.
type GrammarError struct {
	Pattern string // the offending pattern or flag string
	Reason  string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}

// DuplicateCommandError is returned when a command name or alias is
// registered twice.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// UnknownCommandError is returned when no registered command matches the
// candidate name. Suggestion carries at most one near-miss; it is never
// executed automatically.
type UnknownCommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command: %s (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// UnknownOptionError is returned when an option token does not match any
// declared or global option and the command does not allow passthrough.
type UnknownOptionError struct {
	Command string
	Option  string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option for %q: %s", e.Command, e.Option)
}

// MissingArgumentError names the first required argument slot left
// unfilled by the positional tokens.
type MissingArgumentError struct {
	Command  string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%q requires argument <%s>", e.Command, e.Argument)
}

// UnexpectedArgError is returned when positional tokens remain after all
// argument slots are bound and the command declares no variadic capture.
type UnexpectedArgError struct {
	Command string
	Token   string
}

func (e *UnexpectedArgError) Error() string {
	return fmt.Sprintf("%q does not accept argument %q", e.Command, e.Token)
}

// InvalidOptionValueError is returned when a value-taking option is given
// no value, or a value that cannot be coerced to the declared type.
type InvalidOptionValueError struct {
	Command string
	Option  string
	Value   string
	Err     error
}

func (e *InvalidOptionValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value for --%s: %v", e.Option, e.Err)
	}
	if e.Value == "" {
		return fmt.Sprintf("option --%s requires a value", e.Option)
	}
	return fmt.Sprintf("invalid value %q for --%s", e.Value, e.Option)
}

func (e *InvalidOptionValueError) Unwrap() error { return e.Err }

// HandlerError wraps a failure from a user-supplied hook, middleware or
// action, tagged with the command and pipeline phase it occurred in.
type HandlerError struct {
	Command string
	Phase   Phase
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %s handler failed: %v", e.Command, e.Phase, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// HelpRequested is returned by Execute when a grouping command (a
// namespace node with children but no action) is invoked bare. Text
// holds the rendered help; the caller decides how to display it.
// ExitCode maps it to success.
type HelpRequested struct {
	Command string
	Text    string
}

func (e *HelpRequested) Error() string {
	return fmt.Sprintf("help requested for %q", e.Command)
}

// ExitCode maps an error returned by Resolve, Execute or Run to a
// conventional process exit code: 0 success, 2 usage/parsing error,
// 1 anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var help *HelpRequested
	if errors.As(err, &help) {
		return ExitSuccess
	}
	var (
		unknownCmd *UnknownCommandError
		unknownOpt *UnknownOptionError
		missingArg *MissingArgumentError
		extraArg   *UnexpectedArgError
		badValue   *InvalidOptionValueError
	)
	switch {
	case errors.As(err, &unknownCmd),
		errors.As(err, &unknownOpt),
		errors.As(err, &missingArg),
		errors.As(err, &extraArg),
		errors.As(err, &badValue):
		return ExitUsage
	}
	return ExitFailure
}
