// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind is the declared coercion type of an option value. Values are
// left as strings unless a command declares a kind hint.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindDuration
)

// ArgSpec describes one positional argument slot of a command.
type ArgSpec struct {
	Name     string
	Required bool
	Variadic bool
	Default  string // only meaningful when not required
}

// OptionSpec describes one declared option of a command.
type OptionSpec struct {
	Long        string // canonical long name, without dashes
	Short       string // optional single-letter alias, without dash
	Description string
	TakesValue  bool
	Negatable   bool // boolean option supporting the --no-<long> form
	Kind        ValueKind
	Default     any
	global      bool // injected by the global flag controller
}

// ParsePattern parses a command pattern string into its literal name and
// ordered argument specs.
//
// Pattern syntax: a name token followed by any mix of <required>,
// [optional] and [...variadic] tokens, subject to: required before
// optional, at most one variadic, variadic last. Violations return a
// *GrammarError.
func ParsePattern(pattern string) (string, []ArgSpec, error) {
	fields := strings.Fields(pattern)
	if len(fields) == 0 {
		return "", nil, &GrammarError{Pattern: pattern, Reason: "empty pattern"}
	}
	name := fields[0]
	if strings.HasPrefix(name, "<") || strings.HasPrefix(name, "[") || strings.HasPrefix(name, "-") {
		return "", nil, &GrammarError{Pattern: pattern, Reason: "pattern must start with a command name"}
	}

	var (
		args         []ArgSpec
		seenOpt      bool
		seenVariadic bool
	)
	for _, tok := range fields[1:] {
		spec, err := parseArgToken(pattern, tok)
		if err != nil {
			return "", nil, err
		}
		if seenVariadic {
			return "", nil, &GrammarError{Pattern: pattern, Reason: "variadic argument must be last"}
		}
		if spec.Variadic {
			seenVariadic = true
		}
		if spec.Required && seenOpt {
			return "", nil, &GrammarError{Pattern: pattern, Reason: "required argument <" + spec.Name + "> follows an optional one"}
		}
		if !spec.Required {
			seenOpt = true
		}
		for _, prev := range args {
			if prev.Name == spec.Name {
				return "", nil, &GrammarError{Pattern: pattern, Reason: "duplicate argument name " + strconv.Quote(spec.Name)}
			}
		}
		args = append(args, spec)
	}
	return name, args, nil
}

func parseArgToken(pattern, tok string) (ArgSpec, error) {
	switch {
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
		name := tok[1 : len(tok)-1]
		if name == "" || strings.HasPrefix(name, "...") {
			return ArgSpec{}, &GrammarError{Pattern: pattern, Reason: "bad argument token " + strconv.Quote(tok)}
		}
		return ArgSpec{Name: name, Required: true}, nil
	case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
		name := tok[1 : len(tok)-1]
		if rest, ok := strings.CutPrefix(name, "..."); ok {
			if rest == "" {
				return ArgSpec{}, &GrammarError{Pattern: pattern, Reason: "bad argument token " + strconv.Quote(tok)}
			}
			return ArgSpec{Name: rest, Variadic: true}, nil
		}
		if name == "" {
			return ArgSpec{}, &GrammarError{Pattern: pattern, Reason: "bad argument token " + strconv.Quote(tok)}
		}
		return ArgSpec{Name: name}, nil
	default:
		return ArgSpec{}, &GrammarError{Pattern: pattern, Reason: "bad argument token " + strconv.Quote(tok)}
	}
}

// ParseOptionFlag parses a flag definition string into an OptionSpec.
//
// Accepted forms:
//
//	-l, --loud
//	--loud
//	--output <value>
//	--no-cache
//
// A flag with a <value> placeholder takes an argument; otherwise it is a
// boolean defaulting to false, or to true when declared with the --no-
// prefix (negatable).
func ParseOptionFlag(flag string) (OptionSpec, error) {
	var spec OptionSpec
	rest := strings.TrimSpace(flag)

	// Leading short alias: "-x, --long ..."
	if strings.HasPrefix(rest, "-") && !strings.HasPrefix(rest, "--") {
		short, tail, ok := strings.Cut(rest, ",")
		if !ok {
			return OptionSpec{}, &GrammarError{Pattern: flag, Reason: "short flag must be followed by a long form"}
		}
		short = strings.TrimPrefix(strings.TrimSpace(short), "-")
		if len(short) != 1 {
			return OptionSpec{}, &GrammarError{Pattern: flag, Reason: "short flag must be a single character"}
		}
		spec.Short = short
		rest = strings.TrimSpace(tail)
	}

	if !strings.HasPrefix(rest, "--") {
		return OptionSpec{}, &GrammarError{Pattern: flag, Reason: "missing long flag form"}
	}
	long := strings.TrimPrefix(rest, "--")

	// Value placeholder: "--output <file>"
	if name, placeholder, ok := strings.Cut(long, " "); ok {
		placeholder = strings.TrimSpace(placeholder)
		if !strings.HasPrefix(placeholder, "<") || !strings.HasSuffix(placeholder, ">") {
			return OptionSpec{}, &GrammarError{Pattern: flag, Reason: "value placeholder must be <name>"}
		}
		long = name
		spec.TakesValue = true
	}

	if stripped, ok := strings.CutPrefix(long, "no-"); ok && !spec.TakesValue {
		long = stripped
		spec.Negatable = true
		spec.Default = true
	}
	if long == "" || strings.ContainsAny(long, " =") {
		return OptionSpec{}, &GrammarError{Pattern: flag, Reason: "bad long flag name"}
	}

	spec.Long = long
	if spec.TakesValue {
		spec.Kind = KindString
	} else {
		spec.Kind = KindBool
		if spec.Default == nil {
			spec.Default = false
		}
	}
	return spec, nil
}

// coerce converts a raw string option value according to the declared
// kind. String values pass through untouched.
func coerce(kind ValueKind, raw string) (any, error) {
	switch kind {
	case KindBool:
		return strconv.ParseBool(raw)
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		return int(n), err
	case KindFloat:
		return strconv.ParseFloat(raw, 64)
	case KindDuration:
		return time.ParseDuration(raw)
	default:
		return raw, nil
	}
}
