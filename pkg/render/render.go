// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render writes user-facing CLI output: help text, errors and
// status lines, with color when the destination is a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Renderer writes formatted output to a single destination.
type Renderer struct {
	out   io.Writer
	color bool

	section *color.Color
	errc    *color.Color
	dim     *color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces color on or off, overriding terminal detection.
func WithColor(enabled bool) Option {
	return func(r *Renderer) { r.color = enabled }
}

// New creates a renderer for out. Color is enabled when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:   out,
		color: isTerminal(out) && os.Getenv("NO_COLOR") == "",
	}
	for _, opt := range opts {
		opt(r)
	}
	r.section = color.New(color.Bold)
	r.errc = color.New(color.FgRed, color.Bold)
	r.dim = color.New(color.Faint)
	if r.color {
		// Override the package-level TTY detection; the renderer already
		// decided.
		r.section.EnableColor()
		r.errc.EnableColor()
		r.dim.EnableColor()
	}
	return r
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Help writes rendered help text, bolding section headers (lines that
// end with a colon) when color is on.
func (r *Renderer) Help(text string) {
	if !r.color {
		fmt.Fprint(r.out, text)
		return
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSuffix(line, "\n")
		if trimmed != "" && strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(trimmed, " ") {
			r.section.Fprint(r.out, trimmed)
			if strings.HasSuffix(line, "\n") {
				fmt.Fprintln(r.out)
			}
			continue
		}
		fmt.Fprint(r.out, line)
	}
}

// Error writes an error line, prefixed and colored red on a terminal.
func (r *Renderer) Error(err error) {
	if r.color {
		r.errc.Fprint(r.out, "error: ")
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "error: %v\n", err)
}

// Hint writes a dimmed hint line, e.g. a did-you-mean suggestion.
func (r *Renderer) Hint(format string, args ...any) {
	if r.color {
		r.dim.Fprintf(r.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Line writes a plain output line.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
