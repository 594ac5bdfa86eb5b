// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/wrenlet/wren/pkg/render"
	"github.com/wrenlet/wren/pkg/wren"
)

// registerVersion adds the version command. --check tests the binary
// version against a semver constraint, useful in scripts that gate on a
// minimum version.
func registerVersion(app *wren.App, out *render.Renderer) {
	app.MustCommand("version", "Print the version").
		Option("--check <constraint>", "Exit non-zero unless the version satisfies the constraint").
		Action(func(ctx context.Context, ec *wren.Context) error {
			constraint := ec.String("check")
			if constraint == "" {
				out.Line("%s %s", app.Name, app.Version)
				return nil
			}
			c, err := semver.NewConstraint(constraint)
			if err != nil {
				return fmt.Errorf("bad constraint %q: %w", constraint, err)
			}
			v, err := semver.NewVersion(app.Version)
			if err != nil {
				return fmt.Errorf("bad version %q: %w", app.Version, err)
			}
			if !c.Check(v) {
				return fmt.Errorf("version %s does not satisfy %q", app.Version, constraint)
			}
			out.Line("%s satisfies %q", app.Version, constraint)
			return nil
		})
}
