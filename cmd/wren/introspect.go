// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wrenlet/wren/pkg/wren"
)

// commandInfo is the serializable view of one registered command.
type commandInfo struct {
	Name        string       `json:"name" yaml:"name"`
	Namespace   string       `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Aliases     []string     `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Args        []argInfo    `json:"args,omitempty" yaml:"args,omitempty"`
	Options     []optionInfo `json:"options,omitempty" yaml:"options,omitempty"`
	Hidden      bool         `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

type argInfo struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required" yaml:"required"`
	Variadic bool   `json:"variadic,omitempty" yaml:"variadic,omitempty"`
}

type optionInfo struct {
	Long       string `json:"long" yaml:"long"`
	Short      string `json:"short,omitempty" yaml:"short,omitempty"`
	TakesValue bool   `json:"takesValue,omitempty" yaml:"takesValue,omitempty"`
	Default    any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// registerIntrospection adds the hidden "commands" command, dumping the
// registry as YAML (default) or JSON.
func registerIntrospection(app *wren.App) {
	app.MustCommand("commands", "Dump the command registry").
		Hidden().
		Option("--format <fmt>", "Output format: yaml or json", wren.WithDefault("yaml")).
		Action(func(ctx context.Context, ec *wren.Context) error {
			infos := make([]commandInfo, 0, len(app.Commands()))
			for _, cmd := range app.Commands() {
				info := commandInfo{
					Name:        cmd.Name,
					Namespace:   cmd.Namespace(),
					Aliases:     cmd.Aliases,
					Description: cmd.Description,
					Hidden:      cmd.Hidden(),
				}
				for _, arg := range cmd.Args {
					info.Args = append(info.Args, argInfo{Name: arg.Name, Required: arg.Required, Variadic: arg.Variadic})
				}
				for _, opt := range cmd.Options {
					info.Options = append(info.Options, optionInfo{Long: opt.Long, Short: opt.Short, TakesValue: opt.TakesValue, Default: opt.Default})
				}
				infos = append(infos, info)
			}
			switch format := ec.String("format"); format {
			case "yaml":
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(infos)
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		})
}
