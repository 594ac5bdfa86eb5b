// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

var prefsFile = filepath.Join(os.Getenv("HOME"), ".wren", "prefs.toml")

var loadedPrefs prefs

type prefs struct {
	DatabaseDSN   string `toml:"database_dsn"`
	HelpTTL       int    `toml:"help_ttl_seconds"`
	NoSuggestions bool   `toml:"no_suggestions"`
}

func init() {
	if err := loadedPrefs.load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load preferences: %v", err)
		}
	}
	if dsn := os.Getenv("WREN_DATABASE_DSN"); dsn != "" {
		loadedPrefs.DatabaseDSN = dsn
	}
	if ttl := os.Getenv("WREN_HELP_TTL"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil {
			loadedPrefs.HelpTTL = n
		}
	}
	if os.Getenv("WREN_NO_SUGGESTIONS") != "" {
		loadedPrefs.NoSuggestions = true
	}
}

func (p *prefs) load() error {
	_, err := toml.DecodeFile(prefsFile, p)
	return err
}

func (p *prefs) save() error {
	if err := os.MkdirAll(filepath.Dir(prefsFile), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(prefsFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}
