// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wren

import "github.com/agext/levenshtein"

// maxSuggestDistance is the largest edit distance still considered a
// plausible typo.
const maxSuggestDistance = 2

// suggest returns the single best near-miss for an unknown command
// name, or "". A candidate qualifies only when its edit distance is at
// most maxSuggestDistance and strictly smaller than every other
// candidate's, so ambiguous typos produce no suggestion.
func (app *App) suggest(input string) string {
	if app.noSuggestions {
		return ""
	}
	best, runnerUp := maxSuggestDistance+1, maxSuggestDistance+1
	var match string
	consider := func(name string) {
		d := levenshtein.Distance(input, name, nil)
		switch {
		case d < best:
			runnerUp = best
			best = d
			match = name
		case d < runnerUp:
			runnerUp = d
		}
	}
	for _, cmd := range app.commands {
		consider(cmd.Name)
		for _, alias := range cmd.Aliases {
			consider(alias)
		}
	}
	if best > maxSuggestDistance || best >= runnerUp {
		return ""
	}
	return match
}
