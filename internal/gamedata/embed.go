// Package gamedata provides embedded tuning data and floor layouts,
// plus utilities for loading them.
package gamedata

import "embed"

// dataFS embeds the JSON tuning files and text layouts from this
// directory at build time.
//
//go:embed *.json *.txt
var dataFS embed.FS
