// Package web embeds the built dashboard assets.
package web

import "embed"

// Assets holds the dashboard pages under dist/.
//
//go:embed dist
var Assets embed.FS
