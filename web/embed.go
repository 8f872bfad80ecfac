// Package web holds the browser client served at "/".
package web

import "embed"

//go:embed static
var Static embed.FS
