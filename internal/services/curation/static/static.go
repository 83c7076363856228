package static

import "embed"

// FS exposes the stylesheet for HTTP serving.
//
//go:embed *.css
var FS embed.FS
