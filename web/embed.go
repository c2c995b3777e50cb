package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Pages returns the embedded client pages rooted at the static directory.
func Pages() fs.FS {
	sub, err := fs.Sub(staticFS, "static")

	if err != nil {
		// embed contents are fixed at compile time; this cannot fail at runtime
		panic(err)
	}

	return sub
}
