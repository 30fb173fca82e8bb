// Package web embeds the browser front-end served under /static/.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
)

//go:embed static
var assets embed.FS

// FS returns the front-end files. A non-empty dir serves from disk instead
// of the embedded copy.
func FS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves the front-end with the /static/ prefix stripped.
func Handler(dir string) http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(FS(dir))))
}
