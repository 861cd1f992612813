// Package web embeds the HTML templates and public assets served by the
// HTTP handler.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed templates
var templates embed.FS

//go:embed public
var public embed.FS

// Templates returns the template tree rooted at templates/.
func Templates() (fs.FS, error) {
	fsys, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}
	return fsys, nil
}

// Static returns a file server for the public assets. It expects the
// request path to be relative to the public root, so mount it behind
// http.StripPrefix.
func Static() (http.Handler, error) {
	fsys, err := fs.Sub(public, "public")
	if err != nil {
		return nil, fmt.Errorf("loading embedded public assets: %w", err)
	}
	return http.FileServer(http.FS(fsys)), nil
}
