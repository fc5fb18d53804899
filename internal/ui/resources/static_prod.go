//go:build !dev

package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

// IsDev is false in release builds.
const IsDev = false

//go:embed static/*
var staticFS embed.FS

// Dir is empty in release builds; embedded assets cannot change.
func Dir() string {
	return ""
}

// Handler serves the embedded static files.
func Handler() http.Handler {
	fsys, _ := fs.Sub(staticFS, "static")
	fileServer := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.StripPrefix("/static/", fileServer).ServeHTTP(w, r)
	})
}
