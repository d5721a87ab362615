package server

import (
	"net/http"
	"path/filepath"
)

// staticHandler serves the operator UI from webDir. Extensionless page paths
// map onto their .html files so bookmarks like /draw keep working. The pages
// are served directly rather than via a path rewrite, which would trip
// FileServer's index.html redirect.
func (s *BingoServer) staticHandler() http.Handler {
	if s.webDir == "" {
		return http.NotFoundHandler()
	}
	fs := http.FileServer(http.Dir(s.webDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.ServeFile(w, r, filepath.Join(s.webDir, "index.html"))
		case "/draw":
			http.ServeFile(w, r, filepath.Join(s.webDir, "draw.html"))
		default:
			fs.ServeHTTP(w, r)
		}
	})
}
