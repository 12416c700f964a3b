package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hongminglow/financas-be/internal/http/respond"
)

// fallback answers every path no route claimed. Unknown API paths get a
// JSON 404; everything else is served from the SPA directory, with
// index.html standing in for client-side routes.
func fallback(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dir == "" || strings.HasPrefix(r.URL.Path, "/api/") {
			respond.Error(w, http.StatusNotFound, "route not found")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(name); err != nil {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	})
}
