package server

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// serveStatic serves files from the embedded static directory.
// Fingerprinted names resolve through the manifest and are immutable;
// plain names are revalidated hourly, or never cached in dev mode.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" || name == "." || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	if source, ok := s.manifest.Reverse(name); ok {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeFileFS(w, r, s.static, source)
		return
	}

	if s.cfg.Server.Dev {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
	http.ServeFileFS(w, r, s.static, name)
}
