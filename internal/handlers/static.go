package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gibbs-towing/fleetsite/internal/site"
)

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	// The admin surface is only reachable through its obscure path.
	if r.URL.Path == site.AdminPath {
		w.Header().Set("Content-Type", "text/html")
		http.ServeFile(w, r, filepath.Join(h.staticDir, "admin.html"))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		path = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}
	if path == "admin.html" {
		http.NotFound(w, r)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(path, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(path, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(path, ".html"):
		w.Header().Set("Content-Type", "text/html")
	case strings.HasSuffix(path, ".json"):
		w.Header().Set("Content-Type", "application/json")
	}

	http.ServeFile(w, r, filepath.Join(h.staticDir, filepath.FromSlash(path)))
}
