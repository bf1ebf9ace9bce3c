package server

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

// DashboardHandler serves the embedded single-page dashboard.
//
// Existing static assets are served as files; every other path falls back to index.html
// so client-side routes and the ?session= / ?error= redirects land on the app.
type DashboardHandler struct {
	files fs.FS
	fs    http.Handler
}

func NewDashboardHandler() *DashboardHandler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return &DashboardHandler{files: sub, fs: http.FileServer(http.FS(sub))}
}

// Routes returns the catch-all pattern.
func (h *DashboardHandler) Routes() []string {
	return []string{"/"}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(http.MethodGet, r.Method) {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/")
	if name != "" && name != "index.html" {
		if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
			h.fs.ServeHTTP(w, r)
			return
		}
	}

	h.index(w, r)
}

func (h *DashboardHandler) index(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.files, "index.html")
	if err != nil {
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}
