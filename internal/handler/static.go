package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves a built single-page app from staticDir. Existing files are
// served as-is; any other path gets index.html so client-side routing works.
type SPAHandler struct {
	staticDir string
	basePath  string
	indexFile string
}

func NewSPAHandler(staticDir, basePath string) *SPAHandler {
	return &SPAHandler{
		staticDir: staticDir,
		basePath:  strings.TrimRight(basePath, "/"),
		indexFile: "index.html",
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := h.relPath(r.URL.Path)

	if rel == "/api" || strings.HasPrefix(rel, "/api/") {
		http.NotFound(w, r)
		return
	}

	if filePath, ok := h.file(rel); ok {
		http.ServeFile(w, r, filePath)
		return
	}

	indexPath := filepath.Join(h.staticDir, h.indexFile)
	if _, err := os.Stat(indexPath); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, indexPath)
}

func (h *SPAHandler) relPath(urlPath string) string {
	return path.Clean("/" + strings.TrimPrefix(urlPath, h.basePath))
}

// file resolves rel to an existing regular file under staticDir.
func (h *SPAHandler) file(rel string) (string, bool) {
	filePath := filepath.Join(h.staticDir, filepath.FromSlash(rel))
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return "", false
	}
	return filePath, true
}

// IsAsset reports whether urlPath names a bundled file such as a script,
// stylesheet or image. HTML documents are never assets.
func (h *SPAHandler) IsAsset(urlPath string) bool {
	rel := h.relPath(urlPath)
	if strings.EqualFold(path.Ext(rel), ".html") || strings.EqualFold(path.Ext(rel), ".htm") {
		return false
	}
	_, ok := h.file(rel)
	return ok
}

// PublicAssets lets requests for existing assets bypass gate; pages still go
// through it.
func (h *SPAHandler) PublicAssets(gate func(http.Handler) http.Handler) http.Handler {
	gated := gate(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.IsAsset(r.URL.Path) {
			h.ServeHTTP(w, r)
			return
		}
		gated.ServeHTTP(w, r)
	})
}

func StaticFileServer(staticDir, basePath string) http.Handler {
	return NewSPAHandler(staticDir, basePath)
}
