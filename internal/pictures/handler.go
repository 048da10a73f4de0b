// Package pictures serves a local directory of static images: a name listing
// and direct downloads.
package pictures

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/coverbox/service/internal/response"
)

var pictureExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

// Handler serves the static pictures directory.
type Handler struct {
	dir string
}

// NewHandler creates a pictures Handler rooted at dir.
func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

// List godoc
//
//	@Summary	List the static picture files
//	@Tags		pictures
//	@Produce	json
//	@Success	200	{object}	response.Envelope
//	@Failure	400	{object}	response.Envelope
//	@Router		/pictures/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		response.BadRequest(w, "pictures directory not found")
		return
	}

	pictures := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pictureExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			pictures = append(pictures, entry.Name())
		}
	}

	response.OK(w, map[string]interface{}{
		"pictures": pictures,
		"total":    len(pictures),
	})
}

// Download godoc
//
//	@Summary	Download a static picture as an attachment
//	@Tags		pictures
//	@Param		name	path	string	true	"picture file name (URL-encoded)"
//	@Success	200
//	@Failure	403
//	@Failure	404
//	@Router		/pictures/{name} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	base, err := filepath.Abs(h.dir)
	if err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	path, err := filepath.Abs(filepath.Join(h.dir, name))
	if err != nil || !strings.HasPrefix(path, base+string(filepath.Separator)) {
		// requested path escapes the pictures directory
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
