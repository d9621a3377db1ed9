package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NewStaticHandler serves the front-end bundle from publicDir. Paths that
// do not name a file fall back to index.html so client side routes resolve.
// API paths never fall back.
func NewStaticHandler(publicDir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(publicDir))
	index := filepath.Join(publicDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}

		name := filepath.Join(publicDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(name)
		switch {
		case err == nil && !info.IsDir():
			files.ServeHTTP(w, r)
			return
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			writeInternalError(w, err)
			return
		}

		f, err := os.Open(index)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err = f.Stat()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		http.ServeContent(w, r, "index.html", info.ModTime(), f)
	}
}
