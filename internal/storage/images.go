// Package storage keeps uploaded article images on the local filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sbilibin2017/geo-articles/internal/logger"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// URLPrefix is the public path uploaded images are served under.
	URLPrefix = "/uploads/"

	// DefaultMaxUploadSizeMB caps a single upload when no limit is configured.
	DefaultMaxUploadSizeMB = 10

	maxNameAttempts = 100
)

var (
	ErrInvalidImage  = errors.New("uploaded file is not a supported image")
	ErrImageTooLarge = errors.New("uploaded image is too large")
	ErrInvalidURL    = errors.New("not an uploaded image url")
)

// extensions maps a decoded image format to the stored file extension.
var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// ImageStore writes validated images into dir.
type ImageStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewImageStore creates the uploads directory under publicDir if needed.
func NewImageStore(publicDir string, maxUploadSizeMB int) (*ImageStore, error) {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}

	dir := filepath.Join(publicDir, strings.Trim(URLPrefix, "/"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &ImageStore{
		dir:      dir,
		maxBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		now:      time.Now,
	}, nil
}

// Dir returns the directory images are written to.
func (s *ImageStore) Dir() string {
	return s.dir
}

// MaxBytes returns the largest accepted upload.
func (s *ImageStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save checks that r holds a JPEG, PNG, GIF or WebP image, stores it as
// <unix-millis><ext> and returns its public URL.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	ext, ok := extensions[format]
	if !ok {
		return "", ErrInvalidImage
	}

	f, name, err := s.create(ext)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("close upload: %w", err)
	}

	logger.Log.Infow("image stored", "name", name, "format", format, "size", len(data))
	return URLPrefix + name, nil
}

// create opens a new file named after the current time, adding a numeric
// suffix when another upload took the same millisecond.
func (s *ImageStore) create(ext string) (*os.File, string, error) {
	stamp := s.now().UnixMilli()
	for i := 0; i < maxNameAttempts; i++ {
		name := fmt.Sprintf("%d%s", stamp, ext)
		if i > 0 {
			name = fmt.Sprintf("%d-%d%s", stamp, i, ext)
		}

		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create upload file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create upload file: no free name for %d%s", stamp, ext)
}

// Remove deletes the image behind a URL returned by Save. A missing file is not an error.
func (s *ImageStore) Remove(url string) error {
	name, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return ErrInvalidURL
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	logger.Log.Infow("image removed", "name", name)
	return nil
}
