package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbilibin2017/geo-articles/internal/models"
)

// multipartMemory is the part of a multipart body kept in memory; the rest spills to disk.
const multipartMemory = 8 << 20

// formOverhead is allowed on top of the image limit for the text fields.
const formOverhead = 1 << 20

// ArticleRequest holds the fields of an article create or update request.
// Over multipart/form-data tags are a comma separated list and the image
// travels in the "image" part.
// swagger:model ArticleRequest
type ArticleRequest struct {
	// example: Sunset over the bay
	Title *string `json:"title"`

	// example: The light was amazing tonight.
	Content *string `json:"content"`

	// example: 48.8566
	Latitude *float64 `json:"latitude"`

	// example: 2.3522
	Longitude *float64 `json:"longitude"`

	// example: ["travel","sunset"]
	Tags *[]string `json:"tags"`
}

// parseArticleRequest reads a JSON or form encoded article request. The
// returned image is nil when no file was sent; the caller closes it.
func parseArticleRequest(w http.ResponseWriter, r *http.Request, maxImageBytes int64) (*ArticleRequest, io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+formOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, nil, errors.New("invalid request body")
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, nil, errors.New("request body too large")
			}
			return nil, nil, errors.New("invalid form body")
		}
		if err := r.ParseForm(); err != nil {
			return nil, nil, errors.New("invalid form body")
		}
	}

	req, err := articleRequestFromForm(r)
	if err != nil {
		return nil, nil, err
	}

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		return req, file, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, nil, nil
	default:
		return nil, nil, errors.New("invalid image part")
	}
}

func articleRequestFromForm(r *http.Request) (*ArticleRequest, error) {
	var req ArticleRequest

	if v, ok := formValue(r, "title"); ok {
		req.Title = &v
	}
	if v, ok := formValue(r, "content"); ok {
		req.Content = &v
	}
	if v, ok := formValue(r, "tags"); ok {
		tags := models.SplitTags(v)
		req.Tags = &tags
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"latitude", &req.Latitude},
		{"longitude", &req.Longitude},
	} {
		v, ok := formValue(r, f.name)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.name)
		}
		*f.dst = &n
	}

	return &req, nil
}

// formValue reports the value of key and whether the client sent it at all.
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
