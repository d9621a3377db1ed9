package handlers

//go:generate mockgen -source=tags.go -destination=tags_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/models"
)

// TagsLister returns every known tag.
type TagsLister interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// NewTagsHandler returns an HTTP handler listing all tags.
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 500 {object} handlers.ErrorResponse
// @Router /tags [get]
func NewTagsHandler(svc TagsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := svc.ListTags(r.Context())
		if err != nil {
			writeInternalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tags)
	}
}
