package handlers

//go:generate mockgen -source=article_get.go -destination=article_get_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
)

// ArticleGetter fetches a single article.
type ArticleGetter interface {
	Get(ctx context.Context, id int64, viewerID *int64) (*models.Article, error)
}

// NewArticleGetHandler returns an HTTP handler for a single article.
// @Summary Get article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "Article not found"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles/{id} [get]
func NewArticleGetHandler(svc ArticleGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var viewerID *int64
		if viewer, ok := middlewares.UserIDFromContext(r.Context()); ok {
			viewerID = &viewer
		}

		article, err := svc.Get(r.Context(), id, viewerID)
		if err != nil {
			if errors.Is(err, services.ErrArticleNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, article)
	}
}
