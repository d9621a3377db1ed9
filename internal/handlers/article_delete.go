package handlers

//go:generate mockgen -source=article_delete.go -destination=article_delete_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/services"
)

// ArticleDeleter removes an owned article.
type ArticleDeleter interface {
	Delete(ctx context.Context, userID, articleID int64) error
}

// NewArticleDeleteHandler returns an HTTP handler that deletes an article.
// @Summary Delete article
// @Tags articles
// @Produce json
// @Security SessionCookie
// @Param id path int true "Article ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Unauthorized to delete this article"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles/{id} [delete]
func NewArticleDeleteHandler(svc ArticleDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, err := articleID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				writeError(w, http.StatusForbidden, "Unauthorized to delete this article")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Article deleted successfully"})
	}
}
