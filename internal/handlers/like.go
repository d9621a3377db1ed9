package handlers

//go:generate mockgen -source=like.go -destination=like_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/services"
)

// LikeToggler flips the current user's like on an article.
type LikeToggler interface {
	ToggleLike(ctx context.Context, userID, articleID int64) (bool, int64, error)
}

// LikeResponse reports the like state after a toggle
// swagger:model LikeResponse
type LikeResponse struct {
	// example: true
	Liked bool `json:"liked"`

	// example: 4
	LikeCount int64 `json:"like_count"`
}

// NewLikeHandler returns an HTTP handler that toggles a like.
// @Summary Toggle like
// @Description Likes the article, or removes the like when the user already liked it
// @Tags articles
// @Produce json
// @Security SessionCookie
// @Param id path int true "Article ID"
// @Success 200 {object} handlers.LikeResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "Article not found"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles/{id}/like [post]
func NewLikeHandler(svc LikeToggler) http.HandlerFunc {
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

		liked, count, err := svc.ToggleLike(r.Context(), userID, id)
		if err != nil {
			if errors.Is(err, services.ErrArticleNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LikeResponse{Liked: liked, LikeCount: count})
	}
}
