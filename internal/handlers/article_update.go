package handlers

//go:generate mockgen -source=article_update.go -destination=article_update_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
)

// ArticleUpdater applies a partial update to an owned article.
type ArticleUpdater interface {
	Update(ctx context.Context, userID, articleID int64, patch models.ArticlePatch) error
}

// ArticleUpdateResponse confirms an update
// swagger:model ArticleUpdateResponse
type ArticleUpdateResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Article updated successfully
	Message string `json:"message"`
}

// NewArticleUpdateHandler returns an HTTP handler that updates an article.
// @Summary Update article
// @Description Partially updates an article owned by the current user. Only sent fields change; sending tags replaces the whole tag set and an empty value clears it.
// @Tags articles
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Article ID"
// @Param title formData string false "Title"
// @Param content formData string false "Content"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param tags formData string false "Comma separated tags"
// @Param image formData file false "Replacement image"
// @Success 200 {object} handlers.ArticleUpdateResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Unauthorized to edit this article"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles/{id} [put]
func NewArticleUpdateHandler(svc ArticleUpdater, images ImageSaver) http.HandlerFunc {
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

		req, image, err := parseArticleRequest(w, r, images.MaxBytes())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if image != nil {
			defer image.Close()
		}

		imageURL, ok := saveImage(w, images, image)
		if !ok {
			return
		}

		patch := models.ArticlePatch{
			Title:     req.Title,
			Content:   req.Content,
			ImageURL:  imageURL,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Tags:      req.Tags,
		}

		if err := svc.Update(r.Context(), userID, id, patch); err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Unauthorized to edit this article")
			case errors.Is(err, services.ErrInvalidArticle),
				errors.Is(err, geo.ErrInvalidCoordinates):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, ArticleUpdateResponse{ID: id, Message: "Article updated successfully"})
	}
}
