package handlers

//go:generate mockgen -source=article_create.go -destination=article_create_mock.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/storage"
	"github.com/sbilibin2017/geo-articles/internal/validation"
)

// ArticleCreator publishes a new article.
type ArticleCreator interface {
	Create(ctx context.Context, a models.NewArticle) (*models.Article, error)
}

// ImageSaver stores an uploaded image and returns its public URL.
type ImageSaver interface {
	Save(r io.Reader) (string, error)
	MaxBytes() int64
}

type articleCreateInput struct {
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// NewArticleCreateHandler returns an HTTP handler that publishes an article.
// @Summary Create article
// @Description Publishes a geotagged article with optional tags and image
// @Tags articles
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param tags formData string false "Comma separated tags"
// @Param image formData file false "JPEG, PNG, GIF or WebP image"
// @Success 201 {object} models.Article
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles [post]
func NewArticleCreateHandler(svc ArticleCreator, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
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

		input := articleCreateInput{Latitude: req.Latitude, Longitude: req.Longitude}
		if req.Title != nil {
			input.Title = *req.Title
		}
		if req.Content != nil {
			input.Content = *req.Content
		}
		if err := validation.ValidateStruct(&input); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		imageURL, ok := saveImage(w, images, image)
		if !ok {
			return
		}

		tags := []string{}
		if req.Tags != nil {
			tags = *req.Tags
		}

		article, err := svc.Create(r.Context(), models.NewArticle{
			Title:     input.Title,
			Content:   input.Content,
			ImageURL:  imageURL,
			UserID:    userID,
			Latitude:  *input.Latitude,
			Longitude: *input.Longitude,
			Tags:      tags,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidArticle),
				errors.Is(err, geo.ErrInvalidCoordinates):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, article)
	}
}

// saveImage stores image when present. It answers the request itself and
// returns false when the upload is rejected.
func saveImage(w http.ResponseWriter, images ImageSaver, image io.Reader) (*string, bool) {
	if image == nil {
		return nil, true
	}

	url, err := images.Save(image)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidImage),
			errors.Is(err, storage.ErrImageTooLarge):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, err)
		}
		return nil, false
	}
	return &url, true
}
