package handlers

//go:generate mockgen -source=article_list.go -destination=article_list_mock.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// ArticleLister lists articles matching a filter.
type ArticleLister interface {
	List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error)
}

var errPartialReference = errors.New("latitude and longitude must be provided together")

// NewArticleListHandler returns an HTTP handler that lists articles.
// @Summary List articles
// @Description Lists articles filtered by tags (all must match) and author, sorted by newest, likes or distance to the given coordinate
// @Tags articles
// @Produce json
// @Param sort query string false "newest, likes or distance" Enums(newest, likes, distance)
// @Param tags query string false "Comma separated tags"
// @Param userId query int false "Author ID"
// @Param latitude query number false "Reference latitude"
// @Param longitude query number false "Reference longitude"
// @Success 200 {array} models.Article
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /articles [get]
func NewArticleListHandler(svc ArticleLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseArticleFilter(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if viewer, ok := middlewares.UserIDFromContext(r.Context()); ok {
			f.ViewerID = &viewer
		}

		articles, err := svc.List(r.Context(), f)
		if err != nil {
			switch {
			case errors.Is(err, geo.ErrInvalidCoordinates):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, articles)
	}
}

func parseArticleFilter(q url.Values) (models.ArticleFilter, error) {
	f := models.ArticleFilter{
		Sort: models.ParseSortMode(q.Get("sort")),
		Tags: models.SplitTags(q.Get("tags")),
	}

	if v := strings.TrimSpace(q.Get("userId")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, errors.New("userId must be a positive integer")
		}
		f.UserID = &id
	}

	lat, lon := strings.TrimSpace(q.Get("latitude")), strings.TrimSpace(q.Get("longitude"))
	if lat == "" && lon == "" {
		return f, nil
	}
	if lat == "" || lon == "" {
		return f, errPartialReference
	}

	var ref geo.Point
	var err error
	if ref.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return f, fmt.Errorf("latitude must be a number")
	}
	if ref.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
		return f, fmt.Errorf("longitude must be a number")
	}
	f.Reference = &ref

	return f, nil
}
