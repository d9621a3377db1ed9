package services

//go:generate mockgen -source=article.go -destination=article_mock.go -package=services

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
)

// ArticleReader defines read operations for articles.
type ArticleReader interface {
	List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error)
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Article, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	GetImageURL(ctx context.Context, id int64) (*string, error)
}

// ArticleWriter defines write operations for articles.
type ArticleWriter interface {
	Create(ctx context.Context, a models.NewArticle) (int64, error)
	Update(ctx context.Context, id int64, patch models.ArticlePatch) error
	Delete(ctx context.Context, id int64) error
}

// TagLinker links articles to tags, creating tags on demand.
type TagLinker interface {
	LinkArticleTags(ctx context.Context, articleID int64, names []string) error
	ReplaceArticleTags(ctx context.Context, articleID int64, names []string) error
}

// TagLister lists every known tag.
type TagLister interface {
	List(ctx context.Context) ([]models.Tag, error)
}

// LikeToggler flips a user's like of an article.
type LikeToggler interface {
	Toggle(ctx context.Context, userID, articleID int64) (bool, int64, error)
}

// ImageRemover deletes a stored image by its public URL.
type ImageRemover interface {
	Remove(url string) error
}

// Publisher emits article events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, articleID, userID int64)
}

// Deferrer schedules fn to run once the work bound to ctx is durable.
type Deferrer func(ctx context.Context, fn func())

func runNow(_ context.Context, fn func()) { fn() }

var (
	titlePolicy   = bluemonday.StrictPolicy()
	contentPolicy = bluemonday.UGCPolicy()
)

// maxSanitizePasses bounds the decode loop of sanitize.
const maxSanitizePasses = 8

func sanitizeTitle(s string) string {
	return sanitize(titlePolicy, s)
}

func sanitizeContent(s string) string {
	return sanitize(contentPolicy, s)
}

// sanitize removes markup p does not allow and stores text unescaped, so
// plain text round-trips unchanged. Entities are decoded and the result
// sanitized again until it is stable: encoded markup is stripped once it
// decodes to a tag. Input that never settles is kept in escaped form.
func sanitize(p *bluemonday.Policy, s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		out := html.UnescapeString(p.Sanitize(s))
		if out == s {
			return strings.TrimSpace(out)
		}
		s = out
	}
	return strings.TrimSpace(p.Sanitize(s))
}

// ArticleService implements article publishing, querying and likes.
type ArticleService struct {
	reader      ArticleReader
	writer      ArticleWriter
	tagLinker   TagLinker
	tagLister   TagLister
	likes       LikeToggler
	images      ImageRemover
	events      Publisher
	afterCommit Deferrer
}

// NewArticleService creates a new ArticleService. A nil afterCommit runs
// deferred work immediately.
func NewArticleService(
	reader ArticleReader,
	writer ArticleWriter,
	tagLinker TagLinker,
	tagLister TagLister,
	likes LikeToggler,
	images ImageRemover,
	events Publisher,
	afterCommit Deferrer,
) *ArticleService {
	if afterCommit == nil {
		afterCommit = runNow
	}
	return &ArticleService{
		reader:      reader,
		writer:      writer,
		tagLinker:   tagLinker,
		tagLister:   tagLister,
		likes:       likes,
		images:      images,
		events:      events,
		afterCommit: afterCommit,
	}
}

// Create stores a new article with its tags and returns it as listed.
// The uploaded image, if any, is removed again when creation fails.
func (s *ArticleService) Create(ctx context.Context, a models.NewArticle) (*models.Article, error) {
	a.Title = sanitizeTitle(a.Title)
	a.Content = sanitizeContent(a.Content)

	if a.Title == "" || a.Content == "" {
		s.discardImage(a.ImageURL)
		return nil, ErrInvalidArticle
	}
	if err := (geo.Point{Latitude: a.Latitude, Longitude: a.Longitude}).Validate(); err != nil {
		s.discardImage(a.ImageURL)
		return nil, err
	}

	id, err := s.writer.Create(ctx, a)
	if err != nil {
		logger.Log.Errorw("failed to create article", "user_id", a.UserID, "err", err)
		s.discardImage(a.ImageURL)
		return nil, err
	}

	if err := s.tagLinker.LinkArticleTags(ctx, id, a.Tags); err != nil {
		logger.Log.Errorw("failed to link tags", "article_id", id, "err", err)
		s.discardImage(a.ImageURL)
		return nil, err
	}

	article, err := s.reader.GetByID(ctx, id, &a.UserID)
	if err != nil {
		logger.Log.Errorw("failed to read created article", "article_id", id, "err", err)
		s.discardImage(a.ImageURL)
		return nil, err
	}

	s.afterCommit(ctx, func() {
		s.events.Publish(ctx, models.EventArticleCreated, id, a.UserID)
	})

	return article, nil
}

// List returns the articles matching f. Distance sorting without a
// reference point falls back to newest first.
func (s *ArticleService) List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error) {
	f.Tags = models.NormalizeTags(f.Tags)
	if f.Reference != nil {
		if err := f.Reference.Validate(); err != nil {
			return nil, err
		}
	}

	articles, err := s.reader.List(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list articles", "err", err)
		return nil, err
	}
	return articles, nil
}

// Get returns a single article. viewerID may be nil for anonymous requests.
func (s *ArticleService) Get(ctx context.Context, id int64, viewerID *int64) (*models.Article, error) {
	article, err := s.reader.GetByID(ctx, id, viewerID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrArticleNotFound
		}
		logger.Log.Errorw("failed to get article", "article_id", id, "err", err)
		return nil, err
	}
	return article, nil
}

// Update applies patch to an article owned by userID. A replaced image is
// removed once the change is durable; a new image is removed on failure.
func (s *ArticleService) Update(ctx context.Context, userID, articleID int64, patch models.ArticlePatch) (err error) {
	defer func() {
		if err != nil {
			s.discardImage(patch.ImageURL)
		}
	}()

	if err := s.authorize(ctx, userID, articleID); err != nil {
		return err
	}
	if err := sanitizePatch(&patch); err != nil {
		return err
	}

	var oldImage *string
	if patch.ImageURL != nil {
		if oldImage, err = s.reader.GetImageURL(ctx, articleID); err != nil {
			if repositories.IsNotFound(err) {
				return ErrForbidden
			}
			logger.Log.Errorw("failed to read article image", "article_id", articleID, "err", err)
			return err
		}
	}

	if err := s.writer.Update(ctx, articleID, patch); err != nil {
		if repositories.IsNotFound(err) {
			return ErrForbidden
		}
		logger.Log.Errorw("failed to update article", "article_id", articleID, "err", err)
		return err
	}

	if patch.Tags != nil {
		if err := s.tagLinker.ReplaceArticleTags(ctx, articleID, *patch.Tags); err != nil {
			logger.Log.Errorw("failed to replace tags", "article_id", articleID, "err", err)
			return err
		}
	}

	s.afterCommit(ctx, func() {
		if oldImage != nil && *oldImage != *patch.ImageURL {
			s.discardImage(oldImage)
		}
		s.events.Publish(ctx, models.EventArticleUpdated, articleID, userID)
	})

	return nil
}

// Delete removes an article owned by userID together with its tag links,
// likes and image.
func (s *ArticleService) Delete(ctx context.Context, userID, articleID int64) error {
	if err := s.authorize(ctx, userID, articleID); err != nil {
		return err
	}

	image, err := s.reader.GetImageURL(ctx, articleID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return ErrForbidden
		}
		logger.Log.Errorw("failed to read article image", "article_id", articleID, "err", err)
		return err
	}

	if err := s.writer.Delete(ctx, articleID); err != nil {
		if repositories.IsNotFound(err) {
			return ErrForbidden
		}
		logger.Log.Errorw("failed to delete article", "article_id", articleID, "err", err)
		return err
	}

	s.afterCommit(ctx, func() {
		s.discardImage(image)
		s.events.Publish(ctx, models.EventArticleDeleted, articleID, userID)
	})

	return nil
}

// ToggleLike flips userID's like of the article and returns the new state
// and like count.
func (s *ArticleService) ToggleLike(ctx context.Context, userID, articleID int64) (bool, int64, error) {
	if _, err := s.reader.GetOwnerID(ctx, articleID); err != nil {
		if repositories.IsNotFound(err) {
			return false, 0, ErrArticleNotFound
		}
		logger.Log.Errorw("failed to get article", "article_id", articleID, "err", err)
		return false, 0, err
	}

	liked, count, err := s.likes.Toggle(ctx, userID, articleID)
	if err != nil {
		// the article vanished between the check and the insert
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return false, 0, ErrArticleNotFound
		}
		logger.Log.Errorw("failed to toggle like", "article_id", articleID, "user_id", userID, "err", err)
		return false, 0, err
	}

	eventType := models.EventArticleUnliked
	if liked {
		eventType = models.EventArticleLiked
	}
	s.afterCommit(ctx, func() {
		s.events.Publish(ctx, eventType, articleID, userID)
	})

	return liked, count, nil
}

// ListTags returns every tag ordered by name.
func (s *ArticleService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagLister.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list tags", "err", err)
		return nil, err
	}
	return tags, nil
}

// authorize returns ErrForbidden unless the article exists and belongs to userID.
func (s *ArticleService) authorize(ctx context.Context, userID, articleID int64) error {
	ownerID, err := s.reader.GetOwnerID(ctx, articleID)
	if err != nil {
		if repositories.IsNotFound(err) {
			logger.Log.Infow("mutation of missing article", "article_id", articleID, "user_id", userID)
			return ErrForbidden
		}
		logger.Log.Errorw("failed to get article owner", "article_id", articleID, "err", err)
		return err
	}
	if ownerID != userID {
		logger.Log.Infow("mutation of foreign article", "article_id", articleID, "user_id", userID, "owner_id", ownerID)
		return ErrForbidden
	}
	return nil
}

func (s *ArticleService) discardImage(url *string) {
	if url == nil || s.images == nil {
		return
	}
	if err := s.images.Remove(*url); err != nil {
		logger.Log.Warnw("failed to remove image", "url", *url, "err", err)
	}
}

// sanitizePatch cleans the present text fields and validates the present
// coordinates of patch.
func sanitizePatch(patch *models.ArticlePatch) error {
	if patch.Title != nil {
		title := sanitizeTitle(*patch.Title)
		if title == "" {
			return ErrInvalidArticle
		}
		patch.Title = &title
	}
	if patch.Content != nil {
		content := sanitizeContent(*patch.Content)
		if content == "" {
			return ErrInvalidArticle
		}
		patch.Content = &content
	}

	var p geo.Point
	if patch.Latitude != nil {
		p.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = *patch.Longitude
	}
	return p.Validate()
}
