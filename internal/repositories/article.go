package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// ArticleReadRepository handles article read operations
type ArticleReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewArticleReadRepository(db *sqlx.DB, txGetter TxGetter) *ArticleReadRepository {
	return &ArticleReadRepository{db: db, txGetter: txGetter}
}

// List returns every article matching f with author, like count and tags,
// ordered by f.Sort. When f.Reference is set each article carries its
// distance from it; when f.ViewerID is set each carries the viewer's like flag.
func (r *ArticleReadRepository) List(ctx context.Context, f models.ArticleFilter) ([]models.Article, error) {
	query, args := buildArticleListQuery(f)

	var rows []models.ArticleDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, args...)
	logger.Query(query, args, len(rows), err)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]models.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, decorate(&rows[i], f.ViewerID, f.Reference))
	}
	return articles, nil
}

// GetByID returns the aggregated article or sql.ErrNoRows.
func (r *ArticleReadRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Article, error) {
	query, args := buildArticleByIDQuery(id, viewerID)

	var row models.ArticleDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, args...)
	logger.Query(query, args, row.ID, err)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}

	article := decorate(&row, viewerID, nil)
	return &article, nil
}

// GetOwnerID returns the owning user id of an article or sql.ErrNoRows.
func (r *ArticleReadRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT user_id FROM articles WHERE id = $1`

	var ownerID int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &ownerID, query, id)
	logger.Query(query, []any{id}, ownerID, err)
	if err != nil {
		return 0, fmt.Errorf("get article %d owner: %w", id, err)
	}
	return ownerID, nil
}

// GetImageURL returns the stored image reference of an article, if any.
func (r *ArticleReadRepository) GetImageURL(ctx context.Context, id int64) (*string, error) {
	const query = `SELECT image_url FROM articles WHERE id = $1`

	var imageURL sql.NullString
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &imageURL, query, id)
	logger.Query(query, []any{id}, imageURL.String, err)
	if err != nil {
		return nil, fmt.Errorf("get article %d image: %w", id, err)
	}
	if !imageURL.Valid {
		return nil, nil
	}
	return &imageURL.String, nil
}

func decorate(row *models.ArticleDB, viewerID *int64, ref *geo.Point) models.Article {
	article := row.ToArticle()
	if viewerID != nil {
		liked := row.Liked
		article.Liked = &liked
	}
	if ref != nil {
		d := geo.Haversine(*ref, article.Point())
		article.DistanceKm = &d
	}
	return article
}

// ArticleWriteRepository handles article write operations
type ArticleWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewArticleWriteRepository(db *sqlx.DB, txGetter TxGetter) *ArticleWriteRepository {
	return &ArticleWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the article row and returns its id.
func (r *ArticleWriteRepository) Create(ctx context.Context, a models.NewArticle) (int64, error) {
	const query = `
		INSERT INTO articles (title, content, image_url, user_id, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	args := []any{a.Title, a.Content, a.ImageURL, a.UserID, a.Latitude, a.Longitude}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, args...)
	logger.Query(query, args, id, err)
	if err != nil {
		return 0, fmt.Errorf("create article: %w", translate(err))
	}
	return id, nil
}

// Update writes only the fields present in patch and always refreshes
// updated_at. It returns sql.ErrNoRows when the article does not exist.
func (r *ArticleWriteRepository) Update(ctx context.Context, id int64, patch models.ArticlePatch) error {
	var args queryArgs
	var set []string

	if patch.Title != nil {
		set = append(set, "title = "+args.add(*patch.Title))
	}
	if patch.Content != nil {
		set = append(set, "content = "+args.add(*patch.Content))
	}
	if patch.ImageURL != nil {
		set = append(set, "image_url = "+args.add(*patch.ImageURL))
	}
	if patch.Latitude != nil {
		set = append(set, "latitude = "+args.add(*patch.Latitude))
	}
	if patch.Longitude != nil {
		set = append(set, "longitude = "+args.add(*patch.Longitude))
	}
	set = append(set, "updated_at = NOW()")

	query := "UPDATE articles SET " + strings.Join(set, ", ") + " WHERE id = " + args.add(id)

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, args, rowsAffected, err)

	if err != nil {
		return fmt.Errorf("update article %d: %w", id, translate(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update article %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// Delete removes the article; tag links and likes go with it by cascade.
// It returns sql.ErrNoRows when the article does not exist.
func (r *ArticleWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, []any{id}, rowsAffected, err)

	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete article %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
