package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// TagRepository handles tags and their links to articles
type TagRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTagRepository(db *sqlx.DB, txGetter TxGetter) *TagRepository {
	return &TagRepository{db: db, txGetter: txGetter}
}

// Upsert returns the id of the tag called name, creating it if absent.
// The no-op update makes RETURNING yield the id for an existing row as
// well, so a request that loses a concurrent insert race still gets the
// winner's id once the winner commits.
func (r *TagRepository) Upsert(ctx context.Context, name string) (int64, error) {
	const query = `
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, name)
	logger.Query(query, []any{name}, id, err)
	if err != nil {
		return 0, fmt.Errorf("upsert tag %q: %w", name, err)
	}
	return id, nil
}

// LinkArticleTags links the article to every tag in names, creating tags
// as needed. Existing links are kept.
func (r *TagRepository) LinkArticleTags(ctx context.Context, articleID int64, names []string) error {
	const query = `
		INSERT INTO article_tags (article_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	for _, name := range models.NormalizeTags(names) {
		tagID, err := r.Upsert(ctx, name)
		if err != nil {
			return err
		}

		_, err = executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, articleID, tagID)
		logger.Query(query, []any{articleID, tagID}, nil, err)
		if err != nil {
			return fmt.Errorf("link article %d to tag %d: %w", articleID, tagID, translate(err))
		}
	}
	return nil
}

// ReplaceArticleTags drops every link of the article, then links it to names.
// An empty names clears the article's tags.
func (r *TagRepository) ReplaceArticleTags(ctx context.Context, articleID int64, names []string) error {
	const query = `DELETE FROM article_tags WHERE article_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, articleID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, []any{articleID}, rowsAffected, err)
	if err != nil {
		return fmt.Errorf("clear tags of article %d: %w", articleID, err)
	}

	return r.LinkArticleTags(ctx, articleID, names)
}

// List returns every tag ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	const query = `SELECT id, name FROM tags ORDER BY name`

	tags := []models.Tag{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &tags, query)
	logger.Query(query, nil, len(tags), err)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
