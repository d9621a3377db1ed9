package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/geo-articles/internal/logger"
)

// LikeRepository toggles likes. A row in likes is the liked flag itself;
// counts are always derived from rows.
type LikeRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewLikeRepository(db *sqlx.DB, txGetter TxGetter) *LikeRepository {
	return &LikeRepository{db: db, txGetter: txGetter}
}

// Toggle removes the user's like of the article if present, adds it
// otherwise, and returns the resulting state and like count.
func (r *LikeRepository) Toggle(ctx context.Context, userID, articleID int64) (bool, int64, error) {
	const deleteQuery = `DELETE FROM likes WHERE user_id = $1 AND article_id = $2`
	const insertQuery = `
		INSERT INTO likes (user_id, article_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, article_id) DO NOTHING
	`
	args := []any{userID, articleID}
	exec := executor(ctx, r.db, r.txGetter)

	res, err := exec.ExecContext(ctx, deleteQuery, args...)
	var removed int64
	if res != nil {
		removed, _ = res.RowsAffected()
	}
	logger.Query(deleteQuery, args, removed, err)
	if err != nil {
		return false, 0, fmt.Errorf("unlike article %d: %w", articleID, err)
	}

	liked := removed == 0
	if liked {
		_, err = exec.ExecContext(ctx, insertQuery, args...)
		logger.Query(insertQuery, args, nil, err)
		if err != nil {
			return false, 0, fmt.Errorf("like article %d: %w", articleID, translate(err))
		}
	}

	count, err := r.Count(ctx, articleID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// Count returns the number of likes of the article.
func (r *LikeRepository) Count(ctx context.Context, articleID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM likes WHERE article_id = $1`

	var count int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query, articleID)
	logger.Query(query, []any{articleID}, count, err)
	if err != nil {
		return 0, fmt.Errorf("count likes of article %d: %w", articleID, err)
	}
	return count, nil
}
