package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var (
	upsertTagSQL  = regexp.QuoteMeta("INSERT INTO tags (name)")
	linkTagSQL    = regexp.QuoteMeta("INSERT INTO article_tags (article_id, tag_id)")
	clearTagsSQL  = regexp.QuoteMeta("DELETE FROM article_tags WHERE article_id = $1")
	listTagsSQL   = regexp.QuoteMeta("SELECT id, name FROM tags ORDER BY name")
	deleteLikeSQL = regexp.QuoteMeta("DELETE FROM likes WHERE user_id = $1 AND article_id = $2")
	insertLikeSQL = regexp.QuoteMeta("INSERT INTO likes (user_id, article_id, created_at)")
	countLikesSQL = regexp.QuoteMeta("SELECT COUNT(*) FROM likes WHERE article_id = $1")
)

func TestTagRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	mock.ExpectQuery(upsertTagSQL).WithArgs("go").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	id, err := repo.Upsert(context.Background(), "go")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_LinkArticleTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	// duplicates and blanks collapse to x, y
	mock.ExpectQuery(upsertTagSQL).WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(linkTagSQL).WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(upsertTagSQL).WithArgs("y").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec(linkTagSQL).WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.LinkArticleTags(context.Background(), 10, []string{" x", "y", "x", ""})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_LinkArticleTags_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	assert.NoError(t, repo.LinkArticleTags(context.Background(), 10, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ReplaceArticleTags_InTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(clearTagsSQL).WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(upsertTagSQL).WithArgs("z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(linkTagSQL).WithArgs(int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewTagRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	err = repo.ReplaceArticleTags(context.Background(), 10, []string{"z"})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ReplaceArticleTags_Clear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	mock.ExpectExec(clearTagsSQL).WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ReplaceArticleTags(context.Background(), 10, []string{})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_LinkArticleTags_UpsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	mock.ExpectQuery(upsertTagSQL).WithArgs("x").WillReturnError(errors.New("boom"))

	err := repo.LinkArticleTags(context.Background(), 10, []string{"x"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	mock.ExpectQuery(listTagsSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(2), "a").AddRow(int64(1), "b"))

	tags, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db, nil)

	mock.ExpectQuery(listTagsSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	tags, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}
