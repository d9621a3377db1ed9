package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", PgxURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@h/db", PgxURL("postgresql://u:p@h/db"))
	assert.Equal(t, "pgx5://already", PgxURL("pgx5://already"))
}

func TestEmbeddedMigrations(t *testing.T) {
	up, err := fs.ReadFile(files, "sql/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS article_tags")
	assert.Contains(t, string(up), "ON DELETE CASCADE")

	_, err = fs.ReadFile(files, "sql/000001_init.down.sql")
	assert.NoError(t, err)
}
