package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email or sql.ErrNoRows.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, email, password_hash, latitude, longitude, created_at
		FROM users
		WHERE email = $1
	`
	return r.get(ctx, query, email)
}

// GetByID returns the user with the given id or sql.ErrNoRows.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, username, email, password_hash, latitude, longitude, created_at
		FROM users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)
	logger.Query(query, []any{arg}, user.ID, err)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UserWriteRepository writes users inside the request transaction when
// txGetter returns one.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user and returns its id. A taken username or email
// yields ErrUniqueViolation and no row.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`
	// the hash is left out of the log line
	args := []any{username, email, passwordHash}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, args...)
	logger.Query(query, args[:2], id, err)
	if err != nil {
		return 0, fmt.Errorf("save user: %w", translate(err))
	}
	return id, nil
}

// UpdateLocation stores the user's coordinates. It returns sql.ErrNoRows
// when the user does not exist.
func (r *UserWriteRepository) UpdateLocation(ctx context.Context, id int64, latitude, longitude float64) error {
	const query = `UPDATE users SET latitude = $1, longitude = $2 WHERE id = $3`
	args := []any{latitude, longitude, id}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, args, rowsAffected, err)

	if err != nil {
		return fmt.Errorf("update location of user %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update location of user %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
