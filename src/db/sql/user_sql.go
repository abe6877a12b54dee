package db

import (
	"bankweb/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password_hash, created_at, last_login`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var hash string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&hash,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = []byte(hash)
	return &user, nil
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	created, err := scanUser(pool.QueryRow(
		ctx,
		query,
		user.Username,
		user.Email,
		string(user.PasswordHash),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func UpdateUserLastLogin(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to update last_login: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, pgx.ErrNoRows)
	}
	return nil
}
