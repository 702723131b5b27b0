package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcalc/internal/db"

	"github.com/jmoiron/sqlx"
)

var _ AccountsRepo = (*SQLiteRepo)(nil)

type SQLiteRepo struct {
	db *sqlx.DB
}

func NewSQLiteRepo(conn *sqlx.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: conn,
	}
}

type accountRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (r *SQLiteRepo) AddAccount(ctx context.Context, account *Account) error {
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO account (id, username, password_hash, created_at) VALUES (:id, :username, :password_hash, :created_at)`,
		accountRow{
			ID:           account.ID,
			Username:     account.Username,
			PasswordHash: account.PasswordHash,
			CreatedAt:    account.CreatedAt.UTC().Format(db.TimeLayout),
		},
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	var row accountRow
	err := r.db.GetContext(
		ctx,
		&row,
		`SELECT id, username, password_hash, created_at FROM account WHERE username = ?`,
		username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	createdAt, err := time.Parse(db.TimeLayout, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse account created at: %w", err)
	}
	return &Account{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    createdAt,
	}, nil
}
