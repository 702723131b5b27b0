package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ AccountsRepo = (*PsqlRepo)(nil)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) AddAccount(ctx context.Context, account *Account) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "accountsRepo.add")
	defer func() { tracing.EndWithError(span, err) }()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO account (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		account.ID, account.Username, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *PsqlRepo) GetAccountByUsername(ctx context.Context, username string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "accountsRepo.getByUsername")
	defer func() { tracing.EndWithError(span, err) }()

	account := &Account{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at FROM account WHERE username = $1`,
		username,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
