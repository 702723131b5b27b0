package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/2beens/fitcalc/pkg"

	"github.com/google/uuid"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt limit
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidUsername = errors.New("username must be 3 to 32 letters, digits, dots, dashes or underscores")
	ErrInvalidPassword = fmt.Errorf("password must be %d to %d characters", minPasswordLength, maxPasswordLength)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)
)

type Account struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountsRepo interface {
	AddAccount(ctx context.Context, account *Account) error
	GetAccountByUsername(ctx context.Context, username string) (*Account, error)
}

// Accounts registers and authenticates accounts. Sessions are up to Service.
type Accounts struct {
	repo AccountsRepo
	// injectable for tests, bcrypt at cost 14 is slow
	HashFunc  func(password string) (string, error)
	CheckFunc func(password, hash string) bool
	now       func() time.Time
}

func NewAccounts(repo AccountsRepo) *Accounts {
	return &Accounts{
		repo:      repo,
		HashFunc:  pkg.HashPassword,
		CheckFunc: pkg.CheckPasswordHash,
		now:       time.Now,
	}
}

func (a *Accounts) Register(ctx context.Context, creds Credentials) (*Account, error) {
	username := strings.TrimSpace(creds.Username)
	if !usernameRegex.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(creds.Password) < minPasswordLength || len(creds.Password) > maxPasswordLength {
		return nil, ErrInvalidPassword
	}

	hash, err := a.HashFunc(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(username),
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.repo.AddAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (a *Accounts) Authenticate(ctx context.Context, creds Credentials) (*Account, error) {
	account, err := a.repo.GetAccountByUsername(ctx, strings.ToLower(strings.TrimSpace(creds.Username)))
	if err != nil {
		return nil, err
	}
	if !a.CheckFunc(creds.Password, account.PasswordHash) {
		return nil, ErrWrongPassword
	}
	return account, nil
}
