package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

var ErrNotLogged = errors.New("not logged in")

type Checker interface {
	// LoggedAccount returns the account id owning the session token,
	// or ErrNotLogged when the token is unknown or expired.
	LoggedAccount(ctx context.Context, token string) (string, error)
}

type accountKey struct{}

func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountKey{}).(string)
	return id, ok && id != ""
}

// LoginTestChecker maps tokens to account ids, used in handler tests.
type LoginTestChecker struct {
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) LoggedAccount(_ context.Context, token string) (string, error) {
	accountID, ok := c.LoggedSessions[token]
	if !ok {
		return "", ErrNotLogged
	}
	return accountID, nil
}

// TokenHeader is the session token header, an Authorization bearer token is accepted too.
const TokenHeader = "X-FITCALC-TOKEN"

func TokenFromRequest(r *http.Request) string {
	if bearer, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(bearer)
	}
	return r.Header.Get(TokenHeader)
}
