package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (lc *LoginChecker) LoggedAccount(ctx context.Context, token string) (string, error) {
	cmd := lc.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLogged
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	s, err := decodeSession(cmd.Val())
	if err != nil {
		return "", err
	}
	if s.expired(time.Now(), lc.ttl) {
		return "", ErrNotLogged
	}

	return s.AccountID, nil
}
