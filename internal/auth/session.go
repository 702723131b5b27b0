package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// session values are stored as "<created at unix>|<account id>"
type session struct {
	AccountID string
	CreatedAt time.Time
}

func (s session) encode() string {
	return fmt.Sprintf("%d|%s", s.CreatedAt.Unix(), s.AccountID)
}

func decodeSession(val string) (session, error) {
	createdAtStr, accountID, found := strings.Cut(val, "|")
	if !found || accountID == "" {
		return session{}, fmt.Errorf("malformed session value [%s]", val)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return session{}, fmt.Errorf("parse session created at: %w", err)
	}
	return session{
		AccountID: accountID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

func (s session) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
