package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_LoggedAccount(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := NewLoginChecker(time.Hour, db)
	ctx := context.Background()

	mock.ExpectGet(sessionKeyPrefix + "invalid token").RedisNil()
	accountID, err := loginChecker.LoggedAccount(ctx, "invalid token")
	assert.ErrorIs(t, err, ErrNotLogged)
	assert.Empty(t, accountID)

	testToken := "test-token"
	sessionKey := sessionKeyPrefix + testToken

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d|acc-1", time.Now().Unix()))
	accountID, err = loginChecker.LoggedAccount(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d|acc-1", time.Now().Add(-2*time.Hour).Unix()))
	_, err = loginChecker.LoggedAccount(ctx, testToken)
	assert.ErrorIs(t, err, ErrNotLogged)

	mock.ExpectGet(sessionKey).SetVal("garbage")
	_, err = loginChecker.LoggedAccount(ctx, testToken)
	assert.ErrorContains(t, err, "malformed session")

	mock.ExpectGet(sessionKey).SetErr(redis.ErrClosed)
	_, err = loginChecker.LoggedAccount(ctx, testToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLogged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginTestChecker(t *testing.T) {
	c := NewLoginTestChecker()
	c.LoggedSessions["tok"] = "acc-1"

	id, err := c.LoggedAccount(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)

	_, err = c.LoggedAccount(context.Background(), "other")
	assert.ErrorIs(t, err, ErrNotLogged)
}

func TestAccountIDContext(t *testing.T) {
	_, ok := AccountIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := AccountIDFromContext(WithAccountID(context.Background(), "acc-1"))
	assert.True(t, ok)
	assert.Equal(t, "acc-1", id)
}
