//go:build integration

package test

import (
	"context"
	"net/http"

	"github.com/2beens/fitcalc/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds, loginResp := registerAndLogin(ctx, t)
	assert.NotEmpty(t, loginResp.AccountID)

	// usernames are unique
	resp := doRequest(ctx, t, "POST", "/a/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	cases := map[string]struct {
		creds              auth.Credentials
		expectedStatusCode int
	}{
		"wrong password": {
			creds:              auth.Credentials{Username: creds.Username, Password: "definitely-wrong"},
			expectedStatusCode: http.StatusBadRequest,
		},
		"unknown user": {
			creds:              newCredentials(),
			expectedStatusCode: http.StatusBadRequest,
		},
		"empty password": {
			creds:              auth.Credentials{Username: creds.Username},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		resp := doRequest(ctx, t, "POST", "/a/login", "", tc.creds)
		assert.Equal(t, tc.expectedStatusCode, resp.StatusCode, name)
		resp.Body.Close()
	}
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, loginResp := registerAndLogin(ctx, t)

	resp := doRequest(ctx, t, "POST", "/a/logout", loginResp.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// the session is gone, a second logout fails
	resp = doRequest(ctx, t, "POST", "/a/logout", loginResp.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(ctx, t, "GET", "/results/page/1/size/10", loginResp.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
