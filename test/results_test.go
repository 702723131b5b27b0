//go:build integration

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitcalc/internal/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestResults_SaveListDelete() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, owner := registerAndLogin(ctx, t)
	_, other := registerAndLogin(ctx, t)

	resp := doRequest(ctx, t, "POST", "/results", "", results.SaveRequest{Calculator: "bmi"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	var saved []results.SavedResult
	for _, weight := range []string{"70", "80", "90"} {
		resp := doRequest(ctx, t, "POST", "/results", owner.Token, results.SaveRequest{
			Calculator: "bmi",
			System:     "metric",
			Inputs:     map[string]string{"height": "175", "weight": weight},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var r results.SavedResult
		decodeBody(t, resp, &r)
		assert.Equal(t, owner.AccountID, r.AccountID)
		assert.Equal(t, "bmi", r.CalculatorType)
		saved = append(saved, r)
	}

	// invalid input is answered, not stored
	resp = doRequest(ctx, t, "POST", "/results", owner.Token, results.SaveRequest{
		Calculator: "bmi",
		System:     "metric",
		Inputs:     map[string]string{"height": "", "weight": "70"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(ctx, t, "GET", "/results/page/1/size/2", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page results.PageResponse
	decodeBody(t, resp, &page)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Results, 2)
	assert.Equal(t, saved[2].ID, page.Results[0].ID)

	// other accounts never see it
	path := fmt.Sprintf("/results/%s", saved[0].ID)
	resp = doRequest(ctx, t, "GET", path, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(ctx, t, "DELETE", path, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(ctx, t, "GET", path, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got results.SavedResult
	decodeBody(t, resp, &got)
	assert.Equal(t, saved[0].ID, got.ID)
	assert.JSONEq(t, string(saved[0].Data), string(got.Data))

	resp = doRequest(ctx, t, "DELETE", path, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted results.DeleteResponse
	decodeBody(t, resp, &deleted)
	assert.Equal(t, saved[0].ID, deleted.DeletedID)

	resp = doRequest(ctx, t, "GET", path, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
