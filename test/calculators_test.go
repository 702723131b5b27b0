//go:build integration

package test

import (
	"context"
	"net/http"

	"github.com/2beens/fitcalc/internal/calculators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCalculateAndShare() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doRequest(ctx, t, "GET", "/calculators", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var infos []calculators.Info
	decodeBody(t, resp, &infos)
	assert.Len(t, infos, 12)

	inputs := map[string]string{"height": "175", "weight": "70"}
	resp = doRequest(ctx, t, "POST", "/calculators/bmi/calculate?system=metric", "", inputs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(ctx, t, "POST", "/calculators/bmi/share", "", inputs)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var shared calculators.ShareResponse
	decodeBody(t, resp, &shared)

	resp = doRequest(ctx, t, "GET", shared.Path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var opened calculators.SharedResultResponse
	decodeBody(t, resp, &opened)
	assert.Equal(t, "bmi", opened.Name)
	assert.Equal(t, inputs, opened.Inputs)
}

func (s *IntegrationTestSuite) TestMetricsExposed() {
	t := s.T()
	resp, err := http.Get("http://127.0.0.1:9102/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
