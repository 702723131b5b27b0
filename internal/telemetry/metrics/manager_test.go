package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersOnGivenRegistry(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterCalculations.WithLabelValues("bmi", "success").Inc()
	m.CounterCalculations.WithLabelValues("bmi", "success").Inc()
	m.CounterCalculations.WithLabelValues("bmi", "invalid").Inc()
	m.CounterRateLimitedRequests.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterCalculations.WithLabelValues("bmi", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRateLimitedRequests))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := familyNames(families)
	assert.True(t, names["backend_test_server_calculations"])
	assert.True(t, names["backend_test_server_rate_limited_requests"])
}

func TestNewManager_IndependentRegistries(t *testing.T) {
	// two managers with the same names must not collide
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func familyNames(families []*dto.MetricFamily) map[string]bool {
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestSetupPrometheus_GoCollector(t *testing.T) {
	families, err := SetupPrometheus().Gather()
	require.NoError(t, err)
	assert.True(t, familyNames(families)["go_goroutines"])
}
