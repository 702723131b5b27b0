package calculators

import (
	"testing"

	"github.com/2beens/fitcalc/internal/calculators/bmi"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/policy"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_AllCalculators(t *testing.T) {
	r := NewRegistry(policy.Defaults())

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
		assert.NotEmpty(t, c.Title(), c.Name())
		assert.NotEmpty(t, c.Description(), c.Name())
		assert.NotEmpty(t, c.Fields(units.Metric), c.Name())
		assert.NotEmpty(t, c.Fields(units.Imperial), c.Name())
	}
	assert.Equal(t, []string{
		"bmi", "body-fat", "waist-to-hip", "absi", "tdee", "calorie-deficit",
		"protein", "one-rep-max", "ffmi", "max-fat-loss", "water-intake", "ideal-weight",
	}, names)

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Submit_Success(t *testing.T) {
	r := NewRegistry(policy.Defaults())
	c, err := r.Get("bmi")
	require.NoError(t, err)

	outcome, err := c.Submit([]byte(`{"height":"175","weight":70}`), units.Metric, nil)
	require.NoError(t, err)
	assert.Equal(t, form.StateSuccess, outcome.State)
	assert.Empty(t, outcome.Errors)

	res, ok := outcome.Result.(bmi.Result)
	require.True(t, ok)
	assert.Equal(t, 22.86, res.BMI)
	assert.Equal(t, "Normal", res.Category.Name)
}

func TestRegistry_Submit_DefaultSystem(t *testing.T) {
	r := NewRegistry(policy.Defaults())
	c, err := r.Get("bmi")
	require.NoError(t, err)

	// imperial default applies when the body names no system
	outcome, err := c.Submit([]byte(`{"height":"5.75","weight":"154.3"}`), units.Imperial, nil)
	require.NoError(t, err)
	require.Equal(t, form.StateSuccess, outcome.State)
	res := outcome.Result.(bmi.Result)
	assert.InDelta(t, 22.8, res.BMI, 0.1)

	// explicit system in the body wins
	outcome, err = c.Submit([]byte(`{"system":"metric","height":"175","weight":"70"}`), units.Imperial, nil)
	require.NoError(t, err)
	require.Equal(t, form.StateSuccess, outcome.State)
	assert.Equal(t, 22.86, outcome.Result.(bmi.Result).BMI)
}

func TestRegistry_Submit_Invalid(t *testing.T) {
	r := NewRegistry(policy.Defaults())
	c, err := r.Get("bmi")
	require.NoError(t, err)

	outcome, err := c.Submit([]byte(`{"height":"","weight":"700"}`), units.Metric, nil)
	require.NoError(t, err)
	assert.Equal(t, form.StateInvalid, outcome.State)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, "Height is required", outcome.Errors["height"])
	assert.Contains(t, outcome.Errors["weight"], "must be between")

	// an empty body is a submit of an empty form
	outcome, err = c.Submit(nil, units.Metric, nil)
	require.NoError(t, err)
	assert.Equal(t, form.StateInvalid, outcome.State)
}

func TestRegistry_Submit_CalculationError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewRegistry(policy.Defaults())
	c, err := r.Get("ideal-weight")
	require.NoError(t, err)

	// valid input, but below the range the ideal weight formulas cover
	outcome, err := c.Submit([]byte(`{"gender":"female","height":"50"}`), units.Metric, logger)
	require.NoError(t, err)
	assert.Equal(t, form.StateError, outcome.State)
	assert.Nil(t, outcome.Result)
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, "ideal-weight", hook.LastEntry().Data["calculator"])
}

func TestRegistry_Submit_BadInput(t *testing.T) {
	r := NewRegistry(policy.Defaults())
	c, err := r.Get("bmi")
	require.NoError(t, err)

	for _, raw := range []string{
		`{`,
		`{"system":"nautical","height":"175","weight":"70"}`,
		`{"height":"tall"}`,
		`[1,2]`,
		`{"height":"NaN","weight":"70"}`,
		`{"height":"175","weight":"-Inf"}`,
	} {
		_, err := c.Submit([]byte(raw), units.Metric, nil)
		assert.ErrorIs(t, err, ErrBadInput, raw)
	}
}

func TestRegistry_EverySubmitHasConsistentSnapshot(t *testing.T) {
	r := NewRegistry(policy.Defaults())
	for _, c := range r.All() {
		outcome, err := c.Submit([]byte(`{}`), units.Metric, nil)
		require.NoError(t, err, c.Name())
		// nothing entered is never a success
		assert.Equal(t, form.StateInvalid, outcome.State, c.Name())
		assert.NotEmpty(t, outcome.Errors, c.Name())
	}
}

func TestInputsFromJSON(t *testing.T) {
	inputs, err := InputsFromJSON([]byte(`{"height":175.5,"weight":"70","gender":"male","x":null,"flag":true}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"height": "175.5",
		"weight": "70",
		"gender": "male",
		"flag":   "true",
	}, inputs)

	_, err = InputsFromJSON([]byte(`{"nested":{"a":1}}`))
	assert.ErrorIs(t, err, ErrBadInput)
	_, err = InputsFromJSON([]byte(`nope`))
	assert.ErrorIs(t, err, ErrBadInput)

	raw, err := InputsToJSON(inputs)
	require.NoError(t, err)
	back, err := InputsFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, inputs, back)

	assert.Equal(t, []string{"flag", "gender", "height", "weight"}, SortedNames(inputs))
}
