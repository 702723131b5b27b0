package onerepmax

import (
	"testing"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	for _, tc := range []struct {
		formula Formula
		want    float64
	}{
		{Epley, 116.667},
		{Brzycki, 112.5},
		{Lombardi, 117.462},
		{OConner, 112.5},
	} {
		v, err := Estimate(100, 5, tc.formula)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, v, 0.001, tc.formula)
	}

	avg, err := Estimate(100, 5, Average)
	require.NoError(t, err)
	assert.InDelta(t, (116.667+112.5+117.462+112.5)/4, avg, 0.001)
}

func TestEstimate_SingleRep(t *testing.T) {
	for _, f := range []Formula{Epley, Brzycki, Lombardi, OConner, Average} {
		v, err := Estimate(140, 1, f)
		require.NoError(t, err)
		assert.Equal(t, 140.0, v, f)
	}
}

func TestEstimate_Errors(t *testing.T) {
	_, err := Estimate(0, 5, Epley)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)
	_, err = Estimate(100, 0, Epley)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)
	_, err = Estimate(100, 31, Epley)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)
	_, err = Estimate(100, 5, "guess")
	assert.ErrorIs(t, err, body.ErrOutOfDomain)
}

func TestRepsAt(t *testing.T) {
	assert.Equal(t, 1, RepsAt(100))
	assert.Equal(t, 2, RepsAt(95))
	assert.Equal(t, 8, RepsAt(80))
	assert.Equal(t, 30, RepsAt(50))
}

func TestCalculate(t *testing.T) {
	in := Input{System: units.Imperial, Weight: form.NewNumber(225), Reps: form.NewNumber(5), Formula: "epley"}
	require.Empty(t, in.Validate())

	res, err := Calculate(in.Params())
	require.NoError(t, err)
	assert.Equal(t, 262.5, res.OneRepMax)
	assert.Equal(t, units.Pound, res.Unit)
	assert.Len(t, res.Formulas, 4)
	require.Len(t, res.Table, 11)
	assert.Equal(t, 262.5, res.Table[0].Weight)
	assert.Equal(t, 131.3, res.Table[10].Weight)
}

func TestInput_Validate(t *testing.T) {
	errs := Input{System: units.Metric, Weight: form.NewNumber(100), Reps: form.NewNumber(40), Formula: "x"}.Validate()
	assert.Contains(t, errs, "reps")
	assert.Equal(t, "Formula is not a valid option", errs["formula"])
}

func TestEstimate_AverageIsStable(t *testing.T) {
	assert.Len(t, formulaOrder, len(formulas))

	want := (formulas[Epley](102.5, 7) + formulas[Brzycki](102.5, 7) +
		formulas[Lombardi](102.5, 7) + formulas[OConner](102.5, 7)) / 4
	for range 50 {
		got, err := Estimate(102.5, 7, Average)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
