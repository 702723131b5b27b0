package bodyfat

import (
	"testing"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNavy(t *testing.T) {
	male, err := CalculateNavy(body.Male, 180, 85, 38, 0)
	require.NoError(t, err)
	assert.InDelta(t, 16.1, male, 0.1)

	female, err := CalculateNavy(body.Female, 165, 75, 33, 95)
	require.NoError(t, err)
	assert.InDelta(t, 26.9, female, 0.1)
}

func TestCalculateNavy_DomainErrors(t *testing.T) {
	_, err := CalculateNavy(body.Male, 180, 38, 38, 0)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)

	_, err = CalculateNavy(body.Female, 165, 75, 33, 0)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)

	_, err = CalculateNavy(body.Male, 0, 85, 38, 0)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)

	_, err = CalculateNavy("other", 180, 85, 38, 0)
	assert.ErrorIs(t, err, body.ErrOutOfDomain)

	// waist barely above neck gives a nonsensical negative percentage
	_, err = CalculateNavy(body.Male, 180, 39, 38, 0)
	assert.ErrorContains(t, err, "outside realistic range")
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, Essential, GetCategory(5.9, body.Male))
	assert.Equal(t, Athletes, GetCategory(6, body.Male))
	assert.Equal(t, Fitness, GetCategory(14, body.Male))
	assert.Equal(t, Average, GetCategory(18, body.Male))
	assert.Equal(t, Obese, GetCategory(25, body.Male))

	assert.Equal(t, Athletes, GetCategory(14, body.Female))
	assert.Equal(t, Average, GetCategory(26.9, body.Female))
	assert.Equal(t, Obese, GetCategory(32, body.Female))
}

func TestSplitMass(t *testing.T) {
	fat, lean := SplitMass(80, 20)
	assert.InDelta(t, 16, fat, 1e-9)
	assert.InDelta(t, 64, lean, 1e-9)
}

func TestCalculate_Female(t *testing.T) {
	in := Input{
		System: units.Metric,
		Gender: "female",
		Height: form.NewNumber(165),
		Weight: form.NewNumber(60),
		Waist:  form.NewNumber(75),
		Neck:   form.NewNumber(33),
		Hip:    form.NewNumber(95),
	}
	require.Empty(t, in.Validate())

	res, err := Calculate(in.Params())
	require.NoError(t, err)
	assert.InDelta(t, 26.9, res.BodyFat, 0.1)
	assert.Equal(t, Average, res.Category)
	assert.InDelta(t, 60, res.FatMassKg+res.LeanMassKg, 0.11)
}

func TestInput_Validate(t *testing.T) {
	in := Input{
		System: units.Metric,
		Gender: "female",
		Height: form.NewNumber(165),
		Weight: form.NewNumber(60),
		Waist:  form.NewNumber(75),
		Neck:   form.NewNumber(33),
	}
	assert.Equal(t, "Hip is required", in.Validate()["hip"])

	in.Gender = "male"
	assert.Empty(t, in.Validate(), "hip is not needed for men")

	in.Neck = form.NewNumber(75)
	assert.Equal(t, "Waist must be larger than neck", in.Validate()["waist"])
}
