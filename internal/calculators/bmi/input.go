package bmi

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

// Input is the raw form submission, in the units of System.
type Input struct {
	System units.System `json:"system"`
	Height form.Number  `json:"height"`
	Weight form.Number  `json:"weight"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.HeightField(system),
		body.WeightField(system),
	}
}

func (in Input) Validate() form.Errors {
	return validation.Collect(map[string]validation.Result{
		"height": validation.ValidateHeight(in.Height, in.System),
		"weight": validation.ValidateWeight(in.Weight, in.System),
	})
}

func (in Input) Params() Params {
	return Params{
		HeightCm: body.HeightCm(in.System, in.Height),
		WeightKg: body.WeightKg(in.System, in.Weight),
	}
}
