package idealweight

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System units.System `json:"system"`
	Gender string       `json:"gender"`
	Height form.Number  `json:"height"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.GenderField(),
		body.HeightField(system),
	}
}

func (in Input) Validate() form.Errors {
	return validation.Collect(map[string]validation.Result{
		"gender": validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"height": validation.ValidateHeight(in.Height, in.System),
	})
}

func (in Input) Params() Params {
	return Params{
		Gender:   body.Gender(in.Gender),
		HeightCm: body.HeightCm(in.System, in.Height),
	}
}
