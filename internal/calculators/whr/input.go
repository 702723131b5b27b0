package whr

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System units.System `json:"system"`
	Gender string       `json:"gender"`
	Waist  form.Number  `json:"waist"`
	Hip    form.Number  `json:"hip"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.GenderField(),
		body.CircumferenceField(system, "waist", "Waist", 40, 200, 16, 80),
		body.CircumferenceField(system, "hip", "Hip", 50, 200, 20, 80),
	}
}

func (in Input) Validate() form.Errors {
	return validation.Collect(map[string]validation.Result{
		"gender": validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"waist":  validation.ValidateWaist(in.Waist, in.System),
		"hip":    validation.ValidateHip(in.Hip, in.System),
	})
}

func (in Input) Params() Params {
	return Params{
		Gender:  body.Gender(in.Gender),
		WaistCm: body.CircumferenceCm(in.System, in.Waist),
		HipCm:   body.CircumferenceCm(in.System, in.Hip),
	}
}
