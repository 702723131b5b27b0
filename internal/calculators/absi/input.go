package absi

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System units.System `json:"system"`
	Gender string       `json:"gender"`
	Age    form.Number  `json:"age"`
	Height form.Number  `json:"height"`
	Weight form.Number  `json:"weight"`
	Waist  form.Number  `json:"waist"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.GenderField(),
		body.AgeField(),
		body.HeightField(system),
		body.WeightField(system),
		body.CircumferenceField(system, "waist", "Waist", 40, 200, 16, 80),
	}
}

func (in Input) Validate() form.Errors {
	return validation.Collect(map[string]validation.Result{
		"gender": validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"age":    validation.ValidateAge(in.Age),
		"height": validation.ValidateHeight(in.Height, in.System),
		"weight": validation.ValidateWeight(in.Weight, in.System),
		"waist":  validation.ValidateWaist(in.Waist, in.System),
	})
}

func (in Input) Params() Params {
	return Params{
		Gender:   body.Gender(in.Gender),
		Age:      in.Age.Or(0),
		WaistCm:  body.CircumferenceCm(in.System, in.Waist),
		HeightCm: body.HeightCm(in.System, in.Height),
		WeightKg: body.WeightKg(in.System, in.Weight),
	}
}
