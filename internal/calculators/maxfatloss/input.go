package maxfatloss

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System   units.System `json:"system"`
	Gender   string       `json:"gender"`
	Weight   form.Number  `json:"weight"`
	BodyFat  form.Number  `json:"bodyFat"`
	Activity string       `json:"activity"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.GenderField(),
		body.WeightField(system),
		body.BodyFatField(),
		body.ActivityField(),
	}
}

func (in Input) Validate() form.Errors {
	return validation.Collect(map[string]validation.Result{
		"gender":   validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"weight":   validation.ValidateWeight(in.Weight, in.System),
		"bodyFat":  validation.ValidateBodyFat(in.BodyFat),
		"activity": validation.ValidateChoice("Activity level", in.Activity, body.ActivityValues()...),
	})
}

func (in Input) Params() Params {
	return Params{
		Gender:   body.Gender(in.Gender),
		WeightKg: body.WeightKg(in.System, in.Weight),
		BodyFat:  in.BodyFat.Or(0),
		Activity: body.ActivityLevel(in.Activity),
	}
}
