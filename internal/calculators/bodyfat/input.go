package bodyfat

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
	Weight form.Number  `json:"weight"`
	Waist  form.Number  `json:"waist"`
	Neck   form.Number  `json:"neck"`
	Hip    form.Number  `json:"hip"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.GenderField(),
		body.HeightField(system),
		body.WeightField(system),
		body.CircumferenceField(system, "waist", "Waist", 40, 200, 16, 80),
		body.CircumferenceField(system, "neck", "Neck", 20, 80, 8, 32),
		body.CircumferenceField(system, "hip", "Hip (women only)", 50, 200, 20, 80),
	}
}

func (in Input) Validate() form.Errors {
	results := map[string]validation.Result{
		"gender": validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"height": validation.ValidateHeight(in.Height, in.System),
		"weight": validation.ValidateWeight(in.Weight, in.System),
		"waist":  validation.ValidateWaist(in.Waist, in.System),
		"neck":   validation.ValidateNeck(in.Neck, in.System),
	}
	if body.Gender(in.Gender) == body.Female {
		results["hip"] = validation.ValidateHip(in.Hip, in.System)
	}
	errs := validation.Collect(results)
	if !errs.HasErrors() && in.Waist.Or(0) <= in.Neck.Or(0) {
		errs.Add("waist", "Waist must be larger than neck")
	}
	return errs
}

func (in Input) Params() Params {
	p := Params{
		Gender:   body.Gender(in.Gender),
		HeightCm: body.HeightCm(in.System, in.Height),
		WeightKg: body.WeightKg(in.System, in.Weight),
		WaistCm:  body.CircumferenceCm(in.System, in.Waist),
		NeckCm:   body.CircumferenceCm(in.System, in.Neck),
	}
	if p.Gender == body.Female {
		p.HipCm = body.CircumferenceCm(in.System, in.Hip)
	}
	return p
}
