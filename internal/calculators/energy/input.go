package energy

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System   units.System `json:"system"`
	Gender   string       `json:"gender"`
	Age      form.Number  `json:"age"`
	Height   form.Number  `json:"height"`
	Weight   form.Number  `json:"weight"`
	BodyFat  form.Number  `json:"bodyFat"`
	Activity string       `json:"activity"`
	Formula  string       `json:"formula"`
}

func Fields(system units.System) []form.Field {
	bodyFat := body.BodyFatField()
	bodyFat.Label = "Body fat (Katch-McArdle only)"
	bodyFat.Required = false
	return []form.Field{
		form.RadioField{Name: "formula", Label: "Formula", Options: []form.Option{
			{Value: string(MifflinStJeor), Label: "Mifflin-St Jeor"},
			{Value: string(HarrisBenedict), Label: "Revised Harris-Benedict"},
			{Value: string(KatchMcArdle), Label: "Katch-McArdle"},
		}, Value: string(MifflinStJeor)},
		body.GenderField(),
		body.AgeField(),
		body.HeightField(system),
		body.WeightField(system),
		bodyFat,
		body.ActivityField(),
	}
}

func (in Input) Validate() form.Errors {
	results := map[string]validation.Result{
		"formula":  validation.ValidateChoice("Formula", in.formula(), FormulaValues...),
		"weight":   validation.ValidateWeight(in.Weight, in.System),
		"activity": validation.ValidateChoice("Activity level", in.Activity, body.ActivityValues()...),
	}
	if Formula(in.formula()) == KatchMcArdle {
		results["bodyFat"] = validation.ValidateBodyFat(in.BodyFat)
	} else {
		results["gender"] = validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female))
		results["age"] = validation.ValidateAge(in.Age)
		results["height"] = validation.ValidateHeight(in.Height, in.System)
	}
	return validation.Collect(results)
}

func (in Input) formula() string {
	if in.Formula == "" {
		return string(MifflinStJeor)
	}
	return in.Formula
}

func (in Input) Params() Params {
	return Params{
		Gender:   body.Gender(in.Gender),
		Age:      in.Age.Or(0),
		HeightCm: body.HeightCm(in.System, in.Height),
		WeightKg: body.WeightKg(in.System, in.Weight),
		BodyFat:  in.BodyFat.Or(0),
		Activity: body.ActivityLevel(in.Activity),
		Formula:  Formula(in.formula()),
	}
}
