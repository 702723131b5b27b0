package onerepmax

import (
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System  units.System `json:"system"`
	Weight  form.Number  `json:"weight"`
	Reps    form.Number  `json:"reps"`
	Formula string       `json:"formula"`
}

func Fields(system units.System) []form.Field {
	weight := form.NumberField{Name: "weight", Label: "Weight lifted", Step: 0.5, Required: true, Unit: string(system.DefaultWeightUnit())}
	if system == units.Imperial {
		weight.Min, weight.Max = form.Float(2), form.Float(1100)
	} else {
		weight.Min, weight.Max = form.Float(1), form.Float(500)
	}
	return []form.Field{
		weight,
		form.NumberField{Name: "reps", Label: "Reps", Min: form.Float(1), Max: form.Float(maxReps), Step: 1, Required: true},
		form.RadioField{Name: "formula", Label: "Formula", Value: string(Average), Options: []form.Option{
			{Value: string(Average), Label: "Average of all"},
			{Value: string(Epley), Label: "Epley"},
			{Value: string(Brzycki), Label: "Brzycki"},
			{Value: string(Lombardi), Label: "Lombardi"},
			{Value: string(OConner), Label: "O'Conner"},
		}},
	}
}

func (in Input) Validate() form.Errors {
	results := map[string]validation.Result{
		"weight": validation.ValidateLiftedWeight(in.Weight, in.System),
		"reps":   validation.ValidateReps(in.Reps),
	}
	if in.Formula != "" {
		results["formula"] = validation.ValidateChoice("Formula", in.Formula, FormulaValues...)
	}
	return validation.Collect(results)
}

func (in Input) Params() Params {
	return Params{
		Weight:  in.Weight.Or(0),
		Unit:    in.System.DefaultWeightUnit(),
		Reps:    int(in.Reps.Or(0)),
		Formula: Formula(in.Formula),
	}
}
