package protein

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

const defaultMeals = 3

type Input struct {
	System   units.System `json:"system"`
	Weight   form.Number  `json:"weight"`
	Goal     string       `json:"goal"`
	Training string       `json:"training"`
	Meals    form.Number  `json:"meals"`
}

func Fields(system units.System) []form.Field {
	return []form.Field{
		body.WeightField(system),
		form.SelectField{Name: "goal", Label: "Goal", Required: true, Options: []form.Option{
			{Value: string(Maintain), Label: "Maintain weight"},
			{Value: string(Lose), Label: "Lose fat"},
			{Value: string(Build), Label: "Build muscle"},
		}},
		form.RadioField{Name: "training", Label: "Training", Options: []form.Option{
			{Value: string(Sedentary), Label: "Little or no training"},
			{Value: string(Active), Label: "Regular training"},
			{Value: string(Athlete), Label: "Athlete"},
		}},
		form.NumberField{Name: "meals", Label: "Meals per day", Min: form.Float(1), Max: form.Float(8), Step: 1, Value: form.NewNumber(defaultMeals)},
	}
}

func (in Input) Validate() form.Errors {
	results := map[string]validation.Result{
		"weight":   validation.ValidateWeight(in.Weight, in.System),
		"goal":     validation.ValidateChoice("Goal", in.Goal, GoalValues...),
		"training": validation.ValidateChoice("Training", in.Training, TrainingValues...),
	}
	if !in.Meals.IsEmpty() {
		if meals := in.Meals.Or(0); meals < 1 || meals > 8 || meals != float64(int(meals)) {
			results["meals"] = validation.Result{Error: "Meals per day must be a whole number between 1 and 8"}
		}
	}
	return validation.Collect(results)
}

func (in Input) Params() Params {
	return Params{
		WeightKg: body.WeightKg(in.System, in.Weight),
		Goal:     Goal(in.Goal),
		Training: Training(in.Training),
		Meals:    int(in.Meals.Or(defaultMeals)),
	}
}
