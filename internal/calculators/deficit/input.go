package deficit

import (
	"time"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System     units.System `json:"system"`
	Gender     string       `json:"gender"`
	Age        form.Number  `json:"age"`
	Height     form.Number  `json:"height"`
	Weight     form.Number  `json:"weight"`
	GoalWeight form.Number  `json:"goalWeight"`
	WeeklyLoss form.Number  `json:"weeklyLoss"`
	Activity   string       `json:"activity"`
	StartDate  string       `json:"startDate"`
}

func maxWeeklyLoss(system units.System) float64 {
	if system == units.Imperial {
		return 4
	}
	return 2
}

func Fields(system units.System) []form.Field {
	goal := body.WeightField(system)
	goal.Name, goal.Label = "goalWeight", "Goal weight"
	return []form.Field{
		body.GenderField(),
		body.AgeField(),
		body.HeightField(system),
		body.WeightField(system),
		goal,
		form.NumberField{
			Name: "weeklyLoss", Label: "Weekly loss", Min: form.Float(0.1), Max: form.Float(maxWeeklyLoss(system)),
			Step: 0.1, Unit: string(system.DefaultWeightUnit()), Required: true,
		},
		body.ActivityField(),
		form.DateField{Name: "startDate", Label: "Start date"},
	}
}

func (in Input) Validate() form.Errors {
	goal := validation.ValidateWeight(in.GoalWeight, in.System)
	goal.Error = replaceLabel(goal.Error)
	errs := validation.Collect(map[string]validation.Result{
		"gender":     validation.ValidateChoice("Gender", in.Gender, string(body.Male), string(body.Female)),
		"age":        validation.ValidateAge(in.Age),
		"height":     validation.ValidateHeight(in.Height, in.System),
		"weight":     validation.ValidateWeight(in.Weight, in.System),
		"goalWeight": goal,
		"weeklyLoss": validation.ValidatePositive("Weekly loss", in.WeeklyLoss, maxWeeklyLoss(in.System)),
		"activity":   validation.ValidateChoice("Activity level", in.Activity, body.ActivityValues()...),
	})
	// the comparison needs both weights valid
	_, goalBad := errs["goalWeight"]
	_, weightBad := errs["weight"]
	if !goalBad && !weightBad && in.GoalWeight.Or(0) >= in.Weight.Or(0) {
		errs.Add("goalWeight", "Goal weight must be below current weight")
	}
	if in.StartDate != "" {
		if _, err := time.Parse(DateLayout, in.StartDate); err != nil {
			errs.Add("startDate", "Start date must be a valid date")
		}
	}
	return errs
}

func replaceLabel(msg string) string {
	if msg == "" {
		return ""
	}
	return "Goal weight" + msg[len("Weight"):]
}

func (in Input) Params() Params {
	p := Params{
		Gender:       body.Gender(in.Gender),
		Age:          in.Age.Or(0),
		HeightCm:     body.HeightCm(in.System, in.Height),
		WeightKg:     body.WeightKg(in.System, in.Weight),
		GoalWeightKg: body.WeightKg(in.System, in.GoalWeight),
		WeeklyLossKg: body.WeightKg(in.System, in.WeeklyLoss),
		Activity:     body.ActivityLevel(in.Activity),
	}
	if d, err := time.Parse(DateLayout, in.StartDate); err == nil {
		p.StartDate = d
	}
	return p
}
