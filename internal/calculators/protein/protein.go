package protein

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

type Goal string

const (
	Maintain Goal = "maintain"
	Lose     Goal = "lose"
	Build    Goal = "build"
)

type Training string

const (
	Sedentary Training = "sedentary"
	Active    Training = "active"
	Athlete   Training = "athlete"
)

const kcalPerGram = 4

// grams per kg body weight, low and high end
type gramsPerKg struct {
	Low, High float64
}

var intake = map[Training]map[Goal]gramsPerKg{
	Sedentary: {Maintain: {0.8, 1.0}, Lose: {1.2, 1.6}, Build: {1.2, 1.6}},
	Active:    {Maintain: {1.2, 1.6}, Lose: {1.6, 2.2}, Build: {1.6, 2.2}},
	Athlete:   {Maintain: {1.4, 2.0}, Lose: {1.8, 2.7}, Build: {1.6, 2.2}},
}

var (
	GoalValues     = []string{string(Maintain), string(Lose), string(Build)}
	TrainingValues = []string{string(Sedentary), string(Active), string(Athlete)}
)

type Params struct {
	WeightKg float64
	Goal     Goal
	Training Training
	Meals    int
}

type Result struct {
	GramsPerKgMin float64 `json:"gramsPerKgMin"`
	GramsPerKgMax float64 `json:"gramsPerKgMax"`
	MinGrams      float64 `json:"minGrams"`
	MaxGrams      float64 `json:"maxGrams"`
	PerMealMin    float64 `json:"perMealMin"`
	PerMealMax    float64 `json:"perMealMax"`
	CaloriesMin   float64 `json:"caloriesMin"`
	CaloriesMax   float64 `json:"caloriesMax"`
}

// Range returns the daily protein range in grams.
func Range(weightKg float64, goal Goal, training Training) (minG, maxG float64, err error) {
	if weightKg <= 0 {
		return 0, 0, body.DomainError("weight must be positive, got %v kg", weightKg)
	}
	byGoal, ok := intake[training]
	if !ok {
		return 0, 0, body.DomainError("unknown training level %q", training)
	}
	r, ok := byGoal[goal]
	if !ok {
		return 0, 0, body.DomainError("unknown goal %q", goal)
	}
	return r.Low * weightKg, r.High * weightKg, nil
}

func Calculate(p Params) (Result, error) {
	minG, maxG, err := Range(p.WeightKg, p.Goal, p.Training)
	if err != nil {
		return Result{}, err
	}
	if p.Meals < 1 {
		return Result{}, body.DomainError("meals must be at least 1, got %d", p.Meals)
	}
	meals := float64(p.Meals)
	r := intake[p.Training][p.Goal]
	return Result{
		GramsPerKgMin: r.Low,
		GramsPerKgMax: r.High,
		MinGrams:      units.RoundTo(minG, 0),
		MaxGrams:      units.RoundTo(maxG, 0),
		PerMealMin:    units.RoundTo(minG/meals, 0),
		PerMealMax:    units.RoundTo(maxG/meals, 0),
		CaloriesMin:   units.RoundTo(minG*kcalPerGram, 0),
		CaloriesMax:   units.RoundTo(maxG*kcalPerGram, 0),
	}, nil
}
