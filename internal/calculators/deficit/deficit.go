package deficit

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/calculators/energy"
	"github.com/2beens/fitcalc/internal/policy"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/dustin/go-humanize"
)

const DateLayout = "2006-01-02"

type Params struct {
	Gender       body.Gender
	Age          float64
	HeightCm     float64
	WeightKg     float64
	GoalWeightKg float64
	WeeklyLossKg float64
	Activity     body.ActivityLevel
	// StartDate is optional; a zero value means no goal date is computed.
	StartDate time.Time
}

type Result struct {
	TDEE          float64 `json:"tdee"`
	DailyDeficit  float64 `json:"dailyDeficit"`
	DailyCalories float64 `json:"dailyCalories"`
	// Floored is set when the target was raised to the minimum safe intake.
	Floored      bool     `json:"floored"`
	WeeklyLossKg float64  `json:"weeklyLossKg"`
	Weeks        float64  `json:"weeks"`
	Days         int      `json:"days"`
	GoalDate     string   `json:"goalDate,omitempty"`
	Achievable   bool     `json:"achievable"`
	Warnings     []string `json:"warnings,omitempty"`
}

func Calculate(p Params, th policy.Thresholds) (Result, error) {
	if p.GoalWeightKg <= 0 || p.GoalWeightKg >= p.WeightKg {
		return Result{}, body.DomainError("goal weight %.1f kg must be positive and below current weight %.1f kg", p.GoalWeightKg, p.WeightKg)
	}
	if p.WeeklyLossKg <= 0 {
		return Result{}, body.DomainError("weekly loss must be positive, got %v kg", p.WeeklyLossKg)
	}

	_, tdee, err := energy.TDEE(energy.Params{
		Gender:   p.Gender,
		Age:      p.Age,
		HeightCm: p.HeightCm,
		WeightKg: p.WeightKg,
		Activity: p.Activity,
		Formula:  energy.MifflinStJeor,
	})
	if err != nil {
		return Result{}, err
	}

	var warnings []string
	if maxWeekly := p.WeightKg * th.MaxWeeklyLossPercent / 100; p.WeeklyLossKg > maxWeekly {
		warnings = append(warnings, fmt.Sprintf("Losing more than %s%% of body weight per week is not recommended.", humanize.Ftoa(th.MaxWeeklyLossPercent)))
	}

	target := tdee - p.WeeklyLossKg*th.FatEnergyKcalPerKg/7
	floored := false
	if floor := th.MinCalories(string(p.Gender)); target < floor {
		target = floor
		floored = true
		warnings = append(warnings, "Daily calories were raised to the minimum safe intake.")
	}

	res := Result{
		TDEE:          units.RoundTo(tdee, 0),
		DailyCalories: units.RoundTo(target, 0),
		Floored:       floored,
		Warnings:      warnings,
	}

	deficit := tdee - target
	if deficit <= 0 {
		res.Warnings = append(res.Warnings, "Your maintenance calories are already at the minimum safe intake; increase activity instead.")
		return res, nil
	}

	weeklyLoss := deficit * 7 / th.FatEnergyKcalPerKg
	weeks := (p.WeightKg - p.GoalWeightKg) / weeklyLoss
	days := int(math.Ceil(weeks * 7))

	res.DailyDeficit = units.RoundTo(deficit, 0)
	res.WeeklyLossKg = units.RoundTo(weeklyLoss, 2)
	res.Weeks = units.RoundTo(weeks, 1)
	res.Days = days
	res.Achievable = true
	if !p.StartDate.IsZero() {
		res.GoalDate = p.StartDate.AddDate(0, 0, days).Format(DateLayout)
	}
	return res, nil
}
