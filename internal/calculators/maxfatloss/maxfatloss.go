package maxfatloss

import (
	"fmt"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/calculators/energy"
	"github.com/2beens/fitcalc/internal/policy"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/dustin/go-humanize"
)

type Params struct {
	Gender   body.Gender
	WeightKg float64
	BodyFat  float64
	Activity body.ActivityLevel
}

type Result struct {
	FatMassKg float64 `json:"fatMassKg"`
	TDEE      float64 `json:"tdee"`
	// MaxDeficit is the largest daily deficit fat stores can cover.
	MaxDeficit          float64  `json:"maxDeficit"`
	RecommendedIntake   float64  `json:"recommendedIntake"`
	Floored             bool     `json:"floored"`
	MaxWeeklyLossKg     float64  `json:"maxWeeklyLossKg"`
	BelowMinimumBodyFat bool     `json:"belowMinimumBodyFat"`
	Warnings            []string `json:"warnings,omitempty"`
}

// MaxDailyDeficit is the energy the body can draw from its fat mass per day.
func MaxDailyDeficit(fatMassKg float64, th policy.Thresholds) float64 {
	return fatMassKg * th.MaxFatOxidationKcalPerKgFat
}

func Calculate(p Params, th policy.Thresholds) (Result, error) {
	if !p.Gender.IsValid() {
		return Result{}, body.DomainError("unknown gender %q", p.Gender)
	}
	_, tdee, err := energy.TDEE(energy.Params{
		WeightKg: p.WeightKg,
		BodyFat:  p.BodyFat,
		Activity: p.Activity,
		Formula:  energy.KatchMcArdle,
	})
	if err != nil {
		return Result{}, err
	}

	fatMass := p.WeightKg * p.BodyFat / 100
	res := Result{
		FatMassKg: units.RoundTo(fatMass, 1),
		TDEE:      units.RoundTo(tdee, 0),
	}

	if minFat := th.MinBodyFat(string(p.Gender)); p.BodyFat <= minFat {
		res.BelowMinimumBodyFat = true
		res.RecommendedIntake = res.TDEE
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Body fat is at or below %s%%, the essential minimum; further fat loss is not advised.",
			humanize.Ftoa(minFat),
		))
		return res, nil
	}

	maxDeficit := MaxDailyDeficit(fatMass, th)
	intake := tdee - maxDeficit
	if floor := th.MinCalories(string(p.Gender)); intake < floor {
		intake = floor
		res.Floored = true
		res.Warnings = append(res.Warnings, fmt.Sprintf("Intake was raised to the minimum of %s kcal per day.", humanize.Commaf(floor)))
	}
	deficit := tdee - intake
	if deficit < 0 {
		deficit = 0
	}

	res.MaxDeficit = units.RoundTo(maxDeficit, 0)
	res.RecommendedIntake = units.RoundTo(intake, 0)
	res.MaxWeeklyLossKg = units.RoundTo(deficit*7/th.FatEnergyKcalPerKg, 2)
	return res, nil
}
