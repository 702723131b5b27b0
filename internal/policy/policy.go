package policy

import (
	"errors"
	"fmt"
)

// Thresholds are the safety limits several calculators apply on top of
// their formulas. They are deployment configuration, loaded from the
// [<env>.policy] TOML table, and not constants of any formula.
type Thresholds struct {
	// MinCaloriesMale and MinCaloriesFemale floor any recommended daily intake.
	MinCaloriesMale   float64 `toml:"min_calories_male" json:"minCaloriesMale"`
	MinCaloriesFemale float64 `toml:"min_calories_female" json:"minCaloriesFemale"`
	// MinBodyFat* is the essential fat level below which fat loss is not advised, in percent.
	MinBodyFatMale   float64 `toml:"min_body_fat_male" json:"minBodyFatMale"`
	MinBodyFatFemale float64 `toml:"min_body_fat_female" json:"minBodyFatFemale"`
	// MaxWeeklyLossPercent caps a weekly loss target relative to body weight.
	MaxWeeklyLossPercent float64 `toml:"max_weekly_loss_percent" json:"maxWeeklyLossPercent"`
	// FatEnergyKcalPerKg is the energy content of one kg of body fat.
	FatEnergyKcalPerKg float64 `toml:"fat_energy_kcal_per_kg" json:"fatEnergyKcalPerKg"`
	// MaxFatOxidationKcalPerKgFat is how many kcal per kg of fat mass
	// per day the body can mobilise from fat stores.
	MaxFatOxidationKcalPerKgFat float64 `toml:"max_fat_oxidation_kcal_per_kg_fat" json:"maxFatOxidationKcalPerKgFat"`
}

// Defaults are the values used in-repo so far; override them in config.
func Defaults() Thresholds {
	return Thresholds{
		MinCaloriesMale:             1500,
		MinCaloriesFemale:           1200,
		MinBodyFatMale:              5,
		MinBodyFatFemale:            12,
		MaxWeeklyLossPercent:        1,
		FatEnergyKcalPerKg:          7700,
		MaxFatOxidationKcalPerKgFat: 69.2,
	}
}

var ErrInvalidThreshold = errors.New("invalid policy threshold")

// WithDefaults fills every unset (zero) threshold from Defaults.
func (t Thresholds) WithDefaults() Thresholds {
	d := Defaults()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.MinCaloriesMale, d.MinCaloriesMale)
	fill(&t.MinCaloriesFemale, d.MinCaloriesFemale)
	fill(&t.MinBodyFatMale, d.MinBodyFatMale)
	fill(&t.MinBodyFatFemale, d.MinBodyFatFemale)
	fill(&t.MaxWeeklyLossPercent, d.MaxWeeklyLossPercent)
	fill(&t.FatEnergyKcalPerKg, d.FatEnergyKcalPerKg)
	fill(&t.MaxFatOxidationKcalPerKgFat, d.MaxFatOxidationKcalPerKgFat)
	return t
}

func (t Thresholds) Validate() error {
	for name, v := range map[string]float64{
		"min_calories_male":                 t.MinCaloriesMale,
		"min_calories_female":               t.MinCaloriesFemale,
		"min_body_fat_male":                 t.MinBodyFatMale,
		"min_body_fat_female":               t.MinBodyFatFemale,
		"max_weekly_loss_percent":           t.MaxWeeklyLossPercent,
		"fat_energy_kcal_per_kg":            t.FatEnergyKcalPerKg,
		"max_fat_oxidation_kcal_per_kg_fat": t.MaxFatOxidationKcalPerKgFat,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidThreshold, name, v)
		}
	}
	if t.MinBodyFatMale >= 100 || t.MinBodyFatFemale >= 100 {
		return fmt.Errorf("%w: minimum body fat must be below 100%%", ErrInvalidThreshold)
	}
	return nil
}

// MinCalories returns the intake floor for the given sex ("male" or "female").
func (t Thresholds) MinCalories(gender string) float64 {
	if gender == "female" {
		return t.MinCaloriesFemale
	}
	return t.MinCaloriesMale
}

func (t Thresholds) MinBodyFat(gender string) float64 {
	if gender == "female" {
		return t.MinBodyFatFemale
	}
	return t.MinBodyFatMale
}
