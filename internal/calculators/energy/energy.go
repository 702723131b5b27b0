package energy

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

type Formula string

const (
	MifflinStJeor  Formula = "mifflin_st_jeor"
	HarrisBenedict Formula = "harris_benedict"
	KatchMcArdle   Formula = "katch_mcardle"
)

// daily kcal off maintenance for the loss and gain goals
const kcalPerDayShift = 500

var FormulaValues = []string{string(MifflinStJeor), string(HarrisBenedict), string(KatchMcArdle)}

type Params struct {
	Gender   body.Gender
	Age      float64
	HeightCm float64
	WeightKg float64
	// BodyFat in percent; required by Katch-McArdle only.
	BodyFat  float64
	Activity body.ActivityLevel
	Formula  Formula
}

// Goals are daily calorie targets around maintenance.
type Goals struct {
	Maintain float64 `json:"maintain"`
	MildLoss float64 `json:"mildLoss"`
	Loss     float64 `json:"loss"`
	Gain     float64 `json:"gain"`
}

type Result struct {
	Formula  Formula `json:"formula"`
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	BMRkJ    float64 `json:"bmrKj"`
	TDEEkJ   float64 `json:"tdeeKj"`
	Goals    Goals   `json:"goals"`
	Activity float64 `json:"activityMultiplier"`
}

func MifflinStJeorBMR(gender body.Gender, age, heightCm, weightKg float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*age
	if gender == body.Female {
		return base - 161
	}
	return base + 5
}

// HarrisBenedictBMR is the Roza and Shizgal (1984) revision.
func HarrisBenedictBMR(gender body.Gender, age, heightCm, weightKg float64) float64 {
	if gender == body.Female {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
}

func KatchMcArdleBMR(weightKg, bodyFat float64) float64 {
	_, lean := leanMass(weightKg, bodyFat)
	return 370 + 21.6*lean
}

func leanMass(weightKg, bodyFat float64) (fat, lean float64) {
	fat = weightKg * bodyFat / 100
	return fat, weightKg - fat
}

// BMR dispatches to the selected formula.
func BMR(p Params) (float64, error) {
	if p.WeightKg <= 0 {
		return 0, body.DomainError("weight must be positive, got %v kg", p.WeightKg)
	}
	switch p.Formula {
	case MifflinStJeor, "":
		if err := checkAnthropometrics(p); err != nil {
			return 0, err
		}
		return MifflinStJeorBMR(p.Gender, p.Age, p.HeightCm, p.WeightKg), nil
	case HarrisBenedict:
		if err := checkAnthropometrics(p); err != nil {
			return 0, err
		}
		return HarrisBenedictBMR(p.Gender, p.Age, p.HeightCm, p.WeightKg), nil
	case KatchMcArdle:
		if p.BodyFat <= 0 || p.BodyFat >= 100 {
			return 0, body.DomainError("body fat must be between 0 and 100, got %v", p.BodyFat)
		}
		return KatchMcArdleBMR(p.WeightKg, p.BodyFat), nil
	default:
		return 0, body.DomainError("unknown formula %q", p.Formula)
	}
}

func checkAnthropometrics(p Params) error {
	if !p.Gender.IsValid() {
		return body.DomainError("unknown gender %q", p.Gender)
	}
	if p.HeightCm <= 0 {
		return body.DomainError("height must be positive, got %v cm", p.HeightCm)
	}
	if p.Age < 0 {
		return body.DomainError("age must not be negative, got %v", p.Age)
	}
	return nil
}

// TDEE returns BMR scaled by the activity multiplier.
func TDEE(p Params) (bmr, tdee float64, err error) {
	bmr, err = BMR(p)
	if err != nil {
		return 0, 0, err
	}
	m, err := p.Activity.Multiplier()
	if err != nil {
		return 0, 0, err
	}
	return bmr, bmr * m, nil
}

func Calculate(p Params) (Result, error) {
	bmr, tdee, err := TDEE(p)
	if err != nil {
		return Result{}, err
	}
	m, _ := p.Activity.Multiplier()
	formula := p.Formula
	if formula == "" {
		formula = MifflinStJeor
	}

	return Result{
		Formula:  formula,
		BMR:      units.RoundTo(bmr, 0),
		TDEE:     units.RoundTo(tdee, 0),
		BMRkJ:    units.RoundTo(units.ConvertEnergy(bmr, units.Kilocalorie, units.Kilojoule), 0),
		TDEEkJ:   units.RoundTo(units.ConvertEnergy(tdee, units.Kilocalorie, units.Kilojoule), 0),
		Activity: m,
		Goals: Goals{
			Maintain: units.RoundTo(tdee, 0),
			MildLoss: units.RoundTo(tdee-kcalPerDayShift/2, 0),
			Loss:     units.RoundTo(tdee-kcalPerDayShift, 0),
			Gain:     units.RoundTo(tdee+kcalPerDayShift, 0),
		},
	}, nil
}
