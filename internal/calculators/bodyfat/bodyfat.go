package bodyfat

import (
	"math"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

var (
	Essential = body.Category{Name: "Essential Fat", Color: "blue"}
	Athletes  = body.Category{Name: "Athletes", Color: "teal"}
	Fitness   = body.Category{Name: "Fitness", Color: "green"}
	Average   = body.Category{Name: "Average", Color: "orange"}
	Obese     = body.Category{Name: "Obese", Color: "red"}
)

// ACE body fat categories
var brackets = map[body.Gender][]body.Bracket{
	body.Male: {
		{Below: 6, Category: Essential},
		{Below: 14, Category: Athletes},
		{Below: 18, Category: Fitness},
		{Below: 25, Category: Average},
	},
	body.Female: {
		{Below: 14, Category: Essential},
		{Below: 21, Category: Athletes},
		{Below: 25, Category: Fitness},
		{Below: 32, Category: Average},
	},
}

const (
	minRealistic = 2
	maxRealistic = 70
)

type Params struct {
	Gender   body.Gender
	HeightCm float64
	WeightKg float64
	WaistCm  float64
	NeckCm   float64
	// HipCm is only used for women.
	HipCm float64
}

type Result struct {
	BodyFat    float64       `json:"bodyFat"`
	Category   body.Category `json:"category"`
	FatMassKg  float64       `json:"fatMassKg"`
	LeanMassKg float64       `json:"leanMassKg"`
}

// CalculateNavy applies the U.S. Navy circumference formula, all lengths in cm.
func CalculateNavy(gender body.Gender, heightCm, waistCm, neckCm, hipCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, body.DomainError("height must be positive, got %v cm", heightCm)
	}

	var pct float64
	switch gender {
	case body.Male:
		if waistCm-neckCm <= 0 {
			return 0, body.DomainError("waist must be larger than neck")
		}
		pct = 495/(1.0324-0.19077*math.Log10(waistCm-neckCm)+0.15456*math.Log10(heightCm)) - 450
	case body.Female:
		if hipCm <= 0 {
			return 0, body.DomainError("hip must be positive, got %v cm", hipCm)
		}
		if waistCm+hipCm-neckCm <= 0 {
			return 0, body.DomainError("waist plus hip must be larger than neck")
		}
		pct = 495/(1.29579-0.35004*math.Log10(waistCm+hipCm-neckCm)+0.22100*math.Log10(heightCm)) - 450
	default:
		return 0, body.DomainError("unknown gender %q", gender)
	}

	if pct < minRealistic || pct > maxRealistic {
		return 0, body.DomainError("body fat %.1f%% is outside realistic range", pct)
	}
	return pct, nil
}

func GetCategory(bodyFat float64, gender body.Gender) body.Category {
	return body.Categorize(bodyFat, brackets[gender], Obese)
}

// SplitMass divides total weight into fat and lean mass.
func SplitMass(weightKg, bodyFat float64) (fatKg, leanKg float64) {
	fatKg = weightKg * bodyFat / 100
	return fatKg, weightKg - fatKg
}

func Calculate(p Params) (Result, error) {
	pct, err := CalculateNavy(p.Gender, p.HeightCm, p.WaistCm, p.NeckCm, p.HipCm)
	if err != nil {
		return Result{}, err
	}
	if p.WeightKg <= 0 {
		return Result{}, body.DomainError("weight must be positive, got %v kg", p.WeightKg)
	}

	rounded := units.RoundTo(pct, 1)
	fat, lean := SplitMass(p.WeightKg, pct)
	return Result{
		BodyFat:    rounded,
		Category:   GetCategory(rounded, p.Gender),
		FatMassKg:  units.RoundTo(fat, 1),
		LeanMassKg: units.RoundTo(lean, 1),
	}, nil
}
