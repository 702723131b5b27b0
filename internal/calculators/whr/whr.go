package whr

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

var (
	LowRisk      = body.Category{Name: "Low Risk", Color: "green"}
	ModerateRisk = body.Category{Name: "Moderate Risk", Color: "orange"}
	HighRisk     = body.Category{Name: "High Risk", Color: "red"}
)

// WHO thresholds
var brackets = map[body.Gender][]body.Bracket{
	body.Male: {
		{Below: 0.95, Category: LowRisk},
		{Below: 1.0, Category: ModerateRisk},
	},
	body.Female: {
		{Below: 0.80, Category: LowRisk},
		{Below: 0.85, Category: ModerateRisk},
	},
}

const (
	minRealistic = 0.5
	maxRealistic = 1.5
)

type Params struct {
	Gender  body.Gender
	WaistCm float64
	HipCm   float64
}

type Result struct {
	Ratio    float64       `json:"ratio"`
	Category body.Category `json:"category"`
	// MaxHealthyWaistCm is the largest waist with a low-risk ratio at these hips.
	MaxHealthyWaistCm float64 `json:"maxHealthyWaistCm"`
}

// CalculateWHR divides waist by hips. Both must be in the same unit.
func CalculateWHR(waist, hips float64) (float64, error) {
	if hips <= 0 {
		return 0, body.DomainError("hips must be positive, got %v", hips)
	}
	if waist <= 0 {
		return 0, body.DomainError("waist must be positive, got %v", waist)
	}
	ratio := waist / hips
	if ratio < minRealistic || ratio > maxRealistic {
		return 0, body.DomainError("waist-to-hip ratio %.2f is outside realistic range", ratio)
	}
	return ratio, nil
}

func GetWHRCategory(ratio float64, gender body.Gender) body.Category {
	return body.Categorize(ratio, brackets[gender], HighRisk)
}

func Calculate(p Params) (Result, error) {
	if !p.Gender.IsValid() {
		return Result{}, body.DomainError("unknown gender %q", p.Gender)
	}
	ratio, err := CalculateWHR(p.WaistCm, p.HipCm)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Ratio:             units.RoundTo(ratio, 2),
		Category:          GetWHRCategory(ratio, p.Gender),
		MaxHealthyWaistCm: units.RoundTo(brackets[p.Gender][0].Below*p.HipCm, 1),
	}, nil
}
