package ffmi

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

var (
	BelowAverage = body.Category{Name: "Below Average", Color: "blue"}
	Average      = body.Category{Name: "Average", Color: "teal"}
	AboveAverage = body.Category{Name: "Above Average", Color: "green"}
	Excellent    = body.Category{Name: "Excellent", Color: "lime"}
	Superior     = body.Category{Name: "Superior", Color: "orange"}
	Suspicious   = body.Category{Name: "Suspiciously High", Color: "red"}
)

var brackets = map[body.Gender][]body.Bracket{
	body.Male: {
		{Below: 18, Category: BelowAverage},
		{Below: 20, Category: Average},
		{Below: 22, Category: AboveAverage},
		{Below: 23, Category: Excellent},
		{Below: 26, Category: Superior},
	},
	body.Female: {
		{Below: 15, Category: BelowAverage},
		{Below: 17, Category: Average},
		{Below: 19, Category: AboveAverage},
		{Below: 20, Category: Excellent},
		{Below: 22, Category: Superior},
	},
}

// FFMI is normalized to this height, in meters.
const referenceHeightM = 1.8

type Params struct {
	Gender   body.Gender
	HeightCm float64
	WeightKg float64
	BodyFat  float64
}

type Result struct {
	FFMI       float64       `json:"ffmi"`
	Normalized float64       `json:"normalized"`
	LeanMassKg float64       `json:"leanMassKg"`
	FatMassKg  float64       `json:"fatMassKg"`
	Category   body.Category `json:"category"`
}

// CalculateFFMI returns the fat-free mass index and its height-normalized value.
func CalculateFFMI(heightCm, weightKg, bodyFat float64) (ffmi, normalized float64, err error) {
	if heightCm <= 0 {
		return 0, 0, body.DomainError("height must be positive, got %v cm", heightCm)
	}
	if weightKg <= 0 {
		return 0, 0, body.DomainError("weight must be positive, got %v kg", weightKg)
	}
	if bodyFat < 0 || bodyFat >= 100 {
		return 0, 0, body.DomainError("body fat must be between 0 and 100, got %v", bodyFat)
	}
	m := heightCm / 100
	lean := weightKg * (1 - bodyFat/100)
	ffmi = lean / (m * m)
	return ffmi, ffmi + 6.1*(referenceHeightM-m), nil
}

func GetCategory(normalized float64, gender body.Gender) body.Category {
	return body.Categorize(normalized, brackets[gender], Suspicious)
}

func Calculate(p Params) (Result, error) {
	if !p.Gender.IsValid() {
		return Result{}, body.DomainError("unknown gender %q", p.Gender)
	}
	ffmi, normalized, err := CalculateFFMI(p.HeightCm, p.WeightKg, p.BodyFat)
	if err != nil {
		return Result{}, err
	}
	fat := p.WeightKg * p.BodyFat / 100
	rounded := units.RoundTo(normalized, 1)
	return Result{
		FFMI:       units.RoundTo(ffmi, 1),
		Normalized: rounded,
		LeanMassKg: units.RoundTo(p.WeightKg-fat, 1),
		FatMassKg:  units.RoundTo(fat, 1),
		Category:   GetCategory(rounded, p.Gender),
	}, nil
}
