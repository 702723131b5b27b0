package bmi

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

var (
	Underweight = body.Category{Name: "Underweight", Color: "blue"}
	Normal      = body.Category{Name: "Normal", Color: "green"}
	Overweight  = body.Category{Name: "Overweight", Color: "orange"}
	Obese       = body.Category{Name: "Obese", Color: "red"}
)

const (
	healthyMin = 18.5
	healthyMax = 24.9
)

var brackets = []body.Bracket{
	{Below: 18.5, Category: Underweight},
	{Below: 25, Category: Normal},
	{Below: 30, Category: Overweight},
}

type Params struct {
	HeightCm float64
	WeightKg float64
}

type Result struct {
	BMI      float64       `json:"bmi"`
	Category body.Category `json:"category"`
	// Prime is BMI relative to the upper limit of the normal range.
	Prime        float64 `json:"prime"`
	HealthyMinKg float64 `json:"healthyMinKg"`
	HealthyMaxKg float64 `json:"healthyMaxKg"`
	HeightCm     float64 `json:"heightCm"`
	WeightKg     float64 `json:"weightKg"`
	// ToHealthyKg is negative for weight to lose and positive for weight to gain.
	ToHealthyKg float64 `json:"toHealthyKg"`
}

// CalculateBMI returns weight / height² with height converted to meters.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 {
		return 0, body.DomainError("height must be positive, got %v cm", heightCm)
	}
	if weightKg <= 0 {
		return 0, body.DomainError("weight must be positive, got %v kg", weightKg)
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

func GetBMICategory(bmi float64) body.Category {
	return body.Categorize(bmi, brackets, Obese)
}

// HealthyWeightRange is the weight range with a normal BMI at the given height.
func HealthyWeightRange(heightCm float64) (minKg, maxKg float64) {
	m := heightCm / 100
	return healthyMin * m * m, healthyMax * m * m
}

func Calculate(p Params) (Result, error) {
	value, err := CalculateBMI(p.HeightCm, p.WeightKg)
	if err != nil {
		return Result{}, err
	}
	rounded := units.RoundTo(value, 2)
	minKg, maxKg := HealthyWeightRange(p.HeightCm)

	var toHealthy float64
	switch {
	case p.WeightKg < minKg:
		toHealthy = minKg - p.WeightKg
	case p.WeightKg > maxKg:
		toHealthy = maxKg - p.WeightKg
	}

	return Result{
		BMI:          rounded,
		Category:     GetBMICategory(rounded),
		Prime:        units.RoundTo(value/25, 2),
		HealthyMinKg: units.RoundTo(minKg, 1),
		HealthyMaxKg: units.RoundTo(maxKg, 1),
		HeightCm:     p.HeightCm,
		WeightKg:     p.WeightKg,
		ToHealthyKg:  units.RoundTo(toHealthy, 1),
	}, nil
}
