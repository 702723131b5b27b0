package absi

import (
	"math"

	"github.com/2beens/fitcalc/internal/calculators/bmi"
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/interp"
	"github.com/2beens/fitcalc/internal/units"
)

var (
	VeryLow  = body.Category{Name: "Very Low", Color: "green"}
	Low      = body.Category{Name: "Low", Color: "teal"}
	Average  = body.Category{Name: "Average", Color: "yellow"}
	High     = body.Category{Name: "High", Color: "orange"}
	VeryHigh = body.Category{Name: "Very High", Color: "red"}
)

// Krakauer & Krakauer z-score mortality risk brackets
var brackets = []body.Bracket{
	{Below: -0.868, Category: VeryLow},
	{Below: -0.272, Category: Low},
	{Below: 0.229, Category: Average},
	{Below: 0.798, Category: High},
}

type reference struct {
	mean, sd interp.Table
}

// NHANES 1999-2004 age-specific ABSI mean and standard deviation, adults,
// sampled by decade and interpolated in between.
var references = map[body.Gender]reference{
	body.Male: {
		mean: interp.Table{{X: 18, Y: 0.0785}, {X: 30, Y: 0.0800}, {X: 40, Y: 0.0814}, {X: 50, Y: 0.0828}, {X: 60, Y: 0.0840}, {X: 70, Y: 0.0851}, {X: 85, Y: 0.0862}},
		sd:   interp.Table{{X: 18, Y: 0.0036}, {X: 50, Y: 0.0038}, {X: 85, Y: 0.0040}},
	},
	body.Female: {
		mean: interp.Table{{X: 18, Y: 0.0760}, {X: 30, Y: 0.0772}, {X: 40, Y: 0.0790}, {X: 50, Y: 0.0810}, {X: 60, Y: 0.0828}, {X: 70, Y: 0.0845}, {X: 85, Y: 0.0860}},
		sd:   interp.Table{{X: 18, Y: 0.0050}, {X: 50, Y: 0.0052}, {X: 85, Y: 0.0055}},
	},
}

type Params struct {
	Gender   body.Gender
	Age      float64
	WaistCm  float64
	HeightCm float64
	WeightKg float64
}

type Result struct {
	ABSI       float64       `json:"absi"`
	ZScore     float64       `json:"zScore"`
	Percentile float64       `json:"percentile"`
	Category   body.Category `json:"category"`
	BMI        float64       `json:"bmi"`
}

// CalculateABSI returns WC / (BMI^(2/3) * height^(1/2)), waist and height in meters.
func CalculateABSI(waistCm, heightCm, weightKg float64) (float64, error) {
	if waistCm <= 0 {
		return 0, body.DomainError("waist must be positive, got %v cm", waistCm)
	}
	b, err := bmi.CalculateBMI(heightCm, weightKg)
	if err != nil {
		return 0, err
	}
	return (waistCm / 100) / (math.Pow(b, 2.0/3.0) * math.Sqrt(heightCm/100)), nil
}

// ZScore normalizes an ABSI against the age and sex specific reference.
func ZScore(absi, age float64, gender body.Gender) (float64, error) {
	ref, ok := references[gender]
	if !ok {
		return 0, body.DomainError("unknown gender %q", gender)
	}
	return (absi - ref.mean.At(age)) / ref.sd.At(age), nil
}

func GetCategory(z float64) body.Category {
	return body.Categorize(z, brackets, VeryHigh)
}

func Calculate(p Params) (Result, error) {
	value, err := CalculateABSI(p.WaistCm, p.HeightCm, p.WeightKg)
	if err != nil {
		return Result{}, err
	}
	z, err := ZScore(value, p.Age, p.Gender)
	if err != nil {
		return Result{}, err
	}
	b, _ := bmi.CalculateBMI(p.HeightCm, p.WeightKg)

	return Result{
		ABSI:       units.RoundTo(value, 4),
		ZScore:     units.RoundTo(z, 2),
		Percentile: units.RoundTo(interp.Percentile(z), 0),
		Category:   GetCategory(z),
		BMI:        units.RoundTo(b, 1),
	}, nil
}
