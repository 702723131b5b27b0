package idealweight

import (
	"github.com/2beens/fitcalc/internal/calculators/bmi"
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

type Formula string

const (
	Devine   Formula = "devine"
	Robinson Formula = "robinson"
	Miller   Formula = "miller"
	Hamwi    Formula = "hamwi"
)

// kg at 5 ft, plus kg per inch above 5 ft
type coefficients struct {
	Base, PerInch float64
}

var formulas = map[Formula]map[body.Gender]coefficients{
	Devine:   {body.Male: {50, 2.3}, body.Female: {45.5, 2.3}},
	Robinson: {body.Male: {52, 1.9}, body.Female: {49, 1.7}},
	Miller:   {body.Male: {56.2, 1.41}, body.Female: {53.1, 1.36}},
	Hamwi:    {body.Male: {48, 2.7}, body.Female: {45.5, 2.2}},
}

const fiveFeetInches = 60

type Params struct {
	Gender   body.Gender
	HeightCm float64
}

type Result struct {
	Formulas     map[Formula]float64 `json:"formulas"`
	Average      float64             `json:"average"`
	HealthyMinKg float64             `json:"healthyMinKg"`
	HealthyMaxKg float64             `json:"healthyMaxKg"`
}

// IdealWeight returns the ideal weight in kg by the given formula.
func IdealWeight(formula Formula, gender body.Gender, heightCm float64) (float64, error) {
	byGender, ok := formulas[formula]
	if !ok {
		return 0, body.DomainError("unknown formula %q", formula)
	}
	c, ok := byGender[gender]
	if !ok {
		return 0, body.DomainError("unknown gender %q", gender)
	}
	inchesOver := units.ConvertHeight(heightCm, units.Centimeter, units.Inch) - fiveFeetInches
	kg := c.Base + c.PerInch*inchesOver
	if kg <= 0 {
		return 0, body.DomainError("height %.1f cm is too short for the %s formula", heightCm, formula)
	}
	return kg, nil
}

func Calculate(p Params) (Result, error) {
	if p.HeightCm <= 0 {
		return Result{}, body.DomainError("height must be positive, got %v cm", p.HeightCm)
	}
	all := make(map[Formula]float64, len(formulas))
	var sum float64
	for f := range formulas {
		kg, err := IdealWeight(f, p.Gender, p.HeightCm)
		if err != nil {
			return Result{}, err
		}
		all[f] = units.RoundTo(kg, 1)
		sum += kg
	}
	minKg, maxKg := bmi.HealthyWeightRange(p.HeightCm)
	return Result{
		Formulas:     all,
		Average:      units.RoundTo(sum/float64(len(formulas)), 1),
		HealthyMinKg: units.RoundTo(minKg, 1),
		HealthyMaxKg: units.RoundTo(maxKg, 1),
	}, nil
}
