package water

import (
	"math"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

const (
	mlPerKg             = 35
	mlPerActiveMinute   = 12
	hotAboveC           = 25
	hotIncreasePerDegC  = 0.02
	maxClimateIncrease  = 0.4
	glassMl             = 250
	defaultTemperatureC = 20
)

type Params struct {
	WeightKg        float64
	ActivityMinutes float64
	TemperatureC    float64
}

type Result struct {
	BaseMl     float64 `json:"baseMl"`
	ActivityMl float64 `json:"activityMl"`
	ClimateMl  float64 `json:"climateMl"`
	TotalMl    float64 `json:"totalMl"`
	Liters     float64 `json:"liters"`
	FlOz       float64 `json:"flOz"`
	Cups       float64 `json:"cups"`
	Glasses    int     `json:"glasses"`
}

// ClimateFactor is the share added to the base need for hot weather.
func ClimateFactor(temperatureC float64) float64 {
	if temperatureC <= hotAboveC {
		return 0
	}
	return math.Min((temperatureC-hotAboveC)*hotIncreasePerDegC, maxClimateIncrease)
}

func Calculate(p Params) (Result, error) {
	if p.WeightKg <= 0 {
		return Result{}, body.DomainError("weight must be positive, got %v kg", p.WeightKg)
	}
	if p.ActivityMinutes < 0 {
		return Result{}, body.DomainError("activity minutes must not be negative, got %v", p.ActivityMinutes)
	}

	base := p.WeightKg * mlPerKg
	activity := p.ActivityMinutes * mlPerActiveMinute
	climate := base * ClimateFactor(p.TemperatureC)
	total := base + activity + climate

	return Result{
		BaseMl:     units.RoundTo(base, 0),
		ActivityMl: units.RoundTo(activity, 0),
		ClimateMl:  units.RoundTo(climate, 0),
		TotalMl:    units.RoundTo(total, 0),
		Liters:     units.RoundTo(units.ConvertVolume(total, units.Milliliter, units.Liter), 2),
		FlOz:       units.RoundTo(units.ConvertVolume(total, units.Milliliter, units.FluidOunce), 1),
		Cups:       units.RoundTo(units.ConvertVolume(total, units.Milliliter, units.Cup), 1),
		Glasses:    int(math.Ceil(total / glassMl)),
	}, nil
}
