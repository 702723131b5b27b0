package water

import (
	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
)

type Input struct {
	System          units.System `json:"system"`
	Weight          form.Number  `json:"weight"`
	ActivityMinutes form.Number  `json:"activityMinutes"`
	Temperature     form.Number  `json:"temperature"`
}

func temperatureUnit(system units.System) units.TemperatureUnit {
	if system == units.Imperial {
		return units.Fahrenheit
	}
	return units.Celsius
}

func Fields(system units.System) []form.Field {
	temperature := form.NumberField{Name: "temperature", Label: "Outside temperature", Step: 1}
	if system == units.Imperial {
		temperature.Min, temperature.Max, temperature.Unit = form.Float(-58), form.Float(140), "°F"
	} else {
		temperature.Min, temperature.Max, temperature.Unit = form.Float(-50), form.Float(60), "°C"
	}
	return []form.Field{
		body.WeightField(system),
		form.NumberField{Name: "activityMinutes", Label: "Exercise per day", Min: form.Float(0), Max: form.Float(1440), Step: 5, Unit: "minutes"},
		temperature,
	}
}

func (in Input) Validate() form.Errors {
	results := map[string]validation.Result{
		"weight": validation.ValidateWeight(in.Weight, in.System),
	}
	if !in.ActivityMinutes.IsEmpty() {
		results["activityMinutes"] = validation.ValidateActivityMinutes(in.ActivityMinutes)
	}
	if !in.Temperature.IsEmpty() {
		results["temperature"] = validation.ValidateTemperature(in.Temperature, in.System)
	}
	return validation.Collect(results)
}

func (in Input) Params() Params {
	tempC := float64(defaultTemperatureC)
	if t, ok := in.Temperature.Float(); ok {
		tempC = units.ConvertTemperature(t, temperatureUnit(in.System), units.Celsius)
	}
	return Params{
		WeightKg:        body.WeightKg(in.System, in.Weight),
		ActivityMinutes: in.ActivityMinutes.Or(0),
		TemperatureC:    tempC,
	}
}
