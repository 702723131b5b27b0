package units

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownUnit = errors.New("unknown unit")

// System is the unit system a visitor prefers for displaying values.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

func (s System) IsValid() bool {
	return s == Metric || s == Imperial
}

func ParseSystem(s string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Metric, "":
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("%w: unit system %q", ErrUnknownUnit, s)
	}
}

// DefaultWeightUnit and DefaultHeightUnit are the units a unit-aware
// field starts with for the given system.
func (s System) DefaultWeightUnit() WeightUnit {
	if s == Imperial {
		return Pound
	}
	return Kilogram
}

func (s System) DefaultHeightUnit() HeightUnit {
	if s == Imperial {
		return Foot
	}
	return Centimeter
}

// LengthUnit is the circumference unit used for the given system.
func (s System) LengthUnit() HeightUnit {
	if s == Imperial {
		return Inch
	}
	return Centimeter
}

type WeightUnit string

const (
	Kilogram WeightUnit = "kg"
	Gram     WeightUnit = "g"
	Pound    WeightUnit = "lb"
	Ounce    WeightUnit = "oz"
	Stone    WeightUnit = "st"
)

// kilograms per unit
var weightFactors = map[WeightUnit]float64{
	Kilogram: 1,
	Gram:     0.001,
	Pound:    0.45359237,
	Ounce:    0.028349523125,
	Stone:    6.35029318,
}

type HeightUnit string

const (
	Centimeter HeightUnit = "cm"
	Meter      HeightUnit = "m"
	Millimeter HeightUnit = "mm"
	Inch       HeightUnit = "in"
	Foot       HeightUnit = "ft"
)

// centimeters per unit
var heightFactors = map[HeightUnit]float64{
	Centimeter: 1,
	Meter:      100,
	Millimeter: 0.1,
	Inch:       2.54,
	Foot:       30.48,
}

type VolumeUnit string

const (
	Milliliter VolumeUnit = "ml"
	Liter      VolumeUnit = "l"
	FluidOunce VolumeUnit = "fl_oz"
	Cup        VolumeUnit = "cup"
	Tablespoon VolumeUnit = "tbsp"
	Teaspoon   VolumeUnit = "tsp"
	Gallon     VolumeUnit = "gal"
)

// milliliters per unit, US customary
var volumeFactors = map[VolumeUnit]float64{
	Milliliter: 1,
	Liter:      1000,
	FluidOunce: 29.5735295625,
	Cup:        236.5882365,
	Tablespoon: 14.78676478125,
	Teaspoon:   4.92892159375,
	Gallon:     3785.411784,
}

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "c"
	Fahrenheit TemperatureUnit = "f"
	Kelvin     TemperatureUnit = "k"
)

type EnergyUnit string

const (
	Kilocalorie EnergyUnit = "kcal"
	Kilojoule   EnergyUnit = "kj"
)

// kilocalories per unit (thermochemical calorie)
var energyFactors = map[EnergyUnit]float64{
	Kilocalorie: 1,
	Kilojoule:   1 / 4.184,
}

func ParseWeightUnit(s string) (WeightUnit, error) {
	u := WeightUnit(normalize(s))
	switch u {
	case "lbs", "pound", "pounds":
		u = Pound
	case "kgs", "kilogram", "kilograms":
		u = Kilogram
	}
	if _, ok := weightFactors[u]; !ok {
		return "", fmt.Errorf("%w: weight %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func ParseHeightUnit(s string) (HeightUnit, error) {
	u := HeightUnit(normalize(s))
	switch u {
	case "feet":
		u = Foot
	case "inch", "inches":
		u = Inch
	}
	if _, ok := heightFactors[u]; !ok {
		return "", fmt.Errorf("%w: height %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func ParseVolumeUnit(s string) (VolumeUnit, error) {
	u := VolumeUnit(normalize(s))
	if u == "fl-oz" || u == "floz" {
		u = FluidOunce
	}
	if _, ok := volumeFactors[u]; !ok {
		return "", fmt.Errorf("%w: volume %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	u := TemperatureUnit(strings.TrimPrefix(normalize(s), "°"))
	switch u {
	case Celsius, Fahrenheit, Kelvin:
		return u, nil
	default:
		return "", fmt.Errorf("%w: temperature %q", ErrUnknownUnit, s)
	}
}

func ParseEnergyUnit(s string) (EnergyUnit, error) {
	u := EnergyUnit(normalize(s))
	if _, ok := energyFactors[u]; !ok {
		return "", fmt.Errorf("%w: energy %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
