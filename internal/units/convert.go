package units

import (
	"fmt"
	"math"
)

// The Convert* functions are only ever called with known unit constants;
// an unknown unit is a programming error and panics. Use the Parse*
// functions on user supplied strings first.

func ConvertWeight(value float64, from, to WeightUnit) float64 {
	if from == to {
		mustKnow(weightFactors, from, "weight")
		return value
	}
	return value * mustKnow(weightFactors, from, "weight") / mustKnow(weightFactors, to, "weight")
}

func ConvertHeight(value float64, from, to HeightUnit) float64 {
	if from == to {
		mustKnow(heightFactors, from, "height")
		return value
	}
	return value * mustKnow(heightFactors, from, "height") / mustKnow(heightFactors, to, "height")
}

func ConvertVolume(value float64, from, to VolumeUnit) float64 {
	if from == to {
		mustKnow(volumeFactors, from, "volume")
		return value
	}
	return value * mustKnow(volumeFactors, from, "volume") / mustKnow(volumeFactors, to, "volume")
}

func ConvertEnergy(value float64, from, to EnergyUnit) float64 {
	if from == to {
		mustKnow(energyFactors, from, "energy")
		return value
	}
	return value * mustKnow(energyFactors, from, "energy") / mustKnow(energyFactors, to, "energy")
}

// ConvertTemperature is affine, so it goes through Celsius instead of a factor table.
func ConvertTemperature(value float64, from, to TemperatureUnit) float64 {
	var celsius float64
	switch from {
	case Celsius:
		celsius = value
	case Fahrenheit:
		celsius = (value - 32) * 5 / 9
	case Kelvin:
		celsius = value - 273.15
	default:
		panic(fmt.Sprintf("units: unknown temperature unit %q", string(from)))
	}

	switch to {
	case Celsius:
		return celsius
	case Fahrenheit:
		return celsius*9/5 + 32
	case Kelvin:
		return celsius + 273.15
	default:
		panic(fmt.Sprintf("units: unknown temperature unit %q", string(to)))
	}
}

// FeetInchesToCm converts a feet+inches pair (5 ft 10 in) to centimeters.
func FeetInchesToCm(feet, inches float64) float64 {
	return ConvertHeight(feet, Foot, Centimeter) + ConvertHeight(inches, Inch, Centimeter)
}

// CmToFeetInches splits a centimeter value into whole feet and remaining inches.
func CmToFeetInches(cm float64) (feet int, inches float64) {
	totalInches := ConvertHeight(cm, Centimeter, Inch)
	feet = int(totalInches / 12)
	inches = totalInches - float64(feet)*12
	// 5 ft 12.0 in after rounding reads badly
	if math.Round(inches*10)/10 >= 12 {
		feet++
		inches = 0
	}
	return feet, inches
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func mustKnow[U ~string](table map[U]float64, u U, kind string) float64 {
	f, ok := table[u]
	if !ok {
		panic(fmt.Sprintf("units: unknown %s unit %q", kind, string(u)))
	}
	return f
}
