package form

import (
	"fmt"

	"github.com/2beens/fitcalc/internal/units"
)

// HeightField holds a height value together with the unit it is expressed in.
// Value and unit are only ever changed together.
type HeightField struct {
	value Number
	unit  units.HeightUnit
}

func NewHeightField(unit units.HeightUnit) (*HeightField, error) {
	if unit != units.Centimeter && unit != units.Foot {
		return nil, fmt.Errorf("height field unit must be cm or ft, got %q", unit)
	}
	return &HeightField{unit: unit}, nil
}

func (f *HeightField) Value() Number          { return f.value }
func (f *HeightField) Unit() units.HeightUnit { return f.unit }

func (f *HeightField) SetValue(v Number) {
	f.value = v
}

// Toggle switches between cm and ft, converting the value rounded to one decimal.
func (f *HeightField) Toggle() {
	next := units.Foot
	if f.unit == units.Foot {
		next = units.Centimeter
	}
	value := f.value
	if v, ok := f.value.Float(); ok {
		value = NewNumber(units.RoundTo(units.ConvertHeight(v, f.unit, next), 1))
	}
	f.value, f.unit = value, next
}

// ToCm returns the value in centimeters; false when nothing was entered.
func (f *HeightField) ToCm() (float64, bool) {
	v, ok := f.value.Float()
	if !ok {
		return 0, false
	}
	return units.ConvertHeight(v, f.unit, units.Centimeter), true
}

// WeightField holds a weight value together with the unit it is expressed in.
type WeightField struct {
	value Number
	unit  units.WeightUnit
}

func NewWeightField(unit units.WeightUnit) (*WeightField, error) {
	if unit != units.Kilogram && unit != units.Pound {
		return nil, fmt.Errorf("weight field unit must be kg or lb, got %q", unit)
	}
	return &WeightField{unit: unit}, nil
}

func (f *WeightField) Value() Number          { return f.value }
func (f *WeightField) Unit() units.WeightUnit { return f.unit }

func (f *WeightField) SetValue(v Number) {
	f.value = v
}

func (f *WeightField) Toggle() {
	next := units.Pound
	if f.unit == units.Pound {
		next = units.Kilogram
	}
	value := f.value
	if v, ok := f.value.Float(); ok {
		value = NewNumber(units.RoundTo(units.ConvertWeight(v, f.unit, next), 1))
	}
	f.value, f.unit = value, next
}

func (f *WeightField) ToKg() (float64, bool) {
	v, ok := f.value.Float()
	if !ok {
		return 0, false
	}
	return units.ConvertWeight(v, f.unit, units.Kilogram), true
}
