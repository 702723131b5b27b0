// Package body holds the types and input normalization shared by the
// calculator formula packages.
package body

import (
	"errors"
	"fmt"

	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
)

var ErrOutOfDomain = errors.New("input out of domain")

// DomainError reports a formula input that validation should have rejected.
func DomainError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfDomain, fmt.Sprintf(format, args...))
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == Male || g == Female
}

var GenderOptions = []form.Option{
	{Value: string(Male), Label: "Male"},
	{Value: string(Female), Label: "Female"},
}

// Category is a named bracket a computed value falls into, with the color
// token a result view uses for it.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Bracket is the upper (exclusive) bound of a category. A value equal to
// Below belongs to the next bracket.
type Bracket struct {
	Below    float64
	Category Category
}

// Categorize returns the category of the first bracket whose bound is above v,
// or last when v is above every bound.
func Categorize(v float64, brackets []Bracket, last Category) Category {
	for _, b := range brackets {
		if v < b.Below {
			return b.Category
		}
	}
	return last
}

type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

func (a ActivityLevel) IsValid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Multiplier is the TDEE/BMR ratio for the activity level.
func (a ActivityLevel) Multiplier() (float64, error) {
	m, ok := activityMultipliers[a]
	if !ok {
		return 0, DomainError("unknown activity level %q", a)
	}
	return m, nil
}

var ActivityOptions = []form.Option{
	{Value: string(Sedentary), Label: "Sedentary (little or no exercise)"},
	{Value: string(Light), Label: "Lightly active (1-3 days/week)"},
	{Value: string(Moderate), Label: "Moderately active (3-5 days/week)"},
	{Value: string(Active), Label: "Very active (6-7 days/week)"},
	{Value: string(VeryActive), Label: "Extra active (physical job or 2x training)"},
}

func ActivityValues() []string {
	values := make([]string, 0, len(ActivityOptions))
	for _, o := range ActivityOptions {
		values = append(values, o.Value)
	}
	return values
}

// HeightCm normalizes a height entered in the system's default unit.
func HeightCm(system units.System, v form.Number) float64 {
	field, err := form.NewHeightField(system.DefaultHeightUnit())
	if err != nil {
		panic(err)
	}
	field.SetValue(v)
	cm, _ := field.ToCm()
	return cm
}

// WeightKg normalizes a weight entered in the system's default unit.
func WeightKg(system units.System, v form.Number) float64 {
	field, err := form.NewWeightField(system.DefaultWeightUnit())
	if err != nil {
		panic(err)
	}
	field.SetValue(v)
	kg, _ := field.ToKg()
	return kg
}

// CircumferenceCm normalizes a waist/neck/hip measurement.
func CircumferenceCm(system units.System, v form.Number) float64 {
	return units.ConvertHeight(v.Or(0), system.LengthUnit(), units.Centimeter)
}

// HeightField is the descriptor of the height input for the given system.
func HeightField(system units.System) form.NumberField {
	if system == units.Imperial {
		return form.NumberField{
			Name: "height", Label: "Height", Min: form.Float(1), Max: form.Float(10), Step: 0.1,
			Unit: string(units.Foot), UnitToggle: string(units.Centimeter), Required: true,
		}
	}
	return form.NumberField{
		Name: "height", Label: "Height", Min: form.Float(30), Max: form.Float(300), Step: 0.1,
		Unit: string(units.Centimeter), UnitToggle: string(units.Foot), Required: true,
	}
}

func WeightField(system units.System) form.NumberField {
	if system == units.Imperial {
		return form.NumberField{
			Name: "weight", Label: "Weight", Min: form.Float(2), Max: form.Float(1100), Step: 0.1,
			Unit: string(units.Pound), UnitToggle: string(units.Kilogram), Required: true,
		}
	}
	return form.NumberField{
		Name: "weight", Label: "Weight", Min: form.Float(1), Max: form.Float(500), Step: 0.1,
		Unit: string(units.Kilogram), UnitToggle: string(units.Pound), Required: true,
	}
}

// CircumferenceField builds a waist/neck/hip descriptor; bounds are given
// in cm and in inches.
func CircumferenceField(system units.System, name, label string, minCm, maxCm, minIn, maxIn float64) form.NumberField {
	f := form.NumberField{Name: name, Label: label, Step: 0.1, Required: true}
	if system == units.Imperial {
		f.Min, f.Max, f.Unit = form.Float(minIn), form.Float(maxIn), string(units.Inch)
		return f
	}
	f.Min, f.Max, f.Unit = form.Float(minCm), form.Float(maxCm), string(units.Centimeter)
	return f
}

func AgeField() form.NumberField {
	return form.NumberField{Name: "age", Label: "Age", Min: form.Float(0), Max: form.Float(120), Step: 1, Unit: "years", Required: true}
}

func GenderField() form.RadioField {
	return form.RadioField{Name: "gender", Label: "Gender", Options: GenderOptions}
}

func ActivityField() form.SelectField {
	return form.SelectField{Name: "activity", Label: "Activity level", Options: ActivityOptions, Required: true}
}

func BodyFatField() form.NumberField {
	return form.NumberField{Name: "bodyFat", Label: "Body fat", Min: form.Float(2), Max: form.Float(70), Step: 0.1, Unit: "%", Required: true}
}
