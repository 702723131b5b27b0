package validation

import (
	"fmt"

	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
)

type Result struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func ok() Result {
	return Result{IsValid: true}
}

func invalid(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// IsEmpty reports whether the value was not entered at all. An entered 0 is not empty.
func IsEmpty(v form.Number) bool {
	return v.IsEmpty()
}

type bounds struct {
	min, max float64
	unit     string
}

// checkRange is shared by every numeric validator. A value on either bound is valid.
func checkRange(label string, v form.Number, b bounds) Result {
	value, entered := v.Float()
	if !entered {
		return invalid("%s is required", label)
	}
	if !form.IsFinite(value) {
		return invalid("%s must be a number", label)
	}
	if value < b.min || value > b.max {
		if b.unit == "" {
			return invalid("%s must be between %s and %s", label, fmtNum(b.min), fmtNum(b.max))
		}
		return invalid("%s must be between %s and %s %s", label, fmtNum(b.min), fmtNum(b.max), b.unit)
	}
	return ok()
}

func fmtNum(v float64) string {
	return form.NewNumber(v).String()
}

func ValidateAge(v form.Number) Result {
	return checkRange("Age", v, bounds{0, 120, "years"})
}

// ValidateHeight expects cm for metric and decimal feet for imperial.
func ValidateHeight(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Height", v, bounds{1, 10, "ft"})
	}
	return checkRange("Height", v, bounds{30, 300, "cm"})
}

func ValidateWeight(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Weight", v, bounds{2, 1100, "lb"})
	}
	return checkRange("Weight", v, bounds{1, 500, "kg"})
}

func ValidateWaist(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Waist", v, bounds{16, 80, "in"})
	}
	return checkRange("Waist", v, bounds{40, 200, "cm"})
}

func ValidateNeck(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Neck", v, bounds{8, 32, "in"})
	}
	return checkRange("Neck", v, bounds{20, 80, "cm"})
}

func ValidateHip(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Hip", v, bounds{20, 80, "in"})
	}
	return checkRange("Hip", v, bounds{50, 200, "cm"})
}

func ValidateBodyFat(v form.Number) Result {
	return checkRange("Body fat", v, bounds{2, 70, "%"})
}

func ValidateReps(v form.Number) Result {
	r := checkRange("Reps", v, bounds{1, 30, ""})
	if !r.IsValid {
		return r
	}
	if reps, _ := v.Float(); reps != float64(int(reps)) {
		return invalid("Reps must be a whole number")
	}
	return r
}

func ValidateLiftedWeight(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Weight lifted", v, bounds{2, 1100, "lb"})
	}
	return checkRange("Weight lifted", v, bounds{1, 500, "kg"})
}

func ValidateActivityMinutes(v form.Number) Result {
	return checkRange("Activity", v, bounds{0, 1440, "minutes"})
}

func ValidateTemperature(v form.Number, system units.System) Result {
	if system == units.Imperial {
		return checkRange("Temperature", v, bounds{-58, 140, "°F"})
	}
	return checkRange("Temperature", v, bounds{-50, 60, "°C"})
}

// ValidatePositive is used for inputs without a published plausible range,
// like a target weekly loss.
func ValidatePositive(label string, v form.Number, max float64) Result {
	value, entered := v.Float()
	if !entered {
		return invalid("%s is required", label)
	}
	if !form.IsFinite(value) {
		return invalid("%s must be a number", label)
	}
	if value <= 0 || value > max {
		return invalid("%s must be greater than 0 and at most %s", label, fmtNum(max))
	}
	return ok()
}

// ValidateChoice checks a select/radio value against the allowed options.
func ValidateChoice(label, value string, allowed ...string) Result {
	if value == "" {
		return invalid("%s is required", label)
	}
	for _, a := range allowed {
		if a == value {
			return ok()
		}
	}
	return invalid("%s is not a valid option", label)
}

// Collect folds named results into an error map, keeping only failures.
func Collect(results map[string]Result) form.Errors {
	errs := form.Errors{}
	for field, r := range results {
		if !r.IsValid {
			errs.Add(field, r.Error)
		}
	}
	return errs
}
