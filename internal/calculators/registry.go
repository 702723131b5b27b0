package calculators

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/2beens/fitcalc/internal/calculators/absi"
	"github.com/2beens/fitcalc/internal/calculators/bmi"
	"github.com/2beens/fitcalc/internal/calculators/bodyfat"
	"github.com/2beens/fitcalc/internal/calculators/deficit"
	"github.com/2beens/fitcalc/internal/calculators/energy"
	"github.com/2beens/fitcalc/internal/calculators/ffmi"
	"github.com/2beens/fitcalc/internal/calculators/idealweight"
	"github.com/2beens/fitcalc/internal/calculators/maxfatloss"
	"github.com/2beens/fitcalc/internal/calculators/onerepmax"
	"github.com/2beens/fitcalc/internal/calculators/protein"
	"github.com/2beens/fitcalc/internal/calculators/water"
	"github.com/2beens/fitcalc/internal/calculators/whr"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/policy"
	"github.com/2beens/fitcalc/internal/units"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("calculator not found")
	ErrBadInput = errors.New("malformed calculator input")
)

// Outcome is what one submit of a calculator form produced.
type Outcome struct {
	Calculator string
	State      form.State
	// Snapshot is the form.Snapshot of the lifecycle, ready to be encoded.
	Snapshot any
	// Result is the typed result, nil unless State is form.StateSuccess.
	Result any
	Errors form.Errors
}

// Calculator is one calculator bound to its form lifecycle.
type Calculator interface {
	Name() string
	Title() string
	Description() string
	Fields(system units.System) []form.Field
	// Submit decodes a JSON form submission and runs it through the lifecycle.
	// Inputs not carrying a unit system get the given one.
	Submit(raw []byte, system units.System, logger log.FieldLogger) (Outcome, error)
}

type input interface {
	Validate() form.Errors
}

type definition[I input, R any] struct {
	name        string
	title       string
	description string
	fields      func(units.System) []form.Field
	newInput    func(units.System) I
	calculate   func(I) (R, error)
}

func (d *definition[I, R]) Name() string        { return d.name }
func (d *definition[I, R]) Title() string       { return d.title }
func (d *definition[I, R]) Description() string { return d.description }

func (d *definition[I, R]) Fields(system units.System) []form.Field {
	return d.fields(system)
}

func (d *definition[I, R]) Submit(raw []byte, system units.System, logger log.FieldLogger) (Outcome, error) {
	in := d.newInput(system)
	if len(raw) > 0 {
		var probe struct {
			System units.System `json:"system"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return Outcome{}, fmt.Errorf("%w: %s", ErrBadInput, err)
		}
		if probe.System != "" && !probe.System.IsValid() {
			return Outcome{}, fmt.Errorf("%w: unknown unit system %q", ErrBadInput, probe.System)
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return Outcome{}, fmt.Errorf("%w: %s", ErrBadInput, err)
		}
	}

	lifecycle := form.NewLifecycle(form.LifecycleParams[R]{
		Name:     d.name,
		Validate: in.Validate,
		Calculate: func() (R, error) {
			return d.calculate(in)
		},
		Logger: logger,
	})
	snapshot := lifecycle.Submit()

	outcome := Outcome{
		Calculator: d.name,
		State:      snapshot.State,
		Snapshot:   snapshot,
		Errors:     snapshot.Errors,
	}
	if snapshot.Result != nil {
		outcome.Result = *snapshot.Result
	}
	return outcome, nil
}

type Registry struct {
	calculators map[string]Calculator
	names       []string
}

func NewRegistry(thresholds policy.Thresholds) *Registry {
	r := &Registry{calculators: map[string]Calculator{}}

	r.add(&definition[bmi.Input, bmi.Result]{
		name:        "bmi",
		title:       "BMI Calculator",
		description: "Body mass index with category and healthy weight range.",
		fields:      bmi.Fields,
		newInput:    func(s units.System) bmi.Input { return bmi.Input{System: s} },
		calculate:   func(in bmi.Input) (bmi.Result, error) { return bmi.Calculate(in.Params()) },
	})
	r.add(&definition[bodyfat.Input, bodyfat.Result]{
		name:        "body-fat",
		title:       "Body Fat Calculator",
		description: "U.S. Navy circumference method with fat and lean mass.",
		fields:      bodyfat.Fields,
		newInput:    func(s units.System) bodyfat.Input { return bodyfat.Input{System: s} },
		calculate:   func(in bodyfat.Input) (bodyfat.Result, error) { return bodyfat.Calculate(in.Params()) },
	})
	r.add(&definition[whr.Input, whr.Result]{
		name:        "waist-to-hip",
		title:       "Waist-to-Hip Ratio Calculator",
		description: "Waist-to-hip ratio with WHO risk category.",
		fields:      whr.Fields,
		newInput:    func(s units.System) whr.Input { return whr.Input{System: s} },
		calculate:   func(in whr.Input) (whr.Result, error) { return whr.Calculate(in.Params()) },
	})
	r.add(&definition[absi.Input, absi.Result]{
		name:        "absi",
		title:       "Body Shape Index Calculator",
		description: "A Body Shape Index with age and sex specific z-score.",
		fields:      absi.Fields,
		newInput:    func(s units.System) absi.Input { return absi.Input{System: s} },
		calculate:   func(in absi.Input) (absi.Result, error) { return absi.Calculate(in.Params()) },
	})
	r.add(&definition[energy.Input, energy.Result]{
		name:        "tdee",
		title:       "TDEE Calculator",
		description: "Basal metabolic rate and total daily energy expenditure.",
		fields:      energy.Fields,
		newInput:    func(s units.System) energy.Input { return energy.Input{System: s} },
		calculate:   func(in energy.Input) (energy.Result, error) { return energy.Calculate(in.Params()) },
	})
	r.add(&definition[deficit.Input, deficit.Result]{
		name:        "calorie-deficit",
		title:       "Calorie Deficit Calculator",
		description: "Daily calories and time to reach a goal weight.",
		fields:      deficit.Fields,
		newInput:    func(s units.System) deficit.Input { return deficit.Input{System: s} },
		calculate: func(in deficit.Input) (deficit.Result, error) {
			return deficit.Calculate(in.Params(), thresholds)
		},
	})
	r.add(&definition[protein.Input, protein.Result]{
		name:        "protein",
		title:       "Protein Intake Calculator",
		description: "Daily protein range by goal and training.",
		fields:      protein.Fields,
		newInput:    func(s units.System) protein.Input { return protein.Input{System: s} },
		calculate:   func(in protein.Input) (protein.Result, error) { return protein.Calculate(in.Params()) },
	})
	r.add(&definition[onerepmax.Input, onerepmax.Result]{
		name:        "one-rep-max",
		title:       "One Rep Max Calculator",
		description: "Estimated one-rep max and training percentages.",
		fields:      onerepmax.Fields,
		newInput:    func(s units.System) onerepmax.Input { return onerepmax.Input{System: s} },
		calculate:   func(in onerepmax.Input) (onerepmax.Result, error) { return onerepmax.Calculate(in.Params()) },
	})
	r.add(&definition[ffmi.Input, ffmi.Result]{
		name:        "ffmi",
		title:       "FFMI Calculator",
		description: "Fat-free mass index, normalized for height.",
		fields:      ffmi.Fields,
		newInput:    func(s units.System) ffmi.Input { return ffmi.Input{System: s} },
		calculate:   func(in ffmi.Input) (ffmi.Result, error) { return ffmi.Calculate(in.Params()) },
	})
	r.add(&definition[maxfatloss.Input, maxfatloss.Result]{
		name:        "max-fat-loss",
		title:       "Maximum Fat Loss Calculator",
		description: "Largest daily deficit your fat stores can support.",
		fields:      maxfatloss.Fields,
		newInput:    func(s units.System) maxfatloss.Input { return maxfatloss.Input{System: s} },
		calculate: func(in maxfatloss.Input) (maxfatloss.Result, error) {
			return maxfatloss.Calculate(in.Params(), thresholds)
		},
	})
	r.add(&definition[water.Input, water.Result]{
		name:        "water-intake",
		title:       "Water Intake Calculator",
		description: "Daily water need by weight, exercise and climate.",
		fields:      water.Fields,
		newInput:    func(s units.System) water.Input { return water.Input{System: s} },
		calculate:   func(in water.Input) (water.Result, error) { return water.Calculate(in.Params()) },
	})
	r.add(&definition[idealweight.Input, idealweight.Result]{
		name:        "ideal-weight",
		title:       "Ideal Weight Calculator",
		description: "Ideal body weight by Devine, Robinson, Miller and Hamwi.",
		fields:      idealweight.Fields,
		newInput:    func(s units.System) idealweight.Input { return idealweight.Input{System: s} },
		calculate:   func(in idealweight.Input) (idealweight.Result, error) { return idealweight.Calculate(in.Params()) },
	})

	return r
}

func (r *Registry) add(c Calculator) {
	if _, ok := r.calculators[c.Name()]; ok {
		panic("duplicate calculator: " + c.Name())
	}
	r.calculators[c.Name()] = c
	r.names = append(r.names, c.Name())
}

func (r *Registry) Get(name string) (Calculator, error) {
	c, ok := r.calculators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c, nil
}

// All returns calculators in registration order.
func (r *Registry) All() []Calculator {
	all := make([]Calculator, 0, len(r.names))
	for _, name := range r.names {
		all = append(all, r.calculators[name])
	}
	return all
}

// InputsFromJSON flattens a JSON form submission into named string values,
// the shape share tokens and prefills use.
func InputsFromJSON(raw []byte) (map[string]string, error) {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadInput, err)
	}
	inputs := make(map[string]string, len(values))
	for name, v := range values {
		switch t := v.(type) {
		case nil:
		case string:
			inputs[name] = t
		case float64:
			inputs[name] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			inputs[name] = strconv.FormatBool(t)
		default:
			return nil, fmt.Errorf("%w: field %q is not a scalar", ErrBadInput, name)
		}
	}
	return inputs, nil
}

// InputsToJSON is the inverse of InputsFromJSON. Numeric strings stay strings,
// form numbers accept both.
func InputsToJSON(inputs map[string]string) ([]byte, error) {
	return json.Marshal(inputs)
}

// SortedNames is used where a stable alphabetical order matters (reports).
func SortedNames(inputs map[string]string) []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
