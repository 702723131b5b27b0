package onerepmax

import (
	"math"

	"github.com/2beens/fitcalc/internal/calculators/body"
	"github.com/2beens/fitcalc/internal/units"
)

type Formula string

const (
	Epley    Formula = "epley"
	Brzycki  Formula = "brzycki"
	Lombardi Formula = "lombardi"
	OConner  Formula = "oconner"
	// Average is the mean of all formulas.
	Average Formula = "average"
)

var FormulaValues = []string{string(Average), string(Epley), string(Brzycki), string(Lombardi), string(OConner)}

var formulas = map[Formula]func(weight float64, reps int) float64{
	Epley: func(w float64, r int) float64 {
		return w * (1 + float64(r)/30)
	},
	Brzycki: func(w float64, r int) float64 {
		return w * 36 / (37 - float64(r))
	},
	Lombardi: func(w float64, r int) float64 {
		return w * math.Pow(float64(r), 0.10)
	},
	OConner: func(w float64, r int) float64 {
		return w * (1 + 0.025*float64(r))
	},
}

// formulaOrder fixes the summation order of Average.
var formulaOrder = []Formula{Epley, Brzycki, Lombardi, OConner}

var tablePercents = []float64{100, 95, 90, 85, 80, 75, 70, 65, 60, 55, 50}

const maxReps = 30

type Params struct {
	// Weight is in Unit; the result uses the same unit.
	Weight  float64
	Unit    units.WeightUnit
	Reps    int
	Formula Formula
}

type Row struct {
	Percent float64 `json:"percent"`
	Weight  float64 `json:"weight"`
	Reps    int     `json:"reps"`
}

type Result struct {
	OneRepMax float64             `json:"oneRepMax"`
	Formula   Formula             `json:"formula"`
	Unit      units.WeightUnit    `json:"unit"`
	Formulas  map[Formula]float64 `json:"formulas"`
	Table     []Row               `json:"table"`
}

// Estimate returns the one-rep max for a set of reps with the given formula.
// A single rep is its own max for every formula.
func Estimate(weight float64, reps int, formula Formula) (float64, error) {
	if weight <= 0 {
		return 0, body.DomainError("weight must be positive, got %v", weight)
	}
	if reps < 1 || reps > maxReps {
		return 0, body.DomainError("reps must be between 1 and %d, got %d", maxReps, reps)
	}
	f, ok := formulas[formula]
	if !ok && formula != Average {
		return 0, body.DomainError("unknown formula %q", formula)
	}
	if reps == 1 {
		return weight, nil
	}
	if formula == Average {
		var sum float64
		for _, name := range formulaOrder {
			sum += formulas[name](weight, reps)
		}
		return sum / float64(len(formulaOrder)), nil
	}
	return f(weight, reps), nil
}

// RepsAt estimates how many reps can be done at a share of the max (Epley inverted).
func RepsAt(percent float64) int {
	if percent >= 100 {
		return 1
	}
	return int(math.Round(30 * (100/percent - 1)))
}

func Calculate(p Params) (Result, error) {
	formula := p.Formula
	if formula == "" {
		formula = Average
	}
	orm, err := Estimate(p.Weight, p.Reps, formula)
	if err != nil {
		return Result{}, err
	}

	all := make(map[Formula]float64, len(formulaOrder))
	for _, f := range formulaOrder {
		v, err := Estimate(p.Weight, p.Reps, f)
		if err != nil {
			return Result{}, err
		}
		all[f] = units.RoundTo(v, 1)
	}

	table := make([]Row, 0, len(tablePercents))
	for _, pct := range tablePercents {
		table = append(table, Row{
			Percent: pct,
			Weight:  units.RoundTo(orm*pct/100, 1),
			Reps:    RepsAt(pct),
		})
	}

	return Result{
		OneRepMax: units.RoundTo(orm, 1),
		Formula:   formula,
		Unit:      p.Unit,
		Formulas:  all,
		Table:     table,
	}, nil
}
