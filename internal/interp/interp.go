package interp

import (
	"errors"
	"sort"
)

var ErrEmptyTable = errors.New("interpolation table is empty")

type Point struct {
	X, Y float64
}

// Table is a piecewise linear function given by points sorted by X.
type Table []Point

func NewTable(points ...Point) (Table, error) {
	if len(points) == 0 {
		return nil, ErrEmptyTable
	}
	t := make(Table, len(points))
	copy(t, points)
	sort.Slice(t, func(i, j int) bool { return t[i].X < t[j].X })
	return t, nil
}

// At evaluates the table at x. Outside the table the nearest endpoint value is returned.
func (t Table) At(x float64) float64 {
	if len(t) == 0 {
		return 0
	}
	if x <= t[0].X {
		return t[0].Y
	}
	last := t[len(t)-1]
	if x >= last.X {
		return last.Y
	}
	i := sort.Search(len(t), func(i int) bool { return t[i].X >= x })
	return Linear(t[i-1], t[i], x)
}

// Linear interpolates between a and b at x.
func Linear(a, b Point, x float64) float64 {
	if b.X == a.X {
		return a.Y
	}
	return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
}

// Percentile maps a z-score to a percentile (0-100) using a standard normal table.
func Percentile(z float64) float64 {
	return normalCDF.At(z) * 100
}

// standard normal CDF at quarter steps; good to about 0.5 percentile points.
var normalCDF = Table{
	{-3.0, 0.0013}, {-2.75, 0.0030}, {-2.5, 0.0062}, {-2.25, 0.0122},
	{-2.0, 0.0228}, {-1.75, 0.0401}, {-1.5, 0.0668}, {-1.25, 0.1056},
	{-1.0, 0.1587}, {-0.75, 0.2266}, {-0.5, 0.3085}, {-0.25, 0.4013},
	{0, 0.5},
	{0.25, 0.5987}, {0.5, 0.6915}, {0.75, 0.7734}, {1.0, 0.8413},
	{1.25, 0.8944}, {1.5, 0.9332}, {1.75, 0.9599}, {2.0, 0.9772},
	{2.25, 0.9878}, {2.5, 0.9938}, {2.75, 0.9970}, {3.0, 0.9987},
}
