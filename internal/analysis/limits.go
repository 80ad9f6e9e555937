package analysis

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/user/eigenplot_go/internal/parser"
)

const (
	// Padding applied to the data extents, as a fraction.
	marginFraction = 0.1
	// The lower y margin grows with the distance of the potential minimum from this level.
	referenceLevel = 0.5
	// Upper bounds whose magnitude does not exceed degenerateScale get degenerateOffset added.
	degenerateScale  = 0.5
	degenerateOffset = 0.25
	// Upper x bound of panel 2 when no spread value is positive.
	collapsedSpreadMax = 1.0
)

// AutoLimits derives the limits of both panels from the data. The second panel
// shares the vertical range of the first.
func AutoLimits(d *parser.SimulationData) (Limits, Limits, error) {
	if d == nil || d.NumStates() == 0 || len(d.PotentialX) == 0 {
		return Limits{}, Limits{}, errors.New("no data to derive limits from")
	}

	minV := floats.Min(d.PotentialY)
	upper := UpperEnergyBound(floats.Max(d.Energies))
	panel1 := Limits{
		XMin: floats.Min(d.PotentialX),
		XMax: floats.Max(d.PotentialX),
		YMin: minV - marginFraction*math.Abs(referenceLevel-minV),
		YMax: upper,
	}
	return panel1, PanelTwoLimits(d, panel1), nil
}

// UpperEnergyBound pads the highest energy level by 10% of itself. Near-zero
// results get a fixed offset so the range does not collapse.
func UpperEnergyBound(top float64) float64 {
	upper := top + top*marginFraction
	if math.Abs(upper) <= degenerateScale {
		upper += degenerateOffset
	}
	return upper
}

// PanelTwoLimits returns the limits of the expectation panel: x from 0 to the
// padded maximum of the second observable, y taken from panel1. When no value
// is positive the x range falls back to [0, 1].
func PanelTwoLimits(d *parser.SimulationData, panel1 Limits) Limits {
	xMax := collapsedSpreadMax
	if maxSpread := floats.Max(d.ExpSpread()); maxSpread > 0 {
		xMax = maxSpread + maxSpread*marginFraction
	}
	return Limits{
		XMin: 0,
		XMax: xMax,
		YMin: panel1.YMin,
		YMax: panel1.YMax,
	}
}
