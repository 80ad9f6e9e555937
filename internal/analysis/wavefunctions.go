package analysis

import (
	"github.com/user/eigenplot_go/internal/parser"
)

// ShiftedWavefunction returns amplitude*psi_i(x) + E_i for every x sample, so
// the curve sits on its own energy line.
func ShiftedWavefunction(d *parser.SimulationData, state int, amplitude float64) []float64 {
	ys := d.Wavefunction(state)
	offset := d.Energies[state]
	for k := range ys {
		ys[k] = amplitude*ys[k] + offset
	}
	return ys
}

// StateParity classifies a state by the parity of its index only.
func StateParity(state int) Parity {
	if state%2 == 0 {
		return Even
	}
	return Odd
}
