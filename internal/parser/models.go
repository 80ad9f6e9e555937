package parser

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Input file names expected in a data directory.
const (
	EnergiesFile  = "energies.dat"
	PotentialFile = "potential.dat"
	WavefuncsFile = "wavefuncs.dat"
	ExpValuesFile = "expvalues.dat"
)

// InputFiles lists the four tables in load order.
var InputFiles = []string{EnergiesFile, PotentialFile, WavefuncsFile, ExpValuesFile}

var (
	// ErrMissingFile is the cause of every error reporting an absent input file.
	ErrMissingFile = errors.New("missing input file")
	// ErrMalformedTable is the cause of every error reporting a table that is not a
	// uniform numeric table or that does not line up with the other tables.
	ErrMalformedTable = errors.New("malformed table")
)

// MissingFilesError names the input files that could not be found in Dir.
type MissingFilesError struct {
	Dir   string
	Files []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("%s: %v not found in %q", ErrMissingFile, e.Files, e.Dir)
}

// Cause lets errors.Cause and errors.Is resolve to ErrMissingFile.
func (e *MissingFilesError) Cause() error  { return ErrMissingFile }
func (e *MissingFilesError) Unwrap() error { return ErrMissingFile }

// TableError describes why a table was rejected. Line is 1-based, 0 when the
// problem concerns the table as a whole.
type TableError struct {
	File   string
	Line   int
	Reason string
}

func (e *TableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s line %d: %s", ErrMalformedTable, e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedTable, e.File, e.Reason)
}

func (e *TableError) Cause() error  { return ErrMalformedTable }
func (e *TableError) Unwrap() error { return ErrMalformedTable }

// SimulationData is the read-only snapshot of one data directory.
//
// Wavefuncs has one row per entry of WaveX and one column per energy level.
// ExpValues has one row per energy level; column 0 is the position expectation
// and column 1 the second observable.
type SimulationData struct {
	Energies   []float64
	PotentialX []float64
	PotentialY []float64
	WaveX      []float64
	Wavefuncs  *mat.Dense
	ExpValues  *mat.Dense
}

// NumStates returns the number of energy levels.
func (d *SimulationData) NumStates() int {
	return len(d.Energies)
}

// Wavefunction returns a copy of the amplitude samples of state i.
func (d *SimulationData) Wavefunction(i int) []float64 {
	return mat.Col(nil, i, d.Wavefuncs)
}

// ExpPosition returns column 0 of the expectation table.
func (d *SimulationData) ExpPosition() []float64 {
	return mat.Col(nil, 0, d.ExpValues)
}

// ExpSpread returns column 1 of the expectation table.
func (d *SimulationData) ExpSpread() []float64 {
	return mat.Col(nil, 1, d.ExpValues)
}
