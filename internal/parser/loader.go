package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Missing returns the names of the input files absent from dir.
func Missing(dir string) []string {
	var missing []string
	for _, name := range InputFiles {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}

// LoadSimulationData reads the four input tables from dir and checks that they
// line up: one wavefunction column and one expectation row per energy level.
func LoadSimulationData(dir string) (*SimulationData, error) {
	if missing := Missing(dir); len(missing) > 0 {
		return nil, &MissingFilesError{Dir: dir, Files: missing}
	}

	tables := make(map[string]*mat.Dense, len(InputFiles))
	for _, name := range InputFiles {
		t, err := ReadTableFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}

	energies, err := splitEnergies(tables[EnergiesFile])
	if err != nil {
		return nil, err
	}
	numStates := len(energies)

	potential := tables[PotentialFile]
	if _, c := potential.Dims(); c != 2 {
		return nil, &TableError{File: PotentialFile, Reason: fmt.Sprintf("expected 2 columns (x, V), found %d", c)}
	}

	wave := tables[WavefuncsFile]
	waveRows, waveCols := wave.Dims()
	if waveCols < 2 {
		return nil, &TableError{File: WavefuncsFile, Reason: "expected an x column followed by one column per state"}
	}
	if waveCols-1 != numStates {
		return nil, &TableError{File: WavefuncsFile,
			Reason: fmt.Sprintf("%d wavefunction columns for %d energy levels", waveCols-1, numStates)}
	}

	exp := tables[ExpValuesFile]
	expRows, expCols := exp.Dims()
	if expCols < 2 {
		return nil, &TableError{File: ExpValuesFile, Reason: fmt.Sprintf("expected at least 2 columns, found %d", expCols)}
	}
	if expRows != numStates {
		return nil, &TableError{File: ExpValuesFile,
			Reason: fmt.Sprintf("%d rows for %d energy levels", expRows, numStates)}
	}

	return &SimulationData{
		Energies:   energies,
		PotentialX: mat.Col(nil, 0, potential),
		PotentialY: mat.Col(nil, 1, potential),
		WaveX:      mat.Col(nil, 0, wave),
		Wavefuncs:  mat.DenseCopyOf(wave.Slice(0, waveRows, 1, waveCols)),
		ExpValues:  exp,
	}, nil
}

// splitEnergies accepts one value per line or, as a fallback, all values on a
// single line.
func splitEnergies(t *mat.Dense) ([]float64, error) {
	r, c := t.Dims()
	switch {
	case c == 1:
		return mat.Col(nil, 0, t), nil
	case r == 1:
		return mat.Row(nil, 0, t), nil
	default:
		return nil, &TableError{File: EnergiesFile, Reason: fmt.Sprintf("expected a single column, found %d", c)}
	}
}
