package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// WriteTable writes m as a whitespace separated table, one row per line, using
// the shortest representation that parses back to the same float64.
func WriteTable(w io.Writer, m mat.Matrix) error {
	bw := bufio.NewWriter(w)
	r, c := m.Dims()
	buf := make([]byte, 0, 32)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteString("  ")
			}
			buf = strconv.AppendFloat(buf[:0], m.At(i, j), 'g', -1, 64)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SaveSimulationData writes d back to dir in the layout LoadSimulationData reads.
func SaveSimulationData(dir string, d *SimulationData) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	waveRows, numStates := d.Wavefuncs.Dims()
	wave := mat.NewDense(waveRows, numStates+1, nil)
	wave.SetCol(0, d.WaveX)
	wave.Slice(0, waveRows, 1, numStates+1).(*mat.Dense).Copy(d.Wavefuncs)

	potential := mat.NewDense(len(d.PotentialX), 2, nil)
	potential.SetCol(0, d.PotentialX)
	potential.SetCol(1, d.PotentialY)

	tables := []struct {
		name string
		m    mat.Matrix
	}{
		{EnergiesFile, mat.NewVecDense(len(d.Energies), d.Energies)},
		{PotentialFile, potential},
		{WavefuncsFile, wave},
		{ExpValuesFile, d.ExpValues},
	}
	for _, t := range tables {
		if err := writeTableFile(filepath.Join(dir, t.name), t.m); err != nil {
			return err
		}
	}
	return nil
}

func writeTableFile(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := WriteTable(f, m); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}
