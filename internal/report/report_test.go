package report

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/user/eigenplot_go/internal/analysis"
	"github.com/user/eigenplot_go/internal/parser"
)

func sampleData() *parser.SimulationData {
	xs := []float64{-5, -2.5, 0, 2.5, 5}
	return &parser.SimulationData{
		Energies:   []float64{-1.0, 0.5},
		PotentialX: xs,
		PotentialY: []float64{4, 0.5, -1.5, 0.5, 4},
		WaveX:      xs,
		Wavefuncs:  mat.NewDense(5, 2, []float64{0, 0, 0.2, -0.3, 0.5, 0, 0.2, 0.3, 0, 0}),
		ExpValues:  mat.NewDense(2, 2, []float64{0, 0.9, 0, 1.6}),
	}
}

func TestStateColorAlternatesByIndex(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for i, want := range []color.Color{red, blue, red, blue, red} {
		assert.Equal(t, want, StateColor(i), "state %d", i)
	}
}

func TestComposeAutoLimits(t *testing.T) {
	c, err := ComposeAuto(sampleData(), "testdata")
	require.NoError(t, err)

	assert.InDelta(t, 0.55, c.Panel1.YMax, 1e-12)
	assert.InDelta(t, 1.6*1.1, c.Panel2.XMax, 1e-12)
	assert.Equal(t, c.Panel1.YMin, c.Panel2.YMin)
	assert.Equal(t, c.Panel1.YMax, c.Panel2.YMax)

	assert.Equal(t, -5.0, c.Left.X.Min)
	assert.Equal(t, 5.0, c.Left.X.Max)
	assert.Equal(t, c.Panel1.YMax, c.Left.Y.Max)
	assert.Equal(t, 0.0, c.Right.X.Min)
	assert.Equal(t, c.Panel2.XMax, c.Right.X.Max)
	assert.False(t, c.Manual)
	assert.NotContains(t, c.Title, "amplitude")
}

func TestComposeManualOverridesPanelOne(t *testing.T) {
	d := sampleData()
	ov, err := analysis.ParseOverrides("-4, d, -2, 3", false)
	require.NoError(t, err)

	c, err := ComposeManual(d, "testdata", 2.5, ov)
	require.NoError(t, err)

	auto, _, err := analysis.AutoLimits(d)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{-4, auto.XMax, -2, 3}, c.Panel1.Array())
	assert.Equal(t, -2.0, c.Panel2.YMin)
	assert.Equal(t, 3.0, c.Panel2.YMax)
	assert.InDelta(t, 1.6*1.1, c.Panel2.XMax, 1e-12)
	assert.Contains(t, c.Title, "amplitude x2.5")
	assert.Equal(t, c.Title, c.Left.Title.Text)
}

func threeStateData() *parser.SimulationData {
	xs := []float64{-2, 0, 2}
	return &parser.SimulationData{
		Energies:   []float64{0.5, 1.5, 2.5},
		PotentialX: xs,
		PotentialY: []float64{2, 0, 2},
		WaveX:      xs,
		Wavefuncs:  mat.NewDense(3, 3, []float64{0.1, -0.4, 0.3, 0.7, 0, -0.5, 0.1, 0.4, 0.3}),
		ExpValues:  mat.NewDense(3, 2, []float64{0, 0.7, 0, 1.2, 0, 1.6}),
	}
}

func TestComposeDrawsScaledWavefunctionsInParityColours(t *testing.T) {
	d := threeStateData()
	amplitude := 2.0
	c, err := ComposeManual(d, "", amplitude, nil)
	require.NoError(t, err)

	require.Len(t, c.Wavefunctions, d.NumStates())
	for i, line := range c.Wavefunctions {
		assert.Equal(t, StateColor(i), line.Color, "state %d", i)
		psi := d.Wavefunction(i)
		for j, pt := range line.XYs {
			assert.Equal(t, d.WaveX[j], pt.X)
			assert.InDelta(t, amplitude*psi[j]+d.Energies[i], pt.Y, 1e-12, "state %d sample %d", i, j)
		}
	}
}

func TestComposeRejectsNonFiniteAmplitude(t *testing.T) {
	for _, amp := range []float64{math.NaN(), math.Inf(1)} {
		_, err := ComposeManual(sampleData(), "", amp, nil)
		assert.True(t, errors.Is(err, analysis.ErrInvalidAmplitude), "amplitude %g: %v", amp, err)
	}
}

func TestComposeAutoWithoutPositiveSpread(t *testing.T) {
	d := sampleData()
	d.ExpValues = mat.NewDense(2, 2, []float64{0, 0, 0, 0})

	c, err := ComposeAuto(d, "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Panel2.XMax)
}

func TestComposeRejectsInvertedOverride(t *testing.T) {
	ov, err := analysis.ParseOverrides("d d 5 1", false)
	require.NoError(t, err)

	_, err = ComposeManual(sampleData(), "", 1, ov)
	assert.True(t, errors.Is(err, analysis.ErrInvalidLimits))
}

func TestWriteArtifact(t *testing.T) {
	c, err := ComposeAuto(sampleData(), "testdata")
	require.NoError(t, err)
	dir := t.TempDir()

	t.Run("pdf", func(t *testing.T) {
		path := ArtifactPath(dir, "plot", FormatPDF)
		require.NoError(t, WriteArtifact(path, FormatPDF, c))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("png", func(t *testing.T) {
		path := ArtifactPath(dir, "plot", FormatPNG)
		require.NoError(t, WriteArtifact(path, FormatPNG, c))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("unknown format writes nothing", func(t *testing.T) {
		path := filepath.Join(dir, "plot.gif")
		assert.Error(t, WriteArtifact(path, "gif", c))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestPrintSummaries(t *testing.T) {
	d := sampleData()
	c, err := ComposeAuto(d, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintStates(&buf, d)
	assert.Contains(t, buf.String(), "ENERGY")
	assert.Contains(t, buf.String(), "even")
	assert.Contains(t, buf.String(), "odd")

	buf.Reset()
	PrintLimits(&buf, c)
	assert.Contains(t, buf.String(), "Potential")
	assert.Contains(t, buf.String(), "0.55")
}
