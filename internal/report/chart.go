package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/user/eigenplot_go/internal/analysis"
	"github.com/user/eigenplot_go/internal/parser"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
	renderDPI     = 96
)

var (
	evenColor      = color.RGBA{R: 255, A: 255}
	oddColor       = color.RGBA{B: 255, A: 255}
	levelColor     = color.Gray{Y: 128}
	potentialColor = color.Black
	markerColor    = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}
)

// StateColor returns red for even state indices and blue for odd ones.
func StateColor(state int) color.Color {
	if analysis.StateParity(state) == analysis.Even {
		return evenColor
	}
	return oddColor
}

// ChartOptions controls one composition. Zero Width/Height select the defaults.
type ChartOptions struct {
	Panel1    analysis.Limits
	Panel2    analysis.Limits
	Amplitude float64
	Manual    bool
	Source    string
	Width     vg.Length
	Height    vg.Length
}

// Chart is a composed two-panel figure: potential and eigenstates on the left,
// energy levels against the second expectation observable on the right.
type Chart struct {
	Title     string
	Source    string
	Amplitude float64
	Manual    bool
	Panel1    analysis.Limits
	Panel2    analysis.Limits
	Left      *plot.Plot
	Right     *plot.Plot

	// Wavefunctions holds the drawn curve of every state, in state order.
	Wavefunctions []*plotter.Line

	width, height vg.Length
}

// ComposeAuto builds the chart with computed limits and unit amplitude.
func ComposeAuto(d *parser.SimulationData, source string) (*Chart, error) {
	p1, p2, err := analysis.AutoLimits(d)
	if err != nil {
		return nil, err
	}
	return Compose(d, ChartOptions{Panel1: p1, Panel2: p2, Amplitude: 1, Source: source})
}

// ComposeManual builds the chart with the wavefunctions scaled by amplitude
// and panel 1 limits overridden position by position. Panel 2 keeps its
// computed x range and follows the vertical range of panel 1.
func ComposeManual(d *parser.SimulationData, source string, amplitude float64, overrides []analysis.Override) (*Chart, error) {
	auto, _, err := analysis.AutoLimits(d)
	if err != nil {
		return nil, err
	}
	p1 := analysis.ApplyOverrides(auto, overrides)
	return Compose(d, ChartOptions{
		Panel1:    p1,
		Panel2:    analysis.PanelTwoLimits(d, p1),
		Amplitude: amplitude,
		Manual:    true,
		Source:    source,
	})
}

// Compose draws both panels with the limits given in opts.
func Compose(d *parser.SimulationData, opts ChartOptions) (*Chart, error) {
	if d == nil || d.NumStates() == 0 {
		return nil, errors.New("no simulation data to plot")
	}
	if err := opts.Panel1.Validate(); err != nil {
		return nil, errors.Wrap(err, "panel 1")
	}
	if err := opts.Panel2.Validate(); err != nil {
		return nil, errors.Wrap(err, "panel 2")
	}
	if opts.Amplitude <= 0 || math.IsNaN(opts.Amplitude) || math.IsInf(opts.Amplitude, 0) {
		return nil, errors.Wrapf(analysis.ErrInvalidAmplitude, "%g", opts.Amplitude)
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}

	title := "Potential and eigenstates"
	if opts.Manual {
		title = fmt.Sprintf("%s (amplitude x%g)", title, opts.Amplitude)
	}

	left, waves, err := potentialPanel(d, opts.Amplitude, opts.Panel1)
	if err != nil {
		return nil, err
	}
	left.Title.Text = title

	right, err := expectationPanel(d, opts.Panel2)
	if err != nil {
		return nil, err
	}
	right.Title.Text = "Energy levels and spread"

	return &Chart{
		Title:     title,
		Source:    opts.Source,
		Amplitude: opts.Amplitude,
		Manual:    opts.Manual,
		Panel1:    opts.Panel1,
		Panel2:    opts.Panel2,
		Left:      left,
		Right:     right,

		Wavefunctions: waves,
		width:         opts.Width,
		height:        opts.Height,
	}, nil
}

func potentialPanel(d *parser.SimulationData, amplitude float64, lim analysis.Limits) (*plot.Plot, []*plotter.Line, error) {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "Energy"

	if err := addEnergyLevels(p, d); err != nil {
		return nil, nil, err
	}

	waves := make([]*plotter.Line, 0, d.NumStates())
	var evenLine, oddLine *plotter.Line
	for i := 0; i < d.NumStates(); i++ {
		ys := analysis.ShiftedWavefunction(d, i, amplitude)
		line, err := plotter.NewLine(xys(d.WaveX, ys))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "wavefunction %d", i)
		}
		waves = append(waves, line)
		line.Color = StateColor(i)
		line.Width = vg.Points(1)
		p.Add(line)
		if i%2 == 0 && evenLine == nil {
			evenLine = line
		} else if i%2 == 1 && oddLine == nil {
			oddLine = line
		}
	}

	potential, err := plotter.NewLine(xys(d.PotentialX, d.PotentialY))
	if err != nil {
		return nil, nil, errors.Wrap(err, "potential")
	}
	potential.Color = potentialColor
	potential.Width = vg.Points(1.5)
	p.Add(potential)

	markers, err := plotter.NewScatter(xys(d.ExpPosition(), d.Energies))
	if err != nil {
		return nil, nil, errors.Wrap(err, "position expectation values")
	}
	markers.GlyphStyle.Shape = draw.CrossGlyph{}
	markers.GlyphStyle.Color = markerColor
	markers.GlyphStyle.Radius = vg.Points(4)
	p.Add(markers)

	p.Legend.Add("V(x)", potential)
	if evenLine != nil {
		p.Legend.Add("even states", evenLine)
	}
	if oddLine != nil {
		p.Legend.Add("odd states", oddLine)
	}
	p.Legend.Add("<x>", markers)
	p.Legend.Top = true

	setLimits(p, lim)
	return p, waves, nil
}

func expectationPanel(d *parser.SimulationData, lim analysis.Limits) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "σ_x"
	p.Y.Label.Text = "Energy"

	if err := addEnergyLevels(p, d); err != nil {
		return nil, err
	}

	markers, err := plotter.NewScatter(xys(d.ExpSpread(), d.Energies))
	if err != nil {
		return nil, errors.Wrap(err, "spread expectation values")
	}
	markers.GlyphStyle.Shape = draw.CrossGlyph{}
	markers.GlyphStyle.Color = markerColor
	markers.GlyphStyle.Radius = vg.Points(4)
	p.Add(markers)

	setLimits(p, lim)
	return p, nil
}

// addEnergyLevels draws one dashed horizontal line per level across the
// wavefunction grid.
func addEnergyLevels(p *plot.Plot, d *parser.SimulationData) error {
	xMin, xMax := floats.Min(d.WaveX), floats.Max(d.WaveX)
	for i, e := range d.Energies {
		level, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: e}, {X: xMax, Y: e}})
		if err != nil {
			return errors.Wrapf(err, "energy level %d", i)
		}
		level.Color = levelColor
		level.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(level)
	}
	return nil
}

// setLimits must run after every plotter is added, since Add widens the axes.
func setLimits(p *plot.Plot, lim analysis.Limits) {
	p.X.Min, p.X.Max = lim.XMin, lim.XMax
	p.Y.Min, p.Y.Max = lim.YMin, lim.YMax
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// SetSize changes the rendered size of the figure. Non-positive values are ignored.
func (c *Chart) SetSize(width, height vg.Length) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// PNG renders both panels side by side with aligned axes.
func (c *Chart) PNG() ([]byte, error) {
	img := vgimg.NewWith(vgimg.UseWH(c.width, c.height), vgimg.UseDPI(renderDPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}
	plots := [][]*plot.Plot{{c.Left, c.Right}}
	canvases := plot.Align(plots, tiles, dc)
	c.Left.Draw(canvases[0][0])
	c.Right.Draw(canvases[0][1])

	buf := new(bytes.Buffer)
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "failed to write chart to buffer")
	}
	return buf.Bytes(), nil
}
