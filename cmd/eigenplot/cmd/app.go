package cmd

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"github.com/user/eigenplot_go/internal/analysis"
	"github.com/user/eigenplot_go/internal/config"
	"github.com/user/eigenplot_go/internal/interact"
	"github.com/user/eigenplot_go/internal/parser"
	"github.com/user/eigenplot_go/internal/report"
)

// App runs one plotting pass: load, automatic chart, optional manual chart.
type App struct {
	cfg      config.Config
	prompter *interact.Prompter
	out      io.Writer

	// Set when the amplitude came from a flag, env or config file rather
	// than the built-in default; the manual stage then does not ask for it.
	amplitudeGiven bool
}

// NewApp wires cfg to the given input. Tables and hints go to out.
func NewApp(cfg config.Config, in interact.Input, out io.Writer) *App {
	return &App{
		cfg:      cfg,
		prompter: &interact.Prompter{In: in, Out: out},
		out:      out,
	}
}

// Result lists the artifacts written by Run.
type Result struct {
	Dir       string
	Artifacts []string
}

func (a *App) sendStatus(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// resolveDir returns the configured directory, or the working directory, when
// all input files are there. Otherwise the user is asked for one; the answer
// is not checked here, the loader reports what is still missing.
func (a *App) resolveDir() (string, error) {
	dir := a.cfg.Dir
	if dir == "" {
		dir = "."
	}
	missing := parser.Missing(dir)
	if len(missing) == 0 {
		return dir, nil
	}
	log.WithFields(log.Fields{"dir": dir, "missing": missing}).Debug("Input files not found")
	typed, err := a.prompter.AskDirectory(missing)
	if err != nil {
		return "", errors.Wrap(err, "asking for the data directory")
	}
	return typed, nil
}

// Run executes the pipeline. Every artifact is rendered completely before
// it is written.
func (a *App) Run() (*Result, error) {
	dir, err := a.resolveDir()
	if err != nil {
		return nil, err
	}

	a.sendStatus("Parsing: %s", dir)
	data, err := parser.LoadSimulationData(dir)
	if err != nil {
		return nil, errors.Wrap(err, "loading simulation data")
	}
	a.sendStatus("Loaded %d states, %d grid points.", data.NumStates(), len(data.WaveX))
	report.PrintStates(a.out, data)

	result := &Result{Dir: dir}

	a.sendStatus("Generating plot with automatic limits...")
	auto, err := report.ComposeAuto(data, dir)
	if err != nil {
		return result, errors.Wrap(err, "composing automatic chart")
	}
	a.applySize(auto)
	log.Debugf("Automatic limits: panel 1 %s, panel 2 %s", auto.Panel1, auto.Panel2)
	if err := a.write(result, a.cfg.AutoOutput, auto); err != nil {
		return result, err
	}
	charts := []*report.Chart{auto}

	wantManual, err := a.manualGate()
	if err != nil {
		return result, err
	}
	if wantManual {
		manual, err := a.composeManual(data, dir, auto.Panel1)
		if err != nil {
			return result, err
		}
		if err := a.write(result, a.cfg.ManualOutput, manual); err != nil {
			return result, err
		}
		charts = append(charts, manual)
	}

	report.PrintLimits(a.out, charts...)
	return result, nil
}

func (a *App) manualGate() (bool, error) {
	switch a.cfg.Manual {
	case config.ManualYes:
		return true, nil
	case config.ManualNo:
		return false, nil
	}
	ok, err := a.prompter.Confirm("Create a plot with manual limits and amplitude?")
	if err != nil {
		return false, errors.Wrap(err, "asking for manual mode")
	}
	return ok, nil
}

func (a *App) composeManual(data *parser.SimulationData, dir string, defaults analysis.Limits) (*report.Chart, error) {
	amplitude := a.cfg.Amplitude
	if !a.amplitudeGiven {
		var err error
		amplitude, err = a.prompter.AskAmplitude(a.cfg.Amplitude, a.cfg.AmplitudeAttempts)
		if err != nil {
			return nil, errors.Wrap(err, "manual mode aborted")
		}
	}

	var overrides []analysis.Override
	if a.cfg.Limits != "" {
		var err error
		overrides, err = analysis.ParseOverrides(a.cfg.Limits, a.cfg.StrictLimits)
		if err != nil {
			return nil, errors.Wrap(err, "manual mode aborted")
		}
	} else {
		var err error
		overrides, err = a.prompter.AskLimits(defaults, a.cfg.StrictLimits)
		if err != nil {
			return nil, errors.Wrap(err, "manual mode aborted")
		}
	}

	a.sendStatus("Generating plot with manual limits (amplitude %g)...", amplitude)
	chart, err := report.ComposeManual(data, dir, amplitude, overrides)
	if err != nil {
		return nil, errors.Wrap(err, "composing manual chart")
	}
	a.applySize(chart)
	log.Debugf("Manual limits: panel 1 %s, panel 2 %s", chart.Panel1, chart.Panel2)
	return chart, nil
}

func (a *App) applySize(c *report.Chart) {
	c.SetSize(vg.Length(a.cfg.WidthPt), vg.Length(a.cfg.HeightPt))
}

func (a *App) write(result *Result, base string, c *report.Chart) error {
	path := report.ArtifactPath(a.cfg.OutDir, base, a.cfg.Format)
	if err := report.WriteArtifact(path, a.cfg.Format, c); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	result.Artifacts = append(result.Artifacts, path)
	a.sendStatus("Chart written: %s", path)
	return nil
}
