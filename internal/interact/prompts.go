package interact

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/user/eigenplot_go/internal/analysis"
)

// Prompter asks the questions of a plotting run. Hints and rejections are
// written to Out.
type Prompter struct {
	In  Input
	Out io.Writer
}

// Confirm asks a yes/no question until the answer is recognised.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		answer, err := p.In.Ask(question + " [y/n]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.reject("please answer y or n")
	}
}

// AskDirectory asks for the directory holding the input files. The path is
// returned as typed.
func (p *Prompter) AskDirectory(missing []string) (string, error) {
	fmt.Fprintln(p.Out, HintStyle.Render(fmt.Sprintf("Not found in the working directory: %s", strings.Join(missing, ", "))))
	answer, err := p.In.Ask("Directory with the data files:")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// AskAmplitude asks for the wavefunction amplitude factor. Invalid answers are
// rejected and asked again, at most attempts times in total.
func (p *Prompter) AskAmplitude(def float64, attempts int) (float64, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		answer, err := p.In.Ask(fmt.Sprintf("Amplitude factor (default %g):", def))
		if err != nil {
			return 0, err
		}
		v, err := analysis.ParseAmplitude(answer, def)
		if err == nil {
			return v, nil
		}
		lastErr = err
		p.reject(err.Error())
	}
	return 0, errors.Wrapf(lastErr, "giving up after %d attempts", attempts)
}

// AskLimits asks for the panel 1 limit overrides. An answer with too many
// values, or an unknown token in strict mode, is asked again.
func (p *Prompter) AskLimits(defaults analysis.Limits, strict bool) ([]analysis.Override, error) {
	fmt.Fprintln(p.Out, HintStyle.Render(fmt.Sprintf(
		"Automatic limits: xmin=%.4g xmax=%.4g ymin=%.4g ymax=%.4g; use d to keep a value",
		defaults.XMin, defaults.XMax, defaults.YMin, defaults.YMax)))
	for {
		answer, err := p.In.Ask("Limits (xmin, xmax, ymin, ymax):")
		if err != nil {
			return nil, err
		}
		overrides, err := analysis.ParseOverrides(answer, strict)
		if err == nil {
			return overrides, nil
		}
		p.reject(err.Error())
	}
}

func (p *Prompter) reject(msg string) {
	fmt.Fprintln(p.Out, ErrorStyle.Render(msg))
}
