package analysis

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAmplitude     = errors.New("invalid amplitude factor")
	ErrInvalidLimits        = errors.New("invalid axis limits")
	ErrTooManyOverrides     = errors.New("too many limit overrides")
	ErrUnknownOverrideToken = errors.New("unknown limit override token")
	ErrMixedSeparators      = errors.New("limit overrides mix commas and blanks")
)

// Limits is the axis limit vector of one panel.
type Limits struct {
	XMin, XMax, YMin, YMax float64
}

// Array returns the limits in (x-min, x-max, y-min, y-max) order.
func (l Limits) Array() [4]float64 {
	return [4]float64{l.XMin, l.XMax, l.YMin, l.YMax}
}

// LimitsFromArray is the inverse of Limits.Array.
func LimitsFromArray(a [4]float64) Limits {
	return Limits{XMin: a[0], XMax: a[1], YMin: a[2], YMax: a[3]}
}

// Validate rejects empty or inverted ranges, which gonum/plot cannot draw.
func (l Limits) Validate() error {
	if !(l.XMin < l.XMax) {
		return errors.Wrapf(ErrInvalidLimits, "x range [%g, %g] is empty", l.XMin, l.XMax)
	}
	if !(l.YMin < l.YMax) {
		return errors.Wrapf(ErrInvalidLimits, "y range [%g, %g] is empty", l.YMin, l.YMax)
	}
	return nil
}

func (l Limits) String() string {
	return fmt.Sprintf("x=[%.4g, %.4g] y=[%.4g, %.4g]", l.XMin, l.XMax, l.YMin, l.YMax)
}

// Override is one position of a limit override list. Set is false when the
// automatic value is kept.
type Override struct {
	Token string
	Value float64
	Set   bool
}

// Parity is the visual class of a state index.
type Parity int

const (
	Even Parity = iota
	Odd
)

func (p Parity) String() string {
	if p == Even {
		return "even"
	}
	return "odd"
}
