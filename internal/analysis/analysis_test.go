package analysis

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"

	"github.com/user/eigenplot_go/internal/parser"
)

const eps = 1e-12

func sampleData() *parser.SimulationData {
	return &parser.SimulationData{
		Energies:   []float64{-1.0, 0.5},
		PotentialX: []float64{-5, -2.5, 0, 2.5, 5},
		PotentialY: []float64{3, 0, -1.5, 0, 3},
		WaveX:      []float64{-5, 0, 5},
		Wavefuncs:  mat.NewDense(3, 2, []float64{0.1, -0.2, 0.6, 0, 0.1, 0.2}),
		ExpValues:  mat.NewDense(2, 2, []float64{0.0, 0.8, 0.05, 1.4}),
	}
}

func TestAutoLimits(t *testing.T) {
	Convey("Given energies -1.0 and 0.5 over a potential on [-5, 5]", t, func() {
		d := sampleData()
		p1, p2, err := AutoLimits(d)
		So(err, ShouldBeNil)

		Convey("Panel 1 spans the potential x range", func() {
			So(p1.XMin, ShouldEqual, -5.0)
			So(p1.XMax, ShouldEqual, 5.0)
		})

		Convey("The lower y bound is padded by 10% of the distance to 0.5", func() {
			So(p1.YMin, ShouldAlmostEqual, -1.5-0.1*2.0, eps)
		})

		Convey("The upper y bound is the top level plus 10% without the fixed offset", func() {
			So(p1.YMax, ShouldAlmostEqual, 0.55, eps)
		})

		Convey("Panel 2 runs from 0 to the padded maximum spread and shares y", func() {
			So(p2.XMin, ShouldEqual, 0.0)
			So(p2.XMax, ShouldAlmostEqual, 1.4*1.1, eps)
			So(p2.YMin, ShouldEqual, p1.YMin)
			So(p2.YMax, ShouldEqual, p1.YMax)
		})
	})

	Convey("Given a near-zero energy scale", t, func() {
		d := sampleData()
		d.Energies = []float64{0.1, 0.3}

		p1, p2, err := AutoLimits(d)
		So(err, ShouldBeNil)

		Convey("Panel 1 ends at the padded top level plus the fixed offset", func() {
			So(p1.YMax, ShouldAlmostEqual, 0.3*1.1+0.25, eps)
			So(p2.YMax, ShouldEqual, p1.YMax)
		})

		Convey("The upper bound gets the fixed 0.25 offset", func() {
			So(UpperEnergyBound(0.3), ShouldAlmostEqual, (0.3+0.3*0.1)+0.25, eps)
			So(UpperEnergyBound(-0.4), ShouldAlmostEqual, (-0.4-0.04)+0.25, eps)
		})

		Convey("Bounds above the threshold are left alone", func() {
			So(UpperEnergyBound(2), ShouldAlmostEqual, 2.2, eps)
		})
	})

	Convey("Given no positive spread value", t, func() {
		d := sampleData()
		d.ExpValues = mat.NewDense(2, 2, []float64{0, 0, 0, -0.3})

		_, p2, err := AutoLimits(d)
		So(err, ShouldBeNil)

		Convey("Panel 2 falls back to a unit x range", func() {
			So(p2.XMin, ShouldEqual, 0.0)
			So(p2.XMax, ShouldEqual, 1.0)
			So(p2.Validate(), ShouldBeNil)
		})
	})

	Convey("Given no data", t, func() {
		_, _, err := AutoLimits(nil)
		So(err, ShouldNotBeNil)
	})
}

func TestOverrides(t *testing.T) {
	defaults := Limits{XMin: 0, XMax: 10, YMin: -1, YMax: 4}

	Convey("Given the override tokens -5 x 3.2 d", t, func() {
		ov, err := ParseOverrides("-5 x 3.2 d", false)
		So(err, ShouldBeNil)

		Convey("Non numeric tokens keep the default at their position", func() {
			got := ApplyOverrides(defaults, ov)
			So(got.Array(), ShouldResemble, [4]float64{-5, 10, 3.2, 4})
		})
	})

	Convey("Given comma separated tokens with an empty position", t, func() {
		ov, err := ParseOverrides(" , 12.5,, -0.75", false)
		So(err, ShouldBeNil)
		So(ov, ShouldHaveLength, 4)
		So(ApplyOverrides(defaults, ov).Array(), ShouldResemble, [4]float64{0, 12.5, -1, -0.75})
	})

	Convey("Given fewer than four tokens", t, func() {
		ov, err := ParseOverrides("2", false)
		So(err, ShouldBeNil)
		So(ApplyOverrides(defaults, ov).Array(), ShouldResemble, [4]float64{2, 10, -1, 4})
	})

	Convey("Given blank input", t, func() {
		ov, err := ParseOverrides("   ", false)
		So(err, ShouldBeNil)
		So(ApplyOverrides(defaults, ov), ShouldResemble, defaults)
	})

	Convey("Given five tokens", t, func() {
		_, err := ParseOverrides("1 2 3 4 5", false)
		So(errors.Is(err, ErrTooManyOverrides), ShouldBeTrue)
	})

	Convey("Given a typo in strict mode", t, func() {
		_, err := ParseOverrides("1,2o,d,4", true)
		So(errors.Is(err, ErrUnknownOverrideToken), ShouldBeTrue)

		Convey("Documented placeholders are still accepted", func() {
			ov, err := ParseOverrides("1,keep,d,4", true)
			So(err, ShouldBeNil)
			So(ApplyOverrides(defaults, ov).Array(), ShouldResemble, [4]float64{1, 10, -1, 4})
		})
	})

	Convey("Given commas and blanks mixed in one input", t, func() {
		_, err := ParseOverrides("1, 2 3, 4", false)
		So(errors.Is(err, ErrMixedSeparators), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "2 3")
	})

	Convey("Non finite numbers are not taken as overrides", t, func() {
		ov, err := ParseOverrides("NaN Inf 1 2", false)
		So(err, ShouldBeNil)
		So(ApplyOverrides(defaults, ov).Array(), ShouldResemble, [4]float64{0, 10, 1, 2})
	})
}

func TestParseAmplitude(t *testing.T) {
	Convey("Amplitude input", t, func() {
		Convey("Blank input selects the default", func() {
			v, err := ParseAmplitude("  ", 1)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 1.0)
		})

		Convey("Decimal input is accepted", func() {
			v, err := ParseAmplitude("2.5", 1)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 2.5)
		})

		Convey("Non numeric input is rejected", func() {
			_, err := ParseAmplitude("big", 1)
			So(errors.Is(err, ErrInvalidAmplitude), ShouldBeTrue)
		})

		Convey("Zero and negative factors are rejected", func() {
			_, err := ParseAmplitude("0", 1)
			So(errors.Is(err, ErrInvalidAmplitude), ShouldBeTrue)
			_, err = ParseAmplitude("-3", 1)
			So(errors.Is(err, ErrInvalidAmplitude), ShouldBeTrue)
		})
	})
}

func shouldApproximate(actual interface{}, expected ...interface{}) string {
	got, want := actual.([]float64), expected[0].([]float64)
	if msg := ShouldHaveLength(got, len(want)); msg != "" {
		return msg
	}
	for i := range want {
		if msg := ShouldAlmostEqual(got[i], want[i], eps); msg != "" {
			return msg
		}
	}
	return ""
}

func TestShiftedWavefunction(t *testing.T) {
	Convey("Given two states", t, func() {
		d := sampleData()

		Convey("With unit amplitude each curve is offset by its energy", func() {
			So(ShiftedWavefunction(d, 0, 1), shouldApproximate, []float64{-0.9, -0.4, -0.9})
			So(ShiftedWavefunction(d, 1, 1), shouldApproximate, []float64{0.3, 0.5, 0.7})
		})

		Convey("The amplitude scales samples before the offset", func() {
			got := ShiftedWavefunction(d, 1, 3)
			So(got[0], ShouldAlmostEqual, 3*-0.2+0.5, eps)
			So(got[2], ShouldAlmostEqual, 3*0.2+0.5, eps)
		})

		Convey("The source grid is not modified", func() {
			ShiftedWavefunction(d, 0, 10)
			So(d.Wavefuncs.At(1, 0), ShouldEqual, 0.6)
		})
	})

	Convey("Parity depends on the index only", t, func() {
		So(StateParity(0), ShouldEqual, Even)
		So(StateParity(1), ShouldEqual, Odd)
		So(StateParity(2), ShouldEqual, Even)
		So(StateParity(7), ShouldEqual, Odd)
	})
}
