package analysis

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MaxOverrides is the number of positions in a limit override list.
const MaxOverrides = 4

// keepTokens are the placeholders documented as "use the automatic value".
var keepTokens = map[string]bool{
	"":        true,
	"d":       true,
	"x":       true,
	"-":       true,
	"_":       true,
	"*":       true,
	"default": true,
	"keep":    true,
}

// IsKeepToken reports whether tok is a documented keep-default placeholder.
func IsKeepToken(tok string) bool {
	return keepTokens[strings.ToLower(strings.TrimSpace(tok))]
}

// ParseOverrides splits input into at most four override positions in
// (x-min, x-max, y-min, y-max) order. Commas separate positions when present,
// so ",,1" overrides only y-min; otherwise blanks do. A comma separated
// position that still holds blanks is rejected.
//
// A token that parses as a finite number replaces the automatic value. Any
// other token keeps it. With strict set, tokens that are neither numbers nor
// documented placeholders are rejected instead.
func ParseOverrides(input string, strict bool) ([]Override, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	var tokens []string
	if strings.Contains(input, ",") {
		tokens = strings.Split(input, ",")
	} else {
		tokens = strings.FieldsFunc(input, unicode.IsSpace)
	}
	if len(tokens) > MaxOverrides {
		return nil, errors.Wrapf(ErrTooManyOverrides, "got %d values, expected at most %d", len(tokens), MaxOverrides)
	}

	overrides := make([]Override, len(tokens))
	for i, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
			return nil, errors.Wrapf(ErrMixedSeparators, "position %d: %q", i+1, tok)
		}
		overrides[i].Token = tok

		v, err := strconv.ParseFloat(tok, 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			overrides[i].Value = v
			overrides[i].Set = true
			continue
		}
		if IsKeepToken(tok) {
			continue
		}
		if strict {
			return nil, errors.Wrapf(ErrUnknownOverrideToken, "position %d: %q", i+1, tok)
		}
		log.Warnf("Limit override %d: %q is not a number, keeping the automatic value", i+1, tok)
	}
	return overrides, nil
}

// ApplyOverrides replaces the positions of defaults that have a numeric override.
func ApplyOverrides(defaults Limits, overrides []Override) Limits {
	bounds := defaults.Array()
	for i, ov := range overrides {
		if i >= len(bounds) {
			break
		}
		if ov.Set {
			bounds[i] = ov.Value
		}
	}
	return LimitsFromArray(bounds)
}

// ParseAmplitude reads the wavefunction amplitude factor. Blank input selects
// def; anything else must be a finite positive number.
func ParseAmplitude(input string, def float64) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmplitude, "%q is not a number", input)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, errors.Wrapf(ErrInvalidAmplitude, "%q must be a positive number", input)
	}
	return v, nil
}
