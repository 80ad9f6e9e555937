// Package config holds the settings of a plotting run.
package config

import (
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/user/eigenplot_go/internal/analysis"
)

// Manual mode gate values.
const (
	ManualAsk = "ask"
	ManualYes = "yes"
	ManualNo  = "no"
)

// Config is the resolved configuration of one run.
type Config struct {
	Dir               string  `yaml:"dir" mapstructure:"dir"`
	OutDir            string  `yaml:"out_dir" mapstructure:"out_dir"`
	Format            string  `yaml:"format" mapstructure:"format"`
	AutoOutput        string  `yaml:"auto_output" mapstructure:"auto_output"`
	ManualOutput      string  `yaml:"manual_output" mapstructure:"manual_output"`
	WidthPt           float64 `yaml:"width_pt" mapstructure:"width_pt"`
	HeightPt          float64 `yaml:"height_pt" mapstructure:"height_pt"`
	Amplitude         float64 `yaml:"amplitude" mapstructure:"amplitude"`
	AmplitudeAttempts int     `yaml:"amplitude_attempts" mapstructure:"amplitude_attempts"`
	Manual            string  `yaml:"manual" mapstructure:"manual"`
	Limits            string  `yaml:"limits" mapstructure:"limits"`
	StrictLimits      bool    `yaml:"strict_limits" mapstructure:"strict_limits"`
	Verbose           bool    `yaml:"verbose" mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutDir:            ".",
		Format:            "pdf",
		AutoOutput:        "plot",
		ManualOutput:      "plot_manual",
		WidthPt:           800,
		HeightPt:          800,
		Amplitude:         1,
		AmplitudeAttempts: 3,
		Manual:            ManualAsk,
	}
}

// SetDefaults registers Default() on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("auto_output", d.AutoOutput)
	v.SetDefault("manual_output", d.ManualOutput)
	v.SetDefault("width_pt", d.WidthPt)
	v.SetDefault("height_pt", d.HeightPt)
	v.SetDefault("amplitude", d.Amplitude)
	v.SetDefault("amplitude_attempts", d.AmplitudeAttempts)
	v.SetDefault("manual", d.Manual)
	v.SetDefault("limits", d.Limits)
	v.SetDefault("strict_limits", d.StrictLimits)
	v.SetDefault("verbose", d.Verbose)
}

// FromViper reads the configuration out of v and validates it.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Dir:               v.GetString("dir"),
		OutDir:            v.GetString("out_dir"),
		Format:            strings.ToLower(v.GetString("format")),
		AutoOutput:        v.GetString("auto_output"),
		ManualOutput:      v.GetString("manual_output"),
		WidthPt:           v.GetFloat64("width_pt"),
		HeightPt:          v.GetFloat64("height_pt"),
		Amplitude:         v.GetFloat64("amplitude"),
		AmplitudeAttempts: v.GetInt("amplitude_attempts"),
		Manual:            strings.ToLower(v.GetString("manual")),
		Limits:            v.GetString("limits"),
		StrictLimits:      v.GetBool("strict_limits"),
		Verbose:           v.GetBool("verbose"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be fixed up later in the run.
func (c Config) Validate() error {
	switch c.Format {
	case "pdf", "png":
	default:
		return errors.Errorf("format must be pdf or png, got %q", c.Format)
	}
	switch c.Manual {
	case ManualAsk, ManualYes, ManualNo:
	default:
		return errors.Errorf("manual must be ask, yes or no, got %q", c.Manual)
	}
	if c.AutoOutput == "" || c.ManualOutput == "" {
		return errors.New("output names must not be empty")
	}
	if c.AutoOutput == c.ManualOutput {
		return errors.Errorf("auto_output and manual_output are both %q", c.AutoOutput)
	}
	if c.WidthPt <= 0 || c.HeightPt <= 0 {
		return errors.Errorf("chart size %gx%g must be positive", c.WidthPt, c.HeightPt)
	}
	if c.Amplitude <= 0 || math.IsNaN(c.Amplitude) || math.IsInf(c.Amplitude, 0) {
		return errors.Wrapf(analysis.ErrInvalidAmplitude, "amplitude %g must be a positive finite number", c.Amplitude)
	}
	return nil
}

// Load reads a YAML configuration file on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
