// Package cmd contains the eigenplot command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/eigenplot_go/internal/config"
	"github.com/user/eigenplot_go/internal/interact"
)

// flagKeys maps command line flags onto viper keys.
var flagKeys = map[string]string{
	"dir":           "dir",
	"out-dir":       "out_dir",
	"format":        "format",
	"auto-output":   "auto_output",
	"manual-output": "manual_output",
	"width":         "width_pt",
	"height":        "height_pt",
	"amplitude":     "amplitude",
	"manual":        "manual",
	"limits":        "limits",
	"strict-limits": "strict_limits",
	"verbose":       "verbose",
}

// NewRootCmd builds the command tree around its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "eigenplot",
		Short: "Plot eigenstates, potential and expectation values of a 1-D simulation",
		Long: `eigenplot reads energies.dat, potential.dat, wavefuncs.dat and expvalues.dat
from a data directory and draws a two-panel chart:

  - left:  the potential, one dashed line per energy level, every wavefunction
           drawn on its level (even states red, odd states blue) and <x> markers
  - right: the energy levels against the spread expectation value

Limits are derived from the data. A second chart with a wavefunction amplitude
factor and hand-picked panel 1 limits can be produced in manual mode.

Limit overrides are given as "xmin, xmax, ymin, ymax"; put d in a position to
keep the automatic value, e.g. "-5, d, d, 3".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.StringP("dir", "d", "", "directory with the .dat files (default: working directory)")
	flags.StringP("out-dir", "o", ".", "directory for the chart files")
	flags.StringP("format", "f", "pdf", "chart file format: pdf or png")
	flags.String("auto-output", "plot", "file name (without extension) of the automatic chart")
	flags.String("manual-output", "plot_manual", "file name (without extension) of the manual chart")
	flags.Float64("width", 800, "chart width in points")
	flags.Float64("height", 800, "chart height in points")
	flags.Float64P("amplitude", "a", 1, "wavefunction amplitude factor for the manual chart")
	flags.StringP("manual", "m", config.ManualAsk, "manual chart: ask, yes or no")
	flags.StringP("limits", "l", "", "panel 1 limit overrides for the manual chart")
	flags.Bool("strict-limits", false, "reject non-numeric limit tokens other than d")
	flags.BoolP("verbose", "v", false, "verbose output")

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(newConfigCmd(v))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// initConfig reads the config file, if any, and environment variables.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("EIGENPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfgFile)
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if v.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return nil
}

func runPlot(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", cfg.OutDir)
	}

	app := NewApp(cfg, interact.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
	app.amplitudeGiven = explicitlySet(cmd, v, "amplitude", "amplitude")

	result, err := app.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", strings.Join(result.Artifacts, ", "))
	return nil
}

// explicitlySet reports whether key came from the flag, the environment or
// the config file. viper's IsSet also counts registered defaults.
func explicitlySet(cmd *cobra.Command, v *viper.Viper, flag, key string) bool {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return true
	}
	if _, ok := os.LookupEnv("EIGENPLOT_" + strings.ToUpper(key)); ok {
		return true
	}
	return v.InConfig(key)
}
