package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/user/eigenplot_go/internal/config"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create eigenplot configuration files",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate a YAML configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return printYAML(cmd, cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration resolved from flags, environment and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return printYAML(cmd, cfg)
		},
	})

	return configCmd
}

func printYAML(cmd *cobra.Command, cfg config.Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
