package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"life-grid/internal/app"
)

// newRootCommand wires flags and config loading around run, which receives
// the validated config and a logger.
func newRootCommand(short string, run func(cfg *app.Config, logger *log.Logger) error) *cobra.Command {
	cfg := app.NewConfig()
	var configFile string

	cmd := &cobra.Command{
		Use:   "life",
		Short: short,
		Long: `Conway's Game of Life on a board sized to the viewport. ` +
			`Flags override LIFE_* environment variables and .env, which override --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			explicit := map[string]string{}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				explicit[f.Name] = f.Value.String()
			})

			if configFile != "" {
				if err := cfg.LoadFile(configFile); err != nil {
					return err
				}
			}
			if err := cfg.LoadEnv(".env"); err != nil {
				return err
			}
			for name, value := range explicit {
				if err := cmd.Flags().Set(name, value); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg, cfg.Logger(os.Stderr))
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "JSON config file")
	cfg.Bind(cmd.Flags())
	return cmd
}
