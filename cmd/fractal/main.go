// Command fractal explores the Mandelbrot set next to the Julia set of the
// point under the pointer.
//
// Usage:
//
//	fractal [flags]            open the explorer window
//	fractal explore [flags]    same, with window flags
//	fractal bench [flags]      render a scripted session headlessly
//
// Settings are read from fractal.toml in the working directory (or --config)
// and may be overridden by flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/cli"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config     string
	debug      bool
	iterations int
	colorModel string
	workers    int
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd(), fang.WithVersion(fractal.Version)); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		flags globalFlags
		cfg   cli.Config
	)

	root := &cobra.Command{
		Use:   "fractal",
		Short: "Mandelbrot and Julia set explorer",
		Long: `fractal shows the Mandelbrot set next to the Julia set of the point under
the pointer. Scroll to zoom, use the arrow keys to pan, R to reset and Esc
to quit.`,
		Example: `  # Open the explorer
  fractal

  # More detail, perceptual palette
  fractal --iterations 500 --color-model hcl

  # Headless benchmark with debug logging
  fractal bench --frames 1000 --debug`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			logger := cli.NewLogger(cmd.ErrOrStderr(), flags.debug)
			slog.SetDefault(logger)
			fractal.SetLogger(logger)

			c, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplore(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "configuration file (default ./"+cli.DefaultConfigFile+" if present)")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.IntVarP(&flags.iterations, "iterations", "n", fractal.DefaultMaxIterations, "escape-time iteration bound")
	pf.StringVar(&flags.colorModel, "color-model", fractal.HSV.String(), "palette color model: hsv, hcl or hsl")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "render workers (0 = one per CPU, 1 = serial)")

	root.AddCommand(exploreCmd(&cfg), benchCmd(&cfg))
	return root
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command, flags globalFlags) (cli.Config, error) {
	cfg := cli.DefaultConfig()

	path := flags.config
	if path == "" {
		if _, err := os.Stat(cli.DefaultConfigFile); err == nil {
			path = cli.DefaultConfigFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return cli.Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if path != "" {
		c, err := cli.LoadConfig(path)
		if err != nil {
			return cli.Config{}, err
		}
		cfg = c
		slog.Info("config loaded", "path", path)
	}

	fs := cmd.Flags()
	if fs.Changed("iterations") {
		cfg.Iterations = flags.iterations
	}
	if fs.Changed("color-model") {
		cfg.ColorModel = flags.colorModel
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.workers
	}
	return cfg, cfg.Validate()
}
