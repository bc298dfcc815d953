package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/cli"
)

func benchCmd(cfg *cli.Config) *cobra.Command {
	var bench cli.BenchConfig

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render a scripted session without a window",
		Long: `bench drives the explorer through a fixed input script (pointer sweep,
zoom, pan, idle) and reports how many panels were rendered and how long
the frames took.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			if fs.Changed("frames") {
				cfg.Bench.Frames = bench.Frames
			}
			if fs.Changed("width") {
				cfg.Bench.Width = bench.Width
			}
			if fs.Changed("height") {
				cfg.Bench.Height = bench.Height
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			app := fractal.NewApp(cfg.Bench.Width, cfg.Bench.Height, opts...)
			defer app.Close()

			script := cli.Script(cfg.Bench.Width, cfg.Bench.Height, cfg.Bench.Frames)
			report, err := cli.Bench(cmd.Context(), app, script)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout())
		},
	}

	defaults := cli.DefaultConfig().Bench
	cmd.Flags().IntVar(&bench.Frames, "frames", defaults.Frames, "number of frames to render")
	cmd.Flags().IntVar(&bench.Width, "width", defaults.Width, "viewport width")
	cmd.Flags().IntVar(&bench.Height, "height", defaults.Height, "viewport height")
	return cmd
}
