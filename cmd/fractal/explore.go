package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/cli"
)

func exploreCmd(cfg *cli.Config) *cobra.Command {
	var win cli.WindowConfig

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Open the explorer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			if fs.Changed("width") {
				cfg.Window.Width = win.Width
			}
			if fs.Changed("height") {
				cfg.Window.Height = win.Height
			}
			if fs.Changed("fps") {
				cfg.Window.ShowFPS = win.ShowFPS
			}
			if fs.Changed("async") {
				cfg.Window.Async = win.Async
			}
			if fs.Changed("backdrop") {
				cfg.Window.Backdrop = win.Backdrop
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runExplore(cmd.Context(), *cfg)
		},
	}

	defaults := cli.DefaultConfig().Window
	cmd.Flags().IntVar(&win.Width, "width", defaults.Width, "initial window width")
	cmd.Flags().IntVar(&win.Height, "height", defaults.Height, "initial window height")
	cmd.Flags().BoolVar(&win.ShowFPS, "fps", false, "show the frame rate")
	cmd.Flags().BoolVar(&win.Async, "async", false, "render in the background")
	cmd.Flags().BoolVar(&win.Backdrop, "backdrop", false, "draw a dark box behind the readout")
	return cmd
}

func runExplore(ctx context.Context, cfg cli.Config) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	app := fractal.NewApp(cfg.Window.Width, cfg.Window.Height, opts...)
	defer app.Close()

	comp, err := fractal.NewCompositor()
	if err != nil {
		return err
	}
	defer comp.Close()
	if cfg.Window.Backdrop {
		comp.Backdrop = color.RGBA{A: 160}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	slog.Info("explorer started",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"async", cfg.Window.Async)

	return ebiten.RunGame(&explorer{
		ctx:     ctx,
		app:     app,
		comp:    comp,
		async:   cfg.Window.Async,
		showFPS: cfg.Window.ShowFPS,
	})
}

// explorer adapts an App to ebiten's game loop: Update feeds one frame of
// input, Draw composes the current frame when it changes.
type explorer struct {
	ctx     context.Context
	app     *fractal.App
	comp    *fractal.Compositor
	async   bool
	showFPS bool

	canvas *image.RGBA
	shown  *fractal.Frame
	gate   cli.Gate
}

func (e *explorer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		e.app.Reset()
	}

	_, wheelY := ebiten.Wheel()
	cx, cy := ebiten.CursorPosition()
	in := cli.DecodeInput(wheelY, cli.Keys{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}, cx, cy)

	if e.async {
		e.gate.Submit(in, e.app.FrameAsync)
		return nil
	}
	if _, err := e.app.Frame(e.ctx, in); err != nil {
		if errors.Is(err, context.Canceled) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (e *explorer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if e.canvas == nil || e.canvas.Bounds() != b {
		e.canvas = image.NewRGBA(b)
		e.shown = nil
	}

	if f := e.app.Current(); f != nil && f != e.shown {
		if err := e.comp.Compose(e.canvas, f); err != nil {
			slog.Warn("compose failed", "err", err)
		}
		e.shown = f
	}
	screen.WritePixels(e.canvas.Pix)

	if e.showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), 4, b.Dy()-16)
	}
}

func (e *explorer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.app.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
