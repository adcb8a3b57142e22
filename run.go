package tableau

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws the frame rate over the stage.
	ShowFPS bool
	// UpdateFunc runs once per tick before the stage is painted. Returning
	// an error stops the game loop.
	UpdateFunc func() error
}

// game implements ebiten.Game on top of a Stage. Frames are painted into a
// persistent canvas so only the damaged part of the stage is repainted.
type game struct {
	stage    *Stage
	config   RunConfig
	canvas   *ebiten.Image
	renderer *EbitenRenderer
	fps      *fpsOverlay
}

func (g *game) Update() error {
	if g.fps != nil {
		g.fps.update(g.stage)
	}
	if g.config.UpdateFunc != nil {
		return g.config.UpdateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	bounds := g.stage.DeviceBounds()
	w, h := int(bounds.X2), int(bounds.Y2)
	if w <= 0 || h <= 0 {
		return
	}
	if g.canvas == nil || g.canvas.Bounds().Dx() != w || g.canvas.Bounds().Dy() != h {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(w, h)
		g.renderer = NewEbitenRenderer(g.canvas)
		g.stage.QueueFullRedraw()
	}
	g.renderer.Reset(IdentityMatrix())
	g.stage.Paint(g.renderer)
	g.stage.flushScreenshots(g.canvas)
	screen.DrawImage(g.canvas, nil)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, g.config.Height
}

// Run opens a window showing stage and blocks until the window is closed
// or UpdateFunc returns an error. The stage is shown if it is not already.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := stage.Size()
		cfg.Width, cfg.Height = int(w), int(h)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if !stage.IsMapped() {
		stage.Show()
	}
	g := &game{stage: stage, config: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}
