package tableau

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the frame rate and the last frame's repaint stats in the
// top-left corner of the screen. It is drawn after the stage canvas so it
// never adds damage.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed int
	text    string
}

const fpsRefreshTicks = 30

func newFPSOverlay() *fpsOverlay {
	// enough for three lines of DebugPrint text
	return &fpsOverlay{img: ebiten.NewImage(140, 48)}
}

// update refreshes the text about twice a second.
func (o *fpsOverlay) update(s *Stage) {
	o.elapsed++
	if o.text != "" && o.elapsed < fpsRefreshTicks {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nMapped: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.MappedActors())
	o.img.Clear()
	o.img.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
