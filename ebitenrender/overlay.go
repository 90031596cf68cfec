package ebitenrender

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/wriggle"
)

const (
	overlayRefresh = 0.5 // seconds between FPS text refreshes
	noticeLineH    = 16
)

// Overlay draws the FPS/TPS readout, live settings and fading notices on
// top of the scene. The readout is cached and refreshed every half second.
type Overlay struct {
	ShowFPS bool

	img     *ebiten.Image
	elapsed float64
	text    string
	line    *ebiten.Image
}

// NewOverlay creates an overlay. 220x64 fits four debug lines.
func NewOverlay(showFPS bool) *Overlay {
	return &Overlay{
		ShowFPS: showFPS,
		img:     ebiten.NewImage(220, 64),
		elapsed: overlayRefresh,
	}
}

// Update refreshes the cached readout when due.
func (o *Overlay) Update(dt float64, scene *wriggle.Scene) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0

	st := scene.Settings()
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nparticles: %d  %s\nspeed %.1f  count %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		scene.Particles().Len(), scene.Entities().Kind(),
		st.Speed, st.Count)
	if scene.DebugMode() {
		stats := scene.Stats()
		o.text += fmt.Sprintf("\nupd %s  draw %s  ops %d", stats.UpdateTime(), stats.DrawTime(), stats.DrawOps())
	}

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

// Draw composites the readout at the top-left and notices at the bottom.
func (o *Overlay) Draw(screen *ebiten.Image, scene *wriggle.Scene) {
	if o.ShowFPS && o.text != "" {
		screen.DrawImage(o.img, nil)
	}

	notices := scene.Notices()
	h := screen.Bounds().Dy()
	for i, n := range notices {
		y := h - (len(notices)-i)*noticeLineH - 8
		o.drawNotice(screen, n, 8, y)
	}
}

// drawNotice renders the notice text into a scratch image so its fade can
// be applied as a color scale.
func (o *Overlay) drawNotice(screen *ebiten.Image, n *wriggle.Notice, x, y int) {
	w := len(n.Text)*6 + 8
	if o.line == nil || o.line.Bounds().Dx() < w {
		o.line = ebiten.NewImage(w, noticeLineH)
	}
	o.line.Clear()
	ebitenutil.DebugPrintAt(o.line, n.Text, 4, 0)

	c := n.Color()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(c.A))
	screen.DrawImage(o.line, &op)
}
