package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/wriggle"
)

const (
	speedStep = 0.1
	countStep = 10
)

// Game runs a wriggle.Scene as an ebiten.Game.
type Game struct {
	Scene *wriggle.Scene

	// QuitWhenScriptDone ends the game once an attached test script has
	// finished.
	QuitWhenScriptDone bool
	Script             *wriggle.TestRunner

	log       logrus.FieldLogger
	pointer   Pointer
	keys      []KeyCommand
	surface   *Surface
	overlay   *Overlay
	shots     Screenshotter
	width     int
	height    int
	lastFrame float64
}

// NewGame wires a scene to Ebitengine input and rendering.
func NewGame(scene *wriggle.Scene, cfg wriggle.Config, log logrus.FieldLogger) *Game {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Game{
		Scene:   scene,
		log:     log,
		surface: NewSurface(nil),
		overlay: NewOverlay(cfg.ShowFPS),
		shots:   Screenshotter{Dir: cfg.ScreenshotDir, Log: log},
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.QuitWhenScriptDone && g.Script != nil && g.Script.Done() && !g.Scene.Injecting() {
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())

	g.keys = ReadKeys(g.keys[:0])
	for _, cmd := range g.keys {
		g.apply(cmd)
	}

	g.Scene.Update(dt, g.pointer.Read())
	g.overlay.Update(dt, g.Scene)
	return nil
}

func (g *Game) apply(cmd KeyCommand) {
	st := g.Scene.Settings()
	switch cmd.Action {
	case ActionSelect:
		if err := g.Scene.SelectEntity(cmd.Kind); err != nil {
			g.log.WithError(err).Warn("select failed")
		}
	case ActionClear:
		g.Scene.Clear()
	case ActionFaster:
		g.Scene.SetSpeed(st.Speed + speedStep)
	case ActionSlower:
		g.Scene.SetSpeed(st.Speed - speedStep)
	case ActionMore:
		g.Scene.SetCount(st.Count + countStep)
	case ActionFewer:
		g.Scene.SetCount(st.Count - countStep)
	case ActionToggleFPS:
		g.overlay.ShowFPS = !g.overlay.ShowFPS
	case ActionToggleDebug:
		g.Scene.SetDebugMode(!g.Scene.DebugMode())
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Reset(screen)
	g.Scene.Draw(g.surface)
	// Captures exclude the overlay.
	g.shots.Capture(screen, g.Scene.TakeScreenshots())
	g.overlay.Draw(screen, g.Scene)
}

// Layout implements ebiten.Game. The scene viewport tracks the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.Scene.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it closes.
func (g *Game) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
